package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/paccolamano/lazyalgo/httpapi"
	"github.com/paccolamano/lazyalgo/service"
)

func (c *cli) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the algorithms as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg.Server

			server := &http.Server{
				Addr: cfg.Addr,
				Handler: httpapi.New(
					httpapi.WithLogger(c.logger),
					httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
				),
				ReadHeaderTimeout: 5 * time.Second,
				ErrorLog:          slog.NewLogLogger(c.logger.Handler(), slog.LevelWarn),
			}

			c.logger.Info("listening", slog.String("addr", cfg.Addr))

			return service.Start(cmd.Context(),
				[]service.Service{service.NewHTTPService("httpapi", server)},
				service.WithLogger(c.logger),
				service.WithTimeout(cfg.ShutdownTimeout),
			)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.Duration("shutdown-timeout", 10*time.Second, "time allowed for in-flight requests on shutdown")

	_ = c.v.BindPFlag("server.addr", flags.Lookup("addr"))
	_ = c.v.BindPFlag("server.shutdown_timeout", flags.Lookup("shutdown-timeout"))

	return cmd
}
