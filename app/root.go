// Package app implements the lazyalgo command line.
package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the state shared by all subcommands of one root command.
type cli struct {
	v          *viper.Viper
	configPath string
	cfg        Config
	logger     *slog.Logger
	logCloser  io.Closer
}

// NewRootCommand builds the lazyalgo command tree. A log file opened by a
// subcommand is only closed by Execute.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *cli) {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:   "lazyalgo",
		Short: "lazyalgo runs small string and sequence algorithms",
		Long: `lazyalgo generates password suggestions, groups anagrams and runs
sliding-window algorithms, either from the command line or as a JSON HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a config file (default ./lazyalgo.yaml or /etc/lazyalgo/lazyalgo.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("log-file", "", "write logs to this rotated file instead of stderr")

	_ = c.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = c.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = c.v.BindPFlag("log.file", flags.Lookup("log-file"))

	root.AddCommand(
		c.passwordCommand(),
		c.anagramsCommand(),
		c.maxSumCommand(),
		c.longestUniqueCommand(),
		c.serveCommand(),
	)

	return root, c
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.v, c.configPath)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	c.cfg, c.logger, c.logCloser = cfg, logger, closer

	return nil
}

// execute runs root and closes the log output whether or not the command
// succeeded.
func (c *cli) execute(root *cobra.Command) (err error) {
	defer func() {
		err = errors.Join(err, c.close())
	}()

	err = root.Execute()
	if err != nil && c.logger != nil {
		c.logger.Debug("command failed", slog.String("error", err.Error()))
	}

	return err
}

func (c *cli) close() error {
	if c.logCloser == nil {
		return nil
	}

	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

// Execute runs the root command.
func Execute() error {
	root, c := newRootCommand()
	return c.execute(root)
}
