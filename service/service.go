// Package service runs long-lived services and shuts them down gracefully
// when the process receives a termination signal or the parent context ends.
//
// Example usage:
//
//	srv := service.NewHTTPService("api", &http.Server{Addr: ":8080", Handler: h})
//	err := service.Start(ctx, []service.Service{srv},
//		service.WithLogger(logger),
//		service.WithTimeout(5*time.Second),
//	)
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ErrShutdownTimeout is returned by Start when services did not stop in time.
var ErrShutdownTimeout = errors.New("shutdown timeout reached")

// Logger defines the minimal logging interface required by Start.
// It matches log/slog.Logger's LogAttrs method.
type Logger interface {
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
}

type noopLogger struct{}

func (noopLogger) LogAttrs(_ context.Context, _ slog.Level, _ string, _ ...slog.Attr) {}

// Service is a long-running unit of work.
type Service interface {
	// Name identifies the service in logs and errors.
	Name() string

	// Run blocks until the service stops. A service stopped through
	// Shutdown returns nil.
	Run(ctx context.Context) error

	// Shutdown stops the service, honouring the deadline of ctx.
	Shutdown(ctx context.Context) error
}

type config struct {
	logger  Logger
	timeout time.Duration
	signals []os.Signal
}

// Option defines a functional option for configuring Start.
type Option func(*config)

// WithLogger sets the Logger used by Start. Defaults to a no-op logger.
func WithLogger(l Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTimeout sets how long services are given to shut down. Default is 10 seconds.
func WithTimeout(t time.Duration) Option {
	return func(c *config) {
		c.timeout = t
	}
}

// WithSignals sets which OS signals trigger shutdown.
// Default is syscall.SIGINT and syscall.SIGTERM.
func WithSignals(s ...os.Signal) Option {
	return func(c *config) {
		c.signals = s
	}
}

// Start runs services concurrently until a signal arrives, ctx is done or
// any service stops on its own, then shuts all of them down.
//
// The returned error joins every Run and Shutdown failure, plus
// ErrShutdownTimeout if the services outlived the timeout.
func Start(ctx context.Context, services []Service, opts ...Option) error {
	c := &config{
		logger:  noopLogger{},
		timeout: 10 * time.Second,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}

	for _, opt := range opts {
		opt(c)
	}

	ctx, stop := signal.NotifyContext(ctx, c.signals...)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for _, svc := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer cancel()

			c.logger.LogAttrs(ctx, slog.LevelInfo, "starting service", slog.String("service", svc.Name()))
			if err := svc.Run(ctx); err != nil {
				record(fmt.Errorf("service %s: %w", svc.Name(), err))
			}
		}()
	}

	<-ctx.Done()
	c.logger.LogAttrs(context.Background(), slog.LevelInfo, "shutting down",
		slog.Duration("timeout", c.timeout))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), c.timeout)
	defer cancelShutdown()

	for _, svc := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := svc.Shutdown(shutdownCtx); err != nil {
				record(fmt.Errorf("shutdown %s: %w", svc.Name(), err))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.LogAttrs(context.Background(), slog.LevelInfo, "graceful shutdown completed")
	case <-shutdownCtx.Done():
		c.logger.LogAttrs(context.Background(), slog.LevelWarn, "forced shutdown: timeout reached")
		record(ErrShutdownTimeout)
	}

	mu.Lock()
	defer mu.Unlock()

	return errors.Join(errs...)
}
