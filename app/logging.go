package app

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/paccolamano/lazyalgo/ctxlog"
)

// newLogger builds the process logger. Records are tagged with the trace ID
// and operation found in their context. When cfg.File is set, logs go to a
// rotated file and the returned closer must be closed on exit.
func newLogger(cfg LogConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q is not supported: %w", cfg.Level, err)
	}

	out := stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		}
		out, closer = rotated, rotated
	}

	opts := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	switch cfg.Format {
	case "json":
		base = slog.NewJSONHandler(out, opts)
	default:
		base = slog.NewTextHandler(out, opts)
	}

	handler := ctxlog.NewContextHandler(
		ctxlog.WithBaseHandler(base),
		ctxlog.WithExtractor(ctxlog.TraceIDExtractor),
		ctxlog.WithExtractor(ctxlog.OperationExtractor),
	)

	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
