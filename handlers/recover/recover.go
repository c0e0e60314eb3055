// Package recover provides an HTTP middleware that recovers from panics in
// downstream handlers, logs them and answers with a JSON 500 in the same
// envelope the API uses for every other error:
//
//	{"error": "Internal Server Error", "trace_id": "..."}
//
// The trace ID is taken from the request context (see handlers/tracer), so
// the tracer must wrap the recover handler.
//
// Example usage:
//
//	h := tracer.New()(recover.New(
//		recover.WithLogger(logger),
//		recover.WithIncludeStack(true),
//	)(mux))
package recover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/paccolamano/lazyalgo/ctxlog"
)

// Logger is a minimal structured-logger interface used by New.
// It mirrors slog.Logger.LogAttrs.
type Logger interface {
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
}

// Responder writes the response for a recovered panic. err wraps the
// recovered value.
type Responder func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	logger       Logger
	level        slog.Level
	includeStack bool
	responder    Responder
}

// Option mutates the recover handler configuration.
type Option func(*config)

// WithLogger sets the Logger. Defaults to slog.Default().
func WithLogger(l Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLogLevel sets the level recovered panics are logged at.
// Defaults to slog.LevelError.
func WithLogLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithIncludeStack toggles logging of the stack trace. Off by default since
// capturing it is costly.
func WithIncludeStack(include bool) Option {
	return func(c *config) {
		c.includeStack = include
	}
}

// WithResponder replaces the default JSON 500 response.
func WithResponder(f Responder) Option {
	return func(c *config) {
		c.responder = f
	}
}

// ErrPanic wraps every recovered panic value.
var ErrPanic = errors.New("panic")

// New returns a handler that recovers from panics in next.
//
// http.ErrAbortHandler is re-panicked so net/http can abort the response as
// the handler intended.
func New(opts ...Option) func(http.Handler) http.Handler {
	c := &config{
		logger: slog.Default(),
		level:  slog.LevelError,
	}
	c.responder = c.writeJSON

	for _, opt := range opts {
		opt(c)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
					panic(rec)
				}

				err := asError(rec)
				attrs := []slog.Attr{slog.String("error", err.Error())}
				if c.includeStack {
					attrs = append(attrs, slog.String("stack", string(debug.Stack())))
				}

				c.logger.LogAttrs(r.Context(), c.level, "recovered from panic", attrs...)
				c.responder(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func asError(rec any) error {
	if err, ok := rec.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}

	return fmt.Errorf("%w: %v", ErrPanic, rec)
}

type errorBody struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

func (c *config) writeJSON(w http.ResponseWriter, r *http.Request, _ error) {
	body := errorBody{Error: http.StatusText(http.StatusInternalServerError)}
	body.TraceID, _ = ctxlog.TraceID(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.LogAttrs(r.Context(), c.level, "failed to send recovery response",
			slog.String("error", err.Error()))
	}
}
