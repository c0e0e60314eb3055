// Package ctxlog provides a slog.Handler that enriches log records with
// attributes carried by a context.Context, such as the trace ID of the HTTP
// request or the algorithm being executed.
//
// Example usage:
//
//	handler := ctxlog.NewContextHandler(
//		ctxlog.WithBaseHandler(slog.NewJSONHandler(os.Stderr, nil)),
//		ctxlog.WithExtractor(ctxlog.TraceIDExtractor),
//		ctxlog.WithExtractor(ctxlog.OperationExtractor),
//	)
//	logger := slog.New(handler)
//
//	ctx := ctxlog.WithOperation(context.Background(), "max-sum")
//	logger.InfoContext(ctx, "window computed", slog.Int("window_size", 3))
package ctxlog

import (
	"context"
	"log/slog"
	"os"
)

type contextKey int

const (
	traceIDKey contextKey = iota
	operationKey
)

// WithTraceID returns a copy of ctx carrying the given trace ID.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

// TraceID returns the trace ID stored in ctx, if any.
func TraceID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(traceIDKey).(string)
	return id, ok && id != ""
}

// WithOperation returns a copy of ctx carrying the name of the running
// operation, e.g. "anagrams".
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// Operation returns the operation name stored in ctx, if any.
func Operation(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(operationKey).(string)
	return op, ok && op != ""
}

// AttrExtractor extracts slog attributes from a context.Context.
type AttrExtractor func(ctx context.Context) []slog.Attr

// TraceIDExtractor adds a "trace_id" attribute when ctx carries one.
func TraceIDExtractor(ctx context.Context) []slog.Attr {
	if id, ok := TraceID(ctx); ok {
		return []slog.Attr{slog.String("trace_id", id)}
	}
	return nil
}

// OperationExtractor adds an "operation" attribute when ctx carries one.
func OperationExtractor(ctx context.Context) []slog.Attr {
	if op, ok := Operation(ctx); ok {
		return []slog.Attr{slog.String("operation", op)}
	}
	return nil
}

type config struct {
	baseHandler slog.Handler
	extractors  []AttrExtractor
}

// Option defines a functional option used to configure a ContextHandler.
type Option func(*config)

// WithBaseHandler sets the slog.Handler records are delegated to.
// By default, it uses a text handler writing to stderr at info level.
func WithBaseHandler(h slog.Handler) Option {
	return func(c *config) {
		c.baseHandler = h
	}
}

// WithExtractor adds an AttrExtractor. Extractors run in registration order.
func WithExtractor(ex AttrExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, ex)
	}
}

// ContextHandler is a slog.Handler that wraps a base handler and adds the
// attributes found by its extractors to every record.
type ContextHandler struct {
	base       slog.Handler
	extractors []AttrExtractor
}

// NewContextHandler creates a ContextHandler configured via functional options.
func NewContextHandler(opts ...Option) *ContextHandler {
	c := &config{
		baseHandler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return &ContextHandler{
		base:       c.baseHandler,
		extractors: c.extractors,
	}
}

// Enabled delegates to the base handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle adds the extracted attributes to rec and passes it on.
func (h *ContextHandler) Handle(ctx context.Context, rec slog.Record) error {
	rec = rec.Clone()
	for _, ex := range h.extractors {
		rec.AddAttrs(ex(ctx)...)
	}

	return h.base.Handle(ctx, rec)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		base:       h.base.WithAttrs(attrs),
		extractors: h.extractors,
	}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{
		base:       h.base.WithGroup(name),
		extractors: h.extractors,
	}
}
