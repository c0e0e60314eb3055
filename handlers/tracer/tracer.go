// Package tracer provides an HTTP middleware that assigns every request a
// UUID trace ID.
//
// The trace ID is echoed in a response header (default "X-Trace-ID") and
// stored in the request context through ctxlog.WithTraceID, so any logger
// built on ctxlog.TraceIDExtractor tags its records with it.
//
// Example usage:
//
//	mux := http.NewServeMux()
//	mux.Handle("/v1/", tracer.New(tracer.WithTrustIncoming(true))(api))
package tracer

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/paccolamano/lazyalgo/ctxlog"
)

// DefaultHeaderKey is the response header carrying the trace ID.
const DefaultHeaderKey = "X-Trace-ID"

type config struct {
	headerKey     string
	trustIncoming bool
}

// Option represents a functional option for configuring the tracer handler.
type Option func(*config)

// WithHeaderKey sets the header the trace ID is written to (and read from,
// see WithTrustIncoming).
func WithHeaderKey(key string) Option {
	return func(c *config) {
		c.headerKey = key
	}
}

// WithTrustIncoming makes the handler reuse a valid UUID found in the request
// header instead of generating a new one. Disabled by default.
func WithTrustIncoming(trust bool) Option {
	return func(c *config) {
		c.trustIncoming = trust
	}
}

// New returns a handler that tags each request with a trace ID.
func New(opts ...Option) func(http.Handler) http.Handler {
	c := &config{
		headerKey: DefaultHeaderKey,
	}

	for _, opt := range opts {
		opt(c)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := c.traceID(r)
			w.Header().Set(c.headerKey, id)

			next.ServeHTTP(w, r.WithContext(ctxlog.WithTraceID(r.Context(), id)))
		})
	}
}

func (c *config) traceID(r *http.Request) string {
	if c.trustIncoming {
		if id, err := uuid.Parse(r.Header.Get(c.headerKey)); err == nil {
			return id.String()
		}
	}

	return uuid.NewString()
}

// GetTraceID returns the trace ID New stored in the request context, or nil
// if there is none or it is not a valid UUID.
func GetTraceID(r *http.Request) *uuid.UUID {
	if r == nil {
		return nil
	}

	s, ok := ctxlog.TraceID(r.Context())
	if !ok {
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}

	return &id
}
