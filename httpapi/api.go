// Package httpapi exposes the lazyalgo algorithms as JSON endpoints.
//
// Routes:
//
//	POST /v1/password                 -> {"password": "..."}
//	POST /v1/anagrams                 {"words": [...]} -> {"groups": [[...]]}
//	POST /v1/window/max-sum           {"numbers": [...], "window_size": k} -> {"max_sum": n, "start": i}
//	POST /v1/window/longest-unique    {"text": "..."} -> {"substring": "...", "length": n}
//	GET  /healthz                     -> {"status": "ok"}
//	GET  /metrics                     Prometheus exposition
//
// Errors are answered as {"error": "...", "details": [...], "trace_id": "..."}.
package httpapi

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paccolamano/lazyalgo/handlers/logger"
	"github.com/paccolamano/lazyalgo/handlers/recover"
	"github.com/paccolamano/lazyalgo/handlers/tracer"
	"github.com/paccolamano/lazyalgo/password"
)

// DefaultMaxBodyBytes bounds request bodies unless WithMaxBodyBytes is used.
const DefaultMaxBodyBytes = 1 << 20

type config struct {
	logger       *slog.Logger
	generator    *password.Generator
	maxBodyBytes int64
	registry     *prometheus.Registry
}

// Option defines a functional option used to configure the API handler.
type Option func(*config)

// WithLogger sets the logger used by the API and its middlewares.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithGenerator sets the password generator behind /v1/password.
func WithGenerator(g *password.Generator) Option {
	return func(c *config) {
		c.generator = g
	}
}

// WithMaxBodyBytes bounds the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		c.maxBodyBytes = n
	}
}

// WithRegistry sets the Prometheus registry metrics are recorded in and
// served from. By default a fresh registry with Go and process collectors is
// used.
func WithRegistry(r *prometheus.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

type api struct {
	logger *slog.Logger

	// generator sources are not safe for concurrent use
	mu        sync.Mutex
	generator *password.Generator

	validate     *validator.Validate
	maxBodyBytes int64
}

// New builds the API handler wrapped in its middleware chain:
// tracer, then recover, then logger.
func New(opts ...Option) http.Handler {
	c := &config{
		logger:       slog.Default(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.generator == nil {
		c.generator = password.New()
	}

	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	a := &api{
		logger:       c.logger,
		generator:    c.generator,
		validate:     newValidator(),
		maxBodyBytes: c.maxBodyBytes,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/password", a.password)
	mux.HandleFunc("POST /v1/anagrams", a.anagrams)
	mux.HandleFunc("POST /v1/window/max-sum", a.maxSum)
	mux.HandleFunc("POST /v1/window/longest-unique", a.longestUnique)
	mux.HandleFunc("GET /healthz", a.healthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))

	var h http.Handler = mux
	h = logger.New(
		logger.WithLogger(c.logger),
		logger.WithRegisterer(c.registry),
		logger.WithSkipPaths("/healthz", "/metrics"),
	)(h)
	h = recover.New(recover.WithLogger(c.logger), recover.WithIncludeStack(true))(h)
	h = tracer.New(tracer.WithTrustIncoming(true))(h)

	return h
}

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
