// Package logger provides an HTTP middleware that logs each served request
// through log/slog and records Prometheus request metrics.
//
// Requests are labelled by their ServeMux route pattern rather than the raw
// path, which keeps metric cardinality bounded.
//
// Example usage:
//
//	reg := prometheus.NewRegistry()
//	logged := logger.New(
//		logger.WithLogger(slog.Default()),
//		logger.WithRegisterer(reg),
//		logger.WithSkipPaths("/healthz"),
//	)(mux)
package logger

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Logger defines the minimal logging interface required by this handler.
// It matches log/slog.Logger's LogAttrs method.
type Logger interface {
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
}

const unmatchedRoute = "unmatched"

type config struct {
	logger      Logger
	level       slog.Level
	errorLevel  slog.Level
	registerer  prometheus.Registerer
	skipPaths   []string
	constLabels prometheus.Labels
}

// Option represents a functional option for configuring the logger handler.
type Option func(*config)

// WithLogger sets a custom Logger. Defaults to slog.Default().
func WithLogger(l Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLevel sets the level for requests answered with a status below 500.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithErrorLevel sets the level for requests answered with a 5xx status.
func WithErrorLevel(level slog.Level) Option {
	return func(c *config) {
		c.errorLevel = level
	}
}

// WithRegisterer sets where the request metrics are registered. When unset,
// no metrics are recorded.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = r
	}
}

// WithConstLabels adds constant labels to every metric, e.g. the service name.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *config) {
		c.constLabels = labels
	}
}

// WithSkipPaths configures path prefixes that are neither logged nor measured.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer, labels prometheus.Labels) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Number of HTTP requests served, by route, method and status code.",
			ConstLabels: labels,
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Time spent serving HTTP requests, by route and method.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(m.requests, m.duration)

	return m
}

// responseWriter captures the status code and body size written downstream.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// New creates the logging handler. It panics if the metrics cannot be
// registered, e.g. when New is called twice with the same registerer.
func New(opts ...Option) func(http.Handler) http.Handler {
	c := &config{
		logger:     slog.Default(),
		level:      slog.LevelInfo,
		errorLevel: slog.LevelError,
	}

	for _, opt := range opts {
		opt(c)
	}

	var m *metrics
	if c.registerer != nil {
		m = newMetrics(c.registerer, c.constLabels)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			elapsed := time.Since(start)
			route := r.Pattern
			if route == "" {
				route = unmatchedRoute
			}

			if m != nil {
				m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
				m.duration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())
			}

			level := c.level
			if rw.statusCode >= http.StatusInternalServerError {
				level = c.errorLevel
			}

			c.logger.LogAttrs(r.Context(), level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", route),
				slog.Int("status", rw.statusCode),
				slog.Int("bytes", rw.bytes),
				slog.Duration("duration", elapsed),
			)
		})
	}
}

func (c *config) skip(r *http.Request) bool {
	for _, prefix := range c.skipPaths {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}

	return false
}
