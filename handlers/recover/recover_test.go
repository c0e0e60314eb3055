package recover

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/paccolamano/lazyalgo/ctxlog"
)

type mockLogger struct {
	entries []string
	level   slog.Level
}

func (m *mockLogger) LogAttrs(_ context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	m.level = level
	sb := &strings.Builder{}
	sb.WriteString(msg)
	for _, a := range attrs {
		sb.WriteString(" ")
		sb.WriteString(a.String())
	}
	m.entries = append(m.entries, sb.String())
}

type failingWriter struct {
	header http.Header
}

func (fw *failingWriter) Header() http.Header {
	return fw.header
}

func (fw *failingWriter) WriteHeader(_ int) {}

func (fw *failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("write failed")
}

func panicking(v any) http.Handler {
	return http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic(v)
	})
}

func TestDefaultRecoveryWritesJSON500(t *testing.T) {
	logger := &mockLogger{}
	h := New(WithLogger(logger))(panicking("boom"))

	req := httptest.NewRequest(http.MethodPost, "/v1/anagrams", nil)
	req = req.WithContext(ctxlog.WithTraceID(req.Context(), "trace-1"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	err := json.NewDecoder(rr.Body).Decode(&body)
	assert.NilError(t, err)
	assert.DeepEqual(t, body, map[string]string{"error": "Internal Server Error", "trace_id": "trace-1"})

	assert.Equal(t, len(logger.entries), 1)
	assert.Equal(t, logger.level, slog.LevelError)
	assert.Assert(t, strings.Contains(logger.entries[0], "boom"))
}

func TestRecoveryWithResponder(t *testing.T) {
	logger := &mockLogger{}
	var got error

	h := New(
		WithLogger(logger),
		WithResponder(func(w http.ResponseWriter, _ *http.Request, err error) {
			got = err
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("custom response"))
		}),
	)(panicking(errors.New("kaboom")))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "custom response", rr.Body.String())
	assert.ErrorIs(t, got, ErrPanic)
	assert.ErrorContains(t, got, "kaboom")
	assert.Assert(t, strings.Contains(logger.entries[0], "kaboom"))
}

func TestRecoveryWithIncludeStack(t *testing.T) {
	logger := &mockLogger{}
	h := New(WithLogger(logger), WithIncludeStack(true))(panicking("with stack"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Assert(t, strings.Contains(logger.entries[0], "with stack"))
	assert.Assert(t, strings.Contains(logger.entries[0], "goroutine"))
}

func TestRecoveryWithLogLevel(t *testing.T) {
	logger := &mockLogger{}
	h := New(WithLogger(logger), WithLogLevel(slog.LevelWarn))(panicking("oops"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Assert(t, strings.Contains(logger.entries[0], "recovered from panic"))
	assert.Equal(t, logger.level, slog.LevelWarn)
}

func TestAbortHandlerIsRepanicked(t *testing.T) {
	logger := &mockLogger{}
	h := New(WithLogger(logger))(panicking(http.ErrAbortHandler))

	defer func() {
		assert.Equal(t, recover(), any(http.ErrAbortHandler))
		assert.Equal(t, len(logger.entries), 0)
	}()

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestNoPanicPassesThrough(t *testing.T) {
	logger := &mockLogger{}
	h := New(WithLogger(logger))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Equal(t, 0, len(logger.entries))
}

func TestDefaultResponderEncodingError(t *testing.T) {
	logger := &mockLogger{}
	brokenWriter := &failingWriter{header: make(http.Header)}

	h := New(WithLogger(logger))(panicking("broken writer panic"))
	h.ServeHTTP(brokenWriter, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, len(logger.entries), 2)
	assert.Assert(t, strings.Contains(logger.entries[1], "failed to send recovery response"))
}
