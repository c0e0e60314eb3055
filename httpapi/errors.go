package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/paccolamano/lazyalgo/ctxlog"
	"github.com/paccolamano/lazyalgo/window"
)

// errorResponse is the envelope of every non-2xx answer.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id,omitempty"`
}

// requestError marks a malformed request body.
type requestError struct {
	err error
}

func (e *requestError) Error() string {
	return fmt.Sprintf("malformed request body: %v", e.err)
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badRequest(err error) error {
	return &requestError{err: err}
}

// fail maps err onto a status code and writes the error envelope.
func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status  = http.StatusInternalServerError
		message = http.StatusText(http.StatusInternalServerError)
		details []string

		tooLarge  *http.MaxBytesError
		invalid   validator.ValidationErrors
		malformed *requestError
	)

	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
		message = fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
	case errors.As(err, &malformed):
		status = http.StatusBadRequest
		message = malformed.Error()
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
		message = "request validation failed"
		for _, fe := range invalid {
			details = append(details, fmt.Sprintf("%s: failed on %q", fe.Field(), fe.Tag()))
		}
	case errors.Is(err, window.ErrInvalidArgument):
		status = http.StatusBadRequest
		message = err.Error()
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.logger.LogAttrs(r.Context(), level, "request failed",
		slog.Int("status", status), slog.String("error", err.Error()))

	body := errorResponse{Error: message, Details: details}
	body.TraceID, _ = ctxlog.TraceID(r.Context())
	a.respond(w, r, status, body)
}

func (a *api) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.LogAttrs(r.Context(), slog.LevelError, "failed to send response",
			slog.String("error", err.Error()))
	}
}
