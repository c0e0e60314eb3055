package httpapi

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/paccolamano/lazyalgo/anagram"
	"github.com/paccolamano/lazyalgo/ctxlog"
	"github.com/paccolamano/lazyalgo/utility"
	"github.com/paccolamano/lazyalgo/window"
)

type passwordResponse struct {
	Password string `json:"password"`
}

type anagramsRequest struct {
	Words []string `json:"words" validate:"required"`
}

type anagramsResponse struct {
	Groups [][]string `json:"groups"`
}

type maxSumRequest struct {
	Numbers    []float64 `json:"numbers" validate:"required,min=1"`
	WindowSize int       `json:"window_size" validate:"gt=0"`
}

type maxSumResponse struct {
	MaxSum float64 `json:"max_sum"`
	Start  int     `json:"start"`
}

type longestUniqueRequest struct {
	Text string `json:"text"`
}

type longestUniqueResponse struct {
	Substring string `json:"substring"`
	Length    int    `json:"length"`
}

func (a *api) generate() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.generator.Generate()
}

func (a *api) password(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithOperation(r.Context(), "password")

	p, err := a.generate()
	if err != nil {
		a.fail(w, r.WithContext(ctx), err)
		return
	}

	a.logger.DebugContext(ctx, "password generated")
	a.respond(w, r, http.StatusOK, passwordResponse{Password: p})
}

func (a *api) anagrams(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithOperation(r.Context(), "anagrams")

	req, ok := decode[anagramsRequest](a, w, r.WithContext(ctx))
	if !ok {
		return
	}

	groups := anagram.Group(req.Words)

	a.logger.DebugContext(ctx, "anagrams grouped",
		slog.Int("words", len(req.Words)), slog.Int("groups", len(groups)))
	a.respond(w, r, http.StatusOK, anagramsResponse{Groups: groups})
}

func (a *api) maxSum(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithOperation(r.Context(), "max-sum")

	req, ok := decode[maxSumRequest](a, w, r.WithContext(ctx))
	if !ok {
		return
	}

	sum, start, err := window.MaxSumWindow(req.Numbers, req.WindowSize)
	if err != nil {
		a.fail(w, r.WithContext(ctx), err)
		return
	}
	if math.IsInf(sum, 0) {
		a.fail(w, r.WithContext(ctx), badRequest(errors.New("window sum overflows float64")))
		return
	}

	a.logger.DebugContext(ctx, "max window sum computed",
		slog.Int("numbers", len(req.Numbers)), slog.Int("window_size", req.WindowSize))
	a.respond(w, r, http.StatusOK, maxSumResponse{MaxSum: sum, Start: start})
}

func (a *api) longestUnique(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithOperation(r.Context(), "longest-unique")

	req, ok := decode[longestUniqueRequest](a, w, r.WithContext(ctx))
	if !ok {
		return
	}

	sub := window.LongestUnique(req.Text)

	a.logger.DebugContext(ctx, "longest unique substring found", slog.Int("text_bytes", len(req.Text)))
	a.respond(w, r, http.StatusOK, longestUniqueResponse{
		Substring: sub,
		Length:    len([]rune(sub)),
	})
}

func (a *api) healthz(w http.ResponseWriter, r *http.Request) {
	a.respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads and validates the JSON body of r. On failure the error
// response has already been written.
func decode[T any](a *api, w http.ResponseWriter, r *http.Request) (*T, bool) {
	body := http.MaxBytesReader(w, r.Body, a.maxBodyBytes)

	req, err := utility.DecodeJSONAs[T](body)
	if err != nil {
		a.fail(w, r, badRequest(err))
		return nil, false
	}

	if err := a.validate.StructCtx(r.Context(), req); err != nil {
		a.fail(w, r, err)
		return nil, false
	}

	return req, true
}
