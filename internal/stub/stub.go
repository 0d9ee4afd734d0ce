// Package stub serves canned calculation responses so calcscout can run
// without the real service. It does no arithmetic of its own.
package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const noMatch = `{"error":"no fixture matches request"}`

// Exchange pairs a request pattern with the reply to send. Every key in
// Match must equal the same key in the request body; an empty Match accepts
// any request. Status defaults to 200.
type Exchange struct {
	Match    map[string]json.RawMessage `json:"match"`
	Response json.RawMessage            `json:"response"`
	Status   int                        `json:"status,omitempty"`
}

// Fixtures holds the exchanges for each endpoint, tried in order.
type Fixtures struct {
	Calculate []Exchange `json:"calculate"`
	Graph     []Exchange `json:"graph"`
}

// LoadFixtures reads a fixtures file.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	var fx Fixtures
	if err := json.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures %s: %w", path, err)
	}
	return fx, nil
}

// NewRouter exposes the calculation API backed by fixtures.
func NewRouter(fx Fixtures, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []byte(`{"ok":true}`), logger)
	})
	router.Post("/api/calculate", replay(fx.Calculate, logger))
	router.Post("/api/graph", replay(fx.Graph, logger))
	return router
}

func replay(exchanges []Exchange, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		var req map[string]json.RawMessage
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "body must be a JSON object", http.StatusBadRequest)
			return
		}
		for _, ex := range exchanges {
			if !matches(ex.Match, req) {
				continue
			}
			status := ex.Status
			if status == 0 {
				status = http.StatusOK
			}
			writeJSON(w, status, ex.Response, logger)
			return
		}
		logger.Info("no fixture matched", "path", r.URL.Path, "body", string(body))
		writeJSON(w, http.StatusOK, []byte(noMatch), logger)
	}
}

func matches(pattern, req map[string]json.RawMessage) bool {
	for key, want := range pattern {
		got, ok := req[key]
		if !ok || !sameJSON(want, got) {
			return false
		}
	}
	return true
}

// sameJSON compares two values after decoding, so 16 and 16.0 or differently
// spaced objects still match.
func sameJSON(a, b json.RawMessage) bool {
	var av, bv any
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b))
	}
	ab, _ := json.Marshal(av)
	bb, _ := json.Marshal(bv)
	return bytes.Equal(ab, bb)
}

func writeJSON(w http.ResponseWriter, status int, body []byte, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Debug("stub response write failed", "error", err)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"client_request_id", r.Header.Get("X-Request-ID"),
			)
		})
	}
}
