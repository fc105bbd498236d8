// Package api provides HTTP handlers for the Synthra API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/synthra/synthra-api/internal/store"
)

// backgroundPersistTimeout bounds fire-and-forget writes that outlive their
// originating request.
const backgroundPersistTimeout = 10 * time.Second

// Handler provides common handler utilities.
type Handler struct {
	repo store.Repository
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository) *Handler {
	return &Handler{repo: repo}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// decodeBody decodes a JSON request body into v, replying 400 on failure.
// Returns false if the request has already been answered.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// persistAsync runs a best-effort write detached from the request. Failures
// are logged and swallowed: these writes are telemetry, not a ledger, and
// must never affect the response.
func persistAsync(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundPersistTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			slog.Warn("Background persist failed", "op", op, "error", err)
		}
	}()
}
