package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/synthra/synthra-api/internal/store"
)

// HealthHandler handles liveness and database health endpoints.
type HealthHandler struct {
	repo    store.Repository
	timeout time.Duration
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(repo store.Repository, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthHandler{repo: repo, timeout: timeout}
}

// RegisterRoutes registers health routes.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/health", func(r chi.Router) {
		r.Get("/ping", h.Ping)
		r.Get("/db", h.DB)
	})
}

// Ping reports process liveness.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DB reports database reachability. Failures stay a 200 with a body-level
// error so dashboards can read the reason.
func (h *HealthHandler) DB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		slog.Error("Database health check failed", "error", err)
		JSON(w, http.StatusOK, map[string]string{"status": "error", "error": err.Error()})
		return
	}

	JSON(w, http.StatusOK, map[string]string{"status": "ok", "mongo": "ok"})
}
