package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synthra/synthra-api/internal/domain"
	"github.com/synthra/synthra-api/internal/identity"
)

// ContentHandler handles the per-user generated-content collection.
// Like profile, content routes are strict: guests get 401.
type ContentHandler struct {
	*Handler
}

// NewContentHandler creates a new content handler.
func NewContentHandler(base *Handler) *ContentHandler {
	return &ContentHandler{Handler: base}
}

// RegisterRoutes registers content routes.
func (h *ContentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/content", func(r chi.Router) {
		r.Get("/", h.ListContent)
		r.Post("/", h.SaveContent)
	})
}

// ListContent returns the caller's history, newest first, capped at 100.
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context())
	if user.IsGuest {
		Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	items, err := h.repo.GetHistory(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to list content", "error", err, "user_id", user.ID)
		Error(w, http.StatusInternalServerError, "failed to list content")
		return
	}

	JSON(w, http.StatusOK, items)
}

type saveContentRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// SaveContent inserts a new item into the caller's history and returns the
// stored record with its generated id.
func (h *ContentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context())
	if user.IsGuest {
		Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req saveContentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Type == "" || req.Content == "" {
		Error(w, http.StatusBadRequest, "type and content are required")
		return
	}

	saved, err := h.repo.CreateHistoryItem(r.Context(), &domain.HistoryItem{
		UserID:  user.ID,
		Type:    req.Type,
		Content: req.Content,
	})
	if err != nil {
		slog.Error("Failed to save content", "error", err, "user_id", user.ID)
		Error(w, http.StatusInternalServerError, "failed to save content")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Content saved",
		"content": saved,
	})
}
