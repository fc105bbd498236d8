package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/synthra/synthra-api/internal/domain"
	"github.com/synthra/synthra-api/internal/generation"
	"github.com/synthra/synthra-api/internal/identity"
)

// MLHandler proxies generation requests to the generation service and records
// successful results to history for authenticated callers.
type MLHandler struct {
	*Handler
	gen *generation.Service
}

// NewMLHandler creates a new ML handler.
func NewMLHandler(base *Handler, gen *generation.Service) *MLHandler {
	return &MLHandler{Handler: base, gen: gen}
}

// RegisterRoutes registers ML routes.
func (h *MLHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/ml/generate", h.Generate)
}

type generateRequest struct {
	Prompt  string                    `json:"prompt"`
	Type    string                    `json:"type"`
	Context *domain.GenerationContext `json:"context,omitempty"`
}

type generateMetadata struct {
	Type       string `json:"type"`
	HasContext bool   `json:"hasContext"`
	Timestamp  string `json:"timestamp"`
}

type generateResponse struct {
	Generated string           `json:"generated"`
	Metadata  generateMetadata `json:"metadata"`
}

// Generate validates the request, delegates to the text or image path by
// type, and fires a best-effort history write for non-guest callers.
func (h *MLHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		Error(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	var (
		generated string
		err       error
	)
	if req.Type == "Image" {
		generated, err = h.gen.GenerateImage(r.Context(), req.Prompt, req.Context)
	} else {
		generated, err = h.gen.GenerateText(r.Context(), req.Prompt, req.Type, req.Context)
	}
	if err != nil {
		var cfgErr *generation.ConfigError
		if errors.As(err, &cfgErr) {
			Error(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)

	user := identity.FromContext(r.Context())
	if !user.IsGuest {
		item := &domain.HistoryItem{
			UserID:    user.ID,
			Type:      req.Type,
			Content:   generated,
			Context:   req.Context,
			Timestamp: timestamp,
		}
		persistAsync("generation history", func(ctx context.Context) error {
			_, err := h.repo.CreateHistoryItem(ctx, item)
			return err
		})
	}

	JSON(w, http.StatusOK, generateResponse{
		Generated: generated,
		Metadata: generateMetadata{
			Type:       req.Type,
			HasContext: req.Context != nil,
			Timestamp:  timestamp,
		},
	})
}
