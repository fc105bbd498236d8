package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synthra/synthra-api/internal/identity"
)

// ProfileHandler handles profile endpoints. All of them require an
// authenticated (non-guest) caller: the guest sentinel must never read or
// write another identity's data.
type ProfileHandler struct {
	*Handler
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(base *Handler) *ProfileHandler {
	return &ProfileHandler{Handler: base}
}

// RegisterRoutes registers profile routes.
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.UpdateProfile)
		r.Get("/history", h.GetHistory)
		r.Get("/marketing", h.GetMarketing)
	})
}

// GetProfile returns the logged-in user's profile info.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context())
	if user.IsGuest {
		Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// UpdateProfile updates the logged-in user's display name.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context())
	if user.IsGuest {
		Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		Error(w, http.StatusBadRequest, "name is required")
		return
	}

	updated, err := h.repo.UpdateUserName(r.Context(), user.ID, req.Name)
	if err != nil {
		slog.Error("Failed to update profile", "error", err, "user_id", user.ID)
		Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Profile updated",
		"name":    updated.Name,
	})
}

// GetHistory returns the user's generated content history.
func (h *ProfileHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context())
	if user.IsGuest {
		Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	history, err := h.repo.GetHistory(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to fetch history", "error", err, "user_id", user.ID)
		Error(w, http.StatusInternalServerError, "failed to fetch history")
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

// GetMarketing returns the user's most recent saved marketing data, or an
// empty object if none exists.
func (h *ProfileHandler) GetMarketing(w http.ResponseWriter, r *http.Request) {
	user := identity.FromContext(r.Context())
	if user.IsGuest {
		Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	rec, err := h.repo.GetMarketingRecord(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to fetch marketing record", "error", err, "user_id", user.ID)
		Error(w, http.StatusInternalServerError, "failed to fetch marketing data")
		return
	}

	if rec == nil {
		JSON(w, http.StatusOK, map[string]interface{}{"marketing": map[string]interface{}{}})
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"marketing": rec})
}
