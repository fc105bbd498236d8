package api

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/synthra/synthra-api/internal/domain"
	"github.com/synthra/synthra-api/internal/identity"
)

// AuthHandler handles the demo login endpoint.
type AuthHandler struct {
	secret string
}

// NewAuthHandler creates a new auth handler signing tokens with the given
// secret.
func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{secret: secret}
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/auth/login", h.Login)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// Login accepts any email/password, derives a deterministic user from the
// email's local part and issues a signed token. Demo semantics only: the
// password is never verified against any store.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" {
		Error(w, http.StatusBadRequest, "email is required")
		return
	}

	local := req.Email
	if at := strings.Index(local, "@"); at >= 0 {
		local = local[:at]
	}

	user := domain.Identity{
		ID:    "user_" + local,
		Email: req.Email,
		Name:  titleCase(local),
	}

	token, err := identity.Sign(user, h.secret)
	if err != nil {
		slog.Error("Failed to sign login token", "error", err, "user_id", user.ID)
		Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	slog.Info("Login successful", "user_id", user.ID)
	JSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// titleCase capitalizes every word of a display name, treating any
// non-letter as a word boundary ("alice.smith" becomes "Alice.Smith").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			inWord = false
			b.WriteRune(r)
		case inWord:
			b.WriteRune(unicode.ToLower(r))
		default:
			inWord = true
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
