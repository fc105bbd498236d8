// Package identity derives the per-request caller identity from an optional
// bearer token.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/synthra/synthra-api/internal/domain"
)

type contextKey int

const identityKey contextKey = iota

// Claims is the token payload issued at login. The user ID travels in the
// "_id" claim to stay wire-compatible with existing frontend tokens.
type Claims struct {
	UserID string `json:"_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// FromContext extracts the caller identity from the request context. Requests
// that never passed through the middleware count as guests.
func FromContext(ctx context.Context) domain.Identity {
	if v, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return v
	}
	return domain.Guest()
}

// WithIdentity returns a context carrying the given identity. Exposed for
// handler tests.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Sign issues an HS256 token embedding the given identity.
func Sign(id domain.Identity, secret string) (string, error) {
	claims := &Claims{
		UserID: id.ID,
		Email:  id.Email,
		Name:   id.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the authenticated identity.
func Parse(tokenString, secret string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return domain.Identity{}, fmt.Errorf("invalid token claims")
	}

	return domain.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

func tokenFromHeader(authorization string) string {
	if after, found := strings.CutPrefix(authorization, "Bearer "); found {
		return after
	}
	return authorization
}

// Middleware injects the caller identity into the request context. No
// Authorization header yields the guest identity; a present but invalid
// token is rejected with 401 before the handler runs. There is no database
// lookup: the identity is fully derived from the token payload.
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				ctx := WithIdentity(r.Context(), domain.Guest())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			id, err := Parse(tokenFromHeader(authorization), secret)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid token"}`))
				return
			}

			ctx := WithIdentity(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
