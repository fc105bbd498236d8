// Package domain contains core domain types for the Synthra application.
package domain

// GuestID is the sentinel user ID assigned to unauthenticated callers.
const GuestID = "guest"

// Identity is the per-request caller identity derived from the bearer token.
// It is never persisted; guests get a fixed sentinel identity.
type Identity struct {
	ID      string `json:"id"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	IsGuest bool   `json:"is_guest"`
}

// Guest returns the sentinel identity for unauthenticated callers.
func Guest() Identity {
	return Identity{ID: GuestID, Name: "Guest", IsGuest: true}
}
