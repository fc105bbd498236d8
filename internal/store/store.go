// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/synthra/synthra-api/internal/domain"
)

// HistoryLimit caps how many history items a single listing returns.
const HistoryLimit = 100

// Repository defines the interface for persisting user-generated content.
type Repository interface {
	// CreateHistoryItem inserts a history item and returns the stored
	// document with its generated id.
	CreateHistoryItem(ctx context.Context, item *domain.HistoryItem) (*domain.HistoryItem, error)

	// GetHistory retrieves a user's history, newest first, capped at
	// HistoryLimit items.
	GetHistory(ctx context.Context, userID string) ([]domain.HistoryItem, error)

	// CreateMarketingRecord appends a marketing record for a user and
	// returns the stored document with its generated id.
	CreateMarketingRecord(ctx context.Context, rec *domain.MarketingRecord) (*domain.MarketingRecord, error)

	// GetMarketingRecord retrieves the most recent marketing record for a
	// user, or nil if none exists.
	GetMarketingRecord(ctx context.Context, userID string) (*domain.MarketingRecord, error)

	// UpdateUserName upserts the display name on a user's profile document.
	UpdateUserName(ctx context.Context, userID, name string) (*domain.User, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying database connections.
	Close(ctx context.Context) error
}
