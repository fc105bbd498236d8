package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryItem is one persisted record of an AI-generated output for one user.
// Items are immutable once written and always carry the user_id of the
// identity that created them. The ObjectID marshals to JSON as a plain hex
// string for transport.
type HistoryItem struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Type      string             `json:"type" bson:"type"`
	Content   string             `json:"content" bson:"content"`
	Context   *GenerationContext `json:"context,omitempty" bson:"context,omitempty"`
	Timestamp string             `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
}
