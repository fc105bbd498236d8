package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarketingRecord stores one batch of generated trends for a user. Records
// are append-only; repeated trend fetches create new documents.
type MarketingRecord struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID string             `json:"user_id" bson:"user_id"`
	Trends []string           `json:"trends" bson:"trends"`
}

// Survey is the onboarding company profile submitted with a trends request.
// It is ephemeral: embedded into prompts, never persisted on its own.
type Survey struct {
	CompanyName        string `json:"companyName"`
	CompanyDescription string `json:"companyDescription"`
	Country            string `json:"country"`
	BrandColors        string `json:"brandColors"`
	Tone               string `json:"tone"`
}
