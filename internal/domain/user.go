package domain

// User is the persisted profile document for an authenticated user. The _id
// is the token-derived user ID (a plain string, not an ObjectID) so profile
// updates can upsert without a prior registration step.
type User struct {
	ID    string `json:"id" bson:"_id"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
}
