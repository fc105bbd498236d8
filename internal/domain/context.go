package domain

// GenerationContext is the optional context attached to a generation request.
// Either a company profile (from the onboarding survey) or a scanned-product
// analysis; all fields are optional and only the populated ones are used to
// enrich prompts.
type GenerationContext struct {
	CompanyName        string   `json:"companyName,omitempty" bson:"companyName,omitempty"`
	CompanyDescription string   `json:"companyDescription,omitempty" bson:"companyDescription,omitempty"`
	Country            string   `json:"country,omitempty" bson:"country,omitempty"`
	BrandColors        string   `json:"brandColors,omitempty" bson:"brandColors,omitempty"`
	Tone               string   `json:"tone,omitempty" bson:"tone,omitempty"`
	Product            string   `json:"product,omitempty" bson:"product,omitempty"`
	Confidence         float64  `json:"confidence,omitempty" bson:"confidence,omitempty"`
	Features           []string `json:"features,omitempty" bson:"features,omitempty"`
	Image              string   `json:"image,omitempty" bson:"image,omitempty"`
}
