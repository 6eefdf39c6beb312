// internal/models/extraction.go
package models

// Position is one role held by the candidate, with its taxonomy normalization.
type Position struct {
	RawTitle        string `json:"rawTitle"`
	NormalizedTitle string `json:"normalizedTitle"`
	Category        string `json:"category"`
	IsPrimary       bool   `json:"isPrimary"`
}

type Certification struct {
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Expiry    *string `json:"expiry,omitempty"`
	LicenseNo string  `json:"licenseNo,omitempty"`
}

type License struct {
	Type       string  `json:"type"`
	Authority  string  `json:"authority,omitempty"`
	Number     string  `json:"number,omitempty"`
	IssueDate  *string `json:"issueDate,omitempty"`
	ExpiryDate *string `json:"expiryDate,omitempty"`
}

type LanguageSkill struct {
	Language    string `json:"language"`
	Proficiency string `json:"proficiency,omitempty"`
}

// VesselExperience records time served on a named yacht. Sizes are stored in
// meters (feet are converted at extraction with the 0.3048 factor).
type VesselExperience struct {
	Name           string   `json:"name"`
	SizeMeters     *float64 `json:"sizeMeters,omitempty"`
	Type           string   `json:"type,omitempty"`
	Position       string   `json:"position,omitempty"`
	DurationMonths *int     `json:"durationMonths,omitempty"`
	StartDate      *string  `json:"startDate,omitempty"`
	EndDate        *string  `json:"endDate,omitempty"`
}

type PropertyExperience struct {
	Name           string  `json:"name"`
	Type           string  `json:"type,omitempty"`
	Location       string  `json:"location,omitempty"`
	Position       string  `json:"position,omitempty"`
	DurationMonths *int    `json:"durationMonths,omitempty"`
	StartDate      *string `json:"startDate,omitempty"`
	EndDate        *string `json:"endDate,omitempty"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        *int   `json:"year,omitempty"`
}

// ReferenceContact is a reference person named in the CV.
type ReferenceContact struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ExtractionResult is the validated structured profile extracted from a CV.
type ExtractionResult struct {
	YearsOfExperience  *float64             `json:"yearsOfExperience,omitempty"`
	PositionsHeld      []Position           `json:"positionsHeld"`
	Certifications     []Certification      `json:"certifications"`
	Licenses           []License            `json:"licenses"`
	Languages          []LanguageSkill      `json:"languages"`
	YachtExperience    []VesselExperience   `json:"yachtExperience"`
	PropertyExperience []PropertyExperience `json:"propertyExperience"`
	Education          []Education          `json:"education"`
	References         []ReferenceContact   `json:"references"`

	HasSTCW        bool `json:"hasStcw"`
	HasENG1        bool `json:"hasEng1"`
	HasYachtmaster bool `json:"hasYachtmaster"`
	HasPowerboat   bool `json:"hasPowerboat"`

	ExtractionConfidence float64 `json:"extractionConfidence"`
	ExtractionNotes      string  `json:"extractionNotes,omitempty"`
}

// PrimaryPosition returns the primary role, or the first held position when
// none is flagged primary.
func (r *ExtractionResult) PrimaryPosition() *Position {
	for i := range r.PositionsHeld {
		if r.PositionsHeld[i].IsPrimary {
			return &r.PositionsHeld[i]
		}
	}
	if len(r.PositionsHeld) > 0 {
		return &r.PositionsHeld[0]
	}
	return nil
}
