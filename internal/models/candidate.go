// internal/models/candidate.go
package models

import "time"

// CandidateProfile carries the identity and preference fields the pipeline
// reads and writes. The record store owns the rest of the candidate row.
type CandidateProfile struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Nationality string `json:"nationality"`

	// Current profile positions, taxonomy-normalized.
	Positions []Position `json:"positions"`

	// Explicit "looking for" preferences. When present these strictly
	// override profile positions for matching; the two are never merged.
	PreferredPositions     []string `json:"preferredPositions"`
	PreferredRegions       []string `json:"preferredRegions"`
	PreferredContractTypes []string `json:"preferredContractTypes"`
	DesiredSalaryMin       *int     `json:"desiredSalaryMin,omitempty"`

	Extraction      *ExtractionResult `json:"extraction,omitempty"`
	LastExtractedAt *time.Time        `json:"lastExtractedAt,omitempty"`
}

// PrimaryPositionTitle returns the standardized title of the candidate's
// primary role, falling back to the raw title and finally an empty string.
func (c *CandidateProfile) PrimaryPositionTitle() string {
	for _, p := range c.Positions {
		if p.IsPrimary {
			if p.NormalizedTitle != "" {
				return p.NormalizedTitle
			}
			return p.RawTitle
		}
	}
	if len(c.Positions) > 0 {
		if c.Positions[0].NormalizedTitle != "" {
			return c.Positions[0].NormalizedTitle
		}
		return c.Positions[0].RawTitle
	}
	return ""
}

// SoughtPositions builds the priority-ordered position list used by the match
// scorer: preference positions win outright, profile positions are only a
// fallback. The two lists are never merged.
func (c *CandidateProfile) SoughtPositions() []string {
	if len(c.PreferredPositions) > 0 {
		return c.PreferredPositions
	}
	out := make([]string, 0, len(c.Positions))
	for _, p := range c.Positions {
		title := p.NormalizedTitle
		if title == "" {
			title = p.RawTitle
		}
		if title != "" {
			out = append(out, title)
		}
	}
	return out
}

// JobPosting is the job subset the match scorer consumes.
type JobPosting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Region       string `json:"region"`
	ContractType string `json:"contractType"`
	SalaryMin    *int   `json:"salaryMin,omitempty"`
	SalaryMax    *int   `json:"salaryMax,omitempty"`
}

// MatchType classifies a match score.
type MatchType string

const (
	MatchTypeMatch MatchType = "match"
	MatchTypeNone  MatchType = "none"
)

// MatchScore is ephemeral, computed on demand and optionally cached.
type MatchScore struct {
	Score     int       `json:"score"` // 0-100
	MatchType MatchType `json:"matchType"`
}
