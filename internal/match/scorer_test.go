package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/models"
)

func intPtr(i int) *int { return &i }

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	return NewScorer(logger.NewTestLogger(t))
}

func TestScore_PerfectMatch(t *testing.T) {
	s := newTestScorer(t)

	candidate := &models.CandidateProfile{
		ID:                     "cand-1",
		PreferredPositions:     []string{"Chief Stewardess"},
		PreferredRegions:       []string{"Mediterranean"},
		PreferredContractTypes: []string{"Permanent"},
		DesiredSalaryMin:       intPtr(4000),
	}
	job := &models.JobPosting{
		ID:           "job-1",
		Title:        "Chief Stewardess Required",
		Region:       "Mediterranean",
		ContractType: "permanent",
		SalaryMax:    intPtr(5500),
	}

	got := s.Score(candidate, job)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, models.MatchTypeMatch, got.MatchType)
}

func TestScore_NoPositionMatchOverridesEverything(t *testing.T) {
	s := newTestScorer(t)

	// Region, contract and salary all agree; the position gate still zeroes it.
	candidate := &models.CandidateProfile{
		ID:                     "cand-1",
		PreferredPositions:     []string{"Deckhand"},
		PreferredRegions:       []string{"Mediterranean"},
		PreferredContractTypes: []string{"Permanent"},
		DesiredSalaryMin:       intPtr(4000),
	}
	job := &models.JobPosting{
		ID:           "job-1",
		Title:        "Chief Stewardess Required",
		Region:       "Mediterranean",
		ContractType: "permanent",
		SalaryMax:    intPtr(5500),
	}

	got := s.Score(candidate, job)
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, models.MatchTypeNone, got.MatchType)
}

func TestScore_PartialBonuses(t *testing.T) {
	job := &models.JobPosting{
		ID:           "job-1",
		Title:        "Sole Engineer",
		Region:       "Caribbean",
		ContractType: "rotational",
		SalaryMax:    intPtr(7000),
	}

	tests := []struct {
		name      string
		candidate *models.CandidateProfile
		want      int
	}{
		{
			"position only",
			&models.CandidateProfile{PreferredPositions: []string{"Engineer"}},
			50,
		},
		{
			"position and region",
			&models.CandidateProfile{
				PreferredPositions: []string{"Engineer"},
				PreferredRegions:   []string{"caribbean"},
			},
			75,
		},
		{
			"position and contract",
			&models.CandidateProfile{
				PreferredPositions:     []string{"Engineer"},
				PreferredContractTypes: []string{"Rotational"},
			},
			65,
		},
		{
			"position and salary",
			&models.CandidateProfile{
				PreferredPositions: []string{"Engineer"},
				DesiredSalaryMin:   intPtr(6000),
			},
			60,
		},
		{
			"salary floor above ceiling gives no bonus",
			&models.CandidateProfile{
				PreferredPositions: []string{"Engineer"},
				DesiredSalaryMin:   intPtr(8000),
			},
			50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScorer(t)
			got := s.Score(tt.candidate, job)
			assert.Equal(t, tt.want, got.Score)
			assert.Equal(t, models.MatchTypeMatch, got.MatchType)
		})
	}
}

func TestScore_PreferencesOverrideProfilePositions(t *testing.T) {
	s := newTestScorer(t)

	// Profile says stewardess, preferences say deckhand. Preferences win
	// outright, so a stewardess job must not match.
	candidate := &models.CandidateProfile{
		Positions: []models.Position{
			{RawTitle: "Stewardess", NormalizedTitle: "Stewardess"},
		},
		PreferredPositions: []string{"Deckhand"},
	}
	job := &models.JobPosting{Title: "Chief Stewardess"}

	got := s.Score(candidate, job)
	assert.Equal(t, models.MatchTypeNone, got.MatchType)

	// Deckhand job matches via the preference.
	got = s.Score(candidate, &models.JobPosting{Title: "Deckhand wanted"})
	assert.Equal(t, models.MatchTypeMatch, got.MatchType)
}

func TestScore_ProfileFallbackWhenNoPreferences(t *testing.T) {
	s := newTestScorer(t)

	candidate := &models.CandidateProfile{
		Positions: []models.Position{
			{RawTitle: "Bosun", NormalizedTitle: "Bosun"},
		},
	}

	got := s.Score(candidate, &models.JobPosting{Title: "Bosun for 60m M/Y"})
	assert.Equal(t, models.MatchTypeMatch, got.MatchType)
}

func TestScore_AliasNormalization(t *testing.T) {
	s := newTestScorer(t)

	// "Stewardess" and "2nd Stew" both canonicalize on "stew".
	candidate := &models.CandidateProfile{
		PreferredPositions: []string{"2nd Stewardess"},
	}
	got := s.Score(candidate, &models.JobPosting{Title: "2nd Stew needed ASAP"})
	assert.Equal(t, models.MatchTypeMatch, got.MatchType)
}

func TestScore_EmptyInputs(t *testing.T) {
	s := newTestScorer(t)

	got := s.Score(&models.CandidateProfile{}, &models.JobPosting{Title: "Captain"})
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, models.MatchTypeNone, got.MatchType)

	got = s.Score(&models.CandidateProfile{PreferredPositions: []string{"Captain"}}, &models.JobPosting{})
	assert.Equal(t, models.MatchTypeNone, got.MatchType)
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Chief   Stewardess ", "chief stew"},
		{"2nd Steward", "second stew"},
		{"Deckhand", "deckhand"},
		{"M/Y Deckhand", "deckhand"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTitle(tt.in), "input %q", tt.in)
	}
}

func TestRegionMatches_Bidirectional(t *testing.T) {
	assert.True(t, regionMatches([]string{"Med"}, "Mediterranean"))
	assert.True(t, regionMatches([]string{"Western Mediterranean"}, "mediterranean"))
	assert.False(t, regionMatches([]string{"Caribbean"}, "Mediterranean"))
	assert.False(t, regionMatches(nil, "Mediterranean"))
	assert.False(t, regionMatches([]string{"Med"}, ""))
}
