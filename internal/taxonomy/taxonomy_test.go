package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ExactMatch(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		standard string
		category Category
	}{
		{"captain", "captain", "Captain", CategoryDeck},
		{"chief stewardess", "chief stewardess", "Chief Stewardess", CategoryInterior},
		{"chief engineer", "chief engineer", "Chief Engineer", CategoryEngineering},
		{"head chef", "head chef", "Head Chef", CategoryGalley},
		{"estate manager", "estate manager", "Estate Manager", CategoryVilla},
		{"nanny", "nanny", "Nanny", CategoryChildcare},
		{"cpo expands", "cpo", "Close Protection Officer", CategorySecurity},
		{"nurse", "nurse", "Nurse", CategoryMedical},
		{"masseuse", "masseuse", "Masseuse", CategoryWellness},
		{"dayworker", "dayworker", "Dayworker", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Normalize(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.standard, m.Standard)
			assert.Equal(t, tt.category, m.Category)
		})
	}
}

func TestNormalize_CaseAndWhitespace(t *testing.T) {
	m, ok := Normalize("  Chief STEWARDESS ")
	require.True(t, ok)
	assert.Equal(t, "Chief Stewardess", m.Standard)
	assert.Equal(t, CategoryInterior, m.Category)
}

func TestNormalize_SubstringRawContainsKey(t *testing.T) {
	// Raw title with extra qualifiers still matches the embedded key.
	m, ok := Normalize("experienced 2nd stewardess (rotational)")
	require.True(t, ok)
	assert.Equal(t, "Second Stewardess", m.Standard)
}

func TestNormalize_SubstringKeyContainsRaw(t *testing.T) {
	m, ok := Normalize("boatswai")
	require.True(t, ok)
	assert.Equal(t, "Bosun", m.Standard)
}

func TestNormalize_LongestKeyWins(t *testing.T) {
	// "junior stewardess" contains both "junior stewardess" implicitly via
	// substring keys "stewardess" and "stew"; the longer, more specific
	// key must win.
	m, ok := Normalize("looking for junior stewardess role")
	require.True(t, ok)
	assert.Equal(t, "Junior Stewardess", m.Standard)

	m, ok = Normalize("chief stewardess / purser")
	require.True(t, ok)
	assert.Equal(t, "Chief Stewardess", m.Standard)
}

func TestNormalize_NoMatch(t *testing.T) {
	_, ok := Normalize("astronaut")
	assert.False(t, ok)

	_, ok = Normalize("")
	assert.False(t, ok)

	_, ok = Normalize("   ")
	assert.False(t, ok)
}

func TestNormalizeOrOther_FallsBackToOther(t *testing.T) {
	m := NormalizeOrOther("  Quantity Surveyor ")
	assert.Equal(t, "Quantity Surveyor", m.Standard)
	assert.Equal(t, CategoryOther, m.Category)
}

func TestNormalize_EveryTableEntryRoundTrips(t *testing.T) {
	for raw, want := range rawMappings {
		m, ok := Normalize(raw)
		require.True(t, ok, "table key %q did not normalize", raw)
		// Exact keys must hit their own entry, not a substring neighbour.
		assert.Equal(t, want.Standard, m.Standard, "key %q", raw)
		assert.Equal(t, want.Category, m.Category, "key %q", raw)
	}
}

func TestCategories_IncludesOther(t *testing.T) {
	cats := Categories()
	assert.Contains(t, cats, CategoryOther)
	assert.Len(t, cats, 11)
}
