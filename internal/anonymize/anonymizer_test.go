package anonymize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crew-pipeline/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func newTestAnonymizer() *Anonymizer {
	return New(
		Identity{
			FirstName:   "John",
			LastName:    "Smith",
			Nationality: "British",
			Position:    "Chief Engineer",
		},
		[]models.ReferenceContact{
			{Name: "James Holloway", Position: "Captain"},
			{Name: "Sarah Whitfield"},
		},
		[]Vessel{
			{Name: "M/Y Lady Aurora", SizeMeters: floatPtr(52), Type: "motor yacht"},
			{Name: "Serenity", Type: "sailing yacht"},
		},
		[]Property{
			{Name: "Villa Collina", Location: "Monaco", Type: "villa"},
			{Name: "The Old Rectory"},
		},
	)
}

func TestAnonymize_FullName(t *testing.T) {
	a := newTestAnonymizer()

	out := a.Anonymize("John Smith is a highly motivated engineer. JOHN SMITH holds an ENG1.")
	assert.NotContains(t, strings.ToLower(out), "john smith")
	assert.Contains(t, out, "This British Chief Engineer")
}

func TestAnonymize_IsolatedNameParts(t *testing.T) {
	a := newTestAnonymizer()

	out := a.Anonymize("Smith worked on deck. John later moved to engineering.")
	assert.NotContains(t, strings.ToLower(out), "smith")
	assert.NotContains(t, strings.ToLower(out), "john")
	assert.Contains(t, out, "the candidate")
}

func TestAnonymize_CommonWordLastNameLeftAlone(t *testing.T) {
	a := New(
		Identity{FirstName: "Fiona", LastName: "Hill", Nationality: "Irish", Position: "Stewardess"},
		nil, nil, nil,
	)

	out := a.Anonymize("Fiona Hill is diligent. Fiona trained at a hill station.")
	// Full name replaced; the common-word last name survives on its own but
	// the first name never does.
	assert.Contains(t, out, "This Irish Stewardess")
	assert.Contains(t, out, "hill station")
	assert.NotContains(t, strings.ToLower(out), "fiona")
}

func TestAnonymize_FirstNameAlwaysRedacted(t *testing.T) {
	a := New(
		Identity{FirstName: "May", LastName: "Thornton", Nationality: "Australian", Position: "Chef"},
		nil, nil, nil,
	)

	out := a.Anonymize("May joined in 2019. Thornton ran the galley solo.")
	lower := strings.ToLower(out)
	assert.NotContains(t, lower, "may")
	assert.NotContains(t, lower, "thornton")
	assert.Contains(t, out, "the candidate")
}

func TestAnonymize_References(t *testing.T) {
	a := newTestAnonymizer()

	out := a.Anonymize("Reference: Captain James Holloway. Contact Holloway for details. Sarah Whitfield can also be reached.")
	lower := strings.ToLower(out)
	assert.NotContains(t, lower, "holloway")
	assert.NotContains(t, lower, "whitfield")
	assert.Contains(t, out, "a former Captain")
	assert.Contains(t, out, "a previous employer")
}

func TestAnonymize_RepeatedLabelsCollapsed(t *testing.T) {
	a := newTestAnonymizer()

	out := a.Anonymize("Reference: James Holloway Holloway. John Smith John Smith was punctual.")
	assert.Equal(t, 1, strings.Count(out, "a former Captain"))
	assert.Equal(t, 1, strings.Count(out, "This British Chief Engineer"))
}

func TestAnonymize_CandidateSurnameWinsOverReference(t *testing.T) {
	a := New(
		Identity{FirstName: "John", LastName: "Smith", Nationality: "British", Position: "Chief Engineer"},
		[]models.ReferenceContact{{Name: "Paul Smith", Position: "Captain"}},
		nil, nil,
	)

	// A shared surname belongs to the candidate, not the reference.
	out := a.Anonymize("Smith handled engineering alone.")
	assert.Contains(t, out, "the candidate")
	assert.NotContains(t, out, "a former Captain")
}

func TestAnonymize_Vessels(t *testing.T) {
	a := newTestAnonymizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"prefixed", "Three seasons on M/Y Lady Aurora.", "a 52m motor yacht"},
		{"aboard", "Worked aboard Lady Aurora as chief.", "aboard a 52m motor yacht"},
		{"the form", "Joined the Lady Aurora in 2021.", "the a 52m motor yacht"},
		{"no size", "Delivery trip on Serenity.", "a sailing yacht"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := a.Anonymize(tt.in)
			assert.NotContains(t, strings.ToLower(out), "aurora")
			assert.NotContains(t, strings.ToLower(out), "serenity")
			if tt.name == "the form" {
				// "the a" pairs collapse in cleanup.
				assert.Contains(t, out, "a 52m motor yacht")
				assert.NotContains(t, out, "the a ")
				return
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestAnonymize_Properties(t *testing.T) {
	a := newTestAnonymizer()

	out := a.Anonymize("House manager at Villa Collina for two years, then The Old Rectory.")
	lower := strings.ToLower(out)
	assert.NotContains(t, lower, "collina")
	assert.NotContains(t, lower, "rectory")
	assert.Contains(t, out, "a villa in Monaco")
	assert.Contains(t, out, "a private residence")
}

func TestAnonymize_CleanupArtifacts(t *testing.T) {
	a := newTestAnonymizer()

	out := a.Anonymize("John  Smith   sailed on the M/Y Lady Aurora.")
	assert.NotContains(t, out, "  ")
	assert.NotContains(t, strings.ToLower(out), "the a ")
}

func TestAnonymize_Idempotent(t *testing.T) {
	a := newTestAnonymizer()

	in := "John Smith served aboard M/Y Lady Aurora under Captain James Holloway at Villa Collina."
	once := a.Anonymize(in)
	twice := a.Anonymize(once)
	assert.Equal(t, once, twice)
}

func TestAnonymize_MissingIdentityFields(t *testing.T) {
	a := New(Identity{FirstName: "Jane", LastName: "Doe"}, nil, nil, nil)

	out := a.Anonymize("Jane Doe is available immediately.")
	require.NotContains(t, strings.ToLower(out), "jane doe")
	assert.Contains(t, out, "This candidate")
}

func TestVesselLabel(t *testing.T) {
	assert.Equal(t, "a 52m motor yacht", vesselLabel(Vessel{SizeMeters: floatPtr(52), Type: "Motor Yacht"}))
	assert.Equal(t, "a yacht", vesselLabel(Vessel{}))
}

func TestVesselLabel_TypeTokens(t *testing.T) {
	// Raw extraction tokens never leak into the anonymized text.
	assert.Equal(t, "a 52m motor yacht", vesselLabel(Vessel{SizeMeters: floatPtr(52), Type: "motor_yacht"}))
	assert.Equal(t, "a sailing yacht", vesselLabel(Vessel{Type: "SAILING_YACHT"}))
	assert.Equal(t, "a yacht", vesselLabel(Vessel{Type: "trawler"}))
}

func TestPropertyLabel(t *testing.T) {
	assert.Equal(t, "a villa in Monaco", propertyLabel(Property{Type: "villa", Location: "Monaco"}))
	assert.Equal(t, "a private residence", propertyLabel(Property{}))
}

func TestPropertyLabel_TypeTokens(t *testing.T) {
	assert.Equal(t, "a private household in London", propertyLabel(Property{Type: "household", Location: "London"}))
	assert.Equal(t, "a private residence", propertyLabel(Property{Type: "ski_lodge"}))
}

func TestFromProfile(t *testing.T) {
	profile := &models.CandidateProfile{
		FirstName:   "John",
		LastName:    "Smith",
		Nationality: "British",
		Positions: []models.Position{
			{RawTitle: "chief engineer", NormalizedTitle: "Chief Engineer", Category: "engineering", IsPrimary: true},
		},
		Extraction: &models.ExtractionResult{
			References: []models.ReferenceContact{
				{Name: "James Holloway", Position: "Captain"},
			},
			YachtExperience: []models.VesselExperience{
				{Name: "M/Y Lady Aurora", SizeMeters: floatPtr(52), Type: "motor yacht"},
			},
			PropertyExperience: []models.PropertyExperience{
				{Name: "Villa Collina", Location: "Monaco", Type: "villa"},
			},
		},
	}

	a := FromProfile(profile)
	out := a.Anonymize("John Smith worked aboard M/Y Lady Aurora and at Villa Collina for Captain James Holloway.")

	low := strings.ToLower(out)
	assert.NotContains(t, low, "john smith")
	assert.NotContains(t, low, "lady aurora")
	assert.NotContains(t, low, "villa collina")
	assert.NotContains(t, low, "holloway")
	assert.Contains(t, out, "This British Chief Engineer")
}

func TestFromProfile_NoExtraction(t *testing.T) {
	profile := &models.CandidateProfile{FirstName: "Jane", LastName: "Doe"}

	a := FromProfile(profile)
	out := a.Anonymize("Jane Doe is available immediately.")
	assert.NotContains(t, strings.ToLower(out), "jane doe")
}
