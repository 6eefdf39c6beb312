package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDocumentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"cv variant", "CV/Resume", "cv"},
		{"resume", "resume", "cv"},
		{"passport", "Passport/ID", "id"},
		{"discharge book", "Seaman's Discharge Book", "id"},
		{"eng1 is medical", "ENG1", "medical"},
		{"stcw module", "STCW First Aid", "stcw"},
		{"license spelling", "Licence", "license"},
		{"yachtmaster", "Yachtmaster Offshore", "license"},
		{"food safety", "Food Safety Certificate", "food_safety"},
		{"diving", "PADI", "diving"},
		{"visa", "B1/B2", "visa"},
		{"reference", "Written Reference", "reference"},
		{"photo", "Full Length Photo", "photo"},
		{"whitespace trimmed", "  photo  ", "photo"},
		{"unknown falls back", "Mystery Upload", "other"},
		{"empty falls back", "", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDocumentType(tt.input))
		})
	}
}

func TestATSJobFieldName(t *testing.T) {
	name, ok := ATSJobFieldName("f8b2c1ddc995fb699973598e449193c3")
	assert.True(t, ok)
	assert.Equal(t, "Yacht", name)

	name, ok = ATSJobFieldName("c980a4f92992081ead936fb8a358fb79")
	assert.True(t, ok)
	assert.Equal(t, "Contract Type", name)

	_, ok = ATSJobFieldName("deadbeef")
	assert.False(t, ok)
}
