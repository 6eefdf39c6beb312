package aws

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "cv.pdf", "cv.pdf"},
		{"spaces to underscores", "John Smith CV.pdf", "John_Smith_CV.pdf"},
		{"quotes stripped", `John's "final" CV.pdf`, "Johns_final_CV.pdf"},
		{"non ascii stripped", "résumé.pdf", "rsum.pdf"},
		{"disallowed chars removed", "cv(2024)!.pdf", "cv2024.pdf"},
		{"underscore runs collapsed", "a___b.pdf", "a_b.pdf"},
		{"dot runs collapsed", "cv...pdf", "cv.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_DegenerateInputGetsGeneratedName(t *testing.T) {
	for _, input := range []string{"", ".", "_", "-", "日本語"} {
		got := SanitizeFilename(input)
		assert.True(t, strings.HasPrefix(got, "document_"), "input %q produced %q", input, got)
	}
}

func TestDocumentPath(t *testing.T) {
	got := DocumentPath("cand-1", "cv", "John Smith CV.pdf")
	assert.Equal(t, "cand-1/cv/John_Smith_CV.pdf", got)
}
