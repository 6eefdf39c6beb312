// Package extraction converts plain CV text into a validated
// models.ExtractionResult using an LLM with JSON response mode.
//
// Model output is schema-validated before anything downstream sees it. A
// post-processing pass normalizes position titles against the taxonomy and
// ORs the certificate flags with a plain-text scan so a model that missed
// an explicit "STCW" mention cannot suppress the flag.
package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	pipeerrors "crew-pipeline/internal/common/errors"
	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/genai"
	"crew-pipeline/internal/models"
	"crew-pipeline/internal/taxonomy"
)

type Extractor struct {
	generator genai.Generator
	logger    logger.Logger
}

func NewExtractor(generator genai.Generator, log logger.Logger) *Extractor {
	return &Extractor{generator: generator, logger: log}
}

// Extract runs the LLM over the CV text and returns the validated,
// post-processed result.
func (e *Extractor) Extract(ctx context.Context, cvText string) (*models.ExtractionResult, error) {
	raw, err := e.generator.GenerateJSON(ctx, BuildPrompt(cvText))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, pipeerrors.NewLLMTimeoutError()
		}
		return nil, pipeerrors.NewLLMExtractionFailedError(err)
	}

	result, err := parseAndValidate(raw)
	if err != nil {
		return nil, err
	}

	e.postProcess(result)
	return result, nil
}

func parseAndValidate(raw string) (*models.ExtractionResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(resultSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)

	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, pipeerrors.NewSchemaValidationFailedError(err.Error())
	}
	if !validation.Valid() {
		errs := make([]string, len(validation.Errors()))
		for i, desc := range validation.Errors() {
			errs[i] = desc.String()
		}
		return nil, pipeerrors.NewSchemaValidationFailedError(strings.Join(errs, "; "))
	}

	var result models.ExtractionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, pipeerrors.NewSchemaValidationFailedError(err.Error())
	}

	return &result, nil
}

// postProcess normalizes positions against the taxonomy, defaults missing
// categories to "other", and ORs the certificate flags with a scan over
// the extracted certification and license names. The scan covers the case
// where the model listed a certificate but asserted the flag false.
func (e *Extractor) postProcess(result *models.ExtractionResult) {
	var unmatched []string
	for i := range result.PositionsHeld {
		pos := &result.PositionsHeld[i]
		m, ok := taxonomy.Normalize(pos.RawTitle)
		if ok {
			pos.NormalizedTitle = m.Standard
			pos.Category = string(m.Category)
			continue
		}
		if pos.NormalizedTitle == "" {
			pos.NormalizedTitle = strings.TrimSpace(pos.RawTitle)
		}
		if pos.Category == "" || !knownCategory(pos.Category) {
			pos.Category = string(taxonomy.CategoryOther)
		}
		unmatched = append(unmatched, pos.RawTitle)
	}

	if len(unmatched) > 0 {
		e.logger.Debug("Positions not found in taxonomy, categorized as other", map[string]interface{}{
			"titles": unmatched,
		})
		note := "unmatched positions: " + strings.Join(unmatched, ", ")
		if result.ExtractionNotes == "" {
			result.ExtractionNotes = note
		} else {
			result.ExtractionNotes += "; " + note
		}
	}

	var names []string
	for _, c := range result.Certifications {
		names = append(names, c.Name)
	}
	for _, l := range result.Licenses {
		names = append(names, l.Type)
	}
	lower := strings.ToLower(strings.Join(names, "\n"))

	result.HasSTCW = result.HasSTCW || strings.Contains(lower, "stcw")
	result.HasENG1 = result.HasENG1 || strings.Contains(lower, "eng1")
	result.HasYachtmaster = result.HasYachtmaster ||
		strings.Contains(lower, "yachtmaster") || strings.Contains(lower, "yacht master")
	result.HasPowerboat = result.HasPowerboat ||
		strings.Contains(lower, "powerboat") || strings.Contains(lower, "power boat")
}

func knownCategory(category string) bool {
	for _, c := range taxonomy.Categories() {
		if string(c) == strings.ToLower(strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// FeetToMeters converts a vessel length given in feet, rounded to one
// decimal the way extracted sizes are stored.
func FeetToMeters(feet float64) float64 {
	meters := feet * 0.3048
	return float64(int(meters*10+0.5)) / 10
}
