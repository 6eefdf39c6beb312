// Package keywords derives a flat searchable keyword set from a structured
// extraction and pushes it, with an optional embedding, to the search index.
package keywords

import (
	"sort"
	"strings"

	"crew-pipeline/internal/models"
)

// Build flattens an extraction into deduplicated lowercase keywords:
// position titles, certification and license names, languages, vessel and
// property names and types, and the certificate flags. Output is sorted so
// repeated runs over the same extraction produce identical documents.
func Build(result *models.ExtractionResult) []string {
	if result == nil {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	add := func(values ...string) {
		for _, v := range values {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}

	for _, p := range result.PositionsHeld {
		add(p.RawTitle, p.NormalizedTitle, p.Category)
	}
	for _, c := range result.Certifications {
		add(c.Name, c.Category)
	}
	for _, l := range result.Licenses {
		add(l.Type, l.Authority)
	}
	for _, l := range result.Languages {
		add(l.Language)
	}
	for _, v := range result.YachtExperience {
		add(v.Name, v.Type, v.Position)
	}
	for _, p := range result.PropertyExperience {
		add(p.Name, p.Type, p.Location, p.Position)
	}

	if result.HasSTCW {
		add("stcw")
	}
	if result.HasENG1 {
		add("eng1")
	}
	if result.HasYachtmaster {
		add("yachtmaster")
	}
	if result.HasPowerboat {
		add("powerboat")
	}

	sort.Strings(out)
	return out
}
