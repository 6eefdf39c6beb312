// Package taxonomy normalizes free-text position titles against a static
// mapping table of known crew and household roles.
//
// Lookup is exact first, then a bidirectional substring pass: the raw title
// containing a table key, or a table key containing the raw title. When
// several keys match via substring, the longest key wins so that more
// specific entries ("chief stewardess") beat their shorter prefixes
// ("stewardess", "stew").
package taxonomy

import (
	"sort"
	"strings"
)

// Category is the broad functional grouping of a position.
type Category string

const (
	CategoryDeck        Category = "deck"
	CategoryInterior    Category = "interior"
	CategoryEngineering Category = "engineering"
	CategoryGalley      Category = "galley"
	CategoryVilla       Category = "villa"
	CategoryChildcare   Category = "childcare"
	CategorySecurity    Category = "security"
	CategoryMedical     Category = "medical"
	CategoryManagement  Category = "management"
	CategoryWellness    Category = "wellness"
	CategoryOther       Category = "other"
)

// Mapping is the normalized form of a raw position title.
type Mapping struct {
	Standard string
	Category Category
}

// orderedKeys holds table keys sorted by descending length, then
// lexicographically, so substring matching is deterministic.
var orderedKeys = buildOrderedKeys()

func buildOrderedKeys() []string {
	keys := make([]string, 0, len(rawMappings))
	for k := range rawMappings {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Normalize maps a raw title to its standardized title and category.
// The boolean reports whether any table entry matched; callers that need
// a category regardless should fall back to CategoryOther themselves.
func Normalize(rawTitle string) (Mapping, bool) {
	title := strings.ToLower(strings.TrimSpace(rawTitle))
	if title == "" {
		return Mapping{}, false
	}

	if m, ok := rawMappings[title]; ok {
		return m, true
	}

	for _, key := range orderedKeys {
		if strings.Contains(title, key) || strings.Contains(key, title) {
			return rawMappings[key], true
		}
	}

	return Mapping{}, false
}

// NormalizeOrOther behaves like Normalize but never fails: titles with no
// table match keep their trimmed raw form and are categorized as "other".
func NormalizeOrOther(rawTitle string) Mapping {
	if m, ok := Normalize(rawTitle); ok {
		return m
	}
	return Mapping{Standard: strings.TrimSpace(rawTitle), Category: CategoryOther}
}

// Categories lists every known category, in stable order.
func Categories() []Category {
	return []Category{
		CategoryDeck, CategoryInterior, CategoryEngineering, CategoryGalley,
		CategoryVilla, CategoryChildcare, CategorySecurity, CategoryMedical,
		CategoryManagement, CategoryWellness, CategoryOther,
	}
}
