// Package anonymize strips personally identifying information from CV text
// before it is shown to clients. Replacement is ordered from most to least
// specific: the candidate's full name, isolated name parts, reference
// contacts, vessel names, then property names. A final cleanup pass collapses
// the whitespace and doubled placeholders the substitutions leave behind.
package anonymize

import (
	"fmt"
	"regexp"
	"strings"

	"crew-pipeline/internal/models"
)

// Identity is what the anonymizer knows about the candidate.
type Identity struct {
	FirstName   string
	LastName    string
	Nationality string
	Position    string
}

// Vessel is a named yacht to scrub from the text.
type Vessel struct {
	Name       string
	SizeMeters *float64
	Type       string
}

// Property is a named estate or household to scrub from the text.
type Property struct {
	Name     string
	Location string
	Type     string
}

// commonWords are name parts that double as ordinary English words.
// They are never replaced when they appear on their own.
var commonWords = map[string]bool{
	"will": true, "grace": true, "hope": true, "june": true, "may": true,
	"august": true, "bill": true, "mark": true, "jack": true, "rose": true,
	"ray": true, "art": true, "dawn": true, "gene": true, "guy": true,
	"victor": true, "joy": true, "pat": true, "king": true, "young": true,
	"white": true, "black": true, "brown": true, "green": true, "stone": true,
	"wood": true, "hill": true, "rich": true, "price": true, "long": true,
	"bishop": true, "cook": true, "baker": true, "ward": true, "chase": true,
	"summer": true, "west": true, "north": true, "south": true, "east": true,
}

// vesselPrefixRe strips designators like M/Y, S/Y, MY, SY from the front of
// a vessel name before matching.
var vesselPrefixRe = regexp.MustCompile(`(?i)^(m/y|s/y|m/v|s/v|my|sy|mv|sv)\s+`)

type Anonymizer struct {
	identity   Identity
	references []models.ReferenceContact
	vessels    []Vessel
	properties []Property
}

func New(identity Identity, references []models.ReferenceContact, vessels []Vessel, properties []Property) *Anonymizer {
	return &Anonymizer{
		identity:   identity,
		references: references,
		vessels:    vessels,
		properties: properties,
	}
}

// FromProfile builds an anonymizer from a stored candidate profile, pulling
// references, vessels and properties out of its extraction result.
func FromProfile(profile *models.CandidateProfile) *Anonymizer {
	identity := Identity{
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Nationality: profile.Nationality,
		Position:    profile.PrimaryPositionTitle(),
	}

	var references []models.ReferenceContact
	var vessels []Vessel
	var properties []Property
	if profile.Extraction != nil {
		references = profile.Extraction.References
		for _, v := range profile.Extraction.YachtExperience {
			vessels = append(vessels, Vessel{Name: v.Name, SizeMeters: v.SizeMeters, Type: v.Type})
		}
		for _, p := range profile.Extraction.PropertyExperience {
			properties = append(properties, Property{Name: p.Name, Location: p.Location, Type: p.Type})
		}
	}

	return New(identity, references, vessels, properties)
}

// Anonymize returns the text with candidate, reference, vessel and property
// identities replaced by neutral placeholders. Running it over already
// anonymized text is a no-op.
func (a *Anonymizer) Anonymize(text string) string {
	text = a.replaceCandidateName(text)
	text = a.replaceIsolatedNameParts(text)
	text = a.replaceReferences(text)
	text = a.replaceVessels(text)
	text = a.replaceProperties(text)
	return cleanup(text, a.labels())
}

// labels lists every replacement phrase this anonymizer can produce, so the
// cleanup pass can collapse immediate repetitions of any of them.
func (a *Anonymizer) labels() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(label string) {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		out = append(out, label)
	}

	add(a.candidateLabel())
	add("the candidate")
	for _, ref := range a.references {
		add(referenceLabel(ref))
	}
	for _, v := range a.vessels {
		add(vesselLabel(v))
	}
	for _, p := range a.properties {
		add(propertyLabel(p))
	}
	return out
}

// candidateLabel is the replacement for the candidate's full name, e.g.
// "This South African Chief Stewardess".
func (a *Anonymizer) candidateLabel() string {
	nationality := strings.TrimSpace(a.identity.Nationality)
	position := strings.TrimSpace(a.identity.Position)
	switch {
	case nationality != "" && position != "":
		return fmt.Sprintf("This %s %s", nationality, position)
	case position != "":
		return fmt.Sprintf("This %s", position)
	default:
		return "This candidate"
	}
}

func (a *Anonymizer) replaceCandidateName(text string) string {
	first := strings.TrimSpace(a.identity.FirstName)
	last := strings.TrimSpace(a.identity.LastName)
	if first == "" || last == "" {
		return text
	}

	full := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(first) + `\s+` + regexp.QuoteMeta(last) + `\b`)
	return full.ReplaceAllString(text, a.candidateLabel())
}

// replaceIsolatedNameParts redacts the first and last name on their own.
// The common-word exclusion applies to last names only: a last name like
// "Hill" stays in prose, a first name is always replaced.
func (a *Anonymizer) replaceIsolatedNameParts(text string) string {
	if first := strings.TrimSpace(a.identity.FirstName); first != "" {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(first) + `\b`)
		text = re.ReplaceAllString(text, "the candidate")
	}

	last := strings.TrimSpace(a.identity.LastName)
	if last != "" && !commonWords[strings.ToLower(last)] {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(last) + `\b`)
		text = re.ReplaceAllString(text, "the candidate")
	}
	return text
}

// referenceLabel is the replacement for a reference contact, e.g.
// "a former Captain".
func referenceLabel(ref models.ReferenceContact) string {
	if pos := strings.TrimSpace(ref.Position); pos != "" {
		return "a former " + pos
	}
	return "a previous employer"
}

func (a *Anonymizer) replaceReferences(text string) string {
	for _, ref := range a.references {
		name := strings.TrimSpace(ref.Name)
		if name == "" {
			continue
		}

		label := referenceLabel(ref)

		// "Captain James Holloway" before "James Holloway" before "Holloway".
		if pos := strings.TrimSpace(ref.Position); pos != "" {
			withTitle := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(pos) + `\s+` + regexp.QuoteMeta(name) + `\b`)
			text = withTitle.ReplaceAllString(text, label)
		}

		full := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		text = full.ReplaceAllString(text, label)

		parts := strings.Fields(name)
		if len(parts) > 1 {
			surname := parts[len(parts)-1]
			if len(surname) >= 3 && !commonWords[strings.ToLower(surname)] {
				re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(surname) + `\b`)
				text = re.ReplaceAllString(text, label)
			}
		}
	}
	return text
}

// vesselTypeLabels maps extraction type tokens to the phrasing used in
// anonymized text. Unknown tokens fall back to "yacht".
var vesselTypeLabels = map[string]string{
	"motor yacht":      "motor yacht",
	"sailing yacht":    "sailing yacht",
	"catamaran":        "catamaran",
	"expedition yacht": "expedition yacht",
	"superyacht":       "superyacht",
	"chase boat":       "chase boat",
	"tender":           "tender",
}

var propertyTypeLabels = map[string]string{
	"villa":             "villa",
	"estate":            "private estate",
	"chalet":            "chalet",
	"penthouse":         "penthouse",
	"townhouse":         "townhouse",
	"household":         "private household",
	"private household": "private household",
	"residence":         "private residence",
	"private residence": "private residence",
}

// normalizeTypeToken folds "MOTOR_YACHT" and "motor-yacht" into
// "motor yacht" before the label lookup.
func normalizeTypeToken(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	token = strings.ReplaceAll(token, "_", " ")
	token = strings.ReplaceAll(token, "-", " ")
	return strings.Join(strings.Fields(token), " ")
}

// vesselLabel builds the neutral description for a vessel, e.g.
// "a 52m motor yacht".
func vesselLabel(v Vessel) string {
	typeLabel, ok := vesselTypeLabels[normalizeTypeToken(v.Type)]
	if !ok {
		typeLabel = "yacht"
	}
	if v.SizeMeters != nil && *v.SizeMeters > 0 {
		return fmt.Sprintf("a %.0fm %s", *v.SizeMeters, typeLabel)
	}
	return "a " + typeLabel
}

func (a *Anonymizer) replaceVessels(text string) string {
	for _, v := range a.vessels {
		name := strings.TrimSpace(vesselPrefixRe.ReplaceAllString(strings.TrimSpace(v.Name), ""))
		if len(name) < 2 {
			continue
		}

		label := vesselLabel(v)
		quoted := regexp.QuoteMeta(name)

		// Contextual forms first so "aboard Lady Aurora" becomes
		// "aboard a 52m motor yacht", not "aboard the a 52m motor yacht".
		contextual := regexp.MustCompile(`(?i)\b(on board|aboard|on|the)\s+(m/y\s+|s/y\s+|m/v\s+|s/v\s+)?` + quoted + `\b`)
		text = contextual.ReplaceAllString(text, "$1 "+label)

		sized := regexp.MustCompile(`(?i)\b\d+\s*m\s+` + quoted + `\b`)
		text = sized.ReplaceAllString(text, label)

		prefixed := regexp.MustCompile(`(?i)\b(m/y|s/y|m/v|s/v|my|sy)\s+` + quoted + `\b`)
		text = prefixed.ReplaceAllString(text, label)

		bare := regexp.MustCompile(`(?i)\b` + quoted + `\b`)
		text = bare.ReplaceAllString(text, label)
	}
	return text
}

func propertyLabel(p Property) string {
	typeLabel, ok := propertyTypeLabels[normalizeTypeToken(p.Type)]
	if !ok {
		typeLabel = "private residence"
	}
	if loc := strings.TrimSpace(p.Location); loc != "" {
		return fmt.Sprintf("a %s in %s", typeLabel, loc)
	}
	return "a " + typeLabel
}

func (a *Anonymizer) replaceProperties(text string) string {
	for _, p := range a.properties {
		name := strings.TrimSpace(p.Name)
		if len(name) < 2 {
			continue
		}

		label := propertyLabel(p)
		quoted := regexp.QuoteMeta(name)

		contextual := regexp.MustCompile(`(?i)\b(at|the)\s+` + quoted + `\b`)
		text = contextual.ReplaceAllString(text, "$1 "+label)

		bare := regexp.MustCompile(`(?i)\b` + quoted + `\b`)
		text = bare.ReplaceAllString(text, label)
	}
	return text
}

var (
	spaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
	doubleARe  = regexp.MustCompile(`(?i)\b(a|the)\s+(a|the)\b`)
)

// cleanup collapses runs of the same placeholder, which happen when
// adjacent tokens resolved to the same replacement. labels is the set of
// placeholders this pass could have emitted.
func cleanup(text string, labels []string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	for _, label := range labels {
		quoted := regexp.QuoteMeta(label)
		repeated := regexp.MustCompile(`(?i)\b(` + quoted + `)(?:\s+` + quoted + `)+\b`)
		text = repeated.ReplaceAllString(text, "$1")
	}
	text = doubleARe.ReplaceAllString(text, "$2")
	text = spaceRunRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
