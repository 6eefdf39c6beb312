// Package match scores a candidate's preference profile against a job
// posting. The position gate is absolute: without a title match the score
// is zero regardless of region, contract or salary agreement.
package match

import (
	"regexp"
	"strings"

	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/models"
)

const (
	baseScore     = 50
	regionBonus   = 25
	contractBonus = 15
	salaryBonus   = 10
	maxScore      = 100
)

// titleAliases canonicalizes common title variants before the substring
// gate so "Stewardess" and "2nd Stew" compare on the same token.
var titleAliases = map[string]string{
	"stewardess": "stew",
	"steward":    "stew",
	"boatswain":  "bosun",
	"1st":        "first",
	"2nd":        "second",
	"3rd":        "third",
	"m/y":        "",
	"s/y":        "",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

type Scorer struct {
	logger logger.Logger
}

func NewScorer(log logger.Logger) *Scorer {
	return &Scorer{logger: log}
}

// Score computes the fit of a candidate against a job. Preference-derived
// sought positions strictly override profile positions; the two are never
// merged (models.CandidateProfile.SoughtPositions implements that rule).
func (s *Scorer) Score(candidate *models.CandidateProfile, job *models.JobPosting) models.MatchScore {
	jobTitle := normalizeTitle(job.Title)
	sought := candidate.SoughtPositions()

	if !positionMatches(jobTitle, sought) {
		return models.MatchScore{Score: 0, MatchType: models.MatchTypeNone}
	}

	score := baseScore
	if regionMatches(candidate.PreferredRegions, job.Region) {
		score += regionBonus
	}
	if contractMatches(candidate.PreferredContractTypes, job.ContractType) {
		score += contractBonus
	}
	if salaryMatches(candidate.DesiredSalaryMin, job.SalaryMax) {
		score += salaryBonus
	}
	if score > maxScore {
		score = maxScore
	}

	s.logger.Debug("match score computed", map[string]interface{}{
		"candidateId": candidate.ID,
		"jobId":       job.ID,
		"score":       score,
	})

	return models.MatchScore{Score: score, MatchType: models.MatchTypeMatch}
}

// normalizeTitle lowercases, collapses whitespace and applies the alias
// table token by token.
func normalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	title = whitespaceRe.ReplaceAllString(title, " ")

	words := strings.Fields(title)
	out := words[:0]
	for _, w := range words {
		if alias, ok := titleAliases[w]; ok {
			if alias == "" {
				continue
			}
			w = alias
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

func positionMatches(jobTitle string, sought []string) bool {
	if jobTitle == "" {
		return false
	}
	for _, pos := range sought {
		pos = normalizeTitle(pos)
		if pos == "" {
			continue
		}
		if strings.Contains(jobTitle, pos) {
			return true
		}
	}
	return false
}

func regionMatches(preferred []string, jobRegion string) bool {
	jobRegion = strings.ToLower(strings.TrimSpace(jobRegion))
	if jobRegion == "" {
		return false
	}
	for _, r := range preferred {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if strings.Contains(jobRegion, r) || strings.Contains(r, jobRegion) {
			return true
		}
	}
	return false
}

func contractMatches(preferred []string, contractType string) bool {
	contractType = strings.ToLower(strings.TrimSpace(contractType))
	if contractType == "" {
		return false
	}
	for _, c := range preferred {
		if strings.ToLower(strings.TrimSpace(c)) == contractType {
			return true
		}
	}
	return false
}

func salaryMatches(desiredMin, jobMax *int) bool {
	if desiredMin == nil || jobMax == nil {
		return false
	}
	return *jobMax >= *desiredMin
}
