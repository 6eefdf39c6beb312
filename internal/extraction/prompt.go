// internal/extraction/prompt.go
package extraction

import (
	"fmt"
	"strings"
)

const maxPromptTextLen = 60000

const promptTemplate = `You are extracting structured data from a crew or household staff CV for a recruitment database.

Return a single JSON object with exactly these fields:

{
  "yearsOfExperience": number or null,
  "positionsHeld": [{"rawTitle": string, "normalizedTitle": string, "category": string, "isPrimary": boolean}],
  "certifications": [{"name": string, "category": string, "expiry": string or null, "licenseNo": string}],
  "licenses": [{"type": string, "authority": string, "number": string, "issueDate": string or null, "expiryDate": string or null}],
  "languages": [{"language": string, "proficiency": string}],
  "yachtExperience": [{"name": string, "sizeMeters": number or null, "type": string, "position": string, "durationMonths": integer or null, "startDate": string or null, "endDate": string or null}],
  "propertyExperience": [{"name": string, "type": string, "location": string, "position": string, "durationMonths": integer or null, "startDate": string or null, "endDate": string or null}],
  "education": [{"institution": string, "degree": string, "field": string, "year": integer or null}],
  "references": [{"name": string, "position": string, "company": string, "phone": string, "email": string}],
  "hasStcw": boolean,
  "hasEng1": boolean,
  "hasYachtmaster": boolean,
  "hasPowerboat": boolean,
  "extractionConfidence": number between 0 and 1,
  "extractionNotes": string
}

Rules:
- positionsHeld: every role the candidate has held or seeks. rawTitle is the title exactly as written. category must be one of: deck, interior, engineering, galley, villa, childcare, security, medical, management, wellness, other. Mark the current or most senior role isPrimary.
- certifications: category should be one of: stcw, medical, license, food_safety, diving, security, other.
- licenses: professional licenses and tickets in seniority order, e.g. Master 3000GT, Master 500GT, Chief Mate, OOW, Yachtmaster Ocean, Yachtmaster Offshore, Powerboat Level 2.
- yachtExperience: sizeMeters is the vessel length IN METERS. If the CV gives feet, convert by multiplying by 0.3048 and round to one decimal.
- Dates as ISO 8601 (YYYY-MM-DD) or YYYY-MM or YYYY, null when unknown.
- hasStcw / hasEng1 / hasYachtmaster / hasPowerboat: true only when the document clearly evidences the certificate.
- Do not invent data. Empty arrays are fine. Use extractionNotes for anything ambiguous.
- extractionConfidence reflects document quality and completeness, not your certainty about individual fields.

CV TEXT:
---
%s
---`

// BuildPrompt renders the extraction prompt for a CV text. Oversized
// documents are truncated to keep the request within model limits.
func BuildPrompt(cvText string) string {
	cvText = strings.TrimSpace(cvText)
	if len(cvText) > maxPromptTextLen {
		cvText = cvText[:maxPromptTextLen] + "\n[truncated]"
	}
	return fmt.Sprintf(promptTemplate, cvText)
}
