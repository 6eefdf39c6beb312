// internal/models/doctypes.go
package models

import "strings"

// documentTypeMap normalizes free-text document type labels into the closed
// set of stored categories. Built once at process start, never mutated.
var documentTypeMap = map[string]string{
	// CV/Resume
	"cv/resume":    "cv",
	"cv":           "cv",
	"resume":       "cv",
	"cover letter": "cv",

	// ID/Passport
	"passport/id":             "id",
	"passport":                "id",
	"id":                      "id",
	"seaman's discharge book": "id",

	// Medical
	"medical certificate": "medical",
	"eng1":                "medical",
	"eng 1":               "medical",
	"covid19 vaccine":     "medical",

	// STCW certificates
	"stcw":                                   "stcw",
	"stcw first aid":                         "stcw",
	"stcw fire prevention and fire fighting": "stcw",
	"stcw pdsd":                              "stcw",
	"stcw security awareness":                "stcw",
	"stcw pssr":                              "stcw",
	"stcw pst":                               "stcw",
	"stcw refresher":                         "stcw",
	"stcw advanced fire fighting":            "stcw",
	"stcw pscrb":                             "stcw",
	"stcw proficiency in fast rescue boats":  "stcw",

	// Licenses
	"licence":              "license",
	"license":              "license",
	"power boat ii":        "license",
	"pwc":                  "license",
	"short range":          "license",
	"yachtmaster offshore": "license",
	"yacht rating":         "license",
	"helm":                 "license",
	"driving license":      "license",

	// Food/Galley
	"food safety certificate": "food_safety",
	"ships cook certificate":  "food_safety",
	"sample menu":             "food_safety",

	// Diving
	"padi":                        "diving",
	"divemaster":                  "diving",
	"open water scuba instructor": "diving",

	// Visas
	"b1/b2":         "visa",
	"b1 visa":       "visa",
	"schengen visa": "visa",
	"visa":          "visa",

	// References
	"written reference": "reference",

	// Photos
	"photo":             "photo",
	"full length photo": "photo",
	"tattoo photo":      "photo",
	"food photos":       "photo",

	// Security/Radio
	"sso": "security",
	"aec": "certificate",

	// Checks
	"coc check": "certificate",
	"cec check": "certificate",

	// Other
	"additional documents": "other",
	"other docs":           "other",
	"other":                "other",
}

// NormalizeDocumentType maps a free-text type label to a stored category,
// defaulting to "other".
func NormalizeDocumentType(docType string) string {
	if docType == "" {
		return "other"
	}
	if mapped, ok := documentTypeMap[strings.ToLower(strings.TrimSpace(docType))]; ok {
		return mapped
	}
	return "other"
}

// atsJobFieldNames maps external ATS custom-field keys to display names.
// Immutable configuration, loaded once; never inline these in handlers.
var atsJobFieldNames = map[string]string{
	"f8b2c1ddc995fb699973598e449193c3": "Yacht",
	"3c580f529de2e205114090aa08e10f7a": "Requirements",
	"9a214be2a25d61d1add26dca93aef45a": "Start Date",
	"b8a75c8b68fb5c85fb083aac4bbbed94": "Itinerary",
	"035ca080627c6bac4e59e6fc6750a5b6": "Salary",
	"24a44070b5d77ce92fb018745ddbe374": "Program",
	"ecac1d20eb2b26a248837610935d9b92": "Holiday Package",
	"c980a4f92992081ead936fb8a358fb79": "Contract Type",
}

// ATSJobFieldName resolves an ATS custom-field key to its display name.
func ATSJobFieldName(key string) (string, bool) {
	name, ok := atsJobFieldNames[key]
	return name, ok
}
