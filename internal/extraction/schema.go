// internal/extraction/schema.go
package extraction

// resultSchema validates the model's JSON output before it is accepted.
// Unknown fields are tolerated, required shape is not.
const resultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["positionsHeld", "certifications", "extractionConfidence"],
  "properties": {
    "yearsOfExperience": {"type": ["number", "null"], "minimum": 0, "maximum": 70},
    "positionsHeld": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["rawTitle"],
        "properties": {
          "rawTitle": {"type": "string", "minLength": 1},
          "normalizedTitle": {"type": "string"},
          "category": {"type": "string"},
          "isPrimary": {"type": "boolean"}
        }
      }
    },
    "certifications": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "expiry": {"type": ["string", "null"]},
          "licenseNo": {"type": "string"}
        }
      }
    },
    "licenses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "authority": {"type": "string"},
          "number": {"type": "string"},
          "issueDate": {"type": ["string", "null"]},
          "expiryDate": {"type": ["string", "null"]}
        }
      }
    },
    "languages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["language"],
        "properties": {
          "language": {"type": "string", "minLength": 1},
          "proficiency": {"type": "string"}
        }
      }
    },
    "yachtExperience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "sizeMeters": {"type": ["number", "null"], "minimum": 0},
          "type": {"type": "string"},
          "position": {"type": "string"},
          "durationMonths": {"type": ["integer", "null"], "minimum": 0},
          "startDate": {"type": ["string", "null"]},
          "endDate": {"type": ["string", "null"]}
        }
      }
    },
    "propertyExperience": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "type": {"type": "string"},
          "location": {"type": "string"},
          "position": {"type": "string"},
          "durationMonths": {"type": ["integer", "null"], "minimum": 0},
          "startDate": {"type": ["string", "null"]},
          "endDate": {"type": ["string", "null"]}
        }
      }
    },
    "education": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["institution"],
        "properties": {
          "institution": {"type": "string"},
          "degree": {"type": "string"},
          "field": {"type": "string"},
          "year": {"type": ["integer", "null"]}
        }
      }
    },
    "references": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "position": {"type": "string"},
          "company": {"type": "string"},
          "phone": {"type": "string"},
          "email": {"type": "string"}
        }
      }
    },
    "hasStcw": {"type": "boolean"},
    "hasEng1": {"type": "boolean"},
    "hasYachtmaster": {"type": "boolean"},
    "hasPowerboat": {"type": "boolean"},
    "extractionConfidence": {"type": "number", "minimum": 0, "maximum": 1},
    "extractionNotes": {"type": "string"}
  }
}`
