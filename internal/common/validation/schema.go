// Package validation checks externally supplied documents against JSON
// schemas before they reach the decision core.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult reports the outcome of a schema check.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateDocument validates a JSON document against a JSON schema, both
// given as raw bytes.
func ValidateDocument(document, schema []byte) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewBytesLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed to run: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return out, nil
}

// TaxonomySchema is the shape a taxonomy document must satisfy before the
// store will load it. Rule absence is legal; malformed rules are not.
const TaxonomySchema = `{
  "type": "object",
  "required": ["products"],
  "properties": {
    "products": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["productCode", "displayName"],
        "properties": {
          "productCode": {"type": "string", "minLength": 1},
          "displayName": {"type": "string", "minLength": 1},
          "class": {"type": "string", "enum": ["budget", "standard", "pre_existing_friendly"]},
          "ageEligibility": {
            "type": "object",
            "properties": {
              "minAge": {"type": "integer", "minimum": 0},
              "maxAge": {"type": "integer", "minimum": 0}
            }
          },
          "preExistingConditionsCovered": {"type": "boolean"},
          "adventureActivitiesCovered": {"type": "boolean"},
          "excludedDestinations": {"type": "array", "items": {"type": "string"}},
          "maxTripDurationDays": {"type": "integer", "minimum": 1},
          "benefits": {"type": "object"}
        }
      }
    }
  }
}`
