package llm

import (
	"encoding/json"

	"github.com/abhisek/learnflow/internal/sanitize"
)

// validateResponse validates raw JSON against the given Schema.
// Returns nil if no schema is provided or validation passes.
// Returns *ErrInvalidResponse on failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	if err := sanitize.Validate(schema.Name, schema.Definition, raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}

// structuredContent recovers the JSON object from model text when a schema
// was requested. Providers without native structured output often wrap the
// object in prose or code fences.
func structuredContent(schema *Schema, text string) json.RawMessage {
	if schema == nil {
		return textContent(text)
	}
	return json.RawMessage(sanitize.ExtractJSON(text))
}

// textContent wraps free text as a JSON string.
func textContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}
