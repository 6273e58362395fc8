package llm

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/lumen/internal/decode"
)

// validateResponse validates raw JSON against the given Schema.
// Returns nil if no schema is provided or validation passes.
// Returns *ErrInvalidResponse on failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	if err := decode.Validate(schema.Name, schema.Definition, raw); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	return nil
}

// extractJSON pulls the JSON payload out of a text answer and validates it.
// Used when the provider could not enforce the schema natively.
func extractJSON(schema *Schema, text string) (json.RawMessage, error) {
	payload := json.RawMessage(decode.Extract(text))
	if len(payload) == 0 {
		return nil, &ErrInvalidResponse{Content: json.RawMessage(text), Err: fmt.Errorf("no JSON in response")}
	}
	if err := validateResponse(schema, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
