package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var slideSchema = &Schema{
	Name:        "validate-slide",
	Description: "A learning slide",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": "string"},
			"content": map[string]any{"type": "string"},
			"level":   map[string]any{"type": "string", "enum": []any{"elementary", "high_school", "college"}},
			"terms": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"title", "content"},
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"complete", slideSchema, `{"title":"Tides","content":"The moon pulls.","level":"college","terms":["moon"]}`, false},
		{"optional fields omitted", slideSchema, `{"title":"Tides","content":"The moon pulls."}`, false},
		{"missing required", slideSchema, `{"title":"Tides"}`, true},
		{"wrong type", slideSchema, `{"title":"Tides","content":42}`, true},
		{"enum violation", slideSchema, `{"title":"Tides","content":"x","level":"kindergarten"}`, true},
		{"array item type", slideSchema, `{"title":"Tides","content":"x","terms":[1,2]}`, true},
		{"malformed", slideSchema, `{title: Tides}`, true},
		{"empty", slideSchema, ``, true},
		{"no schema", nil, `{"anything":"goes"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("validateResponse() error = %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("error = %v, want *ErrInvalidResponse", err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("Content = %q, want the raw output", inv.Content)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	prose := "Here is your slide!\n```json\n{\"title\":\"Tides\",\"content\":\"The moon pulls.\"}\n```\nEnjoy."
	got, err := extractJSON(slideSchema, prose)
	if err != nil {
		t.Fatalf("extractJSON() error = %v", err)
	}
	if string(got) != `{"title":"Tides","content":"The moon pulls."}` {
		t.Errorf("payload = %s", got)
	}

	var inv *ErrInvalidResponse
	if _, err := extractJSON(slideSchema, "   "); !errors.As(err, &inv) {
		t.Errorf("blank output: error = %v, want *ErrInvalidResponse", err)
	}
	if _, err := extractJSON(slideSchema, `Sure: {"title":"Tides"}`); !errors.As(err, &inv) {
		t.Errorf("incomplete payload: error = %v, want *ErrInvalidResponse", err)
	}
}
