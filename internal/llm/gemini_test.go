package llm

import (
	"errors"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_StringRequired(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "object",
		"required": []string{"title"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
		},
	})
	if len(schema.Required) != 1 || schema.Required[0] != "title" {
		t.Fatalf("required = %v", schema.Required)
	}
}

func TestBuildGeminiConfig_Grounding(t *testing.T) {
	schema := &Schema{Name: "x", Definition: map[string]any{"type": "object"}}

	grounded := buildGeminiConfig(Request{Grounding: true, Schema: schema, Temperature: 0.7})
	if len(grounded.Tools) != 1 || grounded.Tools[0].GoogleSearch == nil {
		t.Fatalf("expected google search tool, got %+v", grounded.Tools)
	}
	if grounded.ResponseSchema != nil || grounded.ResponseMIMEType != "" {
		t.Fatal("grounded request must not set a response schema")
	}
	if grounded.Temperature == nil || *grounded.Temperature != float32(0.7) {
		t.Fatal("temperature not applied")
	}

	structured := buildGeminiConfig(Request{Schema: schema})
	if structured.ResponseMIMEType != "application/json" || structured.ResponseSchema == nil {
		t.Fatal("expected JSON response schema")
	}
	if len(structured.Tools) != 0 {
		t.Fatal("unexpected tools on ungrounded request")
	}
}

func TestGeminiContent_ExtractsGroundedJSON(t *testing.T) {
	schema := &Schema{
		Name: "gemini-grounded-test",
		Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"title": map[string]any{"type": "string"}},
			"required":   []any{"title"},
		},
	}

	got, err := geminiContent(Request{Grounding: true, Schema: schema}, "Sure!\n```json\n{\"title\":\"Tides\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != `{"title":"Tides"}` {
		t.Fatalf("content = %s", got)
	}

	_, err = geminiContent(Request{Grounding: true, Schema: schema}, "I could not find anything.")
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}
