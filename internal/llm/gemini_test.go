package llm

import (
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
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"skill_level": map[string]any{"type": "string", "enum": []string{"beginner", "intermediate", "advanced"}},
			"daily_modules": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day":   map[string]any{"type": "integer", "description": "1-based day number"},
						"title": map[string]any{"type": "string"},
					},
					"required": []any{"day", "title"},
				},
			},
		},
		"required": []any{"title", "skill_level", "daily_modules"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(schema.Properties))
	}
	if got := schema.Properties["skill_level"].Enum; len(got) != 3 || got[0] != "beginner" {
		t.Fatalf("unexpected skill level enum: %v", got)
	}
	modules := schema.Properties["daily_modules"]
	if modules.Type != "ARRAY" || modules.Items == nil {
		t.Fatalf("expected ARRAY of modules, got %+v", modules)
	}
	day := modules.Items.Properties["day"]
	if day == nil || day.Type != "INTEGER" || day.Description != "1-based day number" {
		t.Fatalf("unexpected day schema: %+v", day)
	}
	if got := modules.Items.PropertyOrdering; len(got) != 2 || got[0] != "day" {
		t.Fatalf("expected module ordering to follow required, got %v", got)
	}
	if got := schema.PropertyOrdering; len(got) != 3 || got[2] != "daily_modules" {
		t.Fatalf("expected property ordering to follow required, got %v", got)
	}
}
