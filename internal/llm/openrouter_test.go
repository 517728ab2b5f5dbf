package llm

import (
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("default model", func(t *testing.T) {
		model := DefaultConfig().OpenRouter.Model
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: model})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != model {
			t.Errorf("model = %q, want %q", p.ModelID(), model)
		}
		if ProviderName(p) != "openrouter" {
			t.Errorf("name = %q, want openrouter", ProviderName(p))
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("aliases are not resolved", func(t *testing.T) {
		// Friendly names belong to the native providers only.
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "claude-sonnet"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "claude-sonnet" {
			t.Errorf("model = %q, want claude-sonnet", p.ModelID())
		}
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "anthropic/claude-sonnet-4-5-20250929",
			BaseURL: "https://openrouter.example/v1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c := LookupCost(p.ModelID()); c == nil || c.OutputPerMTok != 15 {
			t.Errorf("expected sonnet pricing for %s, got %+v", p.ModelID(), c)
		}
	})
}
