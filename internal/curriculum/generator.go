package curriculum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/edupath/internal/llm"
)

// Generator produces a curriculum document for a request.
type Generator interface {
	// Generate returns the decoded document. It does not check the
	// module structure; see ValidateDocument.
	Generate(ctx context.Context, req Request) (*Document, error)
}

// Config controls the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the whole curriculum. Long paths
	// need a large budget since every day carries a full module.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   16000,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// NewLLMGenerator creates a generator backed by provider.
func NewLLMGenerator(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the provider for a schema-conforming curriculum.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*Document, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCurriculum)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      Schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("curriculum generation: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(resp.Content, &doc); err != nil {
		return nil, fmt.Errorf("parse curriculum response: %w", err)
	}
	return &doc, nil
}
