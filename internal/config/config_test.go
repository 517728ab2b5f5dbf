package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every variable Load can observe.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, env := range envAliases {
		t.Setenv(env, "")
	}
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 3*time.Minute, cfg.LLM.Timeout)
	assert.Equal(t, 16000, cfg.Generation.MaxTokens)
	assert.Equal(t, 2*time.Second, cfg.Notes.SavedWindow)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
	assert.ErrorIs(t, cfg.ValidateLLM(), ErrNoProvider)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("EDUPATH_LLM_PROVIDER", "openai")
	t.Setenv("EDUPATH_OPENAI_API_KEY", "sk-test")
	t.Setenv("EDUPATH_GENERATION_MAX_TOKENS", "8000")
	t.Setenv("EDUPATH_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, 8000, cfg.Generation.MaxTokens)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.ValidateLLM())

	lc := cfg.LLM.ClientConfig()
	assert.Equal(t, "openai", lc.Provider)
	assert.Equal(t, "gpt-4.1-mini", lc.OpenAI.Model)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "edupath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db: /tmp/paths.db
llm:
  provider: gemini
  gemini:
    api_key: g-key
    model: gemini-pro
  timeout: 90s
server:
  addr: ":9000"
  cors_origins: ["https://example.com"]
notes:
  saved_window: 3s
`), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/paths.db", cfg.DB)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-pro", cfg.LLM.Gemini.Model)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.Notes.SavedWindow)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDiscoversProvider(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet", cfg.LLM.Anthropic.Model)
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load(viper.New(), "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "skynet" }},
		{"no tokens", func(c *Config) { c.Generation.MaxTokens = 0 }},
		{"hot temperature", func(c *Config) { c.Generation.Temperature = 1.5 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }},
		{"zero rate", func(c *Config) { c.Server.GenerateRate = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	withKeyless := *base
	withKeyless.LLM.Provider = "anthropic"
	assert.Error(t, withKeyless.ValidateLLM())
}
