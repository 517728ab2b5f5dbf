// Package config loads EduPath settings from defaults, an optional YAML
// file, EDUPATH_ environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/edupath/internal/curriculum"
	"github.com/abhisek/edupath/internal/llm"
	"github.com/abhisek/edupath/internal/notes"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "EDUPATH"

// Config is the full application configuration.
type Config struct {
	DB         string           `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Generation GenerationConfig `mapstructure:"generation"`
	Server     ServerConfig     `mapstructure:"server"`
	Notes      NotesConfig      `mapstructure:"notes"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

type LLMConfig struct {
	// Provider is empty when nothing was configured; Load then probes the
	// well-known API key variables.
	Provider   string         `mapstructure:"provider"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Retry      RetryConfig    `mapstructure:"retry"`
	Timeout    time.Duration  `mapstructure:"timeout"`
}

type GenerationConfig struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type ServerConfig struct {
	Addr          string   `mapstructure:"addr"`
	Mode          string   `mapstructure:"mode"`
	CORSOrigins   []string `mapstructure:"cors_origins"`
	GenerateRate  float64  `mapstructure:"generate_rate"` // requests per minute
	GenerateBurst int      `mapstructure:"generate_burst"`
}

type NotesConfig struct {
	SavedWindow time.Duration `mapstructure:"saved_window"`
}

// envAliases are the short variable names accepted besides the
// EDUPATH_<SECTION>_<KEY> form.
var envAliases = map[string]string{
	"db":                     "EDUPATH_DB",
	"llm.provider":           "EDUPATH_LLM_PROVIDER",
	"llm.anthropic.api_key":  "EDUPATH_ANTHROPIC_API_KEY",
	"llm.anthropic.model":    "EDUPATH_ANTHROPIC_MODEL",
	"llm.openai.api_key":     "EDUPATH_OPENAI_API_KEY",
	"llm.openai.model":       "EDUPATH_OPENAI_MODEL",
	"llm.openai.base_url":    "EDUPATH_OPENAI_BASE_URL",
	"llm.gemini.api_key":     "EDUPATH_GEMINI_API_KEY",
	"llm.gemini.model":       "EDUPATH_GEMINI_MODEL",
	"llm.openrouter.api_key": "EDUPATH_OPENROUTER_API_KEY",
	"llm.openrouter.model":   "EDUPATH_OPENROUTER_MODEL",
}

// SetDefaults registers every key with its default value. Keys must be
// known to viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	genDefaults := curriculum.DefaultConfig()

	v.SetDefault("db", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)

	v.SetDefault("llm.provider", "")
	for name, pc := range map[string]ProviderConfig{
		"anthropic":  {Model: llmDefaults.Anthropic.Model},
		"openai":     {Model: llmDefaults.OpenAI.Model},
		"gemini":     {Model: llmDefaults.Gemini.Model},
		"openrouter": {Model: llmDefaults.OpenRouter.Model},
	} {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", "")
	}
	v.SetDefault("llm.retry.max_attempts", llmDefaults.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", llmDefaults.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", llmDefaults.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", llmDefaults.Retry.Multiplier)
	v.SetDefault("llm.timeout", llmDefaults.Timeout)

	v.SetDefault("generation.max_tokens", genDefaults.MaxTokens)
	v.SetDefault("generation.temperature", genDefaults.Temperature)

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.generate_rate", 6.0)
	v.SetDefault("server.generate_burst", 2)

	v.SetDefault("notes.saved_window", notes.SavedDisplayWindow)
}

// Load reads configuration into a Config. configFile may be empty, in
// which case config.yaml is looked up in the user config directory and
// its absence is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := DefaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.LLM.Provider == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg.LLM.adopt(found)
		}
	}
	return &cfg, nil
}

// adopt copies the provider and key found by discovery.
func (c *LLMConfig) adopt(found llm.Config) {
	c.Provider = found.Provider
	switch found.Provider {
	case "anthropic":
		c.Anthropic.APIKey = found.Anthropic.APIKey
	case "openai":
		c.OpenAI.APIKey = found.OpenAI.APIKey
	case "gemini":
		c.Gemini.APIKey = found.Gemini.APIKey
	case "openrouter":
		c.OpenRouter.APIKey = found.OpenRouter.APIKey
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/edupath, falling back to
// ~/.config/edupath.
func DefaultConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "edupath"), nil
}

// ClientConfig returns the llm package configuration.
func (c LLMConfig) ClientConfig() llm.Config {
	return llm.Config{
		Provider: c.Provider,
		Anthropic: llm.AnthropicConfig{
			APIKey:  c.Anthropic.APIKey,
			Model:   c.Anthropic.Model,
			BaseURL: c.Anthropic.BaseURL,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.OpenAI.APIKey,
			Model:   c.OpenAI.Model,
			BaseURL: c.OpenAI.BaseURL,
		},
		Gemini: llm.GeminiConfig{
			APIKey: c.Gemini.APIKey,
			Model:  c.Gemini.Model,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.OpenRouter.APIKey,
			Model:   c.OpenRouter.Model,
			BaseURL: c.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.Retry.MaxAttempts,
			InitialWait: c.Retry.InitialWait,
			MaxWait:     c.Retry.MaxWait,
			Multiplier:  c.Retry.Multiplier,
		},
		Timeout: c.Timeout,
	}
}

// Curriculum returns the generator settings.
func (g GenerationConfig) Curriculum() curriculum.Config {
	return curriculum.Config{MaxTokens: g.MaxTokens, Temperature: g.Temperature}
}

// ErrNoProvider is returned by ValidateLLM when no provider was configured
// or discovered.
var ErrNoProvider = errors.New("no LLM provider configured: set EDUPATH_LLM_PROVIDER and its API key, or export GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY")

// Validate checks settings every command depends on. LLM credentials are
// checked separately by ValidateLLM since only generation needs them.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "anthropic", "openai", "gemini", "openrouter", "mock":
		default:
			errs = append(errs, fmt.Errorf("llm.provider: unknown provider %q", c.LLM.Provider))
		}
	}
	if c.Generation.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("generation.max_tokens must be positive"))
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 1 {
		errs = append(errs, fmt.Errorf("generation.temperature must be within [0, 1]"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("server.addr is required"))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode: unknown mode %q", c.Server.Mode))
	}
	if c.Server.GenerateRate <= 0 || c.Server.GenerateBurst <= 0 {
		errs = append(errs, fmt.Errorf("server.generate_rate and server.generate_burst must be positive"))
	}
	if c.Notes.SavedWindow < 0 {
		errs = append(errs, fmt.Errorf("notes.saved_window must not be negative"))
	}

	return errors.Join(errs...)
}

// ValidateLLM checks that a provider is selected and has credentials.
func (c *Config) ValidateLLM() error {
	if c.LLM.Provider == "" {
		return ErrNoProvider
	}
	return c.LLM.ClientConfig().Validate()
}
