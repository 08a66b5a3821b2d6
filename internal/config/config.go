package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Content providers.
const (
	ProviderAuto       = "auto"
	ProviderClaude     = "claude"
	ProviderGemini     = "gemini"
	ProviderSimulation = "simulation"
)

const (
	// DefaultContentTimeout bounds one generation call.
	DefaultContentTimeout = 30 * time.Second

	// DefaultIdleTTL is how long an unused session is kept.
	DefaultIdleTTL = 2 * time.Hour

	// DefaultSweepInterval is how often idle sessions are looked for.
	DefaultSweepInterval = 5 * time.Minute
)

// Config holds all configuration for legacyloop.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Content ContentConfig `mapstructure:"content"`
	Claude  ClaudeConfig  `mapstructure:"claude"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ContentConfig selects and bounds the text-generation service.
type ContentConfig struct {
	// Provider is auto, claude, gemini or simulation. auto picks the first
	// provider with an API key and falls back to simulation.
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ClaudeConfig holds Anthropic Claude API settings.
type ClaudeConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// String returns a safe representation of GeminiConfig with the API key masked.
func (c GeminiConfig) String() string {
	return fmt.Sprintf("GeminiConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// SessionConfig controls idle session expiry.
type SessionConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	return load(filepath.Join(homeDir(), ".legacyloop"), ".")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	v.SetDefault("content.provider", ProviderAuto)
	v.SetDefault("content.timeout", DefaultContentTimeout)

	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("session.idle_ttl", DefaultIdleTTL)
	v.SetDefault("session.sweep_interval", DefaultSweepInterval)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("LEGACYLOOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("claude.api_key", "LEGACYLOOP_CLAUDE_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("gemini.api_key", "LEGACYLOOP_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("api.listen_addr", "LEGACYLOOP_API_LISTEN_ADDR")
	_ = v.BindEnv("api.auth_token", "LEGACYLOOP_API_AUTH_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file: defaults and env vars only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	switch c.Content.Provider {
	case ProviderAuto, ProviderSimulation:
	case ProviderClaude:
		if c.Claude.APIKey == "" {
			return fmt.Errorf("content.provider is claude but claude.api_key is empty")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("content.provider is gemini but gemini.api_key is empty")
		}
	default:
		return fmt.Errorf("content.provider must be one of auto, claude, gemini, simulation (got %q)", c.Content.Provider)
	}
	if c.Content.Timeout <= 0 {
		return fmt.Errorf("content.timeout must be greater than 0")
	}
	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("session.idle_ttl must be >= 0")
	}
	if c.Session.IdleTTL > 0 && c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be greater than 0 when session.idle_ttl is set")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json (got %q)", c.Logging.Format)
	}
	return nil
}

// ResolvedProvider returns the concrete provider to use: auto becomes the
// first provider with an API key, or simulation when none has one.
func (c *Config) ResolvedProvider() string {
	if c.Content.Provider != ProviderAuto && c.Content.Provider != "" {
		return c.Content.Provider
	}
	switch {
	case c.Claude.APIKey != "":
		return ProviderClaude
	case c.Gemini.APIKey != "":
		return ProviderGemini
	default:
		return ProviderSimulation
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
