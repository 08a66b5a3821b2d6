package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validCfg returns a fully-valid Config for mutation testing.
func validCfg() *Config {
	return &Config{
		API:     APIConfig{ListenAddr: ":8080"},
		Content: ContentConfig{Provider: ProviderAuto, Timeout: 30 * time.Second},
		Session: SessionConfig{IdleTTL: time.Hour, SweepInterval: time.Minute},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// clearEnv unsets every variable Load consults so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ANTHROPIC_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}
	for _, kv := range os.Environ() {
		if k, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, "LEGACYLOOP_") {
			t.Setenv(k, "")
			require.NoError(t, os.Unsetenv(k))
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"simulation", func(c *Config) { c.Content.Provider = ProviderSimulation }, ""},
		{"unknown provider", func(c *Config) { c.Content.Provider = "openai" }, "content.provider"},
		{"claude without key", func(c *Config) { c.Content.Provider = ProviderClaude }, "claude.api_key"},
		{"gemini without key", func(c *Config) { c.Content.Provider = ProviderGemini }, "gemini.api_key"},
		{"claude with key", func(c *Config) {
			c.Content.Provider = ProviderClaude
			c.Claude.APIKey = "sk-ant-123456789"
		}, ""},
		{"zero timeout", func(c *Config) { c.Content.Timeout = 0 }, "content.timeout"},
		{"negative ttl", func(c *Config) { c.Session.IdleTTL = -time.Second }, "session.idle_ttl"},
		{"ttl without sweep", func(c *Config) { c.Session.SweepInterval = 0 }, "session.sweep_interval"},
		{"no ttl no sweep", func(c *Config) { c.Session = SessionConfig{} }, ""},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validCfg()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvedProvider(t *testing.T) {
	cfg := validCfg()
	assert.Equal(t, ProviderSimulation, cfg.ResolvedProvider())

	cfg.Gemini.APIKey = "g-key"
	assert.Equal(t, ProviderGemini, cfg.ResolvedProvider())

	cfg.Claude.APIKey = "c-key"
	assert.Equal(t, ProviderClaude, cfg.ResolvedProvider(), "claude wins when both keys are set")

	cfg.Content.Provider = ProviderSimulation
	assert.Equal(t, ProviderSimulation, cfg.ResolvedProvider(), "explicit provider is honored")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "***", maskAPIKey(""))
	assert.Equal(t, "***", maskAPIKey("12345678"))
	assert.Equal(t, "sk-a****wxyz", maskAPIKey("sk-ant-abcdefwxyz"))

	s := ClaudeConfig{APIKey: "sk-ant-secretsecret", Model: "m"}.String()
	assert.NotContains(t, s, "secretsecret")
	s = GeminiConfig{APIKey: "AIzaSecretSecret", Model: "m"}.String()
	assert.NotContains(t, s, "SecretSecret")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.API.ListenAddr)
	assert.Equal(t, ProviderAuto, cfg.Content.Provider)
	assert.Equal(t, DefaultContentTimeout, cfg.Content.Timeout)
	assert.Equal(t, DefaultIdleTTL, cfg.Session.IdleTTL)
	assert.Equal(t, DefaultSweepInterval, cfg.Session.SweepInterval)
	assert.Equal(t, ProviderSimulation, cfg.ResolvedProvider())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-from-env")
	t.Setenv("LEGACYLOOP_API_AUTH_TOKEN", "secret")
	t.Setenv("LEGACYLOOP_CONTENT_TIMEOUT", "5s")

	cfg, err := load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-from-env", cfg.Claude.APIKey)
	assert.Equal(t, "secret", cfg.API.AuthToken)
	assert.Equal(t, 5*time.Second, cfg.Content.Timeout)
	assert.Equal(t, ProviderClaude, cfg.ResolvedProvider())
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := `
api:
  listen_addr: ":9999"
content:
  provider: simulation
session:
  idle_ttl: 10m
  sweep_interval: 30s
logging:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.API.ListenAddr)
	assert.Equal(t, ProviderSimulation, cfg.Content.Provider)
	assert.Equal(t, 10*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, 30*time.Second, cfg.Session.SweepInterval)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("content:\n  provider: carrier-pigeon\n"), 0o600))
	_, err := load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.provider")
}
