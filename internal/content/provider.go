package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ajitpratap0/legacyloop/internal/config"
)

// New builds a Service for the provider cfg resolves to. Simulation mode
// needs no credentials and never fails.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var gen Generator
	provider := cfg.ResolvedProvider()
	switch provider {
	case config.ProviderClaude:
		var opts []option.RequestOption
		if cfg.Claude.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.Claude.BaseURL))
		}
		gen = NewClaudeGenerator(cfg.Claude.APIKey, cfg.Claude.Model, opts...)
	case config.ProviderGemini:
		g, err := NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
		if err != nil {
			return nil, err
		}
		gen = g
	case config.ProviderSimulation:
	default:
		return nil, fmt.Errorf("content: unknown provider %q", provider)
	}

	if gen == nil {
		logger.Info("content generation in simulation mode; fallback text will be used")
	} else {
		logger.Info("content generation enabled", "provider", provider)
	}
	return NewService(gen, cfg.Content.Timeout, logger), nil
}
