package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/legacyloop/internal/config"
	"github.com/ajitpratap0/legacyloop/internal/content"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "legacyloop",
		Short: "LegacyLoop: family wealth portfolio, heir education, and advisor engagement",
		Long: `LegacyLoop keeps a family's portfolio alongside a mission statement, explains
each holding to the next generation, and tells the family advisor when the heir
is curious. Every visitor gets an isolated session seeded with a demo portfolio.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		mcpCmd(),
		portfolioCmd(),
		missionCmd(),
		explainCmd(),
		emailCmd(),
		exportCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newContentService(ctx context.Context, logger *slog.Logger) (*content.Service, error) {
	svc, err := content.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("configuring content generation: %w", err)
	}
	return svc, nil
}
