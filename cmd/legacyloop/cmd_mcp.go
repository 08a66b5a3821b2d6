package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	llmcp "github.com/ajitpratap0/legacyloop/internal/mcp"
	"github.com/ajitpratap0/legacyloop/internal/session"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.
The server owns one session for its lifetime, seeded with the demo portfolio.

Tools exposed:
  list_assets, add_asset, update_asset, delete_asset   portfolio
  portfolio_summary                                    aggregate figures
  ask_advisor, engagement_metrics                      heir engagement
  explain_asset                                        heir-facing explanation`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			svc, err := newContentService(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}

			srv := llmcp.NewServer(session.New("mcp"), svc, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: legacyloop MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
