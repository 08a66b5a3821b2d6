package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/legacyloop/internal/session"
)

func emailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email <asset name>",
		Short: "Draft the advisor's outreach email to the heir about a holding",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			svc, err := newContentService(ctx, logger)
			if err != nil {
				return fmt.Errorf("email: %w", err)
			}

			email, err := session.New("cli").AdvisorEmail(ctx, svc, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("email: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), email)
			return err
		},
	}
	return cmd
}
