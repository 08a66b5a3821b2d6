package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/legacyloop/internal/session"
)

func missionCmd() *cobra.Command {
	var (
		values string
		goals  string
		tf     terminalFlags
	)

	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Draft a family mission statement from values and goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			svc, err := newContentService(ctx, logger)
			if err != nil {
				return fmt.Errorf("mission: %w", err)
			}

			m, err := session.New("cli").DraftMission(ctx, svc, values, goals)
			if err != nil {
				return fmt.Errorf("mission: %w", err)
			}
			return tf.print(cmd, m.Statement)
		},
	}

	cmd.Flags().StringVar(&values, "values", "", "Core family values (required)")
	cmd.Flags().StringVar(&goals, "goals", "", "Vision for the family wealth (required)")
	_ = cmd.MarkFlagRequired("values")
	_ = cmd.MarkFlagRequired("goals")
	tf.register(cmd)
	return cmd
}
