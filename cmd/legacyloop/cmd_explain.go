package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/legacyloop/internal/models"
	"github.com/ajitpratap0/legacyloop/internal/render"
	"github.com/ajitpratap0/legacyloop/internal/session"
)

func explainCmd() *cobra.Command {
	var tf terminalFlags

	cmd := &cobra.Command{
		Use:   "explain <asset name>",
		Short: "Explain a holding of the demo portfolio the way the heir sees it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()

			svc, err := newContentService(ctx, logger)
			if err != nil {
				return fmt.Errorf("explain: %w", err)
			}

			sess := session.New("cli")
			a, err := findAsset(sess, strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("explain: %w", err)
			}
			e, err := sess.Explain(ctx, svc, a.ID)
			if err != nil {
				return fmt.Errorf("explain: %w", err)
			}
			a, text := e.Asset, e.Text

			md := fmt.Sprintf("## %s %s\n\n_%s · %s_\n\n%s\n", a.Type.Icon(), a.Name, a.Type, render.Currency(a.Value), text)
			return tf.print(cmd, md)
		},
	}
	tf.register(cmd)
	return cmd
}

// findAsset looks name up exactly, then ignoring case.
func findAsset(sess *session.Session, name string) (models.Asset, error) {
	a, err := sess.AssetByName(name)
	if err == nil {
		return a, nil
	}
	for _, cand := range sess.Assets() {
		if strings.EqualFold(cand.Name, strings.TrimSpace(name)) {
			return cand, nil
		}
	}
	return models.Asset{}, err
}
