package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/legacyloop/internal/session"
)

// exportSnapshot writes snap in format. CSV holds one record kind only,
// chosen by records; json and yaml hold both.
func exportSnapshot(w io.Writer, snap session.Snapshot, format, records string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	case "csv":
		cw := csv.NewWriter(w)
		var rows [][]string
		switch records {
		case "assets":
			rows = append(rows, []string{"id", "name", "value", "type", "symbol", "description"})
			for _, a := range snap.Assets {
				rows = append(rows, []string{strconv.Itoa(a.ID), a.Name, a.Value.String(), string(a.Type), a.Symbol, a.Description})
			}
		case "engagement":
			rows = append(rows, []string{"timestamp", "heir", "action", "asset", "asset_type"})
			for _, e := range snap.Engagement {
				rows = append(rows, []string{e.Timestamp, e.Heir, e.Action, e.Asset, string(e.AssetType)})
			}
		default:
			return fmt.Errorf("unsupported records %q (use assets or engagement)", records)
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q (use json, yaml or csv)", format)
	}
	return nil
}

func exportCmd() *cobra.Command {
	var (
		format  string
		records string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the demo portfolio and engagement log to JSON, YAML or CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := session.New("cli").Snapshot()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("export: creating output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := exportSnapshot(w, snap, format, records); err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if output != "" && output != "-" {
				fmt.Fprintf(os.Stderr, "Exported %d assets to %s\n", len(snap.Assets), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json, yaml or csv")
	cmd.Flags().StringVar(&records, "records", "assets", "records to write in CSV: assets or engagement")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	return cmd
}
