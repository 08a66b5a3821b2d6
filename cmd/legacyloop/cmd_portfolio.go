package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/legacyloop/internal/models"
	"github.com/ajitpratap0/legacyloop/internal/render"
	"github.com/ajitpratap0/legacyloop/internal/session"
)

// terminalFlags are shared by commands that print rendered markdown.
type terminalFlags struct {
	style string
	width int
}

func (f *terminalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.style, "style", "auto", "Terminal style: auto, dark, light, notty")
	cmd.Flags().IntVar(&f.width, "width", 80, "Wrap width (0 disables wrapping)")
}

func (f *terminalFlags) print(cmd *cobra.Command, md string) error {
	out, err := render.Terminal(md, f.style, f.width)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// portfolioMarkdown renders the holdings and summary as a markdown table.
func portfolioMarkdown(assets []models.Asset, sum models.PortfolioSummary) string {
	var b strings.Builder
	b.WriteString("# Family Portfolio\n\n")
	fmt.Fprintf(&b, "**Total value:** %s  \n**Asset classes:** %d  \n**Holdings:** %d\n\n",
		render.Currency(sum.TotalValue), sum.AssetClasses, sum.Holdings)
	if len(assets) == 0 {
		b.WriteString("_No holdings._\n")
		return b.String()
	}
	b.WriteString("| ID | | Name | Type | Symbol | Value |\n")
	b.WriteString("|---:|---|---|---|---|---:|\n")
	for _, a := range assets {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			a.ID, a.Type.Icon(), mdCell(a.Name), a.Type, mdCell(a.Symbol), render.Currency(a.Value))
	}
	return b.String()
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func portfolioCmd() *cobra.Command {
	var tf terminalFlags

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show the demo family portfolio and its summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New("cli")
			return tf.print(cmd, portfolioMarkdown(sess.Assets(), sess.Summary()))
		},
	}
	tf.register(cmd)
	return cmd
}
