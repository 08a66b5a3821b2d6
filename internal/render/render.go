// Package render formats portfolio figures and generated markdown for the
// API and the terminal.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
)

// DefaultCurrency is the currency every asset value is expressed in.
const DefaultCurrency = money.USD

var (
	currency = money.GetCurrency(DefaultCurrency)

	// wholeUnits formats amounts in DefaultCurrency without minor units.
	wholeUnits = money.NewFormatter(0, currency.Decimal, currency.Thousand, currency.Grapheme, currency.Template)
)

// Currency formats v as whole currency units, e.g. "$1,250,000". Amounts
// beyond int64 are grouped from their decimal digits.
func Currency(v decimal.Decimal) string {
	r := v.Round(0)
	if n := r.BigInt(); n.IsInt64() {
		return wholeUnits.Format(n.Int64())
	}
	amount := groupThousands(r.Abs().String(), currency.Thousand)
	out := strings.Replace(currency.Template, "1", amount, 1)
	out = strings.Replace(out, "$", currency.Grapheme, 1)
	if r.IsNegative() {
		out = "-" + out
	}
	return out
}

func groupThousands(digits, sep string) string {
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(d)
	}
	return b.String()
}

// HTML converts markdown to HTML. Raw HTML in the source is omitted.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render: converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders markdown for a terminal. style is a glamour style name
// ("auto", "dark", "light", "notty"); width <= 0 disables wrapping.
func Terminal(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("render: creating terminal renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render: rendering markdown: %w", err)
	}
	return out, nil
}
