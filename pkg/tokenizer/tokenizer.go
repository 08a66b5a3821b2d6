// Package tokenizer estimates prompt sizes so user-supplied text can be
// capped before it is embedded in a generation prompt.
package tokenizer

import (
	"strings"
)

// EstimateTokens provides a rough token count estimate.
// Uses the heuristic of ~4 characters per token for English text.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Count words and characters for a blended estimate
	words := len(strings.Fields(text))
	chars := len([]rune(text))

	// Heuristic: average of word-based and char-based estimates
	wordEstimate := int(float64(words) * 1.3) // ~1.3 tokens per word
	charEstimate := chars / 4                 // ~4 chars per token

	return (wordEstimate + charEstimate) / 2
}

// TruncateToTokenBudget truncates text to approximately fit within a token
// budget, cutting at a word boundary when one is close and never inside a
// multi-byte character.
func TruncateToTokenBudget(text string, budget int) string {
	if budget <= 0 {
		return ""
	}

	if EstimateTokens(text) <= budget {
		return text
	}

	// Approximate: 4 chars per token
	maxChars := budget * 4
	runes := []rune(text)
	if maxChars >= len(runes) {
		return text
	}

	truncated := string(runes[:maxChars])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimRight(truncated, " ") + "..."
}
