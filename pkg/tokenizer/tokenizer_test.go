package tokenizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		minExpect int
		maxExpect int
	}{
		{"empty", "", 0, 0},
		{"single word", "hello", 0, 3},
		{"short sentence", "Hard work, education, philanthropy", 3, 15},
		{"longer text", strings.Repeat("word ", 100), 80, 200},
		{"pangram calibration", "The quick brown fox jumps over the lazy dog", 8, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := EstimateTokens(tt.text)
			assert.GreaterOrEqual(t, tokens, tt.minExpect)
			assert.LessOrEqual(t, tokens, tt.maxExpect)
		})
	}
}

func TestTruncateToTokenBudget(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		budget int
		check  func(t *testing.T, result string)
	}{
		{
			name:   "within budget",
			text:   "Keep the family together",
			budget: 100,
			check: func(t *testing.T, result string) {
				assert.Equal(t, "Keep the family together", result)
			},
		},
		{
			name:   "exceeds budget",
			text:   strings.Repeat("word ", 200),
			budget: 10,
			check: func(t *testing.T, result string) {
				assert.Less(t, len(result), len(strings.Repeat("word ", 200)))
				assert.True(t, strings.HasSuffix(result, "..."))
				assert.LessOrEqual(t, EstimateTokens(result), 30)
			},
		},
		{
			name:   "zero budget",
			text:   "some text",
			budget: 0,
			check: func(t *testing.T, result string) {
				assert.Equal(t, "", result)
			},
		},
		{
			name:   "multi-byte text stays valid UTF-8",
			text:   strings.Repeat("üöä", 400),
			budget: 5,
			check: func(t *testing.T, result string) {
				assert.True(t, utf8.ValidString(result))
				assert.True(t, strings.HasSuffix(result, "..."))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, TruncateToTokenBudget(tt.text, tt.budget))
		})
	}
}
