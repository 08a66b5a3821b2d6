package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// claudeMaxTokens caps response length; every prompt asks for at most three short paragraphs.
const claudeMaxTokens = 1024

// ClaudeGenerator generates text with the Anthropic Messages API.
type ClaudeGenerator struct {
	client *anthropic.Client
	model  string
}

var _ Generator = (*ClaudeGenerator)(nil)

// NewClaudeGenerator creates a ClaudeGenerator. Extra options are passed to
// the SDK client (tests use option.WithBaseURL).
func NewClaudeGenerator(apiKey, model string, opts ...option.RequestOption) *ClaudeGenerator {
	c := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &ClaudeGenerator{
		client: &c,
		model:  model,
	}
}

// Generate sends prompt as a single user message and returns the first text block.
func (g *ClaudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude: generating content: %w", err)
	}

	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			return strings.TrimSpace(resp.Content[i].Text), nil
		}
	}
	return "", nil
}
