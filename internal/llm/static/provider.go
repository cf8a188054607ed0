// Package static provides a deterministic generator for development and
// testing without real API keys.
package static

import (
	"context"
	"fmt"
	"strings"

	"parley/internal/llm"
)

// Provider echoes a canned acknowledgement of the last user turn.
type Provider struct{}

// NewProvider creates a static provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "static"
}

// Chat replies deterministically based on the last user turn.
func (p *Provider) Chat(ctx context.Context, history []llm.Turn) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var last string
	for _, turn := range history {
		if turn.Role == llm.RoleUser {
			last = turn.Text
		}
	}
	if last == "" {
		return "Hello! How can I help you today?", nil
	}

	return fmt.Sprintf("You said: %q. This is a canned reply from the static provider.", last), nil
}

// Prompt answers with the first five words of the prompt's quoted question,
// which makes derived titles stable in tests.
func (p *Provider) Prompt(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Pull out the question if the prompt quotes one.
	text := prompt
	if start := strings.Index(prompt, "'"); start >= 0 {
		if end := strings.Index(prompt[start+1:], "'"); end > 0 {
			text = prompt[start+1 : start+1+end]
		}
	}

	words := strings.Fields(text)
	if len(words) > 5 {
		words = words[:5]
	}
	if len(words) == 0 {
		return "Untitled", nil
	}

	return strings.Join(words, " "), nil
}
