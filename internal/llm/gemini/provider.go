package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"parley/internal/llm"
)

// Provider generates replies with the Gemini API.
type Provider struct {
	client *genai.Client
	model  string
	system string
}

// NewProvider creates a Gemini provider. The system instruction is applied
// to chat generation but not to single-prompt calls.
func NewProvider(ctx context.Context, apiKey, model, systemInstruction string) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		return nil, errors.New("gemini model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Provider{
		client: client,
		model:  model,
		system: systemInstruction,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "gemini"
}

// Chat generates a reply from the full ordered history.
func (p *Provider) Chat(ctx context.Context, history []llm.Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == llm.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	var cfg *genai.GenerateContentConfig
	if p.system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: p.system}},
			},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	return extractText(resp)
}

// Prompt generates from a single free-form prompt.
func (p *Provider) Prompt(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		out += part.Text
	}
	if out == "" {
		return "", errors.New("gemini returned empty text")
	}

	return out, nil
}
