package llm

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ProviderDefaults holds per-provider settings from the embedded config.
type ProviderDefaults struct {
	DefaultModel string `yaml:"default_model"`
}

// PromptConfig holds the prompt templates and provider defaults loaded from
// the embedded YAML file.
type PromptConfig struct {
	SystemInstruction string                      `yaml:"system_instruction"`
	TitleInstruction  string                      `yaml:"title_instruction"`
	Providers         map[string]ProviderDefaults `yaml:"providers"`
}

// LoadPrompts parses the embedded prompt configuration.
func LoadPrompts() (*PromptConfig, error) {
	data, err := configFiles.ReadFile("config/prompts.yaml")
	if err != nil {
		return nil, fmt.Errorf("read prompt config: %w", err)
	}

	var cfg PromptConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal prompt config: %w", err)
	}

	if cfg.TitleInstruction == "" {
		return nil, fmt.Errorf("prompt config missing title_instruction")
	}

	return &cfg, nil
}

// TitlePrompt renders the title-derivation instruction for a first question.
func (c *PromptConfig) TitlePrompt(question string) string {
	return fmt.Sprintf(c.TitleInstruction, question)
}

// DefaultModel returns the configured default model for a provider, or ""
// if the provider is unknown.
func (c *PromptConfig) DefaultModel(provider string) string {
	return c.Providers[provider].DefaultModel
}
