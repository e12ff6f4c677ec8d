// Package llm provides the model clients that write environment evaluations.
package llm

import "fmt"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderBedrock runs Anthropic Claude through AWS Bedrock
	ProviderBedrock Provider = "bedrock"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Model       string
	Region      string // AWS region, Bedrock only
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// DefaultConfig returns the default configuration for a provider.
func DefaultConfig(provider Provider) *Config {
	switch provider {
	case ProviderGemini:
		return &Config{
			Provider:    ProviderGemini,
			Model:       "gemini-2.5-flash",
			MaxTokens:   4000,
			Temperature: 1,
			TopP:        0.9,
		}
	default:
		return &Config{
			Provider:    ProviderBedrock,
			Model:       "anthropic.claude-3-sonnet-20240229-v1:0",
			Region:      "us-east-1",
			MaxTokens:   4000,
			Temperature: 1,
			TopP:        0.9,
		}
	}
}

// WithModel returns a copy of the config using model.
func (c *Config) WithModel(model string) *Config {
	clone := *c
	clone.Model = model
	return &clone
}

// ParseProvider converts a configuration string to a Provider.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case ProviderBedrock, ProviderGemini:
		return p, nil
	default:
		return "", fmt.Errorf("unknown LLM provider %q", s)
	}
}
