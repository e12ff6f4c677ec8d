package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent returns the model's free-text answer to prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// Model returns the model identifier used for requests
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration.
// apiKey is only used by providers that authenticate with a key.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig(ProviderBedrock)
	}

	switch config.Provider {
	case ProviderBedrock:
		return NewBedrockClient(ctx, config)
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
