package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Bedrock(t *testing.T) {
	config := DefaultConfig(ProviderBedrock)

	assert.Equal(t, ProviderBedrock, config.Provider)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", config.Model)
	assert.Equal(t, "us-east-1", config.Region)
	assert.Equal(t, 4000, config.MaxTokens)
	assert.InDelta(t, 1.0, config.Temperature, 1e-6)
	assert.InDelta(t, 0.9, config.TopP, 1e-6)
}

func TestDefaultConfig_Gemini(t *testing.T) {
	config := DefaultConfig(ProviderGemini)

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.Model)
	assert.Empty(t, config.Region)
}

func TestDefaultConfig_UnknownFallsBackToBedrock(t *testing.T) {
	assert.Equal(t, ProviderBedrock, DefaultConfig("other").Provider)
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig(ProviderBedrock)
	newConfig := config.WithModel("anthropic.claude-3-haiku-20240307-v1:0")

	// Original should be unchanged
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", config.Model)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", newConfig.Model)
	assert.Equal(t, config.Region, newConfig.Region)
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("bedrock")
	require.NoError(t, err)
	assert.Equal(t, ProviderBedrock, p)

	p, err = ParseProvider("gemini")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ParseProvider("openai")
	assert.Error(t, err)
}

func TestInvocationError(t *testing.T) {
	err := &InvocationError{Provider: ProviderBedrock, Message: "no text content in response"}
	assert.Equal(t, "bedrock call failed: no text content in response", err.Error())
	assert.Nil(t, err.Unwrap())
}
