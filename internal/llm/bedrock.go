package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const anthropicBedrockVersion = "bedrock-2023-05-31"

// modelInvoker is the subset of the Bedrock runtime API used here
type modelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient implements Client for Anthropic Claude on AWS Bedrock
type BedrockClient struct {
	runtime modelInvoker
	config  *Config
}

// NewBedrockClient creates a Bedrock client using the default AWS credential chain
func NewBedrockClient(ctx context.Context, config *Config) (*BedrockClient, error) {
	region := config.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &BedrockClient{
		runtime: bedrockruntime.NewFromConfig(awsCfg),
		config:  config,
	}, nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float32            `json:"temperature"`
	TopP             float32            `json:"top_p"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateContent sends prompt as a single user message and returns the
// first text block of the answer
func (c *BedrockClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	body, err := c.requestBody(prompt)
	if err != nil {
		return "", err
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.config.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", &InvocationError{Provider: ProviderBedrock, Message: "invoke model", Cause: err}
	}

	return extractAnthropicText(out.Body)
}

func (c *BedrockClient) requestBody(prompt string) ([]byte, error) {
	maxTokens := c.config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4000
	}
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicBedrockVersion,
		MaxTokens:        maxTokens,
		Temperature:      c.config.Temperature,
		TopP:             c.config.TopP,
		Messages:         []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Bedrock request: %w", err)
	}
	return body, nil
}

// Model returns the Bedrock model ID
func (c *BedrockClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the AWS client holds no resources that need releasing
func (c *BedrockClient) Close() error {
	return nil
}

func extractAnthropicText(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &InvocationError{Provider: ProviderBedrock, Message: "decode response", Cause: err}
	}
	for _, block := range resp.Content {
		if block.Type == "text" || (block.Type == "" && block.Text != "") {
			return block.Text, nil
		}
	}
	return "", &InvocationError{Provider: ProviderBedrock, Message: "no text content in response"}
}
