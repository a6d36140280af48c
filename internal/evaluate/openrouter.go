package evaluate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("OPEN_ROUTER_API_KEY is not set")
	// ErrEmptyResponse is returned when the model answers without content.
	ErrEmptyResponse = errors.New("empty response from evaluation model")
)

// Settings configures an OpenRouterClient.
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenRouterClient talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterClient struct {
	client openai.Client
	model  string
}

// NewOpenRouterClient validates settings and builds the client. Extra request
// options are appended after the defaults.
func NewOpenRouterClient(s Settings, opts ...option.RequestOption) (*OpenRouterClient, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(s.Model) == "" {
		return nil, fmt.Errorf("evaluation model is empty")
	}
	base := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithHeader("X-Title", "speedread"),
	}
	if s.BaseURL != "" {
		base = append(base, option.WithBaseURL(strings.TrimRight(s.BaseURL, "/")+"/"))
	}
	if s.Timeout > 0 {
		base = append(base, option.WithRequestTimeout(s.Timeout))
	}
	return &OpenRouterClient{
		client: openai.NewClient(append(base, opts...)...),
		model:  s.Model,
	}, nil
}

// Evaluate implements Client.
func (c *OpenRouterClient) Evaluate(ctx context.Context, req Request) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(req)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("evaluation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrEmptyResponse)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: missing message content", ErrEmptyResponse)
	}
	return content, nil
}
