package completion

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sakif/content-remix/internal/apperror"
)

// Compile-time check that *Client satisfies the Service interface.
var _ Service = (*Client)(nil)

// Client calls the OpenAI chat-completion API.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a completion client. baseURL is normally empty; tests point it
// at a local httptest server standing in for the OpenAI API.
func New(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Generate sends the prompt as a single user message and returns the
// generated text. No retries — every failure is mapped to the error
// taxonomy and surfaced immediately to the caller.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", apperror.Upstream("completion service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// mapError translates SDK and transport failures into the taxonomy:
// 401 → Unauthorized, 429 → RateLimited, everything else → Upstream with
// the raw error preserved as detail.
func mapError(err error) error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusUnauthorized:
		return apperror.Unauthorized("completion service rejected the API key")
	case http.StatusTooManyRequests:
		return apperror.RateLimited("completion service rate limit exceeded, try again later")
	default:
		return apperror.Upstream(err.Error())
	}
}
