// Package llm wraps the OpenAI-compatible chat completion API behind a small
// request type shared by the agent loop, the visual QA path, and the judge.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const requestTimeout = 2 * time.Minute

// Turn is one message of a chat exchange. Images are data URIs attached to
// the turn alongside its text.
type Turn struct {
	Role   string
	Text   string
	Images []string
}

// Request describes one chat completion call.
type Request struct {
	System      string
	Turns       []Turn
	Temperature *float32 // nil leaves the provider default in place
	MaxTokens   int
}

// Client calls one model on an OpenAI-compatible endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a client for the given endpoint and model. An empty
// baseURL falls back to the official OpenAI endpoint.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Model returns the model identifier this client calls.
func (c *Client) Model() string {
	return c.model
}

// Complete performs one chat completion and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Turns)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, turn := range req.Turns {
		messages = append(messages, toMessage(turn))
	}

	chatReq := openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	}
	if req.Temperature != nil {
		temperature := *req.Temperature
		if temperature == 0 {
			// The request struct marks temperature omitempty, so an exact
			// zero would be dropped and the provider default used instead.
			temperature = math.SmallestNonzeroFloat32
		}
		chatReq.Temperature = temperature
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("request chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toMessage(turn Turn) openai.ChatCompletionMessage {
	role := openai.ChatMessageRoleUser
	if turn.Role == RoleAssistant {
		role = openai.ChatMessageRoleAssistant
	}
	if len(turn.Images) == 0 {
		return openai.ChatCompletionMessage{Role: role, Content: turn.Text}
	}

	parts := make([]openai.ChatMessagePart, 0, len(turn.Images)+1)
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: turn.Text,
	})
	for _, image := range turn.Images {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    image,
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}
	return openai.ChatCompletionMessage{Role: role, MultiContent: parts}
}

// Ptr returns a pointer to v, for optional request fields.
func Ptr[T any](v T) *T {
	return &v
}
