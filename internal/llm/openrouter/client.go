// Package openrouter implements llm.Provider against the OpenRouter
// chat-completions API (or any OpenAI-compatible endpoint) using the
// official OpenAI Go SDK pointed at a configurable base URL.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/edugenie/edugenie/internal/llm"
)

const (
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is OpenRouter's free-tier model router.
	DefaultModel = "openrouter/free"
)

// Client calls the chat-completions endpoint. One synchronous request per
// Complete call: no retries, no streaming, default sampling parameters.
type Client struct {
	client openai.Client
	model  string
}

// New creates a Client. Empty model or baseURL fall back to the defaults.
func New(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithMaxRetries(0),
		),
		model: model,
	}
}

// Complete sends the transcript, in order, and returns the first choice's
// message content. Failures come back as *llm.CompletionError so callers
// can surface the message in place of a reply.
func (c *Client) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toParams(messages),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}

	if len(completion.Choices) == 0 {
		return "", &llm.CompletionError{
			Kind:    llm.KindMalformed,
			Message: "the model returned no completion choices",
		}
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", &llm.CompletionError{
			Kind:    llm.KindMalformed,
			Message: "the model returned an empty reply",
		}
	}
	return content, nil
}

// toParams converts transcript messages to the SDK union type. The input
// slice is read only; order is preserved exactly.
func toParams(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out[i] = openai.SystemMessage(m.Content)
		case llm.RoleAssistant:
			out[i] = openai.AssistantMessage(m.Content)
		default:
			out[i] = openai.UserMessage(m.Content)
		}
	}
	return out
}

// mapError converts SDK errors into *llm.CompletionError. Messages are
// rebuilt from the status code and the endpoint's error body so the bearer
// credential can never appear in user-visible text.
func mapError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusPaymentRequired, http.StatusTooManyRequests:
			return &llm.CompletionError{
				Kind:    llm.KindStatus,
				Message: "OpenRouter free quota or rate limit reached. Please try again later or choose another free model.",
			}
		}
		msg := strings.TrimSpace(apierr.Message)
		if msg == "" {
			msg = http.StatusText(apierr.StatusCode)
		}
		return &llm.CompletionError{
			Kind:    llm.KindStatus,
			Message: fmt.Sprintf("completion endpoint returned status %d: %s", apierr.StatusCode, msg),
		}
	}
	return &llm.CompletionError{
		Kind:    llm.KindTransport,
		Message: "could not reach the completion endpoint: " + err.Error(),
	}
}
