// Package llm talks to an OpenAI-compatible chat completion endpoint.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/deppfellow/shoe-rental/internal/config"
	"github.com/deppfellow/shoe-rental/internal/errs"
)

// Client sends a system instruction plus one user message and returns the
// first completion's text unchanged.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *zerolog.Logger
}

// NewClient builds a Client from the oracle configuration.
//
// Outgoing requests go through the New Relic round tripper, so calls made
// inside a transaction show up as external segments.
func NewClient(cfg config.OpenAIConfig, logger *zerolog.Logger) *Client {
	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}
	apiConfig.HTTPClient = &http.Client{
		Transport: newrelic.NewRoundTripper(nil),
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

// Complete implements discount.Oracle.
func (c *Client) Complete(ctx context.Context, systemInstruction, userText string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrDiscountOracle, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", errs.ErrDiscountOracle)
	}

	c.logger.Debug().
		Str("model", resp.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("oracle completion received")

	return resp.Choices[0].Message.Content, nil
}
