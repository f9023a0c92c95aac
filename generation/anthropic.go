/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"

	"github.com/corretor-ai/corretor/metrics"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

type anthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	genai     *metrics.GenAI
}

// NewAnthropic creates the Anthropic Messages backend, wrapped in the
// retry policy.
func NewAnthropic(cfg Config, opts ...RetryOption) (Client, error) {
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	if !strings.HasPrefix(model, "claude-") {
		return nil, fmt.Errorf("model %q does not appear to be an Anthropic model (expected claude-* format)", model)
	}

	var clientOpts []option.RequestOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}

	backend := &anthropicClient{
		client:    anthropic.NewClient(clientOpts...),
		model:     model,
		maxTokens: cfg.maxTokens(),
		genai:     metrics.NewGenAI("corretor.ai.evaluator"),
	}
	return WithRetry(backend, opts...), nil
}

// Complete implements Client with a single Messages call.
func (c *anthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.genai.RecordGenerationCall(ctx, c.model)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		c.genai.RecordTokens(ctx, c.model, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text content in anthropic response")
	}

	clog.FromContext(ctx).With("model", c.model).
		With("response_length", sb.Len()).
		Debug("Anthropic completion finished")
	return sb.String(), nil
}
