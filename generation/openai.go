/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/corretor-ai/corretor/metrics"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openaiClient struct {
	client    openai.Client
	model     string
	maxTokens int64
	genai     *metrics.GenAI
}

// NewOpenAI creates the OpenAI chat-completions backend, wrapped in the
// retry policy.
func NewOpenAI(cfg Config, opts ...RetryOption) (Client, error) {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	var clientOpts []option.RequestOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}

	backend := &openaiClient{
		client:    openai.NewClient(clientOpts...),
		model:     model,
		maxTokens: cfg.maxTokens(),
		genai:     metrics.NewGenAI("corretor.ai.evaluator"),
	}
	return WithRetry(backend, opts...), nil
}

// Complete implements Client with a single chat-completion call.
func (c *openaiClient) Complete(ctx context.Context, prompt string) (string, error) {
	c.genai.RecordGenerationCall(ctx, c.model)

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		MaxTokens: openai.Int(c.maxTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		c.genai.RecordTokens(ctx, c.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in openai response")
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", errors.New("no text content in openai response")
	}

	clog.FromContext(ctx).With("model", c.model).
		With("response_length", len(content)).
		Debug("OpenAI completion finished")
	return content, nil
}
