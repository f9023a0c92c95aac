/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package generation wraps the text-generation services the evaluator
// calls. Two interchangeable backends are provided (Anthropic and
// OpenAI); both are wrapped in the same bounded-retry policy for
// transient transport failures. Malformed-but-successful replies are not
// retried here: content handling belongs to the parse package.
package generation

import (
	"context"
	"fmt"
)

// Client sends one prompt to a generation service and returns the raw
// reply text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements Client.
func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ExhaustedError reports that the generation service failed on every
// attempt. Err is the last underlying transport error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("generation service failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Config holds the backend selection knobs shared by both backends.
type Config struct {
	// Model identifier; defaults to the backend's standard model.
	Model string
	// MaxTokens bounds the response size; defaults to 4000.
	MaxTokens int64
	// APIKey authenticates the service; when empty the backend SDK falls
	// back to its environment variable.
	APIKey string
}

const defaultMaxTokens = 4000

func (c Config) maxTokens() int64 {
	if c.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return c.MaxTokens
}
