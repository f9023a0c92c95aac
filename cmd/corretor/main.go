/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the corretor command line tool. It reads an
// essay, evaluates it against the five-criterion rubric using retrieved
// reference material, and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/corretor-ai/corretor/generation"
	"github.com/corretor-ai/corretor/parse"
	"github.com/corretor-ai/corretor/retrieval"
	"github.com/corretor-ai/corretor/rubric"
)

type config struct {
	// Backend selects the generation service: "anthropic" or "openai".
	Backend string `env:"CORRETOR_BACKEND,default=anthropic"`
	// Model overrides the backend's default model.
	Model string `env:"CORRETOR_MODEL"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`

	ChromaURL        string `env:"CHROMA_URL,default=http://localhost:8000"`
	ChromaCollection string `env:"CHROMA_COLLECTION,default=enem_redacao"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	topic := flag.String("topic", "", "essay topic statement (required for evaluate and structure)")
	essayPath := flag.String("essay", "-", "path to the essay text, or - for stdin")
	mode := flag.String("mode", "evaluate", "operation: evaluate, structure or repertoire")
	flag.Parse()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	client, err := buildClient(cfg)
	if err != nil {
		clog.FatalContextf(ctx, "configuring generation backend: %v", err)
	}

	index, err := retrieval.NewChromaIndex(ctx, retrieval.ChromaConfig{
		BaseURL:      cfg.ChromaURL,
		Collection:   cfg.ChromaCollection,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
	})
	if err != nil {
		clog.FatalContextf(ctx, "connecting to the reference index at %s: %v", cfg.ChromaURL, err)
	}

	evaluator, err := rubric.New(index, client)
	if err != nil {
		clog.FatalContextf(ctx, "building evaluator: %v", err)
	}

	if err := run(ctx, evaluator, *mode, *topic, *essayPath); err != nil {
		report(ctx, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, evaluator *rubric.Evaluator, mode, topic, essayPath string) error {
	switch mode {
	case "evaluate":
		if topic == "" {
			return errors.New("evaluate requires -topic")
		}
		essay, err := readEssay(essayPath)
		if err != nil {
			return err
		}
		result, err := evaluator.Evaluate(ctx, essay, topic)
		if err != nil {
			return err
		}
		return printJSON(result)

	case "structure":
		if topic == "" {
			return errors.New("structure requires -topic")
		}
		outline, err := evaluator.SuggestStructure(ctx, topic)
		if err != nil {
			return err
		}
		fmt.Println(outline)
		return nil

	case "repertoire":
		essay, err := readEssay(essayPath)
		if err != nil {
			return err
		}
		analysis, err := evaluator.AnalyzeRepertoire(ctx, essay)
		if err != nil {
			return err
		}
		fmt.Println(analysis)
		return nil

	default:
		return fmt.Errorf("unknown mode %q (want evaluate, structure or repertoire)", mode)
	}
}

func buildClient(cfg config) (generation.Client, error) {
	gcfg := generation.Config{Model: cfg.Model}
	switch cfg.Backend {
	case "anthropic":
		gcfg.APIKey = cfg.AnthropicAPIKey
		return generation.NewAnthropic(gcfg)
	case "openai":
		gcfg.APIKey = cfg.OpenAIAPIKey
		return generation.NewOpenAI(gcfg)
	default:
		return nil, fmt.Errorf("unknown backend %q (want anthropic or openai)", cfg.Backend)
	}
}

func readEssay(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading essay: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("essay is empty")
	}
	return string(data), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// report logs the failure with operator guidance for the known error
// kinds: unreachable index, exhausted generation retries, unparseable
// model output.
func report(ctx context.Context, err error) {
	var unavailable *retrieval.UnavailableError
	var exhausted *generation.ExhaustedError
	var format *parse.FormatError
	switch {
	case errors.As(err, &unavailable):
		clog.ErrorContextf(ctx, "reference index unavailable, check CHROMA_URL and the collection name: %v", err)
	case errors.As(err, &exhausted):
		clog.ErrorContextf(ctx, "generation service kept failing after %d attempts, check connectivity and API keys: %v", exhausted.Attempts, err)
	case errors.As(err, &format):
		clog.ErrorContextf(ctx, "model reply could not be parsed, consider a different model: %v", err)
	default:
		clog.ErrorContextf(ctx, "%v", err)
	}
}
