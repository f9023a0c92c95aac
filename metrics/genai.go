/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry counters for the evaluation
// pipeline: token usage per generation backend and per-step evaluation
// counts. Counters degrade to no-ops if creation fails, so metric
// wiring can never break an evaluation.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI records generative-AI usage metrics for the evaluator.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	generationCalls  metric.Int64Counter
	evaluationSteps  metric.Int64Counter
}

// NewGenAI creates a GenAI metrics instance on the named meter. The meter
// name is unified across backends ("corretor.ai.evaluator"); the model
// and step names are dimensions on the recorded metrics.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	generationCalls, err := meter.Int64Counter("genai.generation.calls",
		metric.WithDescription("The number of generation-service calls, including retries"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create generation calls counter, metrics will be disabled", "error", err, "meter", meterName)
		generationCalls = noop.Int64Counter{}
	}

	evaluationSteps, err := meter.Int64Counter("evaluation.steps",
		metric.WithDescription("The number of evaluation steps executed, by step name"),
		metric.WithUnit("{steps}"))
	if err != nil {
		slog.Warn("Failed to create evaluation steps counter, metrics will be disabled", "error", err, "meter", meterName)
		evaluationSteps = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		generationCalls:  generationCalls,
		evaluationSteps:  evaluationSteps,
	}
}

// RecordTokens records prompt and completion token usage for a model.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	m.promptTokens.Add(ctx, promptTokens, attrs)
	m.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordGenerationCall records one generation-service attempt.
func (m *GenAI) RecordGenerationCall(ctx context.Context, model string) {
	m.generationCalls.Add(ctx, 1, metric.WithAttributes(attribute.String("model", model)))
}

// RecordStep records one evaluation step (theme gate, a criterion, an
// assist operation) by name.
func (m *GenAI) RecordStep(ctx context.Context, step string) {
	m.evaluationSteps.Add(ctx, 1, metric.WithAttributes(attribute.String("step", step)))
}
