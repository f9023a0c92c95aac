/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"github.com/corretor-ai/corretor/generation"
	"github.com/corretor-ai/corretor/metrics"
	"github.com/corretor-ai/corretor/parse"
	"github.com/corretor-ai/corretor/prompt"
	"github.com/corretor-ai/corretor/retrieval"
	"github.com/corretor-ai/corretor/textstats"
)

// themeGateK is how many theme fragments feed the adherence prompt.
const themeGateK = 3

// defaultEssayTokenBudget caps the essay size embedded in criterion
// prompts; longer essays are elided in the middle, keeping introduction
// and conclusion intact.
const defaultEssayTokenBudget = 4000

// Evaluator orchestrates the evaluation pipeline. All configuration is
// fixed at construction; the Evaluator holds no per-call state.
type Evaluator struct {
	index            retrieval.Index
	client           generation.Client
	genai            *metrics.GenAI
	essayTokenBudget int
}

// Option customizes an Evaluator at construction.
type Option func(*Evaluator) error

// WithEssayTokenBudget overrides the essay token budget applied before
// prompt assembly. Zero disables trimming.
func WithEssayTokenBudget(tokens int) Option {
	return func(e *Evaluator) error {
		if tokens < 0 {
			return fmt.Errorf("essay token budget cannot be negative, got %d", tokens)
		}
		e.essayTokenBudget = tokens
		return nil
	}
}

// New creates an Evaluator reading reference material from index and
// scoring through client.
func New(index retrieval.Index, client generation.Client, opts ...Option) (*Evaluator, error) {
	if index == nil {
		return nil, errors.New("retrieval index cannot be nil")
	}
	if client == nil {
		return nil, errors.New("generation client cannot be nil")
	}
	e := &Evaluator{
		index:            index,
		client:           client,
		genai:            metrics.NewGenAI("corretor.ai.evaluator"),
		essayTokenBudget: defaultEssayTokenBudget,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return e, nil
}

// Evaluate runs the full pipeline for one essay: theme gate, five
// criterion evaluations, aggregation and narrative synthesis. Any
// retrieval, generation or parse failure aborts the whole call; no
// partial result is ever returned.
func (e *Evaluator) Evaluate(ctx context.Context, essay, topic string) (*EvaluationResult, error) {
	log := clog.FromContext(ctx)

	verdict, err := e.VerifyThemeAdherence(ctx, essay, topic)
	if err != nil {
		return nil, err
	}
	if verdict.Adherence == AdherenceOffTopic {
		log.With("topic", topic).Info("Essay rejected by theme gate")
		return offTopicResult(), nil
	}

	trimmed := textstats.TrimToTokenBudget(essay, e.essayTokenBudget)

	// The five evaluations are independent; run them concurrently and
	// fail fast on the first error.
	results := make([]CriterionResult, NumCriteria)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(NumCriteria)
	for _, spec := range criteria {
		g.Go(func() error {
			result, err := e.evaluateCriterion(gctx, spec, trimmed, topic)
			if err != nil {
				return err
			}
			results[spec.ID-1] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[CriterionID]CriterionResult, NumCriteria)
	finalScore := 0
	for i, result := range results {
		byID[CriterionID(i+1)] = result
		finalScore += result.Score
	}

	strongest, weakest := strongestWeakest(results)
	log.With("final_score", finalScore).
		With("strongest", strongest.Name()).
		With("weakest", weakest.Name()).
		Info("Evaluation complete")

	return &EvaluationResult{
		FinalScore: finalScore,
		Criteria:   byID,
		Overall:    synthesizeOverall(byID, finalScore, strongest, weakest),
	}, nil
}

// VerifyThemeAdherence classifies how the essay relates to topic using
// retrieved theme reference material.
func (e *Evaluator) VerifyThemeAdherence(ctx context.Context, essay, topic string) (*ThemeVerdict, error) {
	e.genai.RecordStep(ctx, "theme_gate")

	fragments, err := e.index.Search(ctx, "compreensão tema redação enem",
		[]retrieval.Category{retrieval.CategoryTheme}, themeGateK)
	if err != nil {
		return nil, err
	}

	p, err := bindAll(themePrompt, map[string]string{
		"topic":         topic,
		"essay":         essay,
		"output_schema": themeSchema,
	})
	if err != nil {
		return nil, err
	}
	p, err = p.BindJSON("context", fragments)
	if err != nil {
		return nil, err
	}
	built, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("building theme prompt: %w", err)
	}

	raw, err := e.client.Complete(ctx, built)
	if err != nil {
		return nil, err
	}

	verdict, err := parse.Structured[ThemeVerdict](raw)
	if err != nil {
		return nil, err
	}
	if !verdict.Adherence.Valid() {
		return nil, parse.Invalid(raw, fmt.Errorf("unknown adherence classification %q", verdict.Adherence))
	}
	if verdict.Justification == "" {
		return nil, parse.Invalid(raw, errors.New("theme verdict is missing its justification"))
	}
	return &verdict, nil
}

// evaluateCriterion runs one retrieval-augmented criterion evaluation.
func (e *Evaluator) evaluateCriterion(ctx context.Context, spec criterionSpec, essay, topic string) (CriterionResult, error) {
	e.genai.RecordStep(ctx, fmt.Sprintf("criterion_%d", spec.ID))

	fragments, err := e.index.Search(ctx, spec.Query, spec.Categories, spec.K)
	if err != nil {
		return CriterionResult{}, err
	}

	topicBlock := ""
	if spec.NeedsTopic {
		topicBlock = fmt.Sprintf("# Essay topic:\n%s\n\n", topic)
	}
	focusBlock := ""
	if spec.Focus != nil {
		focusBlock = spec.Focus(essay)
	}

	p, err := bindAll(criterionPrompt, map[string]string{
		"criterion_id":   fmt.Sprintf("%d", spec.ID),
		"criterion_name": spec.ID.Name(),
		"topic_block":    topicBlock,
		"focus_block":    focusBlock,
		"essay":          essay,
		"context":        joinFragments(fragments),
		"output_schema":  criterionSchema,
	})
	if err != nil {
		return CriterionResult{}, err
	}
	built, err := p.Build()
	if err != nil {
		return CriterionResult{}, fmt.Errorf("building criterion %d prompt: %w", spec.ID, err)
	}

	raw, err := e.client.Complete(ctx, built)
	if err != nil {
		return CriterionResult{}, err
	}

	result, err := parse.Structured[CriterionResult](raw)
	if err != nil {
		return CriterionResult{}, err
	}
	if result.Analysis == "" {
		return CriterionResult{}, parse.Invalid(raw, fmt.Errorf("criterion %d result is missing its analysis", spec.ID))
	}
	return result, nil
}

// bindAll binds every entry of values as a text binding on p.
func bindAll(p *prompt.Prompt, values map[string]string) (*prompt.Prompt, error) {
	var err error
	for name, value := range values {
		if p, err = p.Bind(name, value); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// joinFragments renders retrieved fragments as prompt context.
func joinFragments(fragments []retrieval.Fragment) string {
	if len(fragments) == 0 {
		return "(no reference material retrieved)"
	}
	texts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		texts = append(texts, f.Text)
	}
	return strings.Join(texts, "\n\n")
}
