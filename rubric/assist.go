/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"context"
	"fmt"
	"strings"

	"github.com/corretor-ai/corretor/parse"
	"github.com/corretor-ai/corretor/retrieval"
	"github.com/corretor-ai/corretor/textstats"
)

// SuggestStructure proposes an essay outline for topic, grounded on
// retrieved structural reference material. The reply is free text.
func (e *Evaluator) SuggestStructure(ctx context.Context, topic string) (string, error) {
	e.genai.RecordStep(ctx, "suggest_structure")

	structural, err := e.index.Search(ctx, "estrutura redação enem introdução desenvolvimento conclusão",
		[]retrieval.Category{retrieval.CategoryStructure}, 2)
	if err != nil {
		return "", err
	}
	examples, err := e.index.Search(ctx, "exemplos redação enem",
		[]retrieval.Category{retrieval.CategoryExamples}, 1)
	if err != nil {
		return "", err
	}

	p, err := bindAll(structurePrompt, map[string]string{
		"topic":   topic,
		"context": joinFragments(append(structural, examples...)),
	})
	if err != nil {
		return "", err
	}
	built, err := p.Build()
	if err != nil {
		return "", fmt.Errorf("building structure prompt: %w", err)
	}
	return e.client.Complete(ctx, built)
}

// AnalyzeRepertoire reviews the sociocultural repertoire of an essay,
// seeding the prompt with lexically detected candidate references. The
// reply is free text.
func (e *Evaluator) AnalyzeRepertoire(ctx context.Context, essay string) (string, error) {
	e.genai.RecordStep(ctx, "analyze_repertoire")

	fragments, err := e.index.Search(ctx, "repertório sociocultural redação enem",
		[]retrieval.Category{retrieval.CategoryArgumentation, retrieval.CategoryExamples}, 3)
	if err != nil {
		return "", err
	}

	candidates := textstats.SocioculturalReferences(essay)
	candidateBlock := "(none detected)"
	if len(candidates) > 0 {
		candidateBlock = "- " + strings.Join(candidates, "\n- ")
	}

	p, err := bindAll(repertoirePrompt, map[string]string{
		"essay":      essay,
		"candidates": candidateBlock,
		"context":    joinFragments(fragments),
	})
	if err != nil {
		return "", err
	}
	built, err := p.Build()
	if err != nil {
		return "", fmt.Errorf("building repertoire prompt: %w", err)
	}

	reply, err := e.client.Complete(ctx, built)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", parse.Invalid(reply, fmt.Errorf("empty repertoire analysis"))
	}
	return reply, nil
}
