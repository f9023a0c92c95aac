/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/corretor-ai/corretor/parse"
	"github.com/corretor-ai/corretor/retrieval"
	"github.com/corretor-ai/corretor/rubric"
)

const testEssay = `A sociedade brasileira enfrenta desafios estruturais.

Em primeiro lugar, segundo o IBGE, os dados mostram desigualdade persistente.

Portanto, o Estado deve criar programas de inclusão por meio de políticas públicas.`

// stubIndex returns canned fragments and records every search.
type stubIndex struct {
	mu       sync.Mutex
	searches []searchCall
	err      error
}

type searchCall struct {
	query      string
	categories []retrieval.Category
	k          int
}

func (s *stubIndex) Search(ctx context.Context, query string, categories []retrieval.Category, k int) ([]retrieval.Fragment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.searches = append(s.searches, searchCall{query: query, categories: categories, k: k})
	fragments := make([]retrieval.Fragment, 0, k)
	for i := 0; i < k; i++ {
		fragments = append(fragments, retrieval.Fragment{
			Text:     fmt.Sprintf("reference %d for %q", i, query),
			Category: categories[0],
		})
	}
	return fragments, nil
}

// stubClient replies per prompt content and counts calls.
type stubClient struct {
	mu        sync.Mutex
	calls     int
	adherence string
	criterion string
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if strings.Contains(prompt, "adherence") {
		return s.adherence, nil
	}
	return s.criterion, nil
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func adequateVerdict() string {
	return "```json\n{\"adherence\": \"Adequate\", \"justification\": \"The essay develops the proposed topic.\"}\n```"
}

func criterionReply(score int) string {
	return fmt.Sprintf("```json\n{\"score\": %d, \"analysis\": \"The text is solid. More detail follows.\", \"strengths\": \"Clear thesis\", \"weaknesses\": \"Few connectives\", \"suggestions\": \"Vary connectives\"}\n```", score)
}

func TestEvaluateAdequatePath(t *testing.T) {
	t.Parallel()
	index := &stubIndex{}
	client := &stubClient{adherence: adequateVerdict(), criterion: criterionReply(160)}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	result, err := e.Evaluate(context.Background(), testEssay, "Desigualdade social no Brasil")
	if err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}

	if got, want := client.callCount(), 6; got != want {
		t.Errorf("generation calls = %d, want %d (theme gate plus five criteria)", got, want)
	}
	if got, want := result.FinalScore, 5*160; got != want {
		t.Errorf("FinalScore = %d, want %d", got, want)
	}
	if got, want := len(result.Criteria), rubric.NumCriteria; got != want {
		t.Fatalf("len(Criteria) = %d, want %d", got, want)
	}
	for id, c := range result.Criteria {
		if c.Score != 160 {
			t.Errorf("criterion %d score = %d, want 160", id, c.Score)
		}
		if c.Analysis == "" {
			t.Errorf("criterion %d has empty analysis", id)
		}
	}
	if result.Overall.Conclusion == "" {
		t.Error("overall assessment is missing its conclusion")
	}
}

func TestEvaluateOffTopicShortCircuits(t *testing.T) {
	t.Parallel()
	index := &stubIndex{}
	client := &stubClient{
		adherence: "```json\n{\"adherence\": \"OffTopic\", \"justification\": \"The essay is about something else entirely.\"}\n```",
	}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	result, err := e.Evaluate(context.Background(), testEssay, "Desigualdade social no Brasil")
	if err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}

	if got, want := client.callCount(), 1; got != want {
		t.Errorf("generation calls = %d, want %d (theme gate only)", got, want)
	}
	if result.FinalScore != 0 {
		t.Errorf("FinalScore = %d, want 0", result.FinalScore)
	}
	for id, c := range result.Criteria {
		if c.Score != 0 {
			t.Errorf("criterion %d score = %d, want 0", id, c.Score)
		}
		if c.Strengths != rubric.NotApplicable {
			t.Errorf("criterion %d strengths = %q, want %q", id, c.Strengths, rubric.NotApplicable)
		}
	}
}

func TestEvaluateMalformedReply(t *testing.T) {
	t.Parallel()
	index := &stubIndex{}
	client := &stubClient{adherence: "I cannot produce JSON today, sorry."}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	_, err = e.Evaluate(context.Background(), testEssay, "Topic")
	var formatErr *parse.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Evaluate() = %v, want *parse.FormatError", err)
	}
	if !strings.Contains(formatErr.Raw, "I cannot produce JSON") {
		t.Errorf("FormatError.Raw = %q, want it to carry the raw reply", formatErr.Raw)
	}
}

func TestEvaluateInvalidAdherenceValue(t *testing.T) {
	t.Parallel()
	index := &stubIndex{}
	client := &stubClient{
		adherence: "```json\n{\"adherence\": \"Maybe\", \"justification\": \"Unclear.\"}\n```",
	}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	_, err = e.Evaluate(context.Background(), testEssay, "Topic")
	var formatErr *parse.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Evaluate() = %v, want *parse.FormatError for an unknown adherence value", err)
	}
}

func TestEvaluateRetrievalFailure(t *testing.T) {
	t.Parallel()
	index := &stubIndex{err: &retrieval.UnavailableError{Err: errors.New("query: connection refused")}}
	client := &stubClient{adherence: adequateVerdict(), criterion: criterionReply(120)}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	_, err = e.Evaluate(context.Background(), testEssay, "Topic")
	var unavailable *retrieval.UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Evaluate() = %v, want *retrieval.UnavailableError", err)
	}
	if client.callCount() != 0 {
		t.Errorf("generation calls = %d, want 0 when retrieval is down", client.callCount())
	}
}

func TestEvaluateThemeGateRunsFirst(t *testing.T) {
	t.Parallel()
	index := &stubIndex{}
	client := &stubClient{adherence: adequateVerdict(), criterion: criterionReply(200)}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if _, err := e.Evaluate(context.Background(), testEssay, "Topic"); err != nil {
		t.Fatalf("Evaluate() = %v", err)
	}

	index.mu.Lock()
	defer index.mu.Unlock()
	if len(index.searches) != 6 {
		t.Fatalf("searches = %d, want 6", len(index.searches))
	}
	first := index.searches[0]
	if first.k != 3 {
		t.Errorf("theme gate k = %d, want 3", first.k)
	}
	if len(first.categories) != 1 || first.categories[0] != retrieval.CategoryTheme {
		t.Errorf("theme gate categories = %v, want [%s]", first.categories, retrieval.CategoryTheme)
	}
	for _, call := range index.searches[1:] {
		if call.k != 2 {
			t.Errorf("criterion search k = %d, want 2", call.k)
		}
	}
}

func TestSuggestStructure(t *testing.T) {
	t.Parallel()
	index := &stubIndex{}
	client := &stubClient{criterion: "A detailed outline: introduction, two body paragraphs, conclusion."}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	got, err := e.SuggestStructure(context.Background(), "Desigualdade social no Brasil")
	if err != nil {
		t.Fatalf("SuggestStructure() = %v", err)
	}
	if !strings.Contains(got, "outline") {
		t.Errorf("SuggestStructure() = %q, want the raw model reply", got)
	}

	index.mu.Lock()
	defer index.mu.Unlock()
	if len(index.searches) != 2 {
		t.Fatalf("searches = %d, want 2 (structure and examples)", len(index.searches))
	}
	if index.searches[0].categories[0] != retrieval.CategoryStructure {
		t.Errorf("first search category = %v, want %s", index.searches[0].categories, retrieval.CategoryStructure)
	}
	if index.searches[1].categories[0] != retrieval.CategoryExamples {
		t.Errorf("second search category = %v, want %s", index.searches[1].categories, retrieval.CategoryExamples)
	}
}

func TestAnalyzeRepertoire(t *testing.T) {
	t.Parallel()
	index := &stubIndex{}
	client := &stubClient{criterion: "The essay cites IBGE data, which grounds its argument."}

	e, err := rubric.New(index, client)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	got, err := e.AnalyzeRepertoire(context.Background(), testEssay)
	if err != nil {
		t.Fatalf("AnalyzeRepertoire() = %v", err)
	}
	if !strings.Contains(got, "IBGE") {
		t.Errorf("AnalyzeRepertoire() = %q, want the raw model reply", got)
	}

	index.mu.Lock()
	defer index.mu.Unlock()
	if len(index.searches) != 1 {
		t.Fatalf("searches = %d, want 1", len(index.searches))
	}
	call := index.searches[0]
	if call.k != 3 {
		t.Errorf("k = %d, want 3", call.k)
	}
	if len(call.categories) != 2 {
		t.Errorf("categories = %v, want argumentation and examples", call.categories)
	}
}

func TestNewRejectsNilDependencies(t *testing.T) {
	t.Parallel()
	if _, err := rubric.New(nil, &stubClient{}); err == nil {
		t.Error("New(nil index) succeeded, want error")
	}
	if _, err := rubric.New(&stubIndex{}, nil); err == nil {
		t.Error("New(nil client) succeeded, want error")
	}
}
