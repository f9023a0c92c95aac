/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retrieval wraps a similarity-search index of rubric reference
// material. Fragments are ingested elsewhere, tagged with one category
// from the fixed vocabulary; the evaluator only reads.
package retrieval

import (
	"context"
	"fmt"
)

// Category tags a reference fragment with the rubric concern it supports.
type Category = string

// The fixed category vocabulary assigned at ingestion time.
const (
	CategoryNorm          Category = "norm"
	CategoryTheme         Category = "theme"
	CategoryArgumentation Category = "argumentation"
	CategoryCohesion      Category = "cohesion"
	CategoryIntervention  Category = "intervention"
	CategoryStructure     Category = "structure"
	CategoryExamples      Category = "examples"
	CategoryGeneral       Category = "general"
)

// Fragment is a retrieved passage of reference text. Fragments are
// ephemeral: produced by an Index, embedded into one prompt, discarded.
type Fragment struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Index is the similarity-search contract the evaluator depends on.
//
// Search returns at most k fragments ordered by descending similarity to
// query. A non-empty categories set restricts results to fragments tagged
// with any of the given categories. Tie ordering among equal similarities
// follows the underlying store and is not guaranteed stable across
// implementations.
type Index interface {
	Search(ctx context.Context, query string, categories []Category, k int) ([]Fragment, error)
}

// UnavailableError reports that the underlying index could not be reached
// or was never initialized. It is fatal to the evaluation step that
// triggered the search: retrieval failures indicate a setup problem, so
// they are never retried.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("retrieval index unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// unavailable wraps err as an *UnavailableError with operation context.
func unavailable(op string, err error) error {
	return &UnavailableError{Err: fmt.Errorf("%s: %w", op, err)}
}
