/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package rubric evaluates essays against the fixed five-criterion ENEM
// rubric. An Evaluator sequences the theme-adherence gate, five
// independent retrieval-augmented criterion evaluations, score
// aggregation and a deterministic narrative synthesis, returning one
// immutable EvaluationResult per essay.
//
// The Evaluator holds no state between calls beyond its construction
// snapshot (index handle, generation client, budgets); it is safe to use
// concurrently for different essays.
package rubric
