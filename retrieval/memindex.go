/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retrieval

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode"
)

// MemoryIndex is a deterministic in-memory Index for tests and local
// runs. Similarity is lexical: the number of distinct query terms a
// fragment contains. Ties keep insertion order.
type MemoryIndex struct {
	fragments []Fragment
}

// NewMemoryIndex creates a MemoryIndex seeded with fragments.
func NewMemoryIndex(fragments ...Fragment) *MemoryIndex {
	return &MemoryIndex{fragments: append([]Fragment(nil), fragments...)}
}

// Add appends fragments to the index.
func (m *MemoryIndex) Add(fragments ...Fragment) {
	m.fragments = append(m.fragments, fragments...)
}

// Search implements Index.
func (m *MemoryIndex) Search(_ context.Context, query string, categories []Category, k int) ([]Fragment, error) {
	if m == nil {
		return nil, unavailable("searching memory index", errors.New("index not initialized"))
	}

	allowed := make(map[Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	terms := tokenize(query)
	type scored struct {
		fragment Fragment
		score    int
		order    int
	}
	var matches []scored
	for i, fragment := range m.fragments {
		if len(allowed) > 0 && !allowed[fragment.Category] {
			continue
		}
		text := strings.ToLower(fragment.Text)
		score := 0
		for term := range terms {
			if strings.Contains(text, term) {
				score++
			}
		}
		matches = append(matches, scored{fragment: fragment, score: score, order: i})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].order < matches[j].order
	})

	if k > len(matches) {
		k = len(matches)
	}
	if k < 0 {
		k = 0
	}
	out := make([]Fragment, 0, k)
	for _, m := range matches[:k] {
		out = append(out, m.fragment)
	}
	return out, nil
}

// tokenize lowercases query and returns its distinct word terms.
func tokenize(query string) map[string]bool {
	terms := make(map[string]bool)
	for _, term := range strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		terms[term] = true
	}
	return terms
}
