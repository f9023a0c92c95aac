/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package retrieval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corretor-ai/corretor/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededIndex() *retrieval.MemoryIndex {
	return retrieval.NewMemoryIndex(
		retrieval.Fragment{Text: "A norma culta exige concordância verbal e nominal.", Category: retrieval.CategoryNorm},
		retrieval.Fragment{Text: "A compreensão do tema é avaliada pela competência 2.", Category: retrieval.CategoryTheme},
		retrieval.Fragment{Text: "Argumentação consistente usa repertório sociocultural.", Category: retrieval.CategoryArgumentation},
		retrieval.Fragment{Text: "Conectivos garantem a coesão entre parágrafos.", Category: retrieval.CategoryCohesion},
		retrieval.Fragment{Text: "A proposta de intervenção deve ter agente e meio.", Category: retrieval.CategoryIntervention},
		retrieval.Fragment{Text: "Exemplos de redação nota mil usam norma culta.", Category: retrieval.CategoryExamples},
	)
}

func TestMemoryIndexCategoryFilter(t *testing.T) {
	t.Parallel()
	index := seededIndex()

	fragments, err := index.Search(context.Background(), "norma culta", []retrieval.Category{retrieval.CategoryNorm}, 5)
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, retrieval.CategoryNorm, fragments[0].Category)
}

func TestMemoryIndexMultiCategoryOr(t *testing.T) {
	t.Parallel()
	index := seededIndex()

	fragments, err := index.Search(context.Background(), "repertório exemplos redação",
		[]retrieval.Category{retrieval.CategoryArgumentation, retrieval.CategoryExamples}, 5)
	require.NoError(t, err)
	require.Len(t, fragments, 2)
	for _, f := range fragments {
		assert.Contains(t,
			[]retrieval.Category{retrieval.CategoryArgumentation, retrieval.CategoryExamples},
			f.Category)
	}
}

func TestMemoryIndexRespectsK(t *testing.T) {
	t.Parallel()
	index := seededIndex()

	fragments, err := index.Search(context.Background(), "redação", nil, 2)
	require.NoError(t, err)
	assert.Len(t, fragments, 2)
}

func TestMemoryIndexRanksByTermOverlap(t *testing.T) {
	t.Parallel()
	index := retrieval.NewMemoryIndex(
		retrieval.Fragment{Text: "nada relevante aqui", Category: retrieval.CategoryGeneral},
		retrieval.Fragment{Text: "proposta de intervenção com agente", Category: retrieval.CategoryGeneral},
	)

	fragments, err := index.Search(context.Background(), "proposta intervenção", nil, 1)
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Contains(t, fragments[0].Text, "proposta")
}

func TestNilMemoryIndexIsUnavailable(t *testing.T) {
	t.Parallel()
	var index *retrieval.MemoryIndex

	_, err := index.Search(context.Background(), "qualquer", nil, 3)
	require.Error(t, err)
	var unavailable *retrieval.UnavailableError
	assert.True(t, errors.As(err, &unavailable), "expected *retrieval.UnavailableError, got %T", err)
}
