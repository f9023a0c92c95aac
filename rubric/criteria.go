/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/corretor-ai/corretor/retrieval"
	"github.com/corretor-ai/corretor/textstats"
)

// criterionSpec parameterizes one rubric dimension: adding a sixth
// criterion is a new table row, not a new method.
type criterionSpec struct {
	ID CriterionID
	// Query is the fixed retrieval query for this criterion's reference
	// material, in the corpus language.
	Query string
	// Categories filter the retrieval to the criterion's concern.
	Categories []retrieval.Category
	// K bounds how many fragments are retrieved.
	K int
	// NeedsTopic marks criteria whose prompt embeds the essay topic.
	NeedsTopic bool
	// Focus renders extra prompt sections focusing the analysis on a
	// slice of the essay; empty string adds nothing.
	Focus func(essay string) string
}

// criteria is the fixed rubric, in order.
var criteria = []criterionSpec{
	{
		ID:         CriterionNorm,
		Query:      "norma culta gramática redação enem",
		Categories: []retrieval.Category{retrieval.CategoryNorm},
		K:          2,
		Focus:      statsFocus,
	},
	{
		ID:         CriterionThemeComprehension,
		Query:      "compreensão tema redação enem",
		Categories: []retrieval.Category{retrieval.CategoryTheme},
		K:          2,
		NeedsTopic: true,
	},
	{
		ID:         CriterionArgumentation,
		Query:      "argumentação redação enem",
		Categories: []retrieval.Category{retrieval.CategoryArgumentation},
		K:          2,
		NeedsTopic: true,
		Focus:      bodyFocus,
	},
	{
		ID:         CriterionCohesion,
		Query:      "coesão textual redação enem",
		Categories: []retrieval.Category{retrieval.CategoryCohesion},
		K:          2,
	},
	{
		ID:         CriterionIntervention,
		Query:      "proposta intervenção redação enem",
		Categories: []retrieval.Category{retrieval.CategoryIntervention},
		K:          2,
		Focus:      interventionFocus,
	},
}

// statsFocus embeds the essay's lexical statistics (criterion 1 judges
// the formal norm partly through them).
func statsFocus(essay string) string {
	stats, err := yaml.Marshal(struct {
		Words      int `yaml:"words"`
		Sentences  int `yaml:"sentences"`
		Paragraphs int `yaml:"paragraphs"`
	}{
		Words:      textstats.CountWords(essay),
		Sentences:  textstats.CountSentences(essay),
		Paragraphs: textstats.CountParagraphs(essay),
	})
	if err != nil {
		return ""
	}
	return fmt.Sprintf("# Text statistics:\n%s\n", stats)
}

// bodyFocus focuses the argumentation analysis on the body paragraphs.
func bodyFocus(essay string) string {
	body := textstats.ExtractBody(essay)
	if body == "" {
		return ""
	}
	return fmt.Sprintf("# Essay body (focus of the analysis):\n%s\n\n", body)
}

// interventionFocus focuses criterion 5 on the conclusion and on the
// intervention proposal located inside it.
func interventionFocus(essay string) string {
	conclusion := textstats.ExtractConclusion(essay)
	if conclusion == "" {
		return ""
	}
	proposal := textstats.ExtractInterventionProposal(conclusion)
	return fmt.Sprintf("# Essay conclusion (focus of the analysis):\n%s\n\n# Intervention proposal identified:\n%s\n\n", conclusion, proposal)
}
