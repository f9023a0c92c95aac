/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"encoding/json"
	"fmt"
)

// CriterionID identifies one of the five fixed rubric dimensions, each
// worth up to 200 points.
type CriterionID int

const (
	// CriterionNorm is command of the formal written norm.
	CriterionNorm CriterionID = iota + 1
	// CriterionThemeComprehension is understanding of the proposed topic.
	CriterionThemeComprehension
	// CriterionArgumentation is selection and organization of arguments.
	CriterionArgumentation
	// CriterionCohesion is textual cohesion across the essay.
	CriterionCohesion
	// CriterionIntervention is the quality of the intervention proposal.
	CriterionIntervention
)

// NumCriteria is the size of the fixed rubric.
const NumCriteria = 5

// Name returns the human-readable criterion name.
func (id CriterionID) Name() string {
	switch id {
	case CriterionNorm:
		return "Command of the standard norm"
	case CriterionThemeComprehension:
		return "Theme comprehension"
	case CriterionArgumentation:
		return "Argumentation"
	case CriterionCohesion:
		return "Textual cohesion"
	case CriterionIntervention:
		return "Intervention proposal"
	default:
		return fmt.Sprintf("criterion %d", int(id))
	}
}

// NotApplicable is the sentinel filling criterion text fields when the
// theme gate short-circuits the evaluation.
const NotApplicable = "N/A"

// CriterionResult is one rubric dimension's outcome. Score is expected
// in [0, 200]; a model-supplied value outside that range is carried
// as-is into the final score rather than clamped.
type CriterionResult struct {
	Score       int    `json:"score" jsonschema:"required,description=Criterion score from 0 to 200"`
	Analysis    string `json:"analysis" jsonschema:"required,description=Detailed analysis of the criterion"`
	Strengths   string `json:"strengths" jsonschema:"required,description=Positive aspects observed"`
	Weaknesses  string `json:"weaknesses" jsonschema:"required,description=Aspects needing improvement"`
	Suggestions string `json:"suggestions" jsonschema:"required,description=Specific suggestions for improvement"`
}

// Adherence classifies how the essay relates to its proposed topic.
type Adherence string

const (
	// AdherenceAdequate means the essay addresses the topic correctly.
	AdherenceAdequate Adherence = "Adequate"
	// AdherenceTangential means the essay addresses the topic only partially.
	AdherenceTangential Adherence = "Tangential"
	// AdherenceOffTopic means the essay does not address the proposed topic.
	AdherenceOffTopic Adherence = "OffTopic"
)

// Valid reports whether a is one of the three accepted classifications.
func (a Adherence) Valid() bool {
	switch a {
	case AdherenceAdequate, AdherenceTangential, AdherenceOffTopic:
		return true
	}
	return false
}

// ThemeVerdict is the outcome of the theme-adherence gate.
type ThemeVerdict struct {
	Adherence       Adherence `json:"adherence" jsonschema:"required,enum=Adequate,enum=Tangential,enum=OffTopic,description=Theme adherence classification"`
	Justification   string    `json:"justification" jsonschema:"required,description=Detailed explanation of the classification"`
	Recommendations string    `json:"recommendations,omitempty" jsonschema:"description=Suggestions to improve theme adherence"`
}

// OverallAssessment is the synthesized narrative of a full evaluation.
type OverallAssessment struct {
	Assessment          string `json:"assessment"`
	StrongestCriterion  string `json:"strongest_criterion"`
	WeakestCriterion    string `json:"weakest_criterion"`
	PrioritySuggestions string `json:"priority_suggestions"`
	Conclusion          string `json:"conclusion"`
}

// EvaluationResult is the full verdict for one essay. It is created
// once per Evaluate call and never mutated afterwards.
type EvaluationResult struct {
	// FinalScore is the sum of the five criterion scores (0 when the
	// theme gate rejects the essay).
	FinalScore int
	// Criteria holds exactly one result per rubric criterion.
	Criteria map[CriterionID]CriterionResult
	// Overall is the synthesized narrative.
	Overall OverallAssessment
}

// criterionEntry is the serialized form of one criterion result.
type criterionEntry struct {
	ID   CriterionID `json:"id"`
	Name string      `json:"name"`
	CriterionResult
}

// MarshalJSON serializes the result with criteria as an array in rubric
// order, so consumers never observe map-iteration nondeterminism.
func (r EvaluationResult) MarshalJSON() ([]byte, error) {
	entries := make([]criterionEntry, 0, NumCriteria)
	for id := CriterionID(1); id <= NumCriteria; id++ {
		entries = append(entries, criterionEntry{
			ID:              id,
			Name:            id.Name(),
			CriterionResult: r.Criteria[id],
		})
	}
	return json.Marshal(struct {
		FinalScore int               `json:"final_score"`
		Criteria   []criterionEntry  `json:"criteria"`
		Overall    OverallAssessment `json:"overall"`
	}{
		FinalScore: r.FinalScore,
		Criteria:   entries,
		Overall:    r.Overall,
	})
}
