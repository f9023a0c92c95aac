/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Score bands for the overall conclusion, inclusive on the lower bound.
const (
	bandExcellent    = 800
	bandGood         = 600
	bandAverage      = 400
	maxScore         = NumCriteria * 200
	offTopicAnalysis = "The essay does not address the proposed topic, so this criterion was not evaluated."
)

// offTopicResult is the fixed result returned when the theme gate
// classifies the essay as off-topic. All criteria score zero and carry
// the not-applicable sentinel instead of generated feedback.
func offTopicResult() *EvaluationResult {
	byID := make(map[CriterionID]CriterionResult, NumCriteria)
	for id := CriterionNorm; id <= CriterionIntervention; id++ {
		byID[id] = CriterionResult{
			Score:       0,
			Analysis:    offTopicAnalysis,
			Strengths:   NotApplicable,
			Weaknesses:  NotApplicable,
			Suggestions: NotApplicable,
		}
	}
	return &EvaluationResult{
		FinalScore: 0,
		Criteria:   byID,
		Overall: OverallAssessment{
			Assessment:          "The essay was classified as off-topic and received no credit on any criterion.",
			StrongestCriterion:  NotApplicable,
			WeakestCriterion:    NotApplicable,
			PrioritySuggestions: "Rewrite the essay so that its thesis and arguments address the proposed topic directly.",
			Conclusion:          "An off-topic essay scores zero regardless of its formal qualities. Re-read the topic statement and rebuild the text around it.",
		},
	}
}

// strongestWeakest returns the highest and lowest scoring criteria.
// Ties resolve to the lowest criterion ID, so repeated evaluations of
// the same scores report the same pair.
func strongestWeakest(results []CriterionResult) (strongest, weakest CriterionID) {
	strongest, weakest = CriterionNorm, CriterionNorm
	for i := 1; i < len(results); i++ {
		id := CriterionID(i + 1)
		if results[i].Score > results[strongest-1].Score {
			strongest = id
		}
		if results[i].Score < results[weakest-1].Score {
			weakest = id
		}
	}
	return strongest, weakest
}

// ScoreBand names the qualitative band a final score falls in.
func ScoreBand(finalScore int) string {
	switch {
	case finalScore >= bandExcellent:
		return "excellent"
	case finalScore >= bandGood:
		return "good"
	case finalScore >= bandAverage:
		return "average"
	default:
		return "insufficient"
	}
}

// bandConclusions maps each band to the closing guidance of the
// overall assessment.
var bandConclusions = map[string]string{
	"excellent":    "The essay demonstrates strong command of the written norm, solid argumentation and a well constructed intervention proposal. Polish the points above to reach the maximum score.",
	"good":         "The essay is competent overall but leaves points on the table in the criteria flagged above. Targeted revision of the weakest criterion should yield the largest gain.",
	"average":      "The essay meets the basic expectations but needs substantial work on several criteria. Focus first on the priority suggestions before refining style.",
	"insufficient": "The essay falls short of the basic expectations of the rubric. Revisit the fundamentals of essay structure and argumentation before attempting stylistic improvements.",
}

// synthesizeOverall derives the overall assessment deterministically
// from the per-criterion results. No additional generation call is made.
func synthesizeOverall(byID map[CriterionID]CriterionResult, finalScore int, strongest, weakest CriterionID) OverallAssessment {
	band := ScoreBand(finalScore)

	s := byID[strongest]
	w := byID[weakest]
	return OverallAssessment{
		Assessment: fmt.Sprintf("The essay scored %d of %d points, a %s result. Regarding the written norm, %s Regarding theme comprehension, %s Regarding argumentation, %s",
			finalScore, maxScore, band,
			firstSentence(byID[CriterionNorm].Analysis),
			firstSentence(byID[CriterionThemeComprehension].Analysis),
			firstSentence(byID[CriterionArgumentation].Analysis)),
		StrongestCriterion: fmt.Sprintf("%s (%d/200): %s",
			strongest.Name(), s.Score, s.Strengths),
		WeakestCriterion: fmt.Sprintf("%s (%d/200): %s",
			weakest.Name(), w.Score, w.Weaknesses),
		PrioritySuggestions: w.Suggestions,
		Conclusion:          bandConclusions[band],
	}
}

// firstSentence returns the first sentence of text, lowercased at the
// start so it reads naturally inside a larger sentence.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "no analysis was provided."
	}
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			text = text[:i+1]
			break
		}
	}
	if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
		text += "."
	}
	first, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToLower(first)) + text[size:]
}
