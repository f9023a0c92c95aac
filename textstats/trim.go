/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package textstats

import "strings"

// charsPerToken is the rough character-per-token ratio used for budget
// estimates before prompt assembly.
const charsPerToken = 4

// EstimateTokens returns the approximate token count of text.
func EstimateTokens(text string) int {
	return len(text) / charsPerToken
}

// TrimToTokenBudget returns text unchanged when its estimated token count
// fits maxTokens. Otherwise it preserves the introduction and conclusion
// intact and elides the middle of the text between them with "...",
// keeping the head and tail halves that fit the remaining budget.
func TrimToTokenBudget(text string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text
	}

	intro := ExtractIntroduction(text)
	conclusion := ExtractConclusion(text)
	introEnd := strings.Index(text, intro) + len(intro)
	conclStart := strings.LastIndex(text, conclusion)
	if conclusion == "" {
		conclStart = len(text)
	}
	if conclStart <= introEnd {
		return text
	}
	head, tail := text[:introEnd], text[conclStart:]
	middle := []rune(text[introEnd:conclStart])

	budget := maxTokens - (len(head)+len(tail))/charsPerToken
	keep := budget * charsPerToken
	if keep < 0 {
		keep = 0
	}
	if len(middle) <= keep {
		return text
	}

	half := keep / 2
	return head + string(middle[:half]) + "..." + string(middle[len(middle)-half:]) + tail
}
