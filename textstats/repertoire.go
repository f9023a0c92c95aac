/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package textstats

import (
	"regexp"
	"strings"
)

// repertoirePatterns match textual signals of sociocultural repertoire:
// attributed statements, statistics, quotations, and references to laws,
// the constitution or well-known institutions.
var repertoirePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)segundo\s+[^,.]+`),
	regexp.MustCompile(`(?i)de acordo com\s+[^,.]+`),
	regexp.MustCompile(`(?i)conforme\s+[^,.]+`),
	regexp.MustCompile(`[0-9]+%`),
	regexp.MustCompile(`(?i)[0-9]+\s*(?:de cada|em cada)\s*[0-9]+`),
	regexp.MustCompile(`"[^"]+"`),
	regexp.MustCompile(`'[^']+'`),
	regexp.MustCompile(`(?i)lei(?:\s+n[°º]?\s*[0-9.]+)`),
	regexp.MustCompile(`(?i)constituição|carta magna`),
	regexp.MustCompile(`(?i)\b(?:onu|unesco|unicef|oms|ibge)\b`),
}

// SocioculturalReferences scans text for likely sociocultural repertoire
// and returns the enclosing sentence of each match, deduplicated, in the
// order the patterns hit. The scan is heuristic: it surfaces candidates
// for the repertoire-analysis prompt, it does not judge them.
func SocioculturalReferences(text string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, pattern := range repertoirePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			sentence := enclosingSentence(text, loc[0], loc[1])
			if sentence != "" && !seen[sentence] {
				seen[sentence] = true
				refs = append(refs, sentence)
			}
		}
	}
	return refs
}

// enclosingSentence returns the trimmed sentence of text containing the
// span [start, end), bounded by the nearest periods.
func enclosingSentence(text string, start, end int) string {
	from := strings.LastIndex(text[:start], ".") + 1
	to := strings.Index(text[end:], ".")
	if to == -1 {
		to = len(text)
	} else {
		to += end
	}
	return strings.TrimSpace(text[from:to])
}
