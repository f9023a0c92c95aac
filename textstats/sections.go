/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package textstats

import "strings"

// interventionMarkers are the discourse markers that typically open the
// intervention proposal inside a conclusion paragraph.
var interventionMarkers = []string{
	"portanto",
	"logo",
	"assim",
	"dessa forma",
	"diante disso",
	"nesse sentido",
	"por fim",
	"em síntese",
	"em suma",
	"concluindo",
	"enfim",
}

// ExtractIntroduction returns the first non-blank paragraph of text, or
// "" when the text has no paragraphs.
func ExtractIntroduction(text string) string {
	paragraphs := Paragraphs(text)
	if len(paragraphs) == 0 {
		return ""
	}
	return paragraphs[0]
}

// ExtractConclusion returns the last non-blank paragraph of text when at
// least two paragraphs exist, else "".
func ExtractConclusion(text string) string {
	paragraphs := Paragraphs(text)
	if len(paragraphs) < 2 {
		return ""
	}
	return paragraphs[len(paragraphs)-1]
}

// ExtractBody returns the paragraphs strictly between the introduction
// and the conclusion, joined by newlines. Texts with two paragraphs or
// fewer have no body.
func ExtractBody(text string) string {
	paragraphs := Paragraphs(text)
	if len(paragraphs) <= 2 {
		return ""
	}
	return strings.Join(paragraphs[1:len(paragraphs)-1], "\n")
}

// ExtractInterventionProposal scans conclusion for the earliest
// case-insensitive occurrence of any intervention discourse marker and
// returns the substring from that marker to the end. When no marker is
// present the whole conclusion is returned unchanged.
func ExtractInterventionProposal(conclusion string) string {
	lower := strings.ToLower(conclusion)
	best := -1
	for _, marker := range interventionMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return conclusion
	}
	return conclusion[best:]
}
