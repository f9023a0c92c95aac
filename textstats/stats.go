/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package textstats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// abbreviations that end with a period without terminating a sentence.
// Lowercased, period included.
var abbreviations = map[string]bool{
	"sr.":   true,
	"sra.":  true,
	"srta.": true,
	"dr.":   true,
	"dra.":  true,
	"prof.": true,
	"profa.": true,
	"exmo.": true,
	"exma.": true,
	"art.":  true,
	"av.":   true,
	"etc.":  true,
	"ex.":   true,
	"p.":    true,
	"pág.":  true,
	"n.":    true,
	"nº.":   true,
	"km.":   true,
	"vol.":  true,
}

// CountCharacters returns the number of runes in text.
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// CountWords returns the number of word tokens in text. A word is a
// maximal run of letters or digits, allowing internal hyphens and
// apostrophes ("guarda-chuva", "d'água" are single words).
func CountWords(text string) int {
	count := 0
	inWord := false
	var prev rune
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if !inWord {
				count++
				inWord = true
			}
		case (r == '-' || r == '\'' || r == '’') && inWord && (unicode.IsLetter(prev) || unicode.IsDigit(prev)):
			// joiner inside a word; the next letter continues it
		default:
			inWord = false
		}
		prev = r
	}
	return count
}

// CountSentences returns the number of sentences in text. Sentences end
// at '.', '!', '?' or '…'; runs of terminators ("?!", "...") count once,
// and periods that close a known Portuguese abbreviation or sit between
// digits ("1.000", "2.5") do not terminate a sentence. Trailing text
// without a terminator counts as a final sentence when it contains a word.
func CountSentences(text string) int {
	runes := []rune(text)
	count := 0
	hasWord := false

	isTerminator := func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '…'
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasWord = true
			continue
		}
		if !isTerminator(r) {
			continue
		}
		if r == '.' {
			if i+1 < len(runes) && unicode.IsDigit(runes[i+1]) && i > 0 && unicode.IsDigit(runes[i-1]) {
				continue // decimal or thousands separator
			}
			if abbreviations[lastToken(runes[:i+1])] {
				continue
			}
		}
		// Swallow the rest of the terminator run.
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
		}
		if hasWord {
			count++
			hasWord = false
		}
	}
	if hasWord {
		count++
	}
	return count
}

// lastToken returns the final whitespace-delimited token of runes,
// lowercased.
func lastToken(runes []rune) string {
	end := len(runes)
	start := end
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	return strings.ToLower(string(runes[start:end]))
}

// CountParagraphs returns the number of non-blank lines in text.
func CountParagraphs(text string) int {
	return len(Paragraphs(text))
}

// Paragraphs splits text on newlines and returns the non-blank lines in
// order, with surrounding whitespace preserved inside each line as-is.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
