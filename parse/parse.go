/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package parse extracts structured records from raw generation-service
// replies. Models are instructed to answer with a single fenced ```json
// block; in practice replies arrive with prose around the fence, with a
// bare JSON object, or with neither. The first two parse, the third is a
// FormatError carrying the raw reply for operator diagnosis.
package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FormatError reports a generation reply whose content could not be
// decoded into the expected structure. Raw preserves the full reply text
// so an operator can see what the model actually said.
type FormatError struct {
	Raw string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unparseable generation response: %v\nresponse: %s", e.Err, e.Raw)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ExtractFenced returns the interior of the first ```json fence in raw,
// or, when no fence is present, raw with surrounding whitespace and stray
// fence markers stripped. Fence markers are recognized on their own line.
func ExtractFenced(raw string) string {
	var buf bytes.Buffer
	inFence := false
	found := false

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inFence && trimmed == "```json" {
			inFence = true
			found = true
			continue
		}
		if inFence && trimmed == "```" {
			break
		}
		if inFence {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(line)
		}
	}

	if found {
		return strings.TrimSpace(buf.String())
	}

	// No fence on its own line. Strip inline markers that some models
	// wrap around an otherwise bare object.
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

// Structured decodes the structured record inside raw into T: first the
// interior of a ```json fence, then the whole reply as direct JSON. When
// neither decodes, it returns a *FormatError wrapping the JSON error and
// carrying raw.
func Structured[T any](raw string) (T, error) {
	var result T

	candidate := ExtractFenced(raw)
	err := json.Unmarshal([]byte(candidate), &result)
	if err == nil {
		return result, nil
	}

	if candidate != strings.TrimSpace(raw) {
		var direct T
		if directErr := json.Unmarshal([]byte(strings.TrimSpace(raw)), &direct); directErr == nil {
			return direct, nil
		}
	}

	var zero T
	return zero, &FormatError{Raw: raw, Err: err}
}

// Invalid wraps a semantic validation failure (a reply that decoded but
// violates the expected structure, such as an unknown enum value) as a
// *FormatError carrying the raw reply.
func Invalid(raw string, err error) error {
	return &FormatError{Raw: raw, Err: err}
}
