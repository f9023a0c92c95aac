/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema reflects JSON schemas from Go result types. The rubric
// prompts embed these schemas so the model is shown the exact contract
// its reply must satisfy.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator wraps jsonschema.Reflector with the defaults used for
// response contracts: required fields come from struct tags and the
// schema is self-contained (no $ref indirection for the model to chase).
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a generator with response-contract defaults.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for the provided value.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect derives the JSON schema for the provided value using a default
// generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// JSON renders the schema of T as indented JSON text.
func JSON[T any]() (string, error) {
	var zero T
	out, err := json.MarshalIndent(Reflect(&zero), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(out), nil
}

// MustJSON is JSON for package-level prompt declarations; it panics when
// T cannot be reflected.
func MustJSON[T any]() string {
	out, err := JSON[T]()
	if err != nil {
		panic(err)
	}
	return out
}
