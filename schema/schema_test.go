/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/corretor-ai/corretor/schema"
)

type contract struct {
	Score    int    `json:"score" jsonschema:"required,description=Criterion score from 0 to 200"`
	Analysis string `json:"analysis" jsonschema:"required"`
	Notes    string `json:"notes,omitempty"`
}

func TestJSONIsValidSchema(t *testing.T) {
	t.Parallel()
	out, err := schema.JSON[contract]()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("schema output is not valid JSON: %v", err)
	}
	if _, ok := decoded["properties"]; !ok {
		t.Errorf("schema missing properties:\n%s", out)
	}
	for _, field := range []string{"score", "analysis"} {
		if !strings.Contains(out, field) {
			t.Errorf("schema missing field %q:\n%s", field, out)
		}
	}
}

func TestMustJSONDoesNotPanicOnStructs(t *testing.T) {
	t.Parallel()
	if out := schema.MustJSON[contract](); out == "" {
		t.Fatal("expected non-empty schema")
	}
}
