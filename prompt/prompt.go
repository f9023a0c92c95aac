/*
Copyright 2025 Corretor AI, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package prompt assembles LLM prompts from templates with named
// {{placeholder}} bindings. Templates are declared once at package init
// with MustNew; each evaluation binds its values and builds the final
// string. Binding returns a new Prompt, so a package-level template is
// safe to bind concurrently.
package prompt

import (
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z_][a-zA-Z0-9_]*)\}\}`)

type binding interface {
	value() (string, error)
}

type textBinding struct{ val string }

func (b textBinding) value() (string, error) { return b.val, nil }

type jsonBinding struct{ data any }

func (b jsonBinding) value() (string, error) {
	out, err := json.MarshalIndent(b.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON binding: %w", err)
	}
	return string(out), nil
}

type yamlBinding struct{ data any }

func (b yamlBinding) value() (string, error) {
	out, err := yaml.Marshal(b.data)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML binding: %w", err)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// Prompt is a template with named placeholders. The zero value is not
// usable; construct with New or MustNew.
type Prompt struct {
	template string
	bindings map[string]binding
}

// New parses template and records its placeholders as unbound.
func New(template string) (*Prompt, error) {
	bindings := make(map[string]binding)
	for _, match := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		bindings[match[1]] = nil
	}
	// Anything that still looks like a placeholder after stripping the
	// well-formed ones is a typo in the template.
	if rest := placeholderPattern.ReplaceAllString(template, ""); strings.Contains(rest, "{{") {
		return nil, fmt.Errorf("template contains a malformed placeholder near %q", rest[strings.Index(rest, "{{"):min(len(rest), strings.Index(rest, "{{")+20)])
	}
	return &Prompt{template: template, bindings: bindings}, nil
}

// MustNew is New for package-level template declarations; it panics on a
// malformed template.
func MustNew(template string) *Prompt {
	p, err := New(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Names returns the placeholder names of the template, sorted.
func (p *Prompt) Names() []string {
	names := make([]string, 0, len(p.bindings))
	for name := range p.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Prompt) bind(name string, b binding) (*Prompt, error) {
	if _, ok := p.bindings[name]; !ok {
		return nil, fmt.Errorf("unknown placeholder %q", name)
	}
	clone := &Prompt{template: p.template, bindings: maps.Clone(p.bindings)}
	clone.bindings[name] = b
	return clone, nil
}

// Bind binds a text value to a placeholder and returns the new Prompt.
func (p *Prompt) Bind(name, value string) (*Prompt, error) {
	return p.bind(name, textBinding{val: value})
}

// BindJSON binds data to a placeholder as indented JSON.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.bind(name, jsonBinding{data: data})
}

// BindYAML binds data to a placeholder as YAML.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.bind(name, yamlBinding{data: data})
}

// Build renders the template, failing if any placeholder is unbound.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		if b == nil {
			return "", fmt.Errorf("placeholder %q is unbound", name)
		}
		val, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}
	return placeholderPattern.ReplaceAllStringFunc(p.template, func(m string) string {
		name := placeholderPattern.FindStringSubmatch(m)[1]
		return values[name]
	}), nil
}
