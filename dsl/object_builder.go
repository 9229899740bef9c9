package dsl

import (
	"fmt"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/i18n"
)

// Object starts an object schema builder. Fields validate in insertion order
// and a field is required unless its adapter was wrapped with Optional.
//
// Unknown keys are stripped by default; Strict() rejects them and
// Passthrough() preserves them.
func Object() *ObjectBuilder {
	return &ObjectBuilder{
		fields:  map[string]AnyAdapter{},
		unknown: zodiac.UnknownStrip,
	}
}

// ObjectBuilder accumulates fields before Build freezes them into a schema.
type ObjectBuilder struct {
	fields  map[string]AnyAdapter
	order   []string
	dups    []string
	unknown zodiac.UnknownPolicy
	desc    string
}

// Field declares a field. Declaring the same name twice is a construction
// error reported by Build.
func (b *ObjectBuilder) Field(name string, ad AnyAdapter) *ObjectBuilder {
	if _, exists := b.fields[name]; exists {
		b.dups = append(b.dups, name)
		return b
	}
	b.fields[name] = ad
	b.order = append(b.order, name)
	return b
}

// Strict rejects unknown keys with one issue per key.
func (b *ObjectBuilder) Strict() *ObjectBuilder {
	b.unknown = zodiac.UnknownStrict
	return b
}

// Strip silently drops unknown keys from the output (the default).
func (b *ObjectBuilder) Strip() *ObjectBuilder {
	b.unknown = zodiac.UnknownStrip
	return b
}

// Passthrough copies unknown keys into the output unvalidated.
func (b *ObjectBuilder) Passthrough() *ObjectBuilder {
	b.unknown = zodiac.UnknownPassthrough
	return b
}

// Describe attaches a description exported via JSON Schema.
func (b *ObjectBuilder) Describe(text string) *ObjectBuilder {
	b.desc = text
	return b
}

// Build freezes the builder into an object schema. Duplicate field
// declarations surface here as Issues so misconfiguration fails loudly
// rather than silently overwriting.
func (b *ObjectBuilder) Build() (zodiac.Schema[map[string]any], error) {
	if len(b.dups) > 0 {
		iss := zodiac.Issues{}
		for _, name := range b.dups {
			iss = zodiac.AppendIssues(iss, zodiac.Issue{
				Path:    "/" + name,
				Code:    zodiac.CodeDuplicateField,
				Message: i18n.T(zodiac.CodeDuplicateField, map[string]string{"name": name}),
			})
		}
		return nil, iss
	}
	fields := make(map[string]AnyAdapter, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	order := make([]string, len(b.order))
	copy(order, b.order)
	return &objectSchema{
		fields:  fields,
		order:   order,
		unknown: b.unknown,
		desc:    b.desc,
	}, nil
}

// MustBuild panics on construction errors. Intended for schema literals in
// package-level vars where a broken declaration should stop the program.
func (b *ObjectBuilder) MustBuild() zodiac.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dsl: object build failed: %v", err))
	}
	return s
}
