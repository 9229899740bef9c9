package dsl

import (
	"context"
	"sort"

	zodiac "github.com/unkai/zodiac"
	js "github.com/unkai/zodiac/jsonschema"
)

// Record returns a schema for open maps with arbitrary string keys and a
// uniform value schema. Keys iterate in sorted order so issue ordering is
// deterministic.
func Record(value AnyAdapter) RecordBuilder { return &recordSchema{value: value} }

// RecordBuilder implements Schema[map[string]any] for uniform-value maps.
type RecordBuilder interface {
	zodiac.Schema[map[string]any]
	Describe(text string) RecordBuilder
}

type recordSchema struct {
	value AnyAdapter
	desc  string
}

func (s *recordSchema) Describe(text string) RecordBuilder { s.desc = text; return s }

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *recordSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType("object", v)
	}
	failFast := zodiac.IsFailFast(ctx)
	out := make(map[string]any, len(m))
	var iss zodiac.Issues
	for _, k := range sortedKeys(m) {
		val, err := s.value.Parse(ctx, m[k])
		if err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+k, err)...)
			if failFast {
				return nil, iss
			}
			continue
		}
		out[k] = val
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (s *recordSchema) TypeCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return invalidType("object", v)
	}
	var iss zodiac.Issues
	for _, k := range sortedKeys(m) {
		if err := s.value.TypeCheck(ctx, m[k]); err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+k, err)...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *recordSchema) RuleCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var iss zodiac.Issues
	for _, k := range sortedKeys(m) {
		if err := s.value.RuleCheck(ctx, m[k]); err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+k, err)...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *recordSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *recordSchema) JSONSchema() (*js.Schema, error) {
	val, err := s.value.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{
		Type:                 "object",
		Description:          s.desc,
		AdditionalProperties: val,
	}, nil
}
