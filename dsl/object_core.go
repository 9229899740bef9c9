package dsl

import (
	"context"
	"sort"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/i18n"
	js "github.com/unkai/zodiac/jsonschema"
)

type objectSchema struct {
	fields  map[string]AnyAdapter
	order   []string
	unknown zodiac.UnknownPolicy
	desc    string
}

func requiredIssue(name string) zodiac.Issue {
	return zodiac.Issue{
		Path:    "/" + name,
		Code:    zodiac.CodeRequired,
		Message: i18n.T(zodiac.CodeRequired, map[string]string{"name": name}),
	}
}

func unknownKeyIssue(name string) zodiac.Issue {
	return zodiac.Issue{
		Path:    "/" + name,
		Code:    zodiac.CodeUnknownKey,
		Message: i18n.T(zodiac.CodeUnknownKey, map[string]string{"name": name}),
	}
}

// unknownKeys returns input keys with no declared field, sorted for
// deterministic issue ordering.
func (s *objectSchema) unknownKeys(m map[string]any) []string {
	var extra []string
	for k := range m {
		if _, ok := s.fields[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return extra
}

func (s *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidType("object", v)
	}
	failFast := zodiac.IsFailFast(ctx)
	out := make(map[string]any, len(s.order))
	var iss zodiac.Issues
	for _, name := range s.order {
		ad := s.fields[name]
		raw, present := m[name]
		if !present {
			if ad.IsOptional() {
				continue
			}
			iss = zodiac.AppendIssues(iss, requiredIssue(name))
			if failFast {
				return nil, iss
			}
			continue
		}
		val, err := ad.Parse(ctx, raw)
		if err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+name, err)...)
			if failFast {
				return nil, iss
			}
			continue
		}
		out[name] = val
	}
	extra := s.unknownKeys(m)
	switch s.unknown {
	case zodiac.UnknownStrict:
		for _, k := range extra {
			iss = zodiac.AppendIssues(iss, unknownKeyIssue(k))
			if failFast {
				return nil, iss
			}
		}
	case zodiac.UnknownPassthrough:
		for _, k := range extra {
			out[k] = m[k]
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (s *objectSchema) TypeCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return invalidType("object", v)
	}
	var iss zodiac.Issues
	for _, name := range s.order {
		ad := s.fields[name]
		raw, present := m[name]
		if !present {
			if !ad.IsOptional() {
				iss = zodiac.AppendIssues(iss, requiredIssue(name))
			}
			continue
		}
		if err := ad.TypeCheck(ctx, raw); err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+name, err)...)
		}
	}
	if s.unknown == zodiac.UnknownStrict {
		for _, k := range s.unknownKeys(m) {
			iss = zodiac.AppendIssues(iss, unknownKeyIssue(k))
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *objectSchema) RuleCheck(ctx context.Context, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var iss zodiac.Issues
	for _, name := range s.order {
		raw, present := m[name]
		if !present {
			continue
		}
		if err := s.fields[name].RuleCheck(ctx, raw); err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+name, err)...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *objectSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(s.order))
	var required []string
	for _, name := range s.order {
		ad := s.fields[name]
		ps, err := ad.JSONSchema()
		if err != nil {
			return nil, err
		}
		props[name] = ps
		if !ad.IsOptional() {
			required = append(required, name)
		}
	}
	out := &js.Schema{
		Type:        "object",
		Description: s.desc,
		Properties:  props,
		Required:    required,
	}
	switch s.unknown {
	case zodiac.UnknownStrict:
		out.AdditionalProperties = false
	case zodiac.UnknownPassthrough:
		out.AdditionalProperties = true
	}
	return out, nil
}
