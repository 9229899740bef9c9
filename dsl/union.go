package dsl

import (
	"context"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/i18n"
	js "github.com/unkai/zodiac/jsonschema"
)

// Union returns a schema accepting any of the alternatives, tried in
// declaration order with the first success winning. When nothing matches,
// the failure collapses to a single union issue instead of replaying every
// alternative's issues.
func Union(alts ...AnyAdapter) UnionBuilder { return &unionSchema{alts: alts} }

// UnionBuilder implements Schema[any] over ordered alternatives.
type UnionBuilder interface {
	zodiac.Schema[any]
	Describe(text string) UnionBuilder
}

type unionSchema struct {
	alts []AnyAdapter
	desc string
}

func (s *unionSchema) Describe(text string) UnionBuilder { s.desc = text; return s }

func noMatchIssue() zodiac.Issues {
	return zodiac.Issues{{
		Path:    "/",
		Code:    zodiac.CodeUnionNoMatch,
		Message: i18n.T(zodiac.CodeUnionNoMatch, nil),
	}}
}

func (s *unionSchema) Parse(ctx context.Context, v any) (any, error) {
	for _, alt := range s.alts {
		if out, err := alt.Parse(ctx, v); err == nil {
			return out, nil
		}
	}
	return nil, noMatchIssue()
}

func (s *unionSchema) TypeCheck(ctx context.Context, v any) error {
	for _, alt := range s.alts {
		if alt.TypeCheck(ctx, v) == nil {
			return nil
		}
	}
	return noMatchIssue()
}

// RuleCheck mirrors the alternative selection of Parse: a value that fully
// satisfies any alternative passes even when an earlier alternative matches
// the shape but fails its rules. Only when no alternative validates end to
// end does the first shape-matching alternative report its rule failures.
func (s *unionSchema) RuleCheck(ctx context.Context, v any) error {
	for _, alt := range s.alts {
		if alt.Validate(ctx, v) == nil {
			return nil
		}
	}
	for _, alt := range s.alts {
		if alt.TypeCheck(ctx, v) == nil {
			return alt.RuleCheck(ctx, v)
		}
	}
	return nil
}

func (s *unionSchema) Validate(ctx context.Context, v any) error {
	for _, alt := range s.alts {
		if alt.Validate(ctx, v) == nil {
			return nil
		}
	}
	return noMatchIssue()
}

func (s *unionSchema) JSONSchema() (*js.Schema, error) {
	anyOf := make([]*js.Schema, 0, len(s.alts))
	for _, alt := range s.alts {
		as, err := alt.JSONSchema()
		if err != nil {
			return nil, err
		}
		anyOf = append(anyOf, as)
	}
	return &js.Schema{Description: s.desc, AnyOf: anyOf}, nil
}
