package dsl

import (
	"context"
	"strconv"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/i18n"
	js "github.com/unkai/zodiac/jsonschema"
)

// Array returns a schema for homogeneous arrays of the given element. All
// elements validate; failures carry the element index in their path.
func Array(elem AnyAdapter) ArrayBuilder { return &arraySchema{elem: elem} }

// ArrayBuilder implements Schema[[]any] with length bounds and metadata.
type ArrayBuilder interface {
	zodiac.Schema[[]any]
	Min(n int) ArrayBuilder
	Max(n int) ArrayBuilder
	Describe(text string) ArrayBuilder
}

type arraySchema struct {
	elem     AnyAdapter
	minItems *int
	maxItems *int
	desc     string
}

func (s *arraySchema) Min(n int) ArrayBuilder { s.minItems = &n; return s }

func (s *arraySchema) Max(n int) ArrayBuilder { s.maxItems = &n; return s }

func (s *arraySchema) Describe(text string) ArrayBuilder { s.desc = text; return s }

func (s *arraySchema) boundsCheck(n int) zodiac.Issues {
	var iss zodiac.Issues
	if s.minItems != nil && n < *s.minItems {
		m := strconv.Itoa(*s.minItems)
		iss = zodiac.AppendIssues(iss, zodiac.Issue{
			Path:    "/",
			Code:    zodiac.CodeTooSmall,
			Message: i18n.T("too_few_items", map[string]string{"min": m}),
			Params:  map[string]any{"min": *s.minItems, "got": n},
		})
	}
	if s.maxItems != nil && n > *s.maxItems {
		m := strconv.Itoa(*s.maxItems)
		iss = zodiac.AppendIssues(iss, zodiac.Issue{
			Path:    "/",
			Code:    zodiac.CodeTooBig,
			Message: i18n.T("too_many_items", map[string]string{"max": m}),
			Params:  map[string]any{"max": *s.maxItems, "got": n},
		})
	}
	return iss
}

func (s *arraySchema) Parse(ctx context.Context, v any) ([]any, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, invalidType("array", v)
	}
	failFast := zodiac.IsFailFast(ctx)
	iss := s.boundsCheck(len(arr))
	if len(iss) > 0 && failFast {
		return nil, iss
	}
	out := make([]any, 0, len(arr))
	for i, raw := range arr {
		val, err := s.elem.Parse(ctx, raw)
		if err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+strconv.Itoa(i), err)...)
			if failFast {
				return nil, iss
			}
			continue
		}
		out = append(out, val)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (s *arraySchema) TypeCheck(ctx context.Context, v any) error {
	arr, ok := v.([]any)
	if !ok {
		return invalidType("array", v)
	}
	var iss zodiac.Issues
	for i, raw := range arr {
		if err := s.elem.TypeCheck(ctx, raw); err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+strconv.Itoa(i), err)...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *arraySchema) RuleCheck(ctx context.Context, v any) error {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	iss := s.boundsCheck(len(arr))
	for i, raw := range arr {
		if err := s.elem.RuleCheck(ctx, raw); err != nil {
			iss = append(iss, zodiac.PrefixIssues("/"+strconv.Itoa(i), err)...)
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (s *arraySchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *arraySchema) JSONSchema() (*js.Schema, error) {
	item, err := s.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{
		Type:        "array",
		Description: s.desc,
		Items:       item,
		MinItems:    s.minItems,
		MaxItems:    s.maxItems,
	}, nil
}
