package dsl

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/i18n"
	js "github.com/unkai/zodiac/jsonschema"
)

// Literal returns a schema matching exactly one value. Numeric candidates
// compare by numeric value, so Literal(1) also accepts float64(1) and
// json.Number("1").
func Literal(want any) LiteralBuilder { return &literalSchema{want: want} }

// Enum returns a schema matching any member of the candidate set. Members
// may mix kinds, e.g. Enum("active", 1).
func Enum(members ...any) EnumBuilder { return &enumSchema{members: members} }

// LiteralBuilder implements Schema[any] for a single constant.
type LiteralBuilder interface {
	zodiac.Schema[any]
	Describe(text string) LiteralBuilder
}

// EnumBuilder implements Schema[any] for a finite candidate set.
type EnumBuilder interface {
	zodiac.Schema[any]
	Describe(text string) EnumBuilder
}

// equalValue compares a runtime value against a candidate. nil, bool and
// string compare strictly; numeric kinds compare by float64 value. Other
// kinds fall back to deep equality: slices and maps are not comparable with
// == and would panic the interface comparison.
func equalValue(v, want any) bool {
	if want == nil || v == nil {
		return want == nil && v == nil
	}
	switch w := want.(type) {
	case bool:
		b, ok := v.(bool)
		return ok && b == w
	case string:
		s, ok := v.(string)
		return ok && s == w
	}
	wf, wok := toFloat(want)
	vf, vok := toFloat(v)
	if wok && vok {
		return wf == vf
	}
	if reflect.TypeOf(v).Comparable() && reflect.TypeOf(want).Comparable() {
		return v == want
	}
	return reflect.DeepEqual(v, want)
}

// displayValue renders a candidate for error messages.
func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	default:
		if n, ok := formatNumber(v); ok {
			return n
		}
		return fmt.Sprintf("%v", v)
	}
}

type literalSchema struct {
	want any
	desc string
}

func (s *literalSchema) Describe(text string) LiteralBuilder { s.desc = text; return s }

func (s *literalSchema) mismatch(v any) zodiac.Issues {
	want := displayValue(s.want)
	return zodiac.Issues{{
		Path:    "/",
		Code:    zodiac.CodeInvalidLiteral,
		Message: i18n.T(zodiac.CodeInvalidLiteral, map[string]string{"expected": want}),
		Params:  map[string]any{"expected": s.want},
	}}
}

func (s *literalSchema) Parse(ctx context.Context, v any) (any, error) {
	if !equalValue(v, s.want) {
		return nil, s.mismatch(v)
	}
	return s.want, nil
}

func (s *literalSchema) TypeCheck(ctx context.Context, v any) error {
	if !equalValue(v, s.want) {
		return s.mismatch(v)
	}
	return nil
}

func (s *literalSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *literalSchema) Validate(ctx context.Context, v any) error {
	return s.TypeCheck(ctx, v)
}

func (s *literalSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Const: js.ConstOf(s.want), Description: s.desc}, nil
}

type enumSchema struct {
	members []any
	desc    string
}

func (s *enumSchema) Describe(text string) EnumBuilder { s.desc = text; return s }

func (s *enumSchema) mismatch(v any) zodiac.Issues {
	names := make([]string, 0, len(s.members))
	for _, m := range s.members {
		names = append(names, displayValue(m))
	}
	return zodiac.Issues{{
		Path:    "/",
		Code:    zodiac.CodeInvalidEnum,
		Message: i18n.T(zodiac.CodeInvalidEnum, map[string]string{"allowed": strings.Join(names, ", ")}),
		Params:  map[string]any{"values": s.members},
	}}
}

func (s *enumSchema) match(v any) (any, bool) {
	for _, m := range s.members {
		if equalValue(v, m) {
			return m, true
		}
	}
	return nil, false
}

func (s *enumSchema) Parse(ctx context.Context, v any) (any, error) {
	m, ok := s.match(v)
	if !ok {
		return nil, s.mismatch(v)
	}
	return m, nil
}

func (s *enumSchema) TypeCheck(ctx context.Context, v any) error {
	if _, ok := s.match(v); !ok {
		return s.mismatch(v)
	}
	return nil
}

func (s *enumSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *enumSchema) Validate(ctx context.Context, v any) error {
	return s.TypeCheck(ctx, v)
}

func (s *enumSchema) JSONSchema() (*js.Schema, error) {
	enum := make([]any, len(s.members))
	copy(enum, s.members)
	return &js.Schema{Enum: enum, Description: s.desc}, nil
}
