package dsl

import (
	"context"

	zodiac "github.com/unkai/zodiac"
	js "github.com/unkai/zodiac/jsonschema"
)

// AnyAdapter adapts a Schema[T] to an any-typed wrapper so heterogeneous
// schemas can compose inside objects, arrays, records, and unions. It keeps
// the original schema to support introspection.
//
// AnyAdapter itself implements zodiac.Schema[any], so wrapped nodes keep the
// uniform Parse/Validate surface.
type AnyAdapter struct {
	parse      func(context.Context, any) (any, error)
	typeCheck  func(context.Context, any) error
	ruleCheck  func(context.Context, any) error
	jsonSchema func() (*js.Schema, error)
	optional   bool
	orig       any
}

var _ zodiac.Schema[any] = AnyAdapter{}

// anyAdapterFromSchema wraps a strongly typed Schema[T] as AnyAdapter.
func anyAdapterFromSchema[T any](s zodiac.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse:      func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		typeCheck:  s.TypeCheck,
		ruleCheck:  s.RuleCheck,
		jsonSchema: s.JSONSchema,
		orig:       s,
	}
}

// SchemaOf converts an arbitrary Schema[T] into an AnyAdapter.
func SchemaOf[T any](s zodiac.Schema[T]) AnyAdapter { return anyAdapterFromSchema[T](s) }

// Orig returns the original underlying Schema[T] or builder used to create
// this adapter. Wrapper adapters (Optional/Nullable/Describe) report the
// adapter they wrap.
func (ad AnyAdapter) Orig() any { return ad.orig }

// IsOptional reports whether the adapter was wrapped with Optional. Object
// schemas consult this to decide required-ness.
func (ad AnyAdapter) IsOptional() bool { return ad.optional }

func (ad AnyAdapter) Parse(ctx context.Context, v any) (any, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(ctx, v)
}

func (ad AnyAdapter) TypeCheck(ctx context.Context, v any) error {
	if ad.typeCheck == nil {
		return nil
	}
	return ad.typeCheck(ctx, v)
}

func (ad AnyAdapter) RuleCheck(ctx context.Context, v any) error {
	if ad.ruleCheck == nil {
		return nil
	}
	return ad.ruleCheck(ctx, v)
}

func (ad AnyAdapter) Validate(ctx context.Context, v any) error {
	if err := ad.TypeCheck(ctx, v); err != nil {
		return err
	}
	return ad.RuleCheck(ctx, v)
}

func (ad AnyAdapter) JSONSchema() (*js.Schema, error) {
	if ad.jsonSchema == nil {
		return &js.Schema{}, nil
	}
	return ad.jsonSchema()
}

// Optional marks the adapter as optional: an object field built from it may
// be absent from the input. The inner adapter is untouched and remains
// independently usable.
func Optional(ad AnyAdapter) AnyAdapter {
	out := ad
	out.optional = true
	return out
}

// Optional enables fluent chaining: SchemaOf(String()).Optional().
func (ad AnyAdapter) Optional() AnyAdapter { return Optional(ad) }

// Nullable wraps an adapter to accept nil unconditionally; any other value
// delegates to the inner adapter. JSON Schema export projects the wrapper as
// anyOf [inner, {type:"null"}].
func Nullable(ad AnyAdapter) AnyAdapter {
	prevParse := ad.parse
	prevType := ad.typeCheck
	prevRule := ad.ruleCheck
	prevJSON := ad.jsonSchema
	out := ad
	out.parse = func(ctx context.Context, v any) (any, error) {
		if v == nil {
			return nil, nil
		}
		if prevParse == nil {
			return v, nil
		}
		return prevParse(ctx, v)
	}
	out.typeCheck = func(ctx context.Context, v any) error {
		if v == nil || prevType == nil {
			return nil
		}
		return prevType(ctx, v)
	}
	out.ruleCheck = func(ctx context.Context, v any) error {
		if v == nil || prevRule == nil {
			return nil
		}
		return prevRule(ctx, v)
	}
	out.jsonSchema = func() (*js.Schema, error) {
		inner := &js.Schema{}
		if prevJSON != nil {
			s, err := prevJSON()
			if err != nil {
				return nil, err
			}
			if s != nil {
				inner = s
			}
		}
		return &js.Schema{AnyOf: []*js.Schema{inner, {Type: "null"}}}, nil
	}
	out.orig = ad
	return out
}

// Nullable enables fluent chaining: SchemaOf(String()).Nullable().
func (ad AnyAdapter) Nullable() AnyAdapter { return Nullable(ad) }

// Describe attaches a human-readable description, exported via the JSON
// Schema description keyword. It does not participate in validation.
func Describe(ad AnyAdapter, text string) AnyAdapter {
	prevJSON := ad.jsonSchema
	out := ad
	out.jsonSchema = func() (*js.Schema, error) {
		s := &js.Schema{}
		if prevJSON != nil {
			ps, err := prevJSON()
			if err != nil {
				return nil, err
			}
			if ps != nil {
				s = ps
			}
		}
		s.Description = text
		return s, nil
	}
	return out
}

// Describe enables fluent chaining.
func (ad AnyAdapter) Describe(text string) AnyAdapter { return Describe(ad, text) }
