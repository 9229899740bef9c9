package dsl

import (
	"context"
	"time"

	zodiac "github.com/unkai/zodiac"
	js "github.com/unkai/zodiac/jsonschema"
)

// CoercedString returns a string schema that converts numbers and booleans
// to their canonical textual form before validating. Values with no textual
// form (nil, arrays, objects) fail with a coercion issue.
func CoercedString() StringBuilder { return &stringSchema{coerce: true} }

// CoercedNumber returns a number schema that additionally accepts numeric
// strings and booleans (true=1, false=0). Non-numeric strings fail with a
// coercion issue rather than an invalid-type issue.
func CoercedNumber() NumberBuilder { return &numberSchema{coerce: true} }

// CoercedBool returns a boolean schema applying host truthiness rules. The
// conversion never fails: nil, zero, NaN and "" are false, everything else
// is true.
func CoercedBool() BoolBuilder { return &boolSchema{coerce: true} }

// CoercedTime returns a time.Time schema that accepts time.Time values
// unchanged, parses RFC 3339 and date-only strings, and interprets numeric
// input as unix seconds.
func CoercedTime() TimeBuilder { return &timeSchema{} }

// TimeBuilder implements Schema[time.Time] with metadata chaining.
type TimeBuilder interface {
	zodiac.Schema[time.Time]
	Describe(text string) TimeBuilder
}

type timeSchema struct {
	desc string
}

func (s *timeSchema) Describe(text string) TimeBuilder { s.desc = text; return s }

// timeLayouts is ordered from most to least specific so fractional seconds
// survive when present.
var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func (s *timeSchema) convert(v any) (time.Time, zodiac.Issues) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range timeLayouts {
			if tm, err := time.Parse(layout, t); err == nil {
				return tm, nil
			}
		}
		return time.Time{}, cannotCoerce("date", v)
	default:
		if f, ok := toFloat(v); ok {
			sec := int64(f)
			nsec := int64((f - float64(sec)) * float64(time.Second))
			return time.Unix(sec, nsec).UTC(), nil
		}
		return time.Time{}, cannotCoerce("date", v)
	}
}

func (s *timeSchema) Parse(ctx context.Context, v any) (time.Time, error) {
	tm, iss := s.convert(v)
	if iss != nil {
		return time.Time{}, iss
	}
	return tm, nil
}

func (s *timeSchema) TypeCheck(ctx context.Context, v any) error {
	if _, iss := s.convert(v); iss != nil {
		return iss
	}
	return nil
}

func (s *timeSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *timeSchema) Validate(ctx context.Context, v any) error {
	return s.TypeCheck(ctx, v)
}

func (s *timeSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "string", Format: "date-time", Description: s.desc}, nil
}
