package dsl

import (
	"context"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"unicode/utf8"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/i18n"
	js "github.com/unkai/zodiac/jsonschema"
)

// String returns a string schema. Refinements chain in attachment order and
// run fail-fast after the base type check.
func String() StringBuilder { return &stringSchema{} }

// Number returns a float64 schema. NaN is rejected even though its runtime
// type matches.
func Number() NumberBuilder { return &numberSchema{} }

// Bool returns a boolean schema.
func Bool() BoolBuilder { return &boolSchema{} }

// Null returns a schema accepting only nil.
func Null() AnyBuilder { return &nullSchema{} }

// Any returns a schema that never fails and passes the input through.
func Any() AnyBuilder { return &anySchema{} }

// Unknown is runtime-identical to Any; the distinction is typing-surface
// only in the source design and carries no behavior here.
func Unknown() AnyBuilder { return &anySchema{} }

// StringBuilder exposes chaining refinements for string schemas while
// implementing Schema[string].
type StringBuilder interface {
	zodiac.Schema[string]
	Min(n int) StringBuilder
	Max(n int) StringBuilder
	Pattern(expr string) StringBuilder
	URL() StringBuilder
	Refine(name string, fn func(string) error) StringBuilder
	Describe(text string) StringBuilder
}

// NumberBuilder exposes chaining refinements for number schemas while
// implementing Schema[float64].
type NumberBuilder interface {
	zodiac.Schema[float64]
	Min(n float64) NumberBuilder
	Max(n float64) NumberBuilder
	Finite() NumberBuilder
	Refine(name string, fn func(float64) error) NumberBuilder
	Describe(text string) NumberBuilder
}

// BoolBuilder implements Schema[bool] with metadata chaining.
type BoolBuilder interface {
	zodiac.Schema[bool]
	Describe(text string) BoolBuilder
}

// AnyBuilder implements Schema[any] with metadata chaining.
type AnyBuilder interface {
	zodiac.Schema[any]
	Describe(text string) AnyBuilder
}

// ---------------- string ----------------

type stringCheck struct {
	name string
	fn   func(string) error
}

type stringSchema struct {
	coerce  bool
	minLen  *int
	maxLen  *int
	pattern string
	format  string
	desc    string
	checks  []stringCheck
}

func (s *stringSchema) Min(n int) StringBuilder {
	s.minLen = &n
	s.checks = append(s.checks, stringCheck{name: "min", fn: func(v string) error {
		if utf8.RuneCountInString(v) < n {
			m := strconv.Itoa(n)
			return zodiac.Issues{{Path: "/", Code: zodiac.CodeTooShort, Message: i18n.T(zodiac.CodeTooShort, map[string]string{"min": m}), Params: map[string]any{"min": n}}}
		}
		return nil
	}})
	return s
}

func (s *stringSchema) Max(n int) StringBuilder {
	s.maxLen = &n
	s.checks = append(s.checks, stringCheck{name: "max", fn: func(v string) error {
		if utf8.RuneCountInString(v) > n {
			m := strconv.Itoa(n)
			return zodiac.Issues{{Path: "/", Code: zodiac.CodeTooLong, Message: i18n.T(zodiac.CodeTooLong, map[string]string{"max": m}), Params: map[string]any{"max": n}}}
		}
		return nil
	}})
	return s
}

// Pattern anchors nothing; the expression matches anywhere in the value.
// Invalid expressions panic at construction time.
func (s *stringSchema) Pattern(expr string) StringBuilder {
	re := regexp.MustCompile(expr)
	s.pattern = expr
	s.checks = append(s.checks, stringCheck{name: "pattern", fn: func(v string) error {
		if !re.MatchString(v) {
			return zodiac.Issues{{Path: "/", Code: zodiac.CodePattern, Message: i18n.T(zodiac.CodePattern, nil), Hint: "must match " + expr, Params: map[string]any{"pattern": expr}}}
		}
		return nil
	}})
	return s
}

// URL requires a non-empty absolute URL with a scheme.
func (s *stringSchema) URL() StringBuilder {
	s.format = "uri"
	s.checks = append(s.checks, stringCheck{name: "url", fn: func(v string) error {
		u, err := url.Parse(v)
		if v == "" || err != nil || !u.IsAbs() {
			return zodiac.Issues{{Path: "/", Code: zodiac.CodeInvalidFormat, Message: i18n.T(zodiac.CodeInvalidFormat, nil), Hint: "must be an absolute URL", Cause: err}}
		}
		return nil
	}})
	return s
}

func (s *stringSchema) Refine(name string, fn func(string) error) StringBuilder {
	if fn == nil {
		return s
	}
	s.checks = append(s.checks, stringCheck{name: name, fn: func(v string) error {
		err := fn(v)
		if err == nil {
			return nil
		}
		if iss, ok := zodiac.AsIssues(err); ok {
			return iss
		}
		return zodiac.Issues{{Path: "/", Code: "custom", Message: err.Error(), Cause: err}}
	}})
	return s
}

func (s *stringSchema) Describe(text string) StringBuilder { s.desc = text; return s }

// convert performs the optional coercion step and the base type check.
func (s *stringSchema) convert(v any) (string, zodiac.Issues) {
	if sv, ok := v.(string); ok {
		return sv, nil
	}
	if !s.coerce {
		return "", invalidType("string", v)
	}
	if b, ok := v.(bool); ok {
		if b {
			return "true", nil
		}
		return "false", nil
	}
	if n, ok := formatNumber(v); ok {
		return n, nil
	}
	return "", cannotCoerce("string", v)
}

func (s *stringSchema) runChecks(v string) error {
	for _, c := range s.checks {
		if err := c.fn(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *stringSchema) Parse(ctx context.Context, v any) (string, error) {
	sv, iss := s.convert(v)
	if iss != nil {
		return "", iss
	}
	if err := s.runChecks(sv); err != nil {
		return "", err
	}
	return sv, nil
}

func (s *stringSchema) TypeCheck(ctx context.Context, v any) error {
	if _, iss := s.convert(v); iss != nil {
		return iss
	}
	return nil
}

func (s *stringSchema) RuleCheck(ctx context.Context, v any) error {
	sv, iss := s.convert(v)
	if iss != nil {
		return nil
	}
	return s.runChecks(sv)
}

func (s *stringSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *stringSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{
		Type:        "string",
		Format:      s.format,
		Description: s.desc,
		MinLength:   s.minLen,
		MaxLength:   s.maxLen,
		Pattern:     s.pattern,
	}, nil
}

// ---------------- number ----------------

type numberCheck struct {
	name string
	fn   func(float64) error
}

type numberSchema struct {
	coerce bool
	min    *float64
	max    *float64
	desc   string
	checks []numberCheck
}

func (s *numberSchema) Min(n float64) NumberBuilder {
	s.min = &n
	s.checks = append(s.checks, numberCheck{name: "min", fn: func(v float64) error {
		if v < n {
			m := formatFloat(n)
			return zodiac.Issues{{Path: "/", Code: zodiac.CodeTooSmall, Message: i18n.T(zodiac.CodeTooSmall, map[string]string{"min": m}), Params: map[string]any{"min": n}}}
		}
		return nil
	}})
	return s
}

func (s *numberSchema) Max(n float64) NumberBuilder {
	s.max = &n
	s.checks = append(s.checks, numberCheck{name: "max", fn: func(v float64) error {
		if v > n {
			m := formatFloat(n)
			return zodiac.Issues{{Path: "/", Code: zodiac.CodeTooBig, Message: i18n.T(zodiac.CodeTooBig, map[string]string{"max": m}), Params: map[string]any{"max": n}}}
		}
		return nil
	}})
	return s
}

// Finite rejects +Inf and -Inf. NaN is already rejected by the base check.
func (s *numberSchema) Finite() NumberBuilder {
	s.checks = append(s.checks, numberCheck{name: "finite", fn: func(v float64) error {
		if math.IsInf(v, 0) {
			return zodiac.Issues{{Path: "/", Code: zodiac.CodeNotFinite, Message: i18n.T(zodiac.CodeNotFinite, nil)}}
		}
		return nil
	}})
	return s
}

func (s *numberSchema) Refine(name string, fn func(float64) error) NumberBuilder {
	if fn == nil {
		return s
	}
	s.checks = append(s.checks, numberCheck{name: name, fn: func(v float64) error {
		err := fn(v)
		if err == nil {
			return nil
		}
		if iss, ok := zodiac.AsIssues(err); ok {
			return iss
		}
		return zodiac.Issues{{Path: "/", Code: "custom", Message: err.Error(), Cause: err}}
	}})
	return s
}

func (s *numberSchema) Describe(text string) NumberBuilder { s.desc = text; return s }

func (s *numberSchema) convert(v any) (float64, zodiac.Issues) {
	if f, ok := toFloat(v); ok {
		if math.IsNaN(f) {
			return 0, zodiac.Issues{{Path: "/", Code: zodiac.CodeInvalidType, Message: i18n.T(zodiac.CodeInvalidType, map[string]string{"expected": "number", "got": "NaN"}), Hint: "NaN is not a valid number"}}
		}
		return f, nil
	}
	if !s.coerce {
		return 0, invalidType("number", v)
	}
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil || math.IsNaN(f) {
			return 0, cannotCoerce("number", v)
		}
		return f, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, cannotCoerce("number", v)
	}
}

func (s *numberSchema) runChecks(v float64) error {
	for _, c := range s.checks {
		if err := c.fn(v); err != nil {
			return err
		}
	}
	return nil
}

func (s *numberSchema) Parse(ctx context.Context, v any) (float64, error) {
	f, iss := s.convert(v)
	if iss != nil {
		return 0, iss
	}
	if err := s.runChecks(f); err != nil {
		return 0, err
	}
	return f, nil
}

func (s *numberSchema) TypeCheck(ctx context.Context, v any) error {
	if _, iss := s.convert(v); iss != nil {
		return iss
	}
	return nil
}

func (s *numberSchema) RuleCheck(ctx context.Context, v any) error {
	f, iss := s.convert(v)
	if iss != nil {
		return nil
	}
	return s.runChecks(f)
}

func (s *numberSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *numberSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "number", Description: s.desc, Minimum: s.min, Maximum: s.max}, nil
}

// ---------------- bool ----------------

type boolSchema struct {
	coerce bool
	desc   string
}

func (s *boolSchema) Describe(text string) BoolBuilder { s.desc = text; return s }

func (s *boolSchema) Parse(ctx context.Context, v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if s.coerce {
		return truthy(v), nil
	}
	return false, invalidType("boolean", v)
}

func (s *boolSchema) TypeCheck(ctx context.Context, v any) error {
	if s.coerce {
		return nil
	}
	if _, ok := v.(bool); !ok {
		return invalidType("boolean", v)
	}
	return nil
}

func (s *boolSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *boolSchema) Validate(ctx context.Context, v any) error {
	if err := s.TypeCheck(ctx, v); err != nil {
		return err
	}
	return s.RuleCheck(ctx, v)
}

func (s *boolSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "boolean", Description: s.desc}, nil
}

// truthy mirrors the host falsy set: false, numeric zero, NaN, "" and nil
// are false; everything else (including empty arrays and objects) is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := toFloat(v); ok {
			return f != 0 && !math.IsNaN(f)
		}
		return true
	}
}

// ---------------- null / any ----------------

type nullSchema struct{ desc string }

func (s *nullSchema) Describe(text string) AnyBuilder { s.desc = text; return s }

func (s *nullSchema) Parse(ctx context.Context, v any) (any, error) {
	if v != nil {
		return nil, invalidType("null", v)
	}
	return nil, nil
}

func (s *nullSchema) TypeCheck(ctx context.Context, v any) error {
	if v != nil {
		return invalidType("null", v)
	}
	return nil
}

func (s *nullSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *nullSchema) Validate(ctx context.Context, v any) error {
	return s.TypeCheck(ctx, v)
}

func (s *nullSchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "null", Description: s.desc}, nil
}

type anySchema struct{ desc string }

func (s *anySchema) Describe(text string) AnyBuilder { s.desc = text; return s }

func (s *anySchema) Parse(ctx context.Context, v any) (any, error) { return v, nil }

func (s *anySchema) TypeCheck(ctx context.Context, v any) error { return nil }

func (s *anySchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (s *anySchema) Validate(ctx context.Context, v any) error { return nil }

func (s *anySchema) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Description: s.desc}, nil
}
