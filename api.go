package zodiac

import (
	"context"

	js "github.com/unkai/zodiac/jsonschema"
)

// Schema is the contract every node implements: construction happens once,
// then Parse/Validate may be called concurrently because nodes are immutable
// after they are first shared.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (Coerce -> TypeCheck ->
	// RuleCheck). On failure the returned error is always Issues.
	Parse(ctx context.Context, v any) (T, error)

	// TypeCheck verifies shape only: the runtime kind matches (after
	// coercion, for coercing schemas) without running refinements.
	TypeCheck(ctx context.Context, v any) error

	// RuleCheck runs the refinement chain (min/max/pattern/enum/...) assuming
	// TypeCheck already succeeded.
	RuleCheck(ctx context.Context, v any) error

	// Validate composes TypeCheck followed by RuleCheck.
	Validate(ctx context.Context, v any) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Result is the stable two-armed envelope returned by SafeParse. There is no
// partial-success state: OK is true iff Issues is empty.
type Result[T any] struct {
	OK     bool
	Value  T
	Issues Issues
}

// SafeParse parses v into T and never returns an error: failures are reported
// through the Result envelope. SafeParse succeeds exactly when Parse would.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) Result[T] {
	val, err := s.Parse(ctx, v)
	if err != nil {
		iss, ok := AsIssues(err)
		if !ok {
			iss = Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
		}
		return Result[T]{OK: false, Issues: iss}
	}
	return Result[T]{OK: true, Value: val}
}

// Decode is a thin wrapper around Schema.Parse for the forward direction.
func Decode[T any](ctx context.Context, s Schema[T], v any) (T, error) {
	return s.Parse(ctx, v)
}

// Is returns true if v conforms to the schema s (TypeCheck+RuleCheck).
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	return s.Validate(ctx, v) == nil
}

// ---- Parse-time context options (internal wiring, exported for subpackages) ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast parsing behavior.
// This is set by ParseJSON/ParseYAML based on ParseOpt and consumed by
// composite schema implementations.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current parse should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
