package zodiac

import (
	"bytes"
	"context"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes raw JSON and validates the result against the schema.
// Numbers are preserved as json.Number so integer precision survives the
// decode; primitive schemas accept json.Number directly.
func ParseJSON[T any](ctx context.Context, s Schema[T], data []byte, opts ...ParseOpt) (T, error) {
	return ParseJSONReader(ctx, s, bytes.NewReader(data), opts...)
}

// ParseJSONReader is ParseJSON over an io.Reader.
func ParseJSONReader[T any](ctx context.Context, s Schema[T], r io.Reader, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return s.Parse(applyOpt(ctx, opts), v)
}

// ParseYAML decodes a single YAML document and validates it against the
// schema. YAML mappings are normalized to map[string]any so schemas see the
// same shapes as JSON input.
func ParseYAML[T any](ctx context.Context, s Schema[T], data []byte, opts ...ParseOpt) (T, error) {
	var zero T
	if s == nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: "nil schema"}}
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return zero, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return s.Parse(applyOpt(ctx, opts), NormalizeYAML(v))
}

func applyOpt(ctx context.Context, opts []ParseOpt) context.Context {
	if len(opts) > 0 && opts[len(opts)-1].FailFast {
		return WithFailFast(ctx, true)
	}
	return ctx
}

// NormalizeYAML converts YAML-decoded values (which may contain map[any]any)
// into JSON-like shapes recursively. Non-string map keys are dropped.
func NormalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = NormalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = NormalizeYAML(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = NormalizeYAML(t[i])
		}
		return arr
	default:
		return v
	}
}
