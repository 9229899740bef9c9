package bridge

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/dsl"
	js "github.com/unkai/zodiac/jsonschema"
)

// unsupportedKeywords are constructs outside the supported subset. Their
// presence anywhere in a document aborts the import; silently ignoring them
// would validate less than the document promises.
var unsupportedKeywords = []string{
	"$ref", "oneOf", "allOf", "not", "patternProperties",
	"$defs", "definitions", "if", "then", "else",
}

// Import reconstructs a runnable schema from a JSON Schema document. The
// input may be a *jsonschema.Schema, a decoded map[string]any tree, or raw
// JSON bytes. The returned Diag lists lossy mappings (e.g. integer narrowed
// to number); hard failures return an Issues error.
func Import(schema any) (dsl.AnyAdapter, Diag, error) {
	diag := &simpleDiag{}
	node, err := toNode(schema)
	if err != nil {
		return dsl.AnyAdapter{}, diag, err
	}
	ad, err := importNode(node, "/", diag)
	if err != nil {
		return dsl.AnyAdapter{}, diag, err
	}
	return ad, diag, nil
}

// ImportJSON imports a schema from raw JSON bytes.
func ImportJSON(data []byte) (dsl.AnyAdapter, Diag, error) {
	return Import(data)
}

// ImportYAML imports a schema from a YAML document, e.g. an OpenAPI fragment.
func ImportYAML(data []byte) (dsl.AnyAdapter, Diag, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return dsl.AnyAdapter{}, &simpleDiag{}, zodiac.Issues{{
			Path: "/", Code: zodiac.CodeParseError, Message: err.Error(), Cause: err,
		}}
	}
	return Import(zodiac.NormalizeYAML(v))
}

// MustImport panics on import failure. Intended for schema documents
// embedded in the binary where failure is a build defect.
func MustImport(schema any) dsl.AnyAdapter {
	ad, _, err := Import(schema)
	if err != nil {
		panic(fmt.Sprintf("bridge: import failed: %v", err))
	}
	return ad
}

// toNode normalizes the accepted input forms to a map tree with json.Number
// numerics.
func toNode(schema any) (map[string]any, error) {
	switch t := schema.(type) {
	case map[string]any:
		return t, nil
	case []byte:
		return decodeNode(t)
	case json.RawMessage:
		return decodeNode(t)
	case *js.Schema, js.Schema:
		raw, err := json.Marshal(t)
		if err != nil {
			return nil, zodiac.Issues{{Path: "/", Code: zodiac.CodeParseError, Message: err.Error(), Cause: err}}
		}
		return decodeNode(raw)
	default:
		return nil, zodiac.Issues{{
			Path:    "/",
			Code:    zodiac.CodeUnsupportedSchema,
			Message: fmt.Sprintf("cannot import schema from %T", schema),
		}}
	}
}

func decodeNode(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var node map[string]any
	if err := dec.Decode(&node); err != nil {
		return nil, zodiac.Issues{{Path: "/", Code: zodiac.CodeParseError, Message: err.Error(), Cause: err}}
	}
	return node, nil
}

func unsupportedAt(path, keyword string) error {
	return zodiac.Issues{{
		Path:    path,
		Code:    zodiac.CodeUnsupportedSchema,
		Message: fmt.Sprintf("unsupported keyword %q", keyword),
		Hint:    "only the const/enum/anyOf/type subset is importable",
	}}
}

func importNode(node map[string]any, path string, diag *simpleDiag) (dsl.AnyAdapter, error) {
	for _, kw := range unsupportedKeywords {
		if _, found := node[kw]; found {
			return dsl.AnyAdapter{}, unsupportedAt(path, kw)
		}
	}

	ad, err := importCore(node, path, diag)
	if err != nil {
		return dsl.AnyAdapter{}, err
	}
	if desc, ok := node["description"].(string); ok && desc != "" {
		ad = ad.Describe(desc)
	}
	return ad, nil
}

func importCore(node map[string]any, path string, diag *simpleDiag) (dsl.AnyAdapter, error) {
	if c, found := node["const"]; found {
		if !isScalar(c) {
			return dsl.AnyAdapter{}, zodiac.Issues{{
				Path: path, Code: zodiac.CodeUnsupportedSchema,
				Message: "const must be null, boolean, string, or number",
			}}
		}
		return dsl.SchemaOf[any](dsl.Literal(c)), nil
	}
	if e, found := node["enum"]; found {
		members, ok := e.([]any)
		if !ok || len(members) == 0 {
			return dsl.AnyAdapter{}, zodiac.Issues{{
				Path: path, Code: zodiac.CodeUnsupportedSchema,
				Message: "enum must be a non-empty array",
			}}
		}
		for _, m := range members {
			if !isScalar(m) {
				return dsl.AnyAdapter{}, zodiac.Issues{{
					Path: path, Code: zodiac.CodeUnsupportedSchema,
					Message: "enum members must be null, boolean, string, or number",
				}}
			}
		}
		return dsl.SchemaOf[any](dsl.Enum(members...)), nil
	}
	if a, found := node["anyOf"]; found {
		return importAnyOf(a, path, diag)
	}

	typ, _ := node["type"].(string)
	switch typ {
	case "string":
		return importString(node, path, diag)
	case "integer":
		diag.warnf("%s: integer narrowed to number", path)
		return importNumber(node)
	case "number":
		return importNumber(node)
	case "boolean":
		return dsl.SchemaOf[bool](dsl.Bool()), nil
	case "null":
		return dsl.SchemaOf[any](dsl.Null()), nil
	case "array":
		return importArray(node, path, diag)
	case "object":
		return importObject(node, path, diag)
	case "":
		// No type and no recognized combinator: the permissive schema.
		return dsl.SchemaOf[any](dsl.Any()), nil
	default:
		return dsl.AnyAdapter{}, zodiac.Issues{{
			Path: path, Code: zodiac.CodeUnsupportedSchema,
			Message: fmt.Sprintf("unsupported type %q", typ),
		}}
	}
}

func importAnyOf(a any, path string, diag *simpleDiag) (dsl.AnyAdapter, error) {
	items, ok := a.([]any)
	if !ok || len(items) == 0 {
		return dsl.AnyAdapter{}, zodiac.Issues{{
			Path: path, Code: zodiac.CodeUnsupportedSchema,
			Message: "anyOf must be a non-empty array",
		}}
	}
	nodes := make([]map[string]any, 0, len(items))
	for i, it := range items {
		n, ok := it.(map[string]any)
		if !ok {
			return dsl.AnyAdapter{}, zodiac.Issues{{
				Path: fmt.Sprintf("%sanyOf/%d", slashed(path), i), Code: zodiac.CodeUnsupportedSchema,
				Message: "anyOf member must be an object",
			}}
		}
		nodes = append(nodes, n)
	}

	// The exporter writes Nullable as anyOf [inner, {type:"null"}]; fold that
	// exact shape back so the round trip is stable.
	if len(nodes) == 2 {
		if isNullNode(nodes[1]) && !isNullNode(nodes[0]) {
			inner, err := importNode(nodes[0], childPath(path, "anyOf/0"), diag)
			if err != nil {
				return dsl.AnyAdapter{}, err
			}
			return inner.Nullable(), nil
		}
	}

	alts := make([]dsl.AnyAdapter, 0, len(nodes))
	for i, n := range nodes {
		alt, err := importNode(n, childPath(path, fmt.Sprintf("anyOf/%d", i)), diag)
		if err != nil {
			return dsl.AnyAdapter{}, err
		}
		alts = append(alts, alt)
	}
	return dsl.SchemaOf[any](dsl.Union(alts...)), nil
}

func isNullNode(n map[string]any) bool {
	t, _ := n["type"].(string)
	return t == "null"
}

func importString(node map[string]any, path string, diag *simpleDiag) (dsl.AnyAdapter, error) {
	format, _ := node["format"].(string)
	if format == "date-time" {
		return dsl.SchemaOf[time.Time](dsl.CoercedTime()), nil
	}
	b := dsl.String()
	if n, ok := intVal(node, "minLength", path, diag); ok {
		b = b.Min(n)
	}
	if n, ok := intVal(node, "maxLength", path, diag); ok {
		b = b.Max(n)
	}
	if p, ok := node["pattern"].(string); ok && p != "" {
		b = b.Pattern(p)
	}
	if format == "uri" {
		b = b.URL()
	}
	return dsl.SchemaOf[string](b), nil
}

func importNumber(node map[string]any) (dsl.AnyAdapter, error) {
	b := dsl.Number()
	if f, ok := floatVal(node, "minimum"); ok {
		b = b.Min(f)
	}
	if f, ok := floatVal(node, "maximum"); ok {
		b = b.Max(f)
	}
	return dsl.SchemaOf[float64](b), nil
}

func importArray(node map[string]any, path string, diag *simpleDiag) (dsl.AnyAdapter, error) {
	var elem dsl.AnyAdapter
	if items, found := node["items"]; found {
		in, ok := items.(map[string]any)
		if !ok {
			return dsl.AnyAdapter{}, zodiac.Issues{{
				Path: childPath(path, "items"), Code: zodiac.CodeUnsupportedSchema,
				Message: "items must be a single schema object",
			}}
		}
		var err error
		elem, err = importNode(in, childPath(path, "items"), diag)
		if err != nil {
			return dsl.AnyAdapter{}, err
		}
	} else {
		diag.warnf("%s: array without items, elements unconstrained", path)
		elem = dsl.SchemaOf[any](dsl.Any())
	}
	b := dsl.Array(elem)
	if n, ok := intVal(node, "minItems", path, diag); ok {
		b = b.Min(n)
	}
	if n, ok := intVal(node, "maxItems", path, diag); ok {
		b = b.Max(n)
	}
	return dsl.SchemaOf[[]any](b), nil
}

func importObject(node map[string]any, path string, diag *simpleDiag) (dsl.AnyAdapter, error) {
	props, hasProps := node["properties"].(map[string]any)
	ap, hasAP := node["additionalProperties"]

	if !hasProps {
		// No declared fields. A schema-valued additionalProperties is an open
		// map; false is a closed empty object; anything else accepts
		// arbitrary objects.
		if apNode, ok := ap.(map[string]any); ok {
			val, err := importNode(apNode, childPath(path, "additionalProperties"), diag)
			if err != nil {
				return dsl.AnyAdapter{}, err
			}
			return dsl.SchemaOf[map[string]any](dsl.Record(val)), nil
		}
		if closed, ok := ap.(bool); ok && !closed {
			obj, err := dsl.Object().Strict().Build()
			if err != nil {
				return dsl.AnyAdapter{}, err
			}
			return dsl.SchemaOf[map[string]any](obj), nil
		}
		return dsl.SchemaOf[map[string]any](dsl.Record(dsl.SchemaOf[any](dsl.Any()))), nil
	}

	required := map[string]bool{}
	if r, ok := node["required"].([]any); ok {
		for _, name := range r {
			if s, ok := name.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	b := dsl.Object()
	for _, name := range names {
		pn, ok := props[name].(map[string]any)
		if !ok {
			return dsl.AnyAdapter{}, zodiac.Issues{{
				Path: childPath(path, "properties/"+name), Code: zodiac.CodeUnsupportedSchema,
				Message: "property schema must be an object",
			}}
		}
		field, err := importNode(pn, childPath(path, "properties/"+name), diag)
		if err != nil {
			return dsl.AnyAdapter{}, err
		}
		if !required[name] {
			field = field.Optional()
		}
		b = b.Field(name, field)
	}

	if hasAP {
		switch t := ap.(type) {
		case bool:
			if t {
				b = b.Passthrough()
			} else {
				b = b.Strict()
			}
		case map[string]any:
			diag.warnf("%s: additionalProperties schema alongside properties treated as passthrough", path)
			b = b.Passthrough()
		}
	}

	obj, err := b.Build()
	if err != nil {
		return dsl.AnyAdapter{}, err
	}
	return dsl.SchemaOf[map[string]any](obj), nil
}

// isScalar reports whether v can back a Literal or Enum member. Composite
// const/enum values are outside the importable subset.
func isScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string, json.Number, float64, int, int64:
		return true
	default:
		return false
	}
}

func intVal(node map[string]any, key, path string, diag *simpleDiag) (int, bool) {
	f, ok := floatVal(node, key)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		diag.warnf("%s: %s %v is not an integer, ignored", path, key, f)
		return 0, false
	}
	return int(f), true
}

func floatVal(node map[string]any, key string) (float64, bool) {
	v, found := node[key]
	if !found {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}

func childPath(base, seg string) string { return slashed(base) + seg }

func slashed(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	return p + "/"
}
