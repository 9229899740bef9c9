package dsl_test

import (
	"context"
	"testing"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/dsl"
)

func addressSchema() zodiac.Schema[map[string]any] {
	return dsl.Object().
		Field("street", dsl.SchemaOf[string](dsl.String().Min(1))).
		Field("zip", dsl.SchemaOf[string](dsl.String()).Optional()).
		MustBuild()
}

func TestObject_RequiredAndOptional(t *testing.T) {
	ctx := context.Background()
	s := addressSchema()

	got, err := s.Parse(ctx, map[string]any{"street": "main st"})
	if err != nil {
		t.Fatalf("optional absent should pass: %v", err)
	}
	if _, present := got["zip"]; present {
		t.Fatalf("absent optional must stay absent in output")
	}

	_, err = s.Parse(ctx, map[string]any{"zip": "12345"})
	iss := mustIssues(t, err)
	if len(iss) != 1 || iss[0].Code != zodiac.CodeRequired || iss[0].Path != "/street" {
		t.Fatalf("want required at /street, got %v", iss)
	}
}

func TestObject_CollectsAllFieldIssues(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().
		Field("a", dsl.SchemaOf[string](dsl.String())).
		Field("b", dsl.SchemaOf[float64](dsl.Number())).
		MustBuild()

	_, err := s.Parse(ctx, map[string]any{"a": 1, "b": "x"})
	iss := mustIssues(t, err)
	if len(iss) != 2 {
		t.Fatalf("want 2 issues, got %v", iss)
	}
	// fields validate in declaration order
	if iss[0].Path != "/a" || iss[1].Path != "/b" {
		t.Fatalf("paths = %q, %q", iss[0].Path, iss[1].Path)
	}
}

func TestObject_NestedPaths(t *testing.T) {
	ctx := context.Background()
	s := dsl.Object().
		Field("address", dsl.SchemaOf[map[string]any](addressSchema())).
		MustBuild()

	_, err := s.Parse(ctx, map[string]any{"address": map[string]any{"street": ""}})
	iss := mustIssues(t, err)
	if iss[0].Path != "/address/street" {
		t.Fatalf("path = %q", iss[0].Path)
	}
	segs := iss[0].PathSegments()
	if len(segs) != 2 || segs[0] != "address" || segs[1] != "street" {
		t.Fatalf("segments = %v", segs)
	}
}

func TestObject_UnknownKeyPolicies(t *testing.T) {
	ctx := context.Background()
	in := map[string]any{"street": "main st", "extra": 1, "another": 2}

	// default: strip
	got, err := addressSchema().Parse(ctx, in)
	if err != nil {
		t.Fatalf("strip should pass: %v", err)
	}
	if _, present := got["extra"]; present {
		t.Fatalf("strip must drop unknown keys")
	}

	strict := dsl.Object().
		Field("street", dsl.SchemaOf[string](dsl.String())).
		Strict().
		MustBuild()
	_, err = strict.Parse(ctx, in)
	iss := mustIssues(t, err)
	if len(iss) != 2 {
		t.Fatalf("strict wants one issue per unknown key, got %v", iss)
	}
	// unknown keys report in sorted order
	if iss[0].Path != "/another" || iss[1].Path != "/extra" {
		t.Fatalf("paths = %q, %q", iss[0].Path, iss[1].Path)
	}
	if iss[0].Code != zodiac.CodeUnknownKey {
		t.Fatalf("code = %q", iss[0].Code)
	}

	pass := dsl.Object().
		Field("street", dsl.SchemaOf[string](dsl.String())).
		Passthrough().
		MustBuild()
	got, err = pass.Parse(ctx, in)
	if err != nil {
		t.Fatalf("passthrough should pass: %v", err)
	}
	if got["extra"] != 1 || got["another"] != 2 {
		t.Fatalf("passthrough must keep unknown keys: %v", got)
	}
}

func TestObject_NonObjectInput(t *testing.T) {
	ctx := context.Background()
	_, err := addressSchema().Parse(ctx, []any{1})
	iss := mustIssues(t, err)
	if iss[0].Code != zodiac.CodeInvalidType || iss[0].Path != "/" {
		t.Fatalf("unexpected: %v", iss)
	}
}

func TestObject_DuplicateFieldIsBuildError(t *testing.T) {
	_, err := dsl.Object().
		Field("x", dsl.SchemaOf[string](dsl.String())).
		Field("x", dsl.SchemaOf[float64](dsl.Number())).
		Build()
	iss := mustIssues(t, err)
	if iss[0].Code != zodiac.CodeDuplicateField || iss[0].Path != "/x" {
		t.Fatalf("unexpected: %v", iss)
	}
}

func TestObject_JSONSchemaExport(t *testing.T) {
	doc, err := addressSchema().JSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Type != "object" {
		t.Fatalf("type = %q", doc.Type)
	}
	if len(doc.Required) != 1 || doc.Required[0] != "street" {
		t.Fatalf("required = %v", doc.Required)
	}
	if doc.Properties["zip"] == nil {
		t.Fatalf("optional field must still export a property")
	}
	if doc.AdditionalProperties != nil {
		t.Fatalf("strip mode omits additionalProperties, got %v", doc.AdditionalProperties)
	}

	strict := dsl.Object().Strict().MustBuild()
	sd, _ := strict.JSONSchema()
	if ap, ok := sd.AdditionalProperties.(bool); !ok || ap {
		t.Fatalf("strict must export additionalProperties:false, got %v", sd.AdditionalProperties)
	}
}
