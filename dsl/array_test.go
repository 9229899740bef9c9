package dsl_test

import (
	"context"
	"testing"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/dsl"
)

func TestArray_AllElementsValidate(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.SchemaOf[float64](dsl.Number()))

	got, err := s.Parse(ctx, []any{float64(1), float64(2), float64(3)})
	if err != nil || len(got) != 3 {
		t.Fatalf("got %v, err %v", got, err)
	}

	_, err = s.Parse(ctx, []any{"x", float64(2), "y"})
	iss := mustIssues(t, err)
	if len(iss) != 2 {
		t.Fatalf("want 2 issues, got %v", iss)
	}
	if iss[0].Path != "/0" || iss[1].Path != "/2" {
		t.Fatalf("paths = %q, %q", iss[0].Path, iss[1].Path)
	}
}

func TestArray_EmptyIsValid(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.SchemaOf[string](dsl.String()))
	got, err := s.Parse(ctx, []any{})
	if err != nil || len(got) != 0 {
		t.Fatalf("empty array should pass: %v %v", got, err)
	}
}

func TestArray_LengthBounds(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.SchemaOf[float64](dsl.Number())).Min(1).Max(2)

	if _, err := s.Parse(ctx, []any{float64(1)}); err != nil {
		t.Fatalf("within bounds: %v", err)
	}
	_, err := s.Parse(ctx, []any{})
	iss := mustIssues(t, err)
	if iss[0].Code != zodiac.CodeTooSmall {
		t.Fatalf("code = %q", iss[0].Code)
	}
	_, err = s.Parse(ctx, []any{float64(1), float64(2), float64(3)})
	iss = mustIssues(t, err)
	if iss[0].Code != zodiac.CodeTooBig {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestArray_NonArrayInput(t *testing.T) {
	ctx := context.Background()
	s := dsl.Array(dsl.SchemaOf[string](dsl.String()))
	_, err := s.Parse(ctx, "nope")
	iss := mustIssues(t, err)
	if iss[0].Code != zodiac.CodeInvalidType {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestArray_NestedObjectPaths(t *testing.T) {
	ctx := context.Background()
	item := dsl.Object().
		Field("price", dsl.SchemaOf[float64](dsl.Number().Min(0))).
		MustBuild()
	s := dsl.Array(dsl.SchemaOf[map[string]any](item))

	_, err := s.Parse(ctx, []any{
		map[string]any{"price": float64(1)},
		map[string]any{"price": float64(-5)},
	})
	iss := mustIssues(t, err)
	if iss[0].Path != "/1/price" {
		t.Fatalf("path = %q", iss[0].Path)
	}
}

func TestArray_JSONSchemaExport(t *testing.T) {
	s := dsl.Array(dsl.SchemaOf[string](dsl.String())).Min(1).Max(5)
	doc, err := s.JSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Type != "array" || doc.Items == nil || doc.Items.Type != "string" {
		t.Fatalf("unexpected export: %+v", doc)
	}
	if *doc.MinItems != 1 || *doc.MaxItems != 5 {
		t.Fatalf("bounds lost: %+v", doc)
	}
}
