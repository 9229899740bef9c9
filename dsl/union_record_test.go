package dsl_test

import (
	"context"
	"testing"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/dsl"
	js "github.com/unkai/zodiac/jsonschema"
)

func TestUnion_FirstMatchWinsInOrder(t *testing.T) {
	ctx := context.Background()
	s := dsl.Union(
		dsl.SchemaOf[string](dsl.CoercedString()),
		dsl.SchemaOf[float64](dsl.Number()),
	)

	// 42 coerces under the first alternative, so number never gets a turn.
	got, err := s.Parse(ctx, float64(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "42" {
		t.Fatalf("first alternative should win, got %v (%T)", got, got)
	}
}

func TestUnion_NoMatchCollapsesToOneIssue(t *testing.T) {
	ctx := context.Background()
	s := dsl.Union(
		dsl.SchemaOf[string](dsl.String()),
		dsl.SchemaOf[float64](dsl.Number()),
	)

	_, err := s.Parse(ctx, true)
	iss := mustIssues(t, err)
	if len(iss) != 1 {
		t.Fatalf("union failure must collapse, got %v", iss)
	}
	if iss[0].Code != zodiac.CodeUnionNoMatch || iss[0].Path != "/" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestUnion_RuleCheckAgreesWithParseSelection(t *testing.T) {
	ctx := context.Background()
	s := dsl.Union(
		dsl.SchemaOf[string](dsl.String().Min(5)),
		dsl.SchemaOf[string](dsl.String()),
	)

	// "ab" fails the first alternative's rules but fully satisfies the
	// second; every pillar must agree with the alternative Parse picks.
	if _, err := s.Parse(ctx, "ab"); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.TypeCheck(ctx, "ab"); err != nil {
		t.Fatalf("TypeCheck: %v", err)
	}
	if err := s.RuleCheck(ctx, "ab"); err != nil {
		t.Fatalf("RuleCheck must pass when a later alternative matches: %v", err)
	}
	if err := s.Validate(ctx, "ab"); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// with no fully matching alternative, the first shape match reports its
	// rule failures
	only := dsl.Union(dsl.SchemaOf[string](dsl.String().Min(5)))
	err := only.RuleCheck(ctx, "ab")
	iss := mustIssues(t, err)
	if iss[0].Code != zodiac.CodeTooShort {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestUnion_JSONSchemaExport(t *testing.T) {
	s := dsl.Union(
		dsl.SchemaOf[string](dsl.String()),
		dsl.SchemaOf[float64](dsl.Number()),
	)
	doc, err := s.JSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.AnyOf) != 2 || doc.AnyOf[0].Type != "string" || doc.AnyOf[1].Type != "number" {
		t.Fatalf("unexpected export: %+v", doc)
	}
}

func TestRecord_UniformValues(t *testing.T) {
	ctx := context.Background()
	s := dsl.Record(dsl.SchemaOf[float64](dsl.Number()))

	got, err := s.Parse(ctx, map[string]any{"a": float64(1), "b": float64(2)})
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v, err %v", got, err)
	}

	_, err = s.Parse(ctx, map[string]any{"ok": float64(1), "bad": "x", "also": true})
	iss := mustIssues(t, err)
	if len(iss) != 2 {
		t.Fatalf("want 2 issues, got %v", iss)
	}
	// keys iterate sorted, so issue order is deterministic
	if iss[0].Path != "/also" || iss[1].Path != "/bad" {
		t.Fatalf("paths = %q, %q", iss[0].Path, iss[1].Path)
	}
}

func TestRecord_NonObjectInput(t *testing.T) {
	ctx := context.Background()
	s := dsl.Record(dsl.SchemaOf[string](dsl.String()))
	_, err := s.Parse(ctx, 5)
	iss := mustIssues(t, err)
	if iss[0].Code != zodiac.CodeInvalidType {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestRecord_JSONSchemaExport(t *testing.T) {
	s := dsl.Record(dsl.SchemaOf[string](dsl.String()))
	doc, err := s.JSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Type != "object" {
		t.Fatalf("type = %q", doc.Type)
	}
	ap, ok := doc.AdditionalProperties.(*js.Schema)
	if !ok || ap.Type != "string" {
		t.Fatalf("record must export value schema via additionalProperties, got %v", doc.AdditionalProperties)
	}
}
