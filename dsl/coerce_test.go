package dsl_test

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/dsl"
)

func TestCoercedString(t *testing.T) {
	ctx := context.Background()
	s := dsl.CoercedString()

	cases := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{float64(42), "42"},
		{json.Number("3.5"), "3.5"},
		{true, "true"},
		{false, "false"},
	}
	for _, c := range cases {
		got, err := s.Parse(ctx, c.in)
		if err != nil || got != c.want {
			t.Fatalf("Parse(%v) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}

	for _, bad := range []any{nil, []any{1}, map[string]any{}} {
		_, err := s.Parse(ctx, bad)
		iss := mustIssues(t, err)
		if iss[0].Code != zodiac.CodeCoercion {
			t.Fatalf("Parse(%v) code = %q", bad, iss[0].Code)
		}
	}
}

func TestCoercedString_RefinementsSeeCoercedValue(t *testing.T) {
	ctx := context.Background()
	s := dsl.CoercedString().Min(2)
	// 7 coerces to "7" which is too short
	_, err := s.Parse(ctx, float64(7))
	iss := mustIssues(t, err)
	if iss[0].Code != zodiac.CodeTooShort {
		t.Fatalf("code = %q", iss[0].Code)
	}
}

func TestCoercedNumber(t *testing.T) {
	ctx := context.Background()
	s := dsl.CoercedNumber()

	cases := []struct {
		in   any
		want float64
	}{
		{"3.5", 3.5},
		{"42", 42},
		{true, 1},
		{false, 0},
		{float64(9), 9},
	}
	for _, c := range cases {
		got, err := s.Parse(ctx, c.in)
		if err != nil || got != c.want {
			t.Fatalf("Parse(%v) = %v, %v; want %v", c.in, got, err, c.want)
		}
	}

	for _, bad := range []any{"abc", "", nil, []any{}} {
		_, err := s.Parse(ctx, bad)
		iss := mustIssues(t, err)
		if iss[0].Code != zodiac.CodeCoercion {
			t.Fatalf("Parse(%v) code = %q", bad, iss[0].Code)
		}
	}
}

func TestCoercedBool_TruthinessNeverFails(t *testing.T) {
	ctx := context.Background()
	s := dsl.CoercedBool()

	cases := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"0", true}, // non-empty strings are truthy, including "0"
		{"false", true},
		{float64(0), false},
		{float64(1), true},
		{[]any{}, true},
		{map[string]any{}, true},
	}
	for _, c := range cases {
		got, err := s.Parse(ctx, c.in)
		if err != nil {
			t.Fatalf("coerced bool must never fail, got %v for %v", err, c.in)
		}
		if got != c.want {
			t.Fatalf("Parse(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCoercedTime(t *testing.T) {
	ctx := context.Background()
	s := dsl.CoercedTime()

	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	got, err := s.Parse(ctx, now)
	if err != nil || !got.Equal(now) {
		t.Fatalf("time passthrough: %v %v", got, err)
	}

	got, err = s.Parse(ctx, "2024-06-01T12:30:00Z")
	if err != nil || !got.Equal(now) {
		t.Fatalf("rfc3339 parse: %v %v", got, err)
	}

	got, err = s.Parse(ctx, "2024-06-01")
	if err != nil || got.Year() != 2024 || got.Month() != time.June {
		t.Fatalf("date-only parse: %v %v", got, err)
	}

	got, err = s.Parse(ctx, json.Number("1717245000"))
	if err != nil || got.Unix() != 1717245000 {
		t.Fatalf("unix seconds parse: %v %v", got, err)
	}

	for _, bad := range []any{"not a date", nil, true} {
		_, err := s.Parse(ctx, bad)
		iss := mustIssues(t, err)
		if iss[0].Code != zodiac.CodeCoercion {
			t.Fatalf("Parse(%v) code = %q", bad, iss[0].Code)
		}
	}
}
