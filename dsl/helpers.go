package dsl

import (
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	zodiac "github.com/unkai/zodiac"
	"github.com/unkai/zodiac/i18n"
)

// kindOf names the JSON-like runtime kind of v for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case time.Time:
		return "date"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// toFloat converts any numeric runtime kind (including json.Number) to
// float64. The second return is false for non-numeric values.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// formatNumber renders a numeric value in its canonical textual form.
func formatNumber(v any) (string, bool) {
	switch t := v.(type) {
	case json.Number:
		return t.String(), true
	case float64:
		return formatFloat(t), true
	case float32:
		return formatFloat(float64(t)), true
	case int, int8, int16, int32, int64:
		f, _ := toFloat(t)
		return strconv.FormatInt(int64(f), 10), true
	case uint, uint8, uint16, uint32, uint64:
		f, _ := toFloat(t)
		return strconv.FormatUint(uint64(f), 10), true
	default:
		return "", false
	}
}

// formatFloat mirrors the canonical JSON-like float formatting.
func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func invalidType(expected string, v any) zodiac.Issues {
	got := kindOf(v)
	return zodiac.Issues{{
		Path:    "/",
		Code:    zodiac.CodeInvalidType,
		Message: i18n.T(zodiac.CodeInvalidType, map[string]string{"expected": expected, "got": got}),
		Params:  map[string]any{"expected": expected, "got": got},
	}}
}

func cannotCoerce(target string, v any) zodiac.Issues {
	got := kindOf(v)
	return zodiac.Issues{{
		Path:    "/",
		Code:    zodiac.CodeCoercion,
		Message: i18n.T(zodiac.CodeCoercion, map[string]string{"expected": target, "got": got}),
		Params:  map[string]any{"expected": target, "got": got},
	}}
}
