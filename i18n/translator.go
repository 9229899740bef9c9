package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_field":
			return "フィールドが重複しています"
		case "too_small":
			return "値が小さすぎます"
		case "too_big":
			return "値が大きすぎます"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "too_few_items":
			return "要素数が少なすぎます"
		case "too_many_items":
			return "要素数が多すぎます"
		case "pattern":
			return "パターンに一致しません"
		case "not_finite":
			return "有限の数値ではありません"
		case "invalid_format":
			return "形式が不正です"
		case "invalid_literal":
			return "リテラルに一致しません"
		case "invalid_enum":
			return "許可された値ではありません"
		case "invalid_coercion":
			return "値を変換できません"
		case "union_no_match":
			return "どの候補にも一致しません"
		case "parse_error":
			return "解析エラー"
		case "unsupported_schema":
			return "未対応のスキーマ構文です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if e, g := data["expected"], data["got"]; e != "" && g != "" {
				return "expected " + e + ", received " + g
			}
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "duplicate_field":
			return "duplicate field"
		case "too_small":
			if m := data["min"]; m != "" {
				return "number must be at least " + m
			}
			return "value below minimum"
		case "too_big":
			if m := data["max"]; m != "" {
				return "number must be at most " + m
			}
			return "value above maximum"
		case "too_short":
			if m := data["min"]; m != "" {
				return "string must be at least " + m + " characters"
			}
			return "too short"
		case "too_long":
			if m := data["max"]; m != "" {
				return "string must be at most " + m + " characters"
			}
			return "too long"
		case "too_few_items":
			if m := data["min"]; m != "" {
				return "array must contain at least " + m + " items"
			}
			return "too few items"
		case "too_many_items":
			if m := data["max"]; m != "" {
				return "array must contain at most " + m + " items"
			}
			return "too many items"
		case "pattern":
			return "pattern mismatch"
		case "not_finite":
			return "number must be finite"
		case "invalid_format":
			return "invalid format"
		case "invalid_literal":
			if e := data["expected"]; e != "" {
				return "expected literal " + e
			}
			return "literal mismatch"
		case "invalid_enum":
			if a := data["allowed"]; a != "" {
				return "value must be one of " + a
			}
			return "value not in enum"
		case "invalid_coercion":
			if e, g := data["expected"], data["got"]; e != "" && g != "" {
				return "cannot coerce " + g + " to " + e
			}
			return "cannot coerce value"
		case "union_no_match":
			return "no union alternative matched"
		case "parse_error":
			return "parse error"
		case "unsupported_schema":
			return "unsupported schema construct"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
