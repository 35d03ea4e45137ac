package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message; the "detail" key
// carries the specifics (the offending directive, field name, and so on).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.base(code)
	if detail := data["detail"]; detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (t dictTranslator) base(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "unknown_directive":
			return "未知のディレクティブです"
		case "unterminated_quote":
			return "リテラルが閉じられていません"
		case "unterminated_group":
			return "グループが閉じられていません"
		case "reserved_char":
			return "予約文字です"
		case "dangling_sign":
			return "符号の後にディレクティブがありません"
		case "duplicate_sign":
			return "符号が重複しています"
		case "unknown_sub_builder":
			return "未知のサブビルダーです"
		case "unexpected_char":
			return "予期しない文字です"
		case "signless_group":
			return "符号グループに属するフィールドがありません"
		case "no_default":
			return "デフォルト値がありません"
		case "bad_alternatives":
			return "整形できない選択肢の組み合わせです"
		case "parse_error":
			return "解析エラー"
		case "conflict":
			return "フィールドの値が矛盾しています"
		case "field_unset":
			return "フィールドが未設定です"
		case "format_invalid":
			return "整形に失敗しました"
		}
	default: // "en"
		switch code {
		case "unknown_directive":
			return "unknown directive"
		case "unterminated_quote":
			return "unterminated quoted literal"
		case "unterminated_group":
			return "unterminated group"
		case "reserved_char":
			return "reserved character"
		case "dangling_sign":
			return "sign marker without a directive"
		case "duplicate_sign":
			return "duplicate sign marker"
		case "unknown_sub_builder":
			return "unknown sub-builder"
		case "unexpected_char":
			return "unexpected character"
		case "signless_group":
			return "no field of the group carries a sign"
		case "no_default":
			return "field has no default value"
		case "bad_alternatives":
			return "alternatives can not be formatted"
		case "parse_error":
			return "parse error"
		case "conflict":
			return "conflicting field values"
		case "field_unset":
			return "field is not set"
		case "format_invalid":
			return "formatting failed"
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
