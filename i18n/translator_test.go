package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("unknown_directive", nil); msg == "unknown_directive" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("unknown_directive", nil); msg == "unknown directive" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("nonexistent_code", nil); msg != "nonexistent_code" {
		t.Fatalf("expected the raw code back, got %q", msg)
	}
}

func TestTranslator_EmbedsDetail(t *testing.T) {
	msg := T("unknown_directive", map[string]string{"detail": "xx"})
	if msg != "unknown directive: xx" {
		t.Fatalf("T with detail = %q", msg)
	}
	if msg := T("unknown_directive", map[string]string{}); msg != "unknown directive" {
		t.Fatalf("T without detail = %q", msg)
	}
}
