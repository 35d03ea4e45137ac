package formatter_test

import (
	"strings"
	"testing"

	"github.com/chronofmt/chronofmt/internal/formatter"
)

type fields struct {
	value    int64
	negative bool
}

func getValue(f *fields) (int64, error) { return f.value, nil }

func render[T any](t *testing.T, f formatter.Formatter[T], obj T) string {
	t.Helper()
	var sb strings.Builder
	if err := f.Format(obj, &sb, false); err != nil {
		t.Fatalf("Format: %v", err)
	}
	return sb.String()
}

func TestUnsignedIntFormatter_ZeroPadding(t *testing.T) {
	f := formatter.UnsignedIntFormatter[*fields]{Getter: getValue, ZeroPadding: 4}
	if got := render(t, f, &fields{value: 7}); got != "0007" {
		t.Fatalf("got %q, want \"0007\"", got)
	}
	if got := render(t, f, &fields{value: 123456}); got != "123456" {
		t.Fatalf("got %q, want \"123456\"", got)
	}
}

func TestSignedIntFormatter(t *testing.T) {
	f := formatter.SignedIntFormatter[*fields]{Getter: getValue, ZeroPadding: 4, OutputPlusOnWidth: 4}

	if got := render(t, f, &fields{value: 2023}); got != "2023" {
		t.Fatalf("got %q, want \"2023\"", got)
	}
	if got := render(t, f, &fields{value: -2023}); got != "-2023" {
		t.Fatalf("got %q, want \"-2023\"", got)
	}
	// Five digits exceed the width, so the sign becomes mandatory.
	if got := render(t, f, &fields{value: 12345}); got != "+12345" {
		t.Fatalf("got %q, want \"+12345\"", got)
	}

	// An enclosing sign already rendered the minus.
	var sb strings.Builder
	if err := f.Format(&fields{value: -2023}, &sb, true); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if sb.String() != "2023" {
		t.Fatalf("got %q, want \"2023\" with the sign suppressed", sb.String())
	}
}

func TestSignedFormatter_SharedSign(t *testing.T) {
	inner := formatter.SignedIntFormatter[*fields]{Getter: getValue, ZeroPadding: 1}
	f := formatter.SignedFormatter[*fields]{
		Formatter:   inner,
		AllNegative: func(v *fields) bool { return v.negative },
	}

	if got := render(t, f, &fields{value: -15, negative: true}); got != "-15" {
		t.Fatalf("got %q, want \"-15\"", got)
	}
	if got := render(t, f, &fields{value: 15}); got != "15" {
		t.Fatalf("got %q, want \"15\"", got)
	}

	withPlus := formatter.SignedFormatter[*fields]{
		Formatter:    inner,
		AllNegative:  func(v *fields) bool { return v.negative },
		WithPlusSign: true,
	}
	if got := render(t, withPlus, &fields{value: 15}); got != "+15" {
		t.Fatalf("got %q, want \"+15\"", got)
	}
}

func TestConditionalFormatter_FirstMatchWins(t *testing.T) {
	f := formatter.ConditionalFormatter[*fields]{Options: []formatter.ConditionalOption[*fields]{
		{
			Predicate: func(v *fields) bool { return v.value == 0 },
			Formatter: formatter.ConstantFormatter[*fields]{String: "zero"},
		},
		{Formatter: formatter.UnsignedIntFormatter[*fields]{Getter: getValue, ZeroPadding: 1}},
	}}

	if got := render(t, f, &fields{value: 0}); got != "zero" {
		t.Fatalf("got %q, want \"zero\"", got)
	}
	if got := render(t, f, &fields{value: 42}); got != "42" {
		t.Fatalf("got %q, want \"42\"", got)
	}
}

func TestStringTableFormatter(t *testing.T) {
	f := formatter.StringTableFormatter[*fields]{
		Getter:   getValue,
		MinValue: 1,
		Strings:  []string{"one", "two", "three"},
	}
	if got := render(t, f, &fields{value: 2}); got != "two" {
		t.Fatalf("got %q, want \"two\"", got)
	}

	var sb strings.Builder
	if err := f.Format(&fields{value: 9}, &sb, false); err == nil {
		t.Fatal("expected an error for a value outside the table")
	}
}

func TestDecimalFractionFormatter(t *testing.T) {
	cases := []struct {
		name      string
		numerator int64
		digits    int
		min, max  int
		grouping  []int
		want      string
	}{
		{"strips trailing zeros", 500000000, 9, 1, 9, nil, "5"},
		{"keeps min digits", 0, 9, 2, 9, nil, "00"},
		{"caps at max digits", 123456789, 9, 1, 3, nil, "123"},
		{"rounds up to group", 12340, 5, 1, 9, []int{3, 6, 9}, "123400"},
		{"exact group stays", 123, 3, 1, 9, []int{3, 6, 9}, "123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := formatter.DecimalFractionFormatter[*fields]{
				Getter: func(*fields) (int64, int, error) {
					return tc.numerator, tc.digits, nil
				},
				MinDigits: tc.min,
				MaxDigits: tc.max,
				Grouping:  tc.grouping,
			}
			if got := render(t, f, &fields{}); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
