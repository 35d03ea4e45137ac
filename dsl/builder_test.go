package dsl_test

import (
	"testing"

	chronofmt "github.com/chronofmt/chronofmt"
	"github.com/chronofmt/chronofmt/datetime"
	"github.com/chronofmt/chronofmt/dsl"
)

func iptr(v int) *int { return &v }

func TestBuilder_LiteralAndFormatString(t *testing.T) {
	s, err := dsl.New[*datetime.DateFields]().
		FormatString(datetime.DateRegistry(), "yyyy").
		Literal("/").
		FormatString(datetime.DateRegistry(), "MM").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f, err := chronofmt.New(s, datetime.NewDateFields)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := f.Format(&datetime.DateFields{Year: iptr(2023), MonthNumber: iptr(4)})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "2023/04" {
		t.Fatalf("Format = %q, want \"2023/04\"", got)
	}

	back, err := f.Parse("2023/04")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *back.Year != 2023 || *back.MonthNumber != 4 {
		t.Fatalf("Parse = year %d month %d", *back.Year, *back.MonthNumber)
	}
}

func TestBuilder_Optional(t *testing.T) {
	s, err := dsl.New[*datetime.TimeFields]().
		FormatString(datetime.TimeRegistry(), "HH':'mm").
		Optional("", func(b *dsl.Builder[*datetime.TimeFields]) {
			b.Literal(":").FormatString(datetime.TimeRegistry(), "ss")
		}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f, err := chronofmt.New(s, datetime.NewTimeFields)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := f.Format(&datetime.TimeFields{Hour: iptr(8), Minute: iptr(30), Second: iptr(0)})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "08:30" {
		t.Fatalf("Format = %q, want \"08:30\" with the zero second omitted", got)
	}

	back, err := f.Parse("08:30:45")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *back.Second != 45 {
		t.Fatalf("second = %d, want 45", *back.Second)
	}
}

func TestBuilder_OptionalRequiresDefaults(t *testing.T) {
	_, err := dsl.New[*datetime.DateFields]().
		Optional("", func(b *dsl.Builder[*datetime.DateFields]) {
			b.FormatString(datetime.DateRegistry(), "yyyy")
		}).
		Build()
	iss, ok := chronofmt.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != "no_default" {
		t.Fatalf("expected no_default, got %v", err)
	}
}

func TestBuilder_Alternatives(t *testing.T) {
	s, err := dsl.New[*datetime.UtcOffsetFields]().
		Alternatives(
			func(b *dsl.Builder[*datetime.UtcOffsetFields]) { b.Literal("Z") },
			func(b *dsl.Builder[*datetime.UtcOffsetFields]) {
				b.WithSharedSign(true, func(b *dsl.Builder[*datetime.UtcOffsetFields]) {
					b.FormatString(datetime.UtcOffsetRegistry(), "hh':'mm")
				})
			},
		).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f, err := chronofmt.New(s, datetime.NewUtcOffsetFields)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	zero := datetime.NewUtcOffsetFields()
	zero.SetTotalSeconds(0)
	got, err := f.Format(zero)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "Z" {
		t.Fatalf("Format(0) = %q, want \"Z\"", got)
	}

	back, err := f.Parse("-08:00")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if back.TotalSeconds() != -8*3600 {
		t.Fatalf("TotalSeconds = %d, want %d", back.TotalSeconds(), -8*3600)
	}
}

func TestBuilder_ErrorSticks(t *testing.T) {
	b := dsl.New[*datetime.DateFields]().
		FormatString(datetime.DateRegistry(), "xx").
		Literal("ignored").
		FormatString(datetime.DateRegistry(), "yyyy")
	_, err := b.Build()
	iss, ok := chronofmt.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != "unknown_directive" {
		t.Fatalf("expected the first error to stick, got %v", err)
	}
}

func TestBuilder_EmptyBuildsEmptyConstant(t *testing.T) {
	s, err := dsl.New[*datetime.DateFields]().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f, err := chronofmt.New(s, datetime.NewDateFields)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := f.Format(datetime.NewDateFields())
	if err != nil || got != "" {
		t.Fatalf("Format = %q, %v; want empty", got, err)
	}
}
