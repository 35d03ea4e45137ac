package chronofmt_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	chronofmt "github.com/chronofmt/chronofmt"
	"github.com/chronofmt/chronofmt/datetime"
)

func iptr(v int) *int { return &v }

func mustCompileDate(t *testing.T, format string) *chronofmt.Format[*datetime.DateFields] {
	t.Helper()
	f, err := chronofmt.Compile(datetime.DateRegistry(), format, datetime.NewDateFields)
	if err != nil {
		t.Fatalf("Compile(%q): %v", format, err)
	}
	return f
}

func TestCompile_Errors(t *testing.T) {
	cases := []struct {
		name   string
		format string
		code   string
		offset int
	}{
		{"unknown directive", "yyyy-xx", "unknown_directive", 5},
		{"unterminated quote", "yyyy'-MM", "unterminated_quote", 4},
		{"unterminated group", "yyyy(MM", "unterminated_group", 4},
		{"reserved char", "yyyy#MM", "reserved_char", 4},
		{"unquoted digit", "yyyy12", "unexpected_char", 4},
		{"unbalanced close", "dd)", "unexpected_char", 2},
		{"dangling sign", "'P'-", "dangling_sign", 3},
		{"sign before literal", "-'P'dd", "dangling_sign", 0},
		{"duplicate sign", "+-yyyy", "duplicate_sign", 1},
		{"unknown sub-builder", "foo<dd>", "unknown_sub_builder", 0},
		{"sign on signless field", "-dd", "signless_group", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := chronofmt.Compile(datetime.DateRegistry(), tc.format, datetime.NewDateFields)
			if err == nil {
				t.Fatalf("Compile(%q) unexpectedly succeeded", tc.format)
			}
			iss, ok := chronofmt.AsIssues(err)
			if !ok || len(iss) == 0 {
				t.Fatalf("Compile(%q): expected Issues, got %v", tc.format, err)
			}
			if iss[0].Code != tc.code {
				t.Fatalf("Compile(%q): code = %q, want %q (%v)", tc.format, iss[0].Code, tc.code, err)
			}
			if iss[0].Offset != tc.offset {
				t.Fatalf("Compile(%q): offset = %d, want %d (%v)", tc.format, iss[0].Offset, tc.offset, err)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	f := mustCompileDate(t, "yyyy'-'MM'-'dd")

	cases := []struct {
		fields *datetime.DateFields
		text   string
	}{
		{&datetime.DateFields{Year: iptr(2023), MonthNumber: iptr(1), DayOfMonth: iptr(2)}, "2023-01-02"},
		{&datetime.DateFields{Year: iptr(-2023), MonthNumber: iptr(12), DayOfMonth: iptr(31)}, "-2023-12-31"},
		{&datetime.DateFields{Year: iptr(12345), MonthNumber: iptr(6), DayOfMonth: iptr(1)}, "+12345-06-01"},
	}
	for _, tc := range cases {
		got, err := f.Format(tc.fields)
		if err != nil {
			t.Fatalf("Format(%+v): %v", tc.fields, err)
		}
		if got != tc.text {
			t.Fatalf("Format(%+v) = %q, want %q", tc.fields, got, tc.text)
		}
		back, err := f.Parse(tc.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.text, err)
		}
		if diff := cmp.Diff(tc.fields, back); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.text, diff)
		}
	}
}

func TestFormat_UnsetFieldFails(t *testing.T) {
	f := mustCompileDate(t, "yyyy'-'MM'-'dd")
	_, err := f.Format(&datetime.DateFields{Year: iptr(2023), MonthNumber: iptr(1)})
	iss, ok := chronofmt.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != "field_unset" {
		t.Fatalf("expected field_unset, got %v", err)
	}
	if !strings.Contains(iss[0].Message, "dayOfMonth") {
		t.Fatalf("message %q does not name the missing field", iss[0].Message)
	}
}

func TestParse_RepeatedFieldConflict(t *testing.T) {
	f := mustCompileDate(t, "dd' ('dd')'")

	got, err := f.Parse("14 (14)")
	if err != nil {
		t.Fatalf("Parse(\"14 (14)\"): %v", err)
	}
	if got.DayOfMonth == nil || *got.DayOfMonth != 14 {
		t.Fatalf("Parse(\"14 (14)\") day = %v, want 14", got.DayOfMonth)
	}

	_, err = f.Parse("14 (02)")
	iss, ok := chronofmt.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != "conflict" {
		t.Fatalf("expected conflict, got %v", err)
	}
	if iss[0].Offset != 4 {
		t.Fatalf("conflict offset = %d, want 4", iss[0].Offset)
	}
}

func TestParse_AdjacentNumericFields(t *testing.T) {
	f := mustCompileDate(t, "Md")

	cases := []struct {
		input      string
		month, day int
	}{
		// The month takes as many digits as it can while both fields stay
		// in range.
		{"115", 11, 5},
		{"131", 1, 31},
		{"1231", 12, 31},
		{"229", 2, 29},
	}
	for _, tc := range cases {
		got, err := f.Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.input, err)
		}
		if *got.MonthNumber != tc.month || *got.DayOfMonth != tc.day {
			t.Fatalf("Parse(%q) = month %d day %d, want %d %d",
				tc.input, *got.MonthNumber, *got.DayOfMonth, tc.month, tc.day)
		}
	}

	if _, err := f.Parse("1"); err == nil {
		t.Fatal("Parse(\"1\") unexpectedly succeeded with only one digit for two fields")
	}
}

func TestParse_ErrorCarriesFurthestOffset(t *testing.T) {
	f := mustCompileDate(t, "yyyy'-'MM'-'dd")

	cases := []struct {
		input  string
		offset int
	}{
		{"2023x01-02", 4},
		{"2023-1-02", 5},
		{"2023-01-02x", 10},
	}
	for _, tc := range cases {
		_, err := f.Parse(tc.input)
		iss, ok := chronofmt.AsIssues(err)
		if !ok || len(iss) == 0 || iss[0].Code != "parse_error" {
			t.Fatalf("Parse(%q): expected parse_error, got %v", tc.input, err)
		}
		if iss[0].Offset != tc.offset {
			t.Fatalf("Parse(%q): offset = %d, want %d (%v)", tc.input, iss[0].Offset, tc.offset, err)
		}
	}
}

func TestParse_OutOfRangeValue(t *testing.T) {
	f := mustCompileDate(t, "yyyy'-'MM'-'dd")
	_, err := f.Parse("2023-13-02")
	iss, ok := chronofmt.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != "parse_error" {
		t.Fatalf("expected parse_error for month 13, got %v", err)
	}
}

func TestFormat_String(t *testing.T) {
	f := mustCompileDate(t, "yyyy'-'MM'-'dd")
	if got := f.String(); got != "yyyy'-'MM'-'dd" {
		t.Fatalf("String() = %q", got)
	}
}

func TestFormat_AppendFormat(t *testing.T) {
	f := mustCompileDate(t, "yyyy'-'MM'-'dd")
	var sb strings.Builder
	sb.WriteString("date=")
	if err := f.AppendFormat(&datetime.DateFields{Year: iptr(2020), MonthNumber: iptr(2), DayOfMonth: iptr(29)}, &sb); err != nil {
		t.Fatalf("AppendFormat: %v", err)
	}
	if got := sb.String(); got != "date=2020-02-29" {
		t.Fatalf("AppendFormat result = %q", got)
	}
}

func TestParse_GroupAlternatives(t *testing.T) {
	// A group with alternatives parses whichever branch matches.
	f := mustCompileDate(t, "(yyyy'-'MM'-'dd|dd'.'MM'.'yyyy)")

	want := &datetime.DateFields{Year: iptr(2023), MonthNumber: iptr(1), DayOfMonth: iptr(2)}
	for _, input := range []string{"2023-01-02", "02.01.2023"} {
		got, err := f.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}
}

func TestNamedMonthDirective(t *testing.T) {
	f := mustCompileDate(t, "MMM' 'dd")
	got, err := f.Format(&datetime.DateFields{MonthNumber: iptr(3), DayOfMonth: iptr(8)})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "Mar 08" {
		t.Fatalf("Format = %q, want \"Mar 08\"", got)
	}
	back, err := f.Parse("Mar 08")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *back.MonthNumber != 3 || *back.DayOfMonth != 8 {
		t.Fatalf("Parse = month %d day %d", *back.MonthNumber, *back.DayOfMonth)
	}
}

func TestReducedYearDirective(t *testing.T) {
	f := mustCompileDate(t, "yy'-'MM'-'dd")

	cases := []struct {
		year int
		text string
	}{
		{2023, "23-01-02"},
		{2000, "00-01-02"},
		{1999, "+1999-01-02"},
		{-2023, "-2023-01-02"},
	}
	for _, tc := range cases {
		fields := &datetime.DateFields{Year: iptr(tc.year), MonthNumber: iptr(1), DayOfMonth: iptr(2)}
		got, err := f.Format(fields)
		if err != nil {
			t.Fatalf("Format(year %d): %v", tc.year, err)
		}
		if got != tc.text {
			t.Fatalf("Format(year %d) = %q, want %q", tc.year, got, tc.text)
		}
		back, err := f.Parse(tc.text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.text, err)
		}
		if *back.Year != tc.year {
			t.Fatalf("Parse(%q) year = %d, want %d", tc.text, *back.Year, tc.year)
		}
	}
}
