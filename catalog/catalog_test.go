package catalog_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	chronofmt "github.com/chronofmt/chronofmt"
	"github.com/chronofmt/chronofmt/catalog"
	"github.com/chronofmt/chronofmt/datetime"
)

const yamlDoc = `
formats:
  - name: iso
    pattern: yyyy'-'MM'-'dd
    description: ISO 8601 calendar date
  - name: european
    pattern: dd'.'MM'.'yyyy
`

const jsonDoc = `{
  "formats": [
    {"name": "iso", "pattern": "yyyy'-'MM'-'dd"},
    {"name": "us", "pattern": "MM'/'dd'/'yyyy"}
  ]
}`

func TestCompileYAML(t *testing.T) {
	c, err := catalog.CompileYAML(datetime.DateRegistry(), datetime.NewDateFields, []byte(yamlDoc))
	if err != nil {
		t.Fatalf("CompileYAML: %v", err)
	}
	if diff := cmp.Diff([]string{"european", "iso"}, c.Names()); diff != "" {
		t.Fatalf("Names mismatch (-want +got):\n%s", diff)
	}

	f, ok := c.Get("european")
	if !ok {
		t.Fatal("Get(\"european\") not found")
	}
	got, err := f.Parse("02.01.2023")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *got.Year != 2023 || *got.MonthNumber != 1 || *got.DayOfMonth != 2 {
		t.Fatalf("Parse = %d-%d-%d", *got.Year, *got.MonthNumber, *got.DayOfMonth)
	}
}

func TestCompileJSON(t *testing.T) {
	c, err := catalog.CompileJSON(datetime.DateRegistry(), datetime.NewDateFields, []byte(jsonDoc))
	if err != nil {
		t.Fatalf("CompileJSON: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	f, ok := c.Get("us")
	if !ok {
		t.Fatal("Get(\"us\") not found")
	}
	year, month, day := 2023, 1, 2
	got, err := f.Format(&datetime.DateFields{Year: &year, MonthNumber: &month, DayOfMonth: &day})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "01/02/2023" {
		t.Fatalf("Format = %q, want \"01/02/2023\"", got)
	}
}

func TestCompile_RejectsDuplicates(t *testing.T) {
	doc := catalog.Document{Formats: []catalog.Entry{
		{Name: "a", Pattern: "yyyy"},
		{Name: "a", Pattern: "MM"},
	}}
	_, err := catalog.Compile(datetime.DateRegistry(), datetime.NewDateFields, doc)
	if err == nil || !strings.Contains(err.Error(), "twice") {
		t.Fatalf("expected a duplicate error, got %v", err)
	}
}

func TestCompile_RejectsUnnamedEntries(t *testing.T) {
	doc := catalog.Document{Formats: []catalog.Entry{{Pattern: "yyyy"}}}
	_, err := catalog.Compile(datetime.DateRegistry(), datetime.NewDateFields, doc)
	if err == nil || !strings.Contains(err.Error(), "no name") {
		t.Fatalf("expected an unnamed-entry error, got %v", err)
	}
}

func TestCompile_WrapsPatternIssues(t *testing.T) {
	doc := catalog.Document{Formats: []catalog.Entry{{Name: "bad", Pattern: "xx"}}}
	_, err := catalog.Compile(datetime.DateRegistry(), datetime.NewDateFields, doc)
	if err == nil {
		t.Fatal("expected an error for an unknown directive")
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Fatalf("error does not name the entry: %v", err)
	}
	iss, ok := chronofmt.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != "unknown_directive" {
		t.Fatalf("expected wrapped Issues, got %v", err)
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	if _, err := catalog.ParseYAML([]byte("formats: [")); err == nil {
		t.Fatal("expected a YAML error")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := catalog.ParseJSON([]byte(`{"formats": `)); err == nil {
		t.Fatal("expected a JSON error")
	}
}
