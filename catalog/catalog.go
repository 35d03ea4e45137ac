// Package catalog loads named format patterns from JSON or YAML documents
// and compiles them against a directive registry, so services can ship their
// date-time formats as configuration instead of code.
package catalog

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	chronofmt "github.com/chronofmt/chronofmt"
)

// Document is the on-disk shape of a format catalog.
type Document struct {
	Formats []Entry `json:"formats" yaml:"formats"`
}

// Entry names one format pattern.
type Entry struct {
	Name        string `json:"name" yaml:"name"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ParseJSON decodes a catalog document from JSON.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("catalog: decode json: %w", err)
	}
	return doc, nil
}

// ParseYAML decodes a catalog document from YAML.
func ParseYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return doc, nil
}

// Catalog holds compiled formats looked up by name. All formats of one
// catalog share a field container type and a directive registry.
type Catalog[T chronofmt.Copyable[T]] struct {
	formats map[string]*chronofmt.Format[T]
}

// Compile compiles every entry of the document against the registry. The
// returned error names the offending entry and wraps the compile issues, so
// errors.As still reaches them.
func Compile[T chronofmt.Copyable[T]](r *chronofmt.Registry[T], fresh func() T, doc Document) (*Catalog[T], error) {
	formats := make(map[string]*chronofmt.Format[T], len(doc.Formats))
	for _, e := range doc.Formats {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog: entry with pattern %q has no name", e.Pattern)
		}
		if _, dup := formats[e.Name]; dup {
			return nil, fmt.Errorf("catalog: format %q is defined twice", e.Name)
		}
		f, err := chronofmt.Compile(r, e.Pattern, fresh)
		if err != nil {
			return nil, fmt.Errorf("catalog: format %q: %w", e.Name, err)
		}
		formats[e.Name] = f
	}
	return &Catalog[T]{formats: formats}, nil
}

// CompileJSON decodes a JSON document and compiles it.
func CompileJSON[T chronofmt.Copyable[T]](r *chronofmt.Registry[T], fresh func() T, data []byte) (*Catalog[T], error) {
	doc, err := ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return Compile(r, fresh, doc)
}

// CompileYAML decodes a YAML document and compiles it.
func CompileYAML[T chronofmt.Copyable[T]](r *chronofmt.Registry[T], fresh func() T, data []byte) (*Catalog[T], error) {
	doc, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return Compile(r, fresh, doc)
}

// Get returns the named format.
func (c *Catalog[T]) Get(name string) (*chronofmt.Format[T], bool) {
	f, ok := c.formats[name]
	return f, ok
}

// Names lists the catalog's format names in sorted order.
func (c *Catalog[T]) Names() []string {
	names := make([]string, 0, len(c.formats))
	for name := range c.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of formats in the catalog.
func (c *Catalog[T]) Len() int { return len(c.formats) }
