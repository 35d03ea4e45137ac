package chronofmt

import (
	"fmt"
	"strings"

	"github.com/chronofmt/chronofmt/internal/formatter"
	"github.com/chronofmt/chronofmt/internal/parser"
)

// FormatStructure is the immutable intermediate representation a format
// specification compiles to before it is lowered into a Formatter and a
// Parser. Structures are built once, by the format-string compiler or the dsl
// package, and shared freely afterwards.
type FormatStructure[T any] interface {
	// fields lists the field specs the structure reads or writes, deduplicated
	// by name.
	fields() []Field[T]
	debugString() string
	sealed()
}

type constantStructure[T any] struct {
	text string
}

type basicStructure[T any] struct {
	directive Directive[T]
}

type concatenatedStructure[T any] struct {
	parts []FormatStructure[T]
}

type signedStructure[T any] struct {
	inner        FormatStructure[T]
	withPlusSign bool
	signs        []*FieldSign[T]
}

type alternativesStructure[T any] struct {
	formats []FormatStructure[T]
}

type optionalStructure[T any] struct {
	onZero string
	inner  FormatStructure[T]
}

type cachedStructure[T any] struct {
	inner     FormatStructure[T]
	formatter formatter.Formatter[T]
	parser    parser.Structure[T]
}

func (constantStructure[T]) sealed()     {}
func (basicStructure[T]) sealed()        {}
func (concatenatedStructure[T]) sealed() {}
func (signedStructure[T]) sealed()       {}
func (alternativesStructure[T]) sealed() {}
func (optionalStructure[T]) sealed()     {}
func (*cachedStructure[T]) sealed()      {}

// Constant returns a structure emitting and matching literal text.
func Constant[T any](text string) FormatStructure[T] {
	return constantStructure[T]{text: text}
}

// Basic returns a structure for a single field directive.
func Basic[T any](d Directive[T]) FormatStructure[T] {
	return basicStructure[T]{directive: d}
}

// Concat concatenates structures. Nested concatenations splice into the
// result, so a concatenation never stores another concatenation; a single
// part is returned as-is.
func Concat[T any](parts ...FormatStructure[T]) FormatStructure[T] {
	flat := make([]FormatStructure[T], 0, len(parts))
	for _, p := range parts {
		if c, ok := p.(concatenatedStructure[T]); ok {
			flat = append(flat, c.parts...)
		} else {
			flat = append(flat, p)
		}
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return concatenatedStructure[T]{parts: flat}
}

// Signed wraps a structure whose fields belong to sign groups; the group sign
// is formatted and parsed once, in front. With withPlusSign a '+' is emitted
// for non-negative values and accepted during parsing.
func Signed[T any](inner FormatStructure[T], withPlusSign bool) (FormatStructure[T], error) {
	var signs []*FieldSign[T]
	seen := map[*FieldSign[T]]bool{}
	for _, f := range inner.fields() {
		if s := f.Sign(); s != nil && !seen[s] {
			seen[s] = true
			signs = append(signs, s)
		}
	}
	if len(signs) == 0 {
		return nil, singleIssue(CodeSignlessGroup, -1, "a sign was applied to %s", inner.debugString())
	}
	return signedStructure[T]{inner: inner, withPlusSign: withPlusSign, signs: signs}, nil
}

// Alternatives returns a structure that parses the first matching candidate
// and formats the least verbose candidate consistent with the set fields. A
// single candidate is returned unwrapped.
func Alternatives[T any](formats ...FormatStructure[T]) FormatStructure[T] {
	if len(formats) == 1 {
		return formats[0]
	}
	return alternativesStructure[T]{formats: formats}
}

// Optional wraps a structure that is replaced by the literal fallback when
// all of its fields are at their default values. Every field of the inner
// structure must have a default.
func Optional[T any](onZero string, inner FormatStructure[T]) (FormatStructure[T], error) {
	for _, f := range inner.fields() {
		if !f.HasDefault() {
			return nil, singleIssue(CodeNoDefault, -1,
				"field %s can not be used in an optional section", f.Name())
		}
	}
	return optionalStructure[T]{onZero: onZero, inner: inner}, nil
}

// Cached eagerly compiles a structure and memoizes the result, so a sub-format
// embedded in many larger formats is lowered only once.
func Cached[T any](inner FormatStructure[T]) (FormatStructure[T], error) {
	f, err := formatterOf(inner)
	if err != nil {
		return nil, err
	}
	p, err := parserOf(inner)
	if err != nil {
		return nil, err
	}
	return &cachedStructure[T]{inner: inner, formatter: f, parser: parser.Simplify(p)}, nil
}

func (s constantStructure[T]) fields() []Field[T] { return nil }
func (s basicStructure[T]) fields() []Field[T]    { return []Field[T]{s.directive.Field()} }
func (s signedStructure[T]) fields() []Field[T]   { return s.inner.fields() }
func (s optionalStructure[T]) fields() []Field[T] { return s.inner.fields() }
func (s *cachedStructure[T]) fields() []Field[T]  { return s.inner.fields() }

func (s concatenatedStructure[T]) fields() []Field[T] {
	return mergeFields(s.parts)
}

func (s alternativesStructure[T]) fields() []Field[T] {
	return mergeFields(s.formats)
}

func mergeFields[T any](parts []FormatStructure[T]) []Field[T] {
	var out []Field[T]
	seen := map[string]bool{}
	for _, p := range parts {
		for _, f := range p.fields() {
			if !seen[f.Name()] {
				seen[f.Name()] = true
				out = append(out, f)
			}
		}
	}
	return out
}

func (s constantStructure[T]) debugString() string { return "'" + s.text + "'" }
func (s basicStructure[T]) debugString() string    { return s.directive.String() }
func (s *cachedStructure[T]) debugString() string  { return s.inner.debugString() }

func (s concatenatedStructure[T]) debugString() string {
	parts := make([]string, len(s.parts))
	for i, p := range s.parts {
		parts[i] = p.debugString()
	}
	return strings.Join(parts, "")
}

func (s signedStructure[T]) debugString() string {
	marker := "-"
	if s.withPlusSign {
		marker = "+"
	}
	return marker + "(" + s.inner.debugString() + ")"
}

func (s alternativesStructure[T]) debugString() string {
	parts := make([]string, len(s.formats))
	for i, p := range s.formats {
		parts[i] = p.debugString()
	}
	return "(" + strings.Join(parts, "|") + ")"
}

func (s optionalStructure[T]) debugString() string {
	return fmt.Sprintf("optional(%q, %s)", s.onZero, s.inner.debugString())
}
