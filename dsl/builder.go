// Package dsl provides a programmatic builder equivalent to the format-string
// mini-language.
//
// Entry points
//   - New[T](): create a builder; chain Literal/Add/Optional/Alternatives/
//     WithSharedSign/FormatString, then Build()/MustBuild().
//   - Errors stick to the builder and are reported once by Build, so chains
//     stay readable.
package dsl

import (
	chronofmt "github.com/chronofmt/chronofmt"
)

// Builder assembles a format structure piece by piece. The zero value is not
// usable; construct with New.
type Builder[T any] struct {
	parts []chronofmt.FormatStructure[T]
	err   error
}

// New returns an empty builder.
func New[T any]() *Builder[T] {
	return &Builder[T]{}
}

func (b *Builder[T]) fail(err error) *Builder[T] {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Literal appends fixed text.
func (b *Builder[T]) Literal(text string) *Builder[T] {
	if b.err != nil {
		return b
	}
	b.parts = append(b.parts, chronofmt.Constant[T](text))
	return b
}

// Char appends a single literal character.
func (b *Builder[T]) Char(c rune) *Builder[T] {
	return b.Literal(string(c))
}

// Add appends an already-built structure, e.g. a directive or the cached
// structure of an embedded format.
func (b *Builder[T]) Add(s chronofmt.FormatStructure[T]) *Builder[T] {
	if b.err != nil {
		return b
	}
	b.parts = append(b.parts, s)
	return b
}

// Directive appends a single field directive.
func (b *Builder[T]) Directive(d chronofmt.Directive[T]) *Builder[T] {
	return b.Add(chronofmt.Basic(d))
}

// FormatString compiles a format-string span against the registry and
// appends the result.
func (b *Builder[T]) FormatString(r *chronofmt.Registry[T], format string) *Builder[T] {
	if b.err != nil {
		return b
	}
	s, err := chronofmt.ParseFormatString(r, format)
	if err != nil {
		return b.fail(err)
	}
	b.parts = append(b.parts, s)
	return b
}

// Optional appends a section that formats as onZero while all of its fields
// are at their defaults, and assigns those defaults when parsing matches
// onZero instead of the section.
func (b *Builder[T]) Optional(onZero string, section func(*Builder[T])) *Builder[T] {
	if b.err != nil {
		return b
	}
	inner, err := buildSection(section)
	if err != nil {
		return b.fail(err)
	}
	s, err := chronofmt.Optional(onZero, inner)
	if err != nil {
		return b.fail(err)
	}
	b.parts = append(b.parts, s)
	return b
}

// Alternatives appends a choice between candidate sections, declared least
// verbose first. Parsing tries them in order; formatting picks the least
// verbose candidate consistent with the fields that are set.
func (b *Builder[T]) Alternatives(sections ...func(*Builder[T])) *Builder[T] {
	if b.err != nil {
		return b
	}
	candidates := make([]chronofmt.FormatStructure[T], len(sections))
	for i, section := range sections {
		inner, err := buildSection(section)
		if err != nil {
			return b.fail(err)
		}
		candidates[i] = inner
	}
	b.parts = append(b.parts, chronofmt.Alternatives(candidates...))
	return b
}

// WithSharedSign appends a section whose sign-grouped fields share one
// leading sign. With plus=true a '+' is printed for non-negative values.
func (b *Builder[T]) WithSharedSign(plus bool, section func(*Builder[T])) *Builder[T] {
	if b.err != nil {
		return b
	}
	inner, err := buildSection(section)
	if err != nil {
		return b.fail(err)
	}
	s, err := chronofmt.Signed(inner, plus)
	if err != nil {
		return b.fail(err)
	}
	b.parts = append(b.parts, s)
	return b
}

// Build returns the assembled structure or the first error the chain hit.
func (b *Builder[T]) Build() (chronofmt.FormatStructure[T], error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.parts) == 0 {
		return chronofmt.Constant[T](""), nil
	}
	return chronofmt.Concat(b.parts...), nil
}

// MustBuild is Build for statically-known specifications; it panics on error.
func (b *Builder[T]) MustBuild() chronofmt.FormatStructure[T] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func buildSection[T any](section func(*Builder[T])) (chronofmt.FormatStructure[T], error) {
	sub := New[T]()
	section(sub)
	return sub.Build()
}
