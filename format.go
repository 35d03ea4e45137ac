package chronofmt

import (
	"errors"
	"strings"

	"github.com/chronofmt/chronofmt/i18n"
	"github.com/chronofmt/chronofmt/internal/formatter"
	"github.com/chronofmt/chronofmt/internal/parser"
)

// Format is a compiled pair of a formatter and a parser derived from one
// format structure. Both forms are compiled when the Format is constructed,
// so malformed specifications surface immediately and never at format or
// parse call time. A Format is immutable and safe for concurrent use; the
// accumulator produced by fresh is exclusively owned by a single Parse call.
type Format[T Copyable[T]] struct {
	structure FormatStructure[T]
	source    string
	formatter formatter.Formatter[T]
	parser    parser.Structure[T]
	fresh     func() T
}

// New compiles a format structure. fresh must return an empty accumulator for
// Parse to populate.
func New[T Copyable[T]](structure FormatStructure[T], fresh func() T) (*Format[T], error) {
	f, err := formatterOf(structure)
	if err != nil {
		return nil, err
	}
	p, err := parserOf(structure)
	if err != nil {
		return nil, err
	}
	return &Format[T]{
		structure: structure,
		formatter: f,
		parser:    parser.Simplify(p),
		fresh:     fresh,
	}, nil
}

// Compile parses a format string against a directive registry and compiles
// the result.
func Compile[T Copyable[T]](r *Registry[T], format string, fresh func() T) (*Format[T], error) {
	structure, err := ParseFormatString(r, format)
	if err != nil {
		return nil, err
	}
	f, err := New(structure, fresh)
	if err != nil {
		return nil, err
	}
	f.source = format
	return f, nil
}

// Structure returns the underlying format structure, e.g. for embedding this
// format into a larger one.
func (f *Format[T]) Structure() FormatStructure[T] { return f.structure }

// String returns the format string this format was compiled from, or a
// builder-style rendition when it was assembled programmatically. Diagnostic
// only; the output of a programmatic build is not guaranteed to recompile.
func (f *Format[T]) String() string {
	if f.source != "" {
		return f.source
	}
	return f.structure.debugString()
}

// Format renders the value. A referenced field with no value set is reported
// as CodeFieldUnset rather than emitting partial output.
func (f *Format[T]) Format(obj T) (string, error) {
	var sb strings.Builder
	if err := f.formatter.Format(obj, &sb, false); err != nil {
		if _, ok := AsIssues(err); ok {
			return "", err
		}
		return "", Issues{{
			Code:    CodeFormatInvalid,
			Offset:  -1,
			Message: i18n.T(CodeFormatInvalid, map[string]string{"detail": err.Error()}),
			Cause:   err,
		}}
	}
	return sb.String(), nil
}

// AppendFormat renders the value into the builder.
func (f *Format[T]) AppendFormat(obj T, sb *strings.Builder) error {
	return f.formatter.Format(obj, sb, false)
}

// Parse consumes the whole input into a fresh accumulator. On failure the
// reported issue carries the furthest input offset any alternative reached;
// partial writes from abandoned alternatives never leak into the result.
func (f *Format[T]) Parse(input string) (T, error) {
	v, err := parser.Parse(f.parser, input, f.fresh())
	if err != nil {
		var zero T
		code := CodeParseError
		var conflict *conflictError
		if errors.As(err, &conflict) {
			code = CodeConflict
		}
		offset := -1
		var perr *parser.Error
		if errors.As(err, &perr) {
			offset = perr.Position
		}
		return zero, Issues{{
			Code:    code,
			Offset:  offset,
			Message: i18n.T(code, map[string]string{"detail": err.Error()}),
			Cause:   err,
		}}
	}
	return v, nil
}
