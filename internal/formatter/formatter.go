// Package formatter holds the executable form a format structure compiles
// into for the output direction: a tree of formatting operations. This package
// is internal and not part of the public API.
package formatter

import (
	"fmt"
	"strings"
)

// Formatter writes one piece of output for the given value. minusNotNeeded is
// set when an enclosing sign handler already accounted for the sign, so
// negative magnitudes must render without their own minus.
type Formatter[T any] interface {
	Format(obj T, sb *strings.Builder, minusNotNeeded bool) error
}

// ConstantFormatter emits fixed text.
type ConstantFormatter[T any] struct {
	String string
}

func (f ConstantFormatter[T]) Format(_ T, sb *strings.Builder, _ bool) error {
	sb.WriteString(f.String)
	return nil
}

// ConcatenatedFormatter runs its parts in order.
type ConcatenatedFormatter[T any] struct {
	Formatters []Formatter[T]
}

func (f ConcatenatedFormatter[T]) Format(obj T, sb *strings.Builder, minusNotNeeded bool) error {
	for _, sub := range f.Formatters {
		if err := sub.Format(obj, sb, minusNotNeeded); err != nil {
			return err
		}
	}
	return nil
}

// ConditionalFormatter picks the first option whose predicate holds. A nil
// predicate always holds.
type ConditionalFormatter[T any] struct {
	Options []ConditionalOption[T]
}

// ConditionalOption pairs a predicate with the formatter it gates.
type ConditionalOption[T any] struct {
	Predicate func(obj T) bool
	Formatter Formatter[T]
}

func (f ConditionalFormatter[T]) Format(obj T, sb *strings.Builder, minusNotNeeded bool) error {
	for _, opt := range f.Options {
		if opt.Predicate == nil || opt.Predicate(obj) {
			return opt.Formatter.Format(obj, sb, minusNotNeeded)
		}
	}
	return fmt.Errorf("no formatter option matched the value")
}

// SignedFormatter renders the shared sign of a field group, then the wrapped
// formatter with sign handling suppressed when the group came out negative.
type SignedFormatter[T any] struct {
	Formatter    Formatter[T]
	AllNegative  func(obj T) bool
	WithPlusSign bool
}

func (f SignedFormatter[T]) Format(obj T, sb *strings.Builder, minusNotNeeded bool) error {
	negative := f.AllNegative(obj)
	if !minusNotNeeded {
		if negative {
			sb.WriteByte('-')
		} else if f.WithPlusSign {
			sb.WriteByte('+')
		}
	}
	return f.Formatter.Format(obj, sb, minusNotNeeded || negative)
}

// UnsignedIntFormatter renders a non-negative field value zero-padded to the
// given width.
type UnsignedIntFormatter[T any] struct {
	Getter      func(obj T) (int64, error)
	ZeroPadding int
}

func (f UnsignedIntFormatter[T]) Format(obj T, sb *strings.Builder, _ bool) error {
	v, err := f.Getter(obj)
	if err != nil {
		return err
	}
	appendPadded(sb, v, f.ZeroPadding)
	return nil
}

// SignedIntFormatter renders a signed field value. When the rendered digit
// count exceeds OutputPlusOnWidth, non-negative values get an explicit '+'
// so the boundary to any preceding numeric text stays parseable.
type SignedIntFormatter[T any] struct {
	Getter            func(obj T) (int64, error)
	ZeroPadding       int
	OutputPlusOnWidth int
}

func (f SignedIntFormatter[T]) Format(obj T, sb *strings.Builder, minusNotNeeded bool) error {
	v, err := f.Getter(obj)
	if err != nil {
		return err
	}
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if v < 0 && !minusNotNeeded {
		sb.WriteByte('-')
	} else if f.OutputPlusOnWidth > 0 && v >= 0 && digitCount(abs) > f.OutputPlusOnWidth {
		sb.WriteByte('+')
	}
	appendPadded(sb, abs, f.ZeroPadding)
	return nil
}

// StringTableFormatter renders a bounded integer field through a name table.
// Index zero of the table corresponds to MinValue.
type StringTableFormatter[T any] struct {
	Getter   func(obj T) (int64, error)
	MinValue int64
	Strings  []string
}

func (f StringTableFormatter[T]) Format(obj T, sb *strings.Builder, _ bool) error {
	v, err := f.Getter(obj)
	if err != nil {
		return err
	}
	i := v - f.MinValue
	if i < 0 || i >= int64(len(f.Strings)) {
		return fmt.Errorf("value %d has no name in the table", v)
	}
	sb.WriteString(f.Strings[i])
	return nil
}

// DecimalFractionFormatter renders a fraction's digits, stripping trailing
// zeros down to MinDigits. When Grouping is non-empty the digit count is
// rounded up to the next listed size, e.g. [3 6 9] for millis/micros/nanos.
type DecimalFractionFormatter[T any] struct {
	Getter    func(obj T) (numerator int64, digits int, err error)
	MinDigits int
	MaxDigits int
	Grouping  []int
}

func (f DecimalFractionFormatter[T]) Format(obj T, sb *strings.Builder, _ bool) error {
	numerator, digits, err := f.Getter(obj)
	if err != nil {
		return err
	}
	text := fmt.Sprintf("%0*d", digits, numerator)
	if len(text) > f.MaxDigits {
		text = text[:f.MaxDigits]
	}
	n := len(text)
	for n > f.MinDigits && text[n-1] == '0' {
		n--
	}
	for _, g := range f.Grouping {
		if n <= g {
			n = g
			break
		}
	}
	if n > len(text) {
		text += strings.Repeat("0", n-len(text))
		n = len(text)
	}
	sb.WriteString(text[:n])
	return nil
}

func appendPadded(sb *strings.Builder, v int64, width int) {
	fmt.Fprintf(sb, "%0*d", width, v)
}

func digitCount(v int64) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}
