package chronofmt

import (
	"fmt"
	"math"

	"github.com/chronofmt/chronofmt/internal/formatter"
	"github.com/chronofmt/chronofmt/internal/parser"
)

// Directive pairs one field with the logic to render and consume its textual
// form. Directives are produced by the constructors in this package and
// referenced from directive tables; the set is closed.
type Directive[T any] interface {
	Field() Field[T]
	formatterOp() formatter.Formatter[T]
	parserStructure() parser.Structure[T]
	fmt.Stringer
}

// UnsignedIntDirective renders a bounded non-negative field zero-padded to at
// least minDigits and parses between minDigits and the field's maximum digit
// width.
func UnsignedIntDirective[T any](field *UnsignedFieldSpec[T], minDigits int) Directive[T] {
	maxDigits := field.MaxDigits()
	if minDigits > maxDigits {
		maxDigits = minDigits
	}
	return unsignedDirective[T]{field: field, minDigits: minDigits, maxDigits: maxDigits}
}

type unsignedDirective[T any] struct {
	field     *UnsignedFieldSpec[T]
	minDigits int
	maxDigits int
}

func (d unsignedDirective[T]) Field() Field[T] { return d.field }

func (d unsignedDirective[T]) String() string {
	return fmt.Sprintf("%s(%d)", d.field.Name(), d.minDigits)
}

func (d unsignedDirective[T]) formatterOp() formatter.Formatter[T] {
	return formatter.UnsignedIntFormatter[T]{
		Getter:      intGetter(d.field.FieldSpec),
		ZeroPadding: d.minDigits,
	}
}

func (d unsignedDirective[T]) parserStructure() parser.Structure[T] {
	return parser.Operations[T](parser.NumberSpanParserOperation[T]{
		Consumers: []parser.NumberConsumer[T]{parser.UnsignedIntConsumer[T]{
			Min:      d.minDigits,
			Max:      d.maxDigits,
			MinValue: int64(d.field.MinValue()),
			MaxValue: int64(d.field.MaxValue()),
			Setter:   intSetter(d.field.FieldSpec, false),
			Name:     d.field.Name(),
		}},
	})
}

// SignedIntDirective renders a signed field zero-padded to at least minDigits.
// With outputPlusOnExceededWidth, non-negative values wider than minDigits get
// an explicit '+'. Parsing accepts an optional sign per occurrence; an
// enclosing shared-sign group is handled separately by the signed structure.
func SignedIntDirective[T any](field *SignedFieldSpec[T], minDigits int, outputPlusOnExceededWidth bool) Directive[T] {
	return signedDirective[T]{field: field, minDigits: minDigits, outputPlus: outputPlusOnExceededWidth}
}

type signedDirective[T any] struct {
	field      *SignedFieldSpec[T]
	minDigits  int
	outputPlus bool
}

func (d signedDirective[T]) Field() Field[T] { return d.field }

func (d signedDirective[T]) String() string {
	return fmt.Sprintf("%s(%d)", d.field.Name(), d.minDigits)
}

func (d signedDirective[T]) formatterOp() formatter.Formatter[T] {
	plusWidth := 0
	if d.outputPlus {
		plusWidth = d.minDigits
	}
	return formatter.SignedIntFormatter[T]{
		Getter:            intGetter(d.field.FieldSpec),
		ZeroPadding:       d.minDigits,
		OutputPlusOnWidth: plusWidth,
	}
}

func (d signedDirective[T]) parserStructure() parser.Structure[T] {
	maxDigits := parser.Unbounded
	if d.field.MaxDigits() != nil {
		maxDigits = *d.field.MaxDigits()
		if maxDigits < d.minDigits {
			maxDigits = d.minDigits
		}
	}
	maxValue := int64(math.MaxInt64)
	if d.field.MaxAbsValue() != nil {
		maxValue = int64(*d.field.MaxAbsValue())
	}
	magnitude := func(negative bool) parser.Structure[T] {
		return parser.Operations[T](parser.NumberSpanParserOperation[T]{
			Consumers: []parser.NumberConsumer[T]{parser.UnsignedIntConsumer[T]{
				Min:      d.minDigits,
				Max:      maxDigits,
				MinValue: 0,
				MaxValue: maxValue,
				Setter:   intSetter(d.field.FieldSpec, negative),
				Name:     d.field.Name(),
			}},
		})
	}
	return parser.Fork(
		parser.Operations[T](parser.PlainStringParserOperation[T]{String: "-"}).Append(magnitude(true)),
		parser.Operations[T](parser.PlainStringParserOperation[T]{String: "+"}).Append(magnitude(false)),
		magnitude(false),
	)
}

// NamedUnsignedDirective renders a bounded field through a fixed name table,
// for example month numbers as month names. The table must cover the field's
// whole range.
func NamedUnsignedDirective[T any](field *UnsignedFieldSpec[T], names []string) Directive[T] {
	if len(names) != field.MaxValue()-field.MinValue()+1 {
		panic(fmt.Sprintf("field %s spans %d values but %d names were given",
			field.Name(), field.MaxValue()-field.MinValue()+1, len(names)))
	}
	return namedDirective[T]{field: field, names: names}
}

type namedDirective[T any] struct {
	field *UnsignedFieldSpec[T]
	names []string
}

func (d namedDirective[T]) Field() Field[T] { return d.field }

func (d namedDirective[T]) String() string {
	return fmt.Sprintf("%sName", d.field.Name())
}

func (d namedDirective[T]) formatterOp() formatter.Formatter[T] {
	return formatter.StringTableFormatter[T]{
		Getter:   intGetter(d.field.FieldSpec),
		MinValue: int64(d.field.MinValue()),
		Strings:  d.names,
	}
}

func (d namedDirective[T]) parserStructure() parser.Structure[T] {
	field := d.field
	names := d.names
	return parser.Operations[T](parser.StringSetParserOperation[T]{
		Strings: names,
		Expects: "one of the names for " + field.Name(),
		Setter: func(obj T, value string) error {
			for i, n := range names {
				if n == value {
					return field.trySet(obj, field.MinValue()+i)
				}
			}
			return fmt.Errorf("unknown name %q", value)
		},
	})
}

// DecimalFractionDirective renders a fraction field with between minDigits and
// maxDigits digits. Grouping optionally rounds the formatted digit count up
// to the next listed size (e.g. 3, 6, 9 for second fractions).
func DecimalFractionDirective[T any](field *FieldSpec[T, DecimalFraction], minDigits, maxDigits int, grouping []int) Directive[T] {
	if minDigits < 1 || maxDigits < minDigits {
		panic(fmt.Sprintf("invalid fraction digit range %d..%d for field %s", minDigits, maxDigits, field.Name()))
	}
	return fractionDirective[T]{field: field, minDigits: minDigits, maxDigits: maxDigits, grouping: grouping}
}

type fractionDirective[T any] struct {
	field     *FieldSpec[T, DecimalFraction]
	minDigits int
	maxDigits int
	grouping  []int
}

func (d fractionDirective[T]) Field() Field[T] { return d.field }

func (d fractionDirective[T]) String() string {
	return fmt.Sprintf("%s(%d..%d)", d.field.Name(), d.minDigits, d.maxDigits)
}

func (d fractionDirective[T]) formatterOp() formatter.Formatter[T] {
	field := d.field
	return formatter.DecimalFractionFormatter[T]{
		Getter: func(obj T) (int64, int, error) {
			v, err := field.getterNotNil(obj)
			if err != nil {
				return 0, 0, err
			}
			return v.Numerator, v.Digits, nil
		},
		MinDigits: d.minDigits,
		MaxDigits: d.maxDigits,
		Grouping:  d.grouping,
	}
}

func (d fractionDirective[T]) parserStructure() parser.Structure[T] {
	field := d.field
	return parser.Operations[T](parser.NumberSpanParserOperation[T]{
		Consumers: []parser.NumberConsumer[T]{parser.FractionConsumer[T]{
			Min:  d.minDigits,
			Max:  d.maxDigits,
			Name: field.Name(),
			Setter: func(obj T, numerator int64, digits int) error {
				return field.trySet(obj, DecimalFraction{Numerator: numerator, Digits: digits})
			},
		}},
	})
}

// ReducedIntDirective renders the low-order digits of a value relative to a
// base, e.g. two-digit years against base 2000. Values outside the window
// [base, base+10^digits) format in full with a mandatory sign, and parse back
// the same way.
func ReducedIntDirective[T any](field *SignedFieldSpec[T], digits int, base int) Directive[T] {
	pow := 1
	for i := 0; i < digits; i++ {
		pow *= 10
	}
	return reducedDirective[T]{field: field, digits: digits, base: base, pow: pow}
}

type reducedDirective[T any] struct {
	field  *SignedFieldSpec[T]
	digits int
	base   int
	pow    int
}

func (d reducedDirective[T]) Field() Field[T] { return d.field }

func (d reducedDirective[T]) String() string {
	return fmt.Sprintf("%sReduced(%d, %d)", d.field.Name(), d.digits, d.base)
}

func (d reducedDirective[T]) formatterOp() formatter.Formatter[T] {
	field := d.field
	inWindow := func(obj T) bool {
		v, ok := field.Accessor().Get(obj)
		return ok && v >= d.base && v < d.base+d.pow
	}
	reduced := formatter.UnsignedIntFormatter[T]{
		Getter: func(obj T) (int64, error) {
			v, err := field.getterNotNil(obj)
			if err != nil {
				return 0, err
			}
			return int64(((v-d.base)%d.pow + d.pow) % d.pow), nil
		},
		ZeroPadding: d.digits,
	}
	full := formatter.SignedIntFormatter[T]{
		Getter:            intGetter(field.FieldSpec),
		ZeroPadding:       d.digits + 1,
		OutputPlusOnWidth: d.digits,
	}
	return formatter.ConditionalFormatter[T]{Options: []formatter.ConditionalOption[T]{
		{Predicate: inWindow, Formatter: reduced},
		{Formatter: full},
	}}
}

func (d reducedDirective[T]) parserStructure() parser.Structure[T] {
	field := d.field
	reduced := parser.Operations[T](parser.NumberSpanParserOperation[T]{
		Consumers: []parser.NumberConsumer[T]{parser.ReducedIntConsumer[T]{
			Length: d.digits,
			Base:   int64(d.base),
			Name:   field.Name(),
			Setter: func(obj T, v int64) error { return field.trySet(obj, int(v)) },
		}},
	})
	magnitude := func(negative bool) parser.Structure[T] {
		return parser.Operations[T](parser.NumberSpanParserOperation[T]{
			Consumers: []parser.NumberConsumer[T]{parser.UnsignedIntConsumer[T]{
				Min:      d.digits + 1,
				Max:      parser.Unbounded,
				MinValue: 0,
				MaxValue: math.MaxInt64,
				Setter:   intSetter(field.FieldSpec, negative),
				Name:     field.Name(),
			}},
		})
	}
	return parser.Fork(
		reduced,
		parser.Operations[T](parser.PlainStringParserOperation[T]{String: "+"}).Append(magnitude(false)),
		parser.Operations[T](parser.PlainStringParserOperation[T]{String: "-"}).Append(magnitude(true)),
	)
}

func intGetter[T any](field *FieldSpec[T, int]) func(T) (int64, error) {
	return func(obj T) (int64, error) {
		v, err := field.getterNotNil(obj)
		return int64(v), err
	}
}

func intSetter[T any](field *FieldSpec[T, int], negative bool) func(T, int64) error {
	return func(obj T, v int64) error {
		if negative {
			v = -v
		}
		return field.trySet(obj, int(v))
	}
}
