package parser

import (
	"fmt"
	"math"
	"strconv"
)

// PlainStringParserOperation matches a literal span of text.
type PlainStringParserOperation[T any] struct {
	String string
}

func (o PlainStringParserOperation[T]) Consume(_ T, input string, pos int) (int, *Error) {
	if pos+len(o.String) > len(input) {
		return 0, &Error{Position: pos, Message: func() string {
			return fmt.Sprintf("unexpected end of input, expected %q", o.String)
		}}
	}
	if input[pos:pos+len(o.String)] != o.String {
		return 0, &Error{Position: pos, Message: func() string {
			return fmt.Sprintf("expected %q but got %q", o.String, input[pos:pos+len(o.String)])
		}}
	}
	return pos + len(o.String), nil
}

// StringSetParserOperation matches the longest member of a fixed string table
// and reports the recognized value to the setter.
type StringSetParserOperation[T any] struct {
	Strings []string
	Setter  func(storage T, value string) error
	Expects string
}

func (o StringSetParserOperation[T]) Consume(c T, input string, pos int) (int, *Error) {
	matched := ""
	for _, s := range o.Strings {
		if len(s) > len(matched) && pos+len(s) <= len(input) && input[pos:pos+len(s)] == s {
			matched = s
		}
	}
	if matched == "" {
		return 0, &Error{Position: pos, Message: func() string {
			return fmt.Sprintf("expected %s at position %d", o.Expects, pos)
		}}
	}
	if err := o.Setter(c, matched); err != nil {
		return 0, &Error{Position: pos, Cause: err, Message: func() string {
			return fmt.Sprintf("can not interpret %q as %s: %v", matched, o.Expects, err)
		}}
	}
	return pos + len(matched), nil
}

// SignParser consumes one mandatory sign character. '+' is only admitted when
// WithPlusSign is set; a '-' always is. The setter receives the observed
// negativity so the caller can fold it into already-recorded sign state.
type SignParser[T any] struct {
	SetNegative  func(storage T, negative bool)
	WithPlusSign bool
	Expects      string
}

func (o SignParser[T]) Consume(c T, input string, pos int) (int, *Error) {
	if pos >= len(input) {
		return 0, &Error{Position: pos, Message: func() string {
			return fmt.Sprintf("unexpected end of input, expected %s", o.Expects)
		}}
	}
	switch input[pos] {
	case '-':
		o.SetNegative(c, true)
		return pos + 1, nil
	case '+':
		if o.WithPlusSign {
			o.SetNegative(c, false)
			return pos + 1, nil
		}
	}
	return 0, &Error{Position: pos, Message: func() string {
		return fmt.Sprintf("expected %s but got %q", o.Expects, input[pos])
	}}
}

// UnconditionalModificationOperation mutates the accumulator without consuming
// input. Used to assign default values on the "absent" branch of an optional
// section.
type UnconditionalModificationOperation[T any] struct {
	Apply func(storage T)
}

func (o UnconditionalModificationOperation[T]) Consume(c T, _ string, pos int) (int, *Error) {
	o.Apply(c)
	return pos, nil
}

// Unbounded marks a consumer with no upper digit limit.
const Unbounded = math.MaxInt32

// NumberConsumer interprets a sub-span of a digit run as one field value.
// Check validates a candidate span without mutating anything so the span
// splitter can backtrack; Assign commits the value to the accumulator.
type NumberConsumer[T any] interface {
	MinDigits() int
	MaxDigits() int
	Describe() string
	Check(digits string) error
	Assign(storage T, digits string) error
}

// NumberSpanParserOperation consumes one maximal digit run and splits it among
// its consumers. The split is greedy left-to-right: the leftmost consumer
// takes as many digits as its width allows while leaving every later consumer
// at least its minimum, retreating to shorter prefixes when a consumer rejects
// its digits. This makes adjacent variable-width numeric fields parse
// deterministically instead of bleeding into each other.
type NumberSpanParserOperation[T any] struct {
	Consumers []NumberConsumer[T]
}

func (o NumberSpanParserOperation[T]) minTotal() int {
	total := 0
	for _, c := range o.Consumers {
		total += c.MinDigits()
	}
	return total
}

func (o NumberSpanParserOperation[T]) maxTotal() int {
	total := 0
	for _, c := range o.Consumers {
		if c.MaxDigits() >= Unbounded {
			return Unbounded
		}
		total += c.MaxDigits()
	}
	return total
}

func (o NumberSpanParserOperation[T]) Consume(c T, input string, pos int) (int, *Error) {
	end := pos
	for end < len(input) && isDigit(input[end]) {
		end++
	}
	digits := input[pos:end]
	if len(digits) < o.minTotal() {
		min := o.minTotal()
		return 0, &Error{Position: pos, Message: func() string {
			return fmt.Sprintf("expected at least %d digits but got %d", min, len(digits))
		}}
	}
	if max := o.maxTotal(); len(digits) > max {
		return 0, &Error{Position: pos, Message: func() string {
			return fmt.Sprintf("expected at most %d digits but got %d", max, len(digits))
		}}
	}
	parts, splitErr := splitSpan(o.Consumers, digits)
	if splitErr != nil {
		return 0, &Error{Position: pos, Cause: splitErr, Message: func() string {
			return fmt.Sprintf("can not interpret digits %q: %v", digits, splitErr)
		}}
	}
	offset := pos
	for i, part := range parts {
		if err := o.Consumers[i].Assign(c, part); err != nil {
			p, cause := offset, err
			return 0, &Error{Position: p, Cause: cause, Message: func() string {
				return fmt.Sprintf("can not interpret %q as %s: %v", part, o.Consumers[i].Describe(), cause)
			}}
		}
		offset += len(part)
	}
	return end, nil
}

func splitSpan[T any](consumers []NumberConsumer[T], digits string) ([]string, error) {
	if len(consumers) == 0 {
		if digits != "" {
			return nil, fmt.Errorf("leftover digits %q", digits)
		}
		return nil, nil
	}
	head, rest := consumers[0], consumers[1:]
	minRest, maxRest := 0, 0
	unboundedRest := false
	for _, r := range rest {
		minRest += r.MinDigits()
		if r.MaxDigits() >= Unbounded {
			unboundedRest = true
		}
		maxRest += r.MaxDigits()
	}
	hi := len(digits) - minRest
	if head.MaxDigits() < hi {
		hi = head.MaxDigits()
	}
	lo := head.MinDigits()
	if !unboundedRest && len(digits)-maxRest > lo {
		lo = len(digits) - maxRest
	}
	var firstErr error
	for n := hi; n >= lo; n-- {
		if err := head.Check(digits[:n]); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", head.Describe(), err)
			}
			continue
		}
		tail, err := splitSpan(rest, digits[n:])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return append([]string{digits[:n]}, tail...), nil
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no valid reading of %q as %s", digits, head.Describe())
	}
	return nil, firstErr
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// UnsignedIntConsumer reads a bounded non-negative integer. The setter may
// negate the value when the consumer serves the negative branch of a signed
// directive.
type UnsignedIntConsumer[T any] struct {
	Min, Max           int
	MinValue, MaxValue int64
	Setter             func(storage T, value int64) error
	Name               string
}

func (c UnsignedIntConsumer[T]) MinDigits() int   { return c.Min }
func (c UnsignedIntConsumer[T]) MaxDigits() int   { return c.Max }
func (c UnsignedIntConsumer[T]) Describe() string { return c.Name }

func (c UnsignedIntConsumer[T]) value(digits string) (int64, error) {
	if len(digits) > 18 {
		return 0, fmt.Errorf("too many digits (%d)", len(digits))
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < c.MinValue || v > c.MaxValue {
		return 0, fmt.Errorf("value %d is out of range %d..%d", v, c.MinValue, c.MaxValue)
	}
	return v, nil
}

func (c UnsignedIntConsumer[T]) Check(digits string) error {
	_, err := c.value(digits)
	return err
}

func (c UnsignedIntConsumer[T]) Assign(storage T, digits string) error {
	v, err := c.value(digits)
	if err != nil {
		return err
	}
	return c.Setter(storage, v)
}

// ConstantNumberConsumer matches literal digits that were part of constant
// text adjacent to a numeric field.
type ConstantNumberConsumer[T any] struct {
	Expected string
}

func (c ConstantNumberConsumer[T]) MinDigits() int   { return len(c.Expected) }
func (c ConstantNumberConsumer[T]) MaxDigits() int   { return len(c.Expected) }
func (c ConstantNumberConsumer[T]) Describe() string { return fmt.Sprintf("literal %q", c.Expected) }

func (c ConstantNumberConsumer[T]) Check(digits string) error {
	if digits != c.Expected {
		return fmt.Errorf("expected %q but got %q", c.Expected, digits)
	}
	return nil
}

func (c ConstantNumberConsumer[T]) Assign(T, string) error { return nil }

// FractionConsumer reads a decimal fraction as its numerator plus the number
// of digits it occupied.
type FractionConsumer[T any] struct {
	Min, Max int
	Setter   func(storage T, numerator int64, digits int) error
	Name     string
}

func (c FractionConsumer[T]) MinDigits() int   { return c.Min }
func (c FractionConsumer[T]) MaxDigits() int   { return c.Max }
func (c FractionConsumer[T]) Describe() string { return c.Name }

func (c FractionConsumer[T]) Check(digits string) error {
	if len(digits) > 18 {
		return fmt.Errorf("too many digits (%d)", len(digits))
	}
	_, err := strconv.ParseInt(digits, 10, 64)
	return err
}

func (c FractionConsumer[T]) Assign(storage T, digits string) error {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return err
	}
	return c.Setter(storage, v, len(digits))
}

// ReducedIntConsumer reads a fixed number of low-order digits and lifts the
// value into the window [base, base+10^length).
type ReducedIntConsumer[T any] struct {
	Length int
	Base   int64
	Setter func(storage T, value int64) error
	Name   string
}

func (c ReducedIntConsumer[T]) MinDigits() int   { return c.Length }
func (c ReducedIntConsumer[T]) MaxDigits() int   { return c.Length }
func (c ReducedIntConsumer[T]) Describe() string { return c.Name }

func (c ReducedIntConsumer[T]) Check(digits string) error {
	_, err := strconv.ParseInt(digits, 10, 64)
	return err
}

func (c ReducedIntConsumer[T]) Assign(storage T, digits string) error {
	d, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return err
	}
	pow := int64(1)
	for i := 0; i < c.Length; i++ {
		pow *= 10
	}
	v := c.Base - c.Base%pow + d
	if v < c.Base {
		v += pow
	}
	return c.Setter(storage, v)
}
