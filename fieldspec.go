package chronofmt

import "fmt"

// Copyable is implemented by parse accumulators. The parser copies the
// accumulator at every backtracking fork, so only the winning branch's writes
// reach the caller.
type Copyable[Self any] interface {
	Copy() Self
}

// Accessor binds a semantic field to a mutable, optionally-absent slot inside
// an accumulator of type T.
type Accessor[T any, V comparable] interface {
	// Name reports the field name used in error messages and conflict reports.
	Name() string
	// Get returns the current value, with ok=false when the field is unset.
	Get(obj T) (V, bool)
	// Set assigns the field unconditionally.
	Set(obj T, v V)
}

// slotAccessor reaches the field through a function returning the address of
// a pointer-typed struct field, where nil means "unset".
type slotAccessor[T any, V comparable] struct {
	name string
	slot func(obj T) **V
}

// NewAccessor constructs an accessor from a slot function, e.g.
//
//	NewAccessor("hour", func(t *TimeFields) **int { return &t.Hour })
func NewAccessor[T any, V comparable](name string, slot func(obj T) **V) Accessor[T, V] {
	return slotAccessor[T, V]{name: name, slot: slot}
}

func (a slotAccessor[T, V]) Name() string { return a.name }

func (a slotAccessor[T, V]) Get(obj T) (V, bool) {
	p := *a.slot(obj)
	if p == nil {
		var zero V
		return zero, false
	}
	return *p, true
}

func (a slotAccessor[T, V]) Set(obj T, v V) {
	*a.slot(obj) = &v
}

// computedAccessor derives its reads and writes from functions. Sign groups
// over value-carrying fields use this to report negativity computed from the
// member values while recording parsed signs into backing storage.
type computedAccessor[T any, V comparable] struct {
	name string
	get  func(obj T) (V, bool)
	set  func(obj T, v V)
}

// NewComputedAccessor constructs an accessor from explicit get/set functions.
func NewComputedAccessor[T any, V comparable](name string, get func(obj T) (V, bool), set func(obj T, v V)) Accessor[T, V] {
	return computedAccessor[T, V]{name: name, get: get, set: set}
}

func (a computedAccessor[T, V]) Name() string        { return a.name }
func (a computedAccessor[T, V]) Get(obj T) (V, bool) { return a.get(obj) }
func (a computedAccessor[T, V]) Set(obj T, v V)      { a.set(obj, v) }

// FieldSign groups fields that share a single textual sign, such as the hour,
// minute and second components of a UTC offset.
type FieldSign[T any] struct {
	// IsNegative records the observed sign during parsing. Unset means no
	// sign was seen yet.
	IsNegative Accessor[T, bool]
	// IsZero reports whether every member field of the group is zero, in
	// which case the group's sign is undetermined and never negative.
	IsZero func(obj T) bool
}

// Field is the type-erased view of a FieldSpec that format structures operate
// on when they only care about identity, defaults and sign grouping.
type Field[T any] interface {
	Name() string
	HasDefault() bool
	// IsDefault reports whether the field currently holds its default value.
	// Fields without a default are never at default.
	IsDefault(obj T) bool
	// AssignDefault writes the default value. Panics when HasDefault is false.
	AssignDefault(obj T)
	Sign() *FieldSign[T]
}

// FieldSpec binds a named, typed semantic field to an accumulator slot,
// optionally with a default value and a shared-sign group.
type FieldSpec[T any, V comparable] struct {
	accessor Accessor[T, V]
	def      *V
	sign     *FieldSign[T]
}

// NewField wraps an accessor into a field spec.
func NewField[T any, V comparable](accessor Accessor[T, V]) *FieldSpec[T, V] {
	return &FieldSpec[T, V]{accessor: accessor}
}

// WithDefault returns a copy of the spec carrying a default value. Fields
// with defaults may participate in optional sections and collapsing
// alternatives.
func (f *FieldSpec[T, V]) WithDefault(v V) *FieldSpec[T, V] {
	c := *f
	c.def = &v
	return &c
}

// WithSign returns a copy of the spec attached to a shared-sign group.
func (f *FieldSpec[T, V]) WithSign(sign *FieldSign[T]) *FieldSpec[T, V] {
	c := *f
	c.sign = sign
	return &c
}

func (f *FieldSpec[T, V]) Name() string        { return f.accessor.Name() }
func (f *FieldSpec[T, V]) HasDefault() bool    { return f.def != nil }
func (f *FieldSpec[T, V]) Sign() *FieldSign[T] { return f.sign }

// Accessor exposes the underlying accessor.
func (f *FieldSpec[T, V]) Accessor() Accessor[T, V] { return f.accessor }

// Default returns the default value; ok=false when the field has none.
func (f *FieldSpec[T, V]) Default() (V, bool) {
	if f.def == nil {
		var zero V
		return zero, false
	}
	return *f.def, true
}

func (f *FieldSpec[T, V]) IsDefault(obj T) bool {
	if f.def == nil {
		return false
	}
	v, ok := f.accessor.Get(obj)
	return ok && v == *f.def
}

func (f *FieldSpec[T, V]) AssignDefault(obj T) {
	if f.def == nil {
		panic(fmt.Sprintf("field %s has no default value", f.Name()))
	}
	f.accessor.Set(obj, *f.def)
}

// getterNotNil reads the field for formatting; an unset field is a contract
// violation reported as CodeFieldUnset.
func (f *FieldSpec[T, V]) getterNotNil(obj T) (V, error) {
	v, ok := f.accessor.Get(obj)
	if !ok {
		var zero V
		return zero, singleIssue(CodeFieldUnset, -1, "%s", f.Name())
	}
	return v, nil
}

// trySet writes a parsed value without reassigning: setting an equal value
// twice is a no-op success, while a differing repeated assignment is a
// conflict error and the old value stays in place.
func (f *FieldSpec[T, V]) trySet(obj T, v V) error {
	if old, ok := f.accessor.Get(obj); ok {
		if old == v {
			return nil
		}
		return &conflictError{field: f.Name(), old: fmt.Sprint(old), new: fmt.Sprint(v)}
	}
	f.accessor.Set(obj, v)
	return nil
}

// UnsignedFieldSpec is a field spec for a bounded non-negative integer field.
// The digit width of the upper bound is limited to 3, matching the bounded
// calendar fields this library issues (day-of-month, hour, day-of-year).
type UnsignedFieldSpec[T any] struct {
	*FieldSpec[T, int]
	minValue  int
	maxValue  int
	maxDigits int
}

// NewUnsignedField builds an unsigned field spec. It panics when the value
// range is invalid or needs more than 3 decimal digits.
func NewUnsignedField[T any](spec *FieldSpec[T, int], minValue, maxValue int) *UnsignedFieldSpec[T] {
	if minValue < 0 || maxValue < minValue {
		panic(fmt.Sprintf("invalid range %d..%d for field %s", minValue, maxValue, spec.Name()))
	}
	digits := decimalDigits(maxValue)
	if digits > 3 {
		panic(fmt.Sprintf("field %s needs %d digits, but unsigned fields support at most 3", spec.Name(), digits))
	}
	return &UnsignedFieldSpec[T]{FieldSpec: spec, minValue: minValue, maxValue: maxValue, maxDigits: digits}
}

func (f *UnsignedFieldSpec[T]) MinValue() int  { return f.minValue }
func (f *UnsignedFieldSpec[T]) MaxValue() int  { return f.maxValue }
func (f *UnsignedFieldSpec[T]) MaxDigits() int { return f.maxDigits }

// SignedFieldSpec is a field spec for a signed integer field. A nil maximum
// absolute value leaves the digit count unbounded, as needed for years.
type SignedFieldSpec[T any] struct {
	*FieldSpec[T, int]
	maxAbsValue *int
	maxDigits   *int
}

// NewSignedField builds a signed field spec. It panics when the given bound
// needs more than 9 decimal digits; pass nil for no bound.
func NewSignedField[T any](spec *FieldSpec[T, int], maxAbsValue *int) *SignedFieldSpec[T] {
	f := &SignedFieldSpec[T]{FieldSpec: spec, maxAbsValue: maxAbsValue}
	if maxAbsValue != nil {
		digits := decimalDigits(*maxAbsValue)
		if digits > 9 {
			panic(fmt.Sprintf("field %s needs %d digits, but signed fields support at most 9", spec.Name(), digits))
		}
		f.maxDigits = &digits
	}
	return f
}

// MaxAbsValue returns the magnitude bound, or nil when unbounded.
func (f *SignedFieldSpec[T]) MaxAbsValue() *int { return f.maxAbsValue }

// MaxDigits returns the digit cap derived from MaxAbsValue, or nil.
func (f *SignedFieldSpec[T]) MaxDigits() *int { return f.maxDigits }

func decimalDigits(v int) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}
