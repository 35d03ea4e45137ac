package chronofmt

// DecimalFraction is a fraction of the form numerator / 10^digits, in the
// half-open interval [0, 1). It remembers how many digits it was written
// with, so "0.5" and "0.50" survive a round trip distinctly.
type DecimalFraction struct {
	Numerator int64
	Digits    int
}

// FractionFromNanoseconds represents a 0..999_999_999 nanosecond count as a
// nine-digit fraction of a second.
func FractionFromNanoseconds(ns int) DecimalFraction {
	return DecimalFraction{Numerator: int64(ns), Digits: 9}
}

// Nanoseconds converts the fraction to a nanosecond count, truncating any
// precision beyond nine digits.
func (d DecimalFraction) Nanoseconds() int {
	v := d.Numerator
	for i := d.Digits; i < 9; i++ {
		v *= 10
	}
	for i := 9; i < d.Digits; i++ {
		v /= 10
	}
	return int(v)
}
