// Package datetime provides reference field sets for the format engine:
// incomplete date, time, UTC-offset and date-time containers, their directive
// registries, and ISO 8601 formats built on them. The containers hold parsed
// or to-be-formatted field values only; calendar arithmetic stays with the
// caller.
package datetime

import (
	chronofmt "github.com/chronofmt/chronofmt"
)

// DateFields is a partially-filled calendar date. nil means "unset".
type DateFields struct {
	Year        *int
	MonthNumber *int
	DayOfMonth  *int
}

// NewDateFields returns an empty accumulator for parsing.
func NewDateFields() *DateFields { return &DateFields{} }

// Copy supports copy-on-fork parsing. Field values are never mutated in
// place, so a shallow copy is enough.
func (d *DateFields) Copy() *DateFields {
	c := *d
	return &c
}

// TimeFields is a partially-filled time of day.
type TimeFields struct {
	Hour             *int
	Minute           *int
	Second           *int
	FractionOfSecond *chronofmt.DecimalFraction
	AmPmHour         *int
	AmPm             *int // 0 = AM, 1 = PM
}

// NewTimeFields returns an empty accumulator for parsing.
func NewTimeFields() *TimeFields { return &TimeFields{} }

func (t *TimeFields) Copy() *TimeFields {
	c := *t
	return &c
}

// UtcOffsetFields is a partially-filled UTC offset. The components carry
// magnitudes; Negative holds the shared sign of the whole offset.
type UtcOffsetFields struct {
	Negative        *bool
	TotalHours      *int
	MinutesOfHour   *int
	SecondsOfMinute *int
}

// NewUtcOffsetFields returns an empty accumulator for parsing.
func NewUtcOffsetFields() *UtcOffsetFields { return &UtcOffsetFields{} }

func (o *UtcOffsetFields) Copy() *UtcOffsetFields {
	c := *o
	return &c
}

// TotalSeconds resolves the offset to signed seconds east of UTC, treating
// unset components as zero.
func (o *UtcOffsetFields) TotalSeconds() int {
	total := orZero(o.TotalHours)*3600 + orZero(o.MinutesOfHour)*60 + orZero(o.SecondsOfMinute)
	if o.Negative != nil && *o.Negative {
		total = -total
	}
	return total
}

// SetTotalSeconds populates the offset components from signed seconds.
func (o *UtcOffsetFields) SetTotalSeconds(seconds int) {
	neg := seconds < 0
	if neg {
		seconds = -seconds
	}
	o.Negative = &neg
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	o.TotalHours, o.MinutesOfHour, o.SecondsOfMinute = &h, &m, &s
}

// DateTimeFields is a partially-filled date-time with an optional UTC offset.
type DateTimeFields struct {
	Year                  *int
	MonthNumber           *int
	DayOfMonth            *int
	Hour                  *int
	Minute                *int
	Second                *int
	FractionOfSecond      *chronofmt.DecimalFraction
	AmPmHour              *int
	AmPm                  *int
	OffsetNegative        *bool
	OffsetHours           *int
	OffsetMinutes         *int
	OffsetSecondsOfMinute *int
}

// NewDateTimeFields returns an empty accumulator for parsing.
func NewDateTimeFields() *DateTimeFields { return &DateTimeFields{} }

func (d *DateTimeFields) Copy() *DateTimeFields {
	c := *d
	return &c
}

// OffsetSeconds resolves the offset part to signed seconds east of UTC.
func (d *DateTimeFields) OffsetSeconds() int {
	total := orZero(d.OffsetHours)*3600 + orZero(d.OffsetMinutes)*60 + orZero(d.OffsetSecondsOfMinute)
	if d.OffsetNegative != nil && *d.OffsetNegative {
		total = -total
	}
	return total
}

// SetOffsetSeconds populates the offset components from signed seconds.
func (d *DateTimeFields) SetOffsetSeconds(seconds int) {
	neg := seconds < 0
	if neg {
		seconds = -seconds
	}
	d.OffsetNegative = &neg
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	d.OffsetHours, d.OffsetMinutes, d.OffsetSecondsOfMinute = &h, &m, &s
}

func orZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func ptr[V any](v V) *V { return &v }
