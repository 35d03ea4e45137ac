package datetime

import (
	"fmt"
	"time"

	chronofmt "github.com/chronofmt/chronofmt"
)

// FromTime decomposes a time.Time into a fully-set DateTimeFields, including
// the zone offset of the value's location.
func FromTime(t time.Time) *DateTimeFields {
	d := NewDateTimeFields()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	d.Year, d.MonthNumber, d.DayOfMonth = ptr(year), ptr(int(month)), ptr(day)
	d.Hour, d.Minute, d.Second = ptr(hour), ptr(min), ptr(sec)
	d.FractionOfSecond = ptr(chronofmt.FractionFromNanoseconds(t.Nanosecond()))
	d.AmPmHour = ptr((hour+11)%12 + 1)
	if hour < 12 {
		d.AmPm = ptr(0)
	} else {
		d.AmPm = ptr(1)
	}
	_, offset := t.Zone()
	d.SetOffsetSeconds(offset)
	return d
}

// Time assembles a time.Time from the date, time and offset fields. The
// date and the hour and minute must be set; second and fraction default to
// zero and an absent offset means UTC.
func (d *DateTimeFields) Time() (time.Time, error) {
	for name, p := range map[string]*int{
		"year":        d.Year,
		"monthNumber": d.MonthNumber,
		"dayOfMonth":  d.DayOfMonth,
		"hour":        d.Hour,
		"minute":      d.Minute,
	} {
		if p == nil {
			return time.Time{}, fmt.Errorf("field %s is not set", name)
		}
	}
	ns := 0
	if d.FractionOfSecond != nil {
		ns = d.FractionOfSecond.Nanoseconds()
	}
	loc := time.UTC
	if offset := d.OffsetSeconds(); offset != 0 {
		loc = time.FixedZone("", offset)
	}
	return time.Date(*d.Year, time.Month(*d.MonthNumber), *d.DayOfMonth,
		*d.Hour, *d.Minute, orZero(d.Second), ns, loc), nil
}
