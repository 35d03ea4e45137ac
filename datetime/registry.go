package datetime

import (
	"sync"

	chronofmt "github.com/chronofmt/chronofmt"
)

var shortMonthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var longMonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var amPmNames = []string{"AM", "PM"}

// dateSpecs binds the calendar-date fields of some container type to field
// specs, so the same directive table serves both DateFields and
// DateTimeFields.
type dateSpecs[T any] struct {
	year  *chronofmt.SignedFieldSpec[T]
	month *chronofmt.UnsignedFieldSpec[T]
	day   *chronofmt.UnsignedFieldSpec[T]
}

func newDateSpecs[T any](year, month, day chronofmt.Accessor[T, int]) dateSpecs[T] {
	return dateSpecs[T]{
		year:  chronofmt.NewSignedField(chronofmt.NewField(year), nil),
		month: chronofmt.NewUnsignedField(chronofmt.NewField(month), 1, 12),
		day:   chronofmt.NewUnsignedField(chronofmt.NewField(day), 1, 31),
	}
}

// register installs the date directives:
//
//	y     year, as many digits as needed
//	yy    two-digit year relative to 2000
//	yyyy  four-digit year, '+' beyond 9999
//	M MM  month number, dd d  day of month
//	MMM MMMM  short and long month names
func (s dateSpecs[T]) register(r *chronofmt.Registry[T]) {
	r.Register('y', 1, chronofmt.Basic(chronofmt.SignedIntDirective(s.year, 1, false)))
	r.Register('y', 2, chronofmt.Basic(chronofmt.ReducedIntDirective(s.year, 2, 2000)))
	r.Register('y', 4, chronofmt.Basic(chronofmt.SignedIntDirective(s.year, 4, true)))
	r.Register('M', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.month, 1)))
	r.Register('M', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.month, 2)))
	r.Register('M', 3, chronofmt.Basic(chronofmt.NamedUnsignedDirective(s.month, shortMonthNames)))
	r.Register('M', 4, chronofmt.Basic(chronofmt.NamedUnsignedDirective(s.month, longMonthNames)))
	r.Register('d', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.day, 1)))
	r.Register('d', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.day, 2)))
}

// timeSpecs binds the time-of-day fields of some container type. Second and
// the fraction default to zero so they can sit in optional sections.
type timeSpecs[T any] struct {
	hour     *chronofmt.UnsignedFieldSpec[T]
	minute   *chronofmt.UnsignedFieldSpec[T]
	second   *chronofmt.UnsignedFieldSpec[T]
	fraction *chronofmt.FieldSpec[T, chronofmt.DecimalFraction]
	amPmHour *chronofmt.UnsignedFieldSpec[T]
	amPm     *chronofmt.UnsignedFieldSpec[T]
}

func newTimeSpecs[T any](
	hour, minute, second chronofmt.Accessor[T, int],
	fraction chronofmt.Accessor[T, chronofmt.DecimalFraction],
	amPmHour, amPm chronofmt.Accessor[T, int],
) timeSpecs[T] {
	return timeSpecs[T]{
		hour:     chronofmt.NewUnsignedField(chronofmt.NewField(hour), 0, 23),
		minute:   chronofmt.NewUnsignedField(chronofmt.NewField(minute), 0, 59),
		second:   chronofmt.NewUnsignedField(chronofmt.NewField(second).WithDefault(0), 0, 59),
		fraction: chronofmt.NewField(fraction).WithDefault(chronofmt.FractionFromNanoseconds(0)),
		amPmHour: chronofmt.NewUnsignedField(chronofmt.NewField(amPmHour), 1, 12),
		amPm:     chronofmt.NewUnsignedField(chronofmt.NewField(amPm), 0, 1),
	}
}

// register installs the time directives:
//
//	H HH  hour of day, h hh  hour of the half-day, a  AM/PM marker
//	m mm  minute, s ss  second
//	f     second fraction with as many digits as needed
//	ff..fffffffff  second fraction with exactly that many digits
func (s timeSpecs[T]) register(r *chronofmt.Registry[T]) {
	r.Register('H', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.hour, 1)))
	r.Register('H', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.hour, 2)))
	r.Register('h', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.amPmHour, 1)))
	r.Register('h', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.amPmHour, 2)))
	r.Register('a', 1, chronofmt.Basic(chronofmt.NamedUnsignedDirective(s.amPm, amPmNames)))
	r.Register('m', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.minute, 1)))
	r.Register('m', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.minute, 2)))
	r.Register('s', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.second, 1)))
	r.Register('s', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.second, 2)))
	r.Register('f', 1, chronofmt.Basic(chronofmt.DecimalFractionDirective(s.fraction, 1, 9, nil)))
	for n := 2; n <= 9; n++ {
		r.Register('f', n, chronofmt.Basic(chronofmt.DecimalFractionDirective(s.fraction, n, n, nil)))
	}
}

// offsetSpecs binds the UTC-offset fields of some container type. All
// components share one sign group and default to zero, so a whole offset can
// collapse to "Z" in alternatives.
type offsetSpecs[T any] struct {
	sign    *chronofmt.FieldSign[T]
	hours   *chronofmt.UnsignedFieldSpec[T]
	minutes *chronofmt.UnsignedFieldSpec[T]
	seconds *chronofmt.UnsignedFieldSpec[T]
}

func newOffsetSpecs[T any](
	negative chronofmt.Accessor[T, bool],
	hours, minutes, seconds chronofmt.Accessor[T, int],
	isZero func(T) bool,
) offsetSpecs[T] {
	sign := &chronofmt.FieldSign[T]{IsNegative: negative, IsZero: isZero}
	unsigned := func(a chronofmt.Accessor[T, int], max int) *chronofmt.UnsignedFieldSpec[T] {
		return chronofmt.NewUnsignedField(chronofmt.NewField(a).WithDefault(0).WithSign(sign), 0, max)
	}
	return offsetSpecs[T]{
		sign:    sign,
		hours:   unsigned(hours, 18),
		minutes: unsigned(minutes, 59),
		seconds: unsigned(seconds, 59),
	}
}

// register installs the offset directives h/hh, m/mm and s/ss for the offset
// components. They are meant to be reached through the uo<...> sub-builder,
// where they do not collide with the time-of-day letters.
func (s offsetSpecs[T]) register(r *chronofmt.Registry[T]) {
	r.Register('h', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.hours, 1)))
	r.Register('h', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.hours, 2)))
	r.Register('m', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.minutes, 1)))
	r.Register('m', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.minutes, 2)))
	r.Register('s', 1, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.seconds, 1)))
	r.Register('s', 2, chronofmt.Basic(chronofmt.UnsignedIntDirective(s.seconds, 2)))
}

var dateFieldSpecs = newDateSpecs(
	chronofmt.NewAccessor("year", func(d *DateFields) **int { return &d.Year }),
	chronofmt.NewAccessor("monthNumber", func(d *DateFields) **int { return &d.MonthNumber }),
	chronofmt.NewAccessor("dayOfMonth", func(d *DateFields) **int { return &d.DayOfMonth }),
)

var timeFieldSpecs = newTimeSpecs(
	chronofmt.NewAccessor("hour", func(t *TimeFields) **int { return &t.Hour }),
	chronofmt.NewAccessor("minute", func(t *TimeFields) **int { return &t.Minute }),
	chronofmt.NewAccessor("second", func(t *TimeFields) **int { return &t.Second }),
	chronofmt.NewAccessor("fractionOfSecond", func(t *TimeFields) **chronofmt.DecimalFraction { return &t.FractionOfSecond }),
	chronofmt.NewAccessor("amPmHour", func(t *TimeFields) **int { return &t.AmPmHour }),
	chronofmt.NewAccessor("amPmMarker", func(t *TimeFields) **int { return &t.AmPm }),
)

var offsetFieldSpecs = newOffsetSpecs(
	chronofmt.NewAccessor("offsetIsNegative", func(o *UtcOffsetFields) **bool { return &o.Negative }),
	chronofmt.NewAccessor("offsetHours", func(o *UtcOffsetFields) **int { return &o.TotalHours }),
	chronofmt.NewAccessor("offsetMinutesOfHour", func(o *UtcOffsetFields) **int { return &o.MinutesOfHour }),
	chronofmt.NewAccessor("offsetSecondsOfMinute", func(o *UtcOffsetFields) **int { return &o.SecondsOfMinute }),
	func(o *UtcOffsetFields) bool {
		return orZero(o.TotalHours) == 0 && orZero(o.MinutesOfHour) == 0 && orZero(o.SecondsOfMinute) == 0
	},
)

type dateTimeSpecBundle struct {
	date   dateSpecs[*DateTimeFields]
	time   timeSpecs[*DateTimeFields]
	offset offsetSpecs[*DateTimeFields]
}

var dateTimeFieldSpecs = dateTimeSpecBundle{
	date: newDateSpecs(
		chronofmt.NewAccessor("year", func(d *DateTimeFields) **int { return &d.Year }),
		chronofmt.NewAccessor("monthNumber", func(d *DateTimeFields) **int { return &d.MonthNumber }),
		chronofmt.NewAccessor("dayOfMonth", func(d *DateTimeFields) **int { return &d.DayOfMonth }),
	),
	time: newTimeSpecs(
		chronofmt.NewAccessor("hour", func(d *DateTimeFields) **int { return &d.Hour }),
		chronofmt.NewAccessor("minute", func(d *DateTimeFields) **int { return &d.Minute }),
		chronofmt.NewAccessor("second", func(d *DateTimeFields) **int { return &d.Second }),
		chronofmt.NewAccessor("fractionOfSecond", func(d *DateTimeFields) **chronofmt.DecimalFraction { return &d.FractionOfSecond }),
		chronofmt.NewAccessor("amPmHour", func(d *DateTimeFields) **int { return &d.AmPmHour }),
		chronofmt.NewAccessor("amPmMarker", func(d *DateTimeFields) **int { return &d.AmPm }),
	),
	offset: newOffsetSpecs(
		chronofmt.NewAccessor("offsetIsNegative", func(d *DateTimeFields) **bool { return &d.OffsetNegative }),
		chronofmt.NewAccessor("offsetHours", func(d *DateTimeFields) **int { return &d.OffsetHours }),
		chronofmt.NewAccessor("offsetMinutesOfHour", func(d *DateTimeFields) **int { return &d.OffsetMinutes }),
		chronofmt.NewAccessor("offsetSecondsOfMinute", func(d *DateTimeFields) **int { return &d.OffsetSecondsOfMinute }),
		func(d *DateTimeFields) bool {
			return orZero(d.OffsetHours) == 0 && orZero(d.OffsetMinutes) == 0 && orZero(d.OffsetSecondsOfMinute) == 0
		},
	),
}

var dateRegistry = sync.OnceValue(func() *chronofmt.Registry[*DateFields] {
	r := chronofmt.NewRegistry[*DateFields]()
	dateFieldSpecs.register(r)
	return r
})

// DateRegistry returns the directive table for DateFields format strings.
func DateRegistry() *chronofmt.Registry[*DateFields] { return dateRegistry() }

var timeRegistry = sync.OnceValue(func() *chronofmt.Registry[*TimeFields] {
	r := chronofmt.NewRegistry[*TimeFields]()
	timeFieldSpecs.register(r)
	return r
})

// TimeRegistry returns the directive table for TimeFields format strings.
func TimeRegistry() *chronofmt.Registry[*TimeFields] { return timeRegistry() }

var utcOffsetRegistry = sync.OnceValue(func() *chronofmt.Registry[*UtcOffsetFields] {
	r := chronofmt.NewRegistry[*UtcOffsetFields]()
	offsetFieldSpecs.register(r)
	return r
})

// UtcOffsetRegistry returns the directive table for UtcOffsetFields format
// strings.
func UtcOffsetRegistry() *chronofmt.Registry[*UtcOffsetFields] { return utcOffsetRegistry() }

var dateTimeRegistry = sync.OnceValue(func() *chronofmt.Registry[*DateTimeFields] {
	r := chronofmt.NewRegistry[*DateTimeFields]()
	dateTimeFieldSpecs.date.register(r)
	dateTimeFieldSpecs.time.register(r)

	ld := chronofmt.NewRegistry[*DateTimeFields]()
	dateTimeFieldSpecs.date.register(ld)
	r.RegisterSubBuilder("ld", ld)

	lt := chronofmt.NewRegistry[*DateTimeFields]()
	dateTimeFieldSpecs.time.register(lt)
	r.RegisterSubBuilder("lt", lt)

	uo := chronofmt.NewRegistry[*DateTimeFields]()
	dateTimeFieldSpecs.offset.register(uo)
	r.RegisterSubBuilder("uo", uo)
	return r
})

// DateTimeRegistry returns the directive table for DateTimeFields format
// strings. The date and time directives are available directly; the
// UTC-offset directives live behind the uo<...> sub-builder because their
// letters collide with the time-of-day ones. ld<...> and lt<...> restrict a
// span to date or time directives only.
func DateTimeRegistry() *chronofmt.Registry[*DateTimeFields] { return dateTimeRegistry() }
