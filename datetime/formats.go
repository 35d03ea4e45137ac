package datetime

import (
	"sync"

	chronofmt "github.com/chronofmt/chronofmt"
	"github.com/chronofmt/chronofmt/dsl"
)

// isoDateStructure is yyyy-MM-dd. The year grows beyond four digits with a
// mandatory sign, per ISO 8601 expanded years.
func isoDateStructure[T any](s dateSpecs[T]) chronofmt.FormatStructure[T] {
	return dsl.New[T]().
		Directive(chronofmt.SignedIntDirective(s.year, 4, true)).
		Literal("-").
		Directive(chronofmt.UnsignedIntDirective(s.month, 2)).
		Literal("-").
		Directive(chronofmt.UnsignedIntDirective(s.day, 2)).
		MustBuild()
}

// isoTimeStructure is HH:mm with optional :ss and an optional fraction of up
// to nine digits.
func isoTimeStructure[T any](s timeSpecs[T]) chronofmt.FormatStructure[T] {
	return dsl.New[T]().
		Directive(chronofmt.UnsignedIntDirective(s.hour, 2)).
		Literal(":").
		Directive(chronofmt.UnsignedIntDirective(s.minute, 2)).
		Optional("", func(b *dsl.Builder[T]) {
			b.Literal(":").
				Directive(chronofmt.UnsignedIntDirective(s.second, 2)).
				Optional("", func(b *dsl.Builder[T]) {
					b.Literal(".").
						Directive(chronofmt.DecimalFractionDirective(s.fraction, 1, 9, nil))
				})
		}).
		MustBuild()
}

// isoOffsetStructure is Z for the zero offset, otherwise a signed hh:mm with
// optional :ss. Parsing also accepts an explicit +00:00 for zero.
func isoOffsetStructure[T any](s offsetSpecs[T]) chronofmt.FormatStructure[T] {
	return dsl.New[T]().
		Alternatives(
			func(b *dsl.Builder[T]) { b.Literal("Z") },
			func(b *dsl.Builder[T]) {
				b.WithSharedSign(true, func(b *dsl.Builder[T]) {
					b.Directive(chronofmt.UnsignedIntDirective(s.hours, 2)).
						Literal(":").
						Directive(chronofmt.UnsignedIntDirective(s.minutes, 2)).
						Optional("", func(b *dsl.Builder[T]) {
							b.Literal(":").
								Directive(chronofmt.UnsignedIntDirective(s.seconds, 2))
						})
				})
			},
		).
		MustBuild()
}

func mustCached[T any](s chronofmt.FormatStructure[T]) chronofmt.FormatStructure[T] {
	c, err := chronofmt.Cached(s)
	if err != nil {
		panic(err)
	}
	return c
}

func mustFormat[T chronofmt.Copyable[T]](s chronofmt.FormatStructure[T], fresh func() T) *chronofmt.Format[T] {
	f, err := chronofmt.New(s, fresh)
	if err != nil {
		panic(err)
	}
	return f
}

var isoDate = sync.OnceValue(func() *chronofmt.Format[*DateFields] {
	return mustFormat(isoDateStructure(dateFieldSpecs), NewDateFields)
})

// IsoDate formats and parses yyyy-MM-dd, e.g. "2023-01-02".
func IsoDate() *chronofmt.Format[*DateFields] { return isoDate() }

var isoTime = sync.OnceValue(func() *chronofmt.Format[*TimeFields] {
	return mustFormat(isoTimeStructure(timeFieldSpecs), NewTimeFields)
})

// IsoTime formats and parses HH:mm[:ss[.fff]], e.g. "08:30", "08:30:00.5".
// When the seconds are omitted on input, the second and fraction fields come
// back as zero rather than unset.
func IsoTime() *chronofmt.Format[*TimeFields] { return isoTime() }

var isoUtcOffset = sync.OnceValue(func() *chronofmt.Format[*UtcOffsetFields] {
	return mustFormat(isoOffsetStructure(offsetFieldSpecs), NewUtcOffsetFields)
})

// IsoUtcOffset formats and parses Z or +-hh:mm[:ss], e.g. "Z", "+05:30",
// "-03:00:30". The zero offset formats as "Z" and parses from either form.
func IsoUtcOffset() *chronofmt.Format[*UtcOffsetFields] { return isoUtcOffset() }

var isoDateTime = sync.OnceValue(func() *chronofmt.Format[*DateTimeFields] {
	date := mustCached(isoDateStructure(dateTimeFieldSpecs.date))
	tod := mustCached(isoTimeStructure(dateTimeFieldSpecs.time))
	offset := mustCached(isoOffsetStructure(dateTimeFieldSpecs.offset))
	s := dsl.New[*DateTimeFields]().
		Add(date).
		Literal("T").
		Add(tod).
		Add(offset).
		MustBuild()
	return mustFormat(s, NewDateTimeFields)
})

// IsoDateTime formats and parses an ISO 8601 date-time with a UTC offset,
// e.g. "2023-01-02T08:30:00+05:30" or "2023-01-02T08:30Z".
func IsoDateTime() *chronofmt.Format[*DateTimeFields] { return isoDateTime() }
