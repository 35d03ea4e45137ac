package datetime

import (
	"sync"

	chronofmt "github.com/chronofmt/chronofmt"
	"github.com/chronofmt/chronofmt/dsl"
)

// PeriodFields is a partially-filled year-month-day period. The component
// values are signed; Negative, when set, applies on top of them, so -P1Y2M
// means minus one year and minus two months.
type PeriodFields struct {
	Negative *bool
	Years    *int
	Months   *int
	Days     *int
}

// NewPeriodFields returns an empty accumulator for parsing.
func NewPeriodFields() *PeriodFields { return &PeriodFields{} }

// NewPeriod builds a fully-set period from signed component values.
func NewPeriod(years, months, days int) *PeriodFields {
	return &PeriodFields{Years: &years, Months: &months, Days: &days}
}

func (p *PeriodFields) Copy() *PeriodFields {
	c := *p
	return &c
}

// Resolve returns the signed component values with Negative applied, treating
// unset components as zero.
func (p *PeriodFields) Resolve() (years, months, days int) {
	years, months, days = orZero(p.Years), orZero(p.Months), orZero(p.Days)
	if p.Negative != nil && *p.Negative {
		years, months, days = -years, -months, -days
	}
	return years, months, days
}

// periodSign reports the period as negative when an explicit Negative flag
// says so, or when every nonzero component is negative. Mixed signs leave the
// shared sign positive and the components render their own.
var periodSign = &chronofmt.FieldSign[*PeriodFields]{
	IsNegative: chronofmt.NewComputedAccessor("periodIsNegative",
		func(p *PeriodFields) (bool, bool) {
			if p.Negative != nil {
				return *p.Negative, true
			}
			anyNegative, anyPositive := false, false
			for _, v := range []*int{p.Years, p.Months, p.Days} {
				switch {
				case v == nil:
				case *v < 0:
					anyNegative = true
				case *v > 0:
					anyPositive = true
				}
			}
			if !anyNegative && !anyPositive {
				return false, false
			}
			return anyNegative && !anyPositive, true
		},
		func(p *PeriodFields, negative bool) {
			p.Negative = &negative
		}),
	IsZero: func(p *PeriodFields) bool {
		return orZero(p.Years) == 0 && orZero(p.Months) == 0 && orZero(p.Days) == 0
	},
}

type periodSpecBundle struct {
	years  *chronofmt.SignedFieldSpec[*PeriodFields]
	months *chronofmt.SignedFieldSpec[*PeriodFields]
	days   *chronofmt.SignedFieldSpec[*PeriodFields]
}

var periodFieldSpecs = func() periodSpecBundle {
	signed := func(name string, slot func(p *PeriodFields) **int) *chronofmt.SignedFieldSpec[*PeriodFields] {
		spec := chronofmt.NewField(chronofmt.NewAccessor(name, slot)).
			WithDefault(0).
			WithSign(periodSign)
		return chronofmt.NewSignedField(spec, nil)
	}
	return periodSpecBundle{
		years:  signed("years", func(p *PeriodFields) **int { return &p.Years }),
		months: signed("months", func(p *PeriodFields) **int { return &p.Months }),
		days:   signed("days", func(p *PeriodFields) **int { return &p.Days }),
	}
}()

var isoPeriod = sync.OnceValue(func() *chronofmt.Format[*PeriodFields] {
	s := dsl.New[*PeriodFields]().
		WithSharedSign(false, func(b *dsl.Builder[*PeriodFields]) {
			b.Literal("P").
				Directive(chronofmt.SignedIntDirective(periodFieldSpecs.years, 1, false)).
				Literal("Y").
				Directive(chronofmt.SignedIntDirective(periodFieldSpecs.months, 1, false)).
				Literal("M").
				Optional("", func(b *dsl.Builder[*PeriodFields]) {
					b.Directive(chronofmt.SignedIntDirective(periodFieldSpecs.days, 1, false)).
						Literal("D")
				})
		}).
		MustBuild()
	return mustFormat(s, NewPeriodFields)
})

// IsoPeriod formats and parses a year-month period with an optional day part,
// e.g. "P15Y10M", "-P15Y10M2D". A period whose nonzero components are all
// negative takes a single leading minus; mixed-sign periods sign each
// component instead, e.g. "P15Y-10M".
func IsoPeriod() *chronofmt.Format[*PeriodFields] { return isoPeriod() }
