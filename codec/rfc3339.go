package codec

import (
	"context"
	"sync"
	"time"

	chronofmt "github.com/chronofmt/chronofmt"
	"github.com/chronofmt/chronofmt/datetime"
	"github.com/chronofmt/chronofmt/i18n"
)

// RFC3339Pattern is the format string the RFC 3339 codec compiles. Unlike the
// ISO date-time format, the seconds are always printed; the fraction and the
// offset seconds stay optional and the zero offset renders as "Z".
const RFC3339Pattern = "yyyy'-'MM'-'dd'T'HH':'mm':'ss(|'.'f)uo<('Z'|+(hh':'mm(|':'ss)))>"

var rfc3339Format = sync.OnceValue(func() *chronofmt.Format[*datetime.DateTimeFields] {
	f, err := chronofmt.Compile(datetime.DateTimeRegistry(), RFC3339Pattern, datetime.NewDateTimeFields)
	if err != nil {
		panic(err)
	}
	return f
})

// TimeRFC3339 returns a Codec that converts between RFC 3339 strings and
// time.Time. Encoding keeps the value's own zone offset; a zero offset
// renders as "Z".
func TimeRFC3339() Codec[string, time.Time] {
	return rfc3339Codec{}
}

type rfc3339Codec struct{}

func (rfc3339Codec) Decode(_ context.Context, wire string) (time.Time, error) {
	fields, err := rfc3339Format().Parse(wire)
	if err != nil {
		return time.Time{}, err
	}
	t, err := fields.Time()
	if err != nil {
		return time.Time{}, chronofmt.Issues{{
			Code:    chronofmt.CodeFieldUnset,
			Offset:  -1,
			Message: i18n.T(chronofmt.CodeFieldUnset, map[string]string{"detail": err.Error()}),
			Cause:   err,
		}}
	}
	return t, nil
}

func (rfc3339Codec) Encode(_ context.Context, value time.Time) (string, error) {
	return rfc3339Format().Format(datetime.FromTime(value))
}
