// Package codec converts between wire representations and domain values on
// top of compiled formats, e.g. RFC 3339 strings and time.Time.
package codec

import (
	"context"

	chronofmt "github.com/chronofmt/chronofmt"
)

// Codec converts between a wire representation A and a domain value B.
// Decode and Encode are inverses up to fields the underlying format does not
// carry.
type Codec[A, B any] interface {
	Decode(ctx context.Context, wire A) (B, error)
	Encode(ctx context.Context, value B) (A, error)
}

// ForFormat adapts a compiled format into a string codec for its own field
// container.
func ForFormat[T chronofmt.Copyable[T]](f *chronofmt.Format[T]) Codec[string, T] {
	return formatCodec[T]{format: f}
}

type formatCodec[T chronofmt.Copyable[T]] struct {
	format *chronofmt.Format[T]
}

func (c formatCodec[T]) Decode(_ context.Context, wire string) (T, error) {
	return c.format.Parse(wire)
}

func (c formatCodec[T]) Encode(_ context.Context, value T) (string, error) {
	return c.format.Format(value)
}
