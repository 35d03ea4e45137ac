// Package parser holds the executable form a format structure compiles into
// for the parsing direction: a tree of operation sequences joined by
// backtracking forks. This package is internal and not part of the public API.
package parser

import "fmt"

// Copyable is implemented by parse accumulators. Every fork branch runs on its
// own copy, so an abandoned branch never leaks partial writes into a sibling.
type Copyable[Self any] interface {
	Copy() Self
}

// Operation is a single required consumption step with no internal choice.
// Consume advances the position or reports an Error anchored at the offset
// where the mismatch was detected. Operations may mutate the accumulator.
type Operation[T any] interface {
	Consume(storage T, input string, pos int) (int, *Error)
}

// Structure is one node of the parser tree: a required in-order run of
// operations, then a fork into alternative continuations. An empty FollowedBy
// means the node terminates a branch.
type Structure[T any] struct {
	Operations []Operation[T]
	FollowedBy []Structure[T]
}

// Error is a parse failure at a known input offset. Message is computed
// lazily; most errors are thrown away during backtracking.
type Error struct {
	Position int
	Message  func() string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("at position %d: %s", e.Position, e.Message())
}

func (e *Error) Unwrap() error { return e.Cause }

// Empty returns a structure that consumes nothing and succeeds.
func Empty[T any]() Structure[T] {
	return Structure[T]{}
}

// Operations returns a terminal structure running the given operations.
func Operations[T any](ops ...Operation[T]) Structure[T] {
	return Structure[T]{Operations: ops}
}

// Fork returns a structure that tries each branch in declaration order.
func Fork[T any](branches ...Structure[T]) Structure[T] {
	return Structure[T]{FollowedBy: branches}
}

// Append concatenates another structure after this one. When this node has no
// continuations the operations join in place; otherwise the suffix distributes
// over every branch so forks stay open until the end of the whole format.
func (s Structure[T]) Append(other Structure[T]) Structure[T] {
	if len(s.FollowedBy) == 0 {
		ops := make([]Operation[T], 0, len(s.Operations)+len(other.Operations))
		ops = append(ops, s.Operations...)
		ops = append(ops, other.Operations...)
		return Structure[T]{Operations: ops, FollowedBy: other.FollowedBy}
	}
	branches := make([]Structure[T], len(s.FollowedBy))
	for i, b := range s.FollowedBy {
		branches[i] = b.Append(other)
	}
	return Structure[T]{Operations: s.Operations, FollowedBy: branches}
}

// Concat folds a sequence of structures into one.
func Concat[T any](parts []Structure[T]) Structure[T] {
	if len(parts) == 0 {
		return Empty[T]()
	}
	result := parts[len(parts)-1]
	for i := len(parts) - 2; i >= 0; i-- {
		result = parts[i].Append(result)
	}
	return result
}

// Parse runs the structure over the whole input, starting from a copy of
// initial. The first branch whose full continuation consumes the input to the
// end wins. On failure the returned error is the one observed furthest into
// the input across all attempted branches.
func Parse[T Copyable[T]](s Structure[T], input string, initial T) (T, error) {
	r := &run[T]{input: input}
	v, _, ok := r.match(s, initial.Copy(), 0)
	if !ok {
		var zero T
		if r.best == nil {
			// Cannot happen: a failed match always records an error.
			r.best = &Error{Position: 0, Message: func() string { return "no parser branches" }}
		}
		return zero, r.best
	}
	return v, nil
}

type run[T Copyable[T]] struct {
	input string
	best  *Error
}

func (r *run[T]) note(e *Error) {
	if r.best == nil || e.Position > r.best.Position {
		r.best = e
	}
}

func (r *run[T]) match(s Structure[T], c T, pos int) (T, int, bool) {
	for _, op := range s.Operations {
		next, err := op.Consume(c, r.input, pos)
		if err != nil {
			r.note(err)
			var zero T
			return zero, 0, false
		}
		pos = next
	}
	if len(s.FollowedBy) == 0 {
		if pos != len(r.input) {
			p := pos
			r.note(&Error{Position: p, Message: func() string {
				return fmt.Sprintf("expected end of input but got %q", r.input[p:])
			}})
			var zero T
			return zero, 0, false
		}
		return c, pos, true
	}
	for _, branch := range s.FollowedBy {
		if v, next, ok := r.match(branch, c.Copy(), pos); ok {
			return v, next, true
		}
	}
	var zero T
	return zero, 0, false
}
