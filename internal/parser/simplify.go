package parser

// Simplify normalizes a compiled parser tree. Adjacent number-span operations
// within one sequential run merge into a single multi-field span, empty fork
// nodes splice into their parent, and a trailing number span right before a
// fork is pushed into every branch (merging with a branch's own leading span
// when it has one). Without the last step, width-ambiguous numeric fields on
// either side of an alternative boundary would be scanned independently and
// mis-split.
func Simplify[T any](s Structure[T]) Structure[T] {
	var ops []Operation[T]
	var span []NumberConsumer[T]
	flush := func() {
		if span != nil {
			ops = append(ops, NumberSpanParserOperation[T]{Consumers: span})
			span = nil
		}
	}
	for _, op := range s.Operations {
		switch op := op.(type) {
		case NumberSpanParserOperation[T]:
			span = append(span, op.Consumers...)
		case UnconditionalModificationOperation[T]:
			// Zero-width and digit-blind, so it may run ahead of a pending
			// span without changing the outcome.
			ops = append(ops, op)
		default:
			flush()
			ops = append(ops, op)
		}
	}

	var branches []Structure[T]
	for _, b := range s.FollowedBy {
		simplified := Simplify(b)
		if len(simplified.Operations) == 0 && len(simplified.FollowedBy) > 0 {
			branches = append(branches, simplified.FollowedBy...)
		} else {
			branches = append(branches, simplified)
		}
	}

	if span == nil {
		return Structure[T]{Operations: ops, FollowedBy: branches}
	}
	if len(branches) == 0 {
		flush()
		return Structure[T]{Operations: ops}
	}
	pushed := make([]Structure[T], len(branches))
	for i, b := range branches {
		pushed[i] = prependSpan(span, b)
	}
	return Structure[T]{Operations: ops, FollowedBy: pushed}
}

func prependSpan[T any](span []NumberConsumer[T], s Structure[T]) Structure[T] {
	merged := make([]NumberConsumer[T], len(span))
	copy(merged, span)
	rest := s.Operations
	if len(rest) > 0 {
		if head, ok := rest[0].(NumberSpanParserOperation[T]); ok {
			merged = append(merged, head.Consumers...)
			rest = rest[1:]
		}
	}
	ops := make([]Operation[T], 0, len(rest)+1)
	ops = append(ops, NumberSpanParserOperation[T]{Consumers: merged})
	ops = append(ops, rest...)
	return Structure[T]{Operations: ops, FollowedBy: s.FollowedBy}
}
