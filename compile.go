package chronofmt

import (
	"fmt"

	"github.com/chronofmt/chronofmt/internal/formatter"
	"github.com/chronofmt/chronofmt/internal/parser"
)

// formatterOf lowers a format structure into its formatting operation tree.
func formatterOf[T any](s FormatStructure[T]) (formatter.Formatter[T], error) {
	switch s := s.(type) {
	case constantStructure[T]:
		return formatter.ConstantFormatter[T]{String: s.text}, nil
	case basicStructure[T]:
		return s.directive.formatterOp(), nil
	case concatenatedStructure[T]:
		subs := make([]formatter.Formatter[T], len(s.parts))
		for i, p := range s.parts {
			sub, err := formatterOf(p)
			if err != nil {
				return nil, err
			}
			subs[i] = sub
		}
		if len(subs) == 1 {
			return subs[0], nil
		}
		return formatter.ConcatenatedFormatter[T]{Formatters: subs}, nil
	case signedStructure[T]:
		inner, err := formatterOf(s.inner)
		if err != nil {
			return nil, err
		}
		signs := s.signs
		return formatter.SignedFormatter[T]{
			Formatter:    inner,
			WithPlusSign: s.withPlusSign,
			AllNegative: func(obj T) bool {
				// The group is collectively negative iff some member group is
				// nonzero and no nonzero member group reads non-negative.
				seenNonZero := false
				for _, g := range signs {
					if g.IsZero(obj) {
						continue
					}
					neg, ok := g.IsNegative.Get(obj)
					if !ok || !neg {
						return false
					}
					seenNonZero = true
				}
				return seenNonZero
			},
		}, nil
	case alternativesStructure[T]:
		return alternativesFormatter(s.formats)
	case optionalStructure[T]:
		inner, err := formatterOf(s.inner)
		if err != nil {
			return nil, err
		}
		fields := s.inner.fields()
		return formatter.ConditionalFormatter[T]{Options: []formatter.ConditionalOption[T]{
			{Predicate: allDefault(fields), Formatter: formatter.ConstantFormatter[T]{String: s.onZero}},
			{Formatter: inner},
		}}, nil
	case *cachedStructure[T]:
		return s.formatter, nil
	}
	panic(fmt.Sprintf("unknown format structure %T", s))
}

// alternativesFormatter builds the conditional formatter for an alternatives
// chain. Candidates are declared least verbose first and each later candidate
// must cover a superset of the previous one's fields. At format time the
// earliest candidate whose more-verbose neighbor's extra fields are all at
// default wins, so fully-defaulted values take the short form and set fields
// force the form that can carry them.
func alternativesFormatter[T any](formats []FormatStructure[T]) (formatter.Formatter[T], error) {
	n := len(formats)
	last, err := formatterOf(formats[n-1])
	if err != nil {
		return nil, err
	}
	options := []formatter.ConditionalOption[T]{{Formatter: last}}
	prev := fieldsByName(formats[n-1])
	for i := n - 2; i >= 0; i-- {
		cur := fieldsByName(formats[i])
		for name := range cur {
			if _, ok := prev[name]; !ok {
				return nil, singleIssue(CodeBadAlternatives, -1,
					"alternative %s uses field %s that its more verbose neighbor lacks", formats[i].debugString(), name)
			}
		}
		var extra []Field[T]
		for name, f := range prev {
			if _, ok := cur[name]; !ok {
				if !f.HasDefault() {
					return nil, singleIssue(CodeNoDefault, -1,
						"field %s makes the shorter alternative %s unreachable",
						name, formats[i].debugString())
				}
				extra = append(extra, f)
			}
		}
		sub, err := formatterOf(formats[i])
		if err != nil {
			return nil, err
		}
		if len(extra) == 0 {
			// Constantly true predicate: everything more verbose is
			// unreachable from here on.
			options = options[:0]
			options = append(options, formatter.ConditionalOption[T]{Formatter: sub})
		} else {
			options = append([]formatter.ConditionalOption[T]{
				{Predicate: allDefault(extra), Formatter: sub},
			}, options...)
		}
		prev = cur
	}
	return formatter.ConditionalFormatter[T]{Options: options}, nil
}

func fieldsByName[T any](s FormatStructure[T]) map[string]Field[T] {
	out := map[string]Field[T]{}
	for _, f := range s.fields() {
		out[f.Name()] = f
	}
	return out
}

func allDefault[T any](fields []Field[T]) func(T) bool {
	return func(obj T) bool {
		for _, f := range fields {
			if !f.IsDefault(obj) {
				return false
			}
		}
		return true
	}
}

// parserOf lowers a format structure into its parser tree. The caller runs
// parser.Simplify once over the full result.
func parserOf[T any](s FormatStructure[T]) (parser.Structure[T], error) {
	switch s := s.(type) {
	case constantStructure[T]:
		return parser.Operations(constantOps[T](s.text)...), nil
	case basicStructure[T]:
		return s.directive.parserStructure(), nil
	case concatenatedStructure[T]:
		parts := make([]parser.Structure[T], len(s.parts))
		for i, p := range s.parts {
			sub, err := parserOf(p)
			if err != nil {
				return parser.Structure[T]{}, err
			}
			parts[i] = sub
		}
		return parser.Concat(parts), nil
	case signedStructure[T]:
		inner, err := parserOf(s.inner)
		if err != nil {
			return parser.Structure[T]{}, err
		}
		signs := s.signs
		withSign := parser.Operations[T](parser.SignParser[T]{
			WithPlusSign: s.withPlusSign,
			Expects:      "a sign",
			SetNegative: func(obj T, negative bool) {
				// XOR with any sign recorded by an enclosing group, so a
				// doubly negated nested group comes out positive.
				for _, g := range signs {
					prev, ok := g.IsNegative.Get(obj)
					g.IsNegative.Set(obj, (ok && prev) != negative)
				}
			},
		}).Append(inner)
		if s.withPlusSign {
			// Output always carries a sign, so input must too.
			return withSign, nil
		}
		return parser.Fork(withSign, inner), nil
	case alternativesStructure[T]:
		branches := make([]parser.Structure[T], len(s.formats))
		for i, c := range s.formats {
			sub, err := parserOf(c)
			if err != nil {
				return parser.Structure[T]{}, err
			}
			branches[i] = sub
		}
		return parser.Fork(branches...), nil
	case optionalStructure[T]:
		inner, err := parserOf(s.inner)
		if err != nil {
			return parser.Structure[T]{}, err
		}
		fields := s.inner.fields()
		ops := constantOps[T](s.onZero)
		ops = append(ops, parser.UnconditionalModificationOperation[T]{
			Apply: func(obj T) {
				// The absent branch still leaves every field determinate.
				for _, f := range fields {
					f.AssignDefault(obj)
				}
			},
		})
		return parser.Fork(inner, parser.Operations(ops...)), nil
	case *cachedStructure[T]:
		return s.parser, nil
	}
	panic(fmt.Sprintf("unknown format structure %T", s))
}

// constantOps turns literal text into parse operations. Leading and trailing
// digit runs become constant number consumers so the simplifier can merge
// them into adjacent numeric spans instead of letting a neighboring field
// swallow them.
func constantOps[T any](text string) []parser.Operation[T] {
	if text == "" {
		return nil
	}
	lead := 0
	for lead < len(text) && isASCIIDigit(text[lead]) {
		lead++
	}
	if lead == len(text) {
		return []parser.Operation[T]{parser.NumberSpanParserOperation[T]{
			Consumers: []parser.NumberConsumer[T]{parser.ConstantNumberConsumer[T]{Expected: text}},
		}}
	}
	trail := len(text)
	for isASCIIDigit(text[trail-1]) {
		trail--
	}
	var ops []parser.Operation[T]
	if lead > 0 {
		ops = append(ops, parser.NumberSpanParserOperation[T]{
			Consumers: []parser.NumberConsumer[T]{parser.ConstantNumberConsumer[T]{Expected: text[:lead]}},
		})
	}
	ops = append(ops, parser.PlainStringParserOperation[T]{String: text[lead:trail]})
	if trail < len(text) {
		ops = append(ops, parser.NumberSpanParserOperation[T]{
			Consumers: []parser.NumberConsumer[T]{parser.ConstantNumberConsumer[T]{Expected: text[trail:]}},
		})
	}
	return ops
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }
