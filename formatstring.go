package chronofmt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// reservedChars are rejected outside quoted literals so they stay available
// for future syntax instead of silently formatting as text.
const reservedChars = "[]{}#%^&*?!@`"

// Registry maps format-string directives to format structures for one target
// type: a (letter, repeat count) table plus named sub-builder delegation.
type Registry[T any] struct {
	directives  map[rune]map[int]FormatStructure[T]
	subBuilders map[string]*Registry[T]
}

// NewRegistry returns an empty directive registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		directives:  map[rune]map[int]FormatStructure[T]{},
		subBuilders: map[string]*Registry[T]{},
	}
}

// Register binds a letter repeated count times to a structure. Registering
// the same combination twice is a programming error and panics.
func (r *Registry[T]) Register(letter rune, count int, s FormatStructure[T]) {
	if !isASCIILetter(byte(letter)) || letter >= utf8.RuneSelf {
		panic(fmt.Sprintf("directive letter %q is not an ASCII letter", letter))
	}
	if count < 1 {
		panic(fmt.Sprintf("directive %q must repeat at least once", letter))
	}
	byCount := r.directives[letter]
	if byCount == nil {
		byCount = map[int]FormatStructure[T]{}
		r.directives[letter] = byCount
	}
	if _, dup := byCount[count]; dup {
		panic(fmt.Sprintf("directive %s is registered twice", strings.Repeat(string(letter), count)))
	}
	byCount[count] = s
}

// RegisterSubBuilder binds a name usable as name<...> to another registry
// whose directives apply inside the angle brackets.
func (r *Registry[T]) RegisterSubBuilder(name string, sub *Registry[T]) {
	if name == "" {
		panic("sub-builder name must not be empty")
	}
	if _, dup := r.subBuilders[name]; dup {
		panic(fmt.Sprintf("sub-builder %s is registered twice", name))
	}
	r.subBuilders[name] = sub
}

// ParseFormatString compiles the format-string mini-language into a format
// structure:
//
//   - '...' and "..." are literal text;
//   - a run of the same letter is a directive resolved through the registry;
//   - name<...> delegates the bracketed span to a named sub-builder;
//   - (...) groups, | separates parsing alternatives within a group;
//   - a leading + or - wraps the next directive or group in a shared sign
//     (with '+' the sign is also printed for non-negative values), so literal
//     hyphens must be quoted;
//   - unquoted digits are rejected, so a literal digit can never run into a
//     neighboring numeric field; write '0' instead of 0.
//
// Malformed input is reported as Issues carrying the offset of the offending
// character.
func ParseFormatString[T any](r *Registry[T], format string) (FormatStructure[T], error) {
	s, next, err := r.parseAlternation(format, 0, 0)
	if err != nil {
		return nil, err
	}
	if next != len(format) {
		return nil, singleIssue(CodeUnexpectedChar, next, "unbalanced %q", format[next])
	}
	return s, nil
}

// parseAlternation consumes format from start until the stop byte (0 for end
// of input) and returns the index of the unconsumed stop character.
func (r *Registry[T]) parseAlternation(format string, start int, stop byte) (FormatStructure[T], int, error) {
	var alternatives []FormatStructure[T]
	var current []FormatStructure[T]
	var pendingSign byte
	signPos := -1

	push := func(el FormatStructure[T]) error {
		if pendingSign != 0 {
			signed, err := Signed(el, pendingSign == '+')
			if err != nil {
				iss, _ := AsIssues(err)
				iss[0].Offset = signPos
				return iss
			}
			el = signed
			pendingSign = 0
		}
		current = append(current, el)
		return nil
	}
	noSign := func() error {
		if pendingSign != 0 {
			return singleIssue(CodeDanglingSign, signPos, "")
		}
		return nil
	}
	closeAlternative := func() FormatStructure[T] {
		var el FormatStructure[T]
		switch len(current) {
		case 0:
			el = Constant[T]("")
		case 1:
			el = current[0]
		default:
			el = Concat(current...)
		}
		current = nil
		return el
	}

	i := start
	for i < len(format) {
		c := format[i]
		switch {
		case c == stop:
			if err := noSign(); err != nil {
				return nil, 0, err
			}
			alternatives = append(alternatives, closeAlternative())
			return Alternatives(alternatives...), i, nil
		case c == '\'' || c == '"':
			end := strings.IndexByte(format[i+1:], c)
			if end < 0 {
				return nil, 0, singleIssue(CodeUnterminatedQuote, i, "")
			}
			if err := noSign(); err != nil {
				return nil, 0, err
			}
			if err := push(Constant[T](format[i+1 : i+1+end])); err != nil {
				return nil, 0, err
			}
			i += end + 2
		case c == '(':
			group, next, err := r.parseAlternation(format, i+1, ')')
			if err != nil {
				return nil, 0, err
			}
			if next >= len(format) {
				return nil, 0, singleIssue(CodeUnterminatedGroup, i, "")
			}
			if err := push(group); err != nil {
				return nil, 0, err
			}
			i = next + 1
		case c == ')' || c == '>':
			return nil, 0, singleIssue(CodeUnexpectedChar, i, "unbalanced %q", c)
		case c == '|':
			if err := noSign(); err != nil {
				return nil, 0, err
			}
			alternatives = append(alternatives, closeAlternative())
			i++
		case c == '+' || c == '-':
			if pendingSign != 0 {
				return nil, 0, singleIssue(CodeDuplicateSign, i, "")
			}
			pendingSign = c
			signPos = i
			i++
		case isASCIILetter(c):
			j := i
			for j < len(format) && isASCIILetter(format[j]) {
				j++
			}
			if j < len(format) && format[j] == '<' {
				name := format[i:j]
				sub, ok := r.subBuilders[name]
				if !ok {
					return nil, 0, singleIssue(CodeUnknownSubBuilder, i, "%s", name)
				}
				group, next, err := sub.parseAlternation(format, j+1, '>')
				if err != nil {
					return nil, 0, err
				}
				if next >= len(format) {
					return nil, 0, singleIssue(CodeUnterminatedGroup, j, "sub-builder span")
				}
				if err := push(group); err != nil {
					return nil, 0, err
				}
				i = next + 1
				continue
			}
			for i < j {
				letter := rune(format[i])
				runEnd := i
				for runEnd < j && format[runEnd] == format[i] {
					runEnd++
				}
				count := runEnd - i
				directive, ok := r.directives[letter][count]
				if !ok {
					return nil, 0, singleIssue(CodeUnknownDirective, i,
						"%s", strings.Repeat(string(letter), count))
				}
				if err := push(directive); err != nil {
					return nil, 0, err
				}
				i = runEnd
			}
		case isASCIIDigit(c):
			return nil, 0, singleIssue(CodeUnexpectedChar, i, "digits in a format must be quoted")
		case strings.IndexByte(reservedChars, c) >= 0:
			return nil, 0, singleIssue(CodeReservedChar, i, "%q", c)
		default:
			if err := noSign(); err != nil {
				return nil, 0, err
			}
			ch, size := utf8.DecodeRuneInString(format[i:])
			if err := push(Constant[T](string(ch))); err != nil {
				return nil, 0, err
			}
			i += size
		}
	}
	// Ran off the end; when a stop byte was expected the caller reports the
	// unterminated opener.
	if err := noSign(); err != nil {
		return nil, 0, err
	}
	alternatives = append(alternatives, closeAlternative())
	return Alternatives(alternatives...), len(format), nil
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
