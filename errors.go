package chronofmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chronofmt/chronofmt/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Format-string compile errors. All carry the byte offset of the
	// offending character in Issue.Offset.
	CodeUnknownDirective  = "unknown_directive"
	CodeUnterminatedQuote = "unterminated_quote"
	CodeUnterminatedGroup = "unterminated_group"
	CodeReservedChar      = "reserved_char"
	CodeDanglingSign      = "dangling_sign"
	CodeDuplicateSign     = "duplicate_sign"
	CodeUnknownSubBuilder = "unknown_sub_builder"
	CodeUnexpectedChar    = "unexpected_char"

	// Structure construction errors.
	CodeSignlessGroup   = "signless_group"
	CodeNoDefault       = "no_default"
	CodeBadAlternatives = "bad_alternatives"

	// Parse-time data errors.
	CodeParseError = "parse_error"
	CodeConflict   = "conflict"

	// Formatting-time errors.
	CodeFieldUnset    = "field_unset"
	CodeFormatInvalid = "format_invalid"
)

// Issue represents a single format-compilation, parse, or formatting failure.
type Issue struct {
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	Offset  int    // Byte offset into the format string or parse input (-1 when unknown).
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Offset >= 0 {
			fmt.Fprintf(b, "%s at offset %d: %s", it.Code, it.Offset, it.Message)
		} else {
			fmt.Fprintf(b, "%s: %s", it.Code, it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// singleIssue builds a one-element Issues. The message is looked up through
// the i18n translator; detail, when non-empty, names the specifics (the
// offending directive, field, input fragment).
func singleIssue(code string, offset int, detail string, args ...any) Issues {
	var data map[string]string
	if detail != "" {
		data = map[string]string{"detail": fmt.Sprintf(detail, args...)}
	}
	return Issues{{Code: code, Message: i18n.T(code, data), Offset: offset}}
}

// conflictError reports that one parse assigned two different values to the
// same field. It surfaces as CodeConflict in the terminal parse error.
type conflictError struct {
	field    string
	old, new string
}

func (e *conflictError) Error() string {
	return fmt.Sprintf("attempting to assign conflicting values %s and %s to field %s", e.old, e.new, e.field)
}
