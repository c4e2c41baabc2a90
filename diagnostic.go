package peg

import (
	"fmt"
	"strings"
)

// Diagnostic is the structured failure record produced by every
// matcher in this package.  Composite matchers append entries to
// Context as a failure crosses their boundary, but the fields
// recorded by the inner matcher that actually hit the mismatch are
// never rewritten on the way out.
type Diagnostic struct {
	// Message is the human readable description of the failure
	Message string

	// Pos is the deepest position at which the mismatch occurred
	Pos Position

	// Expected lists what the failing matcher would have accepted
	Expected []string

	// Found holds what was sitting under the cursor instead
	Found string

	// Matcher names the matcher that produced the failure, when known
	Matcher string

	// Context accumulates one entry per composite boundary crossed,
	// innermost first
	Context []string

	// fatal marks failures that must not be absorbed by Choice,
	// Optional, repetition tails, or predicates: loop guards,
	// invalid quantifier bounds and unwired rule references
	fatal bool
}

// Error returns the human readable representation of the failure.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s @ %s", d.Message, d.Pos)
}

// Fatal reports whether this failure is a safety or configuration
// violation rather than an ordinary parse mismatch.
func (d *Diagnostic) Fatal() bool {
	return d.fatal
}

// withContext returns a copy of the diagnostic with one more context
// entry.  The copy owns its own Context backing array, so sibling
// call frames holding the original never observe the append.
func (d *Diagnostic) withContext(entry string) *Diagnostic {
	next := *d
	next.Context = make([]string, 0, len(d.Context)+1)
	next.Context = append(next.Context, d.Context...)
	next.Context = append(next.Context, entry)
	return &next
}

// newConfigError builds the fatal diagnostic used for programmer
// mistakes detected at the point of use, like invalid repetition
// bounds.  These are never parse failures.
func newConfigError(pos Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		fatal:   true,
	}
}

// asDiagnostic recovers the structured record from a matcher error.
// Matchers only ever fail with *Diagnostic; anything else is wrapped
// so callers can still rely on the structure.
func asDiagnostic(err error) *Diagnostic {
	if d, ok := err.(*Diagnostic); ok {
		return d
	}
	return &Diagnostic{Message: err.Error()}
}

// isFatal is the test every absorbing combinator runs before
// swallowing an inner failure.
func isFatal(err error) bool {
	d, ok := err.(*Diagnostic)
	return ok && d.fatal
}

// foundAt describes the character under `pos` the way diagnostics
// quote it, or names the end of the input.
func foundAt(input string, pos Position) string {
	r, size := decodeAt(input, pos.Offset)
	if size == 0 {
		return "end of input"
	}
	return fmt.Sprintf("`%c`", r)
}

// quoteExpected joins an expectation list for display.
func quoteExpected(expected []string) string {
	return strings.Join(expected, ", ")
}
