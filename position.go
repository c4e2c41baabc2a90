package peg

import (
	"fmt"
	"unicode/utf8"
)

// Position is an immutable cursor into the input text.  Offset counts
// UTF-8 bytes from the start of the input, Line counts newline
// characters seen plus one, and Column counts runes since the last
// newline.  A new position is always computed, never mutated in
// place.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Start returns the position every top-level match begins at.
func Start() Position {
	return Position{Offset: 0, Line: 1, Column: 0}
}

// Advance computes the position right after consuming the rune `r`
// whose encoding takes `size` bytes.  Columns are rune based, so a
// multi-byte rune still moves the column by one while the offset
// moves by its full encoded length.
func (p Position) Advance(r rune, size int) Position {
	next := Position{Offset: p.Offset + size, Line: p.Line, Column: p.Column + 1}
	if r == '\n' {
		next.Line++
		next.Column = 0
	}
	return next
}

// String returns the human readable `line:column` rendering used in
// error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// decodeAt reads the character starting at byte `offset` of the input
// and the length of its encoding.  It returns (0, 0) at the end of
// the input.  This is the only place the package decodes input text;
// every primitive matcher reads through it.
func decodeAt(input string, offset int) (rune, int) {
	if offset >= len(input) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(input[offset:])
	return r, size
}
