package peg

import (
	"fmt"
	"strings"
)

// Any matches exactly one character, whatever it is, and fails only
// at the end of the input.
func Any() Matcher[string] {
	return func(input string, pos Position) (Match[string], error) {
		r, size := decodeAt(input, pos.Offset)
		if size == 0 {
			return Match[string]{}, &Diagnostic{
				Message:  "unexpected end of input",
				Pos:      pos,
				Expected: []string{"any character"},
				Found:    "end of input",
				Matcher:  "any",
			}
		}
		return Match[string]{
			Value:   string(r),
			Current: pos,
			Next:    pos.Advance(r, size),
		}, nil
	}
}

// Literal matches `target` character by character.  The comparison
// walks decoded characters on both sides, so targets containing
// multi-byte characters report the mismatch at the exact character
// that differs, not at some byte in the middle of it.
func Literal(target string) Matcher[string] {
	return func(input string, pos Position) (Match[string], error) {
		if target == "" {
			return Match[string]{}, newConfigError(pos, "literal target must not be empty")
		}
		cur := pos
		for i := 0; i < len(target); {
			want, wsize := decodeAt(target, i)
			got, gsize := decodeAt(input, cur.Offset)
			if gsize == 0 {
				return Match[string]{}, &Diagnostic{
					Message:  fmt.Sprintf("unexpected end of input while matching `%s`", target),
					Pos:      cur,
					Expected: []string{"`" + target + "`"},
					Found:    "end of input",
					Matcher:  "literal",
				}
			}
			if got != want {
				return Match[string]{}, &Diagnostic{
					Message:  fmt.Sprintf("expected `%s` but got `%c`", target, got),
					Pos:      cur,
					Expected: []string{"`" + target + "`"},
					Found:    fmt.Sprintf("`%c`", got),
					Matcher:  "literal",
				}
			}
			cur = cur.Advance(got, gsize)
			i += wsize
		}
		return Match[string]{Value: target, Current: pos, Next: cur}, nil
	}
}

// ClassItem is one alternative of a character class: a single
// character or an inclusive code point range.
type ClassItem interface {
	matches(r rune) bool

	// Text renders the item the way class diagnostics enumerate it
	Text() string
}

// Char accepts exactly one character.
type Char rune

func (c Char) matches(r rune) bool { return rune(c) == r }
func (c Char) Text() string        { return fmt.Sprintf("`%c`", rune(c)) }

// CharRange accepts any character between Lo and Hi, inclusive, by
// code point.  Ranges beyond the basic multilingual plane work the
// same as any other: the comparison is on decoded code points.
type CharRange struct {
	Lo, Hi rune
}

func (c CharRange) matches(r rune) bool { return r >= c.Lo && r <= c.Hi }
func (c CharRange) Text() string        { return fmt.Sprintf("`%c-%c`", c.Lo, c.Hi) }

// CharClass matches one character accepted by any of `items`.  The
// failure message enumerates every accepted character and range.
func CharClass(items ...ClassItem) Matcher[string] {
	return func(input string, pos Position) (Match[string], error) {
		if len(items) == 0 {
			return Match[string]{}, newConfigError(pos, "character class must not be empty")
		}
		r, size := decodeAt(input, pos.Offset)
		if size == 0 {
			return Match[string]{}, &Diagnostic{
				Message:  fmt.Sprintf("unexpected end of input, expected one of %s", classText(items)),
				Pos:      pos,
				Expected: classExpected(items),
				Found:    "end of input",
				Matcher:  "class",
			}
		}
		for _, item := range items {
			if item.matches(r) {
				return Match[string]{
					Value:   string(r),
					Current: pos,
					Next:    pos.Advance(r, size),
				}, nil
			}
		}
		return Match[string]{}, &Diagnostic{
			Message:  fmt.Sprintf("expected one of %s but got `%c`", classText(items), r),
			Pos:      pos,
			Expected: classExpected(items),
			Found:    fmt.Sprintf("`%c`", r),
			Matcher:  "class",
		}
	}
}

func classExpected(items []ClassItem) []string {
	expected := make([]string, len(items))
	for i, item := range items {
		expected[i] = item.Text()
	}
	return expected
}

func classText(items []ClassItem) string {
	return strings.Join(classExpected(items), ", ")
}
