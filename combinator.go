package peg

import "fmt"

// Sequence runs each matcher in turn, each starting where the
// previous one stopped.  The first failure wins and comes back with a
// context entry naming which element failed; later elements are never
// tried.  On full success the value is the slice of every element's
// value.
func Sequence[T any](ms ...Matcher[T]) Matcher[[]T] {
	return func(input string, pos Position) (Match[[]T], error) {
		var (
			values = make([]T, 0, len(ms))
			cur    = pos
		)
		for i, m := range ms {
			item, err := m(input, cur)
			if err != nil {
				d := asDiagnostic(err)
				return Match[[]T]{}, d.withContext(fmt.Sprintf("sequence item %d of %d", i+1, len(ms)))
			}
			values = append(values, item.Value)
			cur = item.Next
		}
		return Match[[]T]{Value: values, Current: pos, Next: cur}, nil
	}
}

// Choice tries each alternative at the original position and commits
// to the first one that succeeds.  A failed alternative never moves
// the cursor for the next one.  When every alternative fails, the
// combined failure sits at the original position and its expectation
// set is the union of what each alternative expected.
func Choice[T any](ms ...Matcher[T]) Matcher[T] {
	return func(input string, pos Position) (Match[T], error) {
		var (
			zero     Match[T]
			expected []string
			seen     = map[string]struct{}{}
		)
		for _, m := range ms {
			item, err := m(input, pos)
			if err == nil {
				return item, nil
			}
			d := asDiagnostic(err)
			if d.fatal {
				return zero, d
			}
			for _, e := range d.Expected {
				if _, ok := seen[e]; !ok {
					seen[e] = struct{}{}
					expected = append(expected, e)
				}
			}
		}
		found := foundAt(input, pos)
		d := &Diagnostic{
			Message:  fmt.Sprintf("expected %s but got %s", quoteExpected(expected), found),
			Pos:      pos,
			Expected: expected,
			Found:    found,
			Matcher:  "choice",
		}
		return zero, d.withContext(fmt.Sprintf("all %d choice alternatives failed", len(ms)))
	}
}

// Opt is the value produced by Optional: the inner value when the
// inner matcher succeeded, and Ok reporting whether it did.
type Opt[T any] struct {
	Value T
	Ok    bool
}

// Optional tries the inner matcher and absorbs its failure: a miss
// produces an absent Opt without consuming input and without leaking
// the inner diagnostic.  Only fatal diagnostics (loop guards, bad
// quantifier bounds, unwired rules) pass through.
func Optional[T any](m Matcher[T]) Matcher[Opt[T]] {
	return func(input string, pos Position) (Match[Opt[T]], error) {
		item, err := m(input, pos)
		if err != nil {
			if isFatal(err) {
				return Match[Opt[T]]{}, err
			}
			return Match[Opt[T]]{Current: pos, Next: pos}, nil
		}
		return Match[Opt[T]]{
			Value:   Opt[T]{Value: item.Value, Ok: true},
			Current: pos,
			Next:    item.Next,
		}, nil
	}
}
