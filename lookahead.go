package peg

import "fmt"

// And is the positive lookahead predicate: it succeeds exactly when
// the inner matcher succeeds, produces no value, and never moves the
// cursor no matter how much the inner matcher consumed.
func And[T any](m Matcher[T]) Matcher[T] {
	return func(input string, pos Position) (Match[T], error) {
		var zero Match[T]
		_, err := m(input, pos)
		if err != nil {
			d := asDiagnostic(err)
			if d.fatal {
				return zero, d
			}
			return zero, d.withContext("positive lookahead")
		}
		return Match[T]{Current: pos, Next: pos}, nil
	}
}

// Not is the negative lookahead predicate: the logical complement of
// And.  It succeeds, without consuming, exactly when the inner
// matcher fails, and absorbs that inner failure entirely.
func Not[T any](m Matcher[T]) Matcher[T] {
	return func(input string, pos Position) (Match[T], error) {
		var zero Match[T]
		item, err := m(input, pos)
		if err != nil {
			if isFatal(err) {
				return zero, err
			}
			return Match[T]{Current: pos, Next: pos}, nil
		}
		consumed := input[pos.Offset:item.Next.Offset]
		d := &Diagnostic{
			Message: fmt.Sprintf("unexpected `%s`", consumed),
			Pos:     pos,
			Found:   fmt.Sprintf("`%s`", consumed),
			Matcher: "not",
		}
		return zero, d.withContext("negative lookahead")
	}
}
