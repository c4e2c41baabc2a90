package peg

import "fmt"

// Unbounded is the `max` value for repetitions with no upper bound.
const Unbounded = -1

// ZeroOrMore applies the inner matcher repeatedly, collecting values
// until it fails, and never fails itself on an ordinary mismatch: an
// empty collection is a success.
func ZeroOrMore[T any](m Matcher[T]) Matcher[[]T] {
	return Repeat(0, Unbounded, m)
}

// OneOrMore behaves like ZeroOrMore but the first iteration must
// succeed; its failure fails the whole construct.
func OneOrMore[T any](m Matcher[T]) Matcher[[]T] {
	return Repeat(1, Unbounded, m)
}

// Repeat applies the inner matcher between `min` and `max` times,
// with max set to Unbounded for no upper limit.  The first `min`
// iterations are required: a failure there is a failure of the whole
// construct, naming which required repetition broke.  Past `min`,
// failures simply stop the loop.
//
// An inner matcher that succeeds without consuming input would loop
// forever, so every iteration is guarded: a zero-width success is a
// fatal "infinite loop" diagnostic, never a spin.  `min < 0` or
// `max < min` is a configuration error reported at first use,
// distinct from any parse failure.
func Repeat[T any](min, max int, m Matcher[T]) Matcher[[]T] {
	return func(input string, pos Position) (Match[[]T], error) {
		if min < 0 || (max != Unbounded && max < min) {
			return Match[[]T]{}, newConfigError(pos, "invalid repetition bounds {%d, %d}", min, max)
		}
		var (
			values []T
			cur    = pos
			count  = 0
		)
		for max == Unbounded || count < max {
			item, err := m(input, cur)
			if err != nil {
				d := asDiagnostic(err)
				if d.fatal {
					return Match[[]T]{}, d
				}
				if count < min {
					return Match[[]T]{}, d.withContext(repetitionContext(count+1, min, max))
				}
				break
			}
			if item.Next.Offset == cur.Offset {
				return Match[[]T]{}, &Diagnostic{
					Message: fmt.Sprintf("infinite loop: repeated matcher succeeded without consuming input at %s", cur),
					Pos:     cur,
					Matcher: "repeat",
					fatal:   true,
				}
			}
			values = append(values, item.Value)
			cur = item.Next
			count++
		}
		return Match[[]T]{Value: values, Current: pos, Next: cur}, nil
	}
}

func repetitionContext(n, min, max int) string {
	if max == Unbounded {
		return fmt.Sprintf("repetition %d of at least %d", n, min)
	}
	return fmt.Sprintf("repetition %d of %d to %d", n, min, max)
}
