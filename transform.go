package peg

// Map applies `fn` to the value of a successful match.  Failures pass
// through untouched and `fn` is never invoked for them.
func Map[T, U any](m Matcher[T], fn func(T) U) Matcher[U] {
	return func(input string, pos Position) (Match[U], error) {
		item, err := m(input, pos)
		if err != nil {
			return Match[U]{}, err
		}
		return Match[U]{
			Value:   fn(item.Value),
			Current: item.Current,
			Next:    item.Next,
		}, nil
	}
}

// MapMatch is Map for position-aware transformations: `fn` receives
// the whole success record, positions included, which is how callers
// attach source spans to the values they build.
func MapMatch[T, U any](m Matcher[T], fn func(Match[T]) U) Matcher[U] {
	return func(input string, pos Position) (Match[U], error) {
		item, err := m(input, pos)
		if err != nil {
			return Match[U]{}, err
		}
		return Match[U]{
			Value:   fn(item),
			Current: item.Current,
			Next:    item.Next,
		}, nil
	}
}

// Captures maps labels to the values matched under them.  Multiple
// captures compose by key-wise merge where the rightmost capture wins
// on collision.
type Captures map[string]any

// Merge folds `other` into a copy of the receiver, with keys from
// `other` winning on collision.
func (c Captures) Merge(other Captures) Captures {
	merged := make(Captures, len(c)+len(other))
	for k, v := range c {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Capture tags a matcher's value under `label`, producing a
// single-key Captures mapping.  Ordered choice carries capture status
// through unchanged, so a Choice of captured alternatives yields
// whichever mapping the winning alternative produced.
func Capture[T any](label string, m Matcher[T]) Matcher[Captures] {
	return Map(m, func(v T) Captures {
		return Captures{label: v}
	})
}

// CaptureGroup runs `ms` in sequence and then decides the shape of
// the result.  Capture semantics are infectious: when any element
// produced a Captures mapping, all mappings are merged key-wise with
// the rightmost winning, and the uncaptured positional values are
// dropped.  When no element captured anything, the plain slice of
// all values comes back instead.
func CaptureGroup(ms ...Matcher[any]) Matcher[any] {
	seq := Sequence(ms...)
	return func(input string, pos Position) (Match[any], error) {
		item, err := seq(input, pos)
		if err != nil {
			return Match[any]{}, err
		}
		var (
			merged     = Captures{}
			sawCapture = false
		)
		for _, v := range item.Value {
			if c, ok := v.(Captures); ok {
				sawCapture = true
				merged = merged.Merge(c)
			}
		}
		var value any = item.Value
		if sawCapture {
			value = merged
		}
		return Match[any]{Value: value, Current: item.Current, Next: item.Next}, nil
	}
}
