package peg

// Match is the success side of a matcher outcome: the value the
// matcher produced, the position the match started at, and the
// position right after the last consumed character.  Non-consuming
// constructs return Next equal to Current; everything else advances.
type Match[T any] struct {
	Value   T
	Current Position
	Next    Position
}

// Matcher is the unit of composition in this package: a pure function
// from an input text and a cursor position to either a Match or a
// *Diagnostic.  Matchers hold no per-call state, so the same matcher
// value can be applied repeatedly at the same position, or invoked
// concurrently, as long as the input is immutable for the duration of
// the calls.
type Matcher[T any] func(input string, pos Position) (Match[T], error)

// Run applies `m` to `input` starting from the beginning of the text.
func Run[T any](input string, m Matcher[T]) (Match[T], error) {
	return m(input, Start())
}

// Untyped erases the value type of a matcher so differently typed
// matchers can be combined in one heterogeneous composite, like the
// ones CaptureGroup builds.
func Untyped[T any](m Matcher[T]) Matcher[any] {
	return func(input string, pos Position) (Match[any], error) {
		item, err := m(input, pos)
		if err != nil {
			return Match[any]{}, err
		}
		return Match[any]{Value: item.Value, Current: item.Current, Next: item.Next}, nil
	}
}
