package peg

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// memoKey identifies one matcher application within a single run.
// The input text is not part of the key, which is why a table must
// never be shared between runs over different inputs.
type memoKey struct {
	name   string
	offset int
}

type memoEntry[T any] struct {
	match Match[T]
	err   error
}

// MemoTable is a bounded cache of matcher outcomes for one parse run,
// evicting least recently used entries once full.  It is safe for
// concurrent fills, but it is owned by the run that opted into it:
// reusing a table across inputs would serve stale outcomes, since
// keys carry only the matcher name and byte offset.
type MemoTable[T any] struct {
	entries *lru.Cache[memoKey, memoEntry[T]]
}

// NewMemoTable creates a table holding at most `capacity` entries.
func NewMemoTable[T any](capacity int) (*MemoTable[T], error) {
	entries, err := lru.New[memoKey, memoEntry[T]](capacity)
	if err != nil {
		return nil, err
	}
	return &MemoTable[T]{entries: entries}, nil
}

// Len returns the number of cached outcomes.
func (t *MemoTable[T]) Len() int {
	return t.entries.Len()
}

// Memoize wraps `m` so repeated applications at the same offset come
// from `table` instead of re-running the matcher.  `name` must
// uniquely identify `m` among the matchers sharing the table.  Both
// successes and failures are cached; matchers are pure, so replaying
// an outcome is indistinguishable from recomputing it.
func Memoize[T any](name string, table *MemoTable[T], m Matcher[T]) Matcher[T] {
	return func(input string, pos Position) (Match[T], error) {
		key := memoKey{name: name, offset: pos.Offset}
		if entry, ok := table.entries.Get(key); ok {
			return entry.match, entry.err
		}
		match, err := m(input, pos)
		table.entries.Add(key, memoEntry[T]{match: match, err: err})
		return match, err
	}
}
