package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balanced is `B <- '(' B* ')'`, the classic self-recursive grammar.
func balanced() *Grammar {
	return &Grammar{Definitions: []Definition{
		{Name: "B", Expr: SequenceExpr{Items: []Expr{
			LiteralExpr{Value: "("},
			RepeatExpr{Min: 0, Max: Unbounded, Expr: RefExpr{Name: "B"}},
			LiteralExpr{Value: ")"},
		}}},
	}}
}

func TestCompileGrammar(t *testing.T) {
	t.Run("recursive rule matches nested input", func(t *testing.T) {
		m, err := CompileGrammar(balanced())
		require.NoError(t, err)

		for _, input := range []string{"()", "(())", "(()())", "((()))"} {
			item, err := Run(input, m)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, len(input), item.Next.Offset, "input %q", input)
		}
	})

	t.Run("recursive rule rejects unbalanced input", func(t *testing.T) {
		m, err := CompileGrammar(balanced())
		require.NoError(t, err)

		for _, input := range []string{"", "(", "(()", ")("} {
			_, err := Run(input, m)
			assert.Error(t, err, "input %q", input)
		}
	})

	t.Run("mutually recursive rules resolve", func(t *testing.T) {
		// A <- 'a' B?   B <- 'b' A
		g := &Grammar{Definitions: []Definition{
			{Name: "A", Expr: SequenceExpr{Items: []Expr{
				LiteralExpr{Value: "a"},
				OptionalExpr{Expr: RefExpr{Name: "B"}},
			}}},
			{Name: "B", Expr: SequenceExpr{Items: []Expr{
				LiteralExpr{Value: "b"},
				RefExpr{Name: "A"},
			}}},
		}}
		m, err := CompileGrammar(g)
		require.NoError(t, err)

		item, err := Run("ababa", m)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Next.Offset)
	})

	t.Run("undefined rule reference is a compile error", func(t *testing.T) {
		g := &Grammar{Definitions: []Definition{
			{Name: "A", Expr: RefExpr{Name: "Nope"}},
		}}
		_, err := CompileGrammar(g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "undefined rule `Nope`")
	})

	t.Run("duplicate definitions are a compile error", func(t *testing.T) {
		g := &Grammar{Definitions: []Definition{
			{Name: "A", Expr: AnyExpr{}},
			{Name: "A", Expr: AnyExpr{}},
		}}
		_, err := CompileGrammar(g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "defined twice")
	})

	t.Run("empty grammar is a compile error", func(t *testing.T) {
		_, err := CompileGrammar(&Grammar{})
		require.Error(t, err)
	})

	t.Run("invalid repetition bounds are a compile error", func(t *testing.T) {
		g := &Grammar{Definitions: []Definition{
			{Name: "A", Expr: RepeatExpr{Min: 3, Max: 1, Expr: AnyExpr{}}},
		}}
		_, err := CompileGrammar(g)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid repetition bounds")
	})

	t.Run("captures merge through grammar sequences", func(t *testing.T) {
		// KV <- k:[a-z]+ '=' v:[0-9]+
		g := &Grammar{Definitions: []Definition{
			{Name: "KV", Expr: SequenceExpr{Items: []Expr{
				CaptureExpr{Label: "k", Expr: RepeatExpr{
					Min: 1, Max: Unbounded,
					Expr: ClassExpr{Items: []ClassItem{CharRange{'a', 'z'}}},
				}},
				LiteralExpr{Value: "="},
				CaptureExpr{Label: "v", Expr: RepeatExpr{
					Min: 1, Max: Unbounded,
					Expr: ClassExpr{Items: []ClassItem{CharRange{'0', '9'}}},
				}},
			}}},
		}}
		m, err := CompileGrammar(g)
		require.NoError(t, err)

		item, err := Run("ab=42", m)
		require.NoError(t, err)
		captures, ok := item.Value.(Captures)
		require.True(t, ok)
		assert.Len(t, captures, 2)
		assert.Equal(t, []any{"a", "b"}, captures["k"])
		assert.Equal(t, []any{"4", "2"}, captures["v"])
	})

	t.Run("predicates compile and never consume", func(t *testing.T) {
		// A <- &'ab' .
		g := &Grammar{Definitions: []Definition{
			{Name: "A", Expr: SequenceExpr{Items: []Expr{
				AndExpr{Expr: LiteralExpr{Value: "ab"}},
				AnyExpr{},
			}}},
		}}
		m, err := CompileGrammar(g)
		require.NoError(t, err)

		item, err := Run("abc", m)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Next.Offset)
	})
}

func TestRunGrammar(t *testing.T) {
	t.Run("defaults run the first definition", func(t *testing.T) {
		item, err := RunGrammar(balanced(), "(())", nil)
		require.NoError(t, err)
		assert.Equal(t, 4, item.Next.Offset)
	})

	t.Run("entry rule can be overridden", func(t *testing.T) {
		g := &Grammar{Definitions: []Definition{
			{Name: "A", Expr: LiteralExpr{Value: "a"}},
			{Name: "B", Expr: LiteralExpr{Value: "b"}},
		}}
		cfg := NewConfig()
		cfg.SetString("interp.entry", "B")

		item, err := RunGrammar(g, "b", cfg)
		require.NoError(t, err)
		assert.Equal(t, "b", item.Value)
	})

	t.Run("unknown entry rule is an error", func(t *testing.T) {
		cfg := NewConfig()
		cfg.SetString("interp.entry", "Missing")
		_, err := RunGrammar(balanced(), "()", cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry rule `Missing` is not defined")
	})

	t.Run("memoized and plain runs agree", func(t *testing.T) {
		memoized := NewConfig()
		plain := NewConfig()
		plain.SetBool("memo.enabled", false)

		for _, input := range []string{"()", "((()))", "(()", ""} {
			a, errA := RunGrammar(balanced(), input, memoized)
			b, errB := RunGrammar(balanced(), input, plain)
			if errA != nil || errB != nil {
				assert.Error(t, errA, "input %q", input)
				assert.Error(t, errB, "input %q", input)
				continue
			}
			assert.Equal(t, a.Next, b.Next, "input %q", input)
		}
	})
}

func TestRuleCell_unwired(t *testing.T) {
	cell := &ruleCell{name: "Orphan"}
	_, err := cell.match("x", Start())
	require.Error(t, err)
	d := asDiagnostic(err)
	assert.True(t, d.fatal)
	assert.Contains(t, d.Message, "referenced before it was wired")
}
