package peg

import (
	"fmt"
	"strings"
)

// Expr is the closed set of grammar expression kinds the interpreter
// knows how to turn into matchers.  The unexported marker keeps the
// set closed: adding a kind means touching every exhaustive switch
// that dispatches on it.
type Expr interface {
	// Text renders the expression in PEG notation
	Text() string

	exprNode()
}

// Expr Kind: Any

type AnyExpr struct{}

func (AnyExpr) exprNode()    {}
func (AnyExpr) Text() string { return "." }

// Expr Kind: Literal

type LiteralExpr struct {
	Value string
}

func (LiteralExpr) exprNode()      {}
func (e LiteralExpr) Text() string { return fmt.Sprintf("'%s'", e.Value) }

// Expr Kind: Class

type ClassExpr struct {
	Items []ClassItem
}

func (ClassExpr) exprNode() {}

func (e ClassExpr) Text() string {
	var s strings.Builder
	s.WriteString("[")
	for _, item := range e.Items {
		switch it := item.(type) {
		case Char:
			s.WriteRune(rune(it))
		case CharRange:
			fmt.Fprintf(&s, "%c-%c", it.Lo, it.Hi)
		}
	}
	s.WriteString("]")
	return s.String()
}

// Expr Kind: Sequence

type SequenceExpr struct {
	Items []Expr
}

func (SequenceExpr) exprNode()      {}
func (e SequenceExpr) Text() string { return exprsText(e.Items, " ") }

// Expr Kind: Choice

type ChoiceExpr struct {
	Items []Expr
}

func (ChoiceExpr) exprNode()      {}
func (e ChoiceExpr) Text() string { return exprsText(e.Items, " / ") }

// Expr Kind: Optional

type OptionalExpr struct {
	Expr Expr
}

func (OptionalExpr) exprNode()      {}
func (e OptionalExpr) Text() string { return subText(e.Expr) + "?" }

// Expr Kind: Repeat

// RepeatExpr covers the whole quantifier family: {0, Unbounded} is
// `*`, {1, Unbounded} is `+`, anything else prints its bounds.
type RepeatExpr struct {
	Min  int
	Max  int
	Expr Expr
}

func (RepeatExpr) exprNode() {}

func (e RepeatExpr) Text() string {
	switch {
	case e.Min == 0 && e.Max == Unbounded:
		return subText(e.Expr) + "*"
	case e.Min == 1 && e.Max == Unbounded:
		return subText(e.Expr) + "+"
	case e.Max == Unbounded:
		return fmt.Sprintf("%s{%d,}", subText(e.Expr), e.Min)
	default:
		return fmt.Sprintf("%s{%d,%d}", subText(e.Expr), e.Min, e.Max)
	}
}

// Expr Kind: And

type AndExpr struct {
	Expr Expr
}

func (AndExpr) exprNode()      {}
func (e AndExpr) Text() string { return "&" + subText(e.Expr) }

// Expr Kind: Not

type NotExpr struct {
	Expr Expr
}

func (NotExpr) exprNode()      {}
func (e NotExpr) Text() string { return "!" + subText(e.Expr) }

// Expr Kind: Capture

type CaptureExpr struct {
	Label string
	Expr  Expr
}

func (CaptureExpr) exprNode()      {}
func (e CaptureExpr) Text() string { return fmt.Sprintf("%s:%s", e.Label, subText(e.Expr)) }

// Expr Kind: Ref

// RefExpr references another rule by name.  References resolve
// through the indirection cells the interpreter allocates, which is
// what makes mutually recursive rules work.
type RefExpr struct {
	Name string
}

func (RefExpr) exprNode()      {}
func (e RefExpr) Text() string { return e.Name }

// Definition binds a rule name to its body.

type Definition struct {
	Name string
	Expr Expr
}

func (d Definition) Text() string { return fmt.Sprintf("%s <- %s", d.Name, d.Expr.Text()) }

// Grammar is an ordered list of rule definitions.  The first
// definition is the default entry point.

type Grammar struct {
	Definitions []Definition
}

func (g *Grammar) Text() string {
	var s strings.Builder
	for i, d := range g.Definitions {
		s.WriteString(d.Text())
		if i < len(g.Definitions)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

// Helpers

func exprsText(items []Expr, sep string) string {
	var s strings.Builder
	for i, item := range items {
		s.WriteString(item.Text())
		if i < len(items)-1 {
			s.WriteString(sep)
		}
	}
	return s.String()
}

// subText parenthesizes composite operands so quantifiers and
// predicates print unambiguously.
func subText(e Expr) string {
	switch e.(type) {
	case SequenceExpr, ChoiceExpr:
		return "(" + e.Text() + ")"
	default:
		return e.Text()
	}
}
