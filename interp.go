package peg

import "fmt"

// ruleCell is the indirection handle rule references resolve through.
// Cells are allocated empty in a first pass over the grammar and
// wired in a second, so rule bodies can reference each other in any
// order, mutual recursion included.
type ruleCell struct {
	name    string
	matcher Matcher[any]
}

func (c *ruleCell) match(input string, pos Position) (Match[any], error) {
	if c.matcher == nil {
		return Match[any]{}, &Diagnostic{
			Message: fmt.Sprintf("rule `%s` referenced before it was wired", c.name),
			Pos:     pos,
			Matcher: c.name,
			fatal:   true,
		}
	}
	return c.matcher(input, pos)
}

// CompileGrammar builds a matcher for every rule of `g` and returns
// the matcher of the entry rule, which is the first definition.  The
// compiled matcher is pure and reusable across inputs.
func CompileGrammar(g *Grammar) (Matcher[any], error) {
	return compileGrammar(g, "", nil)
}

// RunGrammar compiles `g` and runs it over `input` with the options
// in `cfg` (nil means defaults).  Each call builds its own matcher
// environment, so when memoization is enabled the memo table is
// private to the run, as a table keyed by offset has to be.
func RunGrammar(g *Grammar, input string, cfg *Config) (Match[any], error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	var table *MemoTable[any]
	if cfg.GetBool("memo.enabled") {
		t, err := NewMemoTable[any](cfg.GetInt("memo.max_entries"))
		if err != nil {
			return Match[any]{}, err
		}
		table = t
	}
	entry, err := compileGrammar(g, cfg.GetString("interp.entry"), table)
	if err != nil {
		return Match[any]{}, err
	}
	return Run(input, entry)
}

func compileGrammar(g *Grammar, entry string, table *MemoTable[any]) (Matcher[any], error) {
	if g == nil || len(g.Definitions) == 0 {
		return nil, fmt.Errorf("grammar has no definitions")
	}

	// first pass: one cell per rule name
	cells := make(map[string]*ruleCell, len(g.Definitions))
	for _, def := range g.Definitions {
		if _, ok := cells[def.Name]; ok {
			return nil, fmt.Errorf("rule `%s` defined twice", def.Name)
		}
		cells[def.Name] = &ruleCell{name: def.Name}
	}

	// second pass: build every body now that all cells exist
	for _, def := range g.Definitions {
		body, err := compileExpr(def.Expr, cells)
		if err != nil {
			return nil, err
		}
		if table != nil {
			body = Memoize(def.Name, table, body)
		}
		cells[def.Name].matcher = body
	}

	if entry == "" {
		entry = g.Definitions[0].Name
	}
	cell, ok := cells[entry]
	if !ok {
		return nil, fmt.Errorf("entry rule `%s` is not defined", entry)
	}
	return cell.match, nil
}

// compileExpr dispatches exhaustively on the expression kind.  The
// default arm only fires if a new Expr kind is added without updating
// this switch.
func compileExpr(e Expr, cells map[string]*ruleCell) (Matcher[any], error) {
	switch node := e.(type) {
	case AnyExpr:
		return Untyped(Any()), nil

	case LiteralExpr:
		if node.Value == "" {
			return nil, fmt.Errorf("literal expression must not be empty")
		}
		return Untyped(Literal(node.Value)), nil

	case ClassExpr:
		if len(node.Items) == 0 {
			return nil, fmt.Errorf("class expression must not be empty")
		}
		return Untyped(CharClass(node.Items...)), nil

	case SequenceExpr:
		items, err := compileExprs(node.Items, cells)
		if err != nil {
			return nil, err
		}
		return CaptureGroup(items...), nil

	case ChoiceExpr:
		items, err := compileExprs(node.Items, cells)
		if err != nil {
			return nil, err
		}
		return Choice(items...), nil

	case OptionalExpr:
		m, err := compileExpr(node.Expr, cells)
		if err != nil {
			return nil, err
		}
		return Map(Optional(m), func(o Opt[any]) any {
			if o.Ok {
				return o.Value
			}
			return nil
		}), nil

	case RepeatExpr:
		if node.Min < 0 || (node.Max != Unbounded && node.Max < node.Min) {
			return nil, fmt.Errorf("invalid repetition bounds {%d, %d}", node.Min, node.Max)
		}
		m, err := compileExpr(node.Expr, cells)
		if err != nil {
			return nil, err
		}
		return Untyped(Repeat(node.Min, node.Max, m)), nil

	case AndExpr:
		m, err := compileExpr(node.Expr, cells)
		if err != nil {
			return nil, err
		}
		return And(m), nil

	case NotExpr:
		m, err := compileExpr(node.Expr, cells)
		if err != nil {
			return nil, err
		}
		return Not(m), nil

	case CaptureExpr:
		m, err := compileExpr(node.Expr, cells)
		if err != nil {
			return nil, err
		}
		return Untyped(Capture(node.Label, m)), nil

	case RefExpr:
		cell, ok := cells[node.Name]
		if !ok {
			return nil, fmt.Errorf("reference to undefined rule `%s`", node.Name)
		}
		return cell.match, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %T", e)
	}
}

func compileExprs(items []Expr, cells map[string]*ruleCell) ([]Matcher[any], error) {
	ms := make([]Matcher[any], len(items))
	for i, item := range items {
		m, err := compileExpr(item, cells)
		if err != nil {
			return nil, err
		}
		ms[i] = m
	}
	return ms, nil
}
