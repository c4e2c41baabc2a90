package peg

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDiagnostic renders `d` against the input it was produced
// from: the offending source line, a caret under the offending
// column, the expectation set and the context chain from the
// outermost composite down to the failing matcher.  This is
// presentation only and never modifies the diagnostic.
func FormatDiagnostic(d *Diagnostic, input string) string {
	return FormatDiagnosticWith(d, input, NewConfig())
}

// FormatDiagnosticWith is FormatDiagnostic with the report sections
// picked by `cfg`.
func FormatDiagnosticWith(d *Diagnostic, input string, cfg *Config) string {
	var (
		s      strings.Builder
		line   = lineAt(input, d.Pos.Line)
		gutter = strings.Repeat(" ", len(strconv.Itoa(d.Pos.Line)))
	)

	fmt.Fprintf(&s, "parse error: %s\n", d.Message)
	fmt.Fprintf(&s, " --> %s\n", d.Pos)
	fmt.Fprintf(&s, "%s |\n", gutter)
	fmt.Fprintf(&s, "%d | %s\n", d.Pos.Line, line)
	fmt.Fprintf(&s, "%s | %s^\n", gutter, caretPadding(line, d.Pos.Column))

	if cfg.GetBool("report.show_expected") && len(d.Expected) > 0 {
		fmt.Fprintf(&s, "expected: %s\n", quoteExpected(d.Expected))
	}

	if cfg.GetBool("report.show_context") && len(d.Context) > 0 {
		// context accumulates innermost first, the report reads
		// outermost first
		header := " context: "
		for i := len(d.Context) - 1; i >= 0; i-- {
			fmt.Fprintf(&s, "%s%s\n", header, d.Context[i])
			header = "          "
		}
	}
	return s.String()
}

// lineAt returns the 1-indexed line of the input, without its
// trailing newline.
func lineAt(input string, line int) string {
	lines := strings.Split(input, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// caretPadding aligns the caret with the column by stepping over the
// same characters the offending line shows, keeping tabs as tabs so
// the caret stays aligned under tab-indented lines.
func caretPadding(line string, column int) string {
	var pad strings.Builder
	for i, r := range []rune(line) {
		if i >= column {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
			continue
		}
		pad.WriteRune(' ')
	}
	return pad.String()
}
