package lspsvc

import (
	"strings"

	"slide/internal/ast"
	"slide/internal/emit"
	"slide/internal/program"
	"slide/internal/source"
)

// Hover is the program-local response to a hover request.
type Hover struct {
	Text string
	Span source.Span
}

// Hover implements spec.md §4.11's hover contract: find the tightest
// enclosing expression at offset. If it is a variable with known
// assignments, show the unique set of simplified right-hand sides (one per
// line, covering the case where the same name is assigned more than once);
// otherwise show the simplification of the hovered subexpression itself.
func HoverAt(p *program.Program, offset uint32, cfg emit.Config) (Hover, bool) {
	a := analyze(p)
	id, _, ok := tightestEnclosing(a.g, a.res.Original, offset)
	if !ok {
		return Hover{}, false
	}
	n := a.g.Expr(id)

	if n.Kind == ast.ExprVar {
		defs := assignmentsOf(a.g, a.res.Original, n.Var)
		if len(defs) > 0 {
			seen := make(map[string]bool)
			var lines []string
			for _, s := range defs {
				simplified := renderExpr(a.g, eagerSimplify(a, s.RHS), cfg)
				if !seen[simplified] {
					seen[simplified] = true
					lines = append(lines, simplified)
				}
			}
			return Hover{Text: strings.Join(lines, "\n"), Span: n.Span}, true
		}
	}

	from := eagerSimplify(a, id)
	return Hover{Text: renderExpr(a.g, from, cfg), Span: n.Span}, true
}

// eagerSimplify returns the cached simplification if id is exactly a
// statement's top-level RHS, otherwise re-runs the partial evaluator over
// the subexpression directly.
func eagerSimplify(a analyzed, id ast.ExprID) ast.ExprID {
	for i, s := range a.res.Original.Stmts {
		if s.RHS == id {
			return a.res.Simplified[i]
		}
	}
	return a.simplify(id)
}
