package lint

import (
	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/fix"
	"slide/internal/source"
)

// lintRedundantNesting flags stacked Parend/Bracketed nodes like "((1))",
// which reduce to a single nesting without changing meaning, grounded on
// original_source's redundant_nesting.rs.
func lintRedundantNesting(g *ast.Graph, stmts ast.StmtList, bag *diag.Bag) {
	for _, stmt := range stmts.Stmts {
		walkRedundantNesting(g, stmt.RHS, bag)
		if stmt.LHS != ast.NoExpr {
			walkRedundantNesting(g, stmt.LHS, bag)
		}
	}
}

func walkRedundantNesting(g *ast.Graph, id ast.ExprID, bag *diag.Bag) {
	if id == ast.NoExpr {
		return
	}
	n := g.Expr(id)
	if n.Kind == ast.ExprParend || n.Kind == ast.ExprBracketed {
		nestings := 1
		var innerWrapperSpans []source.Span
		inner := n.Rhs
		innerNode := g.Expr(inner)
		for innerNode.Kind == ast.ExprParend || innerNode.Kind == ast.ExprBracketed {
			innerWrapperSpans = append(innerWrapperSpans, innerNode.Span)
			inner = innerNode.Rhs
			innerNode = g.Expr(inner)
			nestings++
		}
		if nestings > 1 {
			d := diag.New(diag.SevWarning, diag.CodeRedundantNesting, "redundant nesting", n.Span)
			// Delete every wrapper's opening and closing delimiter but the
			// outermost, collapsing the stack down to a single nesting.
			var dels []source.Span
			for _, ws := range innerWrapperSpans {
				dels = append(dels,
					source.Span{File: ws.File, Start: ws.Start, End: ws.Start + 1},
					source.Span{File: ws.File, Start: ws.End - 1, End: ws.End},
				)
			}
			d = d.WithFix(fix.DeleteSpans("reduce this nesting", dels))
			bag.Add(d)
		}
		walkRedundantNesting(g, inner, bag)
		return
	}

	switch n.Kind {
	case ast.ExprBinary:
		walkRedundantNesting(g, n.Lhs, bag)
		walkRedundantNesting(g, n.Rhs, bag)
	case ast.ExprUnary:
		walkRedundantNesting(g, n.Rhs, bag)
	}
}
