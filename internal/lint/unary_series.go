package lint

import (
	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/fix"
	"slide/internal/source"
)

// lintUnarySeries flags chains of two or more stacked unary +/- operators
// (e.g. "--x", "+-+x"), which reduce to a single leading sign without
// changing meaning, grounded on original_source's unary_series.rs.
func lintUnarySeries(g *ast.Graph, stmts ast.StmtList, bag *diag.Bag) {
	for _, stmt := range stmts.Stmts {
		walkUnarySeries(g, stmt.RHS, bag)
		if stmt.LHS != ast.NoExpr {
			walkUnarySeries(g, stmt.LHS, bag)
		}
	}
}

func walkUnarySeries(g *ast.Graph, id ast.ExprID, bag *diag.Bag) {
	if id == ast.NoExpr {
		return
	}
	n := g.Expr(id)
	if n.Kind == ast.ExprUnary {
		flips := 0
		negative := false
		cur := id
		curNode := n
		for curNode.Kind == ast.ExprUnary {
			if curNode.UnOp == ast.OpNeg {
				negative = !negative
			}
			flips++
			cur = curNode.Rhs
			curNode = g.Expr(cur)
		}
		if flips > 1 {
			sign := "+"
			if negative {
				sign = "-"
			}
			prefix := source.Span{File: n.Span.File, Start: n.Span.Start, End: curNode.Span.Start}
			d := diag.New(diag.SevWarning, diag.CodeUnarySeries, "redundant series of unary operators", n.Span)
			d = d.WithFix(fix.ReplaceSpan("reduce to a single sign", prefix, sign, ""))
			bag.Add(d)
		}
		walkUnarySeries(g, cur, bag)
		return
	}

	switch n.Kind {
	case ast.ExprBinary:
		walkUnarySeries(g, n.Lhs, bag)
		walkUnarySeries(g, n.Rhs, bag)
	case ast.ExprParend:
		walkUnarySeries(g, n.Rhs, bag)
	case ast.ExprBracketed:
		walkUnarySeries(g, n.Rhs, bag)
	}
}
