package emit

import "slide/internal/ast"

// exprSExpr renders expr as a fully-parenthesized prefix form, grounded on
// emit.rs's emit_s_expression: `(op lhs rhs)`, `(op rhs)`, with Parend and
// Bracketed keeping the same delimiter characters they use in pretty form.
func exprSExpr(g *ast.Graph, id ast.ExprID) string {
	n := g.Expr(id)
	switch n.Kind {
	case ast.ExprConst:
		return n.Const.RatString()

	case ast.ExprVar:
		return g.Interner.MustLookup(n.Var)

	case ast.ExprBinary:
		return "(" + n.BinOp.String() + " " + exprSExpr(g, n.Lhs) + " " + exprSExpr(g, n.Rhs) + ")"

	case ast.ExprUnary:
		return "(" + n.UnOp.String() + " " + exprSExpr(g, n.Rhs) + ")"

	case ast.ExprParend:
		return "(" + exprSExpr(g, n.Rhs) + ")"

	case ast.ExprBracketed:
		return "[" + exprSExpr(g, n.Rhs) + "]"

	default:
		return ""
	}
}

func patSExpr(g *ast.Graph, id ast.ExprPatID) string {
	n := g.Pat(id)
	switch n.Kind {
	case ast.PatConst:
		return n.Const.RatString()

	case ast.PatVarPat:
		return "$" + g.Interner.MustLookup(n.Name)

	case ast.PatConstPat:
		return "#" + g.Interner.MustLookup(n.Name)

	case ast.PatAnyPat:
		return "_" + g.Interner.MustLookup(n.Name)

	case ast.PatBinary:
		return "(" + n.BinOp.String() + " " + patSExpr(g, n.Lhs) + " " + patSExpr(g, n.Rhs) + ")"

	case ast.PatUnary:
		return "(" + n.UnOp.String() + " " + patSExpr(g, n.Rhs) + ")"

	case ast.PatParend:
		return "(" + patSExpr(g, n.Rhs) + ")"

	case ast.PatBracketed:
		return "[" + patSExpr(g, n.Rhs) + "]"

	default:
		return ""
	}
}
