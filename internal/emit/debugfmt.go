package emit

import "slide/internal/ast"

// exprDebug dumps the raw node shape of expr, in the spirit of emit.rs's
// default emit_debug impl (`{:#?}`). Its exact output is pinned by
// TestExprDebugIsStable.
func exprDebug(g *ast.Graph, id ast.ExprID) string {
	n := g.Expr(id)
	switch n.Kind {
	case ast.ExprConst:
		return "Const(" + n.Const.RatString() + ")"
	case ast.ExprVar:
		return "Var(" + g.Interner.MustLookup(n.Var) + ")"
	case ast.ExprBinary:
		return "BinaryExpr(" + n.BinOp.String() + ", " + exprDebug(g, n.Lhs) + ", " + exprDebug(g, n.Rhs) + ")"
	case ast.ExprUnary:
		return "UnaryExpr(" + n.UnOp.String() + ", " + exprDebug(g, n.Rhs) + ")"
	case ast.ExprParend:
		return "Parend(" + exprDebug(g, n.Rhs) + ")"
	case ast.ExprBracketed:
		return "Bracketed(" + exprDebug(g, n.Rhs) + ")"
	default:
		return "?"
	}
}

func patDebug(g *ast.Graph, id ast.ExprPatID) string {
	n := g.Pat(id)
	switch n.Kind {
	case ast.PatConst:
		return "Const(" + n.Const.RatString() + ")"
	case ast.PatVarPat:
		return "VarPat(" + g.Interner.MustLookup(n.Name) + ")"
	case ast.PatConstPat:
		return "ConstPat(" + g.Interner.MustLookup(n.Name) + ")"
	case ast.PatAnyPat:
		return "AnyPat(" + g.Interner.MustLookup(n.Name) + ")"
	case ast.PatBinary:
		return "BinaryExpr(" + n.BinOp.String() + ", " + patDebug(g, n.Lhs) + ", " + patDebug(g, n.Rhs) + ")"
	case ast.PatUnary:
		return "UnaryExpr(" + n.UnOp.String() + ", " + patDebug(g, n.Rhs) + ")"
	case ast.PatParend:
		return "Parend(" + patDebug(g, n.Rhs) + ")"
	case ast.PatBracketed:
		return "Bracketed(" + patDebug(g, n.Rhs) + ")"
	default:
		return "?"
	}
}
