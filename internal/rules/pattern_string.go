package rules

import "slide/internal/ast"

// ExprPatString renders a pattern tree back to slide's own surface syntax,
// used for rule-set introspection (builtin rule listings, validation error
// messages) independent of the richer emit package.
func ExprPatString(g *ast.Graph, id ast.ExprPatID) string {
	n := g.Pat(id)
	switch n.Kind {
	case ast.PatConst:
		return n.Const.RatString()
	case ast.PatVarPat:
		name, _ := g.Interner.Lookup(n.Name)
		return "$" + name
	case ast.PatConstPat:
		name, _ := g.Interner.Lookup(n.Name)
		return "#" + name
	case ast.PatAnyPat:
		name, _ := g.Interner.Lookup(n.Name)
		return "_" + name
	case ast.PatUnary:
		return n.UnOp.String() + ExprPatString(g, n.Rhs)
	case ast.PatBinary:
		return ExprPatString(g, n.Lhs) + " " + n.BinOp.String() + " " + ExprPatString(g, n.Rhs)
	case ast.PatParend:
		return "(" + ExprPatString(g, n.Rhs) + ")"
	case ast.PatBracketed:
		return "[" + ExprPatString(g, n.Rhs) + "]"
	default:
		return "?"
	}
}
