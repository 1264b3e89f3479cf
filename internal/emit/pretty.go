package emit

import "slide/internal/ast"

// exprPretty renders expr as slide source text, parenthesizing only where
// needed to preserve meaning on reparse. Grounded on emit.rs's BinaryExpr/
// UnaryExpr Emit impls: a child is wrapped when its precedence is lower than
// the parent's, or equal but on the side that would change associativity
// (a right child of a non-associative or left-associative-only operator).
func exprPretty(g *ast.Graph, id ast.ExprID) string {
	n := g.Expr(id)
	switch n.Kind {
	case ast.ExprConst:
		return n.Const.RatString()

	case ast.ExprVar:
		return g.Interner.MustLookup(n.Var)

	case ast.ExprBinary:
		lhs := formatBinaryArg(g, n.Lhs, n.BinOp, false)
		rhs := formatBinaryArg(g, n.Rhs, n.BinOp, true)
		return lhs + " " + n.BinOp.String() + " " + rhs

	case ast.ExprUnary:
		return n.UnOp.String() + formatUnaryArg(g, n.Rhs)

	case ast.ExprParend:
		return "(" + exprPretty(g, n.Rhs) + ")"

	case ast.ExprBracketed:
		return "[" + exprPretty(g, n.Rhs) + "]"

	default:
		return ""
	}
}

// formatBinaryArg decides whether arg, a child of a BinaryExpr using parent,
// needs parens around it. rightChild marks whether arg is the right operand:
// for a left-associative chain, a same-precedence right child still changes
// meaning unless the operator is associative (`+`, `*`), so it is always
// wrapped there unless it shares the exact same operator and that operator
// is associative.
func formatBinaryArg(g *ast.Graph, arg ast.ExprID, parent ast.BinaryOp, rightChild bool) string {
	n := g.Expr(arg)
	text := exprPretty(g, arg)
	if n.Kind != ast.ExprBinary {
		return text
	}
	childPrec := n.BinOp.Precedence()
	parentPrec := parent.Precedence()
	switch {
	case childPrec < parentPrec:
		return "(" + text + ")"
	case childPrec > parentPrec:
		return text
	default:
		if parent.IsRightAssociative() {
			if !rightChild {
				return "(" + text + ")"
			}
			return text
		}
		if rightChild && !(n.BinOp == parent && parent.IsAssociative()) {
			return "(" + text + ")"
		}
		return text
	}
}

// formatUnaryArg always parenthesizes a BinaryExpr operand, matching
// emit.rs's UnaryExpr Emit impl (unary binds tighter than any infix
// operator once printed, so ambiguity is avoided unconditionally rather
// than by precedence comparison).
func formatUnaryArg(g *ast.Graph, arg ast.ExprID) string {
	n := g.Expr(arg)
	text := exprPretty(g, arg)
	if n.Kind == ast.ExprBinary {
		return "(" + text + ")"
	}
	return text
}

func patPretty(g *ast.Graph, id ast.ExprPatID) string {
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
		lhs := formatBinaryPatArg(g, n.Lhs, n.BinOp, false)
		rhs := formatBinaryPatArg(g, n.Rhs, n.BinOp, true)
		return lhs + " " + n.BinOp.String() + " " + rhs

	case ast.PatUnary:
		return n.UnOp.String() + formatUnaryPatArg(g, n.Rhs)

	case ast.PatParend:
		return "(" + patPretty(g, n.Rhs) + ")"

	case ast.PatBracketed:
		return "[" + patPretty(g, n.Rhs) + "]"

	default:
		return ""
	}
}

func formatBinaryPatArg(g *ast.Graph, arg ast.ExprPatID, parent ast.BinaryOp, rightChild bool) string {
	n := g.Pat(arg)
	text := patPretty(g, arg)
	if n.Kind != ast.PatBinary {
		return text
	}
	childPrec := n.BinOp.Precedence()
	parentPrec := parent.Precedence()
	switch {
	case childPrec < parentPrec:
		return "(" + text + ")"
	case childPrec > parentPrec:
		return text
	default:
		if parent.IsRightAssociative() {
			if !rightChild {
				return "(" + text + ")"
			}
			return text
		}
		if rightChild && !(n.BinOp == parent && parent.IsAssociative()) {
			return "(" + text + ")"
		}
		return text
	}
}

func formatUnaryPatArg(g *ast.Graph, arg ast.ExprPatID) string {
	n := g.Pat(arg)
	text := patPretty(g, arg)
	if n.Kind == ast.PatBinary {
		return "(" + text + ")"
	}
	return text
}
