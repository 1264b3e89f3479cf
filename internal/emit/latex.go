package emit

import (
	"math/big"

	"slide/internal/ast"
)

// exprLatex renders expr as a LaTeX math-mode fragment. original_source's
// emit.rs left this `unimplemented!()`; spec.md's CLI contract requires it
// as a real output form, so the mapping below is original to this port:
// multiplication becomes \cdot, division becomes an infix `/` or (with
// Config.Frac) \frac{num}{den}, exponentiation becomes `^{}`, and
// parenthesization follows the same precedence rules as pretty-printing but
// renders delimiters as \left( \right).
func exprLatex(g *ast.Graph, id ast.ExprID, cfg Config) string {
	n := g.Expr(id)
	switch n.Kind {
	case ast.ExprConst:
		return latexRat(n.Const, cfg)

	case ast.ExprVar:
		return g.Interner.MustLookup(n.Var)

	case ast.ExprBinary:
		if cfg.Frac && n.BinOp == ast.OpDiv {
			return "\\frac{" + exprLatex(g, n.Lhs, cfg) + "}{" + exprLatex(g, n.Rhs, cfg) + "}"
		}
		lhs := formatBinaryArgLatex(g, n.Lhs, n.BinOp, false, cfg)
		rhs := formatBinaryArgLatex(g, n.Rhs, n.BinOp, true, cfg)
		return lhs + " " + latexBinOp(n.BinOp) + " " + rhs

	case ast.ExprUnary:
		return latexUnOp(n.UnOp) + formatUnaryArgLatex(g, n.Rhs, cfg)

	case ast.ExprParend:
		return "\\left(" + exprLatex(g, n.Rhs, cfg) + "\\right)"

	case ast.ExprBracketed:
		return "\\left[" + exprLatex(g, n.Rhs, cfg) + "\\right]"

	default:
		return ""
	}
}

func latexRat(r *big.Rat, cfg Config) string {
	if r.IsInt() {
		return r.Num().String()
	}
	if !cfg.Frac {
		return r.RatString()
	}
	num := new(big.Int).Set(r.Num())
	neg := num.Sign() < 0
	num.Abs(num)
	frac := "\\frac{" + num.String() + "}{" + r.Denom().String() + "}"
	if neg {
		return "-" + frac
	}
	return frac
}

func latexBinOp(op ast.BinaryOp) string {
	switch op {
	case ast.OpMul:
		return "\\cdot"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "\\bmod"
	case ast.OpPow:
		return "^"
	default:
		return op.String()
	}
}

func latexUnOp(op ast.UnaryOp) string {
	return op.String()
}

func formatBinaryArgLatex(g *ast.Graph, arg ast.ExprID, parent ast.BinaryOp, rightChild bool, cfg Config) string {
	n := g.Expr(arg)
	text := exprLatex(g, arg, cfg)
	if n.Kind != ast.ExprBinary {
		if parent == ast.OpPow && n.Kind != ast.ExprConst && n.Kind != ast.ExprVar {
			return "{" + text + "}"
		}
		return text
	}
	if parent == ast.OpPow {
		return "{" + text + "}"
	}
	childPrec := n.BinOp.Precedence()
	parentPrec := parent.Precedence()
	switch {
	case childPrec < parentPrec:
		return "\\left(" + text + "\\right)"
	case childPrec > parentPrec:
		return text
	default:
		if rightChild && !(n.BinOp == parent && parent.IsAssociative()) {
			return "\\left(" + text + "\\right)"
		}
		return text
	}
}

func formatUnaryArgLatex(g *ast.Graph, arg ast.ExprID, cfg Config) string {
	n := g.Expr(arg)
	text := exprLatex(g, arg, cfg)
	if n.Kind == ast.ExprBinary {
		return "\\left(" + text + "\\right)"
	}
	return text
}

func patLatex(g *ast.Graph, id ast.ExprPatID, cfg Config) string {
	n := g.Pat(id)
	switch n.Kind {
	case ast.PatConst:
		return latexRat(n.Const, cfg)

	case ast.PatVarPat:
		return "\\$" + g.Interner.MustLookup(n.Name)

	case ast.PatConstPat:
		return "\\#" + g.Interner.MustLookup(n.Name)

	case ast.PatAnyPat:
		return "\\_" + g.Interner.MustLookup(n.Name)

	case ast.PatBinary:
		if cfg.Frac && n.BinOp == ast.OpDiv {
			return "\\frac{" + patLatex(g, n.Lhs, cfg) + "}{" + patLatex(g, n.Rhs, cfg) + "}"
		}
		lhs := formatBinaryPatArgLatex(g, n.Lhs, n.BinOp, false, cfg)
		rhs := formatBinaryPatArgLatex(g, n.Rhs, n.BinOp, true, cfg)
		return lhs + " " + latexBinOp(n.BinOp) + " " + rhs

	case ast.PatUnary:
		return latexUnOp(n.UnOp) + formatUnaryPatArgLatex(g, n.Rhs, cfg)

	case ast.PatParend:
		return "\\left(" + patLatex(g, n.Rhs, cfg) + "\\right)"

	case ast.PatBracketed:
		return "\\left[" + patLatex(g, n.Rhs, cfg) + "\\right]"

	default:
		return ""
	}
}

func formatBinaryPatArgLatex(g *ast.Graph, arg ast.ExprPatID, parent ast.BinaryOp, rightChild bool, cfg Config) string {
	n := g.Pat(arg)
	text := patLatex(g, arg, cfg)
	if n.Kind != ast.PatBinary {
		return text
	}
	if parent == ast.OpPow {
		return "{" + text + "}"
	}
	childPrec := n.BinOp.Precedence()
	parentPrec := parent.Precedence()
	switch {
	case childPrec < parentPrec:
		return "\\left(" + text + "\\right)"
	case childPrec > parentPrec:
		return text
	default:
		if rightChild && !(n.BinOp == parent && parent.IsAssociative()) {
			return "\\left(" + text + "\\right)"
		}
		return text
	}
}

func formatUnaryPatArgLatex(g *ast.Graph, arg ast.ExprPatID, cfg Config) string {
	n := g.Pat(arg)
	text := patLatex(g, arg, cfg)
	if n.Kind == ast.PatBinary {
		return "\\left(" + text + "\\right)"
	}
	return text
}
