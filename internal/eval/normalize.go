package eval

import (
	"sort"

	"slide/internal/ast"
	"slide/internal/source"
)

// Normalize recursively rebuilds expr into a canonical form: chains of the
// two associative-commutative operators (`+`, `*`) are flattened and their
// operands sorted under ast.Compare, then rebuilt left-associatively, giving
// two expressions that differ only in associativity or operand order (e.g.
// "1 + x" and "x + 1") the same canonical ExprID. Subtraction folds into the
// surrounding `+` chain as a negated term, per spec's "treat `-` as negated
// `+` terms"; other operators (`-` in isolation would never reach here,
// `/`, `%`, `^`) are not commutative and are left in their original shape,
// grounded on original_source/libslide/src/utils/grammar.rs's `normalize`
// and partial_evaluator/flatten.rs's treatment of subtraction.
func Normalize(g *ast.Graph, expr ast.ExprID) ast.ExprID {
	n := g.Expr(expr)
	switch n.Kind {
	case ast.ExprBinary:
		switch n.BinOp {
		case ast.OpAdd, ast.OpSub:
			return normalizeAdditive(g, expr, n.Span)
		case ast.OpMul:
			lhs := Normalize(g, n.Lhs)
			rhs := Normalize(g, n.Rhs)
			rebuilt := g.NewBinary(ast.OpMul, lhs, rhs, n.Span)
			args := flattenSameOp(g, rebuilt, ast.OpMul)
			sort.Slice(args, func(i, j int) bool { return ast.Less(g, args[i], args[j]) })
			return unflattenLeft(g, args, ast.OpMul, n.Span)
		default:
			lhs := Normalize(g, n.Lhs)
			rhs := Normalize(g, n.Rhs)
			return g.NewBinary(n.BinOp, lhs, rhs, n.Span)
		}

	case ast.ExprUnary:
		return g.NewUnary(n.UnOp, Normalize(g, n.Rhs), n.Span)

	case ast.ExprParend:
		return g.NewParend(Normalize(g, n.Rhs), n.Span)

	case ast.ExprBracketed:
		return g.NewBracketed(Normalize(g, n.Rhs), n.Span)

	default:
		return expr
	}
}

// additiveTerm is one operand of a flattened +/- chain, after folding every
// `-` into a sign on its right operand.
type additiveTerm struct {
	expr ast.ExprID
	neg  bool
}

func normalizeAdditive(g *ast.Graph, id ast.ExprID, span source.Span) ast.ExprID {
	terms := flattenAdditive(g, id)
	signed := make([]ast.ExprID, len(terms))
	for i, t := range terms {
		signed[i] = applySign(g, t, span)
	}
	sort.Slice(signed, func(i, j int) bool { return ast.Less(g, signed[i], signed[j]) })
	return unflattenLeft(g, signed, ast.OpAdd, span)
}

// flattenAdditive walks a maximal chain of `+`/`-` nodes rooted at id,
// folding every subtracted right-hand side into a negated term, and fully
// normalizes every leaf it bottoms out at.
func flattenAdditive(g *ast.Graph, id ast.ExprID) []additiveTerm {
	n := g.Expr(id)
	if n.Kind == ast.ExprBinary && n.BinOp == ast.OpAdd {
		return append(flattenAdditive(g, n.Lhs), flattenAdditive(g, n.Rhs)...)
	}
	if n.Kind == ast.ExprBinary && n.BinOp == ast.OpSub {
		left := flattenAdditive(g, n.Lhs)
		right := flattenAdditive(g, n.Rhs)
		for i := range right {
			right[i].neg = !right[i].neg
		}
		return append(left, right...)
	}
	return []additiveTerm{{expr: Normalize(g, id)}}
}

func applySign(g *ast.Graph, t additiveTerm, span source.Span) ast.ExprID {
	if !t.neg {
		return t.expr
	}
	return g.NewUnary(ast.OpNeg, t.expr, span)
}

func flattenSameOp(g *ast.Graph, id ast.ExprID, op ast.BinaryOp) []ast.ExprID {
	n := g.Expr(id)
	if n.Kind == ast.ExprBinary && n.BinOp == op {
		return append(flattenSameOp(g, n.Lhs, op), flattenSameOp(g, n.Rhs, op)...)
	}
	return []ast.ExprID{id}
}

// unflattenLeft rebuilds a flattened, sorted operand list into a
// left-associative chain of op.
func unflattenLeft(g *ast.Graph, args []ast.ExprID, op ast.BinaryOp, span source.Span) ast.ExprID {
	result := args[0]
	for _, next := range args[1:] {
		result = g.NewBinary(op, result, next, span)
	}
	return result
}
