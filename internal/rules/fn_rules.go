package rules

import (
	"math/big"

	"slide/internal/ast"
)

// constOperands returns the two constant operands of a binary expression
// with the given operator, or ok=false if target isn't that shape.
func constOperands(g *ast.Graph, target ast.ExprID, op ast.BinaryOp) (l, r *big.Rat, ok bool) {
	n := g.Expr(target)
	if n.Kind != ast.ExprBinary || n.BinOp != op {
		return nil, nil, false
	}
	lhs, rhs := g.Expr(n.Lhs), g.Expr(n.Rhs)
	if lhs.Kind != ast.ExprConst || rhs.Kind != ast.ExprConst {
		return nil, nil, false
	}
	return lhs.Const, rhs.Const, true
}

// addRule folds an n-ary chain of `+` with at least one constant leaf by
// summing every constant leaf and re-emitting the non-constant leaves
// followed by a single folded constant (dropped when it sums to zero), so
// with one constant leaf it only moves that constant to the end, mirroring
// original_source's
// `add` (which flattens the whole additive chain, not just one binary node).
func addRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	n := g.Expr(target)
	if n.Kind != ast.ExprBinary || n.BinOp != ast.OpAdd {
		return ast.NoExpr, false
	}
	leaves := flattenAdd(g, target)
	sum := new(big.Rat)
	var rest []ast.ExprID
	foundConst := false
	for _, leaf := range leaves {
		ln := g.Expr(leaf)
		if ln.Kind == ast.ExprConst {
			sum.Add(sum, ln.Const)
			foundConst = true
			continue
		}
		rest = append(rest, leaf)
	}
	if !foundConst || len(rest) == len(leaves) {
		return ast.NoExpr, false
	}
	if sum.Sign() != 0 {
		rest = append(rest, g.NewConst(sum, n.Span))
	}
	if len(rest) == 0 {
		return g.NewConst(new(big.Rat), n.Span), true
	}
	result := rest[0]
	for _, next := range rest[1:] {
		result = g.NewBinary(ast.OpAdd, result, next, n.Span)
	}
	return result, true
}

func flattenAdd(g *ast.Graph, id ast.ExprID) []ast.ExprID {
	n := g.Expr(id)
	if n.Kind == ast.ExprBinary && n.BinOp == ast.OpAdd {
		return append(flattenAdd(g, n.Lhs), flattenAdd(g, n.Rhs)...)
	}
	return []ast.ExprID{id}
}

func subtractRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	l, r, ok := constOperands(g, target, ast.OpSub)
	if !ok {
		return ast.NoExpr, false
	}
	result := new(big.Rat).Sub(l, r)
	return g.NewConst(result, g.Expr(target).Span), true
}

func multiplyRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	l, r, ok := constOperands(g, target, ast.OpMul)
	if !ok {
		return ast.NoExpr, false
	}
	result := new(big.Rat).Mul(l, r)
	return g.NewConst(result, g.Expr(target).Span), true
}

func divideRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	l, r, ok := constOperands(g, target, ast.OpDiv)
	if !ok || r.Sign() == 0 {
		return ast.NoExpr, false
	}
	result := new(big.Rat).Quo(l, r)
	return g.NewConst(result, g.Expr(target).Span), true
}

func moduloRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	l, r, ok := constOperands(g, target, ast.OpMod)
	if !ok || r.Sign() == 0 || !l.IsInt() || !r.IsInt() {
		return ast.NoExpr, false
	}
	li, ri := l.Num(), r.Num()
	result := new(big.Int).Mod(li, ri)
	return g.NewConst(new(big.Rat).SetInt(result), g.Expr(target).Span), true
}

// exponentiateRule folds constant exponentiation when the exponent is a
// non-negative integer; arbitrary rational exponents have no closed rational
// form in general and are left for a later evaluation stage (or reported
// unevaluated), matching the rational-arithmetic scope SPEC_FULL.md assumes.
func exponentiateRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	l, r, ok := constOperands(g, target, ast.OpPow)
	if !ok || !r.IsInt() || r.Sign() < 0 {
		return ast.NoExpr, false
	}
	exp := r.Num().Int64()
	result := big.NewRat(1, 1)
	base := new(big.Rat).Set(l)
	for i := int64(0); i < exp; i++ {
		result.Mul(result, base)
	}
	return g.NewConst(result, g.Expr(target).Span), true
}

func posateRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	n := g.Expr(target)
	if n.Kind != ast.ExprUnary || n.UnOp != ast.OpPos {
		return ast.NoExpr, false
	}
	return n.Rhs, true
}

func negateRule(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	n := g.Expr(target)
	if n.Kind != ast.ExprUnary || n.UnOp != ast.OpNeg {
		return ast.NoExpr, false
	}
	operand := g.Expr(n.Rhs)
	if operand.Kind != ast.ExprConst {
		return ast.NoExpr, false
	}
	result := new(big.Rat).Neg(operand.Const)
	return g.NewConst(result, n.Span), true
}
