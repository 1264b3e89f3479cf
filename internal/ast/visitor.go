package ast

import "slide/internal/source"

// Walk performs a pre-order traversal of id's subtree. visit is called for
// every node; returning false skips that node's children. Double-dispatch
// is unnecessary for a DAG this shallow: callers that only care about one
// or two node shapes type-switch inside visit instead of implementing a
// full visitor interface.
func Walk(g *Graph, id ExprID, visit func(ExprID, *Expr) bool) {
	if id == NoExpr {
		return
	}
	n := g.Expr(id)
	if !visit(id, n) {
		return
	}
	switch n.Kind {
	case ExprBinary:
		Walk(g, n.Lhs, visit)
		Walk(g, n.Rhs, visit)
	case ExprUnary, ExprParend, ExprBracketed:
		Walk(g, n.Rhs, visit)
	}
}

// WalkPat is Walk's counterpart over the pattern grammar.
func WalkPat(g *Graph, id ExprPatID, visit func(ExprPatID, *ExprPat) bool) {
	if id == NoExprPat {
		return
	}
	n := g.Pat(id)
	if !visit(id, n) {
		return
	}
	switch n.Kind {
	case PatBinary:
		WalkPat(g, n.Lhs, visit)
		WalkPat(g, n.Rhs, visit)
	case PatUnary, PatParend, PatBracketed:
		WalkPat(g, n.Rhs, visit)
	}
}

// CollectVars returns the set of distinct variable names referenced in id's
// subtree, used by semantic comparison (§4.7) to report which variables an
// equivalence depends on.
func CollectVars(g *Graph, id ExprID) map[source.StringID]struct{} {
	vars := make(map[source.StringID]struct{})
	Walk(g, id, func(_ ExprID, n *Expr) bool {
		if n.Kind == ExprVar {
			vars[n.Var] = struct{}{}
		}
		return true
	})
	return vars
}

// NodeCount returns the number of nodes visited in id's subtree, counting a
// shared (CSE'd) node once per occurrence in the tree shape, not once per
// distinct ExprID — this is the "complexity" measure the partial evaluator
// uses to pick the best candidate rewrite.
func NodeCount(g *Graph, id ExprID) int {
	count := 0
	Walk(g, id, func(_ ExprID, _ *Expr) bool {
		count++
		return true
	})
	return count
}

// SpanContained reports whether every child of id has a span contained in
// id's own span, recursively. Used by testkit to check the span-containment
// invariant.
func SpanContained(g *Graph, id ExprID) bool {
	ok := true
	var check func(ExprID)
	check = func(cur ExprID) {
		if cur == NoExpr || !ok {
			return
		}
		n := g.Expr(cur)
		children := childrenOf(n)
		for _, c := range children {
			if c == NoExpr {
				continue
			}
			cn := g.Expr(c)
			if cn.Span.Start < n.Span.Start || cn.Span.End > n.Span.End {
				ok = false
				return
			}
			check(c)
		}
	}
	check(id)
	return ok
}

func childrenOf(n *Expr) []ExprID {
	switch n.Kind {
	case ExprBinary:
		return []ExprID{n.Lhs, n.Rhs}
	case ExprUnary, ExprParend, ExprBracketed:
		return []ExprID{n.Rhs}
	default:
		return nil
	}
}
