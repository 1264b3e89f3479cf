// Package eval implements slide's partial evaluator: it walks an expression
// bottom-up, applying the active rules.Rule set to a fixed point at every
// node, grounded on original_source/libslide/src/partial_evaluator.rs and
// evaluator_rules/rule.rs's `Transformer<RcExpr, RcExpr>` impl (the modern
// rule-driven evaluator, not the older standalone visitor in the top-level
// partial_evaluator.rs, which only folds a single pass of arithmetic).
package eval

import (
	"fmt"

	"slide/internal/ast"
	"slide/internal/evaltrace"
	"slide/internal/rules"
)

// maxFixedPointIterations bounds the rewrite loop at a single node so a
// pathological or buggy rule set cannot spin forever; built-in rules always
// converge in a handful of passes.
const maxFixedPointIterations = 1000

// Evaluate recursively simplifies target by applying rs to a fixed point,
// caching per-node results keyed by ExprID so a subexpression shared by CSE
// is only ever simplified once.
func Evaluate(g *ast.Graph, target ast.ExprID, rs []rules.Rule) ast.ExprID {
	return EvaluateTraced(g, target, rs, evaltrace.Nop, 0)
}

// EvaluateTraced is Evaluate with rewrite-step tracing: tr receives one
// ScopeNode span per node visited and, when tr's Level is LevelRewrite, one
// ScopeRewrite span per rule tried against that node. parent is the
// enclosing span ID (0 for a top-level statement), letting
// internal/program's Program.analyze nest every statement's trace under its
// own ScopeStatement span.
func EvaluateTraced(g *ast.Graph, target ast.ExprID, rs []rules.Rule, tr evaltrace.Tracer, parent uint64) ast.ExprID {
	cache := make(map[ast.ExprID]ast.ExprID)
	return evaluate(g, target, rs, cache, tr, parent)
}

func evaluate(g *ast.Graph, target ast.ExprID, rs []rules.Rule, cache map[ast.ExprID]ast.ExprID, tr evaltrace.Tracer, parent uint64) ast.ExprID {
	if cached, ok := cache[target]; ok {
		return cached
	}

	span := evaltrace.Begin(tr, evaltrace.ScopeNode, fmt.Sprintf("node:%d", target), parent)
	nodeID := span.ID()

	n := g.Expr(target)
	var childrenSimplified ast.ExprID
	switch n.Kind {
	case ast.ExprConst, ast.ExprVar:
		childrenSimplified = target
	case ast.ExprBinary:
		lhs := evaluate(g, n.Lhs, rs, cache, tr, nodeID)
		rhs := evaluate(g, n.Rhs, rs, cache, tr, nodeID)
		childrenSimplified = g.NewBinary(n.BinOp, lhs, rhs, n.Span)
	case ast.ExprUnary:
		operand := evaluate(g, n.Rhs, rs, cache, tr, nodeID)
		childrenSimplified = g.NewUnary(n.UnOp, operand, n.Span)
	case ast.ExprParend:
		inner := evaluate(g, n.Rhs, rs, cache, tr, nodeID)
		childrenSimplified = g.NewParend(inner, n.Span)
	case ast.ExprBracketed:
		inner := evaluate(g, n.Rhs, rs, cache, tr, nodeID)
		childrenSimplified = g.NewBracketed(inner, n.Span)
	default:
		childrenSimplified = target
	}

	result := applyToFixedPoint(g, childrenSimplified, rs, tr, nodeID)
	cache[target] = result
	span.End(fmt.Sprintf("-> %d", result))
	return result
}

// applyToFixedPoint repeatedly runs one transform step at cur until no rule
// applies or the iteration cap is hit. Each step tries every rule and, among
// those that produce a result, keeps the lowest node-count candidate (ties
// go to whichever rule ran first), matching original_source's "use the best
// candidate, not the first match" contract.
func applyToFixedPoint(g *ast.Graph, cur ast.ExprID, rs []rules.Rule, tr evaltrace.Tracer, parent uint64) ast.ExprID {
	for i := 0; i < maxFixedPointIterations; i++ {
		next, changed := bestRewrite(g, cur, rs, tr, parent)
		if !changed {
			return cur
		}
		cur = next
	}
	return cur
}

// bestRewrite tries every rule against cur. Among the rules that succeed, it
// keeps the lowest node-count candidate (ties go to whichever ran first); the
// comparison is candidate-against-candidate, not against cur, since several
// rules exist precisely to trade a smaller tree for a differently-shaped
// larger one that a later rule can then collapse further (e.g. rewriting
// subtraction as addition of a negation before folding).
func bestRewrite(g *ast.Graph, cur ast.ExprID, rs []rules.Rule, tr evaltrace.Tracer, parent uint64) (ast.ExprID, bool) {
	best := ast.NoExpr
	bestComplexity := 0
	found := false
	for _, r := range rs {
		span := evaltrace.Begin(tr, evaltrace.ScopeRewrite, r.Name.String(), parent)
		candidate, ok := r.TryApplyTop(g, cur)
		if !ok || candidate == cur {
			span.End("no match")
			continue
		}
		complexity := ast.NodeCount(g, candidate)
		span.End(fmt.Sprintf("-> %d (complexity %d)", candidate, complexity))
		if !found || complexity < bestComplexity {
			best = candidate
			bestComplexity = complexity
			found = true
		}
	}
	return best, found
}
