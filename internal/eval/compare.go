package eval

import (
	"slide/internal/ast"
	"slide/internal/rules"
	"slide/internal/source"
)

// EqRelationKind classifies how two expressions relate once their
// difference has been evaluated.
type EqRelationKind uint8

const (
	// AlwaysEquivalent: a - b evaluates to the constant 0.
	AlwaysEquivalent EqRelationKind = iota
	// NeverEquivalent: a - b evaluates to a nonzero constant.
	NeverEquivalent
	// DependsOn: a - b still contains variables; equivalence depends on them.
	DependsOn
)

// EqRelation is the result of CmpEq, grounded on
// original_source/libslide/src/partial_evaluator/compare.rs's `EqRelation`.
type EqRelation struct {
	Kind EqRelationKind
	Vars map[source.StringID]struct{} // only set when Kind == DependsOn
}

// CmpEq evaluates a - b under rs and classifies the result.
func CmpEq(g *ast.Graph, a, b ast.ExprID, rs []rules.Rule) EqRelation {
	spanA, spanB := g.Expr(a).Span, g.Expr(b).Span
	diff := g.NewBinary(ast.OpSub, a, b, spanA.Cover(spanB))
	diff = Evaluate(g, diff, rs)

	n := g.Expr(diff)
	if n.Kind == ast.ExprConst {
		if n.Const.Sign() == 0 {
			return EqRelation{Kind: AlwaysEquivalent}
		}
		return EqRelation{Kind: NeverEquivalent}
	}
	return EqRelation{Kind: DependsOn, Vars: ast.CollectVars(g, diff)}
}
