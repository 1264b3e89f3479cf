package rules

import (
	"slide/internal/ast"
	"slide/internal/pmatch"
)

// RuleKind discriminates a PatternMap rewrite rule from a programmatic
// Evaluate rule.
type RuleKind uint8

const (
	RuleKindPatternMap RuleKind = iota
	RuleKindEvaluate
)

// EvalFunc is a single-step constant-folding rule: given an expression whose
// immediate children are already fully evaluated, it either produces a
// simplified replacement or reports that it does not apply.
type EvalFunc func(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool)

// Rule is one built (resolved) rewrite rule, either driven by a pattern or
// by a Go function, grounded on original_source's `Rule` enum
// (evaluator_rules/rule.rs).
type Rule struct {
	Name  RuleName
	Kind  RuleKind
	Map   PatternMap
	Apply EvalFunc
}

// TryApplyTop attempts to apply the rule directly at target (no recursion
// into children). Returns the rewritten expression and true on success.
func (r Rule) TryApplyTop(g *ast.Graph, target ast.ExprID) (ast.ExprID, bool) {
	switch r.Kind {
	case RuleKindEvaluate:
		return r.Apply(g, target)
	case RuleKindPatternMap:
		repl, ok := pmatch.MatchRule(g, r.Map.From, target)
		if !ok {
			return ast.NoExpr, false
		}
		return repl.Transform(g, r.Map.To), true
	default:
		return ast.NoExpr, false
	}
}

// Bootstrap re-derives a PatternMap rule's From/To sides by running
// bootstrapRules over them once. This lets a rule written against
// fully-explicit parenthesization (e.g. "-(_a - _b) -> _b - _a") also match
// targets where those parens have already been simplified away, mirroring
// `PatternMap::bootstrap` in original_source.
func (pm PatternMap) Bootstrap(g *ast.Graph, bootstrapRules []Rule) PatternMap {
	out := pm
	for _, br := range bootstrapRules {
		out.From = transformPat(g, br, out.From)
		out.To = transformPat(g, br, out.To)
	}
	return out
}

// transformPat applies one PatternMap rule to every node of pat, bottom-up,
// used only for bootstrapping other pattern rules.
func transformPat(g *ast.Graph, r Rule, pat ast.ExprPatID) ast.ExprPatID {
	if r.Kind != RuleKindPatternMap {
		return pat
	}
	n := g.Pat(pat)
	var transformed ast.ExprPatID
	switch n.Kind {
	case ast.PatConst, ast.PatVarPat, ast.PatConstPat, ast.PatAnyPat:
		transformed = pat
	case ast.PatBinary:
		lhs := transformPat(g, r, n.Lhs)
		rhs := transformPat(g, r, n.Rhs)
		transformed = g.NewPatBinary(n.BinOp, lhs, rhs, n.Span)
	case ast.PatUnary:
		rhs := transformPat(g, r, n.Rhs)
		transformed = g.NewPatUnary(n.UnOp, rhs, n.Span)
	case ast.PatParend:
		transformed = g.NewPatParend(transformPat(g, r, n.Rhs), n.Span)
	case ast.PatBracketed:
		transformed = g.NewPatBracketed(transformPat(g, r, n.Rhs), n.Span)
	default:
		transformed = pat
	}

	if repl, ok := matchPatPat(g, r.Map.From, transformed); ok {
		return repl.transformToPat(g, r.Map.To)
	}
	return transformed
}

// patBindings/matchPatPat/transformToPat implement the pattern-on-pattern
// matching `Rule`'s bootstrap needs (original_source's second `Transformer<RcExprPat,
// RcExprPat>` impl). This is intentionally a narrow duplicate of pmatch's
// expression matcher rather than a generalized one: bootstrapping only ever
// matches a PatternMap's own leaf shapes against another pattern's leaf
// shapes, which are structurally identical kinds.
type patBindings struct {
	m map[ast.ExprPatID]ast.ExprPatID
}

func matchPatPat(g *ast.Graph, rule, target ast.ExprPatID) (*patBindings, bool) {
	rp, tp := g.Pat(rule), g.Pat(target)
	switch rp.Kind {
	case ast.PatVarPat, ast.PatConstPat, ast.PatAnyPat:
		return &patBindings{m: map[ast.ExprPatID]ast.ExprPatID{rule: target}}, true
	case ast.PatConst:
		if tp.Kind != ast.PatConst || rp.Const.Cmp(tp.Const) != 0 {
			return nil, false
		}
		return &patBindings{m: map[ast.ExprPatID]ast.ExprPatID{}}, true
	case ast.PatBinary:
		if tp.Kind != ast.PatBinary || rp.BinOp != tp.BinOp {
			return nil, false
		}
		l, ok := matchPatPat(g, rp.Lhs, tp.Lhs)
		if !ok {
			return nil, false
		}
		r, ok := matchPatPat(g, rp.Rhs, tp.Rhs)
		if !ok {
			return nil, false
		}
		for k, v := range r.m {
			if existing, has := l.m[k]; has && existing != v {
				return nil, false
			}
			l.m[k] = v
		}
		return l, true
	case ast.PatUnary:
		if tp.Kind != ast.PatUnary || rp.UnOp != tp.UnOp {
			return nil, false
		}
		return matchPatPat(g, rp.Rhs, tp.Rhs)
	case ast.PatParend:
		if tp.Kind != ast.PatParend {
			return nil, false
		}
		return matchPatPat(g, rp.Rhs, tp.Rhs)
	case ast.PatBracketed:
		if tp.Kind != ast.PatBracketed {
			return nil, false
		}
		return matchPatPat(g, rp.Rhs, tp.Rhs)
	default:
		return nil, false
	}
}

func (b *patBindings) transformToPat(g *ast.Graph, pat ast.ExprPatID) ast.ExprPatID {
	n := g.Pat(pat)
	switch n.Kind {
	case ast.PatVarPat, ast.PatConstPat, ast.PatAnyPat:
		if bound, ok := b.m[pat]; ok {
			return bound
		}
		return pat
	case ast.PatBinary:
		lhs := b.transformToPat(g, n.Lhs)
		rhs := b.transformToPat(g, n.Rhs)
		return g.NewPatBinary(n.BinOp, lhs, rhs, n.Span)
	case ast.PatUnary:
		return g.NewPatUnary(n.UnOp, b.transformToPat(g, n.Rhs), n.Span)
	case ast.PatParend:
		return g.NewPatParend(b.transformToPat(g, n.Rhs), n.Span)
	case ast.PatBracketed:
		return g.NewPatBracketed(b.transformToPat(g, n.Rhs), n.Span)
	default:
		return pat
	}
}
