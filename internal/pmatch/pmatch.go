// Package pmatch implements pattern matching between an ExprPat rule
// template and a target Expr, and the reverse transform of a pattern into a
// concrete expression once a match has bound its variables.
package pmatch

import "slide/internal/ast"

// Replacements maps pattern leaves ($a, #a, _a) bound during a successful
// match to the target subexpression they matched. Because rule patterns are
// graph nodes (ExprPatID), a pattern leaf's own ID stands in directly for
// the Rust original's hash-of-pointer key.
type Replacements struct {
	m map[ast.ExprPatID]ast.ExprID
}

// NewReplacements returns an empty Replacements.
func NewReplacements() *Replacements {
	return &Replacements{m: make(map[ast.ExprPatID]ast.ExprID)}
}

func (r *Replacements) insert(pat ast.ExprPatID, target ast.ExprID) {
	r.m[pat] = target
}

// Lookup returns the expression bound to pat, if any.
func (r *Replacements) Lookup(pat ast.ExprPatID) (ast.ExprID, bool) {
	id, ok := r.m[pat]
	return id, ok
}

// Len reports the number of bound pattern leaves.
func (r *Replacements) Len() int {
	return len(r.m)
}

// TryMerge combines left and right. If both bind the same pattern leaf to
// different targets, the merge is incompatible and ok is false.
func TryMerge(left, right *Replacements) (merged *Replacements, ok bool) {
	out := &Replacements{m: make(map[ast.ExprPatID]ast.ExprID, len(left.m)+len(right.m))}
	for k, v := range left.m {
		out.m[k] = v
	}
	for k, v := range right.m {
		if existing, has := out.m[k]; has && existing != v {
			return nil, false
		}
		out.m[k] = v
	}
	return out, true
}

// MatchRule attempts to match rule against target, returning the bindings
// that make the match hold. A VarPat matches any Var, a ConstPat matches any
// Const, an AnyPat matches anything; a bare Const pattern must be numerically
// equal to the target; Binary/Unary/Parend/Bracketed patterns recurse
// structurally and require the same operator and node shape on both sides.
func MatchRule(g *ast.Graph, rule ast.ExprPatID, target ast.ExprID) (*Replacements, bool) {
	rp, te := g.Pat(rule), g.Expr(target)

	switch rp.Kind {
	case ast.PatVarPat:
		if te.Kind != ast.ExprVar {
			return nil, false
		}
		repl := NewReplacements()
		repl.insert(rule, target)
		return repl, true

	case ast.PatConstPat:
		if te.Kind != ast.ExprConst {
			return nil, false
		}
		repl := NewReplacements()
		repl.insert(rule, target)
		return repl, true

	case ast.PatAnyPat:
		repl := NewReplacements()
		repl.insert(rule, target)
		return repl, true

	case ast.PatConst:
		if te.Kind != ast.ExprConst {
			return nil, false
		}
		if rp.Const.Cmp(te.Const) != 0 {
			return nil, false
		}
		return NewReplacements(), true

	case ast.PatBinary:
		if te.Kind != ast.ExprBinary || rp.BinOp != te.BinOp {
			return nil, false
		}
		lhsRepl, ok := MatchRule(g, rp.Lhs, te.Lhs)
		if !ok {
			return nil, false
		}
		rhsRepl, ok := MatchRule(g, rp.Rhs, te.Rhs)
		if !ok {
			return nil, false
		}
		return TryMerge(lhsRepl, rhsRepl)

	case ast.PatUnary:
		if te.Kind != ast.ExprUnary || rp.UnOp != te.UnOp {
			return nil, false
		}
		return MatchRule(g, rp.Rhs, te.Rhs)

	case ast.PatParend:
		if te.Kind != ast.ExprParend {
			return nil, false
		}
		return MatchRule(g, rp.Rhs, te.Rhs)

	case ast.PatBracketed:
		if te.Kind != ast.ExprBracketed {
			return nil, false
		}
		return MatchRule(g, rp.Rhs, te.Rhs)

	default:
		return nil, false
	}
}

// Transform rebuilds pat as a concrete Expr, substituting bound pattern
// leaves with the expressions recorded in r. Every non-leaf node is rebuilt
// through g's hash-consing constructors, so two branches that transform to
// the same value collapse back onto a single ExprID, preserving CSE the same
// way the original's explicit per-call cache did.
func (r *Replacements) Transform(g *ast.Graph, pat ast.ExprPatID) ast.ExprID {
	p := g.Pat(pat)
	switch p.Kind {
	case ast.PatVarPat, ast.PatConstPat, ast.PatAnyPat:
		id, ok := r.Lookup(pat)
		if !ok {
			panic("pmatch: pattern leaf has no replacement bound")
		}
		return id

	case ast.PatConst:
		return g.NewConst(p.Const, p.Span)

	case ast.PatBinary:
		lhs := r.Transform(g, p.Lhs)
		rhs := r.Transform(g, p.Rhs)
		return g.NewBinary(p.BinOp, lhs, rhs, p.Span)

	case ast.PatUnary:
		operand := r.Transform(g, p.Rhs)
		return g.NewUnary(p.UnOp, operand, p.Span)

	case ast.PatParend:
		inner := r.Transform(g, p.Rhs)
		return g.NewParend(inner, p.Span)

	case ast.PatBracketed:
		inner := r.Transform(g, p.Rhs)
		return g.NewBracketed(inner, p.Span)

	default:
		panic("pmatch: unknown pattern kind")
	}
}
