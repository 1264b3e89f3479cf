package ast

import (
	"math/big"

	"slide/internal/source"
)

// ExprPatID is a 1-based handle into a Graph's pattern arena.
type ExprPatID uint32

const NoExprPat ExprPatID = 0

// ExprPatKind discriminates the shape of an ExprPat node.
type ExprPatKind uint8

const (
	PatConst ExprPatKind = iota
	PatVarPat
	PatConstPat
	PatAnyPat
	PatBinary
	PatUnary
	PatParend
	PatBracketed
)

func (k ExprPatKind) String() string {
	switch k {
	case PatConst:
		return "Const"
	case PatVarPat:
		return "VarPat"
	case PatConstPat:
		return "ConstPat"
	case PatAnyPat:
		return "AnyPat"
	case PatBinary:
		return "BinaryExpr"
	case PatUnary:
		return "UnaryExpr"
	case PatParend:
		return "Parend"
	case PatBracketed:
		return "Bracketed"
	default:
		return "Unknown"
	}
}

// ExprPat is a node of the pattern grammar, sharing structure with Expr
// wherever the shapes coincide (Const, BinaryExpr, UnaryExpr, Parend,
// Bracketed) and adding the three sigil-named hole kinds.
type ExprPat struct {
	Kind ExprPatKind
	Span source.Span

	Const *big.Rat        // PatConst
	Name  source.StringID // PatVarPat, PatConstPat, PatAnyPat

	BinOp BinaryOp
	UnOp  UnaryOp

	Lhs ExprPatID
	Rhs ExprPatID
}

type patKey struct {
	kind  ExprPatKind
	binOp BinaryOp
	unOp  UnaryOp
	rat   string
	name  source.StringID
	lhs   ExprPatID
	rhs   ExprPatID
}

// Pat returns the pattern node for id, or nil if id is NoExprPat.
func (g *Graph) Pat(id ExprPatID) *ExprPat {
	return g.pats.Get(uint32(id))
}

func (g *Graph) internPat(key patKey, build func() ExprPat) ExprPatID {
	if id, ok := g.patDed[key]; ok {
		return id
	}
	id := ExprPatID(g.pats.Allocate(build()))
	g.patDed[key] = id
	return id
}

func (g *Graph) NewPatConst(value *big.Rat, span source.Span) ExprPatID {
	key := patKey{kind: PatConst, rat: value.RatString()}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatConst, Span: span, Const: new(big.Rat).Set(value)}
	})
}

func (g *Graph) NewVarPat(name source.StringID, span source.Span) ExprPatID {
	key := patKey{kind: PatVarPat, name: name}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatVarPat, Span: span, Name: name}
	})
}

func (g *Graph) NewConstPat(name source.StringID, span source.Span) ExprPatID {
	key := patKey{kind: PatConstPat, name: name}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatConstPat, Span: span, Name: name}
	})
}

func (g *Graph) NewAnyPat(name source.StringID, span source.Span) ExprPatID {
	key := patKey{kind: PatAnyPat, name: name}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatAnyPat, Span: span, Name: name}
	})
}

func (g *Graph) NewPatBinary(op BinaryOp, lhs, rhs ExprPatID, span source.Span) ExprPatID {
	key := patKey{kind: PatBinary, binOp: op, lhs: lhs, rhs: rhs}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatBinary, Span: span, BinOp: op, Lhs: lhs, Rhs: rhs}
	})
}

func (g *Graph) NewPatUnary(op UnaryOp, operand ExprPatID, span source.Span) ExprPatID {
	key := patKey{kind: PatUnary, unOp: op, rhs: operand}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatUnary, Span: span, UnOp: op, Rhs: operand}
	})
}

func (g *Graph) NewPatParend(inner ExprPatID, span source.Span) ExprPatID {
	key := patKey{kind: PatParend, rhs: inner}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatParend, Span: span, Rhs: inner}
	})
}

func (g *Graph) NewPatBracketed(inner ExprPatID, span source.Span) ExprPatID {
	key := patKey{kind: PatBracketed, rhs: inner}
	return g.internPat(key, func() ExprPat {
		return ExprPat{Kind: PatBracketed, Span: span, Rhs: inner}
	})
}
