package ast

import (
	"math/big"

	"slide/internal/source"
)

// ExprID is a 1-based handle into a Graph's expression arena. The zero value
// NoExpr never refers to a real node.
type ExprID uint32

const NoExpr ExprID = 0

// ExprKind discriminates the shape of an Expr node.
type ExprKind uint8

const (
	ExprConst ExprKind = iota
	ExprVar
	ExprBinary
	ExprUnary
	ExprParend
	ExprBracketed
)

func (k ExprKind) String() string {
	switch k {
	case ExprConst:
		return "Const"
	case ExprVar:
		return "Var"
	case ExprBinary:
		return "BinaryExpr"
	case ExprUnary:
		return "UnaryExpr"
	case ExprParend:
		return "Parend"
	case ExprBracketed:
		return "Bracketed"
	default:
		return "Unknown"
	}
}

// BinaryOp enumerates the binary operators of the expression grammar.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	default:
		return "?"
	}
}

// Precedence ranks op against the other binary operators for parenthesization
// decisions; higher binds tighter. Mirrors internal/parser's Pratt table.
func (op BinaryOp) Precedence() int {
	switch op {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv, OpMod:
		return 2
	case OpPow:
		return 4
	default:
		return 0
	}
}

// IsAssociative reports whether repeated application of op in a right-nested
// chain can be safely reassociated without changing meaning, i.e. whether a
// right child at the same precedence can be unparenthesized. Only `+` and
// `*` qualify; `-`, `/`, `%`, `^` do not.
func (op BinaryOp) IsAssociative() bool {
	return op == OpAdd || op == OpMul
}

// IsRightAssociative reports whether op nests to the right by default, as
// `^` does in internal/parser's Pratt table. A right-associative operator's
// right child at equal precedence needs no parens; its left child does.
func (op BinaryOp) IsRightAssociative() bool {
	return op == OpPow
}

// UnaryOp enumerates the prefix unary operators.
type UnaryOp uint8

const (
	OpPos UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "+"
}

// Expr is one node of the shared expression graph. Equality and hashing
// ignore Span: two nodes with the same Kind/operator/children/payload but
// different spans are, by construction, hash-consed into the same ExprID
// (see Graph.exprDed), so node identity alone stands in for structural
// equality everywhere downstream.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Const *big.Rat        // ExprConst
	Var   source.StringID // ExprVar

	BinOp BinaryOp // ExprBinary
	UnOp  UnaryOp  // ExprUnary

	Lhs ExprID // ExprBinary
	Rhs ExprID // ExprBinary (rhs), ExprUnary (operand), ExprParend/ExprBracketed (inner)
}

// exprKey is the structural dedup key for hash-consing. Because children are
// already-deduped ExprIDs by the time a parent node is built (construction
// is bottom-up), comparing IDs is equivalent to comparing subtrees.
type exprKey struct {
	kind  ExprKind
	binOp BinaryOp
	unOp  UnaryOp
	rat   string // big.Rat.RatString(), empty for non-Const
	v     source.StringID
	lhs   ExprID
	rhs   ExprID
}

// Graph owns the expression and expression-pattern arenas plus their
// hash-consing tables and the shared string interner. Per §5 of the design,
// a single Graph is meant to be shared by every Program in one registry (or
// one CLI invocation) so that CSE holds across repeated parses of the same
// text, not merely within one parse.
type Graph struct {
	Interner *source.Interner

	exprs   *Arena[Expr]
	exprDed map[exprKey]ExprID

	pats   *Arena[ExprPat]
	patDed map[patKey]ExprPatID
}

// NewGraph creates an empty Graph backed by interner (or a fresh one if nil).
func NewGraph(interner *source.Interner) *Graph {
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Graph{
		Interner: interner,
		exprs:    NewArena[Expr](256),
		exprDed:  make(map[exprKey]ExprID),
		pats:     NewArena[ExprPat](64),
		patDed:   make(map[patKey]ExprPatID),
	}
}

// Expr returns the node for id, or nil if id is NoExpr.
func (g *Graph) Expr(id ExprID) *Expr {
	return g.exprs.Get(uint32(id))
}

func (g *Graph) intern(key exprKey, build func() Expr) ExprID {
	if id, ok := g.exprDed[key]; ok {
		return id
	}
	id := ExprID(g.exprs.Allocate(build()))
	g.exprDed[key] = id
	return id
}

// NewConst builds (or reuses) a Const node.
func (g *Graph) NewConst(value *big.Rat, span source.Span) ExprID {
	key := exprKey{kind: ExprConst, rat: value.RatString()}
	return g.intern(key, func() Expr {
		return Expr{Kind: ExprConst, Span: span, Const: new(big.Rat).Set(value)}
	})
}

// NewVar builds (or reuses) a Var node for the interned name id.
func (g *Graph) NewVar(name source.StringID, span source.Span) ExprID {
	key := exprKey{kind: ExprVar, v: name}
	return g.intern(key, func() Expr {
		return Expr{Kind: ExprVar, Span: span, Var: name}
	})
}

// NewBinary builds (or reuses) a BinaryExpr node.
func (g *Graph) NewBinary(op BinaryOp, lhs, rhs ExprID, span source.Span) ExprID {
	key := exprKey{kind: ExprBinary, binOp: op, lhs: lhs, rhs: rhs}
	return g.intern(key, func() Expr {
		return Expr{Kind: ExprBinary, Span: span, BinOp: op, Lhs: lhs, Rhs: rhs}
	})
}

// NewUnary builds (or reuses) a UnaryExpr node.
func (g *Graph) NewUnary(op UnaryOp, operand ExprID, span source.Span) ExprID {
	key := exprKey{kind: ExprUnary, unOp: op, rhs: operand}
	return g.intern(key, func() Expr {
		return Expr{Kind: ExprUnary, Span: span, UnOp: op, Rhs: operand}
	})
}

// NewParend wraps inner in a Parend node.
func (g *Graph) NewParend(inner ExprID, span source.Span) ExprID {
	key := exprKey{kind: ExprParend, rhs: inner}
	return g.intern(key, func() Expr {
		return Expr{Kind: ExprParend, Span: span, Rhs: inner}
	})
}

// NewBracketed wraps inner in a Bracketed node.
func (g *Graph) NewBracketed(inner ExprID, span source.Span) ExprID {
	key := exprKey{kind: ExprBracketed, rhs: inner}
	return g.intern(key, func() Expr {
		return Expr{Kind: ExprBracketed, Span: span, Rhs: inner}
	})
}

// WithSpan returns id unchanged: spans are ignored for identity, so
// "changing" a node's span (e.g. when instantiating a rule RHS at a new
// call site) is not a mutation slide needs; callers that want span info at
// a new location should keep the original node's identity and consult the
// surrounding context's span instead. Kept as a documented no-op to make
// that decision explicit at call sites migrated from span-bearing code.
func (g *Graph) WithSpan(id ExprID, _ source.Span) ExprID {
	return id
}

// NumExprs reports how many distinct (post-CSE) Expr nodes exist.
func (g *Graph) NumExprs() int {
	return int(g.exprs.Len())
}
