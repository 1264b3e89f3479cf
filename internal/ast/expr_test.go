package ast

import (
	"math/big"
	"testing"

	"slide/internal/source"
)

func TestCSESharesIdenticalSubexpressions(t *testing.T) {
	g := NewGraph(nil)
	sp := source.Span{}

	one := g.NewConst(big.NewRat(1, 1), sp)
	two := g.NewConst(big.NewRat(2, 1), sp)
	lhs := g.NewBinary(OpMul, one, two, sp)
	rhs := g.NewBinary(OpMul, one, two, sp)

	if lhs != rhs {
		t.Fatalf("expected (1*2) parsed twice to share one node, got %d != %d", lhs, rhs)
	}

	root := g.NewBinary(OpAdd, lhs, rhs, sp)
	sum := g.Expr(root)
	if sum.Lhs != sum.Rhs {
		t.Fatalf("expected (1*2)+(1*2) operands to be pointer-equal, got %d != %d", sum.Lhs, sum.Rhs)
	}
}

func TestCSEAcrossSeparateConstruction(t *testing.T) {
	g := NewGraph(nil)
	sp := source.Span{}

	build := func() ExprID {
		x := g.NewVar(g.Interner.Intern("x"), sp)
		one := g.NewConst(big.NewRat(1, 1), sp)
		return g.NewBinary(OpAdd, x, one, sp)
	}

	a := build()
	b := build()
	if a != b {
		t.Fatalf("expected two constructions of the same shape to yield the same ExprID")
	}
}

func TestOrderingTotal(t *testing.T) {
	g := NewGraph(nil)
	sp := source.Span{}

	x := g.NewVar(g.Interner.Intern("x"), sp)
	c := g.NewConst(big.NewRat(1, 1), sp)
	u := g.NewUnary(OpNeg, x, sp)
	b := g.NewBinary(OpAdd, x, c, sp)

	nodes := []ExprID{x, c, u, b}
	for i := range nodes {
		for j := range nodes {
			ci := Compare(g, nodes[i], nodes[j])
			cj := Compare(g, nodes[j], nodes[i])
			if ci != -cj {
				t.Fatalf("ordering not antisymmetric for (%d,%d): %d vs %d", i, j, ci, cj)
			}
		}
	}

	if !Less(g, x, c) || !Less(g, c, u) || !Less(g, u, b) {
		t.Fatalf("expected Var < Const < Unary < Binary")
	}
}

func TestSpanContainment(t *testing.T) {
	g := NewGraph(nil)
	outer := source.Span{Start: 0, End: 10}
	inner := source.Span{Start: 2, End: 5}

	x := g.NewVar(g.Interner.Intern("x"), inner)
	one := g.NewConst(big.NewRat(1, 1), inner)
	root := g.NewBinary(OpAdd, x, one, outer)

	if !SpanContained(g, root) {
		t.Fatalf("expected child spans to be contained in the parent span")
	}
}
