package ast_test

import (
	"math/big"
	"testing"

	"slide/internal/ast"
	"slide/internal/source"
	"slide/internal/testkit"
)

func TestGraphInvariantsHoldForMixedExpression(t *testing.T) {
	g := ast.NewGraph(nil)
	outer := source.Span{Start: 0, End: 20}
	inner := source.Span{Start: 2, End: 12}

	x := g.NewVar(g.Interner.Intern("x"), inner)
	y := g.NewVar(g.Interner.Intern("y"), inner)
	one := g.NewConst(big.NewRat(1, 1), inner)
	sum := g.NewBinary(ast.OpAdd, x, one, inner)
	root := g.NewBinary(ast.OpMul, sum, y, outer)

	if err := testkit.CheckSpanContainment(g, root); err != nil {
		t.Error(err)
	}

	ids := []ast.ExprID{x, y, one, sum, root}
	if err := testkit.CheckOrderingTotal(g, ids); err != nil {
		t.Error(err)
	}

	other := g.NewBinary(ast.OpAdd, g.NewVar(g.Interner.Intern("x"), inner), g.NewConst(big.NewRat(1, 1), inner), inner)
	if err := testkit.CheckCSEIdentity(g, sum, other); err != nil {
		t.Error(err)
	}
}
