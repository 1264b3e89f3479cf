package parser

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
)

func TestParseArithmeticPrecedence(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	root := ParseExpr(0, []byte("1 + 2 * 3"), g, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	n := g.Expr(root)
	if n.Kind != ast.ExprBinary || n.BinOp != ast.OpAdd {
		t.Fatalf("expected top-level +, got %v", n.Kind)
	}
	rhs := g.Expr(n.Rhs)
	if rhs.Kind != ast.ExprBinary || rhs.BinOp != ast.OpMul {
		t.Fatalf("expected 2*3 to bind tighter than +, got %v", rhs.Kind)
	}
}

func TestParseRightAssociativePow(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	root := ParseExpr(0, []byte("2 ^ 3 ^ 2"), g, bag)
	n := g.Expr(root)
	if n.Kind != ast.ExprBinary || n.BinOp != ast.OpPow {
		t.Fatalf("expected top-level ^, got %v", n.Kind)
	}
	rhs := g.Expr(n.Rhs)
	if rhs.Kind != ast.ExprBinary || rhs.BinOp != ast.OpPow {
		t.Fatalf("expected 2^(3^2) (right-assoc), got lhs=%v", rhs.Kind)
	}
}

func TestParseUnaryBindsTighterThanMulLooserThanPow(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	root := ParseExpr(0, []byte("-2 ^ 2"), g, bag)
	n := g.Expr(root)
	if n.Kind != ast.ExprUnary || n.UnOp != ast.OpNeg {
		t.Fatalf("expected -(2^2), got top kind %v", n.Kind)
	}
	operand := g.Expr(n.Rhs)
	if operand.Kind != ast.ExprBinary || operand.BinOp != ast.OpPow {
		t.Fatalf("expected unary operand to be 2^2, got %v", operand.Kind)
	}
}

func TestParseAssignmentStatement(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	list := ParseProgram(0, []byte("a := 1\na + 2"), g, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(list.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(list.Stmts))
	}
	if list.Stmts[0].Op != ast.AssignDefine {
		t.Fatalf("expected := assignment, got %v", list.Stmts[0].Op)
	}
	if list.Stmts[1].Op != ast.AssignNone {
		t.Fatalf("expected bare expression statement, got %v", list.Stmts[1].Op)
	}
}

func TestParseExtraTokensWithoutNewline(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	ParseProgram(0, []byte("1 + 2 3 + 4"), g, bag)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeExtraTokens {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a P0001 ExtraTokens diagnostic")
	}
}

func TestParseIllegalPatternSigilInExpr(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	root := ParseExpr(0, []byte("$a + 1"), g, bag)
	foundFix := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeIllegalPattern {
			foundFix = true
			if len(d.Fixes) == 0 {
				t.Errorf("expected autofix on IllegalPattern diagnostic")
			}
		}
	}
	if !foundFix {
		t.Fatalf("expected a P0004 IllegalPattern diagnostic")
	}
	n := g.Expr(root)
	if n.Kind != ast.ExprBinary {
		t.Fatalf("expected parser to recover and keep parsing, got %v", n.Kind)
	}
}

func TestParseExprPatSigils(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	root := ParseExprPat(0, []byte("$a + #b"), g, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	n := g.Pat(root)
	if n.Kind != ast.PatBinary {
		t.Fatalf("expected top-level binary pattern, got %v", n.Kind)
	}
	lhs := g.Pat(n.Lhs)
	rhs := g.Pat(n.Rhs)
	if lhs.Kind != ast.PatVarPat || rhs.Kind != ast.PatConstPat {
		t.Fatalf("expected VarPat + ConstPat, got %v + %v", lhs.Kind, rhs.Kind)
	}
}

func TestMismatchedClosingDelimiterAutofix(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(32)
	ParseExpr(0, []byte("(1 + 2]"), g, bag)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.CodeMismatchedClosingDelimiter {
			found = true
			if len(d.Fixes) == 0 {
				t.Errorf("expected autofix for mismatched delimiter")
			}
		}
	}
	if !found {
		t.Fatalf("expected a P0003 diagnostic")
	}
}
