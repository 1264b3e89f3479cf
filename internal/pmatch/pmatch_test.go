package pmatch

import (
	"math/big"
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/parser"
	"slide/internal/source"
)

func mustPat(t *testing.T, g *ast.Graph, src string) ast.ExprPatID {
	t.Helper()
	bag := diag.NewBag(32)
	id := parser.ParseExprPat(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing pattern %q: %v", src, bag.Items())
	}
	return id
}

func mustExpr(t *testing.T, g *ast.Graph, src string) ast.ExprID {
	t.Helper()
	bag := diag.NewBag(32)
	id := parser.ParseExpr(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing expr %q: %v", src, bag.Items())
	}
	return id
}

func TestMatchRuleBinaryPattern(t *testing.T) {
	g := ast.NewGraph(nil)
	rule := mustPat(t, g, "$a + #b")
	target := mustExpr(t, g, "x + 0")

	repl, ok := MatchRule(g, rule, target)
	if !ok {
		t.Fatalf("expected match to succeed")
	}
	if repl.Len() != 2 {
		t.Fatalf("expected 2 bindings, got %d", repl.Len())
	}
}

func TestMatchRuleWrongOperatorFails(t *testing.T) {
	g := ast.NewGraph(nil)
	rule := mustPat(t, g, "$a + #b")
	target := mustExpr(t, g, "x - 0")

	if _, ok := MatchRule(g, rule, target); ok {
		t.Fatalf("expected match to fail on operator mismatch")
	}
}

func TestMatchRuleConstPatternRejectsVariable(t *testing.T) {
	g := ast.NewGraph(nil)
	rule := mustPat(t, g, "#a")
	target := mustExpr(t, g, "x")

	if _, ok := MatchRule(g, rule, target); ok {
		t.Fatalf("expected ConstPat to reject a Var target")
	}
}

func TestMatchRuleAnyPatternMatchesEverything(t *testing.T) {
	g := ast.NewGraph(nil)
	rule := mustPat(t, g, "_a")
	for _, src := range []string{"x", "1", "x + 1", "+(2)"} {
		target := mustExpr(t, g, src)
		if _, ok := MatchRule(g, rule, target); !ok {
			t.Fatalf("expected AnyPat to match %q", src)
		}
	}
}

func TestTransformCommonSubexpressionElimination(t *testing.T) {
	g := ast.NewGraph(nil)
	rule := mustPat(t, g, "#a * _b + #a * _b")
	target := mustExpr(t, g, "0 * 0 + 0 * 0")

	repl, ok := MatchRule(g, rule, target)
	if !ok {
		t.Fatalf("expected match to succeed")
	}
	transformed := repl.Transform(g, rule)
	top := g.Expr(transformed)
	if top.Kind != ast.ExprBinary {
		t.Fatalf("expected top-level binary, got %v", top.Kind)
	}
	if top.Lhs != top.Rhs {
		t.Fatalf("expected #a*_b + #a*_b to collapse to one shared ExprID on both sides")
	}
}

func TestTryMergeIncompatibleBindingsFails(t *testing.T) {
	a := NewReplacements()
	b := NewReplacements()
	var p ast.ExprPatID = 1
	a.insert(p, 2)
	b.insert(p, 3)
	if _, ok := TryMerge(a, b); ok {
		t.Fatalf("expected merge of conflicting bindings to fail")
	}
}

func TestTryMergeCompatibleUnion(t *testing.T) {
	a := NewReplacements()
	b := NewReplacements()
	var p1, p2 ast.ExprPatID = 1, 2
	a.insert(p1, 10)
	b.insert(p2, 20)
	merged, ok := TryMerge(a, b)
	if !ok || merged.Len() != 2 {
		t.Fatalf("expected disjoint merge to succeed with 2 entries")
	}
}

func TestMatchRuleConstValueEquality(t *testing.T) {
	g := ast.NewGraph(nil)
	rulePat := g.NewPatConst(big.NewRat(0, 1), source.Span{})
	target := mustExpr(t, g, "0")
	if _, ok := MatchRule(g, rulePat, target); !ok {
		t.Fatalf("expected equal constants to match")
	}
	target2 := mustExpr(t, g, "1")
	if _, ok := MatchRule(g, rulePat, target2); ok {
		t.Fatalf("expected unequal constants not to match")
	}
}
