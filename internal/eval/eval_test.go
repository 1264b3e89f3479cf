package eval

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/parser"
	"slide/internal/rules"
)

func parseExpr(t *testing.T, g *ast.Graph, src string) ast.ExprID {
	t.Helper()
	bag := diag.NewBag(16)
	id := parser.ParseExpr(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing %q: %v", src, bag.Items())
	}
	return id
}

func defaultRules(t *testing.T, g *ast.Graph) []rules.Rule {
	t.Helper()
	built, err := rules.NewRuleSet(g).Build()
	if err != nil {
		t.Fatalf("building rule set: %v", err)
	}
	return built
}

func TestEvaluateFoldsArithmetic(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	target := parseExpr(t, g, "1 + 2 + 3")
	result := Evaluate(g, target, rs)
	n := g.Expr(result)
	if n.Kind != ast.ExprConst || n.Const.RatString() != "6" {
		t.Fatalf("expected 6, got %v", n)
	}
}

func TestEvaluateAdditiveIdentity(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	target := parseExpr(t, g, "x + 0")
	result := Evaluate(g, target, rs)
	n := g.Expr(result)
	if n.Kind != ast.ExprVar {
		t.Fatalf("expected bare variable x, got %v", n.Kind)
	}
}

func TestEvaluateUnwrapsParens(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	target := parseExpr(t, g, "(x)")
	result := Evaluate(g, target, rs)
	if g.Expr(result).Kind != ast.ExprVar {
		t.Fatalf("expected parens to unwrap to bare variable")
	}
}

func TestEvaluatePartialWithVariable(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	target := parseExpr(t, g, "1 + 2 + a")
	result := Evaluate(g, target, rs)
	n := g.Expr(result)
	if n.Kind != ast.ExprBinary {
		t.Fatalf("expected a partially-folded binary expression, got %v", n.Kind)
	}
}

func TestCmpEqAlwaysEquivalent(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	a := parseExpr(t, g, "1 + 2")
	b := parseExpr(t, g, "3")
	rel := CmpEq(g, a, b, rs)
	if rel.Kind != AlwaysEquivalent {
		t.Fatalf("expected AlwaysEquivalent, got %v", rel.Kind)
	}
}

func TestCmpEqNeverEquivalent(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	a := parseExpr(t, g, "1")
	b := parseExpr(t, g, "2")
	rel := CmpEq(g, a, b, rs)
	if rel.Kind != NeverEquivalent {
		t.Fatalf("expected NeverEquivalent, got %v", rel.Kind)
	}
}

func TestCmpEqDependsOnVariable(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	a := parseExpr(t, g, "x + 1")
	b := parseExpr(t, g, "2")
	rel := CmpEq(g, a, b, rs)
	if rel.Kind != DependsOn {
		t.Fatalf("expected DependsOn, got %v", rel.Kind)
	}
	if len(rel.Vars) == 0 {
		t.Fatalf("expected at least one dependent variable")
	}
}

func TestNormalizeSortsOperands(t *testing.T) {
	g := ast.NewGraph(nil)
	a := parseExpr(t, g, "1 + x")
	b := parseExpr(t, g, "x + 1")
	na := Normalize(g, a)
	nb := Normalize(g, b)
	if na != nb {
		t.Fatalf("expected normalize to make commutatively-equal sums identical, got %d vs %d", na, nb)
	}
}
