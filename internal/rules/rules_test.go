package rules

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/parser"
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

func TestRuleSetBuildsDefaultRules(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := NewRuleSet(g)
	built, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	found := false
	for _, r := range built {
		if r.Name == AdditiveIdentity {
			found = true
			if r.Map.String(g) != "_a + 0 -> _a" {
				t.Errorf("unexpected rendering: %s", r.Map.String(g))
			}
		}
	}
	if !found {
		t.Fatalf("expected AdditiveIdentity in built rule set")
	}
}

func TestRuleSetRemove(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := NewRuleSet(g)
	rs.Remove(ReorderConstants)
	built, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, r := range built {
		if r.Name == ReorderConstants {
			t.Fatalf("expected ReorderConstants to be removed")
		}
	}
}

func TestAddRuleFoldsConstants(t *testing.T) {
	g := ast.NewGraph(nil)
	target := parseExpr(t, g, "1 + 2")
	result, ok := addRule(g, target)
	if !ok {
		t.Fatalf("expected addRule to apply")
	}
	n := g.Expr(result)
	if n.Kind != ast.ExprConst || n.Const.RatString() != "3" {
		t.Fatalf("expected constant 3, got %v", n)
	}
}

func TestMultiplyRuleFoldsConstants(t *testing.T) {
	g := ast.NewGraph(nil)
	target := parseExpr(t, g, "3 * 4")
	result, ok := multiplyRule(g, target)
	if !ok || g.Expr(result).Const.RatString() != "12" {
		t.Fatalf("expected 12, got result ok=%v", ok)
	}
}

func TestAdditiveIdentityPatternMap(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := NewRuleSet(g)
	built, err := rs.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var rule Rule
	for _, r := range built {
		if r.Name == AdditiveIdentity {
			rule = r
		}
	}
	target := parseExpr(t, g, "x + 0")
	result, ok := rule.TryApplyTop(g, target)
	if !ok {
		t.Fatalf("expected AdditiveIdentity to match x + 0")
	}
	if g.Expr(result).Kind != ast.ExprVar {
		t.Fatalf("expected result to be the bare variable x")
	}
}

func TestExponentiateRuleIntegerExponent(t *testing.T) {
	g := ast.NewGraph(nil)
	target := parseExpr(t, g, "2 ^ 3")
	result, ok := exponentiateRule(g, target)
	if !ok || g.Expr(result).Const.RatString() != "8" {
		t.Fatalf("expected 8, ok=%v", ok)
	}
}
