package eval_test

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/eval"
	"slide/internal/parser"
	"slide/internal/rules"
	"slide/internal/testkit"
)

// TestEvaluateNeverIntroducesForeignVariables checks the invariant a rewrite
// rule must preserve: folding and rearranging subexpressions can drop
// variables (e.g. x - x -> 0) but can never introduce one that was not
// already present in the input.
func TestEvaluateNeverIntroducesForeignVariables(t *testing.T) {
	srcs := []string{
		"x + 0",
		"(x + y) * (y + x)",
		"x - x",
		"-(x - y)",
		"x + x + x",
		"2 * (x + 3) - 6",
	}
	g := ast.NewGraph(nil)
	rs, err := rules.NewRuleSet(g).Build()
	if err != nil {
		t.Fatalf("building rule set: %v", err)
	}

	for _, src := range srcs {
		bag := diag.NewBag(16)
		target := parser.ParseExpr(0, []byte(src), g, bag)
		if bag.HasErrors() {
			t.Fatalf("parsing %q: %v", src, bag.Items())
		}
		allowed := ast.CollectVars(g, target)
		result := eval.Evaluate(g, target, rs)
		if err := testkit.CheckVarsSubsetOf(g, result, allowed); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}
