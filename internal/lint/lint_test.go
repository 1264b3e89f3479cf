package lint

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/parser"
)

func parseProgram(t *testing.T, g *ast.Graph, src string) ast.StmtList {
	t.Helper()
	bag := diag.NewBag(16)
	stmts := parser.ParseProgram(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing %q: %v", src, bag.Items())
	}
	return stmts
}

func TestLintRedundantNesting(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parseProgram(t, g, "((1))")
	Lint(g, stmts, bag)
	if !hasCode(bag, diag.CodeRedundantNesting) {
		t.Fatalf("expected %s, got %v", diag.CodeRedundantNesting, bag.Items())
	}
}

func TestLintRedundantNestingAllowsSingleParen(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parseProgram(t, g, "(1 + 2)")
	Lint(g, stmts, bag)
	if hasCode(bag, diag.CodeRedundantNesting) {
		t.Fatalf("did not expect %s for single nesting, got %v", diag.CodeRedundantNesting, bag.Items())
	}
}

func TestLintUnarySeries(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parseProgram(t, g, "--x")
	Lint(g, stmts, bag)
	if !hasCode(bag, diag.CodeUnarySeries) {
		t.Fatalf("expected %s, got %v", diag.CodeUnarySeries, bag.Items())
	}
}

func TestLintUnarySeriesAllowsSingleSign(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parseProgram(t, g, "-x")
	Lint(g, stmts, bag)
	if hasCode(bag, diag.CodeUnarySeries) {
		t.Fatalf("did not expect %s for single sign, got %v", diag.CodeUnarySeries, bag.Items())
	}
}

func TestLintHomogeneousAssignment(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parseProgram(t, g, "a = 1\nb := 2")
	Lint(g, stmts, bag)
	if !hasCode(bag, diag.CodeHomogeneousAssignment) {
		t.Fatalf("expected %s, got %v", diag.CodeHomogeneousAssignment, bag.Items())
	}
}

func TestLintHomogeneousAssignmentAllowsConsistentUse(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parseProgram(t, g, "a = 1\nb = 2")
	Lint(g, stmts, bag)
	if hasCode(bag, diag.CodeHomogeneousAssignment) {
		t.Fatalf("did not expect %s for consistent operators, got %v", diag.CodeHomogeneousAssignment, bag.Items())
	}
}

func TestLintSimilarNames(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	src := "$n + #n"
	pat := parser.ParseExprPat(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing %q: %v", src, bag.Items())
	}
	LintPattern(g, pat, bag)
	if !hasCode(bag, diag.CodeSimilarNames) {
		t.Fatalf("expected %s, got %v", diag.CodeSimilarNames, bag.Items())
	}
}

func TestLintSimilarNamesAllowsDistinctNames(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	src := "$n + #m"
	pat := parser.ParseExprPat(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing %q: %v", src, bag.Items())
	}
	LintPattern(g, pat, bag)
	if hasCode(bag, diag.CodeSimilarNames) {
		t.Fatalf("did not expect %s for distinct names, got %v", diag.CodeSimilarNames, bag.Items())
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
