package eval

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

func TestValidateDefinitionsFlagsIncompatible(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	stmts := parseProgram(t, g, "a = 1\na = 2")
	bag := diag.NewBag(16)
	ValidateDefinitions(g, stmts, rs, true, bag)
	if !hasCode(bag, diag.CodeIncompatibleDefinitions) {
		t.Fatalf("expected %s, got %v", diag.CodeIncompatibleDefinitions, bag.Items())
	}
}

func TestValidateDefinitionsAllowsCompatible(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	stmts := parseProgram(t, g, "a = 1 + 1\na = 2")
	bag := diag.NewBag(16)
	ValidateDefinitions(g, stmts, rs, true, bag)
	if hasCode(bag, diag.CodeIncompatibleDefinitions) {
		t.Fatalf("did not expect %s, got %v", diag.CodeIncompatibleDefinitions, bag.Items())
	}
}

func TestValidateDefinitionsMaybeGatedByLint(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := defaultRules(t, g)
	stmts := parseProgram(t, g, "a = x\na = 2")

	bag := diag.NewBag(16)
	ValidateDefinitions(g, stmts, rs, false, bag)
	if hasCode(bag, diag.CodeMaybeIncompatibleDefinitions) {
		t.Fatalf("did not expect %s when lint disabled, got %v", diag.CodeMaybeIncompatibleDefinitions, bag.Items())
	}

	bag = diag.NewBag(16)
	ValidateDefinitions(g, stmts, rs, true, bag)
	if !hasCode(bag, diag.CodeMaybeIncompatibleDefinitions) {
		t.Fatalf("expected %s when lint enabled, got %v", diag.CodeMaybeIncompatibleDefinitions, bag.Items())
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
