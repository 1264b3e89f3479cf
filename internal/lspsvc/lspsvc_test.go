package lspsvc

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/emit"
	"slide/internal/program"
	"slide/internal/rules"
)

func newProgram(t *testing.T, src string) *program.Program {
	t.Helper()
	g := ast.NewGraph(nil)
	rs, err := rules.NewRuleSet(g).Build()
	if err != nil {
		t.Fatalf("building rule set: %v", err)
	}
	return program.New(0, []byte(src), g, rs, program.DefaultContext())
}

func TestHoverOnVariableShowsSimplifiedAssignments(t *testing.T) {
	p := newProgram(t, "x = 1 + 2\ny = x + 1")
	// offset of "x" in "y = x + 1" (second line): "x = 1 + 2\n" is 10 bytes,
	// "y = " is 4 more, so "x" sits at offset 14.
	h, ok := HoverAt(p, 14, emit.Config{})
	if !ok {
		t.Fatalf("expected hover result")
	}
	if h.Text != "3" {
		t.Fatalf("expected hover text %q, got %q", "3", h.Text)
	}
}

func TestDefinitionAtFindsAssignmentLHS(t *testing.T) {
	p := newProgram(t, "x = 1\ny = x")
	links, ok := DefinitionAt(p, 10, false) // offset of "x" in "y = x"
	if !ok || len(links) != 1 {
		t.Fatalf("expected 1 definition link, got %v ok=%v", links, ok)
	}
}

func TestReferencesAtClassifiesDefinitionAndUsage(t *testing.T) {
	p := newProgram(t, "x = 1\ny = x + x")
	refs, ok := ReferencesAt(p, 0, true) // offset 0 is the "x" LHS
	if !ok {
		t.Fatalf("expected references result")
	}
	if len(refs) != 3 {
		t.Fatalf("expected 3 occurrences (1 def + 2 usages), got %d", len(refs))
	}
	defs := 0
	for _, r := range refs {
		if r.Kind == OccurrenceDefinition {
			defs++
		}
	}
	if defs != 1 {
		t.Fatalf("expected exactly 1 definition occurrence, got %d", defs)
	}

	withoutDecl, _ := ReferencesAt(p, 0, false)
	if len(withoutDecl) != 2 {
		t.Fatalf("expected 2 usages excluding declaration, got %d", len(withoutDecl))
	}
}

func TestCanRenameAndRenameEdits(t *testing.T) {
	p := newProgram(t, "x = 1\ny = x")
	if _, ok := CanRenameAt(p, 4); ok {
		t.Fatalf("offset over a constant should not be renamable")
	}
	placeholder, ok := CanRenameAt(p, 0)
	if !ok || placeholder != "x" {
		t.Fatalf("expected renamable variable %q, got %q ok=%v", "x", placeholder, ok)
	}
	edits, ok := RenameEditsAt(p, 0, "z")
	if !ok || len(edits) != 2 {
		t.Fatalf("expected 2 rename edits, got %v ok=%v", edits, ok)
	}
	for _, e := range edits {
		if e.NewText != "z" {
			t.Fatalf("expected NewText %q, got %q", "z", e.NewText)
		}
	}
}

func TestDocumentSymbolsListsVariables(t *testing.T) {
	p := newProgram(t, "x = 1\ny = 2")
	syms := DocumentSymbols(p, emit.Config{})
	if len(syms) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(syms))
	}
	if syms[0].Name != "x" || syms[1].Name != "y" {
		t.Fatalf("unexpected symbol order: %+v", syms)
	}
}

func TestWorkspaceSymbolsFiltersBySubstring(t *testing.T) {
	p := newProgram(t, "apple = 1\nbanana = 2")
	syms := WorkspaceSymbols(p, "app", emit.Config{})
	if len(syms) != 1 || syms[0].Name != "apple" {
		t.Fatalf("expected only %q to match, got %+v", "apple", syms)
	}
}

func TestFormatRendersEveryStatement(t *testing.T) {
	p := newProgram(t, "x=1+2")
	f := Format(p, emit.Config{})
	if f.NewText != "x = 1 + 2" {
		t.Fatalf("expected %q, got %q", "x = 1 + 2", f.NewText)
	}
}

func TestFoldingRangesOnePerStatement(t *testing.T) {
	p := newProgram(t, "x = 1\ny = 2\nz = 3")
	folds := FoldingRanges(p)
	if len(folds) != 3 {
		t.Fatalf("expected 3 folding ranges, got %d", len(folds))
	}
}

func TestSelectionRangesInnermostFirst(t *testing.T) {
	p := newProgram(t, "x = (1 + 2)")
	// offset of "1" inside the parens.
	path := SelectionRanges(p, 5)
	if len(path) < 2 {
		t.Fatalf("expected a multi-node selection path, got %d", len(path))
	}
	for i := 1; i < len(path); i++ {
		if path[i-1].Len() > path[i].Len() {
			t.Fatalf("expected innermost-first ordering, got %v", path)
		}
	}
}

func TestCodeActionsOfferSimplifyRewrite(t *testing.T) {
	p := newProgram(t, "x = 1 + 2")
	actions := CodeActionsInRange(p, 0, 9, emit.Config{})
	found := false
	for _, a := range actions {
		if a.Title == "Simplify" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Simplify action among %+v", actions)
	}
}

func TestCodeActionsSurfaceLintFixes(t *testing.T) {
	p := newProgram(t, "x = ((1))")
	actions := CodeActionsInRange(p, 0, 9, emit.Config{})
	found := false
	for _, a := range actions {
		if a.Diagnostic != nil && a.Diagnostic.Code == diag.CodeRedundantNesting {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a quick-fix surfaced from the redundant-nesting lint, got %+v", actions)
	}
}

func TestCodeLensesAnnotateNonTrivialSubexpressions(t *testing.T) {
	p := newProgram(t, "x = 1 + 2")
	lenses := CodeLenses(p, emit.Config{})
	if len(lenses) != 1 || lenses[0].Text != "3" {
		t.Fatalf("expected 1 lens with text %q, got %+v", "3", lenses)
	}
}

func TestCompletionsListsKnownVariables(t *testing.T) {
	p := newProgram(t, "x = 1\ny = 2")
	items := CompletionsAt(p, 0)
	if len(items) != 2 {
		t.Fatalf("expected 2 completion items, got %d", len(items))
	}
}
