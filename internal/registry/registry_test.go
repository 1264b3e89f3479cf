package registry

import (
	"context"
	"testing"

	"slide/internal/ast"
	"slide/internal/program"
	"slide/internal/rules"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	g := ast.NewGraph(nil)
	rs, err := rules.NewRuleSet(g).Build()
	if err != nil {
		t.Fatalf("building rule set: %v", err)
	}
	r := New(g, rs, program.DefaultContext())
	if diags := r.SetDocumentParsers(map[string]string{
		".md": "(?s)```slide\n(.*?)\n```",
	}); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics configuring parsers: %v", diags)
	}
	return r
}

func TestModifiedInstallsDocumentAndRemovedDropsIt(t *testing.T) {
	r := newTestRegistry(t)
	text := "# notes\n```slide\nx = 1 + 2\n```\n"
	r.Modified("file:///a.md", text)

	doc, ok := r.Lookup("file:///a.md")
	if !ok {
		t.Fatalf("expected document to be installed")
	}
	if len(doc.Programs) != 1 {
		t.Fatalf("expected 1 embedded program, got %d", len(doc.Programs))
	}

	r.Removed("file:///a.md")
	if _, ok := r.Lookup("file:///a.md"); ok {
		t.Fatalf("expected document to be removed")
	}
}

func TestModifiedIgnoresUnknownExtension(t *testing.T) {
	r := newTestRegistry(t)
	r.Modified("file:///a.txt", "x = 1")
	if _, ok := r.Lookup("file:///a.txt"); ok {
		t.Fatalf("expected no-op for an extension with no registered parser")
	}
}

func TestWithProgramAtPositionResolvesOffsetAndLocalOffset(t *testing.T) {
	r := newTestRegistry(t)
	text := "before\n```slide\nx = 1 + 2\n```\nafter"
	r.Modified("file:///a.md", text)

	// "x = 1 + 2" begins at line index 2 (0-based), column 0.
	doc, ps, localOffset, ok := r.WithProgramAtPosition("file:///a.md", Position{Line: 2, Character: 2})
	if !ok {
		t.Fatalf("expected a resolved program")
	}
	if localOffset != 2 {
		t.Fatalf("expected local offset 2, got %d", localOffset)
	}
	res := ps.Program.Analyze()
	if len(res.Original.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(res.Original.Stmts))
	}
	rhsSpan := ps.Program.Graph().Expr(res.Original.Stmts[0].RHS).Span
	rng := ToDocRange(doc, ps.Start, rhsSpan)
	_ = rng // exercised fully by lspsvc tests; here we only check no panic occurs
}

func TestReloadAllAppliesEveryUpdate(t *testing.T) {
	r := newTestRegistry(t)
	updates := map[string]string{
		"file:///a.md": "```slide\nx = 1\n```",
		"file:///b.md": "```slide\ny = 2\n```",
	}
	if err := r.ReloadAll(context.Background(), updates); err != nil {
		t.Fatalf("ReloadAll: %v", err)
	}
	if len(r.URIs()) != 2 {
		t.Fatalf("expected 2 open documents, got %d", len(r.URIs()))
	}
}
