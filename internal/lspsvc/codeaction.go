package lspsvc

import (
	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/emit"
	"slide/internal/program"
)

// CodeAction is a program-local quick-fix or rewrite suggestion.
type CodeAction struct {
	Title       string
	Kind        diag.FixKind
	IsPreferred bool
	Edits       []diag.TextEdit
	Diagnostic  *diag.Diagnostic // nil for the generic "simplify" action
}

// CodeActionsInRange implements spec.md §4.11's code actions contract: for
// every diagnostic whose span intersects [lo, hi), surface its attached
// fixes as quick-fix actions; additionally, for every statement whose span
// overlaps [lo, hi] and differs from its simplified form, offer a generic
// "simplify" rewrite.
func CodeActionsInRange(p *program.Program, lo, hi uint32, cfg emit.Config) []CodeAction {
	a := analyze(p)
	var actions []CodeAction

	for _, d := range a.res.Diagnostics {
		if d.Primary.End <= lo || d.Primary.Start >= hi {
			continue
		}
		for _, f := range d.Fixes {
			actions = append(actions, CodeAction{
				Title:       f.Title,
				Kind:        f.Kind,
				IsPreferred: f.IsPreferred,
				Edits:       f.Edits,
				Diagnostic:  d,
			})
		}
	}

	for i, s := range a.res.Original.Stmts {
		if s.Span.Start > hi || s.Span.End < lo {
			continue
		}
		original := renderStmt(a.g, s, cfg)
		rewritten := ast.Stmt{Span: s.Span, Op: s.Op, LHS: s.LHS, RHS: a.res.Simplified[i]}
		simplified := emit.Stmt(a.g, rewritten, emit.Pretty, cfg)
		if original != simplified {
			actions = append(actions, CodeAction{
				Title: "Simplify",
				Kind:  diag.FixKindRefactorRewrite,
				Edits: []diag.TextEdit{{Span: s.Span, NewText: simplified}},
			})
		}
	}
	return actions
}
