package lspsvc

import (
	"slide/internal/emit"
	"slide/internal/program"
	"slide/internal/source"
)

// FormatEdit is a program-local replacement: re-render the text covering
// Span as NewText.
type FormatEdit struct {
	Span    source.Span
	NewText string
}

// Format implements spec.md §4.11's whole-document formatting contract:
// pretty-print every statement, replacing the entire program span.
func Format(p *program.Program, cfg emit.Config) FormatEdit {
	a := analyze(p)
	return FormatEdit{
		Span:    programSpan(a),
		NewText: emit.Program(a.g, a.res.Original, emit.Pretty, cfg),
	}
}

// RangeFormat implements range formatting: find the smallest AST item
// (statement, or an expression within one) whose span exactly covers
// [lo, hi), and re-render just that item. Returns false if no AST item's
// span exactly matches the requested range.
func RangeFormat(p *program.Program, lo, hi uint32, cfg emit.Config) (FormatEdit, bool) {
	a := analyze(p)
	for _, s := range a.res.Original.Stmts {
		if s.Span.Start == lo && s.Span.End == hi {
			return FormatEdit{Span: s.Span, NewText: renderStmt(a.g, s, cfg)}, true
		}
	}
	// Fall back to the smallest enclosing expression whose span exactly
	// matches the request, preferring the statement containing the range.
	for _, s := range a.res.Original.Stmts {
		if lo < s.Span.Start || hi > s.Span.End {
			continue
		}
		path := enclosingPath(a.g, wrapStmt(s), hi-1)
		for i := len(path) - 1; i >= 0; i-- {
			n := a.g.Expr(path[i])
			if n.Span.Start == lo && n.Span.End == hi {
				return FormatEdit{Span: n.Span, NewText: renderExpr(a.g, path[i], cfg)}, true
			}
		}
	}
	return FormatEdit{}, false
}

func programSpan(a analyzed) source.Span {
	if len(a.res.Original.Stmts) == 0 {
		return source.Span{}
	}
	first := a.res.Original.Stmts[0].Span
	last := a.res.Original.Stmts[len(a.res.Original.Stmts)-1].Span
	return first.Cover(last)
}
