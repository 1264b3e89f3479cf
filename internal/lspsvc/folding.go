package lspsvc

import (
	"slide/internal/program"
	"slide/internal/source"
)

// FoldingRanges implements spec.md §4.11's folding contract: one range per
// statement.
func FoldingRanges(p *program.Program) []source.Span {
	a := analyze(p)
	out := make([]source.Span, len(a.res.Original.Stmts))
	for i, s := range a.res.Original.Stmts {
		out[i] = s.Span
	}
	return out
}

// SelectionRanges implements the selection-range contract: the path of AST
// nodes whose spans enclose offset, innermost first.
func SelectionRanges(p *program.Program, offset uint32) []source.Span {
	a := analyze(p)
	for _, s := range a.res.Original.Stmts {
		if offset < s.Span.Start || offset >= s.Span.End {
			continue
		}
		path := enclosingPath(a.g, wrapStmt(s), offset)
		out := make([]source.Span, len(path))
		for i, id := range path {
			out[len(path)-1-i] = a.g.Expr(id).Span
		}
		return out
	}
	return nil
}
