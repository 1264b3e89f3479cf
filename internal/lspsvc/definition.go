package lspsvc

import (
	"slide/internal/program"
	"slide/internal/source"
)

// DefinitionLink is one goto-definition target. LinkSpan is the span a
// client with link-support capability should use as the hover range over
// the origin occurrence; it is empty unless supportsLink was requested.
type DefinitionLink struct {
	Target   source.Span
	LinkSpan source.Span
}

// DefinitionAt implements spec.md §4.11's goto-definition contract: if
// offset is over a variable, return every assignment LHS span for that
// name. supportsLink controls whether LinkSpan is populated (location-link
// responses echo the origin occurrence back to the client).
func DefinitionAt(p *program.Program, offset uint32, supportsLink bool) ([]DefinitionLink, bool) {
	a := analyze(p)
	name, ok := varAtOffset(a.g, a.res.Original, offset)
	if !ok {
		return nil, false
	}
	id, _, _ := tightestEnclosing(a.g, a.res.Original, offset)
	origin := a.g.Expr(id).Span

	defs := assignmentsOf(a.g, a.res.Original, name)
	if len(defs) == 0 {
		return nil, false
	}
	links := make([]DefinitionLink, len(defs))
	for i, s := range defs {
		link := DefinitionLink{Target: a.g.Expr(s.LHS).Span}
		if supportsLink {
			link.LinkSpan = origin
		}
		links[i] = link
	}
	return links, true
}
