package lspsvc

import (
	"slide/internal/ast"
	"slide/internal/emit"
	"slide/internal/program"
	"slide/internal/source"
)

// Symbol is one program-local document or workspace symbol: a variable name
// with its defining statement rendered as documentation.
type Symbol struct {
	Name          string
	Documentation string
	Span          source.Span
}

// DocumentSymbols implements spec.md §4.11's document symbols contract:
// list every variable assigned in the program, paired with its
// definition(s) rendered as documentation.
func DocumentSymbols(p *program.Program, cfg emit.Config) []Symbol {
	a := analyze(p)
	var out []Symbol
	for _, name := range knownVariables(a.g, a.res.Original) {
		defs := assignmentsOf(a.g, a.res.Original, name)
		out = append(out, Symbol{
			Name:          nameText(a.g, name),
			Documentation: symbolDoc(a, defs, cfg),
			Span:          defs[0].Span,
		})
	}
	return out
}

// WorkspaceSymbols is DocumentSymbols filtered by a case-sensitive
// substring query across every program the caller supplies (registry
// drives this across every open document).
func WorkspaceSymbols(p *program.Program, query string, cfg emit.Config) []Symbol {
	var out []Symbol
	for _, sym := range DocumentSymbols(p, cfg) {
		if containsSubstring(sym.Name, query) {
			out = append(out, sym)
		}
	}
	return out
}

func symbolDoc(a analyzed, defs []ast.Stmt, cfg emit.Config) string {
	var doc string
	for i, s := range defs {
		if i > 0 {
			doc += "\n"
		}
		doc += renderStmt(a.g, s, cfg)
	}
	return doc
}
