package lint

import (
	"sort"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/source"
)

// lintSimilarNames flags pattern leaf names that appear under more than one
// sigil kind (e.g. both "$n" and "#n"), which is almost always a typo since
// the sigil picks the hole's matching semantics and a shared name reads as
// if they were meant to unify, grounded on
// original_source's linter/expr_pat/similar_names.rs.
func lintSimilarNames(g *ast.Graph, pat ast.ExprPatID, bag *diag.Bag) {
	kindsByName := map[source.StringID]map[ast.ExprPatKind]source.Span{}
	ast.WalkPat(g, pat, func(_ ast.ExprPatID, n *ast.ExprPat) bool {
		switch n.Kind {
		case ast.PatVarPat, ast.PatConstPat, ast.PatAnyPat:
			kinds, ok := kindsByName[n.Name]
			if !ok {
				kinds = map[ast.ExprPatKind]source.Span{}
				kindsByName[n.Name] = kinds
			}
			if _, seen := kinds[n.Kind]; !seen {
				kinds[n.Kind] = n.Span
			}
		}
		return true
	})

	names := make([]source.StringID, 0, len(kindsByName))
	for name := range kindsByName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		kinds := kindsByName[name]
		if len(kinds) < 2 {
			continue
		}
		label, _ := g.Interner.Lookup(name)
		var first source.Span
		primarySet := false
		for _, span := range kinds {
			if !primarySet || span.Start < first.Start {
				first = span
				primarySet = true
			}
		}
		d := diag.New(diag.SevWarning, diag.CodeSimilarNames,
			"name \""+label+"\" is used across different pattern sigils", first)
		for kind, span := range kinds {
			if span == first {
				continue
			}
			d = d.WithNote(span, "also bound here as "+kind.String())
		}
		bag.Add(d)
	}
}
