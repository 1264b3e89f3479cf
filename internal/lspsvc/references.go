package lspsvc

import (
	"slide/internal/program"
)

// Reference is one program-local occurrence returned by ReferencesAt.
type Reference = Occurrence

// ReferencesAt implements spec.md §4.11's references contract: visit the
// AST for the variable at offset, classify every occurrence as Definition
// or Usage, and filter by includeDeclaration.
func ReferencesAt(p *program.Program, offset uint32, includeDeclaration bool) ([]Reference, bool) {
	a := analyze(p)
	name, ok := varAtOffset(a.g, a.res.Original, offset)
	if !ok {
		return nil, false
	}
	occs := occurrencesOf(a.g, a.res.Original, name)
	if includeDeclaration {
		return occs, true
	}
	filtered := occs[:0:0]
	for _, o := range occs {
		if o.Kind != OccurrenceDefinition {
			filtered = append(filtered, o)
		}
	}
	return filtered, true
}
