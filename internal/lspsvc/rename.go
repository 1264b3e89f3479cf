package lspsvc

import (
	"slide/internal/diag"
	"slide/internal/program"
)

// CanRenameAt implements spec.md §4.11's can_rename contract: renaming
// succeeds iff offset sits over a variable. The returned placeholder is the
// variable's name, used by clients to pre-fill a rename prompt.
func CanRenameAt(p *program.Program, offset uint32) (placeholder string, ok bool) {
	a := analyze(p)
	name, ok := varAtOffset(a.g, a.res.Original, offset)
	if !ok {
		return "", false
	}
	return nameText(a.g, name), true
}

// RenameEditsAt implements get_rename_edits: a diag.TextEdit at every
// occurrence of the renamed variable's name, replacing it with newName.
func RenameEditsAt(p *program.Program, offset uint32, newName string) ([]diag.TextEdit, bool) {
	a := analyze(p)
	name, ok := varAtOffset(a.g, a.res.Original, offset)
	if !ok {
		return nil, false
	}
	occs := occurrencesOf(a.g, a.res.Original, name)
	edits := make([]diag.TextEdit, len(occs))
	oldText := nameText(a.g, name)
	for i, o := range occs {
		edits[i] = diag.TextEdit{Span: o.Span, NewText: newName, OldText: oldText}
	}
	return edits, true
}
