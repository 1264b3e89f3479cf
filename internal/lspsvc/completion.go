package lspsvc

import (
	"slide/internal/program"
)

// CompletionItem is one program-local completion candidate.
type CompletionItem struct {
	Label string
}

// CompletionsAt implements spec.md §4.11's completion contract: offer every
// known variable in the program. A request typically fires mid-token, so
// this does not require offset to resolve to a Var node the way hover and
// rename do; it only requires offset to fall within the program's text.
func CompletionsAt(p *program.Program, offset uint32) []CompletionItem {
	a := analyze(p)
	names := knownVariables(a.g, a.res.Original)
	items := make([]CompletionItem, len(names))
	for i, n := range names {
		items[i] = CompletionItem{Label: nameText(a.g, n)}
	}
	return items
}
