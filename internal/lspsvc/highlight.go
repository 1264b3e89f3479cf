package lspsvc

import (
	"slide/internal/program"
	"slide/internal/source"
)

// HighlightKind mirrors LSP's DocumentHighlightKind: a definition is a
// write, every other occurrence is a read.
type HighlightKind uint8

const (
	HighlightRead HighlightKind = iota
	HighlightWrite
)

// Highlight is one program-local document-highlight entry.
type Highlight struct {
	Span source.Span
	Kind HighlightKind
}

// HighlightAt implements spec.md §4.11's document highlight contract:
// identical to references, but with occurrences always included and typed
// as read/write rather than definition/usage.
func HighlightAt(p *program.Program, offset uint32) ([]Highlight, bool) {
	occs, ok := ReferencesAt(p, offset, true)
	if !ok {
		return nil, false
	}
	out := make([]Highlight, len(occs))
	for i, o := range occs {
		kind := HighlightRead
		if o.Kind == OccurrenceDefinition {
			kind = HighlightWrite
		}
		out[i] = Highlight{Span: o.Span, Kind: kind}
	}
	return out, true
}
