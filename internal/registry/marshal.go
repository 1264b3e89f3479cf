package registry

import (
	"slide/internal/document"
	"slide/internal/source"
)

// toLineCol converts a 0-based LSP Position to the 1-based LineCol
// internal/source.SourceMap speaks.
func toLineCol(pos Position) source.LineCol {
	return source.LineCol{Line: pos.Line + 1, Col: pos.Character + 1}
}

// toPosition is toLineCol's inverse.
func toPosition(lc source.LineCol) Position {
	line, col := lc.Line, lc.Col
	if line == 0 {
		line = 1
	}
	if col == 0 {
		col = 1
	}
	return Position{Line: line - 1, Character: col - 1}
}

// ToDocPosition marshals an offset local to the program starting at
// progStart into a document-absolute Position via doc's SourceMap.
func ToDocPosition(doc *document.Document, progStart, localOffset uint32) Position {
	return toPosition(doc.SourceMap.ToPosition(progStart + localOffset))
}

// ToDocRange marshals a program-local byte span into a document-absolute
// Range, the response-marshal step every internal/lspsvc caller performs
// before handing a result back to the transport (§2, §4.11).
func ToDocRange(doc *document.Document, progStart uint32, span source.Span) Range {
	return Range{
		Start: ToDocPosition(doc, progStart, span.Start),
		End:   ToDocPosition(doc, progStart, span.End),
	}
}

// WithProgramAtPosition implements the §4.10 query driver for a single
// point: it resolves uri+pos to an installed Document, the ProgramSpan
// whose range contains the resulting absolute offset, and the offset
// translated into that program's own local coordinate space. Callers invoke
// an internal/lspsvc function with (ps.Program, localOffset) and marshal
// its program-local response back with ToDocRange/ToDocPosition.
func (r *Registry) WithProgramAtPosition(uri string, pos Position) (doc *document.Document, ps document.ProgramSpan, localOffset uint32, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok = r.docs[uri]
	if !ok {
		return nil, document.ProgramSpan{}, 0, false
	}
	offset, ok := doc.SourceMap.ToOffset(toLineCol(pos))
	if !ok {
		return nil, document.ProgramSpan{}, 0, false
	}
	ps, ok = doc.ProgramAt(offset)
	if !ok {
		return nil, document.ProgramSpan{}, 0, false
	}
	return doc, ps, offset - ps.Start, true
}

// WithProgramIncludingRange is WithProgramAtPosition's range analogue,
// used by rangeFormatting and codeAction: it resolves uri+rng to the single
// program whose span contains the entire range, plus the range translated
// into that program's local coordinates.
func (r *Registry) WithProgramIncludingRange(uri string, rng Range) (doc *document.Document, ps document.ProgramSpan, localLo, localHi uint32, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok = r.docs[uri]
	if !ok {
		return nil, document.ProgramSpan{}, 0, 0, false
	}
	lo, ok := doc.SourceMap.ToOffset(toLineCol(rng.Start))
	if !ok {
		return nil, document.ProgramSpan{}, 0, 0, false
	}
	hi, ok := doc.SourceMap.ToOffset(toLineCol(rng.End))
	if !ok {
		return nil, document.ProgramSpan{}, 0, 0, false
	}
	ps, ok = doc.ProgramIncluding(lo, hi)
	if !ok {
		return nil, document.ProgramSpan{}, 0, 0, false
	}
	return doc, ps, lo - ps.Start, hi - ps.Start, true
}

// WithEveryProgramInDocument drives whole-file queries (documentSymbol,
// foldingRange, codeLens), invoking fn once per program embedded in uri's
// document in document order.
func (r *Registry) WithEveryProgramInDocument(uri string, fn func(ps document.ProgramSpan)) (doc *document.Document, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok = r.docs[uri]
	if !ok {
		return nil, false
	}
	for _, ps := range doc.Programs {
		fn(ps)
	}
	return doc, true
}

// WithEveryProgramInWorkspace drives workspace/symbol: fn is invoked once
// per program across every open document, along with the uri and Document
// it belongs to so callers can marshal spans back to that document.
func (r *Registry) WithEveryProgramInWorkspace(fn func(uri string, doc *document.Document, ps document.ProgramSpan)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for uri, doc := range r.docs {
		for _, ps := range doc.Programs {
			fn(uri, doc, ps)
		}
	}
}
