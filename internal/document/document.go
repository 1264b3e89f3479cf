// Package document implements the document/program split that sits between
// raw editor buffers and the analysis pipeline in internal/program: a
// Document is one open file's text plus the ordered, non-overlapping slide
// Programs embedded in it, discovered by a DocumentParser. Grounded on
// original_source/editor/language_server/src/document/{mod.rs,parser.rs}.
package document

import (
	"fmt"
	"regexp"
	"sort"

	"slide/internal/ast"
	"slide/internal/program"
	"slide/internal/rules"
	"slide/internal/source"
)

// ProgramSpan is one slide program embedded in a document, tagged with its
// absolute byte offsets within the document's full text. Program itself
// only ever sees the bytes in [Start, End): every span and diagnostic it
// produces is program-local and must be shifted by Start before it means
// anything to the editor.
type ProgramSpan struct {
	Program *program.Program
	Start   uint32
	End     uint32
}

// Document is one open file's parsed view: a SourceMap over its full text
// plus the programs a DocumentParser found inside it, ordered by Start with
// Programs[i].End <= Programs[i+1].Start.
type Document struct {
	SourceMap *source.SourceMap
	Programs  []ProgramSpan
}

// ProgramAt finds the program whose span contains offset, via binary search
// over the ordered Programs slice.
func (d *Document) ProgramAt(offset uint32) (ProgramSpan, bool) {
	i := sort.Search(len(d.Programs), func(i int) bool {
		return d.Programs[i].End > offset
	})
	if i >= len(d.Programs) {
		return ProgramSpan{}, false
	}
	ps := d.Programs[i]
	if offset < ps.Start || offset >= ps.End {
		return ProgramSpan{}, false
	}
	return ps, true
}

// ProgramIncluding finds the program whose span contains the whole [lo, hi]
// range, used by range-formatting and code-action requests that may cover
// more than a single point.
func (d *Document) ProgramIncluding(lo, hi uint32) (ProgramSpan, bool) {
	i := sort.Search(len(d.Programs), func(i int) bool {
		return d.Programs[i].End >= hi
	})
	if i >= len(d.Programs) {
		return ProgramSpan{}, false
	}
	ps := d.Programs[i]
	if lo < ps.Start || hi > ps.End {
		return ProgramSpan{}, false
	}
	return ps, true
}

// DocumentParser locates slide program bodies embedded in a host document
// (e.g. fenced code blocks in a Markdown or notebook file) via a regular
// expression supplied at initialization. The template must carry exactly
// one explicit capturing group, which delimits the program body; this is
// checked once at construction rather than on every parse.
type DocumentParser struct {
	ext string
	re  *regexp.Regexp
}

// NewDocumentParser compiles template for file extension ext (including the
// leading dot, e.g. ".md") and validates the single-capturing-group
// invariant. A template that fails to compile or that carries zero or more
// than one capturing group is rejected here so that a bad initialization
// option produces one diagnostic at startup instead of a silent no-op on
// every later edit.
func NewDocumentParser(ext, template string) (*DocumentParser, error) {
	re, err := regexp.Compile(template)
	if err != nil {
		return nil, fmt.Errorf("document parser %q: %w", ext, err)
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, fmt.Errorf("document parser %q: template must have exactly one capturing group, got %d", ext, n)
	}
	return &DocumentParser{ext: ext, re: re}, nil
}

// Ext returns the file extension this parser was registered for.
func (p *DocumentParser) Ext() string { return p.ext }

// Parse scans text for non-overlapping matches of p's template and builds
// one program.Program per captured group, sharing g and rs (so common
// subexpressions dedup across every program in the workspace, not just
// within one document) and analyzed under ctx. file identifies the source
// buffer each program's diagnostics should be attributed to.
func (p *DocumentParser) Parse(file source.FileID, text []byte, g *ast.Graph, rs []rules.Rule, ctx program.ProgramContext) []ProgramSpan {
	matches := p.re.FindAllSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	spans := make([]ProgramSpan, 0, len(matches))
	var prevEnd int
	for _, m := range matches {
		start, end := m[2], m[3]
		if start < 0 || end < 0 || start < prevEnd {
			continue
		}
		body := text[start:end]
		spans = append(spans, ProgramSpan{
			Program: program.New(file, body, g, rs, ctx),
			Start:   uint32(start),
			End:     uint32(end),
		})
		prevEnd = end
	}
	return spans
}
