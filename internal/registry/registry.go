// Package registry maintains the uri -> Document mapping that backs every
// editor-facing query: hover, goto-definition, formatting, and the rest of
// internal/lspsvc all go through a Registry to resolve a document position
// into a program.Program plus a program-local offset, and to marshal a
// program-local response back into document coordinates afterward.
// Grounded on original_source/editor/language_server/src/document/
// registry.rs for the Modified/Removed/lookup contract, and on teacher
// vovakirdan-surge's internal/lsp/server.go for the reader/writer boundary
// (a single sync.RWMutex guarding the map, exactly like that file's s.mu
// guarding openDocs/versions/docSnapshots).
package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/document"
	"slide/internal/program"
	"slide/internal/rules"
	"slide/internal/source"
)

// Position is an LSP-style 0-based (line, character) position. slide source
// is ASCII math notation, so a byte offset and a UTF-16 code unit offset
// coincide here; this mirrors the byte-oriented simplification already
// baked into internal/source.SourceMap rather than introducing a second,
// inconsistent notion of column.
type Position struct {
	Line      uint32
	Character uint32
}

// Range is a half-open [Start, End) document range in 0-based coordinates.
type Range struct {
	Start Position
	End   Position
}

// Registry holds every open document plus the shared expression graph and
// rule set every Program in the workspace draws from, so identical
// subexpressions across files are deduplicated process-wide (§5).
type Registry struct {
	mu sync.RWMutex

	graph *ast.Graph
	rules []rules.Rule
	ctx   program.ProgramContext

	fileSet *source.FileSet
	parsers map[string]*document.DocumentParser
	docs    map[string]*document.Document
}

// New creates an empty Registry. g and rs are typically built once per
// server process (or per CLI invocation that opens more than one file) and
// shared across every document.
func New(g *ast.Graph, rs []rules.Rule, ctx program.ProgramContext) *Registry {
	return &Registry{
		graph:   g,
		rules:   rs,
		ctx:     ctx,
		fileSet: source.NewFileSet(),
		parsers: make(map[string]*document.DocumentParser),
		docs:    make(map[string]*document.Document),
	}
}

// SetDocumentParsers (re)configures the extension -> regex-template table
// from LSP initializationOptions. A template that fails to compile or
// violates the single-capturing-group invariant produces a non-fatal
// diagnostic and that extension is simply skipped, per spec: initialization
// option violations never abort startup.
func (r *Registry) SetDocumentParsers(templates map[string]string) []*diag.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	var diags []*diag.Diagnostic
	parsers := make(map[string]*document.DocumentParser, len(templates))
	for ext, tmpl := range templates {
		p, err := document.NewDocumentParser(ext, tmpl)
		if err != nil {
			d := diag.New(diag.SevWarning, diag.CodeInvalidToken, fmt.Sprintf("document_parsers[%s]: %v", ext, err), source.Span{})
			diags = append(diags, d)
			continue
		}
		parsers[ext] = p
	}
	r.parsers = parsers
	return diags
}

func extensionOf(uri string) string {
	return filepath.Ext(uri)
}

// Modified implements the Document Registry's Modified event (§4.10): pick
// a DocumentParser by extension (no-op if none registered), reparse the
// full text into an ordered, non-overlapping sequence of programs, and
// atomically replace any Document previously installed at uri.
func (r *Registry) Modified(uri, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parsers[extensionOf(uri)]
	if !ok {
		return
	}
	file := r.fileSet.AddVirtual(uri, []byte(text))
	spans := p.Parse(file, []byte(text), r.graph, r.rules, r.ctx)
	r.docs[uri] = &document.Document{
		SourceMap: source.NewSourceMap(text),
		Programs:  spans,
	}
}

// Removed implements the Document Registry's Removed event: the document
// and every program it held are dropped from the map.
func (r *Registry) Removed(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, uri)
}

// Lookup returns the installed Document for uri, if any.
func (r *Registry) Lookup(uri string) (*document.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[uri]
	return d, ok
}

// Graph returns the expression graph shared by every program in the
// registry.
func (r *Registry) Graph() *ast.Graph { return r.graph }

// URIs returns every currently open document URI, in no particular order.
func (r *Registry) URIs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.docs))
	for uri := range r.docs {
		out = append(out, uri)
	}
	return out
}

// ReloadAll re-applies Modified for every (uri, text) pair in updates,
// bounded to a handful of concurrent reparses since Program.Analyze is
// triggered eagerly by some callers and can be costly for large documents.
// First error wins, grounded on teacher's internal/driver/parallel.go use
// of golang.org/x/sync/errgroup for directory-wide diagnose fan-out.
func (r *Registry) ReloadAll(ctx context.Context, updates map[string]string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for uri, text := range updates {
		uri, text := uri, text
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r.Modified(uri, text)
			return nil
		})
	}
	return g.Wait()
}
