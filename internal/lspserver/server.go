// Package lspserver is the stdio JSON-RPC transport binding
// internal/registry and internal/lspsvc to the LSP surface of spec.md §6.
// Grounded on teacher vovakirdan-surge's internal/lsp/{jsonrpc.go,
// server.go}: a bufio.Reader/Writer pair framed by Content-Length headers,
// a switch on msg.Method, and a single sync.Mutex guarding the send side so
// notifications (publishDiagnostics) never interleave with a response mid-
// write.
package lspserver

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"slide/internal/diag"
	"slide/internal/document"
	"slide/internal/emit"
	"slide/internal/lspsvc"
	"slide/internal/registry"
	"slide/internal/source"
)

// ErrExit signals a graceful shutdown after receiving "exit".
var ErrExit = errors.New("lsp exit")

// ErrExitWithoutShutdown signals an "exit" notification that arrived
// without a preceding "shutdown" request, a client protocol violation.
var ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")

// Server handles stdio JSON-RPC for the slide LSP.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	reg *registry.Registry
	cfg emit.Config

	// sessionID prefixes every logf line so multiple server processes
	// writing to a shared log sink (e.g. an editor's combined output
	// channel) can be told apart.
	sessionID string

	shutdownRequested bool
}

// NewServer constructs a server reading requests from in and writing
// responses/notifications to out, driving reg for every document query.
func NewServer(in io.Reader, out io.Writer, reg *registry.Registry, cfg emit.Config) *Server {
	return &Server{
		in:        bufio.NewReader(in),
		out:       bufio.NewWriter(out),
		reg:       reg,
		cfg:       cfg,
		sessionID: uuid.NewString(),
	}
}

// Run serves requests until "exit" or the stream closes.
func (s *Server) Run() error {
	for {
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			if errors.Is(err, ErrExit) || errors.Is(err, ErrExitWithoutShutdown) {
				return err
			}
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		s.shutdownRequested = true
		return s.sendResponse(msg.ID, nil)
	case "exit":
		if s.shutdownRequested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/references":
		return s.handleReferences(msg)
	case "textDocument/documentHighlight":
		return s.handleDocumentHighlight(msg)
	case "textDocument/documentSymbol":
		return s.handleDocumentSymbol(msg)
	case "workspace/symbol":
		return s.handleWorkspaceSymbol(msg)
	case "textDocument/formatting":
		return s.handleFormatting(msg)
	case "textDocument/rangeFormatting":
		return s.handleRangeFormatting(msg)
	case "textDocument/prepareRename":
		return s.handlePrepareRename(msg)
	case "textDocument/rename":
		return s.handleRename(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	case "textDocument/codeLens":
		return s.handleCodeLens(msg)
	case "textDocument/foldingRange":
		return s.handleFoldingRange(msg)
	case "textDocument/selectionRange":
		return s.handleSelectionRange(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, -32601, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	if len(params.InitializationOptions) > 0 {
		var opts initializationOptions
		if err := json.Unmarshal(params.InitializationOptions, &opts); err != nil {
			s.logf("invalid initializationOptions: %v", err)
		} else {
			for _, d := range s.reg.SetDocumentParsers(opts.DocumentParsers) {
				s.logf("document_parsers: %s", d.Message)
			}
		}
	}
	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync:                textDocumentSyncOptions{OpenClose: true, Change: 1},
			HoverProvider:                   true,
			DefinitionProvider:              true,
			ReferencesProvider:              true,
			DocumentHighlightProvider:       true,
			DocumentSymbolProvider:          true,
			WorkspaceSymbolProvider:         true,
			DocumentFormattingProvider:      true,
			DocumentRangeFormattingProvider: true,
			RenameProvider:                  renameOptions{PrepareProvider: true},
			CodeActionProvider:              true,
			CodeLensProvider:                &struct{}{},
			FoldingRangeProvider:            true,
			SelectionRangeProvider:          true,
			CompletionProvider:              &struct{}{},
		},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.reg.Modified(params.TextDocument.URI, params.TextDocument.Text)
	return s.publishDiagnostics(params.TextDocument.URI)
}

// handleDidChange implements full-content sync (§6): the last content
// change in the batch carries the document's complete new text, mirroring
// textDocumentSyncOptions.Change == 1 (TextDocumentSyncKind.Full).
func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.reg.Modified(params.TextDocument.URI, text)
	return s.publishDiagnostics(params.TextDocument.URI)
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.reg.Removed(params.TextDocument.URI)
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []lspDiagnostic{},
	})
}

func (s *Server) publishDiagnostics(uri string) error {
	doc, ok := s.reg.Lookup(uri)
	diags := []lspDiagnostic{}
	if ok {
		if got := diagnosticsForDocument(doc); got != nil {
			diags = got
		}
	}
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{URI: uri, Diagnostics: diags})
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	h, ok := lspsvc.HoverAt(ps.Program, offset, s.cfg)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, hoverResult{
		Contents: markupContent{Kind: "plaintext", Value: h.Text},
		Range:    toLSPRange(registry.ToDocRange(doc, ps.Start, h.Span)),
	})
}

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	links, ok := lspsvc.DefinitionAt(ps.Program, offset, false)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	out := make([]location, len(links))
	for i, l := range links {
		out[i] = location{URI: params.TextDocument.URI, Range: toLSPRange(registry.ToDocRange(doc, ps.Start, l.Target))}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleReferences(msg *rpcMessage) error {
	var params referenceParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	refs, ok := lspsvc.ReferencesAt(ps.Program, offset, params.Context.IncludeDeclaration)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	out := make([]location, len(refs))
	for i, r := range refs {
		out[i] = location{URI: params.TextDocument.URI, Range: toLSPRange(registry.ToDocRange(doc, ps.Start, r.Span))}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleDocumentHighlight(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	highlights, ok := lspsvc.HighlightAt(ps.Program, offset)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	out := make([]documentHighlightResult, len(highlights))
	for i, h := range highlights {
		kind := 2
		if h.Kind == lspsvc.HighlightWrite {
			kind = 3
		}
		out[i] = documentHighlightResult{Range: toLSPRange(registry.ToDocRange(doc, ps.Start, h.Span)), Kind: kind}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	type hit struct {
		start uint32
		sym   lspsvc.Symbol
	}
	var hits []hit
	doc, ok := s.reg.WithEveryProgramInDocument(params.TextDocument.URI, func(ps document.ProgramSpan) {
		for _, sym := range lspsvc.DocumentSymbols(ps.Program, s.cfg) {
			hits = append(hits, hit{start: ps.Start, sym: sym})
		}
	})
	if !ok {
		return s.sendResponse(msg.ID, []symbolInformation{})
	}
	out := make([]symbolInformation, len(hits))
	for i, h := range hits {
		out[i] = symbolInformation{
			Name: h.sym.Name,
			Kind: symbolKindVariable,
			Location: location{
				URI:   params.TextDocument.URI,
				Range: toLSPRange(registry.ToDocRange(doc, h.start, h.sym.Span)),
			},
		}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleWorkspaceSymbol(msg *rpcMessage) error {
	var params workspaceSymbolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	var out []symbolInformation
	s.reg.WithEveryProgramInWorkspace(func(uri string, doc *document.Document, ps document.ProgramSpan) {
		for _, sym := range lspsvc.WorkspaceSymbols(ps.Program, params.Query, s.cfg) {
			out = append(out, symbolInformation{
				Name:     sym.Name,
				Kind:     symbolKindVariable,
				Location: location{URI: uri, Range: toLSPRange(registry.ToDocRange(doc, ps.Start, sym.Span))},
			})
		}
	})
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	type hit struct {
		start uint32
		edit  lspsvc.FormatEdit
	}
	var hits []hit
	doc, ok := s.reg.WithEveryProgramInDocument(params.TextDocument.URI, func(ps document.ProgramSpan) {
		hits = append(hits, hit{start: ps.Start, edit: lspsvc.Format(ps.Program, s.cfg)})
	})
	if !ok {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	out := make([]textEdit, len(hits))
	for i, h := range hits {
		out[i] = textEdit{Range: toLSPRange(registry.ToDocRange(doc, h.start, h.edit.Span)), NewText: h.edit.NewText}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleRangeFormatting(msg *rpcMessage) error {
	var params documentRangeFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, lo, hi, ok := s.reg.WithProgramIncludingRange(params.TextDocument.URI, toRegistryRange(params.Range))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	edit, ok := lspsvc.RangeFormat(ps.Program, lo, hi, s.cfg)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, []textEdit{{Range: toLSPRange(registry.ToDocRange(doc, ps.Start, edit.Span)), NewText: edit.NewText}})
}

func (s *Server) handlePrepareRename(msg *rpcMessage) error {
	var params prepareRenameParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	placeholder, ok := lspsvc.CanRenameAt(ps.Program, offset)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	refs, _ := lspsvc.ReferencesAt(ps.Program, offset, true)
	for _, r := range refs {
		if offset >= r.Span.Start && offset < r.Span.End {
			return s.sendResponse(msg.ID, struct {
				Range       lspRange `json:"range"`
				Placeholder string   `json:"placeholder"`
			}{Range: toLSPRange(registry.ToDocRange(doc, ps.Start, r.Span)), Placeholder: placeholder})
		}
	}
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleRename(msg *rpcMessage) error {
	var params renameParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	edits, ok := lspsvc.RenameEditsAt(ps.Program, offset, params.NewName)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	wireEdits := make([]textEdit, len(edits))
	for i, e := range edits {
		wireEdits[i] = textEdit{Range: toLSPRange(registry.ToDocRange(doc, ps.Start, e.Span)), NewText: e.NewText}
	}
	return s.sendResponse(msg.ID, workspaceEdit{Changes: map[string][]textEdit{params.TextDocument.URI: wireEdits}})
}

func fixKindToLSP(k diag.FixKind) string {
	switch k {
	case diag.FixKindQuickFix:
		return "quickfix"
	case diag.FixKindRefactor:
		return "refactor"
	case diag.FixKindRefactorRewrite:
		return "refactor.rewrite"
	case diag.FixKindSourceAction:
		return "source"
	default:
		return "quickfix"
	}
}

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc, ps, lo, hi, ok := s.reg.WithProgramIncludingRange(params.TextDocument.URI, toRegistryRange(params.Range))
	if !ok {
		return s.sendResponse(msg.ID, []codeAction{})
	}
	actions := lspsvc.CodeActionsInRange(ps.Program, lo, hi, s.cfg)
	out := make([]codeAction, len(actions))
	for i, a := range actions {
		edits := make([]textEdit, len(a.Edits))
		for j, e := range a.Edits {
			edits[j] = textEdit{Range: toLSPRange(registry.ToDocRange(doc, ps.Start, e.Span)), NewText: e.NewText}
		}
		wire := codeAction{
			Title:       a.Title,
			Kind:        fixKindToLSP(a.Kind),
			IsPreferred: a.IsPreferred,
			Edit:        &workspaceEdit{Changes: map[string][]textEdit{params.TextDocument.URI: edits}},
		}
		if a.Diagnostic != nil {
			wire.Diagnostics = []lspDiagnostic{{
				Range:    toLSPRange(registry.ToDocRange(doc, ps.Start, a.Diagnostic.Primary)),
				Severity: lspSeverity(a.Diagnostic.Severity),
				Code:     string(a.Diagnostic.Code),
				Source:   "slide",
				Message:  a.Diagnostic.Message,
			}}
		}
		out[i] = wire
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleCodeLens(msg *rpcMessage) error {
	var params codeLensParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	type hit struct {
		start uint32
		lens  lspsvc.CodeLens
	}
	var hits []hit
	doc, ok := s.reg.WithEveryProgramInDocument(params.TextDocument.URI, func(ps document.ProgramSpan) {
		for _, l := range lspsvc.CodeLenses(ps.Program, s.cfg) {
			hits = append(hits, hit{start: ps.Start, lens: l})
		}
	})
	if !ok {
		return s.sendResponse(msg.ID, []codeLens{})
	}
	out := make([]codeLens, len(hits))
	for i, h := range hits {
		out[i] = codeLens{Range: toLSPRange(registry.ToDocRange(doc, h.start, h.lens.Span)), Command: command{Title: h.lens.Text}}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	type hit struct {
		start uint32
		span  source.Span
	}
	var hits []hit
	doc, ok := s.reg.WithEveryProgramInDocument(params.TextDocument.URI, func(ps document.ProgramSpan) {
		for _, span := range lspsvc.FoldingRanges(ps.Program) {
			hits = append(hits, hit{start: ps.Start, span: span})
		}
	})
	if !ok {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	out := make([]foldingRange, len(hits))
	for i, h := range hits {
		r := toLSPRange(registry.ToDocRange(doc, h.start, h.span))
		out[i] = foldingRange{StartLine: r.Start.Line, StartCharacter: r.Start.Character, EndLine: r.End.Line, EndCharacter: r.End.Character}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleSelectionRange(msg *rpcMessage) error {
	var params selectionRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	out := make([]*selectionRangeResult, len(params.Positions))
	for i, pos := range params.Positions {
		doc, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(pos))
		if !ok {
			continue
		}
		spans := lspsvc.SelectionRanges(ps.Program, offset)
		var node *selectionRangeResult
		for j := len(spans) - 1; j >= 0; j-- {
			node = &selectionRangeResult{Range: toLSPRange(registry.ToDocRange(doc, ps.Start, spans[j])), Parent: node}
		}
		out[i] = node
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	_, ps, offset, ok := s.reg.WithProgramAtPosition(params.TextDocument.URI, toRegistryPosition(params.Position))
	if !ok {
		return s.sendResponse(msg.ID, []completionItem{})
	}
	items := lspsvc.CompletionsAt(ps.Program, offset)
	out := make([]completionItem, len(items))
	for i, it := range items {
		out[i] = completionItem{Label: it.Label}
	}
	return s.sendResponse(msg.ID, out)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	return s.send(map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(id), "result": result})
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	return s.send(map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(id), "error": rpcError{Code: code, Message: message}})
}

func (s *Server) sendNotification(method string, params any) error {
	return s.send(map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lsp[%s]: "+format+"\n", append([]any{s.sessionID}, args...)...)
}
