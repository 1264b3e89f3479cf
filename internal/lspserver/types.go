package lspserver

import "encoding/json"

// rpcMessage is the wire shape of a JSON-RPC 2.0 message, covering both
// requests/notifications (Method/Params set) and responses (Result/Error
// set), grounded on teacher vovakirdan-surge's internal/lsp/types.go.
type rpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type initializeParams struct {
	RootURI               string          `json:"rootUri,omitempty"`
	InitializationOptions json.RawMessage `json:"initializationOptions,omitempty"`
}

// initializationOptions is the document_parsers contract of spec.md §6.
type initializationOptions struct {
	DocumentParsers map[string]string `json:"document_parsers"`
}

type textDocumentItem struct {
	URI  string `json:"uri"`
	Text string `json:"text"`
}

type textDocumentIdentifier struct {
	URI string `json:"uri"`
}

type position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

type lspRange struct {
	Start position `json:"start"`
	End   position `json:"end"`
}

type textDocumentContentChangeEvent struct {
	Range *lspRange `json:"range,omitempty"`
	Text  string    `json:"text"`
}

type didOpenTextDocumentParams struct {
	TextDocument textDocumentItem `json:"textDocument"`
}

type didChangeTextDocumentParams struct {
	TextDocument   textDocumentIdentifier            `json:"textDocument"`
	ContentChanges []textDocumentContentChangeEvent `json:"contentChanges"`
}

type didCloseTextDocumentParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type textDocumentPositionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
}

type referenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

type referenceParams struct {
	TextDocumentPositionParams
	Context referenceContext `json:"context"`
}

// TextDocumentPositionParams is embedded (rather than duplicated) by every
// position-addressed request, mirroring the LSP spec's own composition.
type TextDocumentPositionParams = textDocumentPositionParams

type documentSymbolParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type workspaceSymbolParams struct {
	Query string `json:"query"`
}

type documentFormattingParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type documentRangeFormattingParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Range        lspRange               `json:"range"`
}

type prepareRenameParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
}

type renameParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Position     position               `json:"position"`
	NewName      string                 `json:"newName"`
}

type codeActionContext struct {
	Diagnostics []lspDiagnostic `json:"diagnostics"`
}

type codeActionParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Range        lspRange                `json:"range"`
	Context      codeActionContext       `json:"context"`
}

type codeLensParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type foldingRangeParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type selectionRangeParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Positions    []position             `json:"positions"`
}

type completionParams struct {
	TextDocumentPositionParams
}

type textDocumentSyncOptions struct {
	OpenClose bool `json:"openClose"`
	Change    int  `json:"change"`
}

type serverCapabilities struct {
	TextDocumentSync          textDocumentSyncOptions `json:"textDocumentSync"`
	HoverProvider             bool                     `json:"hoverProvider"`
	DefinitionProvider        bool                     `json:"definitionProvider"`
	ReferencesProvider        bool                     `json:"referencesProvider"`
	DocumentHighlightProvider bool                     `json:"documentHighlightProvider"`
	DocumentSymbolProvider    bool                     `json:"documentSymbolProvider"`
	WorkspaceSymbolProvider   bool                     `json:"workspaceSymbolProvider"`
	DocumentFormattingProvider      bool `json:"documentFormattingProvider"`
	DocumentRangeFormattingProvider bool `json:"documentRangeFormattingProvider"`
	RenameProvider                  renameOptions `json:"renameProvider"`
	CodeActionProvider              bool          `json:"codeActionProvider"`
	CodeLensProvider                *struct{}     `json:"codeLensProvider,omitempty"`
	FoldingRangeProvider            bool          `json:"foldingRangeProvider"`
	SelectionRangeProvider          bool          `json:"selectionRangeProvider"`
	CompletionProvider              *struct{}     `json:"completionProvider,omitempty"`
}

type renameOptions struct {
	PrepareProvider bool `json:"prepareProvider"`
}

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
}

type publishDiagnosticsParams struct {
	URI         string          `json:"uri"`
	Diagnostics []lspDiagnostic `json:"diagnostics"`
}

type lspDiagnostic struct {
	Range    lspRange `json:"range"`
	Severity int      `json:"severity,omitempty"`
	Code     string   `json:"code,omitempty"`
	Source   string   `json:"source,omitempty"`
	Message  string   `json:"message"`
}

type markupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type hoverResult struct {
	Contents markupContent `json:"contents"`
	Range    lspRange      `json:"range"`
}

type location struct {
	URI   string   `json:"uri"`
	Range lspRange `json:"range"`
}

// documentHighlightResult is one LSP DocumentHighlight; Kind carries the
// DocumentHighlightKind enum: 1=Text, 2=Read, 3=Write.
type documentHighlightResult struct {
	Range lspRange `json:"range"`
	Kind  int      `json:"kind"`
}

// symbolKindVariable is the LSP SymbolKind.Variable constant (13); every
// slide symbol is a variable binding, so it is the only kind this server
// ever emits.
const symbolKindVariable = 13

type symbolInformation struct {
	Name     string   `json:"name"`
	Kind     int      `json:"kind"`
	Location location `json:"location"`
}

type textEdit struct {
	Range   lspRange `json:"range"`
	NewText string   `json:"newText"`
}

type workspaceEdit struct {
	Changes map[string][]textEdit `json:"changes"`
}

type codeAction struct {
	Title       string          `json:"title"`
	Kind        string          `json:"kind,omitempty"`
	IsPreferred bool            `json:"isPreferred,omitempty"`
	Edit        *workspaceEdit  `json:"edit,omitempty"`
	Diagnostics []lspDiagnostic `json:"diagnostics,omitempty"`
}

type command struct {
	Title string `json:"title"`
}

type codeLens struct {
	Range   lspRange `json:"range"`
	Command command  `json:"command"`
}

type foldingRange struct {
	StartLine      uint32 `json:"startLine"`
	StartCharacter uint32 `json:"startCharacter"`
	EndLine        uint32 `json:"endLine"`
	EndCharacter   uint32 `json:"endCharacter"`
}

type completionItem struct {
	Label string `json:"label"`
}

type selectionRangeResult struct {
	Range  lspRange              `json:"range"`
	Parent *selectionRangeResult `json:"parent,omitempty"`
}
