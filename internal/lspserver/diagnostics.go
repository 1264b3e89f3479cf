package lspserver

import (
	"slide/internal/diag"
	"slide/internal/document"
	"slide/internal/registry"
)

// lspSeverity maps internal/diag's four-level severity onto the LSP
// DiagnosticSeverity enum (1=Error, 2=Warning, 3=Information, 4=Hint).
func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	case diag.SevNote:
		return 3
	case diag.SevHelp:
		return 4
	default:
		return 1
	}
}

// diagnosticsForDocument gathers every program's diagnostics in doc,
// marshaling each Primary span back to document coordinates.
func diagnosticsForDocument(doc *document.Document) []lspDiagnostic {
	var out []lspDiagnostic
	for _, ps := range doc.Programs {
		for _, d := range ps.Program.Analyze().Diagnostics {
			out = append(out, lspDiagnostic{
				Range:    toLSPRange(registry.ToDocRange(doc, ps.Start, d.Primary)),
				Severity: lspSeverity(d.Severity),
				Code:     string(d.Code),
				Source:   "slide",
				Message:  d.Message,
			})
		}
	}
	return out
}
