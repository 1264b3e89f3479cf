package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"slide/internal/diag"
	"slide/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("x = 1 +\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.slide", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.CodeExpectedExpr, "expected an expression", source.Span{File: fileID, Start: 7, End: 8}))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.slide"},
		{"relative", PathModeRelative, "src/test.slide"},
		{"basename", PathModeBasename, "test.slide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Color: false, Context: 1, PathMode: tt.mode})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Fatalf("expected output to contain %q, got:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyUnderlinesPrimarySpan(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("x = 1 +\n")
	fileID := fs.AddVirtual("test.slide", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.CodeExpectedExpr, "expected an expression", source.Span{File: fileID, Start: 7, End: 8}))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: false, Context: 1})
	out := buf.String()

	if !strings.Contains(out, "test.slide:1:8: error P0002: expected an expression") {
		t.Fatalf("unexpected header line, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected an underline caret, got:\n%s", out)
	}
}

func TestPrettyRendersNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("x = x\n")
	fileID := fs.AddVirtual("test.slide", content)

	bag := diag.NewBag(10)
	d := diag.New(diag.SevError, diag.CodeIncompatibleDefinitions, "x is defined in terms of itself", source.Span{File: fileID, Start: 0, End: 1}).
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "this use of x is circular").
		WithFix(diag.Fix{
			ID:    "rename-lhs",
			Title: "rename the left-hand side",
			Kind:  diag.FixKindQuickFix,
			Edits: []diag.TextEdit{{Span: source.Span{File: fileID, Start: 0, End: 1}, NewText: "y", OldText: "x"}},
		})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: false, Context: 1, ShowNotes: true, ShowFixes: true, ShowPreview: true})
	out := buf.String()

	if !strings.Contains(out, "note: test.slide:1:5: this use of x is circular") {
		t.Fatalf("expected note line, got:\n%s", out)
	}
	if !strings.Contains(out, "fix #1: rename the left-hand side") {
		t.Fatalf("expected fix line, got:\n%s", out)
	}
	if !strings.Contains(out, "before:") || !strings.Contains(out, "after:") {
		t.Fatalf("expected a before/after preview, got:\n%s", out)
	}
}

func TestPrettyMultipleDiagnosticsAreBlankLineSeparated(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("x = 1 +\ny = 2 +\n")
	fileID := fs.AddVirtual("test.slide", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.CodeExpectedExpr, "expected an expression", source.Span{File: fileID, Start: 7, End: 8}))
	bag.Add(diag.New(diag.SevWarning, diag.CodeRedundantNesting, "redundant parentheses", source.Span{File: fileID, Start: 8, End: 16}))
	bag.Sort()

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: false, Context: 0})
	out := buf.String()

	if !strings.Contains(out, "\n\n") {
		t.Fatalf("expected a blank line between diagnostics, got:\n%s", out)
	}
	if !strings.Contains(out, "error") || !strings.Contains(out, "warning") {
		t.Fatalf("expected both severities rendered, got:\n%s", out)
	}
}
