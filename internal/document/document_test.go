package document

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/program"
	"slide/internal/rules"
	"slide/internal/source"
)

func newRules(t *testing.T, g *ast.Graph) []rules.Rule {
	t.Helper()
	built, err := rules.NewRuleSet(g).Build()
	if err != nil {
		t.Fatalf("building rule set: %v", err)
	}
	return built
}

func TestNewDocumentParserRejectsWrongCaptureGroupCount(t *testing.T) {
	if _, err := NewDocumentParser(".md", "```slide\n(?:.*?)```"); err == nil {
		t.Fatalf("expected error for zero explicit capturing groups")
	}
	if _, err := NewDocumentParser(".md", "```slide\n(.*?)```\n(.*)"); err == nil {
		t.Fatalf("expected error for two explicit capturing groups")
	}
	if _, err := NewDocumentParser(".md", "("); err == nil {
		t.Fatalf("expected error for invalid regexp")
	}
}

func TestDocumentParserFindsNonOverlappingPrograms(t *testing.T) {
	p, err := NewDocumentParser(".md", "(?s)```slide\n(.*?)\n```")
	if err != nil {
		t.Fatalf("NewDocumentParser: %v", err)
	}
	text := "before\n```slide\nx = 1 + 2\n```\nmiddle\n```slide\ny = 3\n```\nafter"

	g := ast.NewGraph(nil)
	rs := newRules(t, g)
	spans := p.Parse(0, []byte(text), g, rs, program.DefaultContext())
	if len(spans) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(spans))
	}
	for i, sp := range spans {
		if sp.Start >= sp.End {
			t.Fatalf("span %d has empty or inverted range", i)
		}
		if string(text[sp.Start:sp.End]) != []string{"x = 1 + 2", "y = 3"}[i] {
			t.Fatalf("span %d body = %q", i, text[sp.Start:sp.End])
		}
	}
	if spans[0].End > spans[1].Start {
		t.Fatalf("spans overlap: %+v", spans)
	}
}

func TestDocumentProgramAtAndIncluding(t *testing.T) {
	doc := &Document{
		SourceMap: source.NewSourceMap("aaa bbb ccc"),
		Programs: []ProgramSpan{
			{Start: 0, End: 3},
			{Start: 4, End: 7},
			{Start: 8, End: 11},
		},
	}
	if ps, ok := doc.ProgramAt(5); !ok || ps.Start != 4 {
		t.Fatalf("ProgramAt(5) = %+v, %v", ps, ok)
	}
	if _, ok := doc.ProgramAt(3); ok {
		t.Fatalf("ProgramAt(3) should miss the gap between programs")
	}
	if ps, ok := doc.ProgramIncluding(4, 7); !ok || ps.Start != 4 {
		t.Fatalf("ProgramIncluding(4,7) = %+v, %v", ps, ok)
	}
	if _, ok := doc.ProgramIncluding(2, 5); ok {
		t.Fatalf("ProgramIncluding(2,5) spans two programs, should miss")
	}
}
