package emit

import (
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/parser"
)

func parseExpr(t *testing.T, g *ast.Graph, src string) ast.ExprID {
	t.Helper()
	bag := diag.NewBag(16)
	id := parser.ParseExpr(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing %q: %v", src, bag.Items())
	}
	return id
}

func parseExprPat(t *testing.T, g *ast.Graph, src string) ast.ExprPatID {
	t.Helper()
	bag := diag.NewBag(16)
	id := parser.ParseExprPat(0, []byte(src), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing pattern %q: %v", src, bag.Items())
	}
	return id
}

func TestExprPrettyRoundTripsSource(t *testing.T) {
	g := ast.NewGraph(nil)
	cases := []string{
		"1 + 2",
		"1 + 2 + 3",
		"a * (b + c)",
		"2 ^ 3 ^ 4",
		"-x",
		"[1 + 2]",
	}
	for _, src := range cases {
		id := parseExpr(t, g, src)
		got := Expr(g, id, Pretty, Config{})
		if got != src {
			t.Errorf("Pretty(%q) = %q, want %q", src, got, src)
		}
	}
}

func TestExprPrettyAddsParensWhereNeeded(t *testing.T) {
	g := ast.NewGraph(nil)
	id := parseExpr(t, g, "a - (b - c)")
	got := Expr(g, id, Pretty, Config{})
	if got != "a - (b - c)" {
		t.Fatalf("got %q", got)
	}
}

func TestExprPrettyOmitsRedundantParensOnAssociativeChain(t *testing.T) {
	g := ast.NewGraph(nil)
	// Built directly rather than parsed: the parser keeps written parens as
	// Parend nodes, which Pretty always prints.
	a := parseExpr(t, g, "a")
	bc := parseExpr(t, g, "b + c")
	id := g.NewBinary(ast.OpAdd, a, bc, g.Expr(bc).Span)
	got := Expr(g, id, Pretty, Config{})
	if got != "a + b + c" {
		t.Fatalf("got %q", got)
	}
}

func TestExprSExpression(t *testing.T) {
	g := ast.NewGraph(nil)
	id := parseExpr(t, g, "1 + 2 * 3")
	got := Expr(g, id, SExpression, Config{})
	want := "(+ 1 (* 2 3))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExprLatexDefault(t *testing.T) {
	g := ast.NewGraph(nil)
	id := parseExpr(t, g, "a * b / c")
	got := Expr(g, id, Latex, Config{})
	want := "a \\cdot b / c"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExprLatexFracConfig(t *testing.T) {
	g := ast.NewGraph(nil)
	id := parseExpr(t, g, "1 / 2")
	got := Expr(g, id, Latex, Config{Frac: true})
	want := "\\frac{1}{2}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExprDebugIsStable(t *testing.T) {
	g := ast.NewGraph(nil)
	id := parseExpr(t, g, "1 + 2")
	got := Expr(g, id, Debug, Config{})
	want := "BinaryExpr(+, Const(1), Const(2))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPatPretty(t *testing.T) {
	g := ast.NewGraph(nil)
	id := parseExprPat(t, g, "$n + #c")
	got := Pat(g, id, Pretty, Config{})
	if got != "$n + #c" {
		t.Fatalf("got %q", got)
	}
}

func TestStmtPretty(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parser.ParseProgram(0, []byte("x = 1 + 2"), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing: %v", bag.Items())
	}
	got := Stmt(g, stmts.Stmts[0], Pretty, Config{})
	if got != "x = 1 + 2" {
		t.Fatalf("got %q", got)
	}
}

func TestProgramJoinsStatementsByLine(t *testing.T) {
	g := ast.NewGraph(nil)
	bag := diag.NewBag(16)
	stmts := parser.ParseProgram(0, []byte("x = 1\ny = 2"), g, bag)
	if bag.HasErrors() {
		t.Fatalf("parsing: %v", bag.Items())
	}
	got := Program(g, stmts, Pretty, Config{})
	want := "x = 1\ny = 2"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"pretty":       Pretty,
		"":             Pretty,
		"s-expression": SExpression,
		"latex":        Latex,
		"debug":        Debug,
	}
	for in, want := range cases {
		got, ok := ParseFormat(in)
		if !ok || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v, true", in, got, ok, want)
		}
	}
	if _, ok := ParseFormat("bogus"); ok {
		t.Fatalf("expected ParseFormat(\"bogus\") to fail")
	}
}
