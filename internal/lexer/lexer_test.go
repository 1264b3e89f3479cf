package lexer

import (
	"testing"

	"slide/internal/diag"
	"slide/internal/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	lx := New(0, []byte(src), bag)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.IsEOF() {
			break
		}
	}
	return toks, bag
}

func TestScanBasicExpression(t *testing.T) {
	toks, bag := scanAll(t, "1 + 2 * 3")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{token.Number, token.Plus, token.Number, token.Star, token.Number, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestScanPatternSigils(t *testing.T) {
	toks, bag := scanAll(t, "$a + #b + _c")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.VarPat || toks[0].Text != "$a" {
		t.Errorf("got %v", toks[0])
	}
	if toks[2].Kind != token.ConstPat || toks[2].Text != "#b" {
		t.Errorf("got %v", toks[2])
	}
	if toks[4].Kind != token.AnyPat || toks[4].Text != "_c" {
		t.Errorf("got %v", toks[4])
	}
}

func TestScanAssignmentOperators(t *testing.T) {
	toks, _ := scanAll(t, "a := 1\nb = 2")
	if toks[1].Kind != token.ColonEq {
		t.Errorf("expected ColonEq, got %s", toks[1].Kind)
	}
	// the second statement's leading token should carry a newline.
	var bTok token.Token
	for _, tok := range toks {
		if tok.Text == "b" {
			bTok = tok
			break
		}
	}
	if !bTok.HasNewlineBefore() {
		t.Errorf("expected newline before second statement's first token")
	}
}

func TestInvalidCharacterReported(t *testing.T) {
	toks, bag := scanAll(t, "1 @ 2")
	if !bag.HasErrors() {
		t.Fatalf("expected an S0001 diagnostic for '@'")
	}
	found := false
	for _, tok := range toks {
		if tok.Kind == token.Invalid {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an Invalid token in the stream")
	}
}

func TestNeverFailsReachesEOF(t *testing.T) {
	toks, _ := scanAll(t, "@@@")
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("scanning must always terminate at EOF")
	}
}
