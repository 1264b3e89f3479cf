package program

import (
	"path/filepath"
	"testing"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/rules"
)

func newRules(t *testing.T, g *ast.Graph) []rules.Rule {
	t.Helper()
	built, err := rules.NewRuleSet(g).Build()
	if err != nil {
		t.Fatalf("building rule set: %v", err)
	}
	return built
}

func TestAnalyzeSimplifiesAndCaches(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := newRules(t, g)
	p := New(0, []byte("x = 1 + 2"), g, rs, DefaultContext())

	first := p.Analyze()
	second := p.Analyze()
	if first != second {
		t.Fatalf("Analyze should return the same cached *Result on repeat calls")
	}
	if len(first.Simplified) != 1 {
		t.Fatalf("expected 1 simplified expression, got %d", len(first.Simplified))
	}
	n := g.Expr(first.Simplified[0])
	if n.Kind != ast.ExprConst || n.Const.RatString() != "3" {
		t.Fatalf("expected 3, got %v", n)
	}
}

func TestAnalyzeCollectsLintDiagnostics(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := newRules(t, g)
	p := New(0, []byte("x = ((1))"), g, rs, DefaultContext())

	res := p.Analyze()
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.CodeRedundantNesting {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s among %v", diag.CodeRedundantNesting, res.Diagnostics)
	}
}

func TestAnalyzeValidatesIncompatibleDefinitions(t *testing.T) {
	g := ast.NewGraph(nil)
	rs := newRules(t, g)
	p := New(0, []byte("a = 1\na = 2"), g, rs, DefaultContext())

	res := p.Analyze()
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.CodeIncompatibleDefinitions {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s among %v", diag.CodeIncompatibleDefinitions, res.Diagnostics)
	}
}

func TestDiskCacheRoundTrips(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slide-cache")
	cache, err := OpenDiskCache(dir)
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	g := ast.NewGraph(nil)
	rs := newRules(t, g)
	src := []byte("x = 1 + 2")
	ctx := DefaultContext()
	p := New(0, src, g, rs, ctx)
	res := p.Analyze()

	key := KeyFor(src, ctx)
	if err := cache.Put(key, ToCached(g, res)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if len(got.SimplifiedText) != 1 || got.SimplifiedText[0] != "3" {
		t.Fatalf("got %v", got.SimplifiedText)
	}
}

func TestDiskCacheMissForUnknownKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slide-cache")
	cache, err := OpenDiskCache(dir)
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	_, ok, err := cache.Get(KeyFor([]byte("nope"), DefaultContext()))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected cache miss")
	}
}

func TestKeyForDiffersByContext(t *testing.T) {
	src := []byte("x = 1")
	k1 := KeyFor(src, ProgramContext{Precision: 200, LintEnabled: true})
	k2 := KeyFor(src, ProgramContext{Precision: 200, LintEnabled: false})
	if k1 == k2 {
		t.Fatalf("expected different keys for different LintEnabled")
	}
}
