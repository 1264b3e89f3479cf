// Package lspsvc implements the editor-facing language services of §4.11:
// hover, goto-definition, references, highlight, rename, symbols,
// formatting, folding, selection ranges, code actions, code lens, and
// completion. Every exported function here takes a *program.Program (or its
// already-computed *program.Result) plus a program-local offset or range
// and returns a program-local response; internal/registry is responsible
// for translating uri+position into that offset and for marshaling the
// response back to document coordinates afterward. Grounded on teacher
// vovakirdan-surge's internal/lsp/{hover.go,definition.go,folding.go,
// completion*.go,signature_help.go} for the "plain function over the AST,
// caller marshals to document coordinates" shape, and on
// original_source/editor/language_server/src/services/*.rs +
// .../program/services/*.rs for the exact per-service contracts.
package lspsvc

import (
	"sort"
	"strings"

	"slide/internal/ast"
	"slide/internal/emit"
	"slide/internal/eval"
	"slide/internal/program"
	"slide/internal/rules"
	"slide/internal/source"
)

// enclosingPath returns the path of expression nodes whose spans contain
// offset, ordered outermost first, by walking every statement's LHS and RHS
// subtrees. Innermost-first order (selection ranges, tightest-enclosing
// lookups) is simply this slice reversed.
func enclosingPath(g *ast.Graph, stmts ast.StmtList, offset uint32) []ast.ExprID {
	var path []ast.ExprID
	var walk func(id ast.ExprID)
	walk = func(id ast.ExprID) {
		if id == ast.NoExpr {
			return
		}
		n := g.Expr(id)
		if offset < n.Span.Start || offset >= n.Span.End {
			return
		}
		path = append(path, id)
		switch n.Kind {
		case ast.ExprBinary:
			walk(n.Lhs)
			walk(n.Rhs)
		case ast.ExprUnary, ast.ExprParend, ast.ExprBracketed:
			walk(n.Rhs)
		}
	}
	for _, s := range stmts.Stmts {
		if s.IsAssignment() {
			walk(s.LHS)
		}
		walk(s.RHS)
	}
	return path
}

// wrapStmt lifts a single statement into a one-element StmtList so the
// path-walking helpers, which operate over a whole program, can be reused
// for a single already-located statement.
func wrapStmt(s ast.Stmt) ast.StmtList {
	return ast.StmtList{Stmts: []ast.Stmt{s}}
}

// tightestEnclosing returns the innermost expression whose span contains
// offset, and the statement it belongs to.
func tightestEnclosing(g *ast.Graph, stmts ast.StmtList, offset uint32) (ast.ExprID, ast.Stmt, bool) {
	for _, s := range stmts.Stmts {
		path := enclosingPath(g, ast.StmtList{Stmts: []ast.Stmt{s}}, offset)
		if len(path) > 0 {
			return path[len(path)-1], s, true
		}
	}
	return ast.NoExpr, ast.Stmt{}, false
}

// varAtOffset reports the interned name of the variable at offset, if the
// tightest enclosing expression is itself a Var node.
func varAtOffset(g *ast.Graph, stmts ast.StmtList, offset uint32) (source.StringID, bool) {
	id, _, ok := tightestEnclosing(g, stmts, offset)
	if !ok {
		return source.NoStringID, false
	}
	n := g.Expr(id)
	if n.Kind != ast.ExprVar {
		return source.NoStringID, false
	}
	return n.Var, true
}

// OccurrenceKind classifies one occurrence of a variable name in a program.
type OccurrenceKind uint8

const (
	// OccurrenceUsage is a read: the variable appears inside an expression.
	OccurrenceUsage OccurrenceKind = iota
	// OccurrenceDefinition is a write: the variable is the LHS of an
	// assignment statement.
	OccurrenceDefinition
)

// Occurrence is one place a given variable name appears in a program.
type Occurrence struct {
	Span source.Span
	Kind OccurrenceKind
}

// occurrencesOf finds every occurrence of name across stmts, classifying
// each as a Definition (assignment LHS) or a Usage (everywhere else),
// grounded on spec.md §4.11's References contract.
func occurrencesOf(g *ast.Graph, stmts ast.StmtList, name source.StringID) []Occurrence {
	var occs []Occurrence
	for _, s := range stmts.Stmts {
		if s.IsAssignment() {
			lhs := g.Expr(s.LHS)
			if lhs.Var == name {
				occs = append(occs, Occurrence{Span: lhs.Span, Kind: OccurrenceDefinition})
			}
		}
		ast.Walk(g, s.RHS, func(_ ast.ExprID, n *ast.Expr) bool {
			if n.Kind == ast.ExprVar && n.Var == name {
				occs = append(occs, Occurrence{Span: n.Span, Kind: OccurrenceUsage})
			}
			return true
		})
	}
	sort.Slice(occs, func(i, j int) bool { return occs[i].Span.Start < occs[j].Span.Start })
	return occs
}

// assignmentsOf returns every statement that assigns name, in source order.
func assignmentsOf(g *ast.Graph, stmts ast.StmtList, name source.StringID) []ast.Stmt {
	var defs []ast.Stmt
	for _, s := range stmts.Stmts {
		if s.IsAssignment() && g.Expr(s.LHS).Var == name {
			defs = append(defs, s)
		}
	}
	return defs
}

// knownVariables returns the interned ID of every distinct variable name
// assigned in stmts, in first-definition order.
func knownVariables(g *ast.Graph, stmts ast.StmtList) []source.StringID {
	var names []source.StringID
	seen := make(map[source.StringID]bool)
	for _, s := range stmts.Stmts {
		if !s.IsAssignment() {
			continue
		}
		v := g.Expr(s.LHS).Var
		if !seen[v] {
			seen[v] = true
			names = append(names, v)
		}
	}
	return names
}

// renderForm is the emit form every language service uses to produce
// human-facing text (hover content, rename/format output, code lens
// annotations): always slide's canonical pretty form, independent of
// whatever output form a CLI invocation separately requested.
var renderForm = emit.Pretty

func renderExpr(g *ast.Graph, id ast.ExprID, cfg emit.Config) string {
	return emit.Expr(g, id, renderForm, cfg)
}

func renderStmt(g *ast.Graph, s ast.Stmt, cfg emit.Config) string {
	return emit.Stmt(g, s, renderForm, cfg)
}

// nameText looks up the source text of an interned variable name.
func nameText(g *ast.Graph, name source.StringID) string {
	return g.Interner.MustLookup(name)
}

// analyzed is a small convenience wrapper bundling the graph, rule set, and
// analysis result every service needs.
type analyzed struct {
	g   *ast.Graph
	rs  []rules.Rule
	res *program.Result
}

func analyze(p *program.Program) analyzed {
	return analyzed{g: p.Graph(), rs: p.Rules(), res: p.Analyze()}
}

// simplify runs the partial evaluator over an arbitrary subexpression,
// not just a statement's cached top-level RHS; used by hover and code lens
// when the offset of interest lands inside a larger expression.
func (a analyzed) simplify(id ast.ExprID) ast.ExprID {
	return eval.Evaluate(a.g, id, a.rs)
}

// containsSubstring is a case-sensitive substring filter used by
// workspace/symbol.
func containsSubstring(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(haystack, needle)
}
