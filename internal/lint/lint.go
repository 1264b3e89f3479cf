// Package lint implements slide's style lints: checks that flag constructs
// which parse and evaluate fine but are confusing or misleading, grounded on
// original_source/libslide/src/linter/*.
package lint

import (
	"slide/internal/ast"
	"slide/internal/diag"
)

// Lint runs every built-in lint over stmts (and any pattern literals a
// caller separately wants checked via LintPattern), appending diagnostics to
// bag. Lints are warnings, never errors, and never block evaluation.
func Lint(g *ast.Graph, stmts ast.StmtList, bag *diag.Bag) {
	lintRedundantNesting(g, stmts, bag)
	lintUnarySeries(g, stmts, bag)
	lintHomogeneousAssignment(g, stmts, bag)
}

// LintPattern runs the pattern-specific similar-names lint over a single
// parsed ExprPat, used by the root command's --expr-pat mode.
func LintPattern(g *ast.Graph, pat ast.ExprPatID, bag *diag.Bag) {
	lintSimilarNames(g, pat, bag)
}
