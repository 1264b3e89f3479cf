package lspsvc

import (
	"slide/internal/ast"
	"slide/internal/emit"
	"slide/internal/program"
	"slide/internal/source"
)

// CodeLens is one inline annotation: Text should be rendered after Span.
type CodeLens struct {
	Span source.Span
	Text string
}

// CodeLenses implements spec.md §4.11's code lens contract: for every
// non-trivial binary subexpression (any BinaryExpr node, as opposed to the
// leaf Const/Var nodes), emit its simplified value as an inline annotation.
func CodeLenses(p *program.Program, cfg emit.Config) []CodeLens {
	a := analyze(p)
	var lenses []CodeLens
	for _, s := range a.res.Original.Stmts {
		ast.Walk(a.g, s.RHS, func(id ast.ExprID, n *ast.Expr) bool {
			if n.Kind == ast.ExprBinary {
				lenses = append(lenses, CodeLens{Span: n.Span, Text: renderExpr(a.g, a.simplify(id), cfg)})
			}
			return true
		})
	}
	return lenses
}
