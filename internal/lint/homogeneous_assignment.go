package lint

import (
	"slide/internal/ast"
	"slide/internal/diag"
)

// lintHomogeneousAssignment flags a program that mixes "=" and ":=" across
// its assignments: slide treats the two identically, so mixing them within
// one program is almost always an oversight rather than intent, grounded on
// original_source's linter/stmt/homogenous_assignment.rs.
func lintHomogeneousAssignment(g *ast.Graph, stmts ast.StmtList, bag *diag.Bag) {
	var first *ast.Stmt
	for i := range stmts.Stmts {
		s := &stmts.Stmts[i]
		if !s.IsAssignment() {
			continue
		}
		if first == nil {
			first = s
			continue
		}
		if s.Op != first.Op {
			d := diag.New(diag.SevWarning, diag.CodeHomogeneousAssignment,
				"program mixes \""+first.Op.String()+"\" and \""+s.Op.String()+"\" assignment operators", s.Span)
			d = d.WithNote(first.Span, "first assignment uses \""+first.Op.String()+"\" here")
			bag.Add(d)
		}
	}
}
