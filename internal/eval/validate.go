package eval

import (
	"sort"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/rules"
	"slide/internal/source"
)

// maxDefinitionPairs bounds how many ordered pairs of same-variable
// definitions ValidateDefinitions generates diagnostics for: evaluating a
// pair costs a full partial-evaluation pass, so a program that redefines one
// variable many times could otherwise make validation quadratic, grounded on
// original_source's incompatible_definitions.rs MAX_DEFINITION_PAIRS.
const maxDefinitionPairs = 100

// ValidateDefinitions flags pairs of assignments to the same variable whose
// right-hand sides are never equal (V0001 IncompatibleDefinitions, always
// reported) or only conditionally equal (V0002 MaybeIncompatibleDefinitions,
// reported only when lintEnabled), grounded on
// original_source/libslide/src/partial_evaluator/validate/incompatible_definitions.rs.
func ValidateDefinitions(g *ast.Graph, stmts ast.StmtList, rs []rules.Rule, lintEnabled bool, bag *diag.Bag) {
	byName := map[source.StringID][]ast.Stmt{}
	var order []source.StringID
	for _, stmt := range stmts.Stmts {
		if !stmt.IsAssignment() {
			continue
		}
		name := g.Expr(stmt.LHS).Var
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = append(byName[name], stmt)
	}

	var pairs []struct {
		name source.StringID
		a, b ast.Stmt
	}
	for _, name := range order {
		asgns := byName[name]
		if len(asgns) < 2 {
			continue
		}
		if len(pairs) > maxDefinitionPairs {
			break
		}
		for i := 0; i < len(asgns); i++ {
			for j := i + 1; j < len(asgns); j++ {
				pairs = append(pairs, struct {
					name source.StringID
					a, b ast.Stmt
				}{name, asgns[i], asgns[j]})
			}
		}
	}
	if len(pairs) > maxDefinitionPairs {
		pairs = pairs[:maxDefinitionPairs]
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].a.Span != pairs[j].a.Span {
			return pairs[i].a.Span.Start < pairs[j].a.Span.Start
		}
		return pairs[i].b.Span.Start < pairs[j].b.Span.Start
	})

	for _, p := range pairs {
		rel := CmpEq(g, p.a.RHS, p.b.RHS, rs)
		switch rel.Kind {
		case AlwaysEquivalent:
			continue
		case NeverEquivalent:
			label, _ := g.Interner.Lookup(p.name)
			d := diag.New(diag.SevError, diag.CodeIncompatibleDefinitions,
				"\""+label+"\" is defined with two incompatible values", p.b.Span)
			d = d.WithNote(p.a.Span, "first defined here")
			bag.Add(d)
		case DependsOn:
			if !lintEnabled {
				continue
			}
			label, _ := g.Interner.Lookup(p.name)
			d := diag.New(diag.SevWarning, diag.CodeMaybeIncompatibleDefinitions,
				"\""+label+"\" may be defined with two incompatible values, depending on "+dependentVarsList(g, rel.Vars), p.b.Span)
			d = d.WithNote(p.a.Span, "first defined here")
			bag.Add(d)
		}
	}
}

func dependentVarsList(g *ast.Graph, vars map[source.StringID]struct{}) string {
	names := make([]string, 0, len(vars))
	for id := range vars {
		if name, ok := g.Interner.Lookup(id); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += ", "
		}
		out += name
	}
	return out
}
