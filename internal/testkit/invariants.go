// Package testkit gathers invariant-checking helpers shared by package test
// suites across the module, mirroring the teacher's own testkit role of
// keeping property assertions out of individual _test.go files.
package testkit

import (
	"fmt"

	"slide/internal/ast"
	"slide/internal/source"
)

// CheckSpanContainment verifies that every descendant of id has a span fully
// contained within its parent's span, all the way down the subtree.
func CheckSpanContainment(g *ast.Graph, id ast.ExprID) error {
	if !ast.SpanContained(g, id) {
		return fmt.Errorf("span containment invariant violated under node %d", id)
	}
	return nil
}

// CheckOrderingTotal verifies that ast.Compare is a strict total order over
// ids: antisymmetric and consistent with equality (a==b iff Compare==0).
func CheckOrderingTotal(g *ast.Graph, ids []ast.ExprID) error {
	for i, a := range ids {
		for j, b := range ids {
			cab := ast.Compare(g, a, b)
			cba := ast.Compare(g, b, a)
			if cab != -cba {
				return fmt.Errorf("Compare(%d,%d)=%d but Compare(%d,%d)=%d, want negation", a, b, cab, b, a, cba)
			}
			if (i == j) != (cab == 0) {
				return fmt.Errorf("Compare(%d,%d)=%d inconsistent with identity (i==j: %v)", a, b, cab, i == j)
			}
		}
	}
	return nil
}

// CheckCSEIdentity verifies that two independently-built expressions that are
// structurally identical hash-cons to the exact same ExprID. It does not
// inspect g's node count.
func CheckCSEIdentity(g *ast.Graph, a, b ast.ExprID) error {
	if a != b {
		return fmt.Errorf("expected structurally identical expressions to share one ExprID, got %d and %d", a, b)
	}
	return nil
}

// CheckOffsetRoundTrip verifies that converting every byte offset in
// [0, sm.Len()] to a LineCol and back yields the original offset, the
// invariant SourceMap's caches must preserve.
func CheckOffsetRoundTrip(sm *source.SourceMap) error {
	n := sm.Len()
	for off := uint32(0); off <= n; off++ {
		pos := sm.ToPosition(off)
		back, ok := sm.ToOffset(pos)
		if !ok {
			return fmt.Errorf("offset %d: ToPosition->ToOffset round trip failed, position %v not found", off, pos)
		}
		if back != off {
			return fmt.Errorf("offset %d: round trip produced %d via position %v", off, back, pos)
		}
	}
	return nil
}

// CheckVarsSubsetOf verifies that every variable occurring in id is one of
// allowed, the invariant a rewrite rule must preserve: rules only rearrange
// and fold existing subexpressions, they never introduce a variable that
// was not already present in the input.
func CheckVarsSubsetOf(g *ast.Graph, id ast.ExprID, allowed map[source.StringID]struct{}) error {
	for name := range ast.CollectVars(g, id) {
		if _, ok := allowed[name]; !ok {
			return fmt.Errorf("variable %d present in result but not in the allowed set", name)
		}
	}
	return nil
}
