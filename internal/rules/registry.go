// Package rules defines slide's rewrite rules: the built-in Evaluate
// (constant-folding) and PatternMap (algebraic identity) rules the partial
// evaluator applies to a fixed point, grounded on
// original_source/libslide/src/evaluator_rules/{registry.rs,rule.rs,
// registry/fn_rules.rs}.
package rules

import (
	"fmt"

	"slide/internal/ast"
)

// RuleName identifies one built-in rule, used to remove individual rules
// from a RuleSet (e.g. a linter disabling ReorderConstants to preserve
// user-written operand order).
type RuleName uint8

const (
	Add RuleName = iota
	Subtract
	Multiply
	Divide
	Modulo
	Exponentiate
	Posate
	Negate
	AdditiveIdentity
	ReorderConstants
	DistributeNegation
	UnwrapParens
	UnwrapBraces
)

func (n RuleName) String() string {
	switch n {
	case Add:
		return "Add"
	case Subtract:
		return "Subtract"
	case Multiply:
		return "Multiply"
	case Divide:
		return "Divide"
	case Modulo:
		return "Modulo"
	case Exponentiate:
		return "Exponentiate"
	case Posate:
		return "Posate"
	case Negate:
		return "Negate"
	case AdditiveIdentity:
		return "AdditiveIdentity"
	case ReorderConstants:
		return "ReorderConstants"
	case DistributeNegation:
		return "DistributeNegation"
	case UnwrapParens:
		return "UnwrapParens"
	case UnwrapBraces:
		return "UnwrapBraces"
	default:
		return "Unknown"
	}
}

// unbuiltKind distinguishes the three shapes a not-yet-built rule can take:
// a single string pattern, several string patterns sharing one name (e.g.
// UnwrapParens covers both "($a) -> $a" and "(#a) -> #a"), or a Go function.
type unbuiltKind uint8

const (
	unbuiltSingle unbuiltKind = iota
	unbuiltMulti
	unbuiltFunc
)

type unbuiltRule struct {
	kind unbuiltKind
	pats []string
	fn   EvalFunc
}

// defaultUnbuilt mirrors original_source's `define_rules!` table: the
// declaration order here is also the application order RuleSet.Build
// produces, since Go map iteration order is not used for anything that
// needs to be deterministic.
func defaultUnbuilt() []struct {
	name RuleName
	ur   unbuiltRule
} {
	return []struct {
		name RuleName
		ur   unbuiltRule
	}{
		{Add, unbuiltRule{kind: unbuiltFunc, fn: addRule}},
		{Subtract, unbuiltRule{kind: unbuiltFunc, fn: subtractRule}},
		{Multiply, unbuiltRule{kind: unbuiltFunc, fn: multiplyRule}},
		{Divide, unbuiltRule{kind: unbuiltFunc, fn: divideRule}},
		{Modulo, unbuiltRule{kind: unbuiltFunc, fn: moduloRule}},
		{Exponentiate, unbuiltRule{kind: unbuiltFunc, fn: exponentiateRule}},
		{Posate, unbuiltRule{kind: unbuiltFunc, fn: posateRule}},
		{Negate, unbuiltRule{kind: unbuiltFunc, fn: negateRule}},
		{AdditiveIdentity, unbuiltRule{kind: unbuiltSingle, pats: []string{"_a + 0 -> _a"}}},
		{ReorderConstants, unbuiltRule{kind: unbuiltSingle, pats: []string{"#a + $b -> $b + #a"}}},
		{DistributeNegation, unbuiltRule{kind: unbuiltSingle, pats: []string{"-(_a - _b) -> _b - _a"}}},
		{UnwrapParens, unbuiltRule{kind: unbuiltMulti, pats: []string{"($a) -> $a", "(#a) -> #a"}}},
		{UnwrapBraces, unbuiltRule{kind: unbuiltMulti, pats: []string{"[$a] -> $a", "[#a] -> #a"}}},
	}
}

// RuleSet is a mutable collection of not-yet-built rules, defaulting to
// slide's full built-in rule table.
type RuleSet struct {
	g        *ast.Graph
	removed  map[RuleName]struct{}
	unbuilt  []struct {
		name RuleName
		ur   unbuiltRule
	}
}

// NewRuleSet creates the default rule set backed by g, the Graph every
// parsed PatternMap literal is interned into.
func NewRuleSet(g *ast.Graph) *RuleSet {
	return &RuleSet{g: g, removed: make(map[RuleName]struct{}), unbuilt: defaultUnbuilt()}
}

// Remove excludes name from the set; Build will no longer include it.
func (rs *RuleSet) Remove(name RuleName) {
	rs.removed[name] = struct{}{}
}

// Build resolves every remaining unbuilt rule into a concrete Rule,
// returning them in declaration order. PatternMap rules are passed to
// Bootstrap with the Evaluate rules as the bootstrap set; transformPat
// rewrites only with PatternMap rules, so their From/To sides come out as
// parsed and are not rewritten by the unwrap rules.
func (rs *RuleSet) Build() ([]Rule, error) {
	var built []Rule
	var bootstrapBase []Rule

	for _, entry := range rs.unbuilt {
		if _, skip := rs.removed[entry.name]; skip {
			continue
		}
		switch entry.ur.kind {
		case unbuiltFunc:
			r := Rule{Name: entry.name, Kind: RuleKindEvaluate, Apply: entry.ur.fn}
			built = append(built, r)
			bootstrapBase = append(bootstrapBase, r)
		case unbuiltSingle, unbuiltMulti:
			for _, s := range entry.ur.pats {
				pm, err := ParsePatternMap(rs.g, s)
				if err != nil {
					return nil, fmt.Errorf("rules: building %s: %w", entry.name, err)
				}
				if err := pm.Validate(rs.g); err != nil {
					return nil, fmt.Errorf("rules: building %s: %w", entry.name, err)
				}
				built = append(built, Rule{Name: entry.name, Kind: RuleKindPatternMap, Map: pm})
			}
		}
	}

	for i := range built {
		if built[i].Kind == RuleKindPatternMap {
			built[i].Map = built[i].Map.Bootstrap(rs.g, bootstrapBase)
		}
	}
	return built, nil
}
