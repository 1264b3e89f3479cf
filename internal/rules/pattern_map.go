package rules

import (
	"fmt"
	"sort"
	"strings"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/parser"
)

// PatternMap is a rewrite rule expressed as "from -> to", where both sides
// are expression patterns sharing pattern variables. Applying the rule means
// matching `from` against a target expression and, on success, instantiating
// `to` with the bindings the match produced.
type PatternMap struct {
	From ast.ExprPatID
	To   ast.ExprPatID
}

// ParsePatternMap parses a rule string of the form "<pattern> -> <pattern>".
func ParsePatternMap(g *ast.Graph, rule string) (PatternMap, error) {
	parts := strings.SplitN(rule, " -> ", 2)
	if len(parts) != 2 {
		return PatternMap{}, fmt.Errorf("rules: malformed rule %q, expected \"from -> to\"", rule)
	}
	bag := diag.NewBag(16)
	from := parser.ParseExprPat(0, []byte(strings.TrimSpace(parts[0])), g, bag)
	to := parser.ParseExprPat(0, []byte(strings.TrimSpace(parts[1])), g, bag)
	if bag.HasErrors() {
		return PatternMap{}, fmt.Errorf("rules: failed to parse rule %q: %v", rule, bag.Items())
	}
	return PatternMap{From: from, To: to}, nil
}

// collectPatNames gathers the names of every VarPat/ConstPat/AnyPat leaf
// reachable from id.
func collectPatNames(g *ast.Graph, id ast.ExprPatID) map[string]struct{} {
	names := make(map[string]struct{})
	ast.WalkPat(g, id, func(_ ast.ExprPatID, n *ast.ExprPat) bool {
		switch n.Kind {
		case ast.PatVarPat, ast.PatConstPat, ast.PatAnyPat:
			name, _ := g.Interner.Lookup(n.Name)
			names[name] = struct{}{}
		}
		return true
	})
	return names
}

// Validate reports an error if To references a pattern leaf not bound by
// From, meaning the rule can never be fully instantiated.
func (pm PatternMap) Validate(g *ast.Graph) error {
	fromNames := collectPatNames(g, pm.From)
	toNames := collectPatNames(g, pm.To)

	var missing []string
	for name := range toNames {
		if _, ok := fromNames[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("rules: pattern map %q references unresolved pattern(s) %s",
		pm.String(g), strings.Join(missing, ", "))
}

// String renders the rule in its "from -> to" textual form, for diagnostics
// and rule-set introspection.
func (pm PatternMap) String(g *ast.Graph) string {
	return ExprPatString(g, pm.From) + " -> " + ExprPatString(g, pm.To)
}
