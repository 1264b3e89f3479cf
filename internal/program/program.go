// Package program owns the analysis pipeline for a single slide program: it
// scans, parses, lints, partially evaluates, and validates one source
// buffer, caching the result behind a lazy cell so repeated queries (hover,
// goto-definition, diagnostics) never redo the work. Grounded on
// original_source/editor/language_server/src/program.rs's `Program`/
// `Analysis` split, and on teacher vovakirdan-surge's write-once-after-
// population idiom for compiled artifacts.
package program

import (
	"sync"

	"fmt"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/eval"
	"slide/internal/evaltrace"
	"slide/internal/lint"
	"slide/internal/parser"
	"slide/internal/rules"
	"slide/internal/source"
)

// DefaultPrecision mirrors original_source/libslide/src/common.rs's
// DUMMY_PREC: the bit precision `rug::Float` used for irrational constants
// there. This port represents every constant as an exact math/big.Rat, so
// Precision does not affect analysis results; its only use is as part of
// the disk-cache key (KeyFor).
const DefaultPrecision uint32 = 200

// ProgramContext mirrors original_source's ProgramContext, extended with
// LintEnabled (original_source's equivalent lives on a separate `lint` CLI
// flag threaded through validate calls, not on ProgramContext itself; this
// port folds it in since every analysis call site needs both together).
type ProgramContext struct {
	Precision   uint32
	LintEnabled bool
	// Tracer instruments eval's rewrite loop for this program's analysis
	// (CLI `--trace-level`). Nil is equivalent to evaltrace.Nop.
	Tracer evaltrace.Tracer
}

// DefaultContext returns the context CLI and LSP entry points use absent
// explicit overrides.
func DefaultContext() ProgramContext {
	return ProgramContext{Precision: DefaultPrecision, LintEnabled: true, Tracer: evaltrace.Nop}
}

// Result is the complete, immutable outcome of analyzing one program.
type Result struct {
	// Original is the statement list exactly as parsed.
	Original ast.StmtList
	// Simplified holds one fully-evaluated expression per statement in
	// Original, parallel by index.
	Simplified []ast.ExprID
	// Diagnostics is sorted and deduplicated, aggregating every stage:
	// scan, parse, lint, and post-evaluation validation.
	Diagnostics []*diag.Diagnostic
}

// Program is a single source buffer plus the rule set and context used to
// analyze it. Analysis runs at most once, on first query, and is cached for
// the Program's lifetime.
type Program struct {
	file source.FileID
	src  []byte
	g    *ast.Graph
	rs   []rules.Rule
	ctx  ProgramContext

	once   sync.Once
	mu     sync.RWMutex
	result *Result
}

// New creates a Program over src. g and rs are shared with the caller (a
// document registry typically shares one Graph across every program it
// holds, so common subexpressions are deduplicated across the whole
// workspace, not just within one file).
func New(file source.FileID, src []byte, g *ast.Graph, rs []rules.Rule, ctx ProgramContext) *Program {
	return &Program{file: file, src: src, g: g, rs: rs, ctx: ctx}
}

// Graph returns the expression graph this program's results reference.
func (p *Program) Graph() *ast.Graph { return p.g }

// File returns the source file this program was parsed from.
func (p *Program) File() source.FileID { return p.file }

// Rules returns the rule set this program evaluates against, used by
// language services (e.g. code lens) that need to simplify an arbitrary
// subexpression rather than just a statement's top-level RHS.
func (p *Program) Rules() []rules.Rule { return p.rs }

// Analyze runs (or returns the cached result of) the full pipeline:
//  1. scan + parse (diagnostics land directly in the returned bag via the
//     parser's internal lexer)
//  2. lint the parsed statements (only when ctx.LintEnabled)
//  3. partially evaluate each statement's right-hand side
//  4. validate same-variable definitions for compatibility
//  5. sort and deduplicate the aggregated diagnostics
func (p *Program) Analyze() *Result {
	p.once.Do(p.analyze)
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result
}

func (p *Program) analyze() {
	bag := diag.NewBag(1024)

	stmts := parser.ParseProgram(p.file, p.src, p.g, bag)
	if p.ctx.LintEnabled {
		lint.Lint(p.g, stmts, bag)
	}

	tr := p.ctx.Tracer
	if tr == nil {
		tr = evaltrace.Nop
	}
	simplified := make([]ast.ExprID, len(stmts.Stmts))
	for i, s := range stmts.Stmts {
		span := evaltrace.Begin(tr, evaltrace.ScopeStatement, fmt.Sprintf("stmt:%d", i), 0)
		simplified[i] = eval.EvaluateTraced(p.g, s.RHS, p.rs, tr, span.ID())
		span.End("")
	}

	eval.ValidateDefinitions(p.g, stmts, p.rs, p.ctx.LintEnabled, bag)

	bag.Sort()
	bag.Dedup()

	p.mu.Lock()
	p.result = &Result{Original: stmts, Simplified: simplified, Diagnostics: bag.Items()}
	p.mu.Unlock()
}
