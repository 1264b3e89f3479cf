// Package main is the slide command-line entry point, grounded on teacher
// vovakirdan-surge's cmd/surge/main.go: a cobra root command carrying the
// evaluate-a-program behavior, plus lsp and repl subcommands.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/diagfmt"
	"slide/internal/emit"
	"slide/internal/evaltrace"
	"slide/internal/lint"
	"slide/internal/parser"
	"slide/internal/program"
	"slide/internal/rules"
	"slide/internal/source"
	"slide/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "slide [program text]",
	Short: "A symbolic math expression evaluator",
	Long:  `slide parses, simplifies, and re-renders small arithmetic/algebraic programs.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluate,
}

func init() {
	rootCmd.Flags().StringP("output-form", "o", "pretty", "emit format (pretty|s-expression|latex|debug)")
	rootCmd.Flags().StringArray("emit-config", nil, "emit option, repeatable (e.g. frac)")
	rootCmd.Flags().Bool("parse-only", false, "stop after parsing; print the AST in the chosen emit format")
	rootCmd.Flags().Bool("expr-pat", false, "parse the input as an expression pattern (implies --parse-only)")
	rootCmd.Flags().String("cache-dir", "", "enable the on-disk analysis cache under this directory")
	rootCmd.Flags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.Flags().Bool("no-lint", false, "disable the linter and the maybe-incompatible-definitions (V0002) check")
	rootCmd.Flags().String("trace-level", "off", "evaluator tracing depth (off|statement|rewrite)")
	rootCmd.Flags().String("trace-format", "text", "trace event format (text|ndjson)")
	rootCmd.Flags().String("trace-dump", "-", "trace output path, or - for stderr")
}

// main wires the root command's version string, registers the lsp and repl
// subcommands, and executes. Internal errors surface as panics (grounded on
// teacher's dumpTraceOnPanic defer-at-entry idiom); main recovers exactly
// once to translate that into exit code 2 per spec's error-handling design.
func main() {
	rootCmd.Version = version.VersionString()
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(replCmd)

	os.Exit(run())
}

func run() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "slide: internal error: %v\n", r)
			exitCode = 2
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(exitCodeError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "slide: %v\n", err)
		return 2
	}
	return 0
}

// exitCodeError lets runEvaluate request exit code 1 (diagnostics present)
// without cobra printing its usual "Error: ..." banner for what is a normal,
// successful run that merely found problems in the input.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return "" }

func runEvaluate(cmd *cobra.Command, args []string) error {
	outputForm, _ := cmd.Flags().GetString("output-form")
	emitOpts, _ := cmd.Flags().GetStringArray("emit-config")
	parseOnly, _ := cmd.Flags().GetBool("parse-only")
	exprPat, _ := cmd.Flags().GetBool("expr-pat")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	colorMode, _ := cmd.Flags().GetString("color")
	noLint, _ := cmd.Flags().GetBool("no-lint")
	traceLevel, _ := cmd.Flags().GetString("trace-level")
	traceFormat, _ := cmd.Flags().GetString("trace-format")
	traceDump, _ := cmd.Flags().GetString("trace-dump")

	form, ok := emit.ParseFormat(outputForm)
	if !ok {
		return fmt.Errorf("unrecognized --output-form %q", outputForm)
	}
	var cfg emit.Config
	for _, opt := range emitOpts {
		cfg = emit.ParseConfigOpt(cfg, opt)
	}

	text := args[0]
	fs := source.NewFileSet()
	file := fs.AddVirtual("<argv>", []byte(text))
	bag := diag.NewBag(1024)
	g := ast.NewGraph(source.NewInterner())
	out := cmd.OutOrStdout()

	if exprPat {
		patID := parser.ParseExprPat(file, []byte(text), g, bag)
		lint.LintPattern(g, patID, bag)
		if bag.HasErrors() {
			return printDiagnosticsAndFail(cmd, bag, fs, colorMode)
		}
		fmt.Fprintln(out, emit.Pat(g, patID, form, cfg))
		return nil
	}

	if parseOnly {
		stmts := parser.ParseProgram(file, []byte(text), g, bag)
		if !noLint {
			lint.Lint(g, stmts, bag)
		}
		if bag.HasErrors() {
			return printDiagnosticsAndFail(cmd, bag, fs, colorMode)
		}
		fmt.Fprintln(out, emit.Program(g, stmts, form, cfg))
		return nil
	}

	ctx := program.DefaultContext()
	ctx.LintEnabled = !noLint

	level, err := evaltrace.ParseLevel(traceLevel)
	if err != nil {
		return err
	}
	if level != evaltrace.LevelOff {
		format, err := evaltrace.ParseFormat(traceFormat)
		if err != nil {
			return err
		}
		tr, err := evaltrace.New(evaltrace.Config{
			Level:      level,
			Mode:       evaltrace.ModeStream,
			Format:     format,
			OutputPath: traceDump,
		})
		if err != nil {
			return fmt.Errorf("opening trace output: %w", err)
		}
		defer tr.Close()
		ctx.Tracer = tr
	}

	builtRules, err := rules.NewRuleSet(g).Build()
	if err != nil {
		panic(err)
	}

	var cache *program.DiskCache
	if cacheDir != "" {
		cache, err = program.OpenDiskCache(cacheDir)
		if err != nil {
			return fmt.Errorf("opening cache dir: %w", err)
		}
	}

	cacheKey := program.KeyFor([]byte(text), ctx)
	if cache != nil {
		if cached, hit, err := cache.Get(cacheKey); err == nil && hit {
			return printCached(cmd, cached)
		}
	}

	p := program.New(file, []byte(text), g, builtRules, ctx)
	result := p.Analyze()

	for _, d := range result.Diagnostics {
		bag.Add(d)
	}

	if cache != nil {
		if err := cache.Put(cacheKey, program.ToCached(g, result)); err != nil {
			fmt.Fprintf(os.Stderr, "slide: cache write failed: %v\n", err)
		}
	}

	if bag.HasErrors() {
		return printDiagnosticsAndFail(cmd, bag, fs, colorMode)
	}

	for _, id := range result.Simplified {
		fmt.Fprintln(out, emit.Expr(g, id, form, cfg))
	}
	if bag.Len() > 0 {
		printDiagnostics(cmd, bag, fs, colorMode)
	}
	return nil
}

// printCached replays a cache hit. Cached diagnostics carry no source span
// (CachedDiagnostic drops Primary/Notes positions, since the *source.File
// that produced them belongs to whichever process wrote the cache entry),
// so they print as plain "SEVERITY CODE: message" lines rather than through
// diagfmt.Pretty's source-context rendering.
func printCached(cmd *cobra.Command, cached *program.CachedResult) error {
	hasErrors := false
	for _, d := range cached.Diagnostics {
		if diag.Severity(d.Severity) == diag.SevError {
			hasErrors = true
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %s\n", diag.Severity(d.Severity), d.Code, d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(cmd.ErrOrStderr(), "  note: %s\n", n.Msg)
		}
	}
	if hasErrors {
		return exitCodeError{code: 1}
	}
	out := cmd.OutOrStdout()
	for _, line := range cached.SimplifiedText {
		fmt.Fprintln(out, line)
	}
	return nil
}

func printDiagnosticsAndFail(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, colorMode string) error {
	printDiagnostics(cmd, bag, fs, colorMode)
	return exitCodeError{code: 1}
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, colorMode string) {
	bag.Sort()
	opts := diagfmt.PrettyOpts{
		Color:     resolveColor(colorMode, cmd.ErrOrStderr()),
		Context:   1,
		ShowNotes: true,
		ShowFixes: true,
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, opts)
}

func resolveColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
}
