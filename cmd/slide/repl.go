package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/diagfmt"
	"slide/internal/emit"
	"slide/internal/program"
	"slide/internal/rules"
	"slide/internal/source"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive slide session",
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().StringP("output-form", "o", "pretty", "emit format (pretty|s-expression|latex|debug)")
	replCmd.Flags().StringArray("emit-config", nil, "emit option, repeatable (e.g. frac)")
}

// runRepl is a one-statement-per-line read-eval-print loop, grounded on
// duhaifeng-light-lang's cmd/light/repl.go: readline for history/editing,
// every program sharing one ast.Graph so repeated subexpressions across
// lines dedup exactly like a multi-statement document would.
func runRepl(cmd *cobra.Command, _ []string) error {
	outputForm, _ := cmd.Flags().GetString("output-form")
	emitOpts, _ := cmd.Flags().GetStringArray("emit-config")

	form, ok := emit.ParseFormat(outputForm)
	if !ok {
		return fmt.Errorf("unrecognized --output-form %q", outputForm)
	}
	var cfg emit.Config
	for _, opt := range emitOpts {
		cfg = emit.ParseConfigOpt(cfg, opt)
	}

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".slide_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "slide> ",
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "slide REPL (type 'exit' or Ctrl+D to quit)")

	fs := source.NewFileSet()
	g := ast.NewGraph(source.NewInterner())
	builtRules, err := rules.NewRuleSet(g).Build()
	if err != nil {
		return fmt.Errorf("building rule set: %w", err)
	}
	ctx := program.DefaultContext()

	lineNo := 0
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if strings.TrimSpace(line) == "exit" {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		lineNo++
		file := fs.AddVirtual(fmt.Sprintf("<repl:%d>", lineNo), []byte(line))
		p := program.New(file, []byte(line), g, builtRules, ctx)
		result := p.Analyze()

		if len(result.Diagnostics) > 0 {
			bag := diag.NewBag(len(result.Diagnostics))
			for _, d := range result.Diagnostics {
				bag.Add(d)
			}
			bag.Sort()
			diagfmt.Pretty(rl.Stderr(), bag, fs, diagfmt.PrettyOpts{Color: true, Context: 0, ShowNotes: true})
			if bag.HasErrors() {
				continue
			}
		}

		for _, id := range result.Simplified {
			fmt.Fprintln(rl.Stdout(), emit.Expr(g, id, form, cfg))
		}
	}
	return nil
}
