package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slide/internal/ast"
	"slide/internal/config"
	"slide/internal/lspserver"
	"slide/internal/program"
	"slide/internal/registry"
	"slide/internal/rules"
	"slide/internal/source"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the slide language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

// runLSP starts internal/lspserver.Server over stdio, grounded on teacher
// vovakirdan-surge's cmd/surge/lsp.go (same ErrExit/ErrExitWithoutShutdown
// handling, same NewServer-then-Run shape).
func runLSP(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, err := config.LoadFromDir(cwd)
	if err != nil {
		return fmt.Errorf("loading %s: %w", config.FileName, err)
	}

	ctx := program.DefaultContext()
	ctx.LintEnabled = manifest.LintEnabled

	g := ast.NewGraph(source.NewInterner())
	builtRules, err := rules.NewRuleSet(g).Build()
	if err != nil {
		return fmt.Errorf("building rule set: %w", err)
	}

	reg := registry.New(g, builtRules, ctx)
	if len(manifest.DocumentParsers) > 0 {
		reg.SetDocumentParsers(manifest.DocumentParsers)
	}

	server := lspserver.NewServer(os.Stdin, os.Stdout, reg, manifest.Emit)
	if err := server.Run(); err != nil {
		if errors.Is(err, lspserver.ErrExit) {
			return nil
		}
		if errors.Is(err, lspserver.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
