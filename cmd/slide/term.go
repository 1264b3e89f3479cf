package main

import (
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether f is attached to an interactive terminal,
// ported from teacher vovakirdan-surge's cmd/surge/main.go.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
