package token

import "slide/internal/source"

// TriviaKind classifies a piece of leading trivia.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
)

// Trivia is a whitespace or comment run attached as leading trivia to the
// token that follows it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
}
