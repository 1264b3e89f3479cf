// Package lexer scans slide source text into a token stream. Scanning never
// fails outright: unrecognized bytes are reported as S0001 InvalidToken
// diagnostics and skipped one byte at a time so the stream always reaches
// EOF.
package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"slide/internal/diag"
	"slide/internal/source"
	"slide/internal/token"
)

// maxTokenLength is a hard cap on a single token's byte length, guarding
// against pathological inputs (e.g. a single multi-megabyte numeric
// literal) producing an unboundedly large token.
const maxTokenLength = 1 << 16

// Lexer turns a byte buffer into a token.Token stream with one token of
// lookahead.
type Lexer struct {
	file source.FileID
	cur  *cursor
	bag  *diag.Bag

	look   *token.Token
	peeked bool
}

// New creates a Lexer over src, attributing spans to file and reporting
// scan diagnostics into bag (bag may be nil to discard them).
func New(file source.FileID, src []byte, bag *diag.Bag) *Lexer {
	return &Lexer{file: file, cur: newCursor(src), bag: bag}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if !l.peeked {
		t := l.scan()
		l.look = &t
		l.peeked = true
	}
	return *l.look
}

// Next consumes and returns the next token.
func (l *Lexer) Next() token.Token {
	if l.peeked {
		l.peeked = false
		t := *l.look
		l.look = nil
		return t
	}
	return l.scan()
}

func (l *Lexer) span(start, end uint32) source.Span {
	return source.Span{File: l.file, Start: start, End: end}
}

func (l *Lexer) scan() token.Token {
	leading := l.collectLeadingTrivia()
	start := l.cur.pos

	if l.cur.eof() {
		sp := l.span(start, start)
		full := sp
		if len(leading) > 0 {
			full = l.span(leading[0].Span.Start, start)
		}
		return token.Token{Kind: token.EOF, Span: sp, FullSpan: full, Leading: leading}
	}

	b := l.cur.peekByte()
	var kind token.Kind
	var text string

	switch {
	case isDigit(b):
		text = scanNumberText(l.cur)
		kind = token.Number
	case peekIdentStart(l.cur):
		text = scanIdentText(l.cur)
		kind = token.Ident
	case b == '$' || b == '#' || b == '_':
		kind, text = l.scanSigil(b)
	default:
		if k, width := scanOperatorOrPunct(l.cur); width > 0 {
			s := l.cur.pos
			for i := 0; i < width; i++ {
				l.cur.advanceByte()
			}
			kind = k
			text = string(l.cur.src[s:l.cur.pos])
		} else {
			// Unrecognized byte: report and skip exactly one byte, never
			// failing the overall scan.
			s := l.cur.pos
			l.cur.advanceByte()
			sp := l.span(s, l.cur.pos)
			l.report(diag.New(diag.SevError, diag.CodeInvalidToken, "unexpected character", sp))
			kind = token.Invalid
			text = string(l.cur.src[s:l.cur.pos])
		}
	}

	end := l.cur.pos
	l.enforceTokenLength(start, end)

	sp := l.span(start, end)
	full := sp
	if len(leading) > 0 {
		full = l.span(leading[0].Span.Start, end)
	}
	return token.Token{Kind: kind, Span: sp, FullSpan: full, Text: text, Leading: leading}
}

// scanSigil handles $name, #name, and _name. If the sigil is not followed
// by an identifier it degrades to a single-byte Invalid token.
func (l *Lexer) scanSigil(b byte) (token.Kind, string) {
	start := l.cur.pos
	l.cur.advanceByte()
	if !peekIdentStart(l.cur) {
		sp := l.span(start, l.cur.pos)
		l.report(diag.New(diag.SevError, diag.CodeInvalidToken, "pattern sigil must be followed by a name", sp))
		return token.Invalid, string(l.cur.src[start:l.cur.pos])
	}
	scanIdentText(l.cur)
	kind := token.Ident
	switch b {
	case '$':
		kind = token.VarPat
	case '#':
		kind = token.ConstPat
	case '_':
		kind = token.AnyPat
	}
	return kind, string(l.cur.src[start:l.cur.pos])
}

func (l *Lexer) collectLeadingTrivia() []token.Trivia {
	var trivia []token.Trivia
	for {
		b := l.cur.peekByte()
		switch {
		case b == '\n':
			start := l.cur.pos
			l.cur.advanceByte()
			trivia = append(trivia, token.Trivia{Kind: token.TriviaNewline, Span: l.span(start, l.cur.pos)})
		case b == ' ' || b == '\t' || b == '\r':
			start := l.cur.pos
			for {
				c := l.cur.peekByte()
				if c != ' ' && c != '\t' && c != '\r' {
					break
				}
				l.cur.advanceByte()
			}
			trivia = append(trivia, token.Trivia{Kind: token.TriviaSpace, Span: l.span(start, l.cur.pos)})
		case b == '/' && l.cur.peekByteAt(1) == '/':
			start := l.cur.pos
			for !l.cur.eof() && l.cur.peekByte() != '\n' {
				l.cur.advanceByte()
			}
			trivia = append(trivia, token.Trivia{Kind: token.TriviaLineComment, Span: l.span(start, l.cur.pos)})
		default:
			return trivia
		}
	}
}

func (l *Lexer) enforceTokenLength(start, end uint32) {
	length, err := safecast.Conv[uint32](end - start)
	if err != nil {
		panic(fmt.Errorf("token length overflow: %w", err))
	}
	if length <= maxTokenLength {
		return
	}
	sp := l.span(start, end)
	l.report(diag.New(diag.SevError, diag.CodeInvalidToken, "token exceeds maximum length", sp))
}

func (l *Lexer) report(d *diag.Diagnostic) {
	if l.bag != nil {
		l.bag.Add(d)
	}
}
