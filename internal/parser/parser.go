// Package parser implements slide's Pratt-style recursive descent parser,
// producing either an Expr or an ExprPat tree plus a bag of diagnostics. The
// parser never aborts: on any unexpected shape it reports a diagnostic,
// synthesizes a best-effort node, and keeps going so a single malformed
// statement never hides diagnostics in the rest of the program.
package parser

import (
	"math/big"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/fix"
	"slide/internal/lexer"
	"slide/internal/source"
	"slide/internal/token"
)

// Parser holds the state for one parse of one source buffer.
type Parser struct {
	lx   *lexer.Lexer
	g    *ast.Graph
	file source.FileID
	bag  *diag.Bag
	cur  token.Token
}

// New creates a Parser over src, sharing g (and therefore its hash-consing
// tables) with every other parse that uses the same Graph.
func New(file source.FileID, src []byte, g *ast.Graph, bag *diag.Bag) *Parser {
	p := &Parser{lx: lexer.New(file, src, bag), g: g, file: file, bag: bag}
	p.cur = p.lx.Next()
	return p
}

func (p *Parser) advance() token.Token {
	prev := p.cur
	p.cur = p.lx.Next()
	return prev
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur.Kind == k
}

func (p *Parser) report(d *diag.Diagnostic) {
	if p.bag != nil {
		p.bag.Add(d)
	}
}

func (p *Parser) intern(s string) source.StringID {
	return p.g.Interner.Intern(s)
}

// ParseExpr parses a single expression and returns the root node. The
// caller decides whether trailing tokens are acceptable.
func ParseExpr(file source.FileID, src []byte, g *ast.Graph, bag *diag.Bag) ast.ExprID {
	p := New(file, src, g, bag)
	return p.parseExpr(precLowest)
}

// ParseExprPat parses a single expression pattern and returns the root node.
func ParseExprPat(file source.FileID, src []byte, g *ast.Graph, bag *diag.Bag) ast.ExprPatID {
	p := New(file, src, g, bag)
	return p.parsePat(precLowest)
}

func (p *Parser) parseExpr(minPrec int) ast.ExprID {
	left := p.parseUnary()
	for {
		op, prec, rightAssoc, ok := binaryInfo(p.cur.Kind)
		if !ok || prec < minPrec {
			return left
		}
		p.advance()
		nextMin := prec + 1
		if rightAssoc {
			nextMin = prec
		}
		right := p.parseExpr(nextMin)
		span := p.g.Expr(left).Span.Cover(p.g.Expr(right).Span)
		left = p.g.NewBinary(op, left, right, span)
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	switch p.cur.Kind {
	case token.Plus, token.Minus:
		opTok := p.advance()
		op := ast.OpPos
		if opTok.Kind == token.Minus {
			op = ast.OpNeg
		}
		operand := p.parseExpr(precUnary)
		span := opTok.Span.Cover(p.g.Expr(operand).Span)
		return p.g.NewUnary(op, operand, span)
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.ExprID {
	switch p.cur.Kind {
	case token.Number:
		tok := p.advance()
		r := new(big.Rat)
		if _, ok := r.SetString(tok.Text); !ok {
			r.SetInt64(0)
		}
		return p.g.NewConst(r, tok.Span)

	case token.Ident:
		tok := p.advance()
		return p.g.NewVar(p.intern(tok.Text), tok.Span)

	case token.VarPat, token.ConstPat, token.AnyPat:
		tok := p.advance()
		bare := tok.Text[1:]
		d := diag.New(diag.SevError, diag.CodeIllegalPattern, "pattern sigil used in an expression", tok.Span).
			WithMessage("replace " + tok.Text + " with " + bare)
		d = d.WithFix(fix.ReplaceSpan("remove pattern sigil", tok.Span, bare, tok.Text))
		p.report(d)
		return p.g.NewVar(p.intern(bare), tok.Span)

	case token.LParen:
		open := p.advance()
		inner := p.parseExpr(precLowest)
		closeSpan := p.expectClose(token.RParen, open)
		span := open.Span.Cover(closeSpan)
		return p.g.NewParend(inner, span)

	case token.LBracket:
		open := p.advance()
		inner := p.parseExpr(precLowest)
		closeSpan := p.expectClose(token.RBracket, open)
		span := open.Span.Cover(closeSpan)
		return p.g.NewBracketed(inner, span)

	case token.RParen, token.RBracket:
		tok := p.advance()
		d := diag.New(diag.SevError, diag.CodeUnmatchedClosingDelimiter, "unmatched closing delimiter", tok.Span)
		d = d.WithFix(fix.DeleteSpan("remove unmatched delimiter", tok.Span, tok.Text))
		p.report(d)
		return p.parsePrimary()

	default:
		tok := p.cur
		d := diag.New(diag.SevError, diag.CodeExpectedExpr, "expected an expression", tok.Span)
		p.report(d)
		if tok.Kind != token.EOF {
			p.advance()
		}
		return p.g.NewConst(big.NewRat(0, 1), tok.Span)
	}
}

// expectClose consumes the expected closing delimiter for a group opened by
// openTok, reporting and recovering from mismatches. Returns the span of
// whatever closed the group (the actual closer, or a zero-length span at
// the end of openTok if none was found at all).
func (p *Parser) expectClose(want token.Kind, openTok token.Token) source.Span {
	if p.at(want) {
		return p.advance().Span
	}
	if token.IsClosingDelimiter(p.cur.Kind) {
		got := p.advance()
		d := diag.New(diag.SevError, diag.CodeMismatchedClosingDelimiter, "mismatched closing delimiter", got.Span).
			WithNote(openTok.Span, "opened here")
		d = d.WithFix(fix.ReplaceSpan("use expected closing delimiter", got.Span, want.String(), got.Text))
		p.report(d)
		return got.Span
	}
	d := diag.New(diag.SevError, diag.CodeMismatchedClosingDelimiter, "missing closing delimiter", openTok.Span).
		WithMessage("expected " + want.String())
	p.report(d)
	return openTok.Span.ZeroideToEnd()
}
