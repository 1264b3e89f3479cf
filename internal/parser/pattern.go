package parser

import (
	"math/big"

	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/fix"
	"slide/internal/source"
	"slide/internal/token"
)

func (p *Parser) parsePat(minPrec int) ast.ExprPatID {
	left := p.parseUnaryPat()
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
		right := p.parsePat(nextMin)
		span := p.g.Pat(left).Span.Cover(p.g.Pat(right).Span)
		left = p.g.NewPatBinary(op, left, right, span)
	}
}

func (p *Parser) parseUnaryPat() ast.ExprPatID {
	switch p.cur.Kind {
	case token.Plus, token.Minus:
		opTok := p.advance()
		op := ast.OpPos
		if opTok.Kind == token.Minus {
			op = ast.OpNeg
		}
		operand := p.parsePat(precUnary)
		span := opTok.Span.Cover(p.g.Pat(operand).Span)
		return p.g.NewPatUnary(op, operand, span)
	default:
		return p.parsePrimaryPat()
	}
}

func (p *Parser) parsePrimaryPat() ast.ExprPatID {
	switch p.cur.Kind {
	case token.Number:
		tok := p.advance()
		r := new(big.Rat)
		if _, ok := r.SetString(tok.Text); !ok {
			r.SetInt64(0)
		}
		return p.g.NewPatConst(r, tok.Span)

	case token.VarPat:
		tok := p.advance()
		return p.g.NewVarPat(p.intern(tok.Text[1:]), tok.Span)

	case token.ConstPat:
		tok := p.advance()
		return p.g.NewConstPat(p.intern(tok.Text[1:]), tok.Span)

	case token.AnyPat:
		tok := p.advance()
		return p.g.NewAnyPat(p.intern(tok.Text[1:]), tok.Span)

	case token.Ident:
		tok := p.advance()
		d := diag.New(diag.SevError, diag.CodeIllegalVariable, "bare variable used in a pattern", tok.Span).
			WithMessage("prefix with $ to bind a variable pattern")
		d = d.WithFix(fix.InsertText("insert $ sigil", tok.Span.ZeroideToStart(), "$", ""))
		p.report(d)
		return p.g.NewVarPat(p.intern(tok.Text), tok.Span)

	case token.LParen:
		open := p.advance()
		inner := p.parsePat(precLowest)
		closeSpan := p.expectClosePat(token.RParen, open)
		span := open.Span.Cover(closeSpan)
		return p.g.NewPatParend(inner, span)

	case token.LBracket:
		open := p.advance()
		inner := p.parsePat(precLowest)
		closeSpan := p.expectClosePat(token.RBracket, open)
		span := open.Span.Cover(closeSpan)
		return p.g.NewPatBracketed(inner, span)

	case token.RParen, token.RBracket:
		tok := p.advance()
		d := diag.New(diag.SevError, diag.CodeUnmatchedClosingDelimiter, "unmatched closing delimiter", tok.Span)
		d = d.WithFix(fix.DeleteSpan("remove unmatched delimiter", tok.Span, tok.Text))
		p.report(d)
		return p.parsePrimaryPat()

	default:
		tok := p.cur
		d := diag.New(diag.SevError, diag.CodeExpectedExpr, "expected a pattern", tok.Span)
		p.report(d)
		if tok.Kind != token.EOF {
			p.advance()
		}
		return p.g.NewPatConst(big.NewRat(0, 1), tok.Span)
	}
}

func (p *Parser) expectClosePat(want token.Kind, openTok token.Token) source.Span {
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
