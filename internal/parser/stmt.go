package parser

import (
	"slide/internal/ast"
	"slide/internal/diag"
	"slide/internal/source"
	"slide/internal/token"
)

// ParseProgram parses the full buffer as a slide program: a sequence of
// statements, each either a bare expression or a `var (= | :=) expr`
// assignment, separated from the next by a newline in its leading trivia.
func ParseProgram(file source.FileID, src []byte, g *ast.Graph, bag *diag.Bag) ast.StmtList {
	p := New(file, src, g, bag)
	return p.parseProgram()
}

func (p *Parser) parseProgram() ast.StmtList {
	var list ast.StmtList
	for !p.at(token.EOF) {
		stmt := p.parseStmt()
		list.Stmts = append(list.Stmts, stmt)
		if p.at(token.EOF) {
			break
		}
		if !p.cur.HasNewlineBefore() {
			tailStart := p.cur.Span
			d := diag.New(diag.SevError, diag.CodeExtraTokens, "extra tokens after statement", tailStart).
				WithMessage("statements must be separated by a newline")
			p.report(d)
		}
	}
	return list
}

func (p *Parser) parseStmt() ast.Stmt {
	if p.at(token.Ident) {
		next := p.lx.Peek()
		if next.Kind == token.Eq || next.Kind == token.ColonEq {
			lhsTok := p.advance()
			opTok := p.advance()
			rhs := p.parseExpr(precLowest)
			op := ast.AssignEqual
			if opTok.Kind == token.ColonEq {
				op = ast.AssignDefine
			}
			lhs := p.g.NewVar(p.intern(lhsTok.Text), lhsTok.Span)
			span := lhsTok.Span.Cover(p.g.Expr(rhs).Span)
			return ast.Stmt{Span: span, Op: op, LHS: lhs, RHS: rhs}
		}
	}
	start := p.cur.Span
	rhs := p.parseExpr(precLowest)
	span := start.Cover(p.g.Expr(rhs).Span)
	return ast.Stmt{Span: span, Op: ast.AssignNone, RHS: rhs}
}
