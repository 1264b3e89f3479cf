package parser

import (
	"slide/internal/ast"
	"slide/internal/token"
)

const (
	precLowest = 0
	precAdd    = 1 // + -
	precMul    = 2 // * / %
	precUnary  = 3 // prefix + -
	precPow    = 4 // ^ (right-assoc)
)

// binaryInfo reports the operator, precedence, and right-associativity for
// an infix operator token, or ok=false if k is not an infix operator.
func binaryInfo(k token.Kind) (op ast.BinaryOp, prec int, rightAssoc bool, ok bool) {
	switch k {
	case token.Plus:
		return ast.OpAdd, precAdd, false, true
	case token.Minus:
		return ast.OpSub, precAdd, false, true
	case token.Star:
		return ast.OpMul, precMul, false, true
	case token.Slash:
		return ast.OpDiv, precMul, false, true
	case token.Percent:
		return ast.OpMod, precMul, false, true
	case token.Caret:
		return ast.OpPow, precPow, true, true
	default:
		return 0, 0, false, false
	}
}
