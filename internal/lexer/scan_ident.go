package lexer

import (
	"unicode"

	"golang.org/x/text/width"
)

// foldedRune normalizes fullwidth/halfwidth rune variants to their
// canonical form before classifying them, so identifiers typed with an IME
// in fullwidth mode still scan the same as their ASCII equivalents.
func foldedRune(r rune) rune {
	return width.Fold.Rune(r)
}

func isIdentStart(r rune) bool {
	r = foldedRune(r)
	return unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	r = foldedRune(r)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// scanIdentText consumes an identifier starting at the cursor's current
// position (which must already satisfy isIdentStart) and returns its text.
func scanIdentText(c *cursor) string {
	start := c.pos
	c.advanceRune()
	for !c.eof() {
		r, size := c.peekRune()
		if size == 0 || !isIdentContinue(r) {
			break
		}
		c.pos += uint32(size)
	}
	return string(c.src[start:c.pos])
}

func peekIdentStart(c *cursor) bool {
	r, size := c.peekRune()
	if size == 0 {
		return false
	}
	return isIdentStart(r)
}
