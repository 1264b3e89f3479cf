package lexer

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// scanNumberText consumes an integer or decimal literal (digits, optionally
// followed by '.' and more digits) and returns its text. The caller's
// cursor must already be positioned on a digit.
func scanNumberText(c *cursor) string {
	start := c.pos
	for isDigit(c.peekByte()) {
		c.advanceByte()
	}
	if c.peekByte() == '.' && isDigit(c.peekByteAt(1)) {
		c.advanceByte()
		for isDigit(c.peekByte()) {
			c.advanceByte()
		}
	}
	return string(c.src[start:c.pos])
}
