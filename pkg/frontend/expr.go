// Package frontend - Constant integer expressions for struct array sizes
// Grammar: expr := term (('+'|'-') term)*, term := factor (('*'|'/') factor)*,
// factor := NUMBER | '(' expr ')' | '-' factor
package frontend

func parseConstExpr(ts *TokenStream) int64 {
	v := parseConstTerm(ts)
	for ts.Check(PLUS) || ts.Check(MINUS) {
		op := ts.Next()
		rhs := parseConstTerm(ts)
		if op.Type == PLUS {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v
}

func parseConstTerm(ts *TokenStream) int64 {
	v := parseConstFactor(ts)
	for ts.Check(STAR) || ts.Check(SLASH) {
		op := ts.Next()
		rhs := parseConstFactor(ts)
		if op.Type == STAR {
			v *= rhs
			continue
		}
		if rhs == 0 {
			ts.Failf(op, "division by zero in constant expression")
		}
		v /= rhs
	}
	return v
}

func parseConstFactor(ts *TokenStream) int64 {
	tok := ts.Peek()
	switch tok.Type {
	case NUMBER:
		ts.Next()
		v, ok := parseIntLiteral(tok.Lexeme)
		if !ok {
			ts.Failf(tok, "expected integer in constant expression, got %s", tok.Lexeme)
		}
		return v
	case LPAREN:
		ts.Next()
		v := parseConstExpr(ts)
		ts.Expect(RPAREN, "to close the parenthesized expression")
		return v
	case MINUS:
		ts.Next()
		return -parseConstFactor(ts)
	}
	ts.Failf(tok, "expected number or '(' in constant expression, got %s", tok.Describe())
	return 0
}
