// Package frontend - Lexer for C-like declarations (signatures, enum and struct bodies)
// Design: Hand-written scanner, one pass, tokens carry 1-based line/column
package frontend

import (
	"unicode"

	"github.com/GriffinCanCode/nativedb/pkg/diag"
)

type Lexer struct {
	source []rune
	start  int
	pos    int
	line   int
	col    int

	startLine int
	startCol  int
	last      TokenType // previous significant token, decides unary minus
}

func NewLexer(source string) *Lexer {
	return &Lexer{
		source: []rune(source),
		line:   1,
		col:    1,
		last:   EOF,
	}
}

// Tokenize lexes the whole source. The returned list always ends with EOF.
// An unrecognized character is an error carrying its position.
func Tokenize(source string) ([]Token, error) {
	l := NewLexer(source)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token, skipping whitespace and plain comments
func (l *Lexer) Next() (Token, error) {
	for {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return Token{}, err
		}

		l.start = l.pos
		l.startLine = l.line
		l.startCol = l.col

		if l.isAtEnd() {
			return l.makeToken(EOF, ""), nil
		}

		if l.peek() == '/' && l.peekNext() == '/' {
			if tok, ok := l.comment(); ok {
				return tok, nil
			}
			continue
		}

		c := l.advance()

		switch c {
		case '(':
			return l.emit(LPAREN), nil
		case ')':
			return l.emit(RPAREN), nil
		case '{':
			return l.emit(LBRACE), nil
		case '}':
			return l.emit(RBRACE), nil
		case '[':
			return l.emit(LBRACKET), nil
		case ']':
			return l.emit(RBRACKET), nil
		case ',':
			return l.emit(COMMA), nil
		case ';':
			return l.emit(SEMICOLON), nil
		case ':':
			return l.emit(COLON), nil
		case '=':
			return l.emit(ASSIGN), nil
		case '*':
			return l.emit(STAR), nil
		case '+':
			return l.emit(PLUS), nil
		case '/':
			return l.emit(SLASH), nil
		case '|':
			return l.emit(PIPE), nil
		case '&':
			return l.emit(AMP), nil
		case '~':
			return l.emit(TILDE), nil
		case '-':
			if isDigit(l.peek()) && !l.lastIsOperand() {
				return l.number(), nil
			}
			return l.emit(MINUS), nil
		case '<':
			if l.match('<') {
				return l.emit(SHL), nil
			}
		case '>':
			if l.match('>') {
				return l.emit(SHR), nil
			}
		case '.':
			if l.match('.') && l.match('.') {
				return l.emit(ELLIPSIS), nil
			}
		case '@':
			if isIdentStart(l.peek()) {
				for isIdentPart(l.peek()) {
					l.advance()
				}
				tok := l.makeToken(ATTRIBUTE, string(l.source[l.start+1:l.pos]))
				l.last = ATTRIBUTE
				return tok, nil
			}
			return Token{}, l.errorf("expected attribute name after '@'")
		}

		if isDigit(c) {
			return l.number(), nil
		}

		if isIdentStart(c) {
			return l.identifier(), nil
		}

		return Token{}, l.errorf("unexpected character %q", c)
	}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.isAtEnd() {
		c := l.peek()
		switch {
		case c == '\n':
			l.advance()
			l.line++
			l.col = 1
		case unicode.IsSpace(c):
			l.advance()
		case c == '/' && l.peekNext() == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			for !(l.peek() == '*' && l.peekNext() == '/') {
				if l.isAtEnd() {
					return diag.At("", line, col, "unterminated block comment")
				}
				if l.advance() == '\n' {
					l.line++
					l.col = 1
				}
			}
			l.advance()
			l.advance()
		default:
			return nil
		}
	}
	return nil
}

// comment consumes a // or /// comment. Only /// comments produce a token.
func (l *Lexer) comment() (Token, bool) {
	l.advance()
	l.advance()
	doc := l.peek() == '/' && l.peekNext() != '/'
	if doc {
		l.advance()
	}
	textStart := l.pos
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
	if !doc {
		return Token{}, false
	}
	text := trimSpaceRunes(l.source[textStart:l.pos])
	return l.makeToken(DOCCOMMENT, text), true
}

func (l *Lexer) number() Token {
	if l.source[l.pos-1] == '-' {
		l.advance()
	}
	if l.source[l.pos-1] == '0' && (l.peek() == 'x' || l.peek() == 'X') && isHexDigit(l.peekNext()) {
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		return l.emit(NUMBER)
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	if l.peek() == 'f' || l.peek() == 'F' {
		l.advance()
	}
	return l.emit(NUMBER)
}

func (l *Lexer) identifier() Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}

	text := string(l.source[l.start:l.pos])

	// Keywords
	switch text {
	case "enum":
		return l.emit(ENUM)
	case "struct":
		return l.emit(STRUCT)
	case "const":
		return l.emit(CONST)
	}

	return l.emit(IDENT)
}

// A minus directly after an operand is subtraction, otherwise it signs a literal
func (l *Lexer) lastIsOperand() bool {
	switch l.last {
	case NUMBER, IDENT, RPAREN, RBRACKET:
		return true
	}
	return false
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	return l.source[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return '\x00'
	}
	return l.source[l.pos+1]
}

func (l *Lexer) advance() rune {
	c := l.source[l.pos]
	l.pos++
	l.col++
	return c
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.source[l.pos] != expected {
		return false
	}
	l.pos++
	l.col++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) emit(typ TokenType) Token {
	tok := l.makeToken(typ, string(l.source[l.start:l.pos]))
	l.last = typ
	return tok
}

func (l *Lexer) makeToken(typ TokenType, lexeme string) Token {
	return Token{
		Type:   typ,
		Lexeme: lexeme,
		Line:   l.startLine,
		Col:    l.startCol,
		Offset: l.start,
		End:    l.pos,
	}
}

func (l *Lexer) errorf(format string, args ...any) error {
	return diag.At("", l.startLine, l.startCol, format, args...)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}

func trimSpaceRunes(rs []rune) string {
	start, end := 0, len(rs)
	for start < end && unicode.IsSpace(rs[start]) {
		start++
	}
	for end > start && unicode.IsSpace(rs[end-1]) {
		end--
	}
	return string(rs[start:end])
}
