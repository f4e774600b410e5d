// Package frontend implements the lexers and grammar parsers for native declarations.
//
// Design: hand-written scanners feeding small predictive recursive-descent parsers.
// One grammar violation ends the parse of that input; the caller gets a positioned
// diagnostic instead of a panic.
package frontend

import "fmt"

type TokenType int

const (
	EOF TokenType = iota

	// Literals
	IDENT
	NUMBER
	ATTRIBUTE  // @name, lexeme holds the name
	DOCCOMMENT // ///text, lexeme holds the text

	// Keywords
	ENUM
	STRUCT
	CONST

	// Operators
	STAR
	PLUS
	MINUS
	SLASH
	ASSIGN
	ELLIPSIS
	SHL // <<
	SHR // >>
	PIPE
	AMP
	TILDE

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMICOLON
	COLON
)

var tokenNames = map[TokenType]string{
	EOF:        "end of input",
	IDENT:      "identifier",
	NUMBER:     "number",
	ATTRIBUTE:  "attribute",
	DOCCOMMENT: "doc comment",
	ENUM:       "'enum'",
	STRUCT:     "'struct'",
	CONST:      "'const'",
	STAR:       "'*'",
	PLUS:       "'+'",
	MINUS:      "'-'",
	SLASH:      "'/'",
	ASSIGN:     "'='",
	ELLIPSIS:   "'...'",
	SHL:        "'<<'",
	SHR:        "'>>'",
	PIPE:       "'|'",
	AMP:        "'&'",
	TILDE:      "'~'",
	LPAREN:     "'('",
	RPAREN:     "')'",
	LBRACE:     "'{'",
	RBRACE:     "'}'",
	LBRACKET:   "'['",
	RBRACKET:   "']'",
	COMMA:      "','",
	SEMICOLON:  "';'",
	COLON:      "':'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
	Offset int // rune offset of the first character
	End    int // rune offset just past the last character
}

// Describe renders a token for error messages
func (t Token) Describe() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER:
		return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
	case ATTRIBUTE:
		return fmt.Sprintf("attribute @%s", t.Lexeme)
	}
	return t.Type.String()
}
