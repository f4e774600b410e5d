// Package frontend - Token stream shared by the grammar parsers
package frontend

import (
	"errors"

	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/logger"
)

// TokenStream is a cursor over a lexed token list
type TokenStream struct {
	file   string
	source []rune
	tokens []Token
	pos    int
}

// bailout carries a grammar violation up to the parse entry point
type bailout struct {
	d diag.Diagnostic
}

func NewTokenStream(file, source string, tokens []Token) *TokenStream {
	return &TokenStream{file: file, source: []rune(source), tokens: tokens}
}

// Peek returns the current token without advancing
func (ts *TokenStream) Peek() Token {
	return ts.PeekN(0)
}

// PeekN looks n tokens ahead; past the end it returns EOF
func (ts *TokenStream) PeekN(n int) Token {
	if ts.pos+n >= len(ts.tokens) {
		return ts.tokens[len(ts.tokens)-1]
	}
	return ts.tokens[ts.pos+n]
}

// Next consumes and returns the current token
func (ts *TokenStream) Next() Token {
	tok := ts.Peek()
	if ts.pos < len(ts.tokens)-1 {
		ts.pos++
	}
	return tok
}

// Check reports whether the current token has the given type
func (ts *TokenStream) Check(typ TokenType) bool {
	return ts.Peek().Type == typ
}

// Accept consumes the current token if it has the given type
func (ts *TokenStream) Accept(typ TokenType) bool {
	if ts.Check(typ) {
		ts.Next()
		return true
	}
	return false
}

// Expect consumes a token of the given type or fails with a positioned diagnostic
func (ts *TokenStream) Expect(typ TokenType, context string) Token {
	if ts.Check(typ) {
		return ts.Next()
	}
	tok := ts.Peek()
	if context != "" {
		ts.Failf(tok, "expected %s %s, got %s", typ, context, tok.Describe())
	}
	ts.Failf(tok, "expected %s, got %s", typ, tok.Describe())
	return Token{}
}

// Failf aborts the current parse with an error at tok
func (ts *TokenStream) Failf(tok Token, format string, args ...any) {
	panic(bailout{d: ts.At(tok, format, args...)})
}

// At builds a diagnostic positioned at tok without aborting
func (ts *TokenStream) At(tok Token, format string, args ...any) diag.Diagnostic {
	return diag.At(ts.file, tok.Line, tok.Col, format, args...)
}

// Text returns the source text spanning tokens from..to inclusive
func (ts *TokenStream) Text(from, to Token) string {
	if from.Offset > to.End || to.End > len(ts.source) {
		return from.Lexeme
	}
	return string(ts.source[from.Offset:to.End])
}

// parseSource lexes src and runs fn over the stream, converting a bailout into a diagnostic
func parseSource(file, src string, fn func(ts *TokenStream) []diag.Diagnostic) (diags []diag.Diagnostic) {
	tokens, err := Tokenize(src)
	if err != nil {
		var d diag.Diagnostic
		if !errors.As(err, &d) {
			d = diag.Diagnostic{Message: err.Error()}
		}
		d.File = file
		return []diag.Diagnostic{d}
	}
	logger.LogLexing(file, len(tokens))

	ts := NewTokenStream(file, src, tokens)
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			diags = append(diags, b.d)
		}
	}()
	return fn(ts)
}
