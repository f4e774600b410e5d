// Package frontend - Lexer for bracketed markers found in documentation prose
// Design: markers never span lines; anything that does not lex cleanly is not a marker
package frontend

import "strings"

type MarkTokenType int

const (
	MarkEOF MarkTokenType = iota
	MarkLBracket
	MarkRBracket
	MarkBang
	MarkColon
	MarkPipe
	MarkWord
)

type MarkToken struct {
	Type   MarkTokenType
	Lexeme string
	Line   int
	Col    int
	End    int // byte offset just past the token in the lexed text
}

// LexMarker lexes text starting at a '[' up to and including the first ']'.
// A newline or the end of text terminates the token list with MarkEOF.
func LexMarker(text string, line, col int) []MarkToken {
	var tokens []MarkToken
	pos := 0
	emit := func(typ MarkTokenType, lexeme string, start, end int) {
		tokens = append(tokens, MarkToken{Type: typ, Lexeme: lexeme, Line: line, Col: col + start, End: end})
	}

	for pos < len(text) {
		c := text[pos]
		switch c {
		case '\n', '\r':
			emit(MarkEOF, "", pos, pos)
			return tokens
		case ' ', '\t':
			pos++
		case '[':
			emit(MarkLBracket, "[", pos, pos+1)
			pos++
		case ']':
			emit(MarkRBracket, "]", pos, pos+1)
			pos++
			emit(MarkEOF, "", pos, pos)
			return tokens
		case '!':
			emit(MarkBang, "!", pos, pos+1)
			pos++
		case ':':
			emit(MarkColon, ":", pos, pos+1)
			pos++
		case '|':
			emit(MarkPipe, "|", pos, pos+1)
			pos++
		default:
			start := pos
			for pos < len(text) && !strings.ContainsRune("[]!:|\n\r", rune(text[pos])) {
				pos++
			}
			emit(MarkWord, strings.TrimSpace(text[start:pos]), start, pos)
		}
	}
	emit(MarkEOF, "", pos, pos)
	return tokens
}

// Marker is a parsed [kind: arg | arg] reference or [!KIND] callout
type Marker struct {
	Callout bool
	Kind    string
	Args    []string
	Line    int
	Col     int
	End     int // byte offset just past the closing ']'
}

// ParseMarker parses the marker starting at text[0] == '['
func ParseMarker(text string, line, col int) (Marker, bool) {
	toks := LexMarker(text, line, col)
	i := 0
	next := func() MarkToken {
		tok := toks[i]
		if i < len(toks)-1 {
			i++
		}
		return tok
	}

	if next().Type != MarkLBracket {
		return Marker{}, false
	}
	m := Marker{Line: line, Col: col}

	if toks[i].Type == MarkBang {
		next()
		kind := next()
		if kind.Type != MarkWord || kind.Lexeme == "" {
			return Marker{}, false
		}
		closing := next()
		if closing.Type != MarkRBracket {
			return Marker{}, false
		}
		m.Callout = true
		m.Kind = kind.Lexeme
		m.End = closing.End
		return m, true
	}

	kind := next()
	if kind.Type != MarkWord || kind.Lexeme == "" || strings.ContainsAny(kind.Lexeme, " \t") {
		return Marker{}, false
	}
	if next().Type != MarkColon {
		return Marker{}, false
	}
	m.Kind = kind.Lexeme
	for {
		arg := next()
		if arg.Type != MarkWord {
			return Marker{}, false
		}
		m.Args = append(m.Args, arg.Lexeme)
		sep := next()
		switch sep.Type {
		case MarkPipe:
			continue
		case MarkRBracket:
			m.End = sep.End
			return m, true
		default:
			return Marker{}, false
		}
	}
}
