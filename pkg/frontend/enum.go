// Package frontend - Enum parser: enum NAME [: Base] { member [= value], ... };
package frontend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// ParseEnums parses every enum declaration in src
func ParseEnums(file, src string) ([]*model.EnumDefinition, []diag.Diagnostic) {
	var enums []*model.EnumDefinition
	diags := parseSource(file, src, func(ts *TokenStream) []diag.Diagnostic {
		for {
			skipDocComments(ts)
			if ts.Check(EOF) {
				return nil
			}
			enums = append(enums, parseEnum(ts, file))
		}
	})
	if len(diags) > 0 {
		return nil, diags
	}
	return enums, nil
}

func parseEnum(ts *TokenStream, file string) *model.EnumDefinition {
	ts.Expect(ENUM, "to start an enum declaration")
	name := ts.Expect(IDENT, "as enum name")
	def := &model.EnumDefinition{Name: name.Lexeme, SourceFile: file}

	if ts.Accept(COLON) {
		def.BaseType = ts.Expect(IDENT, "as enum base type").Lexeme
	}

	ts.Expect(LBRACE, "to open the enum body")
	seen := make(map[string]bool)
	for {
		comment := collectDocComments(ts)
		if ts.Check(RBRACE) {
			break
		}
		memberTok := ts.Expect(IDENT, "as enum member name")
		if seen[memberTok.Lexeme] {
			ts.Failf(memberTok, "duplicate enum member %s in %s", memberTok.Lexeme, def.Name)
		}
		seen[memberTok.Lexeme] = true

		member := model.EnumMember{Name: memberTok.Lexeme, Comment: comment}
		if ts.Accept(ASSIGN) {
			member.Value = parseEnumValue(ts, memberTok.Lexeme)
			member.Explicit = true
		}
		def.Members = append(def.Members, member)

		if !ts.Accept(COMMA) {
			collectDocComments(ts)
			break
		}
	}
	ts.Expect(RBRACE, "to close the enum body")
	ts.Expect(SEMICOLON, "after the enum body")

	FillEnumValues(def.Members)
	return def
}

// parseEnumValue captures the raw expression text up to the next ',' or '}' at depth 0
func parseEnumValue(ts *TokenStream, member string) string {
	first := ts.Peek()
	last := first
	depth := 0
	for {
		tok := ts.Peek()
		switch tok.Type {
		case EOF:
			ts.Failf(tok, "unterminated value for enum member %s", member)
		case LPAREN:
			depth++
		case RPAREN:
			depth--
			if depth < 0 {
				ts.Failf(tok, "unbalanced ')' in value of enum member %s", member)
			}
		case COMMA, RBRACE:
			if depth == 0 {
				if tok == first {
					ts.Failf(tok, "expected value for enum member %s, got %s", member, tok.Describe())
				}
				return ts.Text(first, last)
			}
		case SEMICOLON, LBRACE:
			ts.Failf(tok, "unexpected %s in value of enum member %s", tok.Type, member)
		}
		last = ts.Next()
	}
}

// FillEnumValues resolves every member's value. Explicit parsable values anchor the
// counter, implicit members take counter+1, and an unparsable explicit expression makes
// the counter unknown until the next parsable explicit value.
func FillEnumValues(members []model.EnumMember) {
	counter := int64(-1)
	known := true
	anchor := ""
	offset := 0

	for i := range members {
		m := &members[i]
		if m.Explicit {
			if v, ok := parseIntLiteral(m.Value); ok {
				counter = v
				known = true
			} else {
				known = false
				anchor = m.Value
				offset = 0
			}
			continue
		}
		if known {
			counter++
			m.Value = strconv.FormatInt(counter, 10)
		} else {
			offset++
			m.Value = fmt.Sprintf("(%s) + %d", anchor, offset)
		}
	}
}

// parseIntLiteral accepts decimal and 0x-prefixed hex, with an optional leading '-'
// parseIntLiteral accepts decimal and 0x hex with an optional leading '-'. Leading
// zeros are decimal.
func parseIntLiteral(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits, base = digits[2:], 16
	}
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, false
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u), true
	}
	// Full-width unsigned hex such as 0xFFFFFFFFFFFFFFFF keeps its bit pattern
	if base == 10 && u > 1<<63-1 {
		return 0, false
	}
	return int64(u), true
}

func collectDocComments(ts *TokenStream) string {
	var lines []string
	for ts.Check(DOCCOMMENT) {
		lines = append(lines, ts.Next().Lexeme)
	}
	return strings.Join(lines, "\n")
}

func skipDocComments(ts *TokenStream) {
	for ts.Accept(DOCCOMMENT) {
	}
}
