// Package golang - Go identifiers from native names
package golang

import (
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GriffinCanCode/nativedb/pkg/codegen"
)

var (
	titleCaser = cases.Title(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// Words kept fully upper-case when they start a later word
var acronyms = map[string]bool{
	"id": true, "url": true, "api": true, "http": true, "json": true,
	"xml": true, "sql": true, "io": true, "ip": true, "tcp": true,
	"udp": true, "hud": true, "ui": true, "gps": true,
}

// Identifiers the generated code uses for itself
var reserved = map[string]bool{
	"native": true,
	"result": true,
	"h":      true,
	"s":      true,
	"v":      true,
	"i":      true,
}

// Identifier implements codegen.Capabilities
func (g *Generator) Identifier(raw string, role codegen.Role) string {
	if role == codegen.RoleType && isEnumStyle(raw) {
		raw = raw[1:]
	}
	words := splitWords(raw)
	if len(words) == 0 {
		return "_"
	}

	var b strings.Builder
	for i, w := range words {
		switch {
		case i == 0 && role == codegen.RoleParam:
			b.WriteString(lowerCaser.String(w))
		case acronyms[strings.ToLower(w)]:
			b.WriteString(strings.ToUpper(w))
		default:
			b.WriteString(titleCaser.String(w))
		}
	}

	id := b.String()
	if r := []rune(id); !unicode.IsLetter(r[0]) && r[0] != '_' {
		id = "N" + id
	}
	if role == codegen.RoleParam && (token.IsKeyword(id) || reserved[id]) {
		id += "_"
	}
	return id
}

// splitWords breaks SCREAMING_SNAKE and camelCase names into words
func splitWords(raw string) []string {
	var words []string
	for _, part := range strings.Split(raw, "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		start := 0
		for i := 1; i < len(runes); i++ {
			if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}
	return words
}

func isEnumStyle(name string) bool {
	r := []rune(name)
	return len(r) >= 2 && r[0] == 'e' && unicode.IsUpper(r[1])
}
