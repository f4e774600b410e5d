// Package frontend - Struct parser: [@alignas(N)] struct NAME { field; ... };
package frontend

import (
	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// Recognized struct and field attributes
const (
	AttrAlignAs = "alignas"
	AttrInput   = "in"
	AttrOutput  = "out"
	AttrPadding = "padding"
)

// ParseStructs parses every struct declaration in src
func ParseStructs(file, src string) ([]*model.StructDefinition, []diag.Diagnostic) {
	var structs []*model.StructDefinition
	diags := parseSource(file, src, func(ts *TokenStream) []diag.Diagnostic {
		for {
			skipDocComments(ts)
			if ts.Check(EOF) {
				return nil
			}
			structs = append(structs, parseStruct(ts, file))
		}
	})
	if len(diags) > 0 {
		return nil, diags
	}
	return structs, nil
}

func parseStruct(ts *TokenStream, file string) *model.StructDefinition {
	def := &model.StructDefinition{SourceFile: file}

	for ts.Check(ATTRIBUTE) {
		attr := ts.Next()
		if attr.Lexeme != AttrAlignAs {
			ts.Failf(attr, "unknown struct attribute @%s", attr.Lexeme)
		}
		if def.DefaultAlignment != 0 {
			ts.Failf(attr, "duplicate @alignas on struct")
		}
		def.DefaultAlignment = parseAlignAs(ts)
		skipDocComments(ts)
	}

	ts.Expect(STRUCT, "to start a struct declaration")
	def.Name = ts.Expect(IDENT, "as struct name").Lexeme
	ts.Expect(LBRACE, "to open the struct body")

	seen := make(map[string]bool)
	for {
		comment := collectDocComments(ts)
		if ts.Check(RBRACE) {
			break
		}
		field, tok := parseField(ts)
		field.Comment = comment
		if seen[field.Name] {
			ts.Failf(tok, "duplicate field %s in struct %s", field.Name, def.Name)
		}
		seen[field.Name] = true
		def.Fields = append(def.Fields, field)
	}
	ts.Expect(RBRACE, "to close the struct body")
	ts.Expect(SEMICOLON, "after the struct body")
	return def
}

// parseAlignAs parses the (N) part of @alignas(N)
func parseAlignAs(ts *TokenStream) int {
	ts.Expect(LPAREN, "after @alignas")
	tok := ts.Peek()
	n := parseConstExpr(ts)
	if n <= 0 {
		ts.Failf(tok, "alignment must be positive, got %d", n)
	}
	ts.Expect(RPAREN, "to close @alignas")
	return int(n)
}

func parseField(ts *TokenStream) (model.StructField, Token) {
	var field model.StructField
	var in, out bool

	for ts.Check(ATTRIBUTE) {
		attr := ts.Next()
		switch attr.Lexeme {
		case AttrInput:
			in = true
		case AttrOutput:
			out = true
		case AttrPadding:
			field.IsPadding = true
		case AttrAlignAs:
			if field.AlignmentOverride != 0 {
				ts.Failf(attr, "duplicate @alignas on field")
			}
			field.AlignmentOverride = parseAlignAs(ts)
		default:
			ts.Failf(attr, "unknown field attribute @%s", attr.Lexeme)
		}
	}

	if ts.Accept(STRUCT) {
		field.IsNestedStruct = true
	}
	typ := parseType(ts, "as field type")
	name := ts.Expect(IDENT, "as field name")
	field.Name = name.Lexeme

	if ts.Accept(LBRACKET) {
		sizeTok := ts.Peek()
		n := parseConstExpr(ts)
		if n <= 0 {
			ts.Failf(sizeTok, "array size of field %s must be positive, got %d", field.Name, n)
		}
		ts.Expect(RBRACKET, "to close the array size")
		field.ArraySize = int(n)
		typ = typ.WithArray(field.ArraySize)
	}
	ts.Expect(SEMICOLON, "after field "+field.Name)

	if field.IsPadding && (in || out) {
		ts.Failf(name, "padding field %s cannot be @in or @out", field.Name)
	}

	field.Type = typ
	if field.IsNestedStruct {
		field.NestedStructName = typ.Name
	}

	switch {
	case field.IsPadding:
	case in || out:
		field.IsInput, field.IsOutput = in, out
	default:
		field.IsInput, field.IsOutput = true, true
	}
	return field, name
}
