// Package frontend - Signature parser: ReturnType NAME(params);
package frontend

import (
	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

// Recognized parameter attributes
const (
	AttrThis     = "this"
	AttrNotNull  = "notnull"
	AttrNullable = "nullable"
	AttrIn       = "in"
)

var knownParamAttrs = map[string]bool{
	AttrThis:     true,
	AttrNotNull:  true,
	AttrNullable: true,
	AttrIn:       true,
}

const defaultVariadicName = "args"

type parsedParam struct {
	param model.NativeParameter
	tok   Token   // parameter name, or the type when unnamed
	attrs []Token // raw attribute tokens, validated after the list closes
}

// ParseSignature parses a single native declaration
func ParseSignature(file, src string) (*model.Signature, []diag.Diagnostic) {
	var sig *model.Signature
	diags := parseSource(file, src, func(ts *TokenStream) []diag.Diagnostic {
		var errs []diag.Diagnostic
		sig, errs = parseSignature(ts)
		return errs
	})
	if len(diags) > 0 {
		return nil, diags
	}
	return sig, nil
}

func parseSignature(ts *TokenStream) (*model.Signature, []diag.Diagnostic) {
	var errs []diag.Diagnostic

	// Return-type attributes are validated, then dropped
	for ts.Check(ATTRIBUTE) {
		tok := ts.Next()
		if !knownParamAttrs[tok.Lexeme] {
			errs = append(errs, ts.At(tok, "unknown attribute @%s", tok.Lexeme))
		}
	}

	ret := parseType(ts, "as return type")
	name := ts.Expect(IDENT, "as native name")
	ts.Expect(LPAREN, "after native name")

	var params []parsedParam
	if !ts.Check(RPAREN) {
		for {
			params = append(params, parseParam(ts, len(params)))
			if !ts.Accept(COMMA) {
				break
			}
		}
	}
	ts.Expect(RPAREN, "to close the parameter list")
	errs = append(errs, validateParams(ts, params)...)
	ts.Expect(SEMICOLON, "after the parameter list")
	ts.Expect(EOF, "after the signature")

	sig := &model.Signature{
		Name:       name.Lexeme,
		ReturnType: ret,
	}
	for _, p := range params {
		sig.Parameters = append(sig.Parameters, p.param)
	}
	return sig, errs
}

// parseType parses [const] NAME [*]
func parseType(ts *TokenStream, context string) types.TypeInfo {
	ts.Accept(CONST)
	name := ts.Expect(IDENT, context)
	isPointer := ts.Accept(STAR)
	if ts.Check(STAR) {
		ts.Failf(ts.Peek(), "multiple indirection is not supported for type %s", name.Lexeme)
	}
	return types.New(name.Lexeme, isPointer)
}

func parseParam(ts *TokenStream, index int) parsedParam {
	var pp parsedParam
	for ts.Check(ATTRIBUTE) {
		pp.attrs = append(pp.attrs, ts.Next())
	}

	// A bare ... stands for a trailing list of untyped arguments
	if ts.Check(ELLIPSIS) {
		pp.tok = ts.Next()
		pp.param = model.NativeParameter{
			Name:     defaultVariadicName,
			Type:     types.New("Any", false),
			Variadic: true,
		}
		if ts.Check(IDENT) {
			pp.param.Name = ts.Next().Lexeme
		}
		return pp
	}

	typeTok := ts.Peek()
	typ := parseType(ts, "as parameter type")
	if ts.Accept(LBRACKET) {
		size := ts.Expect(NUMBER, "as array size")
		n, ok := parseIntLiteral(size.Lexeme)
		if !ok || n <= 0 {
			ts.Failf(size, "invalid array size %s", size.Lexeme)
		}
		ts.Expect(RBRACKET, "to close the array size")
		typ = typ.WithArray(int(n))
	}
	pp.param.Type = typ
	pp.tok = typeTok

	if ts.Accept(ELLIPSIS) {
		pp.param.Variadic = true
		pp.param.Name = defaultVariadicName
	}
	if ts.Check(IDENT) {
		pp.tok = ts.Next()
		pp.param.Name = pp.tok.Lexeme
	} else if !pp.param.Variadic {
		ts.Failf(ts.Peek(), "expected parameter name for parameter %d, got %s", index+1, ts.Peek().Describe())
	}

	if ts.Accept(ASSIGN) {
		value := ts.Peek()
		if value.Type != NUMBER && value.Type != IDENT {
			ts.Failf(value, "expected default value for parameter %s, got %s", pp.param.Name, value.Describe())
		}
		ts.Next()
		pp.param.DefaultValue = value.Lexeme
		pp.param.HasDefault = true
	}
	return pp
}

// validateParams applies the rules that need the whole parameter list
func validateParams(ts *TokenStream, params []parsedParam) []diag.Diagnostic {
	var errs []diag.Diagnostic
	seenThis := false
	seenDefault := ""
	names := make(map[string]bool)

	for i := range params {
		pp := &params[i]
		p := &pp.param

		for _, attr := range pp.attrs {
			switch attr.Lexeme {
			case AttrThis:
				if seenThis {
					errs = append(errs, ts.At(attr, "duplicate @this: parameter %s cannot be a second receiver", p.Name))
				}
				seenThis = true
				p.Attributes.This = true
			case AttrNotNull:
				p.Attributes.NotNull = true
			case AttrNullable:
				p.Attributes.Nullable = true
			case AttrIn:
				p.Attributes.In = true
				if !p.Type.IsPointer {
					errs = append(errs, ts.At(attr, "@in is only valid on pointer parameters, %s is not a pointer", p.Name))
				} else if p.Type.Category == types.Struct {
					errs = append(errs, ts.At(attr, "@in is not valid on struct pointer parameter %s", p.Name))
				}
			default:
				errs = append(errs, ts.At(attr, "unknown attribute @%s on parameter %s", attr.Lexeme, p.Name))
			}
		}

		if p.Attributes.NotNull && p.Attributes.Nullable {
			errs = append(errs, ts.At(pp.tok, "parameter %s cannot be both @notnull and @nullable", p.Name))
		}
		if p.Variadic && i != len(params)-1 {
			errs = append(errs, ts.At(pp.tok, "variadic parameter %s must be last", p.Name))
		}
		if names[p.Name] {
			errs = append(errs, ts.At(pp.tok, "duplicate parameter name %s", p.Name))
		}
		names[p.Name] = true

		if p.HasDefault {
			seenDefault = p.Name
		} else if seenDefault != "" && !p.Variadic {
			errs = append(errs, ts.At(pp.tok, "parameter %s needs a default value because %s has one", p.Name, seenDefault))
		}
	}
	return errs
}
