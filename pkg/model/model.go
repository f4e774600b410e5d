// Package model implements the language-neutral semantic model built from native sources.
//
// Design: plain values, built once by the frontend and document stages, then read-only.
package model

import (
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

// ParameterAttributes are the boolean facets a parameter can carry
type ParameterAttributes struct {
	This     bool // receiver of the call
	NotNull  bool
	Nullable bool
	In       bool // pointer carries an input value
}

// NativeParameter is one parameter of a native signature
type NativeParameter struct {
	Name         string
	Type         types.TypeInfo
	DefaultValue string // empty when the parameter has no default
	HasDefault   bool
	Variadic     bool
	Attributes   ParameterAttributes
	Description  string
}

// IsPureOutput reports a pointer written by the callee with no input value
func (p NativeParameter) IsPureOutput() bool {
	if !p.Type.IsPointer || p.Attributes.In {
		return false
	}
	return p.Type.Category != types.String && p.Type.Category != types.Struct
}

// IsInOut reports a pointer that carries an input and may be overwritten
func (p NativeParameter) IsInOut() bool {
	return p.Type.IsPointer && p.Attributes.In
}

// Signature is the parsed form of a native's declaration line
type Signature struct {
	Name       string
	ReturnType types.TypeInfo
	Parameters []NativeParameter
}

// Example is a code sample attached to a native or shared between natives
type Example struct {
	Name string // empty for inline examples
	Lang string
	Code string
}

// NativeRef is a [native: NAME | game] cross-reference
type NativeRef struct {
	Name string
	Game string
}

// CalloutKind is one of the four highlighted note kinds
type CalloutKind string

const (
	CalloutNote      CalloutKind = "NOTE"
	CalloutTip       CalloutKind = "TIP"
	CalloutImportant CalloutKind = "IMPORTANT"
	CalloutWarning   CalloutKind = "WARNING"
)

// Callout is a highlighted note found in documentation prose
type Callout struct {
	Kind        CalloutKind
	Title       string
	Description string
}

// NativeDefinition is a fully documented native function
type NativeDefinition struct {
	Name              string
	Hash              uint64
	Namespace         string
	Description       string
	Parameters        []NativeParameter
	ReturnType        types.TypeInfo
	ReturnDescription string
	Aliases           []string
	RelatedExamples   []Example
	ExampleRefs       []string
	UsedEnums         []string
	UsedStructs       []string
	References        []NativeRef
	Callouts          []Callout
	ApiSet            string
	SourceFile        string
}

// ThisParameter returns the index of the receiver parameter, or -1
func (n *NativeDefinition) ThisParameter() int {
	for i, p := range n.Parameters {
		if p.Attributes.This {
			return i
		}
	}
	return -1
}

// OutputParameters returns the pure-output parameters in declaration order
func (n *NativeDefinition) OutputParameters() []NativeParameter {
	var outs []NativeParameter
	for _, p := range n.Parameters {
		if p.IsPureOutput() {
			outs = append(outs, p)
		}
	}
	return outs
}

// Namespace groups natives declared under the same namespace
type Namespace struct {
	Name    string
	Natives []*NativeDefinition
}

// EnumMember is one enumerator. Value always holds a resolved value after the fill pass.
type EnumMember struct {
	Name     string
	Value    string
	Explicit bool
	Comment  string
}

// EnumDefinition is a parsed enum body
type EnumDefinition struct {
	Name       string
	BaseType   string // empty when not declared
	Members    []EnumMember
	SourceFile string
}

// StructField is one field of a struct body
type StructField struct {
	Name              string
	Type              types.TypeInfo
	ArraySize         int // 0 when not an array
	AlignmentOverride int // 0 when no @alignas
	IsInput           bool
	IsOutput          bool
	IsPadding         bool
	IsNestedStruct    bool
	NestedStructName  string
	Comment           string
}

// Padding reports whether the field only reserves space
func (f StructField) Padding() bool {
	return f.IsPadding || (!f.IsInput && !f.IsOutput)
}

// IsArray reports whether the field has an array-size suffix
func (f StructField) IsArray() bool {
	return f.ArraySize > 0
}

// StructDefinition is a parsed struct body
type StructDefinition struct {
	Name             string
	DefaultAlignment int // 0 when no struct-level @alignas
	Fields           []StructField
	SourceFile       string
}
