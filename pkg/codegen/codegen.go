// Package codegen implements the target-neutral generation contract and its drivers.
//
// Design: a Target is a set of capabilities (type mapping, placeholders, return shapes,
// identifiers) plus emission callbacks. The class, struct and enum drivers walk the
// Database and only ever talk to a Target; no target syntax lives in this package.
package codegen

import (
	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

// Role tells Identifier what kind of name it is producing
type Role int

const (
	RoleType Role = iota
	RoleMethod
	RoleProperty
	RoleParam
	RoleField
	RoleEnumMember
)

// ShapeKind is the form of a combined return
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeScalar
	ShapeAggregate
)

// ReturnValue is one element of a combined return. Param is empty for the native's own
// return value.
type ReturnValue struct {
	Param string
	Type  types.TypeInfo
}

// ReturnShape is the native's return value followed by its pure-output parameters
type ReturnShape struct {
	Kind   ShapeKind
	Values []ReturnValue
}

// CombineReturn folds a return type and output parameters into one shape
func CombineReturn(ret types.TypeInfo, outs []model.NativeParameter) ReturnShape {
	var values []ReturnValue
	if !ret.IsVoid() {
		values = append(values, ReturnValue{Type: ret})
	}
	for _, p := range outs {
		// the callee writes through the pointer; the caller receives the pointee
		t := p.Type
		t.IsPointer = false
		t.Category = types.Categorize(t.Name, false)
		values = append(values, ReturnValue{Param: p.Name, Type: t})
	}

	switch len(values) {
	case 0:
		return ReturnShape{Kind: ShapeNone}
	case 1:
		return ReturnShape{Kind: ShapeScalar, Values: values}
	default:
		return ReturnShape{Kind: ShapeAggregate, Values: values}
	}
}

// Capabilities is everything a driver needs to know about a target language
type Capabilities interface {
	// SurfaceType is the type users of the generated API see
	SurfaceType(t types.TypeInfo) string
	// InvokeType is the type the raw native call yields, e.g. a handle value before wrapping
	InvokeType(t types.TypeInfo) string
	// OutputPlaceholder is the argument passed for a pure-output pointer
	OutputPlaceholder(p model.NativeParameter) string
	// InOutPlaceholder is the argument passed for an initialized in-out pointer
	InOutPlaceholder(p model.NativeParameter) string
	ReturnType(shape ReturnShape) string
	Identifier(raw string, role Role) string
}

// ClassEmitter receives owners and their functions
type ClassEmitter interface {
	BeginClass(c ClassPlan)
	Method(m MethodPlan)
	Getter(g AccessorPlan)
	Setter(s AccessorPlan)
	EndClass(c ClassPlan)
}

// StructEmitter receives struct fields in layout order
type StructEmitter interface {
	BeginStruct(s StructPlan)
	Field(f FieldPlan)
	EndStruct(s StructPlan)
}

// EnumEmitter receives enum members in declaration order
type EnumEmitter interface {
	BeginEnum(e EnumPlan)
	Member(m MemberPlan)
	EndEnum(e EnumPlan)
}

// ClassTarget is what the class driver needs
type ClassTarget interface {
	Capabilities
	ClassEmitter
}

// StructTarget is what the struct driver needs
type StructTarget interface {
	Capabilities
	StructEmitter
}

// EnumTarget is what the enum driver needs
type EnumTarget interface {
	Capabilities
	EnumEmitter
}

// Target is a complete language backend
type Target interface {
	Capabilities
	ClassEmitter
	StructEmitter
	EnumEmitter
}
