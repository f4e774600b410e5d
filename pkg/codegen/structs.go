// Package codegen - Struct and enum drivers
package codegen

import (
	"github.com/GriffinCanCode/nativedb/pkg/classify"
	"github.com/GriffinCanCode/nativedb/pkg/layout"
	"github.com/GriffinCanCode/nativedb/pkg/logger"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// FieldShape selects the accessor form of a struct field
type FieldShape int

const (
	FieldPadding FieldShape = iota
	FieldScalar
	FieldArray
	FieldNested
	FieldNestedArray
)

func (s FieldShape) String() string {
	switch s {
	case FieldPadding:
		return "padding"
	case FieldArray:
		return "array"
	case FieldNested:
		return "nested"
	case FieldNestedArray:
		return "nested array"
	default:
		return "scalar"
	}
}

// StructPlan describes one struct
type StructPlan struct {
	Def  *model.StructDefinition
	Name string
	Size int
}

// FieldPlan is one field with its placement and accessor shape
type FieldPlan struct {
	Struct StructPlan
	Layout layout.FieldLayout
	Name   string
	Type   string // element type for arrays; nested struct name for nested shapes
	Shape  FieldShape
	Count  int  // element count, 1 for non-arrays
	Read   bool // output field: the native fills it
	Write  bool // input field: the caller fills it
}

// EnumPlan describes one enum
type EnumPlan struct {
	Def      *model.EnumDefinition
	Name     string
	BaseType string
}

// MemberPlan is one resolved enum member
type MemberPlan struct {
	Enum   EnumPlan
	Member model.EnumMember
	Name   string
	Value  string
}

// ShapeOf classifies a struct field
func ShapeOf(f model.StructField) FieldShape {
	switch {
	case f.Padding():
		return FieldPadding
	case f.IsNestedStruct && f.IsArray():
		return FieldNestedArray
	case f.IsNestedStruct:
		return FieldNested
	case f.IsArray():
		return FieldArray
	default:
		return FieldScalar
	}
}

// GenerateStructs emits every struct, sorted by name, fields in layout order
func GenerateStructs(db *model.Database, calc *layout.Calculator, target StructTarget) {
	logger.LogPhase("struct generation")

	for _, name := range db.StructNames() {
		def := db.Structs[name]
		fields, total := calc.Layout(def)

		plan := StructPlan{Def: def, Name: target.Identifier(def.Name, RoleType), Size: total}
		target.BeginStruct(plan)
		for _, fl := range fields {
			target.Field(planField(target, plan, fl))
		}
		target.EndStruct(plan)

		logger.LogGeneration("struct", def.Name, len(fields))
	}

	logger.LogPhaseComplete("struct generation", "structs", len(db.Structs), "warnings", len(calc.Warnings))
}

func planField(caps Capabilities, s StructPlan, fl layout.FieldLayout) FieldPlan {
	f := fl.Field
	plan := FieldPlan{
		Struct: s,
		Layout: fl,
		Name:   caps.Identifier(f.Name, RoleField),
		Shape:  ShapeOf(f),
		Count:  1,
		Read:   f.IsOutput && !f.Padding(),
		Write:  f.IsInput && !f.Padding(),
	}
	if f.IsArray() {
		plan.Count = f.ArraySize
	}

	elem := f.Type
	elem.ArraySize = 0
	if f.IsNestedStruct {
		plan.Type = caps.Identifier(f.NestedStructName, RoleType)
	} else {
		plan.Type = caps.SurfaceType(elem)
	}
	return plan
}

// GenerateEnums emits every enum, sorted by name
func GenerateEnums(db *model.Database, target EnumTarget) {
	logger.LogPhase("enum generation")

	for _, name := range db.EnumNames() {
		def := db.Enums[name]
		plan := EnumPlan{Def: def, Name: target.Identifier(def.Name, RoleType), BaseType: def.BaseType}
		target.BeginEnum(plan)
		for _, m := range def.Members {
			target.Member(MemberPlan{
				Enum:   plan,
				Member: m,
				Name:   target.Identifier(m.Name, RoleEnumMember),
				Value:  m.Value,
			})
		}
		target.EndEnum(plan)

		logger.LogGeneration("enum", def.Name, len(def.Members))
	}

	logger.LogPhaseComplete("enum generation", "enums", len(db.Enums))
}

// Generate runs all three drivers against one target
func Generate(db *model.Database, classifier *classify.Classifier, calc *layout.Calculator, target Target) {
	GenerateEnums(db, target)
	GenerateStructs(db, calc, target)
	GenerateClasses(db, classifier, target)
}
