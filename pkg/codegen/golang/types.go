// Package golang - Type mapping, placeholders and return shapes
package golang

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/nativedb/pkg/codegen"
	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

var primitiveTypes = map[string]string{
	"bool":     "bool",
	"BOOL":     "bool",
	"char":     "int8",
	"u8":       "uint8",
	"s8":       "int8",
	"int8":     "int8",
	"uint8":    "uint8",
	"int8_t":   "int8",
	"uint8_t":  "uint8",
	"short":    "int16",
	"u16":      "uint16",
	"s16":      "int16",
	"int16":    "int16",
	"uint16":   "uint16",
	"int16_t":  "int16",
	"uint16_t": "uint16",
	"int":      "int32",
	"uint":     "uint32",
	"u32":      "uint32",
	"s32":      "int32",
	"int32":    "int32",
	"uint32":   "uint32",
	"int32_t":  "int32",
	"uint32_t": "uint32",
	"float":    "float32",
	"long":     "int64",
	"double":   "float64",
	"u64":      "uint64",
	"s64":      "int64",
	"int64":    "int64",
	"uint64":   "uint64",
	"int64_t":  "int64",
	"uint64_t": "uint64",
}

var vectorTypes = map[types.Category]string{
	types.Vector2: "native.Vector2",
	types.Vector3: "native.Vector3",
	types.Vector4: "native.Vector4",
	types.Color:   "native.Color",
}

// SurfaceType implements codegen.Capabilities
func (g *Generator) SurfaceType(t types.TypeInfo) string {
	elem := t
	elem.ArraySize = 0
	s := g.valueType(elem, true)
	if t.IsArray() {
		return fmt.Sprintf("[%d]%s", t.ArraySize, s)
	}
	return s
}

// InvokeType implements codegen.Capabilities; handles come back as raw values
func (g *Generator) InvokeType(t types.TypeInfo) string {
	elem := t
	elem.ArraySize = 0
	s := g.valueType(elem, false)
	if t.IsArray() {
		return fmt.Sprintf("[%d]%s", t.ArraySize, s)
	}
	return s
}

func (g *Generator) valueType(t types.TypeInfo, wrap bool) string {
	if t.Category == types.String {
		return "string"
	}
	if t.IsPointer {
		switch t.Category {
		case types.Void, types.Any:
			return "uintptr"
		}
		return "*" + g.baseType(t, wrap)
	}
	return g.baseType(t, wrap)
}

func (g *Generator) baseType(t types.TypeInfo, wrap bool) string {
	switch t.Category {
	case types.Void:
		return ""
	case types.Primitive:
		return primitiveTypes[t.Name]
	case types.Handle:
		if wrapper, ok := g.classifier.Wrapper(t.Name); ok && wrap {
			return g.Identifier(wrapper, codegen.RoleType)
		}
		return "int32"
	case types.Hash:
		return "uint32"
	case types.Any:
		return "any"
	case types.Vector2, types.Vector3, types.Vector4, types.Color:
		return vectorTypes[t.Category]
	default:
		return g.Identifier(t.Name, codegen.RoleType)
	}
}

// OutputPlaceholder implements codegen.Capabilities: a fresh pointer the native fills
func (g *Generator) OutputPlaceholder(p model.NativeParameter) string {
	elem := p.Type
	elem.IsPointer = false
	elem.Category = types.Categorize(elem.Name, false)
	return "new(" + g.InvokeType(elem) + ")"
}

// InOutPlaceholder implements codegen.Capabilities: the caller's pointer passes through
func (g *Generator) InOutPlaceholder(p model.NativeParameter) string {
	return g.Identifier(p.Name, codegen.RoleParam)
}

// ReturnType implements codegen.Capabilities
func (g *Generator) ReturnType(shape codegen.ReturnShape) string {
	switch shape.Kind {
	case codegen.ShapeNone:
		return ""
	case codegen.ShapeScalar:
		return g.SurfaceType(shape.Values[0].Type)
	}
	parts := make([]string, len(shape.Values))
	for i, v := range shape.Values {
		parts[i] = g.SurfaceType(v.Type)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// wrapRaw converts a raw call value to its surface type
func (g *Generator) wrapRaw(t types.TypeInfo, expr string) string {
	if t.Category != types.Handle || t.IsPointer || t.IsArray() {
		return expr
	}
	if wrapper, ok := g.classifier.Wrapper(t.Name); ok {
		return g.Identifier(wrapper, codegen.RoleType) + "FromHandle(" + expr + ")"
	}
	return expr
}

// unwrap converts a surface value to what the native expects
func (g *Generator) unwrap(t types.TypeInfo, expr string) string {
	if t.Category != types.Handle || t.IsPointer || t.IsArray() {
		return expr
	}
	if _, ok := g.classifier.Wrapper(t.Name); ok {
		return expr + ".Handle()"
	}
	return expr
}
