// Package golang - Struct views and enum constants
package golang

import (
	"fmt"
	"regexp"

	"github.com/GriffinCanCode/nativedb/pkg/codegen"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

const (
	structsFile = "structs.go"
	enumsFile   = "enums.go"
)

// BeginStruct implements codegen.StructEmitter
func (g *Generator) BeginStruct(s codegen.StructPlan) {
	g.out = g.file(structsFile)
	fmt.Fprintf(g.out, "// %s is a view over the %d bytes of native struct %s.\n", s.Name, s.Size, s.Def.Name)
	fmt.Fprintf(g.out, "type %s struct {\n\tdata [%d]byte\n}\n\n", s.Name, s.Size)
	fmt.Fprintf(g.out, "// Bytes returns the memory handed to natives.\n")
	fmt.Fprintf(g.out, "func (s *%s) Bytes() []byte { return s.data[:] }\n\n", s.Name)
}

// Field implements codegen.StructEmitter
func (g *Generator) Field(f codegen.FieldPlan) {
	s := f.Struct.Name
	off := f.Layout.Offset
	stride := f.Layout.Size
	if f.Count > 1 {
		stride = f.Layout.Size / f.Count
	}

	if f.Shape != codegen.FieldPadding && g.storedSize(f) > stride {
		g.rawField(f, stride)
		return
	}

	switch f.Shape {
	case codegen.FieldPadding:
		fmt.Fprintf(g.out, "// %s.%s: %d bytes of padding at offset %d.\n\n", s, f.Layout.Field.Name, f.Layout.Size, off)

	case codegen.FieldNested:
		fmt.Fprintf(g.out, "// %s views the nested %s at offset %d.\n", f.Name, f.Type, off)
		fmt.Fprintf(g.out, "func (s *%s) %s() *%s { return native.At[%s](s.data[:], %d) }\n\n", s, f.Name, f.Type, f.Type, off)

	case codegen.FieldNestedArray:
		fmt.Fprintf(g.out, "// %s views element i of %d nested %s values at offset %d.\n", f.Name, f.Count, f.Type, off)
		fmt.Fprintf(g.out, "func (s *%s) %s(i int) *%s { return native.At[%s](s.data[:], %d+i*%d) }\n\n",
			s, f.Name, f.Type, f.Type, off, stride)

	case codegen.FieldArray:
		raw, surface, wrap, unwrap := g.fieldConversions(f)
		if f.Read {
			fmt.Fprintf(g.out, "func (s *%s) %s(i int) %s {\n\treturn %s\n}\n\n",
				s, f.Name, surface, wrap(fmt.Sprintf("native.Read[%s](s.data[:], %d+i*%d)", raw, off, stride)))
		}
		if f.Write {
			fmt.Fprintf(g.out, "func (s *%s) Set%s(i int, v %s) {\n\tnative.Write[%s](s.data[:], %d+i*%d, %s)\n}\n\n",
				s, f.Name, surface, raw, off, stride, unwrap("v"))
		}

	default:
		raw, surface, wrap, unwrap := g.fieldConversions(f)
		if f.Read {
			fmt.Fprintf(g.out, "func (s *%s) %s() %s {\n\treturn %s\n}\n\n",
				s, f.Name, surface, wrap(fmt.Sprintf("native.Read[%s](s.data[:], %d)", raw, off)))
		}
		if f.Write {
			fmt.Fprintf(g.out, "func (s *%s) Set%s(v %s) {\n\tnative.Write[%s](s.data[:], %d, %s)\n}\n\n",
				s, f.Name, surface, raw, off, unwrap("v"))
		}
	}
}

// rawField exposes a slot narrower than its Go type as bytes
func (g *Generator) rawField(f codegen.FieldPlan, stride int) {
	s, off := f.Struct.Name, f.Layout.Offset
	fmt.Fprintf(g.out, "// %s returns the %d-byte slot of %s at offset %d, narrower than its type.\n", f.Name, stride, f.Layout.Field.Type, off)
	if f.Count > 1 {
		fmt.Fprintf(g.out, "func (s *%s) %s(i int) []byte { return s.data[%d+i*%d : %d+(i+1)*%d] }\n\n",
			s, f.Name, off, stride, off, stride)
		return
	}
	fmt.Fprintf(g.out, "func (s *%s) %s() []byte { return s.data[%d:%d] }\n\n", s, f.Name, off, off+stride)
}

// storedSize is the number of bytes an accessor for one element reads
func (g *Generator) storedSize(f codegen.FieldPlan) int {
	elem := f.Layout.Field.Type
	elem.ArraySize = 0
	if elem.Category == types.String || elem.IsPointer {
		return 8
	}
	switch elem.Category {
	case types.Primitive:
		return goSizes[primitiveTypes[elem.Name]]
	case types.Struct:
		if g.calc != nil {
			return g.calc.Size(elem.Name)
		}
	case types.Enum:
		if g.db != nil {
			if def, ok := g.db.Enums[elem.Name]; ok && def.BaseType != "" {
				if t, ok := primitiveTypes[def.BaseType]; ok && t != "bool" {
					return goSizes[t]
				}
			}
		}
		return 4
	}
	n, _ := types.ByteSize(elem.Name)
	return n
}

var goSizes = map[string]int{
	"bool":    1,
	"int8":    1,
	"uint8":   1,
	"int16":   2,
	"uint16":  2,
	"int32":   4,
	"uint32":  4,
	"float32": 4,
	"int64":   8,
	"uint64":  8,
	"float64": 8,
	"uintptr": 8,
}

// fieldConversions returns the stored and surface types of one element with the
// conversions between them
func (g *Generator) fieldConversions(f codegen.FieldPlan) (string, string, func(string) string, func(string) string) {
	elem := f.Layout.Field.Type
	elem.ArraySize = 0
	raw, surface := g.InvokeType(elem), g.SurfaceType(elem)
	if elem.Category == types.String || elem.IsPointer {
		// pointers are stored as addresses
		raw, surface = "uintptr", "uintptr"
		elem.Category = types.Any
	}
	wrap := func(expr string) string { return g.wrapRaw(elem, expr) }
	unwrap := func(expr string) string { return g.unwrap(elem, expr) }
	return raw, surface, wrap, unwrap
}

// EndStruct implements codegen.StructEmitter
func (g *Generator) EndStruct(codegen.StructPlan) {
	g.out = nil
}

var identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// BeginEnum implements codegen.EnumEmitter
func (g *Generator) BeginEnum(e codegen.EnumPlan) {
	g.out = g.file(enumsFile)

	g.members = make(map[string]string, len(e.Def.Members))
	for _, m := range e.Def.Members {
		g.members[m.Name] = e.Name + g.Identifier(m.Name, codegen.RoleEnumMember)
	}

	base := "int32"
	if e.BaseType != "" {
		if t, ok := primitiveTypes[e.BaseType]; ok && t != "bool" {
			base = t
		}
	}
	fmt.Fprintf(g.out, "// %s mirrors enum %s.\n", e.Name, e.Def.Name)
	fmt.Fprintf(g.out, "type %s %s\n\nconst (\n", e.Name, base)
}

// Member implements codegen.EnumEmitter
func (g *Generator) Member(m codegen.MemberPlan) {
	value := identRe.ReplaceAllStringFunc(m.Value, func(id string) string {
		if goName, ok := g.members[id]; ok {
			return goName
		}
		return id
	})
	if m.Member.Comment != "" {
		fmt.Fprintf(g.out, "\t// %s\n", m.Member.Comment)
	}
	fmt.Fprintf(g.out, "\t%s%s %s = %s\n", m.Enum.Name, m.Name, m.Enum.Name, value)
}

// EndEnum implements codegen.EnumEmitter
func (g *Generator) EndEnum(codegen.EnumPlan) {
	fmt.Fprintf(g.out, ")\n\n")
	g.out = nil
	g.members = nil
}
