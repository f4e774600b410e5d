// Package layout computes byte offsets for struct definitions.
//
// Design: offsets accumulate in declaration order from 0, the same way stack slots are
// handed out by a frame allocator. There is no reordering and no implicit padding;
// padding is whatever the definition spells out.
package layout

import (
	"fmt"

	"github.com/GriffinCanCode/nativedb/pkg/logger"
	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

// DefaultWidth is the slot width used when neither field nor struct sets an alignment
const DefaultWidth = 8

// FieldLayout places one field inside its struct
type FieldLayout struct {
	Field     model.StructField
	Offset    int
	Size      int
	Alignment int
}

// Calculator lays out structs against a registry of every known definition.
// Warnings accumulate across calls for the whole run, each distinct message once.
type Calculator struct {
	Structs  map[string]*model.StructDefinition
	Warnings []string

	sizes  map[string]int
	active map[string]bool
	warned map[string]bool
}

// New creates a calculator over a complete struct registry
func New(structs map[string]*model.StructDefinition) *Calculator {
	return &Calculator{
		Structs: structs,
		sizes:   make(map[string]int),
		active:  make(map[string]bool),
	}
}

// Layout returns the field placements of def and its total size
func (c *Calculator) Layout(def *model.StructDefinition) ([]FieldLayout, int) {
	if c.sizes == nil {
		c.sizes = make(map[string]int)
		c.active = make(map[string]bool)
	}

	c.active[def.Name] = true
	defer delete(c.active, def.Name)

	fields := make([]FieldLayout, 0, len(def.Fields))
	offset := 0
	for _, f := range def.Fields {
		align := alignment(def, f)
		size := c.fieldSize(def, f, align)
		fields = append(fields, FieldLayout{
			Field:     f,
			Offset:    offset,
			Size:      size,
			Alignment: align,
		})
		offset += size
	}
	c.sizes[def.Name] = offset
	return fields, offset
}

// Size returns the total size of a registered struct, or DefaultWidth when unknown
func (c *Calculator) Size(name string) int {
	if n, ok := c.sizes[name]; ok {
		return n
	}
	def, ok := c.Structs[name]
	if !ok {
		return DefaultWidth
	}
	if c.active[name] {
		c.warnf("struct %s: recursive reference, using default size %d", name, DefaultWidth)
		return DefaultWidth
	}
	_, total := c.Layout(def)
	return total
}

func alignment(def *model.StructDefinition, f model.StructField) int {
	if f.AlignmentOverride > 0 {
		return f.AlignmentOverride
	}
	if def.DefaultAlignment > 0 {
		return def.DefaultAlignment
	}
	return DefaultWidth
}

func count(f model.StructField) int {
	if f.IsArray() {
		return f.ArraySize
	}
	return 1
}

func (c *Calculator) fieldSize(def *model.StructDefinition, f model.StructField, align int) int {
	if f.IsNestedStruct {
		return c.Size(f.NestedStructName) * count(f)
	}

	if f.Padding() {
		raw, ok := types.ByteSize(f.Type.Name)
		if !ok {
			raw = align
		}
		raw *= count(f)
		if f.AlignmentOverride <= 0 {
			return raw
		}
		rounded := roundUp(raw, f.AlignmentOverride)
		if rounded != raw {
			c.warnf("struct %s field %s: padding size %d rounded to %d", def.Name, f.Name, raw, rounded)
		}
		return rounded
	}

	return align * count(f)
}

func roundUp(n, to int) int {
	if rem := n % to; rem != 0 {
		return n + to - rem
	}
	return n
}

func (c *Calculator) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.warned[msg] {
		return
	}
	if c.warned == nil {
		c.warned = make(map[string]bool)
	}
	c.warned[msg] = true
	c.Warnings = append(c.Warnings, msg)
	logger.LogLayoutWarning(msg)
}
