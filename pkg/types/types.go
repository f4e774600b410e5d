// Package types implements the canonical type representation for native declarations.
//
// Design: a category is a pure function of a type name and its pointer-ness, driven by
// fixed tables. Nothing downstream sets a category by hand.
package types

import "fmt"

// Category classifies a type occurrence
type Category int

const (
	Void Category = iota
	Primitive
	Handle
	Hash
	String
	Vector2
	Vector3
	Vector4
	Color
	Any
	Struct
	Enum
)

var categoryNames = [...]string{
	Void:      "void",
	Primitive: "primitive",
	Handle:    "handle",
	Hash:      "hash",
	String:    "string",
	Vector2:   "vector2",
	Vector3:   "vector3",
	Vector4:   "vector4",
	Color:     "color",
	Any:       "any",
	Struct:    "struct",
	Enum:      "enum",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory is the inverse of Category.String
func ParseCategory(s string) (Category, bool) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), true
		}
	}
	return Void, false
}

// TypeInfo is one type occurrence in a signature or struct body
type TypeInfo struct {
	Name      string
	Category  Category
	IsPointer bool
	ArraySize int // fixed array length, 0 when not an array
}

// New builds a TypeInfo with its category derived from the name tables
func New(name string, isPointer bool) TypeInfo {
	return TypeInfo{
		Name:      name,
		Category:  Categorize(name, isPointer),
		IsPointer: isPointer,
	}
}

// WithArray returns a copy with a fixed array size
func (t TypeInfo) WithArray(n int) TypeInfo {
	t.ArraySize = n
	return t
}

// IsVoid reports a non-pointer void
func (t TypeInfo) IsVoid() bool {
	return t.Category == Void && !t.IsPointer
}

// IsArray reports a fixed-size array type
func (t TypeInfo) IsArray() bool {
	return t.ArraySize > 0
}

func (t TypeInfo) String() string {
	s := t.Name
	if t.IsPointer {
		s += "*"
	}
	if t.ArraySize > 0 {
		s += fmt.Sprintf("[%d]", t.ArraySize)
	}
	return s
}
