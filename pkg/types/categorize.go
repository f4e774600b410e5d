// Package types - Name tables and categorization rules
package types

import "unicode"

// Fixed primitive names with their raw byte sizes
var primitiveSizes = map[string]int{
	"bool":     1,
	"char":     1,
	"u8":       1,
	"s8":       1,
	"int8":     1,
	"uint8":    1,
	"int8_t":   1,
	"uint8_t":  1,
	"short":    2,
	"u16":      2,
	"s16":      2,
	"int16":    2,
	"uint16":   2,
	"int16_t":  2,
	"uint16_t": 2,
	"BOOL":     4,
	"int":      4,
	"uint":     4,
	"float":    4,
	"u32":      4,
	"s32":      4,
	"int32":    4,
	"uint32":   4,
	"int32_t":  4,
	"uint32_t": 4,
	"long":     8,
	"double":   8,
	"u64":      8,
	"s64":      8,
	"int64":    8,
	"uint64":   8,
	"int64_t":  8,
	"uint64_t": 8,
}

// handleParents lists every handle type. The value is the parent handle, or "" for roots.
// FireId, ScrHandle, ItemSet and friends are handles without a generated wrapper.
var handleParents = map[string]string{
	"Entity":       "",
	"Ped":          "Entity",
	"Vehicle":      "Entity",
	"Object":       "Entity",
	"Player":       "",
	"Cam":          "",
	"Blip":         "",
	"Pickup":       "",
	"Interior":     "",
	"FireId":       "",
	"ScrHandle":    "",
	"ItemSet":      "",
	"CarGenerator": "",
	"Train":        "",
}

var specialNames = map[string]Category{
	"void":    Void,
	"Hash":    Hash,
	"string":  String,
	"Vector2": Vector2,
	"Vector3": Vector3,
	"vector3": Vector3,
	"Vector4": Vector4,
	"Color":   Color,
	"Any":     Any,
}

// Categorize maps a type name and pointer-ness to its category
func Categorize(name string, isPointer bool) Category {
	if name == "char" && isPointer {
		return String
	}
	if c, ok := specialNames[name]; ok {
		return c
	}
	if _, ok := primitiveSizes[name]; ok {
		return Primitive
	}
	if _, ok := handleParents[name]; ok {
		return Handle
	}
	if isEnumName(name) {
		return Enum
	}
	return Struct
}

// Enum definitions follow the eName convention (eWeaponType, eVehicleSeat)
func isEnumName(name string) bool {
	runes := []rune(name)
	return len(runes) >= 2 && runes[0] == 'e' && unicode.IsUpper(runes[1])
}

// IsHandle reports whether name is a handle type
func IsHandle(name string) bool {
	_, ok := handleParents[name]
	return ok
}

// HandleParent returns the parent handle type and whether one exists
func HandleParent(name string) (string, bool) {
	parent, ok := handleParents[name]
	if !ok || parent == "" {
		return "", false
	}
	return parent, true
}

// DerivesFrom reports whether handle type name is base or one of its descendants
func DerivesFrom(name, base string) bool {
	for cur := name; cur != ""; {
		if cur == base {
			return true
		}
		cur = handleParents[cur]
	}
	return false
}

// ByteSize returns the raw byte size of a primitive-like type, used for padding fields
func ByteSize(name string) (int, bool) {
	if n, ok := primitiveSizes[name]; ok {
		return n, true
	}
	switch Categorize(name, false) {
	case Hash, Handle, Enum:
		return 4, true
	case Vector2:
		return 8, true
	case Vector3:
		return 12, true
	case Vector4, Color:
		return 16, true
	}
	return 0, false
}
