package types

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name      string
		isPointer bool
		expected  Category
	}{
		{"void", false, Void},
		{"char", true, String},
		{"char", false, Primitive},
		{"BOOL", false, Primitive},
		{"int", true, Primitive},
		{"Hash", false, Hash},
		{"vector3", false, Vector3},
		{"Ped", false, Handle},
		{"FireId", false, Handle},
		{"eSeat", false, Enum},
		{"entity", false, Struct},
		{"e", false, Struct},
		{"scrData", false, Struct},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.name, tt.isPointer); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestCategoryNames(t *testing.T) {
	for c := Void; c <= Enum; c++ {
		back, ok := ParseCategory(c.String())
		if !ok || back != c {
			t.Errorf("expected %s to parse back, got %s (%v)", c, back, ok)
		}
	}
	if _, ok := ParseCategory("pointer"); ok {
		t.Error("expected unknown category to fail")
	}
	if got := Category(99).String(); got != "category(99)" {
		t.Errorf("expected category(99), got %s", got)
	}
}

func TestHandleHierarchy(t *testing.T) {
	if parent, ok := HandleParent("Ped"); !ok || parent != "Entity" {
		t.Errorf("expected Ped parent Entity, got %q (%v)", parent, ok)
	}
	if _, ok := HandleParent("Entity"); ok {
		t.Error("expected Entity to be a root")
	}
	if !DerivesFrom("Vehicle", "Entity") || !DerivesFrom("Entity", "Entity") {
		t.Error("expected Vehicle and Entity to derive from Entity")
	}
	if DerivesFrom("Player", "Entity") {
		t.Error("expected Player not to derive from Entity")
	}
	if IsHandle("Pos") {
		t.Error("expected Pos not to be a handle")
	}
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		name     string
		expected int
		ok       bool
	}{
		{"char", 1, true},
		{"short", 2, true},
		{"BOOL", 4, true},
		{"double", 8, true},
		{"Ped", 4, true},
		{"eSeat", 4, true},
		{"Vector3", 12, true},
		{"Color", 16, true},
		{"Pos", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ByteSize(tt.name)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("expected %d (%v), got %d (%v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestTypeInfoString(t *testing.T) {
	ti := New("float", true).WithArray(3)
	if got := ti.String(); got != "float*[3]" {
		t.Errorf("expected float*[3], got %s", got)
	}
	if !New("void", false).IsVoid() || New("void", true).IsVoid() {
		t.Error("expected only non-pointer void to be void")
	}
}
