// Package frontend - Unit tests for the signature parser
package frontend

import (
	"strings"
	"testing"

	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

func mustParseSignature(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	_, diags := ParseSignature("test.md", src)
	return diags
}

func TestParseSignatureBasic(t *testing.T) {
	sig, diags := ParseSignature("test.md", "void SET_ENTITY_COORDS(Entity entity, float x, float y, float z);")
	if len(diags) > 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if sig.Name != "SET_ENTITY_COORDS" {
		t.Errorf("expected name SET_ENTITY_COORDS, got %s", sig.Name)
	}
	if !sig.ReturnType.IsVoid() {
		t.Errorf("expected void return, got %v", sig.ReturnType)
	}
	if len(sig.Parameters) != 4 {
		t.Fatalf("expected 4 parameters, got %d", len(sig.Parameters))
	}
	if sig.Parameters[0].Type.Category != types.Handle {
		t.Errorf("expected entity to be a handle, got %s", sig.Parameters[0].Type.Category)
	}
	for _, p := range sig.Parameters[1:] {
		if p.Type.Category != types.Primitive {
			t.Errorf("expected %s to be primitive, got %s", p.Name, p.Type.Category)
		}
	}
}

func TestParseSignaturePointers(t *testing.T) {
	sig, diags := ParseSignature("test.md", "BOOL GET_GROUND_Z(float x, float y, float* z, const char* label, @in int* count, MyStruct* data);")
	if len(diags) > 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}

	tests := []struct {
		name   string
		output bool
		inout  bool
		cat    types.Category
	}{
		{"x", false, false, types.Primitive},
		{"y", false, false, types.Primitive},
		{"z", true, false, types.Primitive},
		{"label", false, false, types.String},
		{"count", false, true, types.Primitive},
		{"data", false, false, types.Struct},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sig.Parameters[i]
			if p.Name != tt.name {
				t.Fatalf("expected parameter %s, got %s", tt.name, p.Name)
			}
			if p.IsPureOutput() != tt.output {
				t.Errorf("IsPureOutput: expected %v, got %v", tt.output, p.IsPureOutput())
			}
			if p.IsInOut() != tt.inout {
				t.Errorf("IsInOut: expected %v, got %v", tt.inout, p.IsInOut())
			}
			if p.Type.Category != tt.cat {
				t.Errorf("category: expected %s, got %s", tt.cat, p.Type.Category)
			}
		})
	}
}

func TestParseSignatureDefaultsAndVariadic(t *testing.T) {
	sig, diags := ParseSignature("test.md", "void TRIGGER_EVENT(char* eventName, int flags = 0, BOOL loud = false, ...);")
	if len(diags) > 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if got := sig.Parameters[1]; !got.HasDefault || got.DefaultValue != "0" {
		t.Errorf("expected flags default 0, got %+v", got)
	}
	last := sig.Parameters[3]
	if !last.Variadic || last.Name != "args" {
		t.Errorf("expected variadic parameter named args, got %+v", last)
	}
}

func TestParseSignatureFixedArray(t *testing.T) {
	sig, diags := ParseSignature("test.md", "void GET_DATA(int values[4]);")
	if len(diags) > 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if sig.Parameters[0].Type.ArraySize != 4 {
		t.Errorf("expected array size 4, got %d", sig.Parameters[0].Type.ArraySize)
	}
}

func TestParseSignatureAttributeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"in on non-pointer", "void F(@in int a);", "@in is only valid on pointer parameters"},
		{"in on struct pointer", "void F(@in MyStruct* a);", "@in is not valid on struct pointer"},
		{"second this", "void F(@this Ped a, @this Ped b);", "duplicate @this"},
		{"unknown attribute", "void F(@out int* a);", "unknown attribute @out"},
		{"unknown return attribute", "@weird void F();", "unknown attribute @weird"},
		{"default ordering", "void F(int a = 1, int b);", "needs a default value"},
		{"duplicate name", "void F(int a, int a);", "duplicate parameter name a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := mustParseSignature(t, tt.src)
			if len(diags) == 0 {
				t.Fatalf("expected error containing %q, got none", tt.want)
			}
			if !strings.Contains(diags[0].Message, tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, diags[0].Message)
			}
			if diags[0].File != "test.md" || diags[0].Line != 1 || diags[0].Col == 0 {
				t.Errorf("expected positioned error in test.md, got %v", diags[0])
			}
		})
	}
}

func TestParseSignatureGrammarErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing semicolon", "void F()", "expected ';'"},
		{"missing paren", "void F(int a;", "expected ')'"},
		{"missing name", "void (int a);", "as native name"},
		{"trailing tokens", "void F(); int", "after the signature"},
		{"double pointer", "void F(int** a);", "multiple indirection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := mustParseSignature(t, tt.src)
			if len(diags) != 1 {
				t.Fatalf("expected one error, got %v", diags)
			}
			if !strings.Contains(diags[0].Message, tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, diags[0].Message)
			}
		})
	}
}

func TestStructPointerNeverPureOutput(t *testing.T) {
	sig, diags := ParseSignature("test.md", "void F(SomeStruct* a, Vector3* b, char* c);")
	if len(diags) > 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if sig.Parameters[0].IsPureOutput() {
		t.Error("struct pointer must not be a pure output")
	}
	if !sig.Parameters[1].IsPureOutput() {
		t.Error("Vector3 pointer should be a pure output")
	}
	if sig.Parameters[2].IsPureOutput() {
		t.Error("char pointer is a string, not an output")
	}
}
