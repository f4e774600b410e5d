// Package frontend - Unit tests for the enum parser and fill pass
package frontend

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GriffinCanCode/nativedb/pkg/model"
)

func memberValues(def *model.EnumDefinition) []string {
	values := make([]string, len(def.Members))
	for i, m := range def.Members {
		values[i] = m.Value
	}
	return values
}

func TestParseEnumValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "implicit from zero",
			body: "A, B, C",
			want: []string{"0", "1", "2"},
		},
		{
			name: "negative start",
			body: "VS_ANY_PASSENGER = -2, VS_DRIVER, VS_FRONT_RIGHT",
			want: []string{"-2", "-1", "0"},
		},
		{
			name: "all explicit unchanged",
			body: "A = 5, B = 0x10, C = -7",
			want: []string{"5", "0x10", "-7"},
		},
		{
			name: "hex anchor",
			body: "A = 0x10, B, C",
			want: []string{"0x10", "17", "18"},
		},
		{
			name: "unparsable resets counter",
			body: "A = 1 << 2, B, C, D = 10, E",
			want: []string{"1 << 2", "(1 << 2) + 1", "(1 << 2) + 2", "10", "11"},
		},
		{
			name: "leading zeros are decimal",
			body: "A = 010, B, C = 0b11, D, E = 1_000, F",
			want: []string{"010", "11", "0b11", "(0b11) + 1", "1_000", "(1_000) + 1"},
		},
		{
			name: "negative hex anchor",
			body: "A = -0x10, B",
			want: []string{"-0x10", "-15"},
		},
		{
			name: "trailing comma",
			body: "A = 3, B,",
			want: []string{"3", "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "enum eTest {\n" + tt.body + "\n};"
			enums, diags := ParseEnums("test.enum", src)
			if len(diags) > 0 {
				t.Fatalf("unexpected errors: %v", diags)
			}
			if len(enums) != 1 {
				t.Fatalf("expected 1 enum, got %d", len(enums))
			}
			if diff := cmp.Diff(tt.want, memberValues(enums[0])); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseIntLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		ok       bool
	}{
		{"42", 42, true},
		{"-7", -7, true},
		{"010", 10, true},
		{"0x1F", 31, true},
		{"0X1f", 31, true},
		{"-0x10", -16, true},
		{"0xFFFFFFFFFFFFFFFF", -1, true},
		{"-9223372036854775808", -9223372036854775808, true},
		{"9223372036854775808", 0, false},
		{"0b11", 0, false},
		{"0o17", 0, false},
		{"1_000", 0, false},
		{"+5", 0, false},
		{"--5", 0, false},
		{"0x", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseIntLiteral(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("expected %d (%v), got %d (%v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestParseEnumHeader(t *testing.T) {
	src := `
/// Seat indices
enum eVehicleSeat : int {
	/// any free passenger seat
	SEAT_ANY = -2,
	SEAT_DRIVER,
};

enum eOther { X };
`
	enums, diags := ParseEnums("seats.enum", src)
	if len(diags) > 0 {
		t.Fatalf("unexpected errors: %v", diags)
	}
	if len(enums) != 2 {
		t.Fatalf("expected 2 enums, got %d", len(enums))
	}
	seat := enums[0]
	if seat.Name != "eVehicleSeat" || seat.BaseType != "int" {
		t.Errorf("unexpected header: %s : %s", seat.Name, seat.BaseType)
	}
	if seat.Members[0].Comment != "any free passenger seat" {
		t.Errorf("expected member comment, got %q", seat.Members[0].Comment)
	}
	if !seat.Members[0].Explicit || seat.Members[1].Explicit {
		t.Error("explicit flags not preserved")
	}
	if seat.SourceFile != "seats.enum" {
		t.Errorf("expected source file recorded, got %q", seat.SourceFile)
	}
}

func TestParseEnumErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing semicolon", "enum A { X }", "expected ';'"},
		{"missing brace", "enum A X };", "expected '{'"},
		{"wrong keyword", "struct A { X };", "expected 'enum'"},
		{"duplicate member", "enum A { X, X };", "duplicate enum member X"},
		{"empty value", "enum A { X = , Y };", "expected value for enum member X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := ParseEnums("bad.enum", tt.src)
			if len(diags) != 1 {
				t.Fatalf("expected one error, got %v", diags)
			}
			if !strings.Contains(diags[0].Message, tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, diags[0].Message)
			}
		})
	}
}

func TestFillEnumValuesIsIdempotentForExplicit(t *testing.T) {
	members := []model.EnumMember{
		{Name: "A", Value: "7", Explicit: true},
		{Name: "B", Value: "-3", Explicit: true},
		{Name: "C", Value: "0xFF", Explicit: true},
	}
	want := append([]model.EnumMember(nil), members...)
	FillEnumValues(members)
	if diff := cmp.Diff(want, members); diff != "" {
		t.Errorf("explicit members changed (-want +got):\n%s", diff)
	}
}
