// Package document - Unit tests for document assembly
package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

const fence = "```"

const setCoordsDoc = `---
ns: ENTITY
apiset: client
aliases: ["_SET_ENTITY_COORDS_2"]
---
## SET_ENTITY_COORDS

` + fence + `c
// 0x06843DA7060A026B 0x8D3A0F82
void SET_ENTITY_COORDS(Entity entity, float xPos, float yPos, float zPos);
` + fence + `

Teleports the entity. See [native: GET_ENTITY_COORDS | gta5] and [enum: eSeat].
Also [enum: eSeat] again and [example: teleport].

> [!NOTE] Heads up | Coordinates are world space.

## Parameters
* **entity**: The entity to move.
* **xPos**: X coordinate.
* **yPos**: Y coordinate.
* **zPos**: Z coordinate.

## Examples
` + fence + `lua
SetEntityCoords(ped, 0.0, 0.0, 72.0)
` + fence + `
`

func TestAssembleFullDocument(t *testing.T) {
	res := Assemble("natives/ENTITY/SET_ENTITY_COORDS.md", []byte(setCoordsDoc))
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	n := res.Native
	if n.Name != "SET_ENTITY_COORDS" || n.Namespace != "ENTITY" || n.ApiSet != "client" {
		t.Errorf("unexpected identity: %s %s %s", n.Name, n.Namespace, n.ApiSet)
	}
	if n.Hash != 0x06843DA7060A026B {
		t.Errorf("expected hash 0x06843DA7060A026B, got %#x", n.Hash)
	}
	if diff := cmp.Diff([]string{"_SET_ENTITY_COORDS_2"}, n.Aliases); diff != "" {
		t.Errorf("aliases (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(n.Description, "Teleports the entity.") {
		t.Errorf("unexpected description %q", n.Description)
	}
	if strings.Contains(n.Description, "## Parameters") {
		t.Errorf("description leaked into the next section: %q", n.Description)
	}
	if n.Parameters[0].Description != "The entity to move." {
		t.Errorf("unexpected entity doc %q", n.Parameters[0].Description)
	}
	if n.Parameters[0].Type.Category != types.Handle {
		t.Errorf("expected handle parameter, got %s", n.Parameters[0].Type.Category)
	}

	if diff := cmp.Diff([]string{"eSeat"}, n.UsedEnums); diff != "" {
		t.Errorf("used enums (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"teleport"}, n.ExampleRefs); diff != "" {
		t.Errorf("example refs (-want +got):\n%s", diff)
	}
	wantRefs := []model.NativeRef{{Name: "GET_ENTITY_COORDS", Game: "gta5"}}
	if diff := cmp.Diff(wantRefs, n.References); diff != "" {
		t.Errorf("references (-want +got):\n%s", diff)
	}
	wantCallouts := []model.Callout{{Kind: model.CalloutNote, Title: "Heads up", Description: "Coordinates are world space."}}
	if diff := cmp.Diff(wantCallouts, n.Callouts); diff != "" {
		t.Errorf("callouts (-want +got):\n%s", diff)
	}
	wantExamples := []model.Example{{Lang: "lua", Code: "SetEntityCoords(ped, 0.0, 0.0, 72.0)"}}
	if diff := cmp.Diff(wantExamples, n.RelatedExamples); diff != "" {
		t.Errorf("examples (-want +got):\n%s", diff)
	}
}

func doc(header, signature, rest string) string {
	return "---\n" + header + "---\n## " + nameOf(signature) + "\n\n" +
		fence + "c\n// 0x1234\n" + signature + "\n" + fence + "\n\n" + rest
}

func nameOf(signature string) string {
	open := strings.IndexByte(signature, '(')
	fields := strings.Fields(signature[:open])
	return fields[len(fields)-1]
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		line int
	}{
		{
			name: "missing opening delimiter",
			src:  "ns: X\n## A\n",
			want: "missing header block",
			line: 1,
		},
		{
			name: "missing closing delimiter",
			src:  "---\nns: X\n## A\n",
			want: "unterminated header block",
		},
		{
			name: "bad yaml",
			src:  "---\nns: [unclosed\n---\n## A\n",
			want: "invalid header block",
		},
		{
			name: "unknown header key",
			src:  "---\nns: X\ncolour: red\n---\n## A\n",
			want: "invalid header block",
			line: 3,
		},
		{
			name: "bad apiset",
			src:  doc("ns: X\napiset: web\n", "void A();", ""),
			want: "invalid apiset",
		},
		{
			name: "disallowed heading",
			src:  doc("ns: X\n", "void A();", "## Notes\nsome text\n"),
			want: `heading "Notes" is not allowed here`,
		},
		{
			name: "missing parameters section",
			src:  doc("ns: X\n", "void A(int a);", "text\n"),
			want: "missing Parameters section",
		},
		{
			name: "count mismatch",
			src:  doc("ns: X\n", "void A(int a, int b);", "## Parameters\n* **a**: first\n"),
			want: "parameter count mismatch",
		},
		{
			name: "name mismatch",
			src:  doc("ns: X\n", "void A(int a);", "## Parameters\n* **z**: wrong\n"),
			want: "parameter name mismatch",
		},
		{
			name: "order mismatch",
			src:  doc("ns: X\n", "void A(int a, int b);", "## Parameters\n* **b**: second\n* **a**: first\n"),
			want: "parameter order mismatch",
		},
		{
			name: "malformed item",
			src:  doc("ns: X\n", "void A(int a);", "## Parameters\n* a: first\n"),
			want: "must look like **name**: description",
		},
		{
			name: "heading name differs",
			src:  "---\nns: X\n---\n## B\n\n" + fence + "\n// 0x1\nvoid A();\n" + fence + "\n",
			want: "does not match signature name",
		},
		{
			name: "missing hash",
			src:  "---\nns: X\n---\n## A\n\n" + fence + "\nvoid A();\n" + fence + "\n",
			want: "needs a hash comment line",
		},
		{
			name: "hash line not a comment",
			src:  "---\nns: X\n---\n## A\n\n" + fence + "\nhash\nvoid A();\n" + fence + "\n",
			want: "must be a hash comment",
		},
		{
			name: "signature error is positioned in the document",
			src:  doc("ns: X\n", "void A(@in int a);", "## Parameters\n* **a**: x\n"),
			want: "@in is only valid on pointer parameters",
			line: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Assemble("natives/X/A.md", []byte(tt.src))
			if !res.HasErrors() {
				t.Fatalf("expected error containing %q, got none", tt.want)
			}
			if res.Native != nil {
				t.Error("expected no native when errors are present")
			}
			found := false
			for _, d := range res.Errors {
				if strings.Contains(d.Message, tt.want) {
					found = true
					if tt.line != 0 && d.Line != tt.line {
						t.Errorf("expected line %d, got %d", tt.line, d.Line)
					}
				}
			}
			if !found {
				t.Errorf("expected error containing %q, got %v", tt.want, res.Errors)
			}
		})
	}
}

func TestAssembleMissingReturnIsWarning(t *testing.T) {
	src := doc("ns: PLAYER\n", "int GET_PLAYER_INDEX();", "Returns the local player.\n")
	res := Assemble("natives/PLAYER/GET_PLAYER_INDEX.md", []byte(src))
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Message, "missing Return value section") {
		t.Errorf("expected missing return warning, got %v", res.Warnings)
	}
	if res.Native == nil {
		t.Fatal("expected native despite warning")
	}
}

func TestAssembleReturnDescriptionAndNamespaceFallback(t *testing.T) {
	src := doc("apiset: server\n", "BOOL IS_READY();", "## Return value\nTrue when ready.\n")
	res := Assemble("natives/CFX/IS_READY.md", []byte(src))
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	n := res.Native
	if n.ReturnDescription != "True when ready." {
		t.Errorf("unexpected return description %q", n.ReturnDescription)
	}
	if n.Namespace != "CFX" || n.ApiSet != "server" {
		t.Errorf("expected CFX/server, got %s/%s", n.Namespace, n.ApiSet)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Message, "using directory name CFX") {
		t.Errorf("expected namespace fallback warning, got %v", res.Warnings)
	}
}

func TestAssembleSubheadingsStayInSection(t *testing.T) {
	src := doc("ns: X\n", "void A();", "Intro.\n\n### Details\nMore.\n")
	res := Assemble("natives/X/A.md", []byte(src))
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if !strings.Contains(res.Native.Description, "### Details") {
		t.Errorf("expected nested heading inside description, got %q", res.Native.Description)
	}
}

func TestUnknownCalloutWarns(t *testing.T) {
	src := doc("ns: X\n", "void A();", "> [!DANGER] boom\n")
	res := Assemble("natives/X/A.md", []byte(src))
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Message, "unknown callout kind DANGER") {
		t.Errorf("expected callout warning, got %v", res.Warnings)
	}
}
