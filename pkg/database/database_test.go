package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/GriffinCanCode/nativedb/pkg/logger"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

func TestMain(m *testing.M) {
	logger.Discard()
	os.Exit(m.Run())
}

func nativeDoc(ns, name string, hash uint64, extra string) string {
	return fmt.Sprintf("---\nns: %s\n---\n## %s\n\n```c\n// 0x%016X\nvoid %s();\n```\n\n%s\n", ns, name, hash, name, extra)
}

func tree() fstest.MapFS {
	return fstest.MapFS{
		"natives/ENTITY/DELETE_ENTITY.md": {Data: []byte(nativeDoc("ENTITY", "DELETE_ENTITY", 0x1, "Deletes it. Uses [enum: eSeat] and [example: spawn]."))},
		"natives/MISC/WAIT.md":            {Data: []byte(nativeDoc("MISC", "WAIT", 0x2, "Yields. See [struct: Missing]."))},
		"natives/MISC/BROKEN.md":          {Data: []byte("no header here")},
		"enums/seat.enum":                 {Data: []byte("enum eSeat { Driver = -1, Passenger };")},
		"structs/pos.struct":              {Data: []byte("struct Pos { float x; float y; };")},
		"examples/spawn.lua":              {Data: []byte("SpawnPed()")},
		"README.md":                       {Data: []byte("# natives")},
		".git/config.md":                  {Data: []byte("ignored")},
		"notes.txt":                       {Data: []byte("ignored")},
	}
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		path     string
		expected Kind
	}{
		{"natives/ENTITY/X.md", KindNative},
		{"X.md", KindNative},
		{"README.md", KindUnknown},
		{"docs/readme.md", KindUnknown},
		{"enums/a.enum", KindEnum},
		{"a.struct", KindStruct},
		{"examples/spawn.lua", KindExample},
		{"natives/examples/x.md", KindExample},
		{"examples.md", KindNative},
		{"notes.txt", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := KindFor(tt.path); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	res, err := LoadFS(context.Background(), tree(), Options{Workers: 4})
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}

	var paths []string
	for _, f := range res.Files {
		paths = append(paths, f.Path)
	}
	want := []string{
		"enums/seat.enum",
		"examples/spawn.lua",
		"natives/ENTITY/DELETE_ENTITY.md",
		"natives/MISC/BROKEN.md",
		"natives/MISC/WAIT.md",
		"structs/pos.struct",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}

	db := res.DB
	if db.NativeCount() != 2 {
		t.Errorf("expected 2 natives, got %d", db.NativeCount())
	}
	if db.Native("ENTITY", "DELETE_ENTITY") == nil || db.Native("MISC", "WAIT") == nil {
		t.Error("expected both valid natives in the database")
	}
	if _, ok := db.Enums["eSeat"]; !ok {
		t.Error("expected enum eSeat")
	}
	if _, ok := db.Structs["Pos"]; !ok {
		t.Error("expected struct Pos")
	}
	if diff := cmp.Diff(model.Example{Name: "spawn", Lang: "lua", Code: "SpawnPed()"}, db.SharedExamples["spawn"]); diff != "" {
		t.Errorf("example (-want +got):\n%s", diff)
	}

	if !res.HasErrors() {
		t.Fatal("expected the broken document to be reported")
	}
	for _, f := range res.Files {
		switch f.Path {
		case "natives/MISC/BROKEN.md":
			if !f.HasErrors() || f.Native != nil {
				t.Errorf("expected BROKEN.md to be rejected, got %+v", f)
			}
		default:
			if f.HasErrors() {
				t.Errorf("%s: unexpected errors %v", f.Path, f.Errors)
			}
		}
	}
}

func TestUnresolvedReferencesWarn(t *testing.T) {
	res, err := LoadFS(context.Background(), tree(), Options{Workers: 1})
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}

	var warnings []string
	for _, d := range res.Diagnostics().Warnings {
		if strings.Contains(d.Message, "references unknown") {
			warnings = append(warnings, d.File+": "+d.Message)
		}
	}
	want := []string{"natives/MISC/WAIT.md: native WAIT references unknown struct Missing"}
	if diff := cmp.Diff(want, warnings); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}

func TestDuplicatesAreErrorsOnLaterFile(t *testing.T) {
	sources := []Source{
		{Path: "b/WAIT.md", Kind: KindNative, Content: []byte(nativeDoc("MISC", "WAIT", 0x2, ""))},
		{Path: "a/WAIT.md", Kind: KindNative, Content: []byte(nativeDoc("MISC", "WAIT", 0x3, ""))},
		{Path: "one.enum", Kind: KindEnum, Content: []byte("enum eA { X };")},
		{Path: "two.enum", Kind: KindEnum, Content: []byte("enum eA { Y }; enum eB { Z };")},
		{Path: "one.struct", Kind: KindStruct, Content: []byte("struct S { int a; };")},
		{Path: "two.struct", Kind: KindStruct, Content: []byte("struct T { int c; }; struct S { int b; };")},
		{Path: "three.struct", Kind: KindStruct, Content: []byte("struct U { int d; }; struct U { int e; };")},
	}
	res, err := Build(context.Background(), sources, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var got []string
	for _, d := range res.Diagnostics().Errors {
		got = append(got, d.Error())
	}
	want := []string{
		"b/WAIT.md: duplicate native WAIT in namespace MISC (first defined in a/WAIT.md)",
		"three.struct: duplicate struct U (first defined in three.struct)",
		"two.enum: duplicate enum eA (first defined in one.enum)",
		"two.struct: duplicate struct S (first defined in one.struct)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}

	if n := res.DB.Native("MISC", "WAIT"); n == nil || n.Hash != 0x3 {
		t.Errorf("expected the first file in path order to win, got %+v", n)
	}
	if res.DB.Enums["eA"].Members[0].Name != "X" {
		t.Error("expected eA from one.enum")
	}
	for _, name := range []string{"eB"} {
		if _, ok := res.DB.Enums[name]; ok {
			t.Errorf("expected enum %s from a failed file to be dropped", name)
		}
	}
	for _, name := range []string{"T", "U"} {
		if _, ok := res.DB.Structs[name]; ok {
			t.Errorf("expected struct %s from a failed file to be dropped", name)
		}
	}
	if res.DB.Structs["S"].Fields[0].Name != "a" {
		t.Error("expected S from one.struct")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	var sources []Source
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("NATIVE_%02d", i)
		sources = append(sources, Source{
			Path:    fmt.Sprintf("natives/MISC/%s.md", name),
			Kind:    KindNative,
			Content: []byte(nativeDoc("MISC", name, uint64(i+1), "")),
		})
	}
	sources = append(sources, Source{Path: "natives/MISC/BAD.md", Kind: KindNative, Content: []byte("---\n")})

	seq, err := Build(context.Background(), sources, Options{Workers: 1})
	if err != nil {
		t.Fatalf("sequential build failed: %v", err)
	}
	par, err := Build(context.Background(), sources, Options{Workers: 8})
	if err != nil {
		t.Fatalf("parallel build failed: %v", err)
	}
	if diff := cmp.Diff(seq.DB, par.DB); diff != "" {
		t.Errorf("database differs between worker counts (-seq +par):\n%s", diff)
	}
	if diff := cmp.Diff(seq.Diagnostics(), par.Diagnostics()); diff != "" {
		t.Errorf("diagnostics differ between worker counts (-seq +par):\n%s", diff)
	}
	if seq.DB.NativeCount() != 40 {
		t.Errorf("expected 40 natives, got %d", seq.DB.NativeCount())
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, []Source{{Path: "a.enum", Kind: KindEnum, Content: []byte("enum eA { X };")}}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
