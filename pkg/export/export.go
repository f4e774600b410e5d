// Package export implements the JSON form of a native database.
//
// Design: a separate schema with snake_case tags mirrors the model, so the model stays
// free of serialization concerns. Maps become name-sorted arrays and hashes become hex
// strings; Unmarshal restores the exact Database that Marshal was given.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

// SchemaVersion is bumped whenever the JSON layout changes incompatibly
const SchemaVersion = 1

type databaseJSON struct {
	Version        int             `json:"version"`
	Namespaces     []namespaceJSON `json:"namespaces"`
	Enums          []enumJSON      `json:"enums,omitempty"`
	Structs        []structJSON    `json:"structs,omitempty"`
	SharedExamples []exampleJSON   `json:"shared_examples,omitempty"`
}

type namespaceJSON struct {
	Name    string       `json:"name"`
	Natives []nativeJSON `json:"natives"`
}

type typeJSON struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Pointer   bool   `json:"pointer,omitempty"`
	ArraySize int    `json:"array_size,omitempty"`
}

type paramJSON struct {
	Name         string   `json:"name"`
	Type         typeJSON `json:"type"`
	DefaultValue string   `json:"default_value,omitempty"`
	HasDefault   bool     `json:"has_default,omitempty"`
	Variadic     bool     `json:"variadic,omitempty"`
	This         bool     `json:"this,omitempty"`
	NotNull      bool     `json:"not_null,omitempty"`
	Nullable     bool     `json:"nullable,omitempty"`
	In           bool     `json:"in,omitempty"`
	Description  string   `json:"description,omitempty"`
}

type exampleJSON struct {
	Name string `json:"name,omitempty"`
	Lang string `json:"lang"`
	Code string `json:"code"`
}

type refJSON struct {
	Name string `json:"name"`
	Game string `json:"game,omitempty"`
}

type calloutJSON struct {
	Kind        string `json:"kind"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}

type nativeJSON struct {
	Name              string        `json:"name"`
	Hash              string        `json:"hash"`
	Namespace         string        `json:"namespace"`
	Description       string        `json:"description,omitempty"`
	Parameters        []paramJSON   `json:"parameters,omitempty"`
	ReturnType        typeJSON      `json:"return_type"`
	ReturnDescription string        `json:"return_description,omitempty"`
	Aliases           []string      `json:"aliases,omitempty"`
	RelatedExamples   []exampleJSON `json:"related_examples,omitempty"`
	ExampleRefs       []string      `json:"example_refs,omitempty"`
	UsedEnums         []string      `json:"used_enums,omitempty"`
	UsedStructs       []string      `json:"used_structs,omitempty"`
	References        []refJSON     `json:"references,omitempty"`
	Callouts          []calloutJSON `json:"callouts,omitempty"`
	ApiSet            string        `json:"apiset"`
	SourceFile        string        `json:"source_file,omitempty"`
}

type memberJSON struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Explicit bool   `json:"explicit,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

type enumJSON struct {
	Name       string       `json:"name"`
	BaseType   string       `json:"base_type,omitempty"`
	Members    []memberJSON `json:"members"`
	SourceFile string       `json:"source_file,omitempty"`
}

type fieldJSON struct {
	Name              string   `json:"name"`
	Type              typeJSON `json:"type"`
	ArraySize         int      `json:"array_size,omitempty"`
	AlignmentOverride int      `json:"alignment,omitempty"`
	Input             bool     `json:"in,omitempty"`
	Output            bool     `json:"out,omitempty"`
	Padding           bool     `json:"padding,omitempty"`
	NestedStruct      string   `json:"nested_struct,omitempty"`
	Nested            bool     `json:"nested,omitempty"`
	Comment           string   `json:"comment,omitempty"`
}

type structJSON struct {
	Name             string      `json:"name"`
	DefaultAlignment int         `json:"alignment,omitempty"`
	Fields           []fieldJSON `json:"fields"`
	SourceFile       string      `json:"source_file,omitempty"`
}

// Marshal encodes db as indented JSON
func Marshal(db *model.Database) ([]byte, error) {
	data, err := json.MarshalIndent(fromDatabase(db), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding database: %w", err)
	}
	return data, nil
}

// Unmarshal decodes JSON produced by Marshal
func Unmarshal(data []byte) (*model.Database, error) {
	var doc databaseJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding database: %w", err)
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d (want %d)", doc.Version, SchemaVersion)
	}
	return doc.toDatabase()
}

func fromDatabase(db *model.Database) databaseJSON {
	doc := databaseJSON{Version: SchemaVersion, Namespaces: []namespaceJSON{}}
	for _, ns := range db.Namespaces {
		nj := namespaceJSON{Name: ns.Name, Natives: []nativeJSON{}}
		for _, n := range ns.Natives {
			nj.Natives = append(nj.Natives, fromNative(n))
		}
		doc.Namespaces = append(doc.Namespaces, nj)
	}
	for _, name := range db.EnumNames() {
		doc.Enums = append(doc.Enums, fromEnum(db.Enums[name]))
	}
	for _, name := range db.StructNames() {
		doc.Structs = append(doc.Structs, fromStruct(db.Structs[name]))
	}
	for _, name := range sortedExampleNames(db.SharedExamples) {
		doc.SharedExamples = append(doc.SharedExamples, fromExample(db.SharedExamples[name]))
	}
	return doc
}

func fromType(t types.TypeInfo) typeJSON {
	return typeJSON{Name: t.Name, Category: t.Category.String(), Pointer: t.IsPointer, ArraySize: t.ArraySize}
}

func fromExample(e model.Example) exampleJSON {
	return exampleJSON{Name: e.Name, Lang: e.Lang, Code: e.Code}
}

func fromNative(n *model.NativeDefinition) nativeJSON {
	nj := nativeJSON{
		Name:              n.Name,
		Hash:              fmt.Sprintf("0x%016X", n.Hash),
		Namespace:         n.Namespace,
		Description:       n.Description,
		ReturnType:        fromType(n.ReturnType),
		ReturnDescription: n.ReturnDescription,
		Aliases:           n.Aliases,
		ExampleRefs:       n.ExampleRefs,
		UsedEnums:         n.UsedEnums,
		UsedStructs:       n.UsedStructs,
		ApiSet:            n.ApiSet,
		SourceFile:        n.SourceFile,
	}
	for _, p := range n.Parameters {
		nj.Parameters = append(nj.Parameters, paramJSON{
			Name:         p.Name,
			Type:         fromType(p.Type),
			DefaultValue: p.DefaultValue,
			HasDefault:   p.HasDefault,
			Variadic:     p.Variadic,
			This:         p.Attributes.This,
			NotNull:      p.Attributes.NotNull,
			Nullable:     p.Attributes.Nullable,
			In:           p.Attributes.In,
			Description:  p.Description,
		})
	}
	for _, e := range n.RelatedExamples {
		nj.RelatedExamples = append(nj.RelatedExamples, fromExample(e))
	}
	for _, r := range n.References {
		nj.References = append(nj.References, refJSON{Name: r.Name, Game: r.Game})
	}
	for _, c := range n.Callouts {
		nj.Callouts = append(nj.Callouts, calloutJSON{Kind: string(c.Kind), Title: c.Title, Description: c.Description})
	}
	return nj
}

func fromEnum(e *model.EnumDefinition) enumJSON {
	ej := enumJSON{Name: e.Name, BaseType: e.BaseType, SourceFile: e.SourceFile, Members: []memberJSON{}}
	for _, m := range e.Members {
		ej.Members = append(ej.Members, memberJSON{Name: m.Name, Value: m.Value, Explicit: m.Explicit, Comment: m.Comment})
	}
	return ej
}

func fromStruct(s *model.StructDefinition) structJSON {
	sj := structJSON{Name: s.Name, DefaultAlignment: s.DefaultAlignment, SourceFile: s.SourceFile, Fields: []fieldJSON{}}
	for _, f := range s.Fields {
		sj.Fields = append(sj.Fields, fieldJSON{
			Name:              f.Name,
			Type:              fromType(f.Type),
			ArraySize:         f.ArraySize,
			AlignmentOverride: f.AlignmentOverride,
			Input:             f.IsInput,
			Output:            f.IsOutput,
			Padding:           f.IsPadding,
			Nested:            f.IsNestedStruct,
			NestedStruct:      f.NestedStructName,
			Comment:           f.Comment,
		})
	}
	return sj
}

func (doc databaseJSON) toDatabase() (*model.Database, error) {
	db := model.NewDatabase()
	for _, nj := range doc.Namespaces {
		ns := &model.Namespace{Name: nj.Name}
		for _, n := range nj.Natives {
			native, err := n.toNative()
			if err != nil {
				return nil, err
			}
			ns.Natives = append(ns.Natives, native)
		}
		db.Namespaces = append(db.Namespaces, ns)
	}
	for _, ej := range doc.Enums {
		if _, dup := db.Enums[ej.Name]; dup {
			return nil, fmt.Errorf("duplicate enum %s", ej.Name)
		}
		e := &model.EnumDefinition{Name: ej.Name, BaseType: ej.BaseType, SourceFile: ej.SourceFile}
		for _, m := range ej.Members {
			e.Members = append(e.Members, model.EnumMember{Name: m.Name, Value: m.Value, Explicit: m.Explicit, Comment: m.Comment})
		}
		db.Enums[e.Name] = e
	}
	for _, sj := range doc.Structs {
		if _, dup := db.Structs[sj.Name]; dup {
			return nil, fmt.Errorf("duplicate struct %s", sj.Name)
		}
		s := &model.StructDefinition{Name: sj.Name, DefaultAlignment: sj.DefaultAlignment, SourceFile: sj.SourceFile}
		for _, f := range sj.Fields {
			t, err := f.Type.toType()
			if err != nil {
				return nil, fmt.Errorf("struct %s field %s: %w", sj.Name, f.Name, err)
			}
			s.Fields = append(s.Fields, model.StructField{
				Name:              f.Name,
				Type:              t,
				ArraySize:         f.ArraySize,
				AlignmentOverride: f.AlignmentOverride,
				IsInput:           f.Input,
				IsOutput:          f.Output,
				IsPadding:         f.Padding,
				IsNestedStruct:    f.Nested,
				NestedStructName:  f.NestedStruct,
				Comment:           f.Comment,
			})
		}
		db.Structs[s.Name] = s
	}
	for _, e := range doc.SharedExamples {
		db.SharedExamples[e.Name] = e.toExample()
	}
	return db, nil
}

func (t typeJSON) toType() (types.TypeInfo, error) {
	cat, ok := types.ParseCategory(t.Category)
	if !ok {
		return types.TypeInfo{}, fmt.Errorf("unknown category %q for type %s", t.Category, t.Name)
	}
	return types.TypeInfo{Name: t.Name, Category: cat, IsPointer: t.Pointer, ArraySize: t.ArraySize}, nil
}

func (e exampleJSON) toExample() model.Example {
	return model.Example{Name: e.Name, Lang: e.Lang, Code: e.Code}
}

func (nj nativeJSON) toNative() (*model.NativeDefinition, error) {
	hash, err := strconv.ParseUint(nj.Hash, 0, 64)
	if err != nil {
		return nil, fmt.Errorf("native %s: invalid hash %q", nj.Name, nj.Hash)
	}
	ret, err := nj.ReturnType.toType()
	if err != nil {
		return nil, fmt.Errorf("native %s return: %w", nj.Name, err)
	}
	n := &model.NativeDefinition{
		Name:              nj.Name,
		Hash:              hash,
		Namespace:         nj.Namespace,
		Description:       nj.Description,
		ReturnType:        ret,
		ReturnDescription: nj.ReturnDescription,
		Aliases:           nj.Aliases,
		ExampleRefs:       nj.ExampleRefs,
		UsedEnums:         nj.UsedEnums,
		UsedStructs:       nj.UsedStructs,
		ApiSet:            nj.ApiSet,
		SourceFile:        nj.SourceFile,
	}
	for _, p := range nj.Parameters {
		t, err := p.Type.toType()
		if err != nil {
			return nil, fmt.Errorf("native %s parameter %s: %w", nj.Name, p.Name, err)
		}
		n.Parameters = append(n.Parameters, model.NativeParameter{
			Name:         p.Name,
			Type:         t,
			DefaultValue: p.DefaultValue,
			HasDefault:   p.HasDefault,
			Variadic:     p.Variadic,
			Attributes: model.ParameterAttributes{
				This:     p.This,
				NotNull:  p.NotNull,
				Nullable: p.Nullable,
				In:       p.In,
			},
			Description: p.Description,
		})
	}
	for _, e := range nj.RelatedExamples {
		n.RelatedExamples = append(n.RelatedExamples, e.toExample())
	}
	for _, r := range nj.References {
		n.References = append(n.References, model.NativeRef{Name: r.Name, Game: r.Game})
	}
	for _, c := range nj.Callouts {
		n.Callouts = append(n.Callouts, model.Callout{Kind: model.CalloutKind(c.Kind), Title: c.Title, Description: c.Description})
	}
	return n, nil
}

func sortedExampleNames(examples map[string]model.Example) []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
