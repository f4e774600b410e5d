// Package golang - Owner wrapper types
package golang

import (
	"bytes"
	"text/template"

	"github.com/GriffinCanCode/nativedb/pkg/classify"
	"github.com/GriffinCanCode/nativedb/pkg/codegen"
)

const ownersFile = "owners.go"

// ownerType is the template view of one wrapper type
type ownerType struct {
	Name     string
	Kind     string
	Parent   string // Go name of the embedded parent, empty for roots
	Field    string // raw value field of the root
	Accessor string // Handle or Hash
	Raw      string // int32 or uint32
}

var ownersTmpl = template.Must(template.New("owners").Parse(`{{range .}}
{{- if .Parent}}
// {{.Name}} is a {{.Parent}} with {{.Kind}} natives of its own.
type {{.Name}} struct {
	{{.Parent}}
}

// {{.Name}}From{{.Accessor}} wraps a raw {{.Accessor}} value.
func {{.Name}}From{{.Accessor}}({{.Field}} {{.Raw}}) {{.Name}} {
	return {{.Name}}{ {{- .Parent}}From{{.Accessor}}({{.Field}})}
}
{{else}}
// {{.Name}} wraps a raw {{.Kind}} value.
type {{.Name}} struct {
	{{.Field}} {{.Raw}}
}

// {{.Name}}From{{.Accessor}} wraps a raw {{.Accessor}} value.
func {{.Name}}From{{.Accessor}}({{.Field}} {{.Raw}}) {{.Name}} {
	return {{.Name}}{ {{- .Field}}: {{.Field -}} }
}

// {{.Accessor}} returns the raw value passed to natives.
func (o {{.Name}}) {{.Accessor}}() {{.Raw}} {
	return o.{{.Field}}
}
{{end}}
{{end}}`))

// writeOwners emits a wrapper type for every owner the classifier can produce
func (g *Generator) writeOwners() error {
	owners := g.classifier.Owners()
	if len(owners) == 0 {
		return nil
	}

	known := make(map[string]bool, len(owners))
	for _, o := range owners {
		known[o.Name] = true
	}

	views := make([]ownerType, 0, len(owners))
	for _, o := range owners {
		accessor, raw := g.rawValue(o)
		view := ownerType{
			Name:     g.Identifier(o.Name, codegen.RoleType),
			Kind:     o.Kind.String(),
			Accessor: accessor,
			Raw:      raw,
			Field:    "handle",
		}
		if accessor == "Hash" {
			view.Field = "hash"
		}
		if o.Parent != "" && known[o.Parent] {
			view.Parent = g.Identifier(o.Parent, codegen.RoleType)
		}
		views = append(views, view)
	}

	var buf bytes.Buffer
	if err := ownersTmpl.Execute(&buf, views); err != nil {
		return err
	}
	g.file(ownersFile).Write(buf.Bytes())
	return nil
}

// rawValue returns the accessor and Go type of the value an owner wraps. It is
// decided by the owner's root so embedded parents line up.
func (g *Generator) rawValue(o classify.Owner) (string, string) {
	kind := o.Kind
	for _, name := range g.classifier.Forest().Ancestors(o.Name) {
		if k, ok := g.classifier.Kind(name); ok {
			kind = k
		}
	}
	if kind == classify.KindModel {
		return "Hash", "uint32"
	}
	return "Handle", "int32"
}
