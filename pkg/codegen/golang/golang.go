// Package golang implements Go binding generation for native databases.
//
// Design: one codegen.Target writing Go source per owner, namespace, struct set and enum
// set. Generated calls go through the runtime package (pkg/native); handles become small
// wrapper structs over their raw value.
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"github.com/GriffinCanCode/nativedb/pkg/classify"
	"github.com/GriffinCanCode/nativedb/pkg/codegen"
	"github.com/GriffinCanCode/nativedb/pkg/layout"
	"github.com/GriffinCanCode/nativedb/pkg/logger"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// DefaultRuntime is the import path generated code calls into
const DefaultRuntime = "github.com/GriffinCanCode/nativedb/pkg/native"

// Options configure the generated package
type Options struct {
	Package    string // default "natives"
	Runtime    string // default DefaultRuntime
	Classifier *classify.Classifier
}

// Generator is a codegen.Target producing Go source
type Generator struct {
	pkg        string
	runtime    string
	classifier *classify.Classifier

	files map[string]*bytes.Buffer
	out   *bytes.Buffer

	db   *model.Database
	calc *layout.Calculator

	class   codegen.ClassPlan
	members map[string]string // raw member name → Go constant, for the current enum
}

var _ codegen.Target = (*Generator)(nil)

// New creates a generator
func New(opts Options) *Generator {
	g := &Generator{
		pkg:        opts.Package,
		runtime:    opts.Runtime,
		classifier: opts.Classifier,
	}
	if g.pkg == "" {
		g.pkg = "natives"
	}
	if g.runtime == "" {
		g.runtime = DefaultRuntime
	}
	if g.classifier == nil {
		g.classifier = classify.Default()
	}
	return g
}

// Generate returns file name → Go source for the whole database
func (g *Generator) Generate(db *model.Database, calc *layout.Calculator) (map[string]string, error) {
	logger.Debug("Generating Go bindings", "package", g.pkg, "natives", db.NativeCount())

	g.files = make(map[string]*bytes.Buffer)
	g.out = nil
	g.db, g.calc = db, calc

	if err := g.writeOwners(); err != nil {
		return nil, fmt.Errorf("generating owner types: %w", err)
	}
	codegen.Generate(db, g.classifier, calc, g)

	files, err := g.render()
	if err != nil {
		return nil, err
	}
	logger.Info("Go binding generation complete", "files", len(files))
	return files, nil
}

// GenerateWithValidation generates, gofmt-validates and checks every file for
// clashing package-level declarations
func (g *Generator) GenerateWithValidation(db *model.Database, calc *layout.Calculator) (map[string]string, error) {
	log := logger.With("target", "go", "package", g.pkg)

	files, err := g.Generate(db, calc)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	for _, name := range sortedNames(files) {
		formatted, err := format.Source([]byte(files[name]))
		if err != nil {
			log.Error("Generated Go validation failed", "file", name, "error", err)
			return files, fmt.Errorf("validation failed for %s: %w", name, err)
		}
		files[name] = string(formatted)
	}
	if err := checkDeclarations(files); err != nil {
		log.Error("Generated Go declarations clash", "error", err)
		return files, fmt.Errorf("validation failed: %w", err)
	}

	log.Info("Go bindings generated and validated successfully", "files", len(files))
	return files, nil
}

// file selects (and creates) the output buffer for name
func (g *Generator) file(name string) *bytes.Buffer {
	buf, ok := g.files[name]
	if !ok {
		buf = &bytes.Buffer{}
		g.files[name] = buf
	}
	return buf
}

var headerTmpl = template.Must(template.New("header").Parse(`// Code generated by nativedb. DO NOT EDIT.

package {{.Package}}
{{if .Runtime}}
import native "{{.Runtime}}"
{{end}}
`))

func (g *Generator) render() (map[string]string, error) {
	files := make(map[string]string, len(g.files))
	for name, body := range g.files {
		var buf bytes.Buffer
		data := map[string]string{"Package": g.pkg}
		if bytes.Contains(body.Bytes(), []byte("native.")) {
			data["Runtime"] = g.runtime
		}
		if err := headerTmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", name, err)
		}
		buf.WriteByte('\n')
		buf.Write(body.Bytes())
		files[name] = buf.String()
	}
	return files, nil
}

func sortedNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// classFile names the file an owner or namespace is written to
func classFile(c codegen.ClassPlan) string {
	name := strings.ToLower(c.Owner.Name)
	if c.Owner.Kind == classify.KindNamespace {
		return "ns_" + name + ".go"
	}
	return name + ".go"
}
