// Package database builds the native database from a tree of source files.
//
// Design: every file is parsed on its own into a FileResult with no shared state, so
// parsing runs as a bounded fork-join. Results are merged in path order, which keeps
// the Database and every diagnostic identical whatever the worker count.
package database

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/document"
	"github.com/GriffinCanCode/nativedb/pkg/frontend"
	"github.com/GriffinCanCode/nativedb/pkg/logger"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// Kind is the grammar a source file is parsed with
type Kind int

const (
	KindUnknown Kind = iota
	KindNative
	KindEnum
	KindStruct
	KindExample
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindExample:
		return "example"
	default:
		return "unknown"
	}
}

const examplesDir = "examples"

// KindFor picks the grammar for a slash-separated path
func KindFor(p string) Kind {
	p = path.Clean(p)
	for _, dir := range strings.Split(path.Dir(p), "/") {
		if dir == examplesDir {
			return KindExample
		}
	}
	switch path.Ext(p) {
	case ".md":
		if strings.EqualFold(path.Base(p), "README.md") {
			return KindUnknown
		}
		return KindNative
	case ".enum":
		return KindEnum
	case ".struct":
		return KindStruct
	}
	return KindUnknown
}

// Source is one input file
type Source struct {
	Path    string
	Kind    Kind
	Content []byte
}

// Options control a build
type Options struct {
	// Workers bounds parallel parsing; 1 parses sequentially, 0 uses GOMAXPROCS
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// FileResult is everything one file contributed
type FileResult struct {
	Path     string
	Kind     Kind
	Native   *model.NativeDefinition
	Enums    []*model.EnumDefinition
	Structs  []*model.StructDefinition
	Example  *model.Example
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
}

// HasErrors reports whether the file was rejected
func (r *FileResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Result is a built database plus per-file diagnostics, in path order
type Result struct {
	DB    *model.Database
	Files []FileResult
}

// Diagnostics gathers every file's errors and warnings in path order
func (r *Result) Diagnostics() diag.List {
	var all diag.List
	for _, f := range r.Files {
		all.Merge(diag.List{Errors: f.Errors, Warnings: f.Warnings})
	}
	return all
}

// HasErrors reports whether any file was rejected
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].HasErrors() {
			return true
		}
	}
	return false
}

// Err joins every error, or returns nil
func (r *Result) Err() error {
	all := r.Diagnostics()
	return all.Err()
}

// LoadFS walks fsys, reads every recognized file and builds the database. Hidden
// directories are skipped.
func LoadFS(ctx context.Context, fsys fs.FS, opts Options) (*Result, error) {
	var sources []Source
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		kind := KindFor(p)
		if kind == KindUnknown {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		sources = append(sources, Source{Path: p, Kind: kind, Content: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading sources: %w", err)
	}

	logger.Debug("Sources loaded", "files", len(sources))
	return Build(ctx, sources, opts)
}

// Build parses sources in parallel and merges them. The returned error is only set
// when ctx is cancelled; file problems are reported through the Result.
func Build(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	logger.LogPhase("parsing")

	sorted := append([]Source(nil), sources...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	files := make([]FileResult, len(sorted))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, src := range sorted {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files[i] = ParseFile(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	logger.LogPhaseComplete("parsing", "files", len(files))

	res := &Result{DB: model.NewDatabase(), Files: files}
	res.merge()
	res.checkReferences()
	res.DB.Sort()
	res.log()
	return res, nil
}

// ParseFile runs the grammar of src.Kind over one file
func ParseFile(src Source) FileResult {
	logger.LogFileProcessing(src.Path, src.Kind.String())

	fr := FileResult{Path: src.Path, Kind: src.Kind}
	switch src.Kind {
	case KindNative:
		doc := document.Assemble(src.Path, src.Content)
		fr.Native, fr.Errors, fr.Warnings = doc.Native, doc.Errors, doc.Warnings
	case KindEnum:
		fr.Enums, fr.Errors = frontend.ParseEnums(src.Path, string(src.Content))
	case KindStruct:
		fr.Structs, fr.Errors = frontend.ParseStructs(src.Path, string(src.Content))
	case KindExample:
		base := path.Base(src.Path)
		ext := path.Ext(base)
		fr.Example = &model.Example{
			Name: strings.TrimSuffix(base, ext),
			Lang: strings.TrimPrefix(ext, "."),
			Code: string(src.Content),
		}
	default:
		fr.Errors = append(fr.Errors, diag.At(src.Path, 0, 0, "unrecognized source file"))
	}
	return fr
}

// merge adds every accepted file to the database in path order. A name that is
// already taken is an error on the later file, and a file with errors contributes
// none of its definitions.
func (r *Result) merge() {
	logger.LogPhase("merge")

	enumFiles := make(map[string]string)
	structFiles := make(map[string]string)
	exampleFiles := make(map[string]string)

	for i := range r.Files {
		f := &r.Files[i]
		if f.HasErrors() {
			continue
		}
		switch f.Kind {
		case KindNative:
			if !r.DB.AddNative(f.Native) {
				first := r.DB.Native(f.Native.Namespace, f.Native.Name)
				f.Errors = append(f.Errors, diag.At(f.Path, 0, 0,
					"duplicate native %s in namespace %s (first defined in %s)",
					f.Native.Name, f.Native.Namespace, first.SourceFile))
			}
		case KindEnum:
			seen := make(map[string]bool, len(f.Enums))
			for _, e := range f.Enums {
				if prev, ok := enumFiles[e.Name]; ok {
					f.Errors = append(f.Errors, diag.At(f.Path, 0, 0, "duplicate enum %s (first defined in %s)", e.Name, prev))
				} else if seen[e.Name] {
					f.Errors = append(f.Errors, diag.At(f.Path, 0, 0, "duplicate enum %s (first defined in %s)", e.Name, f.Path))
				}
				seen[e.Name] = true
			}
			if f.HasErrors() {
				continue
			}
			for _, e := range f.Enums {
				enumFiles[e.Name] = f.Path
				r.DB.Enums[e.Name] = e
			}
		case KindStruct:
			seen := make(map[string]bool, len(f.Structs))
			for _, s := range f.Structs {
				if prev, ok := structFiles[s.Name]; ok {
					f.Errors = append(f.Errors, diag.At(f.Path, 0, 0, "duplicate struct %s (first defined in %s)", s.Name, prev))
				} else if seen[s.Name] {
					f.Errors = append(f.Errors, diag.At(f.Path, 0, 0, "duplicate struct %s (first defined in %s)", s.Name, f.Path))
				}
				seen[s.Name] = true
			}
			if f.HasErrors() {
				continue
			}
			for _, s := range f.Structs {
				structFiles[s.Name] = f.Path
				r.DB.Structs[s.Name] = s
			}
		case KindExample:
			if prev, ok := exampleFiles[f.Example.Name]; ok {
				f.Errors = append(f.Errors, diag.At(f.Path, 0, 0, "duplicate example %s (first defined in %s)", f.Example.Name, prev))
				continue
			}
			exampleFiles[f.Example.Name] = f.Path
			r.DB.SharedExamples[f.Example.Name] = *f.Example
		}
	}
}

// checkReferences warns about markers naming definitions the database lacks
func (r *Result) checkReferences() {
	for i := range r.Files {
		f := &r.Files[i]
		if f.Native == nil || f.HasErrors() {
			continue
		}
		n := f.Native
		for _, name := range n.UsedEnums {
			if _, ok := r.DB.Enums[name]; !ok {
				f.Warnings = append(f.Warnings, diag.At(f.Path, 0, 0, "native %s references unknown enum %s", n.Name, name))
			}
		}
		for _, name := range n.UsedStructs {
			if _, ok := r.DB.Structs[name]; !ok {
				f.Warnings = append(f.Warnings, diag.At(f.Path, 0, 0, "native %s references unknown struct %s", n.Name, name))
			}
		}
		for _, name := range n.ExampleRefs {
			if _, ok := r.DB.SharedExamples[name]; !ok {
				f.Warnings = append(f.Warnings, diag.At(f.Path, 0, 0, "native %s references unknown example %s", n.Name, name))
			}
		}
	}
}

func (r *Result) log() {
	errs, warns := 0, 0
	for _, f := range r.Files {
		list := diag.List{Errors: f.Errors, Warnings: f.Warnings}
		list.Each(func(sev diag.Severity, d diag.Diagnostic) {
			logger.LogDiagnostic(sev.String(), d.File, d.Line, d.Col, d.Message)
		})
		errs += len(f.Errors)
		warns += len(f.Warnings)
	}
	logger.LogPhaseComplete("merge",
		"natives", r.DB.NativeCount(),
		"enums", len(r.DB.Enums),
		"structs", len(r.DB.Structs),
		"errors", errs,
		"warnings", warns)
}
