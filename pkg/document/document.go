// Package document assembles native definitions from documentation files.
//
// Design: a YAML header block followed by Markdown prose. The prose carries the
// function name heading, the signature code block and a fixed set of sections. The
// signature itself goes through frontend.ParseSignature; this package only merges it
// with the prose and checks that both agree.
package document

import (
	"bytes"
	"errors"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GriffinCanCode/nativedb/pkg/diag"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

const headerDelimiter = "---"

// Allowed API sets; the first one is the default
var apiSets = []string{"client", "server", "shared"}

// Result is the outcome of assembling one document
type Result struct {
	Native   *model.NativeDefinition
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
}

// HasErrors reports whether the document failed to assemble
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

type header struct {
	Namespace string   `yaml:"ns"`
	ApiSet    string   `yaml:"apiset"`
	Aliases   []string `yaml:"aliases"`
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Assemble parses one native document. The file path is used for diagnostics and as
// the namespace fallback (its parent directory name).
func Assemble(file string, src []byte) Result {
	a := &assembler{file: file}
	native := a.assemble(src)
	res := Result{Errors: a.diags.Errors, Warnings: a.diags.Warnings}
	if !a.diags.HasErrors() {
		res.Native = native
	}
	return res
}

type assembler struct {
	file  string
	diags diag.List
}

func (a *assembler) errorf(line, col int, format string, args ...any) {
	a.diags.Errorf(a.file, line, col, format, args...)
}

func (a *assembler) warnf(line, col int, format string, args ...any) {
	a.diags.Warnf(a.file, line, col, format, args...)
}

func (a *assembler) assemble(src []byte) *model.NativeDefinition {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))

	hdrText, body, bodyLine, ok := a.splitHeader(src)
	if !ok {
		return nil
	}
	hdr, ok := a.decodeHeader(hdrText)
	if !ok {
		return nil
	}

	native := &model.NativeDefinition{
		Aliases:    hdr.Aliases,
		SourceFile: a.file,
	}
	a.resolveNamespace(native, hdr)
	a.resolveApiSet(native, hdr)

	p := newProse(a, body, bodyLine)
	p.assemble(native)
	return native
}

// splitHeader separates the delimited header block from the prose
func (a *assembler) splitHeader(src []byte) (hdr []byte, body []byte, bodyLine int, ok bool) {
	lines := strings.SplitAfter(string(src), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t\n") != headerDelimiter {
		a.errorf(1, 1, "missing header block: document must start with %q", headerDelimiter)
		return nil, nil, 0, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\n") == headerDelimiter {
			hdr = []byte(strings.Join(lines[1:i], ""))
			body = []byte(strings.Join(lines[i+1:], ""))
			return hdr, body, i + 2, true
		}
	}
	a.errorf(len(lines), 1, "unterminated header block: missing closing %q", headerDelimiter)
	return nil, nil, 0, false
}

func (a *assembler) decodeHeader(text []byte) (header, bool) {
	var hdr header
	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	if err := dec.Decode(&hdr); err != nil && !errors.Is(err, io.EOF) {
		line := 1
		if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
			if n, convErr := strconv.Atoi(m[1]); convErr == nil {
				line = n + 1
			}
		}
		msg := strings.TrimPrefix(err.Error(), "yaml: ")
		a.errorf(line, 1, "invalid header block: %s", msg)
		return header{}, false
	}
	return hdr, true
}

func (a *assembler) resolveNamespace(native *model.NativeDefinition, hdr header) {
	native.Namespace = strings.TrimSpace(hdr.Namespace)
	if native.Namespace != "" {
		return
	}
	dir := path.Base(path.Dir(strings.ReplaceAll(a.file, "\\", "/")))
	if dir == "." || dir == "/" || dir == "" {
		a.errorf(2, 1, "header block has no ns and the file has no parent directory to infer it from")
		return
	}
	native.Namespace = dir
	a.warnf(2, 1, "header block has no ns, using directory name %s", dir)
}

func (a *assembler) resolveApiSet(native *model.NativeDefinition, hdr header) {
	if hdr.ApiSet == "" {
		native.ApiSet = apiSets[0]
		return
	}
	for _, set := range apiSets {
		if hdr.ApiSet == set {
			native.ApiSet = set
			return
		}
	}
	a.errorf(2, 1, "invalid apiset %q, expected one of %s", hdr.ApiSet, strings.Join(apiSets, ", "))
}
