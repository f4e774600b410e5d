// Package document - Parameter documentation and signature cross-check
package document

import (
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/GriffinCanCode/nativedb/pkg/model"
)

type paramDoc struct {
	name        string
	description string
	line, col   int
}

func (p *prose) applyParameterDocs(native *model.NativeDefinition, s *section) {
	var docs []paramDoc
	for _, b := range s.blocks {
		list, ok := b.(*ast.List)
		if !ok {
			continue
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			if doc, ok := p.parseParamItem(item); ok {
				docs = append(docs, doc)
			}
		}
	}

	headLine, headCol := p.nodeLine(s.heading)
	p.checkParameterDocs(native.Parameters, docs, headLine, headCol)

	byName := make(map[string]string, len(docs))
	for _, d := range docs {
		byName[d.name] = d.description
	}
	for i := range native.Parameters {
		native.Parameters[i].Description = byName[native.Parameters[i].Name]
	}
}

func (p *prose) parseParamItem(item ast.Node) (paramDoc, bool) {
	first := item.FirstChild()
	line, col := p.nodeLine(item)
	if first == nil {
		p.a.errorf(line, col, "empty parameter list item")
		return paramDoc{}, false
	}

	raw := strings.TrimSpace(p.lines(first))
	m := paramItemRe.FindStringSubmatch(raw)
	if m == nil {
		p.a.errorf(line, col, "parameter list item must look like **name**: description, got %q", firstLine(raw))
		return paramDoc{}, false
	}

	desc := []string{strings.TrimSpace(m[2])}
	for c := first.NextSibling(); c != nil; c = c.NextSibling() {
		desc = append(desc, strings.TrimSpace(p.lines(c)))
	}
	return paramDoc{
		name:        m[1],
		description: strings.TrimSpace(strings.Join(desc, "\n")),
		line:        line,
		col:         col,
	}, true
}

// checkParameterDocs compares documented names with the signature in one pass.
// Count, name and order problems each get their own message.
func (p *prose) checkParameterDocs(params []model.NativeParameter, docs []paramDoc, line, col int) {
	if len(docs) != len(params) {
		p.a.errorf(line, col, "parameter count mismatch: %d documented, signature declares %d", len(docs), len(params))
	}

	position := make(map[string]int, len(params))
	for i, param := range params {
		position[param.Name] = i
	}

	for i, d := range docs {
		want, ok := position[d.name]
		switch {
		case !ok:
			p.a.errorf(d.line, d.col, "parameter name mismatch: %s is not a parameter of the signature", d.name)
		case len(docs) == len(params) && want != i:
			p.a.errorf(d.line, d.col, "parameter order mismatch: %s is documented at position %d but declared at position %d",
				d.name, i+1, want+1)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
