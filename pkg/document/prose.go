// Package document - Markdown prose: name heading, signature block and sections
package document

import (
	"bytes"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/GriffinCanCode/nativedb/pkg/frontend"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// Section headings allowed after the function name heading
const (
	SectionParameters  = "Parameters"
	SectionReturnValue = "Return value"
	SectionExamples    = "Examples"
)

var allowedSections = map[string]bool{
	SectionParameters:  true,
	SectionReturnValue: true,
	SectionExamples:    true,
}

var (
	hashCommentRe = regexp.MustCompile(`^//\s*(0[xX][0-9A-Fa-f]+)\b`)
	paramItemRe   = regexp.MustCompile(`(?s)^\*\*([A-Za-z_][A-Za-z0-9_]*)\*\*\s*:\s*(.*)$`)
)

type section struct {
	name    string
	heading ast.Node
	blocks  []ast.Node
	start   int // byte offset of the first content line
	end     int // byte offset of the next section heading, or len(source)
}

type prose struct {
	a          *assembler
	source     []byte
	lineStarts []int
	firstLine  int // document line of source[0]
}

func newProse(a *assembler, source []byte, firstLine int) *prose {
	p := &prose{a: a, source: source, firstLine: firstLine, lineStarts: []int{0}}
	for i, c := range source {
		if c == '\n' {
			p.lineStarts = append(p.lineStarts, i+1)
		}
	}
	return p
}

// position maps a byte offset in the prose to a document line and column
func (p *prose) position(offset int) (int, int) {
	idx := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > offset }) - 1
	if idx < 0 {
		idx = 0
	}
	return p.firstLine + idx, offset - p.lineStarts[idx] + 1
}

func (p *prose) lineStart(offset int) int {
	for offset > 0 && p.source[offset-1] != '\n' {
		offset--
	}
	return offset
}

// nodeStart returns the offset of the line where a block begins
func (p *prose) nodeStart(n ast.Node) (int, bool) {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		start := p.lineStart(n.Lines().At(0).Start)
		if n.Kind() == ast.KindFencedCodeBlock && start > 0 {
			// include the opening fence line
			start = p.lineStart(start - 1)
		}
		return start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := p.nodeStart(c); ok {
			return off, true
		}
	}
	return 0, false
}

func (p *prose) nodeLine(n ast.Node) (int, int) {
	if off, ok := p.nodeStart(n); ok {
		return p.position(off)
	}
	return p.firstLine, 1
}

func (p *prose) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(p.source))
	}
	return b.String()
}

func (p *prose) assemble(native *model.NativeDefinition) {
	root := goldmark.DefaultParser().Parse(text.NewReader(p.source))

	var nameHeading *ast.Heading
	var sigBlock *ast.FencedCodeBlock
	var description *section
	var sections []*section
	var current *section

	closeCurrent := func(end int) {
		if current != nil {
			current.end = end
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && (nameHeading == nil || h.Level <= nameHeading.Level) {
			if nameHeading == nil {
				nameHeading = h
				continue
			}
			title := strings.TrimSpace(p.lines(h))
			start, _ := p.nodeStart(h)
			if sigBlock == nil {
				line, col := p.position(start)
				p.a.errorf(line, col, "heading %q appears before the signature code block", title)
				continue
			}
			if !allowedSections[title] {
				line, col := p.position(start)
				p.a.errorf(line, col, "heading %q is not allowed here, expected one of %s, %s or %s",
					title, SectionParameters, SectionReturnValue, SectionExamples)
				continue
			}
			for _, s := range sections {
				if s.name == title {
					line, col := p.position(start)
					p.a.errorf(line, col, "duplicate section %q", title)
				}
			}
			closeCurrent(start)
			current = &section{name: title, heading: h, start: -1}
			sections = append(sections, current)
			continue
		}

		if nameHeading == nil {
			continue
		}
		if sigBlock == nil {
			if cb, ok := n.(*ast.FencedCodeBlock); ok {
				sigBlock = cb
				description = &section{start: -1}
				current = description
			}
			continue
		}
		if current != nil {
			current.blocks = append(current.blocks, n)
			if off, ok := p.nodeStart(n); ok && current.start < 0 {
				current.start = off
			}
		}
	}
	closeCurrent(len(p.source))

	if nameHeading == nil {
		p.a.errorf(p.firstLine, 1, "missing function name heading")
		return
	}
	native.Name = strings.TrimSpace(p.lines(nameHeading))
	if sigBlock == nil {
		line, col := p.nodeLine(nameHeading)
		p.a.errorf(line, col, "missing signature code block after heading %s", native.Name)
		return
	}

	if !p.parseSignatureBlock(native, nameHeading, sigBlock) {
		return
	}

	native.Description = p.sectionText(description)
	p.applySections(native, nameHeading, sections)
	p.extractMarkers(native)
}

func (p *prose) sectionText(s *section) string {
	if s == nil || s.start < 0 || s.start >= s.end {
		return ""
	}
	return strings.TrimSpace(string(p.source[s.start:s.end]))
}

// parseSignatureBlock reads the hash comment and the signature line
func (p *prose) parseSignatureBlock(native *model.NativeDefinition, nameHeading *ast.Heading, block *ast.FencedCodeBlock) bool {
	segs := block.Lines()
	if segs.Len() < 2 {
		line, col := p.nodeLine(block)
		p.a.errorf(line, col, "signature code block needs a hash comment line and a signature line")
		return false
	}

	hashSeg := segs.At(0)
	hashLine, hashCol := p.position(hashSeg.Start)
	m := hashCommentRe.FindSubmatch(bytes.TrimSpace(hashSeg.Value(p.source)))
	if m == nil {
		p.a.errorf(hashLine, hashCol, "first line of the signature block must be a hash comment like // 0x1234ABCD")
		return false
	}
	hash, err := strconv.ParseUint(string(m[1][2:]), 16, 64)
	if err != nil {
		p.a.errorf(hashLine, hashCol, "invalid native hash %s: %v", m[1], err)
		return false
	}
	native.Hash = hash

	sigSeg := segs.At(1)
	sigLine, sigCol := p.position(sigSeg.Start)
	sig, diags := frontend.ParseSignature(p.a.file, strings.TrimRight(string(sigSeg.Value(p.source)), "\n"))
	for _, d := range diags {
		d.Line = sigLine + d.Line - 1
		d.Col = sigCol + d.Col - 1
		p.a.diags.Errors = append(p.a.diags.Errors, d)
	}
	if sig == nil {
		return false
	}

	if sig.Name != native.Name {
		line, col := p.nodeLine(nameHeading)
		p.a.errorf(line, col, "heading %s does not match signature name %s", native.Name, sig.Name)
	}
	native.Parameters = sig.Parameters
	native.ReturnType = sig.ReturnType
	return true
}

func (p *prose) applySections(native *model.NativeDefinition, nameHeading *ast.Heading, sections []*section) {
	var params, ret, examples *section
	for _, s := range sections {
		switch s.name {
		case SectionParameters:
			params = s
		case SectionReturnValue:
			ret = s
		case SectionExamples:
			examples = s
		}
	}

	nameLine, nameCol := p.nodeLine(nameHeading)
	if params == nil {
		if len(native.Parameters) > 0 {
			p.a.errorf(nameLine, nameCol, "missing %s section: %s takes %d parameters",
				SectionParameters, native.Name, len(native.Parameters))
		}
	} else {
		p.applyParameterDocs(native, params)
	}

	if ret == nil {
		if !native.ReturnType.IsVoid() {
			p.a.warnf(nameLine, nameCol, "missing %s section for non-void native %s", SectionReturnValue, native.Name)
		}
	} else {
		native.ReturnDescription = p.sectionText(ret)
	}

	if examples != nil {
		for _, b := range examples.blocks {
			if cb, ok := b.(*ast.FencedCodeBlock); ok {
				native.RelatedExamples = append(native.RelatedExamples, model.Example{
					Lang: string(cb.Language(p.source)),
					Code: strings.TrimRight(p.lines(cb), "\n"),
				})
			}
		}
	}
}
