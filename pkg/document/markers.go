// Package document - Cross-reference markers and callouts
package document

import (
	"strings"

	"github.com/GriffinCanCode/nativedb/pkg/frontend"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// Marker kinds recognized in prose
const (
	MarkerEnum    = "enum"
	MarkerStruct  = "struct"
	MarkerExample = "example"
	MarkerNative  = "native"
)

var calloutKinds = map[string]model.CalloutKind{
	"NOTE":      model.CalloutNote,
	"TIP":       model.CalloutTip,
	"IMPORTANT": model.CalloutImportant,
	"WARNING":   model.CalloutWarning,
}

// extractMarkers scans the whole prose for markers, keeping first occurrences only
func (p *prose) extractMarkers(native *model.NativeDefinition) {
	seen := make(map[string]bool)
	once := func(key string) bool {
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	}

	src := string(p.source)
	for i := 0; i < len(src); i++ {
		if src[i] != '[' {
			continue
		}
		line, col := p.position(i)
		m, ok := frontend.ParseMarker(src[i:], line, col)
		if !ok {
			continue
		}
		end := i + m.End

		if m.Callout {
			kind, known := calloutKinds[m.Kind]
			if !known {
				p.a.warnf(line, col, "unknown callout kind %s", m.Kind)
				i = end - 1
				continue
			}
			rest := src[end:]
			if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
				rest = rest[:nl]
			}
			c := model.Callout{Kind: kind}
			if title, desc, split := strings.Cut(rest, "|"); split {
				c.Title, c.Description = strings.TrimSpace(title), strings.TrimSpace(desc)
			} else {
				c.Description = strings.TrimSpace(rest)
			}
			if once("callout\x00" + string(c.Kind) + "\x00" + c.Title + "\x00" + c.Description) {
				native.Callouts = append(native.Callouts, c)
			}
			i = end - 1
			continue
		}

		name := m.Args[0]
		switch m.Kind {
		case MarkerEnum:
			if once("enum\x00" + name) {
				native.UsedEnums = append(native.UsedEnums, name)
			}
		case MarkerStruct:
			if once("struct\x00" + name) {
				native.UsedStructs = append(native.UsedStructs, name)
			}
		case MarkerExample:
			if once("example\x00" + name) {
				native.ExampleRefs = append(native.ExampleRefs, name)
			}
		case MarkerNative:
			ref := model.NativeRef{Name: name}
			if len(m.Args) > 1 {
				ref.Game = m.Args[1]
			}
			if once("native\x00" + ref.Name + "\x00" + ref.Game) {
				native.References = append(native.References, ref)
			}
		default:
			continue
		}
		i = end - 1
	}
}
