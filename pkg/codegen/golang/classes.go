// Package golang - Owner and namespace functions
package golang

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/nativedb/pkg/classify"
	"github.com/GriffinCanCode/nativedb/pkg/codegen"
	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

// BeginClass implements codegen.ClassEmitter
func (g *Generator) BeginClass(c codegen.ClassPlan) {
	g.class = c
	g.out = g.file(classFile(c))
	if c.Owner.Kind == classify.KindNamespace {
		fmt.Fprintf(g.out, "// Natives of the %s namespace.\n\n", c.Owner.Name)
	}
}

// EndClass implements codegen.ClassEmitter
func (g *Generator) EndClass(codegen.ClassPlan) {
	g.out = nil
}

// Method implements codegen.ClassEmitter
func (g *Generator) Method(m codegen.MethodPlan) {
	g.writeFunc(g.methodName(m), m)
}

// Getter implements codegen.ClassEmitter
func (g *Generator) Getter(a codegen.AccessorPlan) {
	if !a.Proxy {
		g.writeFunc(a.Property, a.Method)
		return
	}

	m := a.Method
	var args []string
	for _, p := range m.Params {
		if p.Param.Variadic {
			continue
		}
		args = append(args, g.defaultValue(p))
	}
	fmt.Fprintf(g.out, "// %s calls %s with default arguments.\n", a.Property, g.methodName(m))
	fmt.Fprintf(g.out, "func (h %s) %s() %s {\n", g.class.Name, a.Property, m.ReturnType)
	fmt.Fprintf(g.out, "\treturn h.%s(%s)\n", g.methodName(m), strings.Join(args, ", "))
	fmt.Fprintf(g.out, "}\n\n")
}

// Setter implements codegen.ClassEmitter; Go setters keep the native's Set name
func (g *Generator) Setter(a codegen.AccessorPlan) {
	g.writeFunc(a.Method.Name, a.Method)
}

// methodName avoids a clash between a method and the getter proxy that forwards to it
func (g *Generator) methodName(m codegen.MethodPlan) string {
	if m.HasProxy && m.Property == m.Name {
		return m.Name + "With"
	}
	return m.Name
}

func (g *Generator) writeFunc(name string, m codegen.MethodPlan) {
	n := m.Native
	g.writeDoc(name, n)

	var params []string
	for _, p := range m.Params {
		if p.Param.Variadic {
			params = append(params, p.Name+" ..."+p.Type)
			continue
		}
		params = append(params, p.Name+" "+p.Type)
	}

	if m.Kind == codegen.MethodInstance {
		fmt.Fprintf(g.out, "func (h %s) %s(%s)", g.class.Name, name, strings.Join(params, ", "))
	} else {
		fmt.Fprintf(g.out, "func %s(%s)", name, strings.Join(params, ", "))
	}
	if m.ReturnType != "" {
		fmt.Fprintf(g.out, " %s", m.ReturnType)
	}
	fmt.Fprintf(g.out, " {\n")

	var fixed []string
	variadic := ""
	var outputs []string
	for _, a := range m.Args {
		switch a.Kind {
		case codegen.ArgReceiver:
			fixed = append(fixed, g.receiverExpr())
		case codegen.ArgOutput:
			out := g.Identifier(a.Param.Name, codegen.RoleParam)
			fmt.Fprintf(g.out, "\t%s := %s\n", out, a.Expr)
			fixed = append(fixed, out)
			outputs = append(outputs, out)
		case codegen.ArgInOut:
			fixed = append(fixed, a.Expr)
		default:
			if a.Param.Variadic {
				variadic = a.Expr
				continue
			}
			fixed = append(fixed, g.unwrap(a.Param.Type, a.Expr))
		}
	}

	hash := fmt.Sprintf("0x%016X", n.Hash)
	callArgs := append([]string{hash}, fixed...)
	if variadic != "" {
		if len(fixed) == 0 {
			callArgs = []string{hash, variadic + "..."}
		} else {
			callArgs = []string{hash, fmt.Sprintf("append([]any{%s}, %s...)...", strings.Join(fixed, ", "), variadic)}
		}
	}

	var call string
	if m.InvokeType == "" {
		call = fmt.Sprintf("native.Call(%s)", strings.Join(callArgs, ", "))
	} else {
		call = fmt.Sprintf("native.Invoke[%s](%s)", m.InvokeType, strings.Join(callArgs, ", "))
	}

	if m.Return.Kind == codegen.ShapeNone {
		fmt.Fprintf(g.out, "\t%s\n", call)
		fmt.Fprintf(g.out, "}\n\n")
		return
	}

	var results []string
	values := m.Return.Values
	if m.InvokeType != "" {
		fmt.Fprintf(g.out, "\tresult := %s\n", call)
		results = append(results, g.wrapRaw(n.ReturnType, "result"))
		values = values[1:]
	} else {
		fmt.Fprintf(g.out, "\t%s\n", call)
	}
	for i, v := range values {
		results = append(results, g.wrapRaw(v.Type, "*"+outputs[i]))
	}
	fmt.Fprintf(g.out, "\treturn %s\n", strings.Join(results, ", "))
	fmt.Fprintf(g.out, "}\n\n")
}

func (g *Generator) writeDoc(name string, n *model.NativeDefinition) {
	fmt.Fprintf(g.out, "// %s calls %s (0x%016X).\n", name, n.Name, n.Hash)
	if desc := firstParagraph(n.Description); desc != "" {
		fmt.Fprintf(g.out, "//\n")
		for _, line := range strings.Split(desc, "\n") {
			fmt.Fprintf(g.out, "// %s\n", strings.TrimSpace(line))
		}
	}
}

func (g *Generator) receiverExpr() string {
	accessor, _ := g.rawValue(g.class.Owner)
	return "h." + accessor + "()"
}

// defaultValue renders a parameter's textual default as a Go expression
func (g *Generator) defaultValue(p codegen.ParamPlan) string {
	v := strings.TrimSpace(p.Param.DefaultValue)
	t := p.Param.Type

	switch {
	case t.IsPointer:
		if v == "0" || strings.EqualFold(v, "null") || v == "nullptr" {
			return "nil"
		}
	case p.Type == "bool":
		switch strings.ToLower(v) {
		case "0", "false":
			return "false"
		default:
			return "true"
		}
	case t.Category == types.Handle:
		return g.wrapRaw(t, v)
	case t.Category == types.Enum && !isNumeric(v):
		return p.Type + g.Identifier(v, codegen.RoleEnumMember)
	}
	if isNumeric(v) && strings.Contains(v, ".") {
		return strings.TrimRight(v, "fF")
	}
	return v
}

func isNumeric(v string) bool {
	v = strings.TrimPrefix(v, "-")
	return v != "" && (v[0] >= '0' && v[0] <= '9' || v[0] == '.')
}

func firstParagraph(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "\n\n"); i >= 0 {
		s = s[:i]
	}
	var buf bytes.Buffer
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return strings.TrimSpace(buf.String())
}
