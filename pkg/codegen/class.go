// Package codegen - Class driver: natives grouped by owner or namespace
package codegen

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/nativedb/pkg/classify"
	"github.com/GriffinCanCode/nativedb/pkg/logger"
	"github.com/GriffinCanCode/nativedb/pkg/model"
)

// Prefixes that mark a native as a property read or write
var (
	GetterPrefixes = []string{"GET_", "IS_", "HAS_", "DOES_", "CAN_"}
	SetterPrefix   = "SET_"
)

// MethodKind separates calls on an instance from calls on the owner itself
type MethodKind int

const (
	MethodStatic MethodKind = iota
	MethodInstance
)

// ArgKind says how a driver passes one native argument
type ArgKind int

const (
	ArgValue    ArgKind = iota
	ArgReceiver         // the elided instance
	ArgOutput           // OutputPlaceholder
	ArgInOut            // InOutPlaceholder
)

// ClassPlan describes one owner or namespace
type ClassPlan struct {
	Owner   classify.Owner
	Name    string // target identifier
	Parent  string // target identifier of the parent owner, or ""
	Natives int
}

// ParamPlan is one explicit input of the generated function
type ParamPlan struct {
	Param model.NativeParameter
	Name  string
	Type  string
}

// ArgPlan is one argument of the native call, in declaration order
type ArgPlan struct {
	Param model.NativeParameter
	Kind  ArgKind
	Expr  string // identifier or placeholder; empty for the receiver
}

// MethodPlan is a fully resolved generated function
type MethodPlan struct {
	Native     *model.NativeDefinition
	Class      ClassPlan
	Kind       MethodKind
	Name       string
	Params     []ParamPlan
	Args       []ArgPlan
	Return     ReturnShape
	ReturnType string
	InvokeType string // raw call result type; empty for void natives
	// Property is the accessor name when the method backs a getter or setter
	Property string
	// HasProxy is set when a getter proxy for this method follows
	HasProxy bool
}

// Receiver returns the elided argument of an instance method
func (m MethodPlan) Receiver() (ArgPlan, bool) {
	for _, a := range m.Args {
		if a.Kind == ArgReceiver {
			return a, true
		}
	}
	return ArgPlan{}, false
}

// AccessorPlan is a property-style getter or setter backed by a method
type AccessorPlan struct {
	Method   MethodPlan
	Property string
	// Proxy is set when the accessor forwards to a method that is emitted as well
	Proxy bool
}

// GenerateClasses emits every native. Owners come first, then namespaces, each sorted
// by name; functions inside a class are sorted by native name.
func GenerateClasses(db *model.Database, classifier *classify.Classifier, target ClassTarget) {
	logger.LogPhase("class generation")

	owned := make(map[string][]*model.NativeDefinition)
	owners := make(map[string]classify.Owner)
	plain := make(map[string][]*model.NativeDefinition)

	for _, ns := range db.Namespaces {
		for _, n := range ns.Natives {
			if owner, ok := classifier.Classify(n); ok {
				owners[owner.Name] = owner
				owned[owner.Name] = append(owned[owner.Name], n)
				continue
			}
			plain[ns.Name] = append(plain[ns.Name], n)
		}
	}

	for _, name := range sortedKeys(owned) {
		emitClass(target, owners[name], owned[name])
	}
	for _, name := range sortedKeys(plain) {
		emitClass(target, classify.NamespaceOwner(name), plain[name])
	}

	logger.LogPhaseComplete("class generation", "owners", len(owned), "namespaces", len(plain))
}

func emitClass(target ClassTarget, owner classify.Owner, natives []*model.NativeDefinition) {
	sorted := append([]*model.NativeDefinition(nil), natives...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	class := ClassPlan{
		Owner:   owner,
		Name:    target.Identifier(owner.Name, RoleType),
		Natives: len(sorted),
	}
	if owner.Parent != "" {
		class.Parent = target.Identifier(owner.Parent, RoleType)
	}

	target.BeginClass(class)
	for _, n := range sorted {
		plan := PlanMethod(target, class, n)
		switch {
		case isGetter(plan) && len(plan.Params) == 0:
			plan.Property = propertyName(target, n.Name)
			target.Getter(AccessorPlan{Method: plan, Property: plan.Property})
		case isGetter(plan) && allDefaulted(plan.Params):
			plan.Property = propertyName(target, n.Name)
			plan.HasProxy = true
			target.Method(plan)
			target.Getter(AccessorPlan{Method: plan, Property: plan.Property, Proxy: true})
		case isSetter(plan):
			plan.Property = propertyName(target, n.Name)
			target.Setter(AccessorPlan{Method: plan, Property: plan.Property})
		default:
			target.Method(plan)
		}
	}
	target.EndClass(class)

	logger.LogGeneration("class", owner.Name, len(sorted))
}

// PlanMethod resolves names, arguments and the return shape of one native
func PlanMethod(caps Capabilities, class ClassPlan, n *model.NativeDefinition) MethodPlan {
	plan := MethodPlan{
		Native: n,
		Class:  class,
		Kind:   MethodStatic,
		Name:   caps.Identifier(n.Name, RoleMethod),
	}

	receiver := -1
	if class.Owner.Kind != classify.KindNamespace && len(n.Parameters) > 0 {
		plan.Kind = MethodInstance
		receiver = 0
	}

	for i, p := range n.Parameters {
		arg := ArgPlan{Param: p}
		switch {
		case i == receiver:
			arg.Kind = ArgReceiver
		case p.IsPureOutput():
			arg.Kind = ArgOutput
			arg.Expr = caps.OutputPlaceholder(p)
		case p.IsInOut():
			arg.Kind = ArgInOut
			arg.Expr = caps.InOutPlaceholder(p)
			plan.Params = append(plan.Params, paramPlan(caps, p))
		default:
			arg.Kind = ArgValue
			arg.Expr = caps.Identifier(p.Name, RoleParam)
			plan.Params = append(plan.Params, paramPlan(caps, p))
		}
		plan.Args = append(plan.Args, arg)
	}

	plan.Return = CombineReturn(n.ReturnType, n.OutputParameters())
	plan.ReturnType = caps.ReturnType(plan.Return)
	if !n.ReturnType.IsVoid() {
		plan.InvokeType = caps.InvokeType(n.ReturnType)
	}
	return plan
}

func paramPlan(caps Capabilities, p model.NativeParameter) ParamPlan {
	return ParamPlan{
		Param: p,
		Name:  caps.Identifier(p.Name, RoleParam),
		Type:  caps.SurfaceType(p.Type),
	}
}

func isGetter(m MethodPlan) bool {
	if m.Kind != MethodInstance || m.Return.Kind == ShapeNone {
		return false
	}
	for _, prefix := range GetterPrefixes {
		if strings.HasPrefix(m.Native.Name, prefix) {
			return true
		}
	}
	return false
}

func isSetter(m MethodPlan) bool {
	return m.Kind == MethodInstance &&
		len(m.Params) == 1 &&
		m.Return.Kind == ShapeNone &&
		strings.HasPrefix(m.Native.Name, SetterPrefix)
}

func allDefaulted(params []ParamPlan) bool {
	for _, p := range params {
		if !p.Param.HasDefault && !p.Param.Variadic {
			return false
		}
	}
	return true
}

// propertyName drops the GET_/SET_ verb; predicates keep theirs
func propertyName(caps Capabilities, native string) string {
	raw := native
	for _, prefix := range []string{"GET_", SetterPrefix} {
		if strings.HasPrefix(raw, prefix) && len(raw) > len(prefix) {
			raw = raw[len(prefix):]
			break
		}
	}
	return caps.Identifier(raw, RoleProperty)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
