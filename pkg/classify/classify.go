// Package classify assigns each native to the owner it is generated under.
//
// Design: an ordered list of rules over the first parameter and the native's namespace.
// The first rule that applies wins; a native no rule claims stays a plain function of
// its namespace. All tables are static configuration built once.
package classify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GriffinCanCode/nativedb/pkg/model"
	"github.com/GriffinCanCode/nativedb/pkg/types"
)

// OwnerKind decides how the class driver emits an owner's functions
type OwnerKind int

const (
	KindNamespace OwnerKind = iota
	KindHandle
	KindTask
	KindModel
	KindWeapon
)

func (k OwnerKind) String() string {
	switch k {
	case KindHandle:
		return "handle"
	case KindTask:
		return "task"
	case KindModel:
		return "model"
	case KindWeapon:
		return "weapon"
	default:
		return "namespace"
	}
}

// Owner is the logical type a native is grouped under
type Owner struct {
	Name   string
	Kind   OwnerKind
	Parent string // empty for roots and namespaces
}

// Config holds every table the rules consult
type Config struct {
	// Wrappers maps a handle type to its wrapper owner; handles without one are absent
	Wrappers map[string]string
	// HandleNamespaces is the namespace a handle type's natives must live in
	HandleNamespaces map[string]string

	TaskNamespace string
	TaskOwners    map[string]string

	WeaponNamespace string
	WeaponOwners    map[string]string

	StreamingNamespace string
	ModelRules         KeywordRules

	Forest *Forest
}

// DefaultConfig returns the built-in tables
func DefaultConfig() Config {
	return Config{
		Wrappers: map[string]string{
			"Entity":   "Entity",
			"Ped":      "Ped",
			"Vehicle":  "Vehicle",
			"Object":   "Prop",
			"Player":   "Player",
			"Cam":      "Cam",
			"Blip":     "Blip",
			"Pickup":   "Pickup",
			"Interior": "Interior",
		},
		HandleNamespaces: map[string]string{
			"Entity":   "ENTITY",
			"Ped":      "PED",
			"Vehicle":  "VEHICLE",
			"Object":   "OBJECT",
			"Player":   "PLAYER",
			"Cam":      "CAM",
			"Blip":     "HUD",
			"Pickup":   "OBJECT",
			"Interior": "INTERIOR",
		},
		TaskNamespace: "TASK",
		TaskOwners: map[string]string{
			"Ped":     "PedTask",
			"Vehicle": "VehicleTask",
			"Entity":  "EntityTask",
		},
		WeaponNamespace: "WEAPON",
		WeaponOwners: map[string]string{
			"Ped": "PedWeapons",
		},
		StreamingNamespace: "STREAMING",
		ModelRules: KeywordRules{
			Rules: []KeywordRule{
				{Substring: "VEHICLE", Owner: "VehicleModel"},
				{Substring: "PED", Owner: "PedModel"},
				{Substring: "WEAPON", Owner: "WeaponModel"},
			},
			Default: "Model",
		},
		Forest: MustForest(map[string]string{
			"Entity":       "",
			"Ped":          "Entity",
			"Vehicle":      "Entity",
			"Prop":         "Entity",
			"EntityTask":   "",
			"PedTask":      "EntityTask",
			"VehicleTask":  "EntityTask",
			"Model":        "",
			"PedModel":     "Model",
			"VehicleModel": "Model",
			"WeaponModel":  "Model",
		}),
	}
}

// Classifier applies the ordered rules of one Config
type Classifier struct {
	cfg   Config
	kinds map[string]OwnerKind
}

// New builds a classifier and checks that every owner the tables name is consistent
func New(cfg Config) (*Classifier, error) {
	if cfg.Forest == nil {
		cfg.Forest = MustForest(nil)
	}
	c := &Classifier{cfg: cfg, kinds: make(map[string]OwnerKind)}

	register := func(owner string, kind OwnerKind) error {
		if prev, ok := c.kinds[owner]; ok && prev != kind {
			return fmt.Errorf("owner %s is both %s and %s", owner, prev, kind)
		}
		c.kinds[owner] = kind
		return nil
	}
	for _, owner := range cfg.Wrappers {
		if err := register(owner, KindHandle); err != nil {
			return nil, err
		}
	}
	for _, owner := range cfg.TaskOwners {
		if err := register(owner, KindTask); err != nil {
			return nil, err
		}
	}
	for _, owner := range cfg.WeaponOwners {
		if err := register(owner, KindWeapon); err != nil {
			return nil, err
		}
	}
	for _, owner := range cfg.ModelRules.Owners() {
		if err := register(owner, KindModel); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var defaultClassifier = func() *Classifier {
	c, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}()

// Default returns the classifier over the built-in tables
func Default() *Classifier {
	return defaultClassifier
}

// Classify uses the built-in tables
func Classify(def *model.NativeDefinition) (Owner, bool) {
	return defaultClassifier.Classify(def)
}

// Forest exposes the owner hierarchy
func (c *Classifier) Forest() *Forest {
	return c.cfg.Forest
}

// Kind returns the kind of a known owner name
func (c *Classifier) Kind(owner string) (OwnerKind, bool) {
	k, ok := c.kinds[owner]
	return k, ok
}

// Wrapper returns the wrapper owner generated for a handle type
func (c *Classifier) Wrapper(handle string) (string, bool) {
	w, ok := c.cfg.Wrappers[handle]
	return w, ok
}

// Owners returns every owner the tables can produce, sorted
func (c *Classifier) Owners() []Owner {
	names := make([]string, 0, len(c.kinds))
	for name := range c.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	owners := make([]Owner, len(names))
	for i, name := range names {
		owners[i] = c.owner(name)
	}
	return owners
}

// Classify returns the owner of def, or false when it stays a namespace function
func (c *Classifier) Classify(def *model.NativeDefinition) (Owner, bool) {
	if len(def.Parameters) == 0 {
		return Owner{}, false
	}
	first := def.Parameters[0]
	typ := first.Type

	isHandle := typ.Category == types.Handle && !typ.IsPointer && !typ.IsArray()

	// 1. explicit receiver
	if first.Attributes.This && isHandle {
		if wrapper, ok := c.cfg.Wrappers[typ.Name]; ok {
			return c.owner(wrapper), true
		}
	}

	// 2. handle-typed first parameter
	if isHandle {
		if c.inNamespace(def, c.cfg.TaskNamespace) {
			if owner, ok := c.cfg.TaskOwners[typ.Name]; ok {
				return c.owner(owner), true
			}
		}
		if c.inNamespace(def, c.cfg.WeaponNamespace) {
			if owner, ok := c.cfg.WeaponOwners[typ.Name]; ok {
				return c.owner(owner), true
			}
		}
		if expected, ok := c.cfg.HandleNamespaces[typ.Name]; ok && c.inNamespace(def, expected) {
			if wrapper, ok := c.cfg.Wrappers[typ.Name]; ok {
				return c.owner(wrapper), true
			}
		}
		return Owner{}, false
	}

	// 3. model hashes in the streaming namespace
	if typ.Category == types.Hash && !typ.IsPointer && c.inNamespace(def, c.cfg.StreamingNamespace) {
		if owner := c.cfg.ModelRules.Match(def.Name); owner != "" {
			return c.owner(owner), true
		}
	}

	return Owner{}, false
}

func (c *Classifier) inNamespace(def *model.NativeDefinition, ns string) bool {
	return ns != "" && strings.EqualFold(def.Namespace, ns)
}

func (c *Classifier) owner(name string) Owner {
	parent, _ := c.cfg.Forest.Parent(name)
	return Owner{Name: name, Kind: c.kinds[name], Parent: parent}
}

// NamespaceOwner is the owner plain functions of ns are grouped under
func NamespaceOwner(ns string) Owner {
	return Owner{Name: ns, Kind: KindNamespace}
}
