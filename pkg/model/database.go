// Package model - Aggregated database of every parsed definition
package model

import "sort"

// Database is the single input of layout, classification and generation
type Database struct {
	Namespaces     []*Namespace
	Enums          map[string]*EnumDefinition
	Structs        map[string]*StructDefinition
	SharedExamples map[string]Example
}

// NewDatabase returns an empty database with initialized maps
func NewDatabase() *Database {
	return &Database{
		Enums:          make(map[string]*EnumDefinition),
		Structs:        make(map[string]*StructDefinition),
		SharedExamples: make(map[string]Example),
	}
}

// Namespace finds a namespace by name
func (db *Database) Namespace(name string) *Namespace {
	for _, ns := range db.Namespaces {
		if ns.Name == name {
			return ns
		}
	}
	return nil
}

// Native finds a native by namespace and name
func (db *Database) Native(namespace, name string) *NativeDefinition {
	ns := db.Namespace(namespace)
	if ns == nil {
		return nil
	}
	for _, n := range ns.Natives {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// AddNative appends a native to its namespace, creating the namespace on demand.
// It reports false when the namespace already holds a native of the same name.
func (db *Database) AddNative(n *NativeDefinition) bool {
	ns := db.Namespace(n.Namespace)
	if ns == nil {
		ns = &Namespace{Name: n.Namespace}
		db.Namespaces = append(db.Namespaces, ns)
	}
	for _, existing := range ns.Natives {
		if existing.Name == n.Name {
			return false
		}
	}
	ns.Natives = append(ns.Natives, n)
	return true
}

// Sort orders namespaces and their natives by name for deterministic output
func (db *Database) Sort() {
	sort.Slice(db.Namespaces, func(i, j int) bool {
		return db.Namespaces[i].Name < db.Namespaces[j].Name
	})
	for _, ns := range db.Namespaces {
		sort.Slice(ns.Natives, func(i, j int) bool {
			return ns.Natives[i].Name < ns.Natives[j].Name
		})
	}
}

// NativeCount returns the number of natives across all namespaces
func (db *Database) NativeCount() int {
	count := 0
	for _, ns := range db.Namespaces {
		count += len(ns.Natives)
	}
	return count
}

// EnumNames returns enum names in sorted order
func (db *Database) EnumNames() []string {
	names := make([]string, 0, len(db.Enums))
	for name := range db.Enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StructNames returns struct names in sorted order
func (db *Database) StructNames() []string {
	names := make([]string, 0, len(db.Structs))
	for name := range db.Structs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
