// Package classify - Owner hierarchy as a single-parent forest
package classify

import (
	"fmt"
	"sort"
)

// Forest maps each owner name to its optional parent. It is built once and never mutated.
type Forest struct {
	parents map[string]string
}

// NewForest validates the child→parent edges and rejects cycles
func NewForest(edges map[string]string) (*Forest, error) {
	f := &Forest{parents: make(map[string]string, len(edges))}
	for child, parent := range edges {
		if child == "" {
			return nil, fmt.Errorf("owner forest: empty owner name")
		}
		if child == parent {
			return nil, fmt.Errorf("owner forest: %s is its own parent", child)
		}
		f.parents[child] = parent
	}

	children := make([]string, 0, len(f.parents))
	for child := range f.parents {
		children = append(children, child)
	}
	sort.Strings(children)

	for _, start := range children {
		seen := map[string]bool{start: true}
		for cur := f.parents[start]; cur != ""; cur = f.parents[cur] {
			if seen[cur] {
				return nil, fmt.Errorf("owner forest: cycle through %s", cur)
			}
			seen[cur] = true
		}
	}
	return f, nil
}

// MustForest is NewForest for static configuration
func MustForest(edges map[string]string) *Forest {
	f, err := NewForest(edges)
	if err != nil {
		panic(err)
	}
	return f
}

// Parent returns the direct parent of owner, if any
func (f *Forest) Parent(owner string) (string, bool) {
	parent := f.parents[owner]
	return parent, parent != ""
}

// Ancestors returns the parent chain of owner, nearest first
func (f *Forest) Ancestors(owner string) []string {
	var chain []string
	for cur := f.parents[owner]; cur != ""; cur = f.parents[cur] {
		chain = append(chain, cur)
	}
	return chain
}

// Roots returns every owner without a parent, sorted
func (f *Forest) Roots() []string {
	set := make(map[string]bool)
	for child, parent := range f.parents {
		if parent == "" {
			set[child] = true
		} else if _, listed := f.parents[parent]; !listed {
			set[parent] = true
		}
	}
	roots := make([]string, 0, len(set))
	for r := range set {
		roots = append(roots, r)
	}
	sort.Strings(roots)
	return roots
}
