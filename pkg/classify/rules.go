// Package classify - Ordered keyword rules for model-style owners
package classify

import "strings"

// KeywordRule assigns Owner when Substring occurs in a native name
type KeywordRule struct {
	Substring string
	Owner     string
}

// KeywordRules are tried in order; the first match wins, else Default
type KeywordRules struct {
	Rules   []KeywordRule
	Default string
}

// Match returns the owner for a native name
func (r KeywordRules) Match(name string) string {
	upper := strings.ToUpper(name)
	for _, rule := range r.Rules {
		if strings.Contains(upper, strings.ToUpper(rule.Substring)) {
			return rule.Owner
		}
	}
	return r.Default
}

// Owners lists every owner the rules can produce, default last
func (r KeywordRules) Owners() []string {
	owners := make([]string, 0, len(r.Rules)+1)
	for _, rule := range r.Rules {
		owners = append(owners, rule.Owner)
	}
	if r.Default != "" {
		owners = append(owners, r.Default)
	}
	return owners
}
