// Package fallback builds the ordered tenant and locale candidate chains
// used for hierarchical configuration lookup.
package fallback

import "strings"

// Wildcard is the universal sentinel matching any tenant or locale.
const Wildcard = "*"

// TenantChain returns tenant candidates from most to least specific,
// obtained by repeatedly truncating the id at its last dot, terminated by
// the wildcard sentinel:
//
//	TenantChain("pb.a.b") == ["pb.a.b", "pb.a", "pb", "*"]
//
// Entry-style lookups query the full chain including the wildcard row.
func TenantChain(tenantID string) []string {
	return append(TenantAncestry(tenantID), Wildcard)
}

// TenantAncestry is TenantChain without the trailing wildcard: it stops at
// the topmost dot-free segment. Config-style lookups walk this form since no
// wildcard tenant row exists in that table.
func TenantAncestry(tenantID string) []string {
	var chain []string
	if tenantID != "" {
		chain = append(chain, tenantID)
		t := tenantID
		for strings.Contains(t, ".") {
			t = t[:strings.LastIndex(t, ".")]
			chain = append(chain, t)
		}
	}
	return chain
}

// LocaleChain returns [locale, "*"] when a locale is given, else ["*"].
func LocaleChain(locale string) []string {
	if locale == "" {
		return []string{Wildcard}
	}
	return []string{locale, Wildcard}
}
