package model

import (
	"sort"
	"strings"
)

// UnmappedKey is the reserved group key for appointment rows whose provider
// has no configured display mapping.
const UnmappedKey = "Unmapped"

// ProviderMapping maps raw schedule provider names to display short names.
// Lookups are case-insensitive and whitespace-normalized.
type ProviderMapping map[string]string

// canonicalProvider folds a raw provider name into its lookup form.
func canonicalProvider(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// Resolve returns the display short name for a raw provider name.
func (p ProviderMapping) Resolve(raw string) (string, bool) {
	want := canonicalProvider(raw)
	for full, short := range p {
		if canonicalProvider(full) == want {
			return short, true
		}
	}
	return "", false
}

// ShortNames returns every configured display name, sorted.
func (p ProviderMapping) ShortNames() []string {
	names := make([]string, 0, len(p))
	seen := make(map[string]bool, len(p))
	for _, short := range p {
		if !seen[short] {
			seen[short] = true
			names = append(names, short)
		}
	}
	sort.Strings(names)
	return names
}

// ProviderGroup holds the reconciled rows for one provider, in original
// schedule order.
type ProviderGroup struct {
	Provider string
	Records  []MatchResult
}

// Groups is the output of provider partitioning: one group per configured
// provider (possibly empty) plus the reserved unmapped bucket.
type Groups struct {
	Providers map[string]*ProviderGroup
	Unmapped  *ProviderGroup
}

// ProviderKeys returns the configured provider keys in sorted order.
func (g Groups) ProviderKeys() []string {
	keys := make([]string, 0, len(g.Providers))
	for k := range g.Providers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TotalRecords counts every row across all groups, unmapped included.
func (g Groups) TotalRecords() int {
	n := len(g.Unmapped.Records)
	for _, grp := range g.Providers {
		n += len(grp.Records)
	}
	return n
}
