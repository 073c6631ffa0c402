package utils

import (
	// Go Internal Packages
	"cmp"
	"slices"
	"strings"
)

// SortedKeys returns the keys of m in ascending order so map driven loops stay deterministic.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// JoinSorted joins the given strings in ascending order.
func JoinSorted(strs []string, sep string) string {
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return strings.Join(sorted, sep)
}
