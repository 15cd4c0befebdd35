// Package phonetics provides sounds-like keys for roster names, used by
// the lookup CLI when a name was heard rather than read (parent phone
// calls, meeting roll calls).
package phonetics

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/classroom-roster/internal/normalize"
)

// Keys returns the Double Metaphone codes for every word of name.
// Primary and secondary codes are both included; empty codes are
// dropped.
func Keys(name string) []string {
	var keys []string
	for _, word := range normalize.Parts(name) {
		primary, secondary := matchr.DoubleMetaphone(word)
		if primary != "" {
			keys = append(keys, primary)
		}
		if secondary != "" && secondary != primary {
			keys = append(keys, secondary)
		}
	}
	return keys
}

// Match reports whether two names share at least one phonetic code.
func Match(a, b string) bool {
	bKeys := Keys(b)
	for _, ka := range Keys(a) {
		for _, kb := range bKeys {
			if ka == kb {
				return true
			}
		}
	}
	return false
}

// Similarity is the Jaro-Winkler similarity of the canonical forms,
// in [0, 1]. Used to rank phonetic candidates.
func Similarity(a, b string) float64 {
	return matchr.JaroWinkler(strings.ToLower(normalize.Canonical(a)), strings.ToLower(normalize.Canonical(b)), false)
}
