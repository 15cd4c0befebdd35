package resolver

import (
	"sort"
	"strings"

	"github.com/classroom-roster/internal/normalize"
)

// Overrides maps known-bad raw strings (garbled usernames, chat
// handles) to the corrected canonical name to resolve instead. An empty
// table is a valid no-op.
type Overrides map[string]string

// Apply scans raw for the longest table key appearing as a canonical
// substring and returns the corrected name for it. The scan is a single
// pass: the returned string is never re-checked against the table.
func (o Overrides) Apply(raw string) (string, bool) {
	if len(o) == 0 {
		return raw, false
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	// Longest key first so the most specific override wins; ties break
	// lexically to keep the substitution deterministic.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	canonical := normalize.Canonical(raw)
	for _, k := range keys {
		if ck := normalize.Canonical(k); ck != "" && strings.Contains(canonical, ck) {
			return o[k], true
		}
	}
	return raw, false
}
