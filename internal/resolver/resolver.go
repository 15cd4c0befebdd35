// Package resolver maps raw, inconsistently formatted name strings
// (grading UIs, CSV exports, meeting logs) onto roster records. The
// strategies are tiered: exact lookup, manual override substitution,
// global fuzzy match, then subgroup-scoped disambiguation, returning on
// the first tier that produces a confident, unambiguous hit.
package resolver

import (
	"github.com/rs/zerolog"

	"github.com/classroom-roster/internal/normalize"
	"github.com/classroom-roster/internal/roster"
	"github.com/classroom-roster/internal/similarity"
)

// DefaultThreshold is the minimum fuzzy score accepted when the caller
// does not pick one.
const DefaultThreshold = 90

// Options scopes a single resolution.
type Options struct {
	// Threshold is the minimum fuzzy confidence in (0, 100].
	// Zero means DefaultThreshold. Exact matches bypass it.
	Threshold int
	// Subgroup restricts fallback disambiguation to these students
	// (one homeroom, one meeting's grade level).
	Subgroup []*roster.Student
	// ScanRoster lets the subgroup fallback run against the whole
	// roster when no subgroup was supplied.
	ScanRoster bool
}

func (o Options) threshold() int {
	if o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// Resolver resolves raw names against one record store. It holds no
// global state; every call site receives its resolver explicitly.
type Resolver struct {
	store     *roster.Store
	overrides Overrides
	log       zerolog.Logger
}

// New creates a resolver over store. overrides may be nil.
func New(store *roster.Store, overrides Overrides, log zerolog.Logger) *Resolver {
	return &Resolver{store: store, overrides: overrides, log: log}
}

// Resolve maps a raw name to a student, or nil when no tier produces a
// confident match. An unmatched name is not an error; the caller
// decides whether to skip, prompt or flag the row.
func (r *Resolver) Resolve(raw string, opts Options) *roster.Student {
	name := raw

	if s := r.exact(name, opts.Subgroup); s != nil {
		return s
	}

	// One bounded substitution pass, then the remaining tiers run on
	// the corrected string. Never recursive.
	if corrected, ok := r.overrides.Apply(name); ok {
		r.log.Debug().Str("raw", raw).Str("corrected", corrected).Msg("manual override applied")
		name = corrected
		if s := r.exact(name, opts.Subgroup); s != nil {
			return s
		}
	}

	if s := r.globalFuzzy(name, opts); s != nil {
		return s
	}

	if s := r.subgroupFallback(name, opts); s != nil {
		return s
	}

	r.log.Debug().Str("raw", raw).Msg("no match")
	return nil
}

// exact looks the canonical name up in the store's full-name index. An
// exact hit is always trusted, but when several students share the name
// the subgroup must single one out.
func (r *Resolver) exact(name string, subgroup []*roster.Student) *roster.Student {
	candidates := r.store.LookupExact(name)
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}
	narrowed := intersect(candidates, subgroup)
	if len(narrowed) == 1 {
		return narrowed[0]
	}
	r.log.Debug().Str("name", name).Int("candidates", len(candidates)).Msg("exact match ambiguous")
	return nil
}

// globalFuzzy runs the similarity matcher against every indexed full
// name. The winning name must clear the threshold and must map to a
// single student (directly or after subgroup narrowing).
func (r *Resolver) globalFuzzy(name string, opts Options) *roster.Student {
	pool := r.store.IndexedNames()
	best, err := similarity.ExtractOne(name, pool)
	if err != nil {
		return nil
	}
	if best.Score < opts.threshold() {
		return nil
	}
	candidates := r.store.LookupExact(best.Value)
	if len(candidates) == 1 {
		return candidates[0]
	}
	narrowed := intersect(candidates, opts.Subgroup)
	if len(narrowed) == 1 {
		return narrowed[0]
	}
	r.log.Debug().Str("name", name).Str("matched", best.Value).Int("score", best.Score).
		Msg("global fuzzy match ambiguous")
	return nil
}

// subgroupFallback splits the raw name on whitespace and tries each
// part within the subgroup, as a last name first and then as a first
// name. Short or partial names (first name only, "Jane D") resolve here
// when the global search cannot score them confidently.
func (r *Resolver) subgroupFallback(name string, opts Options) *roster.Student {
	subgroup := opts.Subgroup
	if len(subgroup) == 0 && opts.ScanRoster {
		subgroup = r.store.Students()
	}
	if len(subgroup) == 0 {
		return nil
	}
	for _, part := range normalize.Parts(name) {
		if s := r.ResolveInSubgroup(part, subgroup, roster.LastName, opts.threshold()); s != nil {
			return s
		}
		if s := r.ResolveInSubgroup(part, subgroup, roster.FirstName, opts.threshold()); s != nil {
			return s
		}
	}
	return nil
}

// ResolveInSubgroup resolves a name part against one field of the
// subgroup members. When the two best candidates carry the same name
// value, two distinct students cannot be told apart and the part stays
// unresolved no matter how well it scored: attaching data to the wrong
// student is worse than attaching nothing.
func (r *Resolver) ResolveInSubgroup(part string, subgroup []*roster.Student, field roster.NameField, threshold int) *roster.Student {
	if len(subgroup) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	pool := make([]string, len(subgroup))
	byValue := make(map[string][]*roster.Student, len(subgroup))
	for i, s := range subgroup {
		value := s.Name(field)
		pool[i] = value
		key := normalize.Canonical(value)
		byValue[key] = append(byValue[key], s)
	}

	top, err := similarity.ExtractTop(part, pool, 2)
	if err != nil {
		return nil
	}
	if len(top) >= 2 && normalize.Canonical(top[0].Value) == normalize.Canonical(top[1].Value) {
		r.log.Debug().Str("part", part).Str("field", string(field)).Str("value", top[0].Value).
			Msg("subgroup match ambiguous")
		return nil
	}
	if top[0].Score < threshold {
		return nil
	}

	owners := byValue[normalize.Canonical(top[0].Value)]
	if len(owners) != 1 {
		// The pool was built from the subgroup, so a winner that maps
		// back to anything but one student is a bookkeeping bug.
		r.log.Error().Str("part", part).Str("value", top[0].Value).Int("owners", len(owners)).
			Msg("candidate pool desync")
		return nil
	}
	return owners[0]
}

// intersect filters candidates down to those present in subgroup. A nil
// subgroup narrows nothing.
func intersect(candidates, subgroup []*roster.Student) []*roster.Student {
	if len(subgroup) == 0 {
		return nil
	}
	members := make(map[int]bool, len(subgroup))
	for _, s := range subgroup {
		members[s.ID] = true
	}
	var out []*roster.Student
	for _, c := range candidates {
		if members[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
