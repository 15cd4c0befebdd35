package resolver

import (
	"github.com/classroom-roster/internal/normalize"
	"github.com/classroom-roster/internal/roster"
	"github.com/classroom-roster/internal/similarity"
)

// ResolveGuardian maps a raw name to a parent/guardian record: exact
// canonical match first, then a global fuzzy match over guardian full
// names at the given threshold. A best name shared by several guardians
// is ambiguous and resolves to nil.
func (r *Resolver) ResolveGuardian(raw string, threshold int) *roster.ParentGuardian {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	guardians := r.store.Guardians()
	if len(guardians) == 0 {
		return nil
	}

	query := normalize.Canonical(raw)
	byName := make(map[string][]*roster.ParentGuardian, len(guardians))
	pool := make([]string, 0, len(guardians))
	for _, g := range guardians {
		key := normalize.Canonical(g.FullName())
		if len(byName[key]) == 0 {
			pool = append(pool, key)
		}
		byName[key] = append(byName[key], g)
	}

	if owners := byName[query]; len(owners) == 1 {
		return owners[0]
	} else if len(owners) > 1 {
		r.log.Debug().Str("raw", raw).Msg("guardian exact match ambiguous")
		return nil
	}

	best, err := similarity.ExtractOne(raw, pool)
	if err != nil || best.Score < threshold {
		return nil
	}
	if owners := byName[best.Value]; len(owners) == 1 {
		return owners[0]
	}
	r.log.Debug().Str("raw", raw).Str("matched", best.Value).Msg("guardian fuzzy match ambiguous")
	return nil
}
