// Package similarity scores how closely a raw query string resembles
// candidate strings, on a 0-100 scale where 100 means the two are equal
// after canonical normalization.
package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/classroom-roster/internal/normalize"
)

// ErrEmptyCandidatePool is returned when a match is requested against
// zero candidates.
var ErrEmptyCandidatePool = errors.New("similarity: empty candidate pool")

// Match is a scored candidate.
type Match struct {
	Value string
	Score int
}

// Ratio scores the similarity of two strings in [0, 100]. Both inputs
// are canonicalized first; canonical equality always scores 100. The
// score is the better of the plain edit-distance ratio and the
// token-sorted ratio, so "Doe Jane" still scores well against
// "Jane Doe".
func Ratio(a, b string) int {
	ca := normalize.Canonical(a)
	cb := normalize.Canonical(b)
	if ca == cb {
		return 100
	}
	plain := levRatio(ca, cb)
	sorted := levRatio(tokenSort(ca), tokenSort(cb))
	if sorted > plain {
		return sorted
	}
	return plain
}

// levRatio maps unit-cost Levenshtein distance onto [0, 100]:
// round(100 * (la+lb-d) / (la+lb)).
func levRatio(a, b string) int {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la+lb == 0 {
		return 100
	}
	d := matchr.Levenshtein(a, b)
	return int(math.Round(100 * float64(la+lb-d) / float64(la+lb)))
}

func tokenSort(canonical string) string {
	tokens := strings.Fields(canonical)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// ExtractTop ranks the candidate pool against query and returns the
// best n matches, highest score first. Ties keep pool order, so the
// ranking is deterministic. The pool must be non-empty.
func ExtractTop(query string, pool []string, n int) ([]Match, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyCandidatePool
	}
	ranked := make([]Match, len(pool))
	for i, cand := range pool {
		ranked[i] = Match{Value: cand, Score: Ratio(query, cand)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}

// ExtractOne returns the single best match for query in pool.
func ExtractOne(query string, pool []string) (Match, error) {
	top, err := ExtractTop(query, pool, 1)
	if err != nil {
		return Match{}, err
	}
	return top[0], nil
}
