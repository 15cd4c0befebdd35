package resolver

import (
	"sort"

	"github.com/classroom-roster/internal/phonetics"
	"github.com/classroom-roster/internal/roster"
)

// soundsLikeThreshold is the minimum Jaro-Winkler similarity for a
// phonetic candidate to be reported.
const soundsLikeThreshold = 0.85

// PhoneticHit is a sounds-like candidate with its ranking similarity.
type PhoneticHit struct {
	Student    *roster.Student
	Similarity float64
}

// SoundsLike finds students whose name sounds like the query: students
// sharing a Double Metaphone code with any query word are ranked by
// Jaro-Winkler similarity of the full names, best first. Useful when a
// name arrived by ear rather than in writing.
func (r *Resolver) SoundsLike(raw string) []PhoneticHit {
	var hits []PhoneticHit
	for _, s := range r.store.Students() {
		if !phonetics.Match(raw, s.FullName()) {
			continue
		}
		sim := phonetics.Similarity(raw, s.FullName())
		if sim < soundsLikeThreshold {
			continue
		}
		hits = append(hits, PhoneticHit{Student: s, Similarity: sim})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	return hits
}
