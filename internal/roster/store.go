package roster

import (
	"fmt"
	"time"

	"github.com/classroom-roster/internal/normalize"
)

// Store is the root of the record graph and the unit of persistence.
// Identity is the surrogate Student.ID; the full-name index is only a
// lookup aid and may legitimately hold several students for one name.
type Store struct {
	students  []*Student
	byName    map[string][]*Student
	homerooms map[string]*Homeroom
	groups    map[string]*Group
	CreatedAt time.Time
}

// NewStore creates an empty record store stamped with now.
func NewStore(now time.Time) *Store {
	return &Store{
		byName:    make(map[string][]*Student),
		homerooms: make(map[string]*Homeroom),
		groups:    make(map[string]*Group),
		CreatedAt: now,
	}
}

// AddStudent assigns the student its ID and indexes it by canonical
// full name. Two students may share a full name as long as they sit in
// different homerooms; a name+homeroom collision means the input data
// cannot be told apart and is rejected rather than silently merged.
func (st *Store) AddStudent(s *Student) error {
	key := normalize.Canonical(s.FullName())
	for _, existing := range st.byName[key] {
		if existing.Homeroom == s.Homeroom {
			return fmt.Errorf("roster: duplicate student %q in homeroom %q", s.FullName(), s.Homeroom)
		}
	}
	s.ID = len(st.students) + 1
	st.students = append(st.students, s)
	st.byName[key] = append(st.byName[key], s)
	return nil
}

// LookupExact returns every student whose canonical full name equals
// the canonical form of name. Zero, one or several students may match.
func (st *Store) LookupExact(name string) []*Student {
	return st.byName[normalize.Canonical(name)]
}

// Students returns all students in insertion (ID) order.
func (st *Store) Students() []*Student {
	return st.students
}

// IndexedNames returns the distinct canonical full names known to the
// store, in insertion order. This is the global fuzzy candidate pool.
func (st *Store) IndexedNames() []string {
	seen := make(map[string]bool, len(st.byName))
	var names []string
	for _, s := range st.students {
		key := normalize.Canonical(s.FullName())
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
	}
	return names
}

// Guardians returns every guardian in the store, in student order.
func (st *Store) Guardians() []*ParentGuardian {
	var out []*ParentGuardian
	for _, s := range st.students {
		out = append(out, s.Guardians...)
	}
	return out
}

// EnsureHomeroom returns the named homeroom, creating it on first use.
func (st *Store) EnsureHomeroom(name string, gradeLevel int, gradeText string) *Homeroom {
	if hr, ok := st.homerooms[name]; ok {
		return hr
	}
	hr := &Homeroom{Name: name, GradeLevel: gradeLevel, GradeText: gradeText}
	st.homerooms[name] = hr
	return hr
}

// Homeroom returns the named homeroom, or nil.
func (st *Store) Homeroom(name string) *Homeroom {
	return st.homerooms[name]
}

// Homerooms returns the homeroom map keyed by teacher name.
func (st *Store) Homerooms() map[string]*Homeroom {
	return st.homerooms
}

// EnsureGroup returns the named group, creating it on first use.
func (st *Store) EnsureGroup(name string) *Group {
	if g, ok := st.groups[name]; ok {
		return g
	}
	g := &Group{Name: name}
	st.groups[name] = g
	return g
}

// Group returns the named group, or nil.
func (st *Store) Group(name string) *Group {
	return st.groups[name]
}

// Groups returns the group map keyed by group name.
func (st *Store) Groups() map[string]*Group {
	return st.groups
}
