package roster

// Homeroom is a teacher's class. It holds non-owning references to
// students, which belong to the Store.
type Homeroom struct {
	Name       string
	GradeLevel int
	GradeText  string
	Students   []*Student
}

// Group is an ad-hoc cohort (clubs, pull-out groups, meeting rosters)
// used only to scope subgroup disambiguation.
type Group struct {
	Name     string
	Students []*Student
}
