// Package roster holds the in-memory record store built once per school
// year: students, homerooms, ad-hoc groups and parent/guardian contacts.
package roster

// NameField selects which name of a student a matcher compares against.
type NameField string

const (
	FirstName NameField = "first_name"
	LastName  NameField = "last_name"
	FullName  NameField = "full_name"
)

// AttendanceEntry is one attendance/meeting record attached to a
// student, keyed by date in Student.Attendance.
type AttendanceEntry struct {
	Date    string
	Status  string
	Minutes int
}

// Student is the central record. First and last name are fixed at
// construction; the auxiliary maps are always present (empty until the
// term's data arrives) so the entity has one shape on every code path.
type Student struct {
	ID          int
	FirstName   string
	LastName    string
	StudentID   string
	Homeroom    string
	GradeLevel  int // 0 when the grade text could not be parsed
	GradeText   string
	Groups      []string
	Email       string
	Guardians   []*ParentGuardian
	Primary     *ParentGuardian
	Attendance  map[string]AttendanceEntry
	Submissions map[string]float64
}

// NewStudent creates a student with its auxiliary maps initialized.
func NewStudent(first, last string) *Student {
	return &Student{
		FirstName:   first,
		LastName:    last,
		Attendance:  make(map[string]AttendanceEntry),
		Submissions: make(map[string]float64),
	}
}

// FullName is the derived display name, first + " " + last.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Name returns the requested name field value.
func (s *Student) Name(field NameField) string {
	switch field {
	case FirstName:
		return s.FirstName
	case LastName:
		return s.LastName
	default:
		return s.FullName()
	}
}

// SetPrimaryContact marks g as the student's primary contact,
// replacing any previous designation so at most one guardian holds it.
func (s *Student) SetPrimaryContact(g *ParentGuardian) {
	if s.Primary != nil {
		s.Primary.PrimaryContact = false
	}
	s.Primary = g
	g.PrimaryContact = true
}
