package roster

import "errors"

// ErrGuardianWithoutStudent is returned when a guardian is constructed
// without an already-built student to attach to.
var ErrGuardianWithoutStudent = errors.New("roster: guardian requires an existing student")

// ParentGuardian is a contact record that always references exactly one
// constructed student.
type ParentGuardian struct {
	FirstName      string
	LastName       string
	Student        *Student
	Phone          int64 // 0 when no valid 10-11 digit number was supplied
	Email          string
	Relationship   string
	AllowContact   bool
	PrimaryContact bool
	ResidesWith    bool
	Comments       string
}

// NewParentGuardian creates a guardian attached to student and appends
// it to the student's guardian list.
func NewParentGuardian(student *Student, first, last string) (*ParentGuardian, error) {
	if student == nil {
		return nil, ErrGuardianWithoutStudent
	}
	g := &ParentGuardian{
		FirstName: first,
		LastName:  last,
		Student:   student,
	}
	student.Guardians = append(student.Guardians, g)
	return g, nil
}

// FullName is the guardian's derived display name.
func (g *ParentGuardian) FullName() string {
	return g.FirstName + " " + g.LastName
}
