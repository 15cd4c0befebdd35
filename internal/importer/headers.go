package importer

import "strings"

// Recognized student roster headers (OnCourse export naming). Matching
// is case-insensitive; unrecognized extra columns are ignored.
const (
	HdrFirstName = "first name"
	HdrLastName  = "last name"
	HdrGrade     = "grade level"
	HdrHomeroom  = "homeroom teacher"
	HdrEmail     = "email address"
	HdrStudentID = "student id"
)

// Recognized guardian export headers.
const (
	HdrGuardianFirst  = "guardian first name"
	HdrGuardianLast   = "guardian last name"
	HdrStudentName    = "student full name"
	HdrPhone          = "phone number"
	HdrGuardianEmail  = "guardian email"
	HdrRelationship   = "relationship"
	HdrAllowContact   = "allow contact"
	HdrPrimaryContact = "primary contact"
	HdrResidesWith    = "student resides with"
)

var studentRequired = []string{HdrFirstName, HdrLastName, HdrGrade, HdrHomeroom, HdrEmail}

var guardianRequired = []string{
	HdrGuardianFirst, HdrGuardianLast, HdrStudentName, HdrPhone,
	HdrGuardianEmail, HdrRelationship, HdrAllowContact, HdrPrimaryContact,
	HdrResidesWith,
}

// headerIndex maps recognized header names to their column positions.
// Every required header must appear exactly once or the import fails
// naming the offending header.
func headerIndex(file string, header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		seen[key]++
		index[key] = i
	}
	for _, want := range required {
		switch seen[want] {
		case 0:
			return nil, &MissingHeaderError{File: file, Header: want}
		case 1:
		default:
			return nil, &DuplicateHeaderError{File: file, Header: want}
		}
	}
	return index, nil
}

// field returns the trimmed cell for a recognized header, or "" when
// the optional column is absent or the row is short.
func field(row []string, index map[string]int, header string) string {
	i, ok := index[header]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
