// Package importer builds a record store from the yearly OnCourse-style
// CSV exports: a student roster pass followed by a parent/guardian
// pass. Validation is fail-fast; a store that comes back with an error
// must be discarded, never published.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/classroom-roster/internal/normalize"
	"github.com/classroom-roster/internal/roster"
)

// Grade levels this toolkit serves. Free-text grade fields are scanned
// for a number in this range; anything else stays as raw text.
const (
	minGradeLevel = 4
	maxGradeLevel = 7
)

var digitRun = regexp.MustCompile(`\d+`)

// Importer turns CSV rows into a roster.Store.
type Importer struct {
	log zerolog.Logger
}

// New creates an importer.
func New(log zerolog.Logger) *Importer {
	return &Importer{log: log}
}

// ImportSchoolYear builds a fresh store from the student roster rows
// and the guardian rows, each including their header row. Any returned
// error means the store under construction was abandoned whole.
func (im *Importer) ImportSchoolYear(studentRows, guardianRows [][]string) (*roster.Store, error) {
	store := roster.NewStore(time.Now())
	if err := im.importStudents(store, studentRows); err != nil {
		return nil, err
	}
	if err := im.importGuardians(store, guardianRows); err != nil {
		return nil, err
	}
	return store, nil
}

func (im *Importer) importStudents(store *roster.Store, rows [][]string) error {
	if len(rows) == 0 {
		return &MissingHeaderError{File: "students", Header: HdrFirstName}
	}
	index, err := headerIndex("students", rows[0], studentRequired)
	if err != nil {
		return err
	}

	for _, row := range rows[1:] {
		first := normalize.Title(field(row, index, HdrFirstName))
		last := normalize.Title(field(row, index, HdrLastName))
		if first == "" && last == "" {
			continue // trailing blank lines are common in these exports
		}

		s := roster.NewStudent(first, last)
		s.Email = field(row, index, HdrEmail)
		s.StudentID = field(row, index, HdrStudentID)
		s.Homeroom = normalize.Title(field(row, index, HdrHomeroom))
		s.GradeText = field(row, index, HdrGrade)
		if level, ok := parseGradeLevel(s.GradeText); ok {
			s.GradeLevel = level
		}

		if err := store.AddStudent(s); err != nil {
			return err
		}
		hr := store.EnsureHomeroom(s.Homeroom, s.GradeLevel, s.GradeText)
		hr.Students = append(hr.Students, s)
	}
	im.log.Info().Int("students", len(store.Students())).Int("homerooms", len(store.Homerooms())).
		Msg("student roster imported")
	return nil
}

// importGuardians attaches guardians to students. Guardian rows come
// from the same SIS as the roster, so students are resolved by exact
// name only; a row that does not resolve is skipped, but a resolved
// student whose name disagrees with the row aborts the import.
func (im *Importer) importGuardians(store *roster.Store, rows [][]string) error {
	if len(rows) == 0 {
		return &MissingHeaderError{File: "guardians", Header: HdrGuardianFirst}
	}
	index, err := headerIndex("guardians", rows[0], guardianRequired)
	if err != nil {
		return err
	}

	attached := 0
	for _, row := range rows[1:] {
		expected := field(row, index, HdrStudentName)
		if expected == "" {
			continue
		}
		candidates := store.LookupExact(expected)
		if len(candidates) == 0 {
			im.log.Debug().Str("student", expected).Msg("guardian row references unknown student, skipping")
			continue
		}
		if len(candidates) > 1 {
			im.log.Warn().Str("student", expected).Int("candidates", len(candidates)).
				Msg("guardian row references ambiguous student name, skipping")
			continue
		}
		student := candidates[0]
		if normalize.Canonical(student.FullName()) != normalize.Canonical(expected) {
			return &IntegrityError{Expected: expected, Resolved: student.FullName()}
		}

		g, err := roster.NewParentGuardian(student,
			normalize.Title(field(row, index, HdrGuardianFirst)),
			normalize.Title(field(row, index, HdrGuardianLast)))
		if err != nil {
			return err
		}
		g.Email = field(row, index, HdrGuardianEmail)
		g.Relationship = field(row, index, HdrRelationship)
		applyPhone(g, field(row, index, HdrPhone))

		if g.AllowContact, err = parseBool(HdrAllowContact, field(row, index, HdrAllowContact)); err != nil {
			return err
		}
		if g.ResidesWith, err = parseBool(HdrResidesWith, field(row, index, HdrResidesWith)); err != nil {
			return err
		}
		primary, err := parseBool(HdrPrimaryContact, field(row, index, HdrPrimaryContact))
		if err != nil {
			return err
		}
		if primary {
			if student.Primary != nil {
				im.log.Warn().Str("student", student.FullName()).
					Msg("multiple primary contacts in input, keeping the last")
			}
			student.SetPrimaryContact(g)
		}
		attached++
	}
	im.log.Info().Int("guardians", attached).Msg("guardians imported")
	return nil
}

// parseGradeLevel extracts a served grade number from free text
// ("5th Grade", "Grade 5"). Text without one is tolerated: downstream
// consumers accept either the number or the original string.
func parseGradeLevel(text string) (int, bool) {
	for _, run := range digitRun.FindAllString(text, -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			continue
		}
		if n >= minGradeLevel && n <= maxGradeLevel {
			return n, true
		}
	}
	return 0, false
}

// applyPhone cleans a raw phone field down to its digits. A 10-11 digit
// number populates the phone field; longer strings are preserved in the
// comments for a human to untangle; shorter fragments carry no usable
// information and are dropped.
func applyPhone(g *roster.ParentGuardian, raw string) {
	digits := normalize.Digits(raw)
	switch {
	case len(digits) >= 10 && len(digits) <= 11:
		n, err := strconv.ParseInt(digits, 10, 64)
		if err == nil {
			g.Phone = n
		}
	case len(digits) > 11:
		if g.Comments != "" {
			g.Comments += "; "
		}
		g.Comments += fmt.Sprintf("unparsed phone: %s", raw)
	}
}

// parseBool converts a Y/N flag. Anything else fails the import.
func parseBool(fieldName, value string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, &BoolFieldError{Field: fieldName, Value: value}
	}
}

// ReadCSVFile loads a whole CSV file including its header row. Ragged
// rows are allowed; header validation happens during import.
func ReadCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}
