package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/classroom-roster/internal/roster"
)

// The record graph is cyclic (guardian <-> student, homeroom ->
// students), so the snapshot flattens it: guardians and membership
// lists reference students by their surrogate ID and the graph is
// rewired on decode.

type snapshot struct {
	CreatedAt time.Time     `json:"created_at"`
	Students  []studentRec  `json:"students"`
	Homerooms []homeroomRec `json:"homerooms"`
	Groups    []groupRec    `json:"groups"`
}

type studentRec struct {
	ID          int                               `json:"id"`
	FirstName   string                            `json:"first_name"`
	LastName    string                            `json:"last_name"`
	StudentID   string                            `json:"student_id,omitempty"`
	Homeroom    string                            `json:"homeroom"`
	GradeLevel  int                               `json:"grade_level,omitempty"`
	GradeText   string                            `json:"grade_text,omitempty"`
	Groups      []string                          `json:"groups,omitempty"`
	Email       string                            `json:"email,omitempty"`
	Guardians   []guardianRec                     `json:"guardians,omitempty"`
	Attendance  map[string]roster.AttendanceEntry `json:"attendance,omitempty"`
	Submissions map[string]float64                `json:"submissions,omitempty"`
}

type guardianRec struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          int64  `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Relationship   string `json:"relationship,omitempty"`
	AllowContact   bool   `json:"allow_contact"`
	PrimaryContact bool   `json:"primary_contact"`
	ResidesWith    bool   `json:"resides_with"`
	Comments       string `json:"comments,omitempty"`
}

type homeroomRec struct {
	Name       string `json:"name"`
	GradeLevel int    `json:"grade_level,omitempty"`
	GradeText  string `json:"grade_text,omitempty"`
	StudentIDs []int  `json:"student_ids"`
}

type groupRec struct {
	Name       string `json:"name"`
	StudentIDs []int  `json:"student_ids"`
}

// Encode serializes the store into a snapshot blob.
func Encode(store *roster.Store) ([]byte, error) {
	snap := snapshot{CreatedAt: store.CreatedAt}

	for _, s := range store.Students() {
		rec := studentRec{
			ID:          s.ID,
			FirstName:   s.FirstName,
			LastName:    s.LastName,
			StudentID:   s.StudentID,
			Homeroom:    s.Homeroom,
			GradeLevel:  s.GradeLevel,
			GradeText:   s.GradeText,
			Groups:      s.Groups,
			Email:       s.Email,
			Attendance:  s.Attendance,
			Submissions: s.Submissions,
		}
		for _, g := range s.Guardians {
			rec.Guardians = append(rec.Guardians, guardianRec{
				FirstName:      g.FirstName,
				LastName:       g.LastName,
				Phone:          g.Phone,
				Email:          g.Email,
				Relationship:   g.Relationship,
				AllowContact:   g.AllowContact,
				PrimaryContact: g.PrimaryContact,
				ResidesWith:    g.ResidesWith,
				Comments:       g.Comments,
			})
		}
		snap.Students = append(snap.Students, rec)
	}

	for _, hr := range store.Homerooms() {
		rec := homeroomRec{Name: hr.Name, GradeLevel: hr.GradeLevel, GradeText: hr.GradeText}
		for _, s := range hr.Students {
			rec.StudentIDs = append(rec.StudentIDs, s.ID)
		}
		snap.Homerooms = append(snap.Homerooms, rec)
	}
	for _, g := range store.Groups() {
		rec := groupRec{Name: g.Name}
		for _, s := range g.Students {
			rec.StudentIDs = append(rec.StudentIDs, s.ID)
		}
		snap.Groups = append(snap.Groups, rec)
	}

	return json.Marshal(snap)
}

// Decode rebuilds a store from a snapshot blob.
func Decode(blob []byte) (*roster.Store, error) {
	var snap snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	store := roster.NewStore(snap.CreatedAt)
	byID := make(map[int]*roster.Student, len(snap.Students))

	for _, rec := range snap.Students {
		s := roster.NewStudent(rec.FirstName, rec.LastName)
		s.StudentID = rec.StudentID
		s.Homeroom = rec.Homeroom
		s.GradeLevel = rec.GradeLevel
		s.GradeText = rec.GradeText
		s.Groups = rec.Groups
		s.Email = rec.Email
		if len(rec.Attendance) > 0 {
			s.Attendance = rec.Attendance
		}
		if len(rec.Submissions) > 0 {
			s.Submissions = rec.Submissions
		}
		if err := store.AddStudent(s); err != nil {
			return nil, fmt.Errorf("corrupt snapshot: %w", err)
		}
		byID[rec.ID] = s

		for _, gr := range rec.Guardians {
			g, err := roster.NewParentGuardian(s, gr.FirstName, gr.LastName)
			if err != nil {
				return nil, err
			}
			g.Phone = gr.Phone
			g.Email = gr.Email
			g.Relationship = gr.Relationship
			g.AllowContact = gr.AllowContact
			g.ResidesWith = gr.ResidesWith
			g.Comments = gr.Comments
			if gr.PrimaryContact {
				s.SetPrimaryContact(g)
			}
		}
	}

	for _, rec := range snap.Homerooms {
		hr := store.EnsureHomeroom(rec.Name, rec.GradeLevel, rec.GradeText)
		for _, id := range rec.StudentIDs {
			if s, ok := byID[id]; ok {
				hr.Students = append(hr.Students, s)
			}
		}
	}
	for _, rec := range snap.Groups {
		g := store.EnsureGroup(rec.Name)
		for _, id := range rec.StudentIDs {
			if s, ok := byID[id]; ok {
				g.Students = append(g.Students, s)
			}
		}
	}

	return store, nil
}
