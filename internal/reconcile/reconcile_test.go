package reconcile

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom-roster/internal/resolver"
	"github.com/classroom-roster/internal/roster"
)

func fixture(t *testing.T) (*roster.Store, *Reconciler) {
	t.Helper()
	store := roster.NewStore(time.Now())
	for _, n := range [][2]string{{"Jane", "Doe"}, {"Janet", "Doe"}, {"Robert", "Roe"}} {
		s := roster.NewStudent(n[0], n[1])
		s.Homeroom = "Smith"
		require.NoError(t, store.AddStudent(s))
		hr := store.EnsureHomeroom("Smith", 5, "5th Grade")
		hr.Students = append(hr.Students, s)
	}
	res := resolver.New(store, nil, zerolog.Nop())
	return store, New(res, zerolog.Nop())
}

func TestAttendanceAttachesToResolvedStudents(t *testing.T) {
	store, rc := fixture(t)
	smith := store.Homeroom("Smith").Students

	rows := []AttendanceRow{
		{RawName: "Jane Doe", Date: "2026-09-14", Status: "present", Minutes: 45},
		{RawName: "robert roe", Date: "2026-09-14", Status: "late", Minutes: 30},
		{RawName: "Mystery Guest", Date: "2026-09-14", Status: "present"},
	}
	result := rc.Attendance(rows, resolver.Options{Subgroup: smith})

	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, []string{"Mystery Guest"}, result.Unmatched)

	jane := store.LookupExact("Jane Doe")[0]
	entry, ok := jane.Attendance["2026-09-14"]
	require.True(t, ok)
	assert.Equal(t, "present", entry.Status)
	assert.Equal(t, 45, entry.Minutes)

	robert := store.LookupExact("Robert Roe")[0]
	assert.Equal(t, "late", robert.Attendance["2026-09-14"].Status)
}

func TestAttendanceLaterRowWins(t *testing.T) {
	store, rc := fixture(t)

	rows := []AttendanceRow{
		{RawName: "Jane Doe", Date: "2026-09-14", Status: "absent"},
		{RawName: "Jane Doe", Date: "2026-09-14", Status: "present", Minutes: 40},
	}
	result := rc.Attendance(rows, resolver.Options{})

	assert.Equal(t, 2, result.Matched)
	jane := store.LookupExact("Jane Doe")[0]
	assert.Equal(t, "present", jane.Attendance["2026-09-14"].Status)
}

func TestSubmissions(t *testing.T) {
	store, rc := fixture(t)

	rows := []SubmissionRow{
		{RawName: "Jane Doe", Assignment: "Essay 1", Score: 92.5},
		{RawName: "Nobody", Assignment: "Essay 1", Score: 50},
	}
	result := rc.Submissions(rows, resolver.Options{})

	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, []string{"Nobody"}, result.Unmatched)
	jane := store.LookupExact("Jane Doe")[0]
	assert.Equal(t, 92.5, jane.Submissions["Essay 1"])
}
