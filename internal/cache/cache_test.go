package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom-roster/internal/roster"
)

func fixtureStore(t *testing.T, created time.Time) *roster.Store {
	t.Helper()
	store := roster.NewStore(created)

	jane := roster.NewStudent("Jane", "Doe")
	jane.Homeroom = "Smith"
	jane.GradeLevel = 5
	jane.Email = "jane@x.com"
	require.NoError(t, store.AddStudent(jane))
	jane.Attendance["2026-05-01"] = roster.AttendanceEntry{Date: "2026-05-01", Status: "present", Minutes: 45}
	jane.Submissions["Essay 1"] = 92.5

	g, err := roster.NewParentGuardian(jane, "John", "Doe")
	require.NoError(t, err)
	g.Phone = 5551234567
	g.AllowContact = true
	g.ResidesWith = true
	jane.SetPrimaryContact(g)

	hr := store.EnsureHomeroom("Smith", 5, "5th Grade")
	hr.Students = append(hr.Students, jane)
	grp := store.EnsureGroup("Chess Club")
	grp.Students = append(grp.Students, jane)

	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	created := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	store := fixtureStore(t, created)

	blob, err := Encode(store)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)

	assert.True(t, decoded.CreatedAt.Equal(created))
	require.Len(t, decoded.Students(), 1)

	jane := decoded.LookupExact("Jane Doe")[0]
	assert.Equal(t, 5, jane.GradeLevel)
	assert.Equal(t, "jane@x.com", jane.Email)
	assert.Equal(t, "present", jane.Attendance["2026-05-01"].Status)
	assert.Equal(t, 92.5, jane.Submissions["Essay 1"])

	require.Len(t, jane.Guardians, 1)
	g := jane.Guardians[0]
	assert.Equal(t, int64(5551234567), g.Phone)
	assert.Same(t, jane, g.Student)
	assert.Same(t, g, jane.Primary)

	require.NotNil(t, decoded.Homeroom("Smith"))
	assert.Same(t, jane, decoded.Homeroom("Smith").Students[0])
	require.NotNil(t, decoded.Group("Chess Club"))
	assert.Same(t, jane, decoded.Group("Chess Club").Students[0])
}

func TestStale(t *testing.T) {
	date := func(month time.Month) time.Time {
		return time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		created time.Month
		now     time.Month
		want    bool
	}{
		{"spring snapshot read in fall", time.May, time.October, true},
		{"january snapshot read in november", time.January, time.November, true},
		{"june snapshot read in september", time.June, time.September, true},
		{"fall snapshot read in fall", time.September, time.October, false},
		{"summer snapshot read in fall", time.July, time.September, false},
		{"spring snapshot read in spring", time.March, time.April, false},
		{"spring snapshot read in winter", time.February, time.December, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stale(date(tt.created), date(tt.now)); got != tt.want {
				t.Errorf("Stale(%v, %v) = %v, want %v", tt.created, tt.now, got, tt.want)
			}
		})
	}
}

func TestCacheSaveLoad(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	created := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, c.Save(fixtureStore(t, created)))

	now := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC)
	store, err := c.Load(now)
	require.NoError(t, err)
	assert.Len(t, store.Students(), 1)
}

func TestCacheLoadNoSnapshot(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Load(time.Now())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestCacheLoadStaleSnapshot(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	created := time.Date(2026, time.May, 20, 8, 0, 0, 0, time.UTC)
	require.NoError(t, c.Save(fixtureStore(t, created)))

	fall := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC)
	_, err = c.Load(fall)
	assert.ErrorIs(t, err, ErrStaleSnapshot)

	// The same snapshot is still readable outside the fall window.
	spring := time.Date(2026, time.May, 25, 8, 0, 0, 0, time.UTC)
	_, err = c.Load(spring)
	assert.NoError(t, err)
}
