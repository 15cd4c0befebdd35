// Package reconcile attaches attendance and assignment exports to
// roster students via the name resolver. It decides nothing about
// matching itself; rows the resolver cannot place are reported back for
// manual review.
package reconcile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/classroom-roster/internal/resolver"
	"github.com/classroom-roster/internal/roster"
)

// AttendanceRow is one line of a meeting/attendance export.
type AttendanceRow struct {
	RawName string
	Date    string
	Status  string
	Minutes int
}

// SubmissionRow is one line of an assignment export.
type SubmissionRow struct {
	RawName    string
	Assignment string
	Score      float64
}

// Result summarizes one reconciliation pass.
type Result struct {
	Matched   int
	Unmatched []string
}

// Reconciler runs exports through a resolver and mutates the matched
// students.
type Reconciler struct {
	res *resolver.Resolver
	log zerolog.Logger
}

// New creates a reconciler on top of res.
func New(res *resolver.Resolver, log zerolog.Logger) *Reconciler {
	return &Reconciler{res: res, log: log}
}

// Attendance attaches each row to its student's attendance map, keyed
// by date. A later row for the same date overwrites the earlier one,
// matching how meeting platforms re-emit corrected logs.
func (rc *Reconciler) Attendance(rows []AttendanceRow, opts resolver.Options) Result {
	var result Result
	for _, row := range rows {
		s := rc.res.Resolve(row.RawName, opts)
		if s == nil {
			rc.log.Debug().Str("raw", row.RawName).Str("date", row.Date).Msg("attendance row unmatched")
			result.Unmatched = append(result.Unmatched, row.RawName)
			continue
		}
		s.Attendance[row.Date] = roster.AttendanceEntry{
			Date:    row.Date,
			Status:  row.Status,
			Minutes: row.Minutes,
		}
		result.Matched++
	}
	return result
}

// Submissions attaches assignment scores to matched students.
func (rc *Reconciler) Submissions(rows []SubmissionRow, opts resolver.Options) Result {
	var result Result
	for _, row := range rows {
		s := rc.res.Resolve(row.RawName, opts)
		if s == nil {
			rc.log.Debug().Str("raw", row.RawName).Str("assignment", row.Assignment).Msg("submission row unmatched")
			result.Unmatched = append(result.Unmatched, row.RawName)
			continue
		}
		s.Submissions[row.Assignment] = row.Score
		result.Matched++
	}
	return result
}

// ReadAttendanceCSV loads an attendance export: name, date, status and
// an optional minutes column. No header row is expected; meeting
// platforms export bare rows.
func ReadAttendanceCSV(path string) ([]AttendanceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var rows []AttendanceRow
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		row := AttendanceRow{
			RawName: strings.TrimSpace(rec[0]),
			Date:    strings.TrimSpace(rec[1]),
			Status:  strings.TrimSpace(rec[2]),
		}
		if len(rec) > 3 {
			if m, err := strconv.Atoi(strings.TrimSpace(rec[3])); err == nil {
				row.Minutes = m
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
