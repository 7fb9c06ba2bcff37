// Package cycle derives menstrual-cycle statistics and predictions from a
// user's period history. Every function is pure: the current date is always an
// explicit parameter, and history slices are never mutated in place.
package cycle

import (
	"sort"
	"time"
)

// PeriodRecord is one logged stretch of bleeding days. Records in a user's
// history are unique per start date.
type PeriodRecord struct {
	StartDate    time.Time `json:"start_date"`
	DurationDays int       `json:"duration_days"`
}

// EndDate is the last bleeding day, inclusive of the start date.
func (r PeriodRecord) EndDate() time.Time {
	return r.StartDate.AddDate(0, 0, r.DurationDays-1)
}

// Date normalizes a time to its calendar date in UTC. All package functions
// expect dates normalized this way.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours() / 24)
}

func sortedByStart(history []PeriodRecord) []PeriodRecord {
	sorted := make([]PeriodRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}

// Latest returns the record with the most recent start date.
func Latest(history []PeriodRecord) (PeriodRecord, bool) {
	if len(history) == 0 {
		return PeriodRecord{}, false
	}
	latest := history[0]
	for _, r := range history[1:] {
		if r.StartDate.After(latest.StartDate) {
			latest = r
		}
	}
	return latest, true
}

// AddPeriod appends a record to the history. A record with an identical start
// date is replaced so that start dates stay unique.
func AddPeriod(history []PeriodRecord, start time.Time, durationDays int) ([]PeriodRecord, error) {
	if durationDays < 1 {
		return nil, ErrInvalidRange
	}
	start = Date(start)
	updated := make([]PeriodRecord, 0, len(history)+1)
	for _, r := range history {
		if !r.StartDate.Equal(start) {
			updated = append(updated, r)
		}
	}
	return append(updated, PeriodRecord{StartDate: start, DurationDays: durationDays}), nil
}

// AddPeriodWithDates derives the duration from an inclusive date range.
func AddPeriodWithDates(history []PeriodRecord, start, end time.Time) ([]PeriodRecord, error) {
	if Date(end).Before(Date(start)) {
		return nil, ErrInvalidRange
	}
	return AddPeriod(history, start, daysBetween(start, end)+1)
}

// UpdatePeriodEndDate recomputes the duration of the record starting on start.
func UpdatePeriodEndDate(history []PeriodRecord, start, newEnd time.Time) ([]PeriodRecord, error) {
	start = Date(start)
	if Date(newEnd).Before(start) {
		return nil, ErrInvalidRange
	}
	updated := make([]PeriodRecord, len(history))
	copy(updated, history)
	for i, r := range updated {
		if Date(r.StartDate).Equal(start) {
			updated[i].DurationDays = daysBetween(start, newEnd) + 1
			return updated, nil
		}
	}
	return nil, ErrNotFound
}

// RemovePeriod deletes the record starting on start.
func RemovePeriod(history []PeriodRecord, start time.Time) ([]PeriodRecord, error) {
	start = Date(start)
	updated := make([]PeriodRecord, 0, len(history))
	found := false
	for _, r := range history {
		if Date(r.StartDate).Equal(start) {
			found = true
			continue
		}
		updated = append(updated, r)
	}
	if !found {
		return nil, ErrNotFound
	}
	return updated, nil
}

// OverlapsExisting reports whether the inclusive range [start, end] touches any
// stored record. The engine accepts overlapping records; callers use this to
// ask for confirmation before saving.
func OverlapsExisting(history []PeriodRecord, start, end time.Time) bool {
	start, end = Date(start), Date(end)
	for _, r := range history {
		if !start.After(Date(r.EndDate())) && !end.Before(Date(r.StartDate)) {
			return true
		}
	}
	return false
}
