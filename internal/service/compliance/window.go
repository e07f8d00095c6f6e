package compliance

import (
	"sort"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
)

// SortOccurrences orders one person's occurrences ascending by start time.
// Ties break on assignment id so evaluation order is deterministic.
func SortOccurrences(occs []compliance.Occurrence) {
	sort.Slice(occs, func(i, j int) bool {
		if !occs[i].StartDateTime.Equal(occs[j].StartDateTime) {
			return occs[i].StartDateTime.Before(occs[j].StartDateTime)
		}
		return occs[i].AssignmentID < occs[j].AssignmentID
	})
}

// TrailingWindow converts a window size in calendar days into the trailing
// duration RollingHours expects. A 7-day window ending at a shift's start
// reaches back 6 days: the window is [start - 6d, start] inclusive, so a
// same-clock shift a full week earlier stays outside it.
func TrailingWindow(days int) time.Duration {
	return time.Duration(days-1) * 24 * time.Hour
}

// RollingHours sums DurationHours over every occurrence at index <= i whose
// start falls inside the trailing window ending at occurrence i's own start
// time (inclusive on both ends). Only indices at or before i count, so the
// series respects causality: each occurrence is evaluated as of its own
// start, and later roster changes cannot reach backwards.
func RollingHours(occs []compliance.Occurrence, i int, window time.Duration) float64 {
	end := occs[i].StartDateTime
	start := end.Add(-window)

	var sum float64
	for j := i; j >= 0; j-- {
		s := occs[j].StartDateTime
		if s.Before(start) {
			break
		}
		sum += occs[j].DurationHours
	}
	return sum
}

// DistinctWorkedDays counts distinct calendar dates with at least one
// occurrence in the trailing window of windowDays ending at occurrence i.
// The window follows the same convention as TrailingWindow: 14 days means
// [start - 13d, start] inclusive.
func DistinctWorkedDays(occs []compliance.Occurrence, i int, windowDays int) int {
	end := occs[i].StartDateTime
	start := end.AddDate(0, 0, -(windowDays - 1))

	days := make(map[string]struct{})
	for j := i; j >= 0; j-- {
		s := occs[j].StartDateTime
		if s.Before(start) {
			break
		}
		days[occs[j].Date.Format("2006-01-02")] = struct{}{}
	}
	return len(days)
}
