package compliance

import (
	"testing"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	warn := compliance.Violation{Kind: compliance.KindConsecutiveNights, Severity: compliance.SeverityWarning}
	level1 := compliance.Violation{Kind: compliance.KindWeeklyHours, Severity: compliance.SeverityLevel1}
	breach := compliance.Violation{Kind: compliance.KindRestGap, Severity: compliance.SeverityBreach}

	tests := []struct {
		name       string
		violations []compliance.Violation
		want       compliance.Status
	}{
		{"no violations", nil, compliance.StatusGreen},
		{"warnings only", []compliance.Violation{warn}, compliance.StatusAmber},
		{"level tiers only", []compliance.Violation{warn, level1}, compliance.StatusAmber},
		{"breach wins", []compliance.Violation{warn, level1, breach}, compliance.StatusRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.violations))
		})
	}
}

func TestReduceProject(t *testing.T) {
	t.Parallel()

	perEmployee := map[string][]compliance.Violation{
		"emp-clean": nil,
		"emp-warned": {
			{Kind: compliance.KindWeeklyHours, Severity: compliance.SeverityLevel1, EmployeeID: "emp-warned"},
		},
		"emp-breached": {
			{Kind: compliance.KindRestGap, Severity: compliance.SeverityBreach, EmployeeID: "emp-breached"},
			{Kind: compliance.KindConsecutiveNights, Severity: compliance.SeverityWarning, EmployeeID: "emp-breached"},
		},
	}

	eval := ReduceProject("proj-1", perEmployee)
	assert.Equal(t, "proj-1", eval.ProjectID)
	assert.False(t, eval.IsCompliant)
	assert.Equal(t, 1, eval.ErrorCount)
	assert.Equal(t, 2, eval.WarningCount)
	assert.Len(t, eval.Violations, 3)
	assert.Equal(t, compliance.StatusGreen, eval.PerEmployee["emp-clean"])
	assert.Equal(t, compliance.StatusAmber, eval.PerEmployee["emp-warned"])
	assert.Equal(t, compliance.StatusRed, eval.PerEmployee["emp-breached"])

	clean := ReduceProject("proj-2", map[string][]compliance.Violation{"emp-1": nil})
	assert.True(t, clean.IsCompliant)
	assert.Zero(t, clean.ErrorCount)
	assert.Zero(t, clean.WarningCount)
}

func TestCellFor(t *testing.T) {
	t.Parallel()

	day := func(n int) time.Time { return baseDay.AddDate(0, 0, n-1) }

	violations := []compliance.Violation{
		{Kind: compliance.KindRestGap, Severity: compliance.SeverityBreach, Date: day(2)},
		{Kind: compliance.KindWeeklyHours, Severity: compliance.SeverityLevel1, Date: day(5)},
		{
			Kind:      compliance.KindConsecutiveNights,
			Severity:  compliance.SeverityWarning,
			Date:      day(4),
			DateRange: &compliance.DateRange{From: day(2), To: day(4)},
		},
	}

	// Day 2: the rest-gap hits directly, the night run covers it, the
	// weekly violation is still ahead.
	cell := CellFor(violations, day(2))
	require.Len(t, cell.Today, 2)
	require.Len(t, cell.Later, 1)
	assert.Equal(t, compliance.KindWeeklyHours, cell.Later[0].Kind)

	// Day 3: only the night run's range covers it.
	cell = CellFor(violations, day(3))
	require.Len(t, cell.Today, 1)
	assert.Equal(t, compliance.KindConsecutiveNights, cell.Today[0].Kind)
	assert.Len(t, cell.Later, 1)

	// Day 5: nothing later remains.
	cell = CellFor(violations, day(5))
	require.Len(t, cell.Today, 1)
	assert.Equal(t, compliance.KindWeeklyHours, cell.Today[0].Kind)
	assert.Empty(t, cell.Later)

	// Day 6: everything is in the past; neither bucket fills.
	cell = CellFor(violations, day(6))
	assert.Empty(t, cell.Today)
	assert.Empty(t, cell.Later)
}

// Matching is by calendar date, not UTC instant: a local midnight east of
// UTC is still the same day as a UTC midnight with the same date.
func TestCellFor_NonUTCDates(t *testing.T) {
	t.Parallel()

	sydney := time.FixedZone("AEST", 10*60*60)
	localDay := func(n int) time.Time {
		return time.Date(2025, 3, n, 0, 0, 0, 0, sydney)
	}
	utcDay := func(n int) time.Time {
		return time.Date(2025, 3, n, 0, 0, 0, 0, time.UTC)
	}

	violations := []compliance.Violation{
		{Kind: compliance.KindRestGap, Severity: compliance.SeverityBreach, Date: localDay(3)},
		{
			Kind:      compliance.KindConsecutiveNights,
			Severity:  compliance.SeverityWarning,
			Date:      localDay(7),
			DateRange: &compliance.DateRange{From: localDay(5), To: localDay(7)},
		},
	}

	cell := CellFor(violations, utcDay(3))
	require.Len(t, cell.Today, 1)
	assert.Equal(t, compliance.KindRestGap, cell.Today[0].Kind)
	require.Len(t, cell.Later, 1)

	cell = CellFor(violations, utcDay(6))
	require.Len(t, cell.Today, 1)
	assert.Equal(t, compliance.KindConsecutiveNights, cell.Today[0].Kind)
	assert.Empty(t, cell.Later)
}
