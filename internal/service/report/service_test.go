package report

import (
	"testing"
	"time"

	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportBaseDay = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func reportOcc(employeeID string, day int, start, end string) compliance.Occurrence {
	date := reportBaseDay.AddDate(0, 0, day-1)
	s := clock.MustParse(start).On(date)
	e := clock.MustParse(end).On(date)
	if !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	return compliance.Occurrence{
		EmployeeID:    employeeID,
		ProjectID:     "proj-1",
		AssignmentID:  "asg-1",
		PatternID:     "pat-1",
		Date:          date,
		StartDateTime: s,
		EndDateTime:   e,
		DurationHours: e.Sub(s).Hours(),
		IsNight:       clock.IsNightSpan(s, e),
		Fatigue:       roster.FatigueParams{Workload: 3, Attention: 3},
	}
}

func TestBuildRows_WindowFiltersButContextStays(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultComplianceConfig()
	evaluator := compliancesvc.NewEvaluator(cfg)
	window := compliancesvc.TrailingWindow(cfg.RollingWindowDays)

	occs := []compliance.Occurrence{
		reportOcc("emp-1", 1, "08:00", "18:00"),
		reportOcc("emp-1", 2, "08:00", "18:00"),
		reportOcc("emp-1", 3, "08:00", "18:00"),
	}

	// Window covers only day 3; rolling hours still see days 1 and 2.
	from := reportBaseDay.AddDate(0, 0, 2)
	rows := BuildRows(occs, map[string]string{"emp-1": "Ana Cole"}, evaluator, window, from, from)

	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)
	assert.Equal(t, "Ana Cole", rows[0].EmployeeName)
	assert.Equal(t, "2025-03-05", rows[0].Date)
	assert.InDelta(t, 30.0, rows[0].RollingHours, 1e-9)
}

func TestBuildRows_ViolationColumn(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultComplianceConfig()
	evaluator := compliancesvc.NewEvaluator(cfg)
	window := compliancesvc.TrailingWindow(cfg.RollingWindowDays)

	// 13h shift: over the 12h cap.
	occs := []compliance.Occurrence{reportOcc("emp-1", 1, "06:00", "19:00")}

	rows := BuildRows(occs, nil, evaluator, window, reportBaseDay, reportBaseDay)

	require.Len(t, rows, 1)
	assert.Contains(t, rows[0].Violations, "shift-length:breach")
	assert.Empty(t, rows[0].EmployeeName)
}

func TestBuildRows_EmployeesInStableOrder(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultComplianceConfig()
	evaluator := compliancesvc.NewEvaluator(cfg)
	window := compliancesvc.TrailingWindow(cfg.RollingWindowDays)

	occs := []compliance.Occurrence{
		reportOcc("emp-b", 1, "08:00", "16:00"),
		reportOcc("emp-a", 1, "08:00", "16:00"),
	}

	rows := BuildRows(occs, nil, evaluator, window, reportBaseDay, reportBaseDay)

	require.Len(t, rows, 2)
	assert.Equal(t, "emp-a", rows[0].EmployeeID)
	assert.Equal(t, "emp-b", rows[1].EmployeeID)
}

func TestViolationsByDay_RunSpansEveryDay(t *testing.T) {
	t.Parallel()

	violations := []compliance.Violation{
		{
			Kind:     compliance.KindConsecutiveNights,
			Severity: compliance.SeverityWarning,
			DateRange: &compliance.DateRange{
				From: reportBaseDay,
				To:   reportBaseDay.AddDate(0, 0, 2),
			},
		},
		{
			Kind:     compliance.KindShiftLength,
			Severity: compliance.SeverityBreach,
			Date:     reportBaseDay,
		},
	}

	byDay := violationsByDay(violations)

	assert.Equal(t, "consecutive-nights:warning;shift-length:breach", byDay["2025-03-03"])
	assert.Equal(t, "consecutive-nights:warning", byDay["2025-03-04"])
	assert.Equal(t, "consecutive-nights:warning", byDay["2025-03-05"])
	assert.NotContains(t, byDay, "2025-03-06")
}
