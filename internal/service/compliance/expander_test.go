package compliance

import (
	"testing"
	"time"

	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() config.FatigueConfig {
	return config.FatigueConfig{
		DefaultWorkload:           3,
		DefaultAttention:          3,
		DefaultCommuteMinutes:     30,
		DefaultBreakFrequencyMins: 240,
		DefaultBreakLengthMins:    30,
	}
}

func dayPattern(id, start, end string) roster.ShiftPattern {
	return roster.ShiftPattern{
		ID:        id,
		ProjectID: "proj-1",
		Name:      "test pattern",
		StartTime: clock.MustParse(start),
		EndTime:   clock.MustParse(end),
		DutyType:  roster.DutyTypeTrackWork,
	}
}

func individualAssignment(id, patternID, employeeID string, from, to time.Time) roster.Assignment {
	return roster.Assignment{
		ID:        id,
		ProjectID: "proj-1",
		PatternID: patternID,
		Assignee:  roster.Assignee{Type: roster.AssigneeIndividual, EmployeeID: employeeID},
		StartDate: from,
		EndDate:   to,
	}
}

func TestExpandOccurrences_NightWrap(t *testing.T) {
	t.Parallel()

	patterns := map[string]roster.ShiftPattern{"pat-n": dayPattern("pat-n", "22:00", "06:00")}
	a := individualAssignment("asg-1", "pat-n", "emp-1", baseDay, baseDay)

	occs := ExpandOccurrences([]roster.Assignment{a}, patterns, nil, testDefaults())
	require.Len(t, occs, 1)

	occ := occs[0]
	assert.Equal(t, baseDay, occ.Date)
	assert.InDelta(t, 8.0, occ.DurationHours, 1e-9)
	assert.Equal(t, baseDay.AddDate(0, 0, 1), occ.EndDateTime.Truncate(24*time.Hour))
	assert.True(t, occ.IsNight)
}

func TestExpandOccurrences_DateRangeAndDedupe(t *testing.T) {
	t.Parallel()

	patterns := map[string]roster.ShiftPattern{"pat-d": dayPattern("pat-d", "08:00", "16:00")}
	a := individualAssignment("asg-1", "pat-d", "emp-1", baseDay, baseDay.AddDate(0, 0, 4))

	// Duplicate assignment rows must not double-count.
	occs := ExpandOccurrences([]roster.Assignment{a, a}, patterns, nil, testDefaults())
	require.Len(t, occs, 5)
	for i, occ := range occs {
		assert.Equal(t, baseDay.AddDate(0, 0, i), occ.Date)
		assert.False(t, occ.IsNight)
	}
}

func TestExpandOccurrences_TeamFanOut(t *testing.T) {
	t.Parallel()

	patterns := map[string]roster.ShiftPattern{"pat-d": dayPattern("pat-d", "08:00", "16:00")}
	a := roster.Assignment{
		ID:        "asg-t",
		ProjectID: "proj-1",
		PatternID: "pat-d",
		Assignee:  roster.Assignee{Type: roster.AssigneeTeam, TeamID: "team-1"},
		StartDate: baseDay,
		EndDate:   baseDay,
	}
	members := map[string][]string{"team-1": {"emp-1", "emp-2", "emp-3"}}

	occs := ExpandOccurrences([]roster.Assignment{a}, patterns, members, testDefaults())
	require.Len(t, occs, 3)
	seen := make(map[string]bool)
	for _, occ := range occs {
		seen[occ.EmployeeID] = true
		assert.Equal(t, "asg-t", occ.AssignmentID)
	}
	assert.Len(t, seen, 3)
}

func TestExpandOccurrences_TimeResolution(t *testing.T) {
	t.Parallel()

	// Pattern default 08:00-16:00, Tuesday override 10:00-14:00, no
	// Wednesday entry.
	p := dayPattern("pat-w", "08:00", "16:00")
	p.WeekdayTimes = map[time.Weekday]roster.DayTimes{
		time.Monday:  {StartTime: clock.MustParse("08:00"), EndTime: clock.MustParse("16:00")},
		time.Tuesday: {StartTime: clock.MustParse("10:00"), EndTime: clock.MustParse("14:00")},
	}
	patterns := map[string]roster.ShiftPattern{"pat-w": p}

	// Monday through Wednesday.
	a := individualAssignment("asg-1", "pat-w", "emp-1", baseDay, baseDay.AddDate(0, 0, 2))
	occs := ExpandOccurrences([]roster.Assignment{a}, patterns, nil, testDefaults())
	require.Len(t, occs, 2) // Wednesday is inactive
	assert.InDelta(t, 8.0, occs[0].DurationHours, 1e-9)
	assert.InDelta(t, 4.0, occs[1].DurationHours, 1e-9)

	// A custom override beats the weekday schedule for every day.
	start, end := clock.MustParse("06:00"), clock.MustParse("18:00")
	a.CustomStartTime, a.CustomEndTime = &start, &end
	occs = ExpandOccurrences([]roster.Assignment{a}, patterns, nil, testDefaults())
	require.Len(t, occs, 3)
	for _, occ := range occs {
		assert.InDelta(t, 12.0, occ.DurationHours, 1e-9)
	}
}

func TestExpandOccurrences_SkipsDanglingRefs(t *testing.T) {
	t.Parallel()

	patterns := map[string]roster.ShiftPattern{"pat-d": dayPattern("pat-d", "08:00", "16:00")}

	missing := individualAssignment("asg-1", "pat-gone", "emp-1", baseDay, baseDay)
	emptyTeam := roster.Assignment{
		ID:        "asg-2",
		ProjectID: "proj-1",
		PatternID: "pat-d",
		Assignee:  roster.Assignee{Type: roster.AssigneeTeam, TeamID: "team-gone"},
		StartDate: baseDay,
		EndDate:   baseDay,
	}

	occs := ExpandOccurrences([]roster.Assignment{missing, emptyTeam}, patterns, nil, testDefaults())
	assert.Empty(t, occs)
}

func TestExpandOccurrences_FatigueDefaults(t *testing.T) {
	t.Parallel()

	patterns := map[string]roster.ShiftPattern{"pat-d": dayPattern("pat-d", "08:00", "16:00")}
	a := individualAssignment("asg-1", "pat-d", "emp-1", baseDay, baseDay)

	occs := ExpandOccurrences([]roster.Assignment{a}, patterns, nil, testDefaults())
	require.Len(t, occs, 1)
	assert.Equal(t, 3, occs[0].Fatigue.Workload)
	assert.Equal(t, 3, occs[0].Fatigue.Attention)
	assert.Equal(t, 30, occs[0].Fatigue.CommuteInMinutes)
	assert.Equal(t, 240, occs[0].Fatigue.BreakFrequencyMins)

	// Assignment overrides win over the defaults.
	workload := 5
	a.FatigueOverrides.Workload = &workload
	occs = ExpandOccurrences([]roster.Assignment{a}, patterns, nil, testDefaults())
	require.Len(t, occs, 1)
	assert.Equal(t, 5, occs[0].Fatigue.Workload)
}
