package compliance

import (
	"time"

	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
)

// ExpandOccurrences materializes assignments into one dated occurrence per
// person per day. Effective times resolve in priority order: assignment
// custom override, then the pattern's weekday schedule, then the pattern
// default. If a pattern carries a weekday schedule and the day has no
// entry, the day produces no occurrence. Assignments referencing unknown
// pattern or team ids are skipped; the caller is responsible for logging
// them. Team assignments fan out into one occurrence per member.
//
// The output is flat and unordered; no two occurrences share an
// (assignment, person, date) key.
func ExpandOccurrences(
	assignments []roster.Assignment,
	patterns map[string]roster.ShiftPattern,
	teamMembers map[string][]string,
	defaults config.FatigueConfig,
) []compliance.Occurrence {
	var out []compliance.Occurrence
	seen := make(map[string]struct{})

	for _, a := range assignments {
		pattern, ok := patterns[a.PatternID]
		if !ok {
			continue
		}

		var people []string
		switch a.Assignee.Type {
		case roster.AssigneeIndividual:
			people = []string{a.Assignee.EmployeeID}
		case roster.AssigneeTeam:
			people = teamMembers[a.Assignee.TeamID]
		}
		if len(people) == 0 {
			continue
		}

		params := resolveParams(a, pattern, defaults)

		for day := a.StartDate; !day.After(a.EndDate); day = day.AddDate(0, 0, 1) {
			start, end, active := effectiveTimes(a, pattern, day.Weekday())
			if !active {
				continue
			}

			startDT := start.On(day)
			endDT := end.On(day)
			if !endDT.After(startDT) {
				// end <= start: the shift spans into the next calendar day.
				endDT = endDT.AddDate(0, 0, 1)
			}
			duration := endDT.Sub(startDT).Hours()

			for _, employeeID := range people {
				key := a.ID + "|" + employeeID + "|" + day.Format("2006-01-02")
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				out = append(out, compliance.Occurrence{
					EmployeeID:    employeeID,
					ProjectID:     a.ProjectID,
					AssignmentID:  a.ID,
					PatternID:     pattern.ID,
					Date:          day,
					StartDateTime: startDT,
					EndDateTime:   endDT,
					DurationHours: duration,
					IsNight:       clock.IsNightSpan(startDT, endDT),
					Fatigue:       params,
				})
			}
		}
	}

	return out
}

// effectiveTimes resolves the clock times for one calendar day. The third
// return value is false when the day is inactive for the pattern.
func effectiveTimes(a roster.Assignment, p roster.ShiftPattern, weekday time.Weekday) (clock.ClockTime, clock.ClockTime, bool) {
	if a.CustomStartTime != nil && a.CustomEndTime != nil {
		return *a.CustomStartTime, *a.CustomEndTime, true
	}
	if len(p.WeekdayTimes) > 0 {
		dt, ok := p.WeekdayTimes[weekday]
		if !ok {
			return 0, 0, false
		}
		return dt.StartTime, dt.EndTime, true
	}
	return p.StartTime, p.EndTime, true
}

// resolveParams settles the fatigue parameters for an assignment:
// assignment overrides win over pattern values, which win over the
// configured system defaults.
func resolveParams(a roster.Assignment, p roster.ShiftPattern, defaults config.FatigueConfig) roster.FatigueParams {
	base := p.Fatigue
	if base.Workload == 0 {
		base.Workload = defaults.DefaultWorkload
	}
	if base.Attention == 0 {
		base.Attention = defaults.DefaultAttention
	}
	if base.CommuteInMinutes == 0 && base.CommuteOutMinutes == 0 {
		base.CommuteInMinutes = defaults.DefaultCommuteMinutes
		base.CommuteOutMinutes = defaults.DefaultCommuteMinutes
	}
	if base.BreakFrequencyMins == 0 {
		base.BreakFrequencyMins = defaults.DefaultBreakFrequencyMins
	}
	if base.BreakLengthMins == 0 {
		base.BreakLengthMins = defaults.DefaultBreakLengthMins
	}
	return a.FatigueOverrides.Resolve(base)
}
