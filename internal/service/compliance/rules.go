package compliance

import (
	"fmt"
	"time"

	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	fatiguesvc "github.com/railsafe/roster-backend-go/internal/service/fatigue"
)

// Evaluator applies the fatigue-management rule set to a single person's
// ordered occurrences. It holds only the thresholds; evaluation is a pure
// function of its input and is safely re-run on every data change.
type Evaluator struct {
	cfg config.ComplianceConfig
}

func NewEvaluator(cfg config.ComplianceConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate walks one person's occurrences in start-time order and emits
// typed violations. occs must belong to a single person and be sorted
// ascending by StartDateTime (see SortOccurrences); the evaluator shares
// no state across people.
func (e *Evaluator) Evaluate(occs []compliance.Occurrence) []compliance.Violation {
	var out []compliance.Violation

	rollingWindow := TrailingWindow(e.cfg.RollingWindowDays)
	nightRun := 0
	var nightRunStart time.Time
	consecDaysFlagged := make(map[string]struct{})

	for i, occ := range occs {
		// Shift length.
		if occ.DurationHours > e.cfg.MaxShiftHours {
			excess := occ.DurationHours - e.cfg.MaxShiftHours
			out = append(out, e.violation(occ, compliance.KindShiftLength, compliance.SeverityBreach, excess,
				fmt.Sprintf("shift of %.1fh exceeds the %.0fh maximum by %.1fh", occ.DurationHours, e.cfg.MaxShiftHours, excess)))
		}

		// Rest gap; skipped for the first occurrence.
		if i > 0 {
			gap := occ.StartDateTime.Sub(occs[i-1].EndDateTime).Hours()
			if gap < e.cfg.MinRestHours {
				shortfall := e.cfg.MinRestHours - gap
				out = append(out, e.violation(occ, compliance.KindRestGap, compliance.SeverityBreach, shortfall,
					fmt.Sprintf("rest of %.2fh before shift is %.2fh short of the %.0fh minimum", gap, shortfall, e.cfg.MinRestHours)))
			}
		}

		// Weekly hours: single highest applicable tier per occurrence.
		w := RollingHours(occs, i, rollingWindow)
		if v, ok := e.weeklyTier(occ, w); ok {
			out = append(out, v)
		}

		// Consecutive days over the 14-day trailing distinct-date count.
		days := DistinctWorkedDays(occs, i, e.cfg.ConsecutiveDaysWindow)
		if days > e.cfg.MaxConsecutiveDays {
			dateKey := occ.Date.Format("2006-01-02")
			if _, dup := consecDaysFlagged[dateKey]; !dup {
				consecDaysFlagged[dateKey] = struct{}{}
				out = append(out, e.violation(occ, compliance.KindConsecutiveDays, compliance.SeverityBreach, float64(days-e.cfg.MaxConsecutiveDays),
					fmt.Sprintf("%d worked days in the trailing %d days exceeds the %d-day limit", days, e.cfg.ConsecutiveDaysWindow, e.cfg.MaxConsecutiveDays)))
			}
		}

		// Consecutive nights: track the running counter; the violation for
		// a run is emitted once, when the run ends.
		if occ.IsNight {
			if nightRun == 0 {
				nightRunStart = occ.Date
			}
			nightRun++
		} else if nightRun > 0 {
			if v, ok := e.nightRunViolation(occs[i-1], nightRunStart, nightRun); ok {
				out = append(out, v)
			}
			nightRun = 0
		}

		// Fatigue index.
		ri := fatiguesvc.RiskIndex(occs, i, rollingWindow)
		if ri > e.cfg.FRIBreachThreshold {
			out = append(out, e.violation(occ, compliance.KindFatigueIndex, compliance.SeverityBreach, ri-e.cfg.FRIBreachThreshold,
				fmt.Sprintf("fatigue risk index %.2f exceeds the %.1f limit", ri, e.cfg.FRIBreachThreshold)))
		}

		// Fatigue score tiers on the raw per-shift score, split day/night.
		score := fatiguesvc.RawScore(occ)
		if v, ok := e.scoreTier(occ, score); ok {
			out = append(out, v)
		}
	}

	// A run still open at the end of the timeline.
	if nightRun > 0 {
		if v, ok := e.nightRunViolation(occs[len(occs)-1], nightRunStart, nightRun); ok {
			out = append(out, v)
		}
	}

	return out
}

// weeklyTier returns the single highest applicable weekly-hours tier for
// the windowed sum w, if any. The "approaching limit" warning only applies
// when no higher tier fired for the same occurrence.
func (e *Evaluator) weeklyTier(occ compliance.Occurrence, w float64) (compliance.Violation, bool) {
	switch {
	case w > e.cfg.WeeklyHoursLevel2:
		return e.violation(occ, compliance.KindWeeklyHours, compliance.SeverityLevel2, w-e.cfg.WeeklyHoursLevel2,
			fmt.Sprintf("%.1fh in the trailing %d days exceeds the %.0fh cap; a documented variation is required", w, e.cfg.RollingWindowDays, e.cfg.WeeklyHoursLevel2)), true
	case w > e.cfg.WeeklyHoursLevel1:
		return e.violation(occ, compliance.KindWeeklyHours, compliance.SeverityLevel1, w-e.cfg.WeeklyHoursLevel1,
			fmt.Sprintf("%.1fh in the trailing %d days exceeds the %.0fh threshold; a Fatigue Management Plan is required", w, e.cfg.RollingWindowDays, e.cfg.WeeklyHoursLevel1)), true
	case w >= e.cfg.WeeklyApproachHours && w <= e.cfg.WeeklyHoursLevel2:
		return e.violation(occ, compliance.KindWeeklyHours, compliance.SeverityWarning, w-e.cfg.WeeklyApproachHours,
			fmt.Sprintf("%.1fh in the trailing %d days is approaching the %.0fh cap", w, e.cfg.RollingWindowDays, e.cfg.WeeklyHoursLevel2)), true
	}
	return compliance.Violation{}, false
}

// nightRunViolation emits the single warning for a completed run of
// consecutive night shifts. Magnitude is the run length; the date range
// spans the run. last is the occurrence that closed the run.
func (e *Evaluator) nightRunViolation(last compliance.Occurrence, runStart time.Time, run int) (compliance.Violation, bool) {
	if run < e.cfg.ConsecutiveNightsWarn {
		return compliance.Violation{}, false
	}
	v := e.violation(last, compliance.KindConsecutiveNights, compliance.SeverityWarning, float64(run),
		fmt.Sprintf("%d consecutive night shifts", run))
	v.DateRange = &compliance.DateRange{From: runStart, To: last.Date}
	return v, true
}

// scoreTier applies the raw fatigue-score tiers: level1 thresholds gate a
// Fatigue Management Plan, the lower good-practice thresholds are advisory
// and only fire when level1 did not.
func (e *Evaluator) scoreTier(occ compliance.Occurrence, score float64) (compliance.Violation, bool) {
	l1 := e.cfg.ScoreDayLevel1
	gp := e.cfg.ScoreDayGoodPractice
	if occ.IsNight {
		l1 = e.cfg.ScoreNightLevel1
		gp = e.cfg.ScoreNightGoodPractice
	}
	switch {
	case score > l1:
		return e.violation(occ, compliance.KindFatigueScore, compliance.SeverityLevel1, score-l1,
			fmt.Sprintf("fatigue score %.1f exceeds the %.0f threshold", score, l1)), true
	case score > gp:
		return e.violation(occ, compliance.KindFatigueScore, compliance.SeverityWarning, score-gp,
			fmt.Sprintf("fatigue score %.1f exceeds the %.0f good-practice threshold", score, gp)), true
	}
	return compliance.Violation{}, false
}

func (e *Evaluator) violation(occ compliance.Occurrence, kind compliance.ViolationKind, sev compliance.Severity, magnitude float64, msg string) compliance.Violation {
	return compliance.Violation{
		Kind:       kind,
		Severity:   sev,
		EmployeeID: occ.EmployeeID,
		ProjectID:  occ.ProjectID,
		Date:       occ.Date,
		Magnitude:  magnitude,
		Message:    msg,
	}
}
