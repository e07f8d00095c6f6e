package fatigue

import (
	"math"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/fatigue"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
)

// Model weights for the risk index. The raw-score thresholds in the rule
// set assume these weights; change them together.
const (
	hoursPerScorePoint   = 2.5  // raw-score points per door-to-door hour
	overworkExponent     = 1.5  // superlinear growth past the duty cap
	overworkOnsetHours   = 8.0
	nightLoadPoints      = 8.0 // full-night shift timing load
	earlyStartPoints     = 4.0 // additional load for a 00:00-06:00 start
	ratingStepPoints     = 2.0 // raw-score points per workload step off the midpoint
	attentionStepPoints  = 1.5
	maxBreakCredit       = 6.0
	scoreIndexDivisor    = 30.0 // raw score at index 1.0
	priorShiftIndexStep  = 0.05 // index added per prior shift in the window
	maxCountedPriorShift = 6
	shortRestIndexStep   = 0.1  // index added per short rest in the window
	shortRestHours       = 14.0 // rest below this counts as short for cumulative pressure
)

// RawScore computes the unnormalized per-shift fatigue score from the
// occurrence's own timing, duration, and fatigue parameters. It knows
// nothing about surrounding shifts; cumulative effects belong to the index.
//
// Commute minutes extend the span door-to-door before the timing and
// duration terms apply.
func RawScore(occ compliance.Occurrence) float64 {
	commute := time.Duration(occ.Fatigue.CommuteInMinutes+occ.Fatigue.CommuteOutMinutes) * time.Minute
	doorStart := occ.StartDateTime.Add(-time.Duration(occ.Fatigue.CommuteInMinutes) * time.Minute)
	doorEnd := occ.EndDateTime.Add(time.Duration(occ.Fatigue.CommuteOutMinutes) * time.Minute)
	exposure := occ.DurationHours + commute.Hours()

	score := exposure * hoursPerScorePoint
	if exposure > overworkOnsetHours {
		score += math.Pow(exposure-overworkOnsetHours, overworkExponent)
	}

	score += nightLoadPoints * nightFraction(doorStart, doorEnd)
	if clock.EarlyStart(occ.StartDateTime) {
		score += earlyStartPoints
	}

	score += float64(occ.Fatigue.Workload-3) * ratingStepPoints
	score += float64(occ.Fatigue.Attention-3) * attentionStepPoints

	score -= breakCredit(occ)

	if score < 0 {
		return 0
	}
	return score
}

// breakCredit is the recovery credit from the scheduled break pattern:
// breaks taken over the shift times their length, capped so generous break
// schedules cannot zero out a long night shift.
func breakCredit(occ compliance.Occurrence) float64 {
	if occ.Fatigue.BreakFrequencyMins <= 0 || occ.Fatigue.BreakLengthMins <= 0 {
		return 0
	}
	dutyMinutes := occ.DurationHours * 60
	breaks := math.Floor(dutyMinutes / float64(occ.Fatigue.BreakFrequencyMins))
	credit := breaks * float64(occ.Fatigue.BreakLengthMins) / 30.0
	return math.Min(credit, maxBreakCredit)
}

// nightFraction is the fraction of the span covered by the 22:00-06:00
// night window, in [0, 1].
func nightFraction(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	total := end.Sub(start)
	if total >= 24*time.Hour {
		return 8.0 / 24.0
	}

	var covered time.Duration
	// Night windows around the span: 22:00 of day d-1, d, d+1.
	base := time.Date(start.Year(), start.Month(), start.Day(), 22, 0, 0, 0, start.Location())
	for _, winStart := range []time.Time{base.AddDate(0, 0, -1), base, base.AddDate(0, 0, 1)} {
		winEnd := winStart.Add(8 * time.Hour)
		s, e := maxTime(start, winStart), minTime(end, winEnd)
		if e.After(s) {
			covered += e.Sub(s)
		}
	}
	return covered.Seconds() / total.Seconds()
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// RiskIndex combines one occurrence's raw score with cumulative pressure
// from its predecessors in the trailing window: recent, frequent, or
// insufficiently-rested prior shifts raise the index. occs must be sorted
// ascending by start time; i indexes the occurrence under evaluation.
func RiskIndex(occs []compliance.Occurrence, i int, window time.Duration) float64 {
	index := RawScore(occs[i]) / scoreIndexDivisor

	windowStart := occs[i].StartDateTime.Add(-window)
	priorCount := 0
	shortRests := 0
	for j := i - 1; j >= 0; j-- {
		if occs[j].StartDateTime.Before(windowStart) {
			break
		}
		priorCount++
		rest := occs[j+1].StartDateTime.Sub(occs[j].EndDateTime).Hours()
		if rest < shortRestHours {
			shortRests++
		}
	}
	if priorCount > maxCountedPriorShift {
		priorCount = maxCountedPriorShift
	}

	index += float64(priorCount) * priorShiftIndexStep
	index += float64(shortRests) * shortRestIndexStep
	return index
}

// ComputeResults evaluates every occurrence in the (single-person, sorted)
// slice and returns per-occurrence results plus the summary.
func ComputeResults(occs []compliance.Occurrence, window time.Duration) ([]fatigue.Result, fatigue.Summary) {
	results := make([]fatigue.Result, 0, len(occs))
	var sum, max float64
	for i := range occs {
		ri := RiskIndex(occs, i, window)
		results = append(results, fatigue.Result{
			Occurrence: occs[i],
			RiskIndex:  ri,
			RawScore:   RawScore(occs[i]),
			Band:       fatigue.BandFor(ri),
		})
		sum += ri
		if ri > max {
			max = ri
		}
	}

	summary := fatigue.Summary{MaxFRI: max}
	if len(results) > 0 {
		summary.AvgFRI = sum / float64(len(results))
	}
	summary.OverallRisk = fatigue.BandFor(summary.MaxFRI)
	return results, summary
}
