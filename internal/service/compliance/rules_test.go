package compliance

import (
	"testing"
	"time"

	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, used as day 1 throughout.
var baseDay = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

// testOcc builds an occurrence for day N (1-based) with the given clock
// times, wrapping to the next day when end <= start. Fatigue parameters sit
// at the neutral midpoint so the score terms cancel.
func testOcc(day int, start, end string) compliance.Occurrence {
	date := baseDay.AddDate(0, 0, day-1)
	s := clock.MustParse(start).On(date)
	e := clock.MustParse(end).On(date)
	if !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	return compliance.Occurrence{
		EmployeeID:    "emp-1",
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

func ofKind(violations []compliance.Violation, kind compliance.ViolationKind) []compliance.Violation {
	var out []compliance.Violation
	for _, v := range violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

func newTestEvaluator() *Evaluator {
	return NewEvaluator(config.DefaultComplianceConfig())
}

func TestEvaluate_ShiftLength(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	ok := e.Evaluate([]compliance.Occurrence{testOcc(1, "08:00", "20:00")}) // exactly 12h
	assert.Empty(t, ofKind(ok, compliance.KindShiftLength))

	long := e.Evaluate([]compliance.Occurrence{testOcc(1, "08:00", "21:00")}) // 13h
	got := ofKind(long, compliance.KindShiftLength)
	require.Len(t, got, 1)
	assert.Equal(t, compliance.SeverityBreach, got[0].Severity)
	assert.InDelta(t, 1.0, got[0].Magnitude, 1e-9)
}

func TestEvaluate_RestGapBoundary(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	// Exactly 12.0h of rest: 08:00-16:00, next shift 04:00 the following day.
	exact := []compliance.Occurrence{
		testOcc(1, "08:00", "16:00"),
		testOcc(2, "04:00", "12:00"),
	}
	assert.Empty(t, ofKind(e.Evaluate(exact), compliance.KindRestGap))

	// 11.75h of rest.
	short := []compliance.Occurrence{
		testOcc(1, "08:00", "16:15"),
		testOcc(2, "04:00", "12:00"),
	}
	got := ofKind(e.Evaluate(short), compliance.KindRestGap)
	require.Len(t, got, 1)
	assert.Equal(t, compliance.SeverityBreach, got[0].Severity)
	assert.InDelta(t, 0.25, got[0].Magnitude, 1e-9)
	assert.Equal(t, short[1].Date, got[0].Date)
}

func TestEvaluate_RestGapSkippedForFirstOccurrence(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()
	got := e.Evaluate([]compliance.Occurrence{testOcc(1, "08:00", "16:00")})
	assert.Empty(t, ofKind(got, compliance.KindRestGap))
}

func TestEvaluate_WeeklyTiering(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	tenHourDays := func(n int) []compliance.Occurrence {
		occs := make([]compliance.Occurrence, 0, n)
		for d := 1; d <= n; d++ {
			occs = append(occs, testOcc(d, "08:00", "18:00"))
		}
		return occs
	}

	// Exactly 60.0h in the window: no weekly-hours violation.
	assert.Empty(t, ofKind(e.Evaluate(tenHourDays(6)), compliance.KindWeeklyHours))

	// 60.25h: level1 with the excess as magnitude.
	over := tenHourDays(5)
	over = append(over, testOcc(6, "08:00", "18:15"))
	got := ofKind(e.Evaluate(over), compliance.KindWeeklyHours)
	require.Len(t, got, 1)
	assert.Equal(t, compliance.SeverityLevel1, got[0].Severity)
	assert.InDelta(t, 0.25, got[0].Magnitude, 1e-9)

	// 72.25h: level2 only; level1 is suppressed for that occurrence.
	heavy := []compliance.Occurrence{
		testOcc(1, "06:00", "18:00"), // 12h x 6 = 72
		testOcc(2, "06:00", "18:00"),
		testOcc(3, "06:00", "18:00"),
		testOcc(4, "06:00", "18:00"),
		testOcc(5, "06:00", "18:00"),
		testOcc(6, "06:00", "18:00"),
		testOcc(7, "06:00", "06:15"),
	}
	got = ofKind(e.Evaluate(heavy), compliance.KindWeeklyHours)
	var level2 []compliance.Violation
	for _, v := range got {
		require.NotEqual(t, compliance.SeverityWarning, v.Severity)
		if v.Severity == compliance.SeverityLevel2 {
			level2 = append(level2, v)
		}
	}
	require.Len(t, level2, 1)
	assert.Equal(t, heavy[6].Date, level2[0].Date)
	assert.InDelta(t, 0.25, level2[0].Magnitude, 1e-9)
}

// The spec's worked scenario: 11h day shifts on days 1-7, 77h in the
// 7th occurrence's window.
func TestEvaluate_WeeklyScenario(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	occs := make([]compliance.Occurrence, 0, 7)
	for d := 1; d <= 7; d++ {
		occs = append(occs, testOcc(d, "07:00", "18:00"))
	}
	weekly := ofKind(e.Evaluate(occs), compliance.KindWeeklyHours)

	var level2 []compliance.Violation
	for _, v := range weekly {
		if v.Severity == compliance.SeverityLevel2 {
			level2 = append(level2, v)
		}
		// Nothing above level1 before the cap is crossed.
		if v.Date.Before(occs[6].Date) {
			assert.NotEqual(t, compliance.SeverityLevel2, v.Severity)
			assert.NotEqual(t, compliance.SeverityBreach, v.Severity)
		}
	}
	require.Len(t, level2, 1)
	assert.Equal(t, occs[6].Date, level2[0].Date)
	assert.InDelta(t, 5.0, level2[0].Magnitude, 1e-9)

	// Days 1-5 stay clean entirely (55h at day 5).
	for _, v := range weekly {
		assert.False(t, v.Date.Before(occs[5].Date), "unexpected weekly violation on day %s", v.Date)
	}
}

func TestEvaluate_ConsecutiveNights(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	nights := func(n int) []compliance.Occurrence {
		occs := make([]compliance.Occurrence, 0, n)
		for d := 1; d <= n; d++ {
			occs = append(occs, testOcc(d, "22:00", "06:00"))
		}
		return occs
	}

	// Two nights: below the run threshold.
	assert.Empty(t, ofKind(e.Evaluate(nights(2)), compliance.KindConsecutiveNights))

	// Three nights: exactly one warning, magnitude 3, range spanning the run.
	got := ofKind(e.Evaluate(nights(3)), compliance.KindConsecutiveNights)
	require.Len(t, got, 1)
	assert.Equal(t, compliance.SeverityWarning, got[0].Severity)
	assert.InDelta(t, 3, got[0].Magnitude, 1e-9)
	require.NotNil(t, got[0].DateRange)
	assert.Equal(t, baseDay, got[0].DateRange.From)
	assert.Equal(t, baseDay.AddDate(0, 0, 2), got[0].DateRange.To)

	// A fourth night grows the same violation, it does not add a second one.
	got = ofKind(e.Evaluate(nights(4)), compliance.KindConsecutiveNights)
	require.Len(t, got, 1)
	assert.InDelta(t, 4, got[0].Magnitude, 1e-9)
	assert.Equal(t, baseDay.AddDate(0, 0, 3), got[0].DateRange.To)

	// A day shift in between resets the counter.
	broken := nights(2)
	broken = append(broken, testOcc(3, "09:00", "13:00"))
	broken = append(broken, testOcc(4, "22:00", "06:00"), testOcc(5, "22:00", "06:00"))
	assert.Empty(t, ofKind(e.Evaluate(broken), compliance.KindConsecutiveNights))
}

func TestEvaluate_ConsecutiveDays(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	days := func(n int) []compliance.Occurrence {
		occs := make([]compliance.Occurrence, 0, n)
		for d := 1; d <= n; d++ {
			occs = append(occs, testOcc(d, "09:00", "15:00"))
		}
		return occs
	}

	// 13 worked days in the window: at the limit, no breach.
	assert.Empty(t, ofKind(e.Evaluate(days(13)), compliance.KindConsecutiveDays))

	// 14 worked days: breach.
	got := ofKind(e.Evaluate(days(14)), compliance.KindConsecutiveDays)
	require.Len(t, got, 1)
	assert.Equal(t, compliance.SeverityBreach, got[0].Severity)
	assert.Equal(t, baseDay.AddDate(0, 0, 13), got[0].Date)
}

// The weekly window spans 7 calendar days, so a steady daily roster puts at
// most 7 shifts in each window: 8 days of 8.5h peak at 59.5h, just under
// the 60h line.
func TestEvaluate_WeeklyWindowExcludesEighthDay(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	occs := make([]compliance.Occurrence, 0, 8)
	for d := 1; d <= 8; d++ {
		occs = append(occs, testOcc(d, "08:00", "16:30"))
	}

	assert.Empty(t, ofKind(e.Evaluate(occs), compliance.KindWeeklyHours))
}

// The 14-day window ending at day 15 no longer sees day 1, so 13 straight
// worked days followed by a rest day and one more shift stay at 13
// distinct dates.
func TestEvaluate_ConsecutiveDaysWindowSlidesPastDayOne(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	occs := make([]compliance.Occurrence, 0, 14)
	for d := 1; d <= 13; d++ {
		occs = append(occs, testOcc(d, "09:00", "15:00"))
	}
	occs = append(occs, testOcc(15, "09:00", "15:00"))

	assert.Empty(t, ofKind(e.Evaluate(occs), compliance.KindConsecutiveDays))
}

func TestEvaluate_FatigueIndexBreach(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	// A single brutal shift: 14h overnight with heavy workload, long
	// commute, and no breaks.
	occ := testOcc(1, "17:00", "07:00")
	occ.Fatigue = roster.FatigueParams{
		Workload:          5,
		Attention:         5,
		CommuteInMinutes:  60,
		CommuteOutMinutes: 60,
	}
	got := ofKind(e.Evaluate([]compliance.Occurrence{occ}), compliance.KindFatigueIndex)
	require.Len(t, got, 1)
	assert.Equal(t, compliance.SeverityBreach, got[0].Severity)
	assert.Greater(t, got[0].Magnitude, 0.0)

	// A plain short day shift stays well under the limit.
	calm := e.Evaluate([]compliance.Occurrence{testOcc(1, "09:00", "15:00")})
	assert.Empty(t, ofKind(calm, compliance.KindFatigueIndex))
}

func TestEvaluate_Idempotent(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	occs := []compliance.Occurrence{
		testOcc(1, "22:00", "06:00"),
		testOcc(2, "22:00", "06:00"),
		testOcc(3, "22:00", "06:00"),
		testOcc(4, "07:00", "20:00"),
		testOcc(5, "07:00", "18:00"),
	}
	first := e.Evaluate(occs)
	second := e.Evaluate(occs)
	require.Equal(t, first, second)
}
