package fatigue

import (
	"math"
	"testing"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/fatigue"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var friBaseDay = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func friOcc(day int, start, end string, params roster.FatigueParams) compliance.Occurrence {
	date := friBaseDay.AddDate(0, 0, day-1)
	s := clock.MustParse(start).On(date)
	e := clock.MustParse(end).On(date)
	if !e.After(s) {
		e = e.AddDate(0, 0, 1)
	}
	return compliance.Occurrence{
		EmployeeID:    "emp-1",
		AssignmentID:  "asg-1",
		Date:          date,
		StartDateTime: s,
		EndDateTime:   e,
		DurationHours: e.Sub(s).Hours(),
		IsNight:       clock.IsNightSpan(s, e),
		Fatigue:       params,
	}
}

func neutralParams() roster.FatigueParams {
	return roster.FatigueParams{Workload: 3, Attention: 3}
}

func TestRawScore_DurationMonotonic(t *testing.T) {
	t.Parallel()

	short := RawScore(friOcc(1, "09:00", "15:00", neutralParams()))
	medium := RawScore(friOcc(1, "09:00", "17:00", neutralParams()))
	long := RawScore(friOcc(1, "09:00", "21:00", neutralParams()))

	assert.Less(t, short, medium)
	assert.Less(t, medium, long)

	// Growth past the onset is superlinear: the 8h-to-12h step costs more
	// than the 6h-to-8h step despite covering the same two extra hours
	// per comparison point.
	assert.Greater(t, long-medium, medium-short)
}

func TestRawScore_NightPenalty(t *testing.T) {
	t.Parallel()

	day := RawScore(friOcc(1, "08:00", "16:00", neutralParams()))
	night := RawScore(friOcc(1, "22:00", "06:00", neutralParams()))
	assert.Greater(t, night, day)
}

func TestRawScore_EarlyStart(t *testing.T) {
	t.Parallel()

	early := RawScore(friOcc(1, "04:00", "12:00", neutralParams()))
	normal := RawScore(friOcc(1, "08:00", "16:00", neutralParams()))
	assert.Greater(t, early, normal)
}

func TestRawScore_CommuteExtendsExposure(t *testing.T) {
	t.Parallel()

	withCommute := neutralParams()
	withCommute.CommuteInMinutes = 60
	withCommute.CommuteOutMinutes = 60

	// Two commute hours push the 8h duty to a 10h exposure, which also
	// crosses the overwork onset.
	base := RawScore(friOcc(1, "08:00", "16:00", neutralParams()))
	commuted := RawScore(friOcc(1, "08:00", "16:00", withCommute))
	assert.InDelta(t, base+2*hoursPerScorePoint+math.Pow(2, overworkExponent), commuted, 1e-9)
}

func TestRawScore_RatingsAndBreaks(t *testing.T) {
	t.Parallel()

	heavy := neutralParams()
	heavy.Workload = 5
	heavy.Attention = 5
	assert.Greater(t,
		RawScore(friOcc(1, "08:00", "16:00", heavy)),
		RawScore(friOcc(1, "08:00", "16:00", neutralParams())))

	light := neutralParams()
	light.Workload = 1
	light.Attention = 1
	assert.Less(t,
		RawScore(friOcc(1, "08:00", "16:00", light)),
		RawScore(friOcc(1, "08:00", "16:00", neutralParams())))

	rested := neutralParams()
	rested.BreakFrequencyMins = 120
	rested.BreakLengthMins = 30
	assert.Less(t,
		RawScore(friOcc(1, "08:00", "16:00", rested)),
		RawScore(friOcc(1, "08:00", "16:00", neutralParams())))
}

func TestRawScore_NeverNegative(t *testing.T) {
	t.Parallel()

	params := roster.FatigueParams{
		Workload:           1,
		Attention:          1,
		BreakFrequencyMins: 30,
		BreakLengthMins:    30,
	}
	score := RawScore(friOcc(1, "10:00", "11:00", params))
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestRiskIndex_CumulativePressure(t *testing.T) {
	t.Parallel()

	window := 7 * 24 * time.Hour

	// Same shift, evaluated cold versus after a string of predecessors.
	lone := []compliance.Occurrence{friOcc(5, "08:00", "16:00", neutralParams())}
	loaded := []compliance.Occurrence{
		friOcc(1, "08:00", "16:00", neutralParams()),
		friOcc(2, "08:00", "16:00", neutralParams()),
		friOcc(3, "08:00", "16:00", neutralParams()),
		friOcc(4, "08:00", "16:00", neutralParams()),
		friOcc(5, "08:00", "16:00", neutralParams()),
	}

	cold := RiskIndex(lone, 0, window)
	warm := RiskIndex(loaded, 4, window)
	assert.Greater(t, warm, cold)
	// Four priors, each rest gap 16h (not short).
	assert.InDelta(t, cold+4*priorShiftIndexStep, warm, 1e-9)
}

func TestRiskIndex_ShortRests(t *testing.T) {
	t.Parallel()

	window := 7 * 24 * time.Hour

	// 12h rest between shifts: legal, but below the 14h pressure line.
	tight := []compliance.Occurrence{
		friOcc(1, "08:00", "20:00", neutralParams()),
		friOcc(2, "08:00", "20:00", neutralParams()),
	}
	spaced := []compliance.Occurrence{
		friOcc(1, "06:00", "14:00", neutralParams()),
		friOcc(2, "08:00", "16:00", neutralParams()),
	}

	tightIdx := RiskIndex(tight, 1, window)
	spacedIdx := RiskIndex(spaced, 1, window)

	tightSolo := RiskIndex(tight[1:], 0, window)
	spacedSolo := RiskIndex(spaced[1:], 0, window)

	assert.InDelta(t, tightSolo+priorShiftIndexStep+shortRestIndexStep, tightIdx, 1e-9)
	assert.InDelta(t, spacedSolo+priorShiftIndexStep, spacedIdx, 1e-9)
}

func TestRiskIndex_PriorCountCapped(t *testing.T) {
	t.Parallel()

	window := 14 * 24 * time.Hour
	occs := make([]compliance.Occurrence, 0, 10)
	for d := 1; d <= 10; d++ {
		occs = append(occs, friOcc(d, "08:00", "12:00", neutralParams()))
	}

	last := len(occs) - 1
	solo := RiskIndex(occs[last:], 0, window)
	full := RiskIndex(occs, last, window)
	// Nine priors but only six count toward the step term.
	assert.InDelta(t, solo+float64(maxCountedPriorShift)*priorShiftIndexStep, full, 1e-9)
}

func TestBandFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index float64
		want  fatigue.RiskBand
	}{
		{0.4, fatigue.BandLow},
		{0.999, fatigue.BandLow},
		{1.0, fatigue.BandModerate},
		{1.05, fatigue.BandModerate},
		{1.1, fatigue.BandElevated},
		{1.19, fatigue.BandElevated},
		{1.2, fatigue.BandCritical},
		{2.5, fatigue.BandCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fatigue.BandFor(tt.index))
	}
}

func TestComputeResults(t *testing.T) {
	t.Parallel()

	window := 7 * 24 * time.Hour
	occs := []compliance.Occurrence{
		friOcc(1, "08:00", "16:00", neutralParams()),
		friOcc(2, "22:00", "06:00", neutralParams()),
		friOcc(3, "22:00", "06:00", neutralParams()),
	}

	results, summary := ComputeResults(occs, window)
	require.Len(t, results, 3)

	var max, sum float64
	for i, r := range results {
		assert.Equal(t, occs[i].Date, r.Occurrence.Date)
		assert.Equal(t, fatigue.BandFor(r.RiskIndex), r.Band)
		sum += r.RiskIndex
		if r.RiskIndex > max {
			max = r.RiskIndex
		}
	}
	assert.InDelta(t, max, summary.MaxFRI, 1e-9)
	assert.InDelta(t, sum/3, summary.AvgFRI, 1e-9)
	assert.Equal(t, fatigue.BandFor(summary.MaxFRI), summary.OverallRisk)

	empty, emptySummary := ComputeResults(nil, window)
	assert.Empty(t, empty)
	assert.Zero(t, emptySummary.MaxFRI)
	assert.Zero(t, emptySummary.AvgFRI)
}
