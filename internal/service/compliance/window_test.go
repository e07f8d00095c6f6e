package compliance

import (
	"testing"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/stretchr/testify/assert"
)

func TestSortOccurrences(t *testing.T) {
	t.Parallel()

	a := testOcc(2, "08:00", "16:00")
	b := testOcc(1, "08:00", "16:00")
	c := testOcc(1, "08:00", "16:00")
	c.AssignmentID = "asg-0" // same start as b, lower id

	occs := []compliance.Occurrence{a, b, c}
	SortOccurrences(occs)

	assert.Equal(t, "asg-0", occs[0].AssignmentID)
	assert.Equal(t, b.Date, occs[1].Date)
	assert.Equal(t, a.Date, occs[2].Date)
}

func TestTrailingWindow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 6*24*time.Hour, TrailingWindow(7))
	assert.Equal(t, 13*24*time.Hour, TrailingWindow(14))
}

func TestRollingHours(t *testing.T) {
	t.Parallel()

	window := TrailingWindow(7)
	occs := []compliance.Occurrence{
		testOcc(1, "08:00", "18:00"), // 10h
		testOcc(3, "08:00", "18:00"),
		testOcc(7, "08:00", "18:00"), // day 1 is exactly on the boundary
		testOcc(8, "08:00", "18:00"), // day 1 now outside
	}

	assert.InDelta(t, 10.0, RollingHours(occs, 0, window), 1e-9)
	assert.InDelta(t, 20.0, RollingHours(occs, 1, window), 1e-9)
	// Inclusive boundary: day 7 start minus 6 days lands on day 1's start.
	assert.InDelta(t, 30.0, RollingHours(occs, 2, window), 1e-9)
	assert.InDelta(t, 30.0, RollingHours(occs, 3, window), 1e-9)
}

// A same-clock shift exactly one week before the current one is outside
// its 7-day window: the window spans 7 calendar days, not 8 shifts.
func TestRollingHours_SevenDayWindowHoldsSevenDailyShifts(t *testing.T) {
	t.Parallel()

	window := TrailingWindow(7)
	occs := make([]compliance.Occurrence, 0, 8)
	for d := 1; d <= 8; d++ {
		occs = append(occs, testOcc(d, "08:00", "18:00"))
	}

	assert.InDelta(t, 70.0, RollingHours(occs, 7, window), 1e-9)
}

func TestRollingHours_Causal(t *testing.T) {
	t.Parallel()

	window := TrailingWindow(7)
	occs := []compliance.Occurrence{
		testOcc(1, "08:00", "18:00"),
		testOcc(2, "08:00", "18:00"),
		testOcc(3, "08:00", "18:00"),
	}
	// The sum at index 0 never sees the later occurrences.
	assert.InDelta(t, 10.0, RollingHours(occs, 0, window), 1e-9)
}

func TestDistinctWorkedDays(t *testing.T) {
	t.Parallel()

	occs := []compliance.Occurrence{
		testOcc(1, "06:00", "10:00"),
		testOcc(1, "14:00", "18:00"), // same date, counts once
		testOcc(2, "08:00", "16:00"),
		testOcc(4, "08:00", "16:00"),
	}
	assert.Equal(t, 1, DistinctWorkedDays(occs, 1, 14))
	assert.Equal(t, 2, DistinctWorkedDays(occs, 2, 14))
	assert.Equal(t, 3, DistinctWorkedDays(occs, 3, 14))
}

func TestDistinctWorkedDays_WindowBoundary(t *testing.T) {
	t.Parallel()

	occs := []compliance.Occurrence{
		testOcc(1, "08:00", "16:00"),
		testOcc(14, "08:00", "16:00"), // day 1 exactly on the 14-day boundary
		testOcc(15, "08:00", "16:00"), // day 1 now outside
	}
	assert.Equal(t, 2, DistinctWorkedDays(occs, 1, 14))
	assert.Equal(t, 2, DistinctWorkedDays(occs, 2, 14))
}
