package clock

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock time of day stored as minutes past midnight.
type ClockTime int

// Parse parses a clock string in HH:MM format.
func Parse(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

// MustParse is Parse for compile-time-known constants; it panics on error.
func MustParse(s string) ClockTime {
	ct, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ct
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On anchors the clock time to a calendar date in the date's location.
func (c ClockTime) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, date.Location())
}

// Span computes the duration from start to end, wrapping past midnight
// when end <= start.
func Span(start, end ClockTime) time.Duration {
	minutes := int(end) - int(start)
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return time.Duration(minutes) * time.Minute
}

// Wraps reports whether a start/end pair spans into the next calendar day.
func Wraps(start, end ClockTime) bool {
	return end <= start
}

// The night window used for classification, 22:00 through 06:00.
const (
	nightStartMinutes = 22 * 60
	nightEndMinutes   = 6 * 60
)

// IsNightSpan reports whether any on-duty minute of [start, end) falls in
// the 22:00-06:00 night window. Classification is derived from the absolute
// span, not from the originating pattern.
func IsNightSpan(start, end time.Time) bool {
	if !end.After(start) {
		return false
	}
	// A span of a day or more necessarily covers the window.
	if end.Sub(start) >= 24*time.Hour {
		return true
	}
	startMin := start.Hour()*60 + start.Minute()
	endMin := startMin + int(end.Sub(start).Minutes())

	// Walk the span in minutes-past-start-midnight; the window repeats
	// every 24h starting at 22:00 and ending at 06:00 the next day.
	for dayStart := -24 * 60; dayStart <= endMin; dayStart += 24 * 60 {
		winStart := dayStart + nightStartMinutes
		winEnd := dayStart + 24*60 + nightEndMinutes
		if startMin < winEnd && endMin > winStart {
			return true
		}
	}
	return false
}

// IsNightClock classifies a wall-clock start/end pair the same way
// IsNightSpan classifies an absolute span, wrapping past midnight when
// end <= start.
func IsNightClock(start, end ClockTime) bool {
	day := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	startDT := start.On(day)
	endDT := end.On(day)
	if !endDT.After(startDT) {
		endDT = endDT.AddDate(0, 0, 1)
	}
	return IsNightSpan(startDT, endDT)
}

// EarlyStart reports whether the span begins in the early-morning band
// (at or after midnight, before 06:00), which the fatigue model weights
// separately from night coverage.
func EarlyStart(start time.Time) bool {
	h := start.Hour()
	return h < 6
}
