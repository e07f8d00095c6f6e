package compliance

import (
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/roster"
)

// Occurrence is one concrete, dated, timed instance of a person working a
// shift, materialized from an assignment and its pattern. Occurrences are
// derived, never persisted. Fatigue carries the fully resolved parameters
// (assignment override > pattern > system default), settled at expansion
// time so downstream computation never re-resolves.
type Occurrence struct {
	EmployeeID    string
	ProjectID     string
	AssignmentID  string
	PatternID     string
	Date          time.Time // calendar day, midnight
	StartDateTime time.Time
	EndDateTime   time.Time // next calendar day when the shift wraps
	DurationHours float64
	IsNight       bool // classified from the absolute span
	Fatigue       roster.FatigueParams
}

// ViolationKind identifies the rule that produced a violation.
type ViolationKind string

const (
	KindShiftLength       ViolationKind = "shift-length"
	KindRestGap           ViolationKind = "rest-gap"
	KindWeeklyHours       ViolationKind = "weekly-hours"
	KindConsecutiveDays   ViolationKind = "consecutive-days"
	KindConsecutiveNights ViolationKind = "consecutive-nights"
	KindFatigueIndex      ViolationKind = "fatigue-index"
	KindFatigueScore      ViolationKind = "fatigue-score"
)

// Severity is the closed four-point ordinal scale mandated by the fatigue
// standard. Order matters: UI color and work-eligibility consequences
// depend on the exact tier.
type Severity int

const (
	SeverityWarning Severity = iota // monitoring / good practice
	SeverityLevel1                  // requires a Fatigue Management Plan
	SeverityLevel2                  // requires a documented variation
	SeverityBreach                  // work stoppage
)

var severityNames = map[Severity]string{
	SeverityWarning: "warning",
	SeverityLevel1:  "level1",
	SeverityLevel2:  "level2",
	SeverityBreach:  "breach",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsError maps the four-tier scale onto the coarser error/warning split
// used by project-card counts: only a breach counts as an error.
func (s Severity) IsError() bool {
	return s == SeverityBreach
}

// DateRange is an inclusive calendar-day range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether day falls inside the range, comparing calendar
// days only.
func (r DateRange) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(r.From)) && !d.After(DateOnly(r.To))
}

// DateOnly normalizes a timestamp to its calendar date, discarding clock
// time and location. Truncate would round to UTC day boundaries and put
// midnights in other zones on the wrong day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Violation is a single typed rule breach attached to an occurrence date.
// Magnitude carries the rule-specific excess (hours over a cap, rest
// shortfall, run length) so callers can render it without re-deriving.
type Violation struct {
	Kind       ViolationKind
	Severity   Severity
	EmployeeID string
	ProjectID  string
	Date       time.Time
	DateRange  *DateRange // set for run-shaped violations (consecutive nights)
	Magnitude  float64
	Message    string
}

// Status is the per-person traffic-light reduction of a violation list.
type Status string

const (
	StatusGreen Status = "green" // no violations
	StatusAmber Status = "amber" // warnings or level1/level2 only
	StatusRed   Status = "red"   // at least one breach
)
