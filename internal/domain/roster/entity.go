package roster

import (
	"time"

	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
)

// ShiftPattern is a named shift template owned by a project. Start and end
// are wall-clock times; the shift wraps to the next calendar day when
// end <= start. A pattern may carry a per-weekday override schedule: when
// the override map is non-empty, weekdays absent from it produce no
// occurrence at all.
type ShiftPattern struct {
	ID        string
	ProjectID string
	Name      string
	StartTime clock.ClockTime
	EndTime   clock.ClockTime
	DutyType  DutyType
	IsNight   bool // derived hint only; occurrences classify from absolute times

	// Weekday overrides, keyed by time.Weekday.
	WeekdayTimes map[time.Weekday]DayTimes

	Fatigue FatigueParams

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type DayTimes struct {
	StartTime clock.ClockTime
	EndTime   clock.ClockTime
}

type DutyType string

const (
	DutyTypeDriving     DutyType = "driving"
	DutyTypeTrackWork   DutyType = "track_work"
	DutyTypeSignalling  DutyType = "signalling"
	DutyTypeMaintenance DutyType = "maintenance"
	DutyTypeOther       DutyType = "other"
)

var DutyTypeValues = []string{
	string(DutyTypeDriving),
	string(DutyTypeTrackWork),
	string(DutyTypeSignalling),
	string(DutyTypeMaintenance),
	string(DutyTypeOther),
}

// FatigueParams are the per-pattern fatigue model inputs. Assignments may
// override individual fields; resolution order is assignment override,
// then pattern, then the configured system defaults.
type FatigueParams struct {
	Workload             int // 1 (light) .. 5 (heavy)
	Attention            int // 1 (low) .. 5 (sustained)
	CommuteInMinutes     int
	CommuteOutMinutes    int
	BreakFrequencyMins   int // scheduled break every N minutes
	BreakLengthMins      int
	ContinuousWorkMins   int
	BreakAfterContinuous int
}

// FatigueOverrides carries optional per-assignment overrides of the
// pattern's fatigue parameters.
type FatigueOverrides struct {
	Workload             *int
	Attention            *int
	CommuteInMinutes     *int
	CommuteOutMinutes    *int
	BreakFrequencyMins   *int
	BreakLengthMins      *int
	ContinuousWorkMins   *int
	BreakAfterContinuous *int
}

// Resolve applies the overrides on top of base.
func (o FatigueOverrides) Resolve(base FatigueParams) FatigueParams {
	out := base
	if o.Workload != nil {
		out.Workload = *o.Workload
	}
	if o.Attention != nil {
		out.Attention = *o.Attention
	}
	if o.CommuteInMinutes != nil {
		out.CommuteInMinutes = *o.CommuteInMinutes
	}
	if o.CommuteOutMinutes != nil {
		out.CommuteOutMinutes = *o.CommuteOutMinutes
	}
	if o.BreakFrequencyMins != nil {
		out.BreakFrequencyMins = *o.BreakFrequencyMins
	}
	if o.BreakLengthMins != nil {
		out.BreakLengthMins = *o.BreakLengthMins
	}
	if o.ContinuousWorkMins != nil {
		out.ContinuousWorkMins = *o.ContinuousWorkMins
	}
	if o.BreakAfterContinuous != nil {
		out.BreakAfterContinuous = *o.BreakAfterContinuous
	}
	return out
}

// AssigneeType tags the assignment target variant.
type AssigneeType string

const (
	AssigneeIndividual AssigneeType = "individual"
	AssigneeTeam       AssigneeType = "team"
)

// Assignee is the tagged variant binding an assignment to either a single
// employee or a whole team. Team assignments are resolved to per-person
// occurrences at expansion time; the team tag is not carried forward.
type Assignee struct {
	Type       AssigneeType
	EmployeeID string // set when Type == AssigneeIndividual
	TeamID     string // set when Type == AssigneeTeam
}

// Assignment binds an assignee to a shift pattern over an inclusive date
// range (a single date has equal bounds). A custom time override supersedes
// the pattern's times for every day of the assignment.
type Assignment struct {
	ID        string
	ProjectID string
	PatternID string
	Assignee  Assignee
	StartDate time.Time
	EndDate   time.Time

	CustomStartTime *clock.ClockTime
	CustomEndTime   *clock.ClockTime

	FatigueOverrides FatigueOverrides

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Team is a named group of employees assignable as a unit.
type Team struct {
	ID        string
	ProjectID string
	Name      string
	MemberIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
