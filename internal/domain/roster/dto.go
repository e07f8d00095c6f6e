package roster

import (
	"strings"
	"time"

	"github.com/railsafe/roster-backend-go/internal/pkg/validator"
)

type DayTimesRequest struct {
	StartTime string `json:"start_time"` // HH:MM format
	EndTime   string `json:"end_time"`   // HH:MM format
}

type FatigueParamsRequest struct {
	Workload             *int `json:"workload"`
	Attention            *int `json:"attention"`
	CommuteInMinutes     *int `json:"commute_in_minutes"`
	CommuteOutMinutes    *int `json:"commute_out_minutes"`
	BreakFrequencyMins   *int `json:"break_frequency_minutes"`
	BreakLengthMins      *int `json:"break_length_minutes"`
	ContinuousWorkMins   *int `json:"continuous_work_minutes"`
	BreakAfterContinuous *int `json:"break_after_continuous_minutes"`
}

func (r *FatigueParamsRequest) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if r.Workload != nil && !validator.IsValidRating(*r.Workload) {
		errs = append(errs, validator.ValidationError{
			Field:   "workload",
			Message: "workload must be between 1 and 5",
		})
	}
	if r.Attention != nil && !validator.IsValidRating(*r.Attention) {
		errs = append(errs, validator.ValidationError{
			Field:   "attention",
			Message: "attention must be between 1 and 5",
		})
	}
	for field, v := range map[string]*int{
		"commute_in_minutes":             r.CommuteInMinutes,
		"commute_out_minutes":            r.CommuteOutMinutes,
		"break_frequency_minutes":        r.BreakFrequencyMins,
		"break_length_minutes":           r.BreakLengthMins,
		"continuous_work_minutes":        r.ContinuousWorkMins,
		"break_after_continuous_minutes": r.BreakAfterContinuous,
	} {
		if v != nil && *v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a non-negative number",
			})
		}
	}
	return errs
}

type CreateShiftPatternRequest struct {
	ProjectID    string                     `json:"project_id"`
	Name         string                     `json:"name"`
	StartTime    string                     `json:"start_time"` // HH:MM format
	EndTime      string                     `json:"end_time"`   // HH:MM format
	DutyType     string                     `json:"duty_type"`
	WeekdayTimes map[string]DayTimesRequest `json:"weekday_times,omitempty"` // keyed monday..sunday
	Fatigue      FatigueParamsRequest       `json:"fatigue"`
}

var weekdayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// WeekdayFromKey maps a lowercase weekday name to time.Weekday.
func WeekdayFromKey(key string) (time.Weekday, bool) {
	d, ok := weekdayByName[strings.ToLower(key)]
	return d, ok
}

// WeekdayKey is the inverse of WeekdayFromKey.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

func (r *CreateShiftPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	} else if _, valid := validator.IsValidTime(r.StartTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time in HH:MM format",
		})
	}
	if validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required",
		})
	} else if _, valid := validator.IsValidTime(r.EndTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time in HH:MM format",
		})
	}
	if validator.IsEmpty(r.DutyType) {
		errs = append(errs, validator.ValidationError{
			Field:   "duty_type",
			Message: "duty_type is required",
		})
	} else if !validator.IsInSlice(r.DutyType, DutyTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "duty_type",
			Message: "duty_type must be one of: " + strings.Join(DutyTypeValues, ", "),
		})
	}
	for day, times := range r.WeekdayTimes {
		if !validator.IsInSlice(strings.ToLower(day), weekdayKeys) {
			errs = append(errs, validator.ValidationError{
				Field:   "weekday_times",
				Message: "unknown weekday: " + day,
			})
			continue
		}
		if _, valid := validator.IsValidTime(times.StartTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "weekday_times." + day + ".start_time",
				Message: "start_time must be a valid time in HH:MM format",
			})
		}
		if _, valid := validator.IsValidTime(times.EndTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "weekday_times." + day + ".end_time",
				Message: "end_time must be a valid time in HH:MM format",
			})
		}
	}
	errs = r.Fatigue.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftPatternRequest struct {
	ID           string                     `json:"-"`
	Name         *string                    `json:"name,omitempty"`
	StartTime    *string                    `json:"start_time,omitempty"`
	EndTime      *string                    `json:"end_time,omitempty"`
	DutyType     *string                    `json:"duty_type,omitempty"`
	WeekdayTimes map[string]DayTimesRequest `json:"weekday_times,omitempty"`
	Fatigue      *FatigueParamsRequest      `json:"fatigue,omitempty"`
}

func (r *UpdateShiftPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.StartTime != nil {
		if _, valid := validator.IsValidTime(*r.StartTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be a valid time in HH:MM format",
			})
		}
	}
	if r.EndTime != nil {
		if _, valid := validator.IsValidTime(*r.EndTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid time in HH:MM format",
			})
		}
	}
	if r.DutyType != nil && !validator.IsInSlice(*r.DutyType, DutyTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "duty_type",
			Message: "duty_type must be one of: " + strings.Join(DutyTypeValues, ", "),
		})
	}
	if r.Fatigue != nil {
		errs = r.Fatigue.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftPatternResponse struct {
	ID           string                     `json:"id"`
	ProjectID    string                     `json:"project_id"`
	Name         string                     `json:"name"`
	StartTime    string                     `json:"start_time"`
	EndTime      string                     `json:"end_time"`
	DutyType     string                     `json:"duty_type"`
	IsNight      bool                       `json:"is_night"`
	WeekdayTimes map[string]DayTimesRequest `json:"weekday_times,omitempty"`
	Fatigue      FatigueParamsRequest       `json:"fatigue"`
	CreatedAt    string                     `json:"created_at"`
	UpdatedAt    string                     `json:"updated_at"`
}

type CreateAssignmentRequest struct {
	ProjectID       string               `json:"project_id"`
	PatternID       string               `json:"pattern_id"`
	AssigneeType    string               `json:"assignee_type"` // individual or team
	EmployeeID      string               `json:"employee_id,omitempty"`
	TeamID          string               `json:"team_id,omitempty"`
	StartDate       string               `json:"start_date"`         // YYYY-MM-DD
	EndDate         *string              `json:"end_date,omitempty"` // defaults to start_date
	CustomStartTime *string              `json:"custom_start_time,omitempty"`
	CustomEndTime   *string              `json:"custom_end_time,omitempty"`
	Fatigue         FatigueParamsRequest `json:"fatigue,omitempty"`
}

func (r *CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}
	if validator.IsEmpty(r.PatternID) {
		errs = append(errs, validator.ValidationError{
			Field:   "pattern_id",
			Message: "pattern_id is required",
		})
	}
	switch AssigneeType(r.AssigneeType) {
	case AssigneeIndividual:
		if validator.IsEmpty(r.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id is required for individual assignments",
			})
		}
	case AssigneeTeam:
		if validator.IsEmpty(r.TeamID) {
			errs = append(errs, validator.ValidationError{
				Field:   "team_id",
				Message: "team_id is required for team assignments",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "assignee_type",
			Message: "assignee_type must be one of: individual, team",
		})
	}
	startDate, startValid := validator.IsValidDate(r.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}
	if r.EndDate != nil {
		endDate, endValid := validator.IsValidDate(*r.EndDate)
		if !endValid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date in YYYY-MM-DD format",
			})
		} else if startValid && endDate.Before(startDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}
	if (r.CustomStartTime == nil) != (r.CustomEndTime == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_start_time",
			Message: "custom_start_time and custom_end_time must be provided together",
		})
	}
	if r.CustomStartTime != nil {
		if _, valid := validator.IsValidTime(*r.CustomStartTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_start_time",
				Message: "custom_start_time must be a valid time in HH:MM format",
			})
		}
	}
	if r.CustomEndTime != nil {
		if _, valid := validator.IsValidTime(*r.CustomEndTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_end_time",
				Message: "custom_end_time must be a valid time in HH:MM format",
			})
		}
	}
	errs = r.Fatigue.validate(errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID              string  `json:"id"`
	ProjectID       string  `json:"project_id"`
	PatternID       string  `json:"pattern_id"`
	AssigneeType    string  `json:"assignee_type"`
	EmployeeID      string  `json:"employee_id,omitempty"`
	TeamID          string  `json:"team_id,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	CustomStartTime *string `json:"custom_start_time,omitempty"`
	CustomEndTime   *string `json:"custom_end_time,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type CreateTeamRequest struct {
	ProjectID string   `json:"project_id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

func (r *CreateTeamRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.MemberIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "member_ids",
			Message: "member_ids must contain at least one employee",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TeamResponse struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project_id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// ListShiftPatternResponse carries a page of patterns with pagination metadata.
type ListShiftPatternResponse struct {
	TotalCount    int64                  `json:"total_count"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
	ShiftPatterns []ShiftPatternResponse `json:"shift_patterns"`
}

type ShiftPatternFilter struct {
	Name      *string `json:"name,omitempty"`
	DutyType  *string `json:"duty_type,omitempty"`
	ProjectID *string `json:"project_id,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // name, duty_type, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *ShiftPatternFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}
	if f.SortBy != "" {
		validSortFields := []string{"name", "duty_type", "created_at"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: name, duty_type, created_at",
			})
		}
	} else {
		f.SortBy = "name"
	}
	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
