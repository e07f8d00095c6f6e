package roster

import "errors"

var (
	// Shift Pattern Errors
	ErrShiftPatternNotFound   = errors.New("shift pattern not found")
	ErrShiftPatternNameExists = errors.New("shift pattern with this name already exists")
	ErrShiftPatternInUse      = errors.New("shift pattern is referenced by assignments")

	// Assignment Errors
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrAssignmentDateOrder   = errors.New("assignment end date is before start date")
	ErrUnknownAssigneeType   = errors.New("unknown assignee type")
	ErrOverlappingAssignment = errors.New("overlapping assignment detected")

	// Team Errors
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamEmpty    = errors.New("team has no members")

	// Validation Errors
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat  = errors.New("invalid time format, use HH:MM")

	// Request Data Errors
	ErrInvalidRequestData = errors.New("invalid request data")
)
