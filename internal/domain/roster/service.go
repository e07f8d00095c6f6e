package roster

import "context"

type RosterService interface {
	// Shift Pattern
	CreateShiftPattern(ctx context.Context, req CreateShiftPatternRequest) (ShiftPatternResponse, error)
	GetShiftPattern(ctx context.Context, id string) (ShiftPatternResponse, error)
	ListShiftPatterns(ctx context.Context, filter ShiftPatternFilter) (ListShiftPatternResponse, error)
	UpdateShiftPattern(ctx context.Context, req UpdateShiftPatternRequest) (ShiftPatternResponse, error)
	DeleteShiftPattern(ctx context.Context, id string) error

	// Assignment
	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) ([]AssignmentResponse, error)
	GetAssignment(ctx context.Context, id string) (AssignmentResponse, error)
	ListAssignmentsByProject(ctx context.Context, projectID string) ([]AssignmentResponse, error)
	ListAssignmentsByEmployee(ctx context.Context, employeeID string) ([]AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id string) error

	// Team
	CreateTeam(ctx context.Context, req CreateTeamRequest) (TeamResponse, error)
	GetTeam(ctx context.Context, id string) (TeamResponse, error)
	ListTeamsByProject(ctx context.Context, projectID string) ([]TeamResponse, error)
	DeleteTeam(ctx context.Context, id string) error
}
