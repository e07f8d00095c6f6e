package roster

import (
	"context"
	"time"
)

type ShiftPatternRepository interface {
	Create(ctx context.Context, pattern ShiftPattern, orgID string) (ShiftPattern, error)
	GetByID(ctx context.Context, id string, orgID string) (ShiftPattern, error)
	GetByProjectID(ctx context.Context, projectID, orgID string) ([]ShiftPattern, error)
	List(ctx context.Context, orgID string, filter ShiftPatternFilter) ([]ShiftPattern, int64, error)
	Update(ctx context.Context, req UpdateShiftPatternRequest, orgID string) (ShiftPattern, error)
	SoftDelete(ctx context.Context, id, orgID string) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment Assignment, orgID string) (Assignment, error)
	GetByID(ctx context.Context, id string, orgID string) (Assignment, error)
	GetByProjectID(ctx context.Context, projectID, orgID string) ([]Assignment, error)
	GetByEmployeeID(ctx context.Context, employeeID, orgID string) ([]Assignment, error)
	GetByDateRange(ctx context.Context, projectID string, from, to time.Time, orgID string) ([]Assignment, error)
	Delete(ctx context.Context, id, orgID string) error
}

type TeamRepository interface {
	Create(ctx context.Context, team Team, orgID string) (Team, error)
	GetByID(ctx context.Context, id string, orgID string) (Team, error)
	GetByProjectID(ctx context.Context, projectID, orgID string) ([]Team, error)
	MemberIDs(ctx context.Context, teamID, orgID string) ([]string, error)
	Update(ctx context.Context, team Team, orgID string) error
	Delete(ctx context.Context, id, orgID string) error
}
