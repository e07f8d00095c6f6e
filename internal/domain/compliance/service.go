package compliance

import (
	"context"
	"time"
)

// ComplianceService evaluates rosters against the fatigue standard. The
// underlying computation is pure and deterministic; the service layer only
// adds data access and result caching.
type ComplianceService interface {
	EvaluatePerson(ctx context.Context, employeeID string) (PersonEvaluation, error)
	EvaluateProject(ctx context.Context, projectID string) (ProjectEvaluation, error)
	ViolationsForCell(ctx context.Context, employeeID string, day time.Time) (CellViolations, error)
}
