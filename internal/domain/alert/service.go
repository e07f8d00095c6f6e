package alert

import (
	"context"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
)

// Service records breach alerts and fans them out to live subscribers.
type Service interface {
	// NotifyBreach persists an alert for the violation unless one already
	// exists for the same (employee, kind, date), and publishes it to the
	// employee's and project's SSE channels.
	NotifyBreach(ctx context.Context, orgID string, v compliance.Violation)

	ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]AlertResponse, error)
	ListForProject(ctx context.Context, projectID string, unreadOnly bool) ([]AlertResponse, error)
	MarkRead(ctx context.Context, id string) error
}
