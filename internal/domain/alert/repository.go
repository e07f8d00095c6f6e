package alert

import "context"

type AlertRepository interface {
	Create(ctx context.Context, a Alert) (Alert, error)
	Exists(ctx context.Context, orgID, employeeID, kind string, date string) (bool, error)
	GetByEmployeeID(ctx context.Context, employeeID, orgID string, unreadOnly bool) ([]Alert, error)
	GetByProjectID(ctx context.Context, projectID, orgID string, unreadOnly bool) ([]Alert, error)
	CountUnreadByKind(ctx context.Context, orgID string) (map[string]int64, error)
	MarkRead(ctx context.Context, id, orgID string) error
}
