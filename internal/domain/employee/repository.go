package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id, orgID string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, orgID string, employeeCode string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByIDOrCode(ctx context.Context, orgID string, id, employeeCode *string) (bool, error)
	Update(ctx context.Context, id, orgID string, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id, orgID string) error
	GetActiveByOrgID(ctx context.Context, orgID string) ([]Employee, error)
}
