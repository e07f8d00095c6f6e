package employee

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/employee"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/domain/user"
	"github.com/railsafe/roster-backend-go/internal/pkg/validator"
)

type service struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &service{employeeRepo: employeeRepo}
}

// claimsFromContext extracts the token's tenant, employee link, and role.
func claimsFromContext(ctx context.Context) (orgID, employeeID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", "", "", fmt.Errorf("org_id claim is missing or invalid")
	}
	if id, ok := claims["employee_id"].(string); ok {
		employeeID = id
	}
	if r, ok := claims["role"].(string); ok {
		role = user.Role(r)
	}
	return orgID, employeeID, role, nil
}

// GetEmployee implements employee.EmployeeService. Workers may only read
// their own record; planners and owners read anyone in the organisation.
func (s *service) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	orgID, selfID, role, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if !user.HasPermission(role, user.PermissionEmployeeViewAll) && id != selfID {
		return employee.EmployeeResponse{}, employee.ErrUnauthorized
	}

	e, err := s.employeeRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *service) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	orgID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByIDOrCode(ctx, orgID, nil, &req.EmployeeCode)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	newEmployee := employee.Employee{
		OrgID:            orgID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		Depot:            req.Depot,
		PrimaryDuty:      roster.DutyType(req.PrimaryDuty),
		SafetyCardNumber: req.SafetyCardNumber,
		PhoneNumber:      req.PhoneNumber,
		HireDate:         hireDate,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
	if req.SafetyCardExpiry != nil {
		expiry, _ := validator.IsValidDate(*req.SafetyCardExpiry)
		newEmployee.SafetyCardExpiry = &expiry
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *service) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	orgID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, id, orgID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *service) DeleteEmployee(ctx context.Context, id string) error {
	orgID, selfID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}
	if id == selfID {
		return employee.ErrCannotDeleteSelf
	}
	return s.employeeRepo.Delete(ctx, id, orgID)
}

// ListEmployees implements employee.EmployeeService.
func (s *service) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	orgID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByOrgID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToEmployeeResponse(e))
	}
	return responses, nil
}
