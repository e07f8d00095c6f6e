package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/railsafe/roster-backend-go/internal/domain/employee"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, user_id, org_id, employee_code, full_name, depot, primary_duty,
	safety_card_number, safety_card_expiry, phone_number, hire_date,
	resignation_date, employment_status, created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.OrgID,
		&e.EmployeeCode,
		&e.FullName,
		&e.Depot,
		&e.PrimaryDuty,
		&e.SafetyCardNumber,
		&e.SafetyCardExpiry,
		&e.PhoneNumber,
		&e.HireDate,
		&e.ResignationDate,
		&e.EmploymentStatus,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id, orgID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND org_id = $2 AND deleted_at IS NULL
	`
	return scanEmployee(q.QueryRow(ctx, query, id, orgID))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	return scanEmployee(q.QueryRow(ctx, query, userID))
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, orgID string, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE org_id = $1 AND employee_code = $2 AND deleted_at IS NULL
	`
	return scanEmployee(q.QueryRow(ctx, query, orgID, employeeCode))
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, org_id, employee_code, full_name, depot, primary_duty,
			safety_card_number, safety_card_expiry, phone_number, hire_date, employment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns + `
	`

	row := q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.OrgID,
		newEmployee.EmployeeCode,
		newEmployee.FullName,
		newEmployee.Depot,
		newEmployee.PrimaryDuty,
		newEmployee.SafetyCardNumber,
		newEmployee.SafetyCardExpiry,
		newEmployee.PhoneNumber,
		newEmployee.HireDate,
		newEmployee.EmploymentStatus,
	)
	created, err := scanEmployee(row)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}
	return created, err
}

// ExistsByIDOrCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByIDOrCode(ctx context.Context, orgID string, id, employeeCode *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var arg interface{}

	switch {
	case id != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE org_id = $1 AND id = $2 AND deleted_at IS NULL)`
		arg = *id
	case employeeCode != nil:
		query = `SELECT EXISTS(SELECT 1 FROM employees WHERE org_id = $1 AND employee_code = $2 AND deleted_at IS NULL)`
		arg = *employeeCode
	default:
		return false, nil
	}

	var exists bool
	if err := q.QueryRow(ctx, query, orgID, arg).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id, orgID string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Depot != nil {
		updates["depot"] = *req.Depot
	}
	if req.PrimaryDuty != nil {
		updates["primary_duty"] = *req.PrimaryDuty
	}
	if req.SafetyCardNumber != nil {
		updates["safety_card_number"] = *req.SafetyCardNumber
	}
	if req.SafetyCardExpiry != nil {
		updates["safety_card_expiry"] = *req.SafetyCardExpiry
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.EmploymentStatus != nil {
		updates["employment_status"] = *req.EmploymentStatus
	}
	if req.ResignationDate != nil {
		updates["resignation_date"] = *req.ResignationDate
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for employee update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+2)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE employees SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND org_id = $%d AND deleted_at IS NULL RETURNING id", i, i+1)
	args = append(args, id, orgID)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND org_id = $2 AND deleted_at IS NULL
	`
	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// GetActiveByOrgID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActiveByOrgID(ctx context.Context, orgID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE org_id = $1 AND employment_status = 'active' AND deleted_at IS NULL
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
