package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/alert"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type alertRepositoryImpl struct {
	db *database.DB
}

func NewAlertRepository(db *database.DB) alert.AlertRepository {
	return &alertRepositoryImpl{db: db}
}

const alertColumns = `
	id, org_id, employee_id, project_id, kind, severity, date, message, created_at, read_at
`

func scanAlert(row pgx.Row) (alert.Alert, error) {
	var a alert.Alert
	err := row.Scan(
		&a.ID,
		&a.OrgID,
		&a.EmployeeID,
		&a.ProjectID,
		&a.Kind,
		&a.Severity,
		&a.Date,
		&a.Message,
		&a.CreatedAt,
		&a.ReadAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return alert.Alert{}, alert.ErrAlertNotFound
	}
	if err != nil {
		return alert.Alert{}, err
	}
	return a, nil
}

// Create implements alert.AlertRepository.
func (r *alertRepositoryImpl) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO alerts (org_id, employee_id, project_id, kind, severity, date, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + alertColumns + `
	`
	return scanAlert(q.QueryRow(ctx, query,
		a.OrgID,
		a.EmployeeID,
		a.ProjectID,
		a.Kind,
		a.Severity,
		a.Date,
		a.Message,
	))
}

// Exists implements alert.AlertRepository. Dates compare by calendar day.
func (r *alertRepositoryImpl) Exists(ctx context.Context, orgID, employeeID, kind string, date string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM alerts
			WHERE org_id = $1 AND employee_id = $2 AND kind = $3 AND date = $4::date
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, orgID, employeeID, kind, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check alert existence: %w", err)
	}
	return exists, nil
}

func (r *alertRepositoryImpl) queryAlerts(ctx context.Context, query string, args ...interface{}) ([]alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// GetByEmployeeID implements alert.AlertRepository.
func (r *alertRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID, orgID string, unreadOnly bool) ([]alert.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE employee_id = $1 AND org_id = $2
	`
	if unreadOnly {
		query += " AND read_at IS NULL"
	}
	query += " ORDER BY date DESC, created_at DESC"
	return r.queryAlerts(ctx, query, employeeID, orgID)
}

// GetByProjectID implements alert.AlertRepository.
func (r *alertRepositoryImpl) GetByProjectID(ctx context.Context, projectID, orgID string, unreadOnly bool) ([]alert.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE project_id = $1 AND org_id = $2
	`
	if unreadOnly {
		query += " AND read_at IS NULL"
	}
	query += " ORDER BY date DESC, created_at DESC"
	return r.queryAlerts(ctx, query, projectID, orgID)
}

// CountUnreadByKind implements alert.AlertRepository.
func (r *alertRepositoryImpl) CountUnreadByKind(ctx context.Context, orgID string) (map[string]int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT kind, COUNT(*)
		FROM alerts
		WHERE org_id = $1 AND read_at IS NULL
		GROUP BY kind
	`
	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

// MarkRead implements alert.AlertRepository.
func (r *alertRepositoryImpl) MarkRead(ctx context.Context, id, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE alerts
		SET read_at = NOW()
		WHERE id = $1 AND org_id = $2 AND read_at IS NULL
	`
	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return alert.ErrAlertNotFound
	}
	return nil
}
