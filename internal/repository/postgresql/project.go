package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/railsafe/roster-backend-go/internal/domain/project"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

const projectColumns = `
	id, org_id, name, code, line_ref, status, start_date, end_date,
	created_at, updated_at, deleted_at
`

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project
	err := row.Scan(
		&p.ID,
		&p.OrgID,
		&p.Name,
		&p.Code,
		&p.LineRef,
		&p.Status,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return project.Project{}, project.ErrProjectNotFound
	}
	if err != nil {
		return project.Project{}, err
	}
	return p, nil
}

// GetByID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id, orgID string) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = $1 AND org_id = $2 AND deleted_at IS NULL
	`
	return scanProject(q.QueryRow(ctx, query, id, orgID))
}

// GetByOrgID implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetByOrgID(ctx context.Context, orgID string) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE org_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetAllActive implements project.ProjectRepository.
func (r *projectRepositoryImpl) GetAllActive(ctx context.Context) ([]project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE status = 'active' AND deleted_at IS NULL
		ORDER BY org_id, created_at
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Create implements project.ProjectRepository.
func (r *projectRepositoryImpl) Create(ctx context.Context, newProject project.Project) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (org_id, name, code, line_ref, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + projectColumns + `
	`
	row := q.QueryRow(ctx, query,
		newProject.OrgID,
		newProject.Name,
		newProject.Code,
		newProject.LineRef,
		newProject.Status,
		newProject.StartDate,
		newProject.EndDate,
	)
	created, err := scanProject(row)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return project.Project{}, project.ErrProjectCodeExists
	}
	return created, err
}

// ExistsByCode implements project.ProjectRepository.
func (r *projectRepositoryImpl) ExistsByCode(ctx context.Context, code, orgID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM projects WHERE org_id = $1 AND code = $2 AND deleted_at IS NULL)`

	var exists bool
	if err := q.QueryRow(ctx, query, orgID, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Update implements project.ProjectRepository.
func (r *projectRepositoryImpl) Update(ctx context.Context, id, orgID string, req project.UpdateProjectRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.LineRef != nil {
		updates["line_ref"] = *req.LineRef
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for project update")
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

	sql := "UPDATE projects SET " + strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND org_id = $%d AND deleted_at IS NULL RETURNING id", i, i+1)
	args = append(args, id, orgID)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project with id %s: %w", id, err)
	}
	return nil
}

// Delete implements project.ProjectRepository.
func (r *projectRepositoryImpl) Delete(ctx context.Context, id, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE projects
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND org_id = $2 AND deleted_at IS NULL
	`
	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return project.ErrProjectNotFound
	}
	return nil
}
