package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) roster.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

const assignmentColumns = `
	a.id, a.project_id, a.pattern_id, a.assignee_type, a.employee_id, a.team_id,
	a.start_date, a.end_date, a.custom_start_mins, a.custom_end_mins,
	a.workload, a.attention, a.commute_in_mins, a.commute_out_mins,
	a.break_frequency_mins, a.break_length_mins, a.continuous_work_mins,
	a.break_after_continuous_mins, a.created_at, a.updated_at
`

func scanAssignment(row pgx.Row) (roster.Assignment, error) {
	var a roster.Assignment
	var employeeID, teamID *string
	err := row.Scan(
		&a.ID,
		&a.ProjectID,
		&a.PatternID,
		&a.Assignee.Type,
		&employeeID,
		&teamID,
		&a.StartDate,
		&a.EndDate,
		&a.CustomStartTime,
		&a.CustomEndTime,
		&a.FatigueOverrides.Workload,
		&a.FatigueOverrides.Attention,
		&a.FatigueOverrides.CommuteInMinutes,
		&a.FatigueOverrides.CommuteOutMinutes,
		&a.FatigueOverrides.BreakFrequencyMins,
		&a.FatigueOverrides.BreakLengthMins,
		&a.FatigueOverrides.ContinuousWorkMins,
		&a.FatigueOverrides.BreakAfterContinuous,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return roster.Assignment{}, roster.ErrAssignmentNotFound
	}
	if err != nil {
		return roster.Assignment{}, err
	}
	if employeeID != nil {
		a.Assignee.EmployeeID = *employeeID
	}
	if teamID != nil {
		a.Assignee.TeamID = *teamID
	}
	return a, nil
}

// Create implements roster.AssignmentRepository.
func (r *assignmentRepositoryImpl) Create(ctx context.Context, assignment roster.Assignment, orgID string) (roster.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	var employeeID, teamID *string
	switch assignment.Assignee.Type {
	case roster.AssigneeIndividual:
		employeeID = &assignment.Assignee.EmployeeID
	case roster.AssigneeTeam:
		teamID = &assignment.Assignee.TeamID
	default:
		return roster.Assignment{}, roster.ErrUnknownAssigneeType
	}

	query := `
		INSERT INTO assignments (
			org_id, project_id, pattern_id, assignee_type, employee_id, team_id,
			start_date, end_date, custom_start_mins, custom_end_mins,
			workload, attention, commute_in_mins, commute_out_mins,
			break_frequency_mins, break_length_mins, continuous_work_mins,
			break_after_continuous_mins
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		orgID,
		assignment.ProjectID,
		assignment.PatternID,
		assignment.Assignee.Type,
		employeeID,
		teamID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.CustomStartTime,
		assignment.CustomEndTime,
		assignment.FatigueOverrides.Workload,
		assignment.FatigueOverrides.Attention,
		assignment.FatigueOverrides.CommuteInMinutes,
		assignment.FatigueOverrides.CommuteOutMinutes,
		assignment.FatigueOverrides.BreakFrequencyMins,
		assignment.FatigueOverrides.BreakLengthMins,
		assignment.FatigueOverrides.ContinuousWorkMins,
		assignment.FatigueOverrides.BreakAfterContinuous,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

// GetByID implements roster.AssignmentRepository.
func (r *assignmentRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (roster.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		WHERE a.id = $1 AND a.org_id = $2
	`
	return scanAssignment(q.QueryRow(ctx, query, id, orgID))
}

func (r *assignmentRepositoryImpl) queryAssignments(ctx context.Context, query string, args ...interface{}) ([]roster.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []roster.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// GetByProjectID implements roster.AssignmentRepository.
func (r *assignmentRepositoryImpl) GetByProjectID(ctx context.Context, projectID, orgID string) ([]roster.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		WHERE a.project_id = $1 AND a.org_id = $2
		ORDER BY a.start_date, a.id
	`
	return r.queryAssignments(ctx, query, projectID, orgID)
}

// GetByEmployeeID implements roster.AssignmentRepository. Team assignments
// are included through the employee's team memberships.
func (r *assignmentRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID, orgID string) ([]roster.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		WHERE a.org_id = $2
		  AND (
			(a.assignee_type = 'individual' AND a.employee_id = $1)
			OR (a.assignee_type = 'team' AND a.team_id IN (
				SELECT team_id FROM team_members WHERE employee_id = $1
			))
		  )
		ORDER BY a.start_date, a.id
	`
	return r.queryAssignments(ctx, query, employeeID, orgID)
}

// GetByDateRange implements roster.AssignmentRepository. An assignment is
// returned when its inclusive date span intersects [from, to].
func (r *assignmentRepositoryImpl) GetByDateRange(ctx context.Context, projectID string, from, to time.Time, orgID string) ([]roster.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments a
		WHERE a.project_id = $1 AND a.org_id = $2
		  AND a.start_date <= $4 AND a.end_date >= $3
		ORDER BY a.start_date, a.id
	`
	return r.queryAssignments(ctx, query, projectID, orgID, from, to)
}

// Delete implements roster.AssignmentRepository.
func (r *assignmentRepositoryImpl) Delete(ctx context.Context, id, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM assignments WHERE id = $1 AND org_id = $2`
	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrAssignmentNotFound
	}
	return nil
}
