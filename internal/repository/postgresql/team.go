package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) roster.TeamRepository {
	return &teamRepositoryImpl{db: db}
}

// Create implements roster.TeamRepository.
func (r *teamRepositoryImpl) Create(ctx context.Context, team roster.Team, orgID string) (roster.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO teams (org_id, project_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, orgID, team.ProjectID, team.Name).
		Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return roster.Team{}, fmt.Errorf("failed to create team: %w", err)
	}

	if err := r.replaceMembers(ctx, team.ID, team.MemberIDs); err != nil {
		return roster.Team{}, err
	}
	return team, nil
}

func (r *teamRepositoryImpl) replaceMembers(ctx context.Context, teamID string, memberIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("failed to clear team members: %w", err)
	}
	for _, employeeID := range memberIDs {
		_, err := q.Exec(ctx, `
			INSERT INTO team_members (team_id, employee_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, teamID, employeeID)
		if err != nil {
			return fmt.Errorf("failed to insert team member: %w", err)
		}
	}
	return nil
}

// GetByID implements roster.TeamRepository.
func (r *teamRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (roster.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, project_id, name, created_at, updated_at
		FROM teams
		WHERE id = $1 AND org_id = $2
	`
	var team roster.Team
	err := q.QueryRow(ctx, query, id, orgID).
		Scan(&team.ID, &team.ProjectID, &team.Name, &team.CreatedAt, &team.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return roster.Team{}, roster.ErrTeamNotFound
	}
	if err != nil {
		return roster.Team{}, err
	}

	team.MemberIDs, err = r.MemberIDs(ctx, id, orgID)
	if err != nil {
		return roster.Team{}, err
	}
	return team, nil
}

// GetByProjectID implements roster.TeamRepository.
func (r *teamRepositoryImpl) GetByProjectID(ctx context.Context, projectID, orgID string) ([]roster.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.project_id, t.name, t.created_at, t.updated_at, tm.employee_id
		FROM teams t
		LEFT JOIN team_members tm ON tm.team_id = t.id
		WHERE t.project_id = $1 AND t.org_id = $2
		ORDER BY t.name, tm.employee_id
	`
	rows, err := q.Query(ctx, query, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teamsMap := make(map[string]*roster.Team)
	var order []string
	for rows.Next() {
		var t roster.Team
		var employeeID *string
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &employeeID); err != nil {
			return nil, err
		}
		existing, ok := teamsMap[t.ID]
		if !ok {
			teamsMap[t.ID] = &t
			order = append(order, t.ID)
			existing = &t
		}
		if employeeID != nil {
			existing.MemberIDs = append(existing.MemberIDs, *employeeID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	teams := make([]roster.Team, 0, len(order))
	for _, id := range order {
		teams = append(teams, *teamsMap[id])
	}
	return teams, nil
}

// MemberIDs implements roster.TeamRepository.
func (r *teamRepositoryImpl) MemberIDs(ctx context.Context, teamID, orgID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tm.employee_id
		FROM team_members tm
		JOIN teams t ON t.id = tm.team_id
		WHERE tm.team_id = $1 AND t.org_id = $2
		ORDER BY tm.employee_id
	`
	rows, err := q.Query(ctx, query, teamID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		memberIDs = append(memberIDs, id)
	}
	return memberIDs, rows.Err()
}

// Update implements roster.TeamRepository.
func (r *teamRepositoryImpl) Update(ctx context.Context, team roster.Team, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE teams
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND org_id = $3
	`
	tag, err := q.Exec(ctx, query, team.Name, team.ID, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrTeamNotFound
	}

	if team.MemberIDs != nil {
		return r.replaceMembers(ctx, team.ID, team.MemberIDs)
	}
	return nil
}

// Delete implements roster.TeamRepository.
func (r *teamRepositoryImpl) Delete(ctx context.Context, id, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM teams WHERE id = $1 AND org_id = $2`
	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrTeamNotFound
	}
	return nil
}
