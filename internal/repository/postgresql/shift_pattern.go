package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
	"github.com/railsafe/roster-backend-go/internal/pkg/database"
)

type shiftPatternRepositoryImpl struct {
	db *database.DB
}

func NewShiftPatternRepository(db *database.DB) roster.ShiftPatternRepository {
	return &shiftPatternRepositoryImpl{db: db}
}

const shiftPatternColumns = `
	sp.id, sp.project_id, sp.name, sp.start_mins, sp.end_mins, sp.duty_type, sp.is_night,
	sp.workload, sp.attention, sp.commute_in_mins, sp.commute_out_mins,
	sp.break_frequency_mins, sp.break_length_mins, sp.continuous_work_mins,
	sp.break_after_continuous_mins, sp.created_at, sp.updated_at, sp.deleted_at
`

func scanShiftPattern(row pgx.Row) (roster.ShiftPattern, error) {
	var p roster.ShiftPattern
	err := row.Scan(
		&p.ID,
		&p.ProjectID,
		&p.Name,
		&p.StartTime,
		&p.EndTime,
		&p.DutyType,
		&p.IsNight,
		&p.Fatigue.Workload,
		&p.Fatigue.Attention,
		&p.Fatigue.CommuteInMinutes,
		&p.Fatigue.CommuteOutMinutes,
		&p.Fatigue.BreakFrequencyMins,
		&p.Fatigue.BreakLengthMins,
		&p.Fatigue.ContinuousWorkMins,
		&p.Fatigue.BreakAfterContinuous,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return roster.ShiftPattern{}, roster.ErrShiftPatternNotFound
	}
	if err != nil {
		return roster.ShiftPattern{}, err
	}
	return p, nil
}

// Create implements roster.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) Create(ctx context.Context, pattern roster.ShiftPattern, orgID string) (roster.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_patterns (
			org_id, project_id, name, start_mins, end_mins, duty_type, is_night,
			workload, attention, commute_in_mins, commute_out_mins,
			break_frequency_mins, break_length_mins, continuous_work_mins,
			break_after_continuous_mins
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		orgID,
		pattern.ProjectID,
		pattern.Name,
		pattern.StartTime,
		pattern.EndTime,
		pattern.DutyType,
		pattern.IsNight,
		pattern.Fatigue.Workload,
		pattern.Fatigue.Attention,
		pattern.Fatigue.CommuteInMinutes,
		pattern.Fatigue.CommuteOutMinutes,
		pattern.Fatigue.BreakFrequencyMins,
		pattern.Fatigue.BreakLengthMins,
		pattern.Fatigue.ContinuousWorkMins,
		pattern.Fatigue.BreakAfterContinuous,
	).Scan(&pattern.ID, &pattern.CreatedAt, &pattern.UpdatedAt)
	if err != nil {
		return roster.ShiftPattern{}, fmt.Errorf("failed to create shift pattern: %w", err)
	}

	if err := r.replaceWeekdayTimes(ctx, pattern.ID, pattern.WeekdayTimes); err != nil {
		return roster.ShiftPattern{}, err
	}
	return pattern, nil
}

// replaceWeekdayTimes rewrites the per-weekday schedule rows for a pattern.
// Callers needing atomicity wrap the operation in WithTransaction.
func (r *shiftPatternRepositoryImpl) replaceWeekdayTimes(ctx context.Context, patternID string, times map[time.Weekday]roster.DayTimes) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM shift_pattern_days WHERE shift_pattern_id = $1`, patternID); err != nil {
		return fmt.Errorf("failed to clear weekday times: %w", err)
	}

	for weekday, dt := range times {
		_, err := q.Exec(ctx, `
			INSERT INTO shift_pattern_days (shift_pattern_id, weekday, start_mins, end_mins)
			VALUES ($1, $2, $3, $4)
		`, patternID, int(weekday), dt.StartTime, dt.EndTime)
		if err != nil {
			return fmt.Errorf("failed to insert weekday time: %w", err)
		}
	}
	return nil
}

func (r *shiftPatternRepositoryImpl) loadWeekdayTimes(ctx context.Context, patternIDs []string) (map[string]map[time.Weekday]roster.DayTimes, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT shift_pattern_id, weekday, start_mins, end_mins
		FROM shift_pattern_days
		WHERE shift_pattern_id = ANY($1)
		ORDER BY shift_pattern_id, weekday
	`, patternIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekday times: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[time.Weekday]roster.DayTimes)
	for rows.Next() {
		var patternID string
		var weekday int
		var dt roster.DayTimes
		if err := rows.Scan(&patternID, &weekday, &dt.StartTime, &dt.EndTime); err != nil {
			return nil, err
		}
		if out[patternID] == nil {
			out[patternID] = make(map[time.Weekday]roster.DayTimes)
		}
		out[patternID][time.Weekday(weekday)] = dt
	}
	return out, rows.Err()
}

func (r *shiftPatternRepositoryImpl) attachWeekdayTimes(ctx context.Context, patterns []roster.ShiftPattern) error {
	if len(patterns) == 0 {
		return nil
	}
	ids := make([]string, 0, len(patterns))
	for _, p := range patterns {
		ids = append(ids, p.ID)
	}
	byPattern, err := r.loadWeekdayTimes(ctx, ids)
	if err != nil {
		return err
	}
	for i := range patterns {
		patterns[i].WeekdayTimes = byPattern[patterns[i].ID]
	}
	return nil
}

// GetByID implements roster.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) GetByID(ctx context.Context, id string, orgID string) (roster.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftPatternColumns + `
		FROM shift_patterns sp
		WHERE sp.id = $1 AND sp.org_id = $2 AND sp.deleted_at IS NULL
	`
	p, err := scanShiftPattern(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		return roster.ShiftPattern{}, err
	}

	byPattern, err := r.loadWeekdayTimes(ctx, []string{p.ID})
	if err != nil {
		return roster.ShiftPattern{}, err
	}
	p.WeekdayTimes = byPattern[p.ID]
	return p, nil
}

// GetByProjectID implements roster.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) GetByProjectID(ctx context.Context, projectID, orgID string) ([]roster.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftPatternColumns + `
		FROM shift_patterns sp
		WHERE sp.project_id = $1 AND sp.org_id = $2 AND sp.deleted_at IS NULL
		ORDER BY sp.name
	`
	rows, err := q.Query(ctx, query, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift patterns: %w", err)
	}
	defer rows.Close()

	var patterns []roster.ShiftPattern
	for rows.Next() {
		p, err := scanShiftPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachWeekdayTimes(ctx, patterns); err != nil {
		return nil, err
	}
	return patterns, nil
}

// List implements roster.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) List(ctx context.Context, orgID string, filter roster.ShiftPatternFilter) ([]roster.ShiftPattern, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "sp.org_id = $1 AND sp.deleted_at IS NULL"
	args := []interface{}{orgID}
	argIdx := 2

	if filter.Name != nil && *filter.Name != "" {
		baseWhere += fmt.Sprintf(" AND sp.name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}
	if filter.DutyType != nil && *filter.DutyType != "" {
		baseWhere += fmt.Sprintf(" AND sp.duty_type = $%d", argIdx)
		args = append(args, *filter.DutyType)
		argIdx++
	}
	if filter.ProjectID != nil && *filter.ProjectID != "" {
		baseWhere += fmt.Sprintf(" AND sp.project_id = $%d", argIdx)
		args = append(args, *filter.ProjectID)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM shift_patterns sp WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift patterns: %w", err)
	}

	orderByField := "sp.name"
	switch filter.SortBy {
	case "duty_type":
		orderByField = "sp.duty_type"
	case "created_at":
		orderByField = "sp.created_at"
	}
	sortOrder := "ASC"
	if strings.ToLower(filter.SortOrder) == "desc" {
		sortOrder = "DESC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM shift_patterns sp
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, shiftPatternColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query shift patterns: %w", err)
	}
	defer rows.Close()

	var patterns []roster.ShiftPattern
	for rows.Next() {
		p, err := scanShiftPattern(rows)
		if err != nil {
			return nil, 0, err
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachWeekdayTimes(ctx, patterns); err != nil {
		return nil, 0, err
	}
	return patterns, total, nil
}

// Update implements roster.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) Update(ctx context.Context, req roster.UpdateShiftPatternRequest, orgID string) (roster.ShiftPattern, error) {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	appendUpdate := func(col string, val interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if req.Name != nil {
		appendUpdate("name", *req.Name)
	}
	if req.StartTime != nil {
		start, err := clock.Parse(*req.StartTime)
		if err != nil {
			return roster.ShiftPattern{}, err
		}
		appendUpdate("start_mins", start)
	}
	if req.EndTime != nil {
		end, err := clock.Parse(*req.EndTime)
		if err != nil {
			return roster.ShiftPattern{}, err
		}
		appendUpdate("end_mins", end)
	}
	if req.DutyType != nil {
		appendUpdate("duty_type", *req.DutyType)
	}
	if req.Fatigue != nil {
		if req.Fatigue.Workload != nil {
			appendUpdate("workload", *req.Fatigue.Workload)
		}
		if req.Fatigue.Attention != nil {
			appendUpdate("attention", *req.Fatigue.Attention)
		}
		if req.Fatigue.CommuteInMinutes != nil {
			appendUpdate("commute_in_mins", *req.Fatigue.CommuteInMinutes)
		}
		if req.Fatigue.CommuteOutMinutes != nil {
			appendUpdate("commute_out_mins", *req.Fatigue.CommuteOutMinutes)
		}
		if req.Fatigue.BreakFrequencyMins != nil {
			appendUpdate("break_frequency_mins", *req.Fatigue.BreakFrequencyMins)
		}
		if req.Fatigue.BreakLengthMins != nil {
			appendUpdate("break_length_mins", *req.Fatigue.BreakLengthMins)
		}
		if req.Fatigue.ContinuousWorkMins != nil {
			appendUpdate("continuous_work_mins", *req.Fatigue.ContinuousWorkMins)
		}
		if req.Fatigue.BreakAfterContinuous != nil {
			appendUpdate("break_after_continuous_mins", *req.Fatigue.BreakAfterContinuous)
		}
	}

	if len(updates) == 0 && req.WeekdayTimes == nil {
		return roster.ShiftPattern{}, fmt.Errorf("no updatable fields provided for shift pattern update")
	}

	if len(updates) > 0 {
		appendUpdate("updated_at", time.Now())

		sql := "UPDATE shift_patterns SET " + strings.Join(updates, ", ") +
			fmt.Sprintf(" WHERE id = $%d AND org_id = $%d AND deleted_at IS NULL RETURNING id", argIdx, argIdx+1)
		args = append(args, req.ID, orgID)

		var updatedID string
		if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return roster.ShiftPattern{}, roster.ErrShiftPatternNotFound
			}
			return roster.ShiftPattern{}, fmt.Errorf("failed to update shift pattern: %w", err)
		}
	}

	if req.WeekdayTimes != nil {
		weekdayTimes := make(map[time.Weekday]roster.DayTimes, len(req.WeekdayTimes))
		for key, dt := range req.WeekdayTimes {
			weekday, ok := roster.WeekdayFromKey(key)
			if !ok {
				return roster.ShiftPattern{}, fmt.Errorf("unknown weekday %q", key)
			}
			start, err := clock.Parse(dt.StartTime)
			if err != nil {
				return roster.ShiftPattern{}, err
			}
			end, err := clock.Parse(dt.EndTime)
			if err != nil {
				return roster.ShiftPattern{}, err
			}
			weekdayTimes[weekday] = roster.DayTimes{StartTime: start, EndTime: end}
		}
		if err := r.replaceWeekdayTimes(ctx, req.ID, weekdayTimes); err != nil {
			return roster.ShiftPattern{}, err
		}
	}

	return r.GetByID(ctx, req.ID, orgID)
}

// SoftDelete implements roster.ShiftPatternRepository.
func (r *shiftPatternRepositoryImpl) SoftDelete(ctx context.Context, id, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_patterns
		SET deleted_at = NOW()
		WHERE id = $1 AND org_id = $2 AND deleted_at IS NULL
	`
	tag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to soft delete shift pattern: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return roster.ErrShiftPatternNotFound
	}
	return nil
}
