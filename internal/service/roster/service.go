package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/employee"
	"github.com/railsafe/roster-backend-go/internal/domain/project"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
	"github.com/railsafe/roster-backend-go/internal/pkg/validator"
)

type service struct {
	patternRepo    roster.ShiftPatternRepository
	assignmentRepo roster.AssignmentRepository
	teamRepo       roster.TeamRepository
	projectRepo    project.ProjectRepository
	employeeRepo   employee.EmployeeRepository
}

func NewRosterService(
	patternRepo roster.ShiftPatternRepository,
	assignmentRepo roster.AssignmentRepository,
	teamRepo roster.TeamRepository,
	projectRepo project.ProjectRepository,
	employeeRepo employee.EmployeeRepository,
) roster.RosterService {
	return &service{
		patternRepo:    patternRepo,
		assignmentRepo: assignmentRepo,
		teamRepo:       teamRepo,
		projectRepo:    projectRepo,
		employeeRepo:   employeeRepo,
	}
}

func orgIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", fmt.Errorf("org_id claim is missing or invalid")
	}
	return orgID, nil
}

// CreateShiftPattern implements roster.RosterService.
func (s *service) CreateShiftPattern(ctx context.Context, req roster.CreateShiftPatternRequest) (roster.ShiftPatternResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.ShiftPatternResponse{}, err
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return roster.ShiftPatternResponse{}, err
	}

	// Patterns hang off a project; reject dangling references up front.
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID, orgID); err != nil {
		return roster.ShiftPatternResponse{}, err
	}

	start, _ := clock.Parse(req.StartTime)
	end, _ := clock.Parse(req.EndTime)

	pattern := roster.ShiftPattern{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		StartTime: start,
		EndTime:   end,
		DutyType:  roster.DutyType(req.DutyType),
		IsNight:   clock.IsNightClock(start, end),
		Fatigue:   fatigueFromRequest(req.Fatigue),
	}
	if len(req.WeekdayTimes) > 0 {
		pattern.WeekdayTimes = make(map[time.Weekday]roster.DayTimes, len(req.WeekdayTimes))
		for key, dt := range req.WeekdayTimes {
			weekday, ok := roster.WeekdayFromKey(key)
			if !ok {
				return roster.ShiftPatternResponse{}, roster.ErrInvalidRequestData
			}
			dayStart, _ := clock.Parse(dt.StartTime)
			dayEnd, _ := clock.Parse(dt.EndTime)
			pattern.WeekdayTimes[weekday] = roster.DayTimes{StartTime: dayStart, EndTime: dayEnd}
		}
	}

	created, err := s.patternRepo.Create(ctx, pattern, orgID)
	if err != nil {
		return roster.ShiftPatternResponse{}, err
	}
	return toShiftPatternResponse(created), nil
}

// GetShiftPattern implements roster.RosterService.
func (s *service) GetShiftPattern(ctx context.Context, id string) (roster.ShiftPatternResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return roster.ShiftPatternResponse{}, err
	}

	pattern, err := s.patternRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return roster.ShiftPatternResponse{}, err
	}
	return toShiftPatternResponse(pattern), nil
}

// ListShiftPatterns implements roster.RosterService.
func (s *service) ListShiftPatterns(ctx context.Context, filter roster.ShiftPatternFilter) (roster.ListShiftPatternResponse, error) {
	if err := filter.Validate(); err != nil {
		return roster.ListShiftPatternResponse{}, err
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return roster.ListShiftPatternResponse{}, err
	}

	patterns, total, err := s.patternRepo.List(ctx, orgID, filter)
	if err != nil {
		return roster.ListShiftPatternResponse{}, fmt.Errorf("failed to list shift patterns: %w", err)
	}

	responses := make([]roster.ShiftPatternResponse, 0, len(patterns))
	for _, p := range patterns {
		responses = append(responses, toShiftPatternResponse(p))
	}
	return roster.ListShiftPatternResponse{
		TotalCount:    total,
		Page:          filter.Page,
		Limit:         filter.Limit,
		ShiftPatterns: responses,
	}, nil
}

// UpdateShiftPattern implements roster.RosterService.
func (s *service) UpdateShiftPattern(ctx context.Context, req roster.UpdateShiftPatternRequest) (roster.ShiftPatternResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.ShiftPatternResponse{}, err
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return roster.ShiftPatternResponse{}, err
	}

	updated, err := s.patternRepo.Update(ctx, req, orgID)
	if err != nil {
		return roster.ShiftPatternResponse{}, err
	}
	return toShiftPatternResponse(updated), nil
}

// DeleteShiftPattern implements roster.RosterService. Deletion is refused
// while assignments still reference the pattern.
func (s *service) DeleteShiftPattern(ctx context.Context, id string) error {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}

	pattern, err := s.patternRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return err
	}
	assignments, err := s.assignmentRepo.GetByProjectID(ctx, pattern.ProjectID, orgID)
	if err != nil {
		return fmt.Errorf("failed to check pattern usage: %w", err)
	}
	for _, a := range assignments {
		if a.PatternID == id {
			return roster.ErrShiftPatternInUse
		}
	}

	return s.patternRepo.SoftDelete(ctx, id, orgID)
}

// CreateAssignment implements roster.RosterService.
func (s *service) CreateAssignment(ctx context.Context, req roster.CreateAssignmentRequest) ([]roster.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.patternRepo.GetByID(ctx, req.PatternID, orgID); err != nil {
		return nil, err
	}

	assignee := roster.Assignee{Type: roster.AssigneeType(req.AssigneeType)}
	switch assignee.Type {
	case roster.AssigneeIndividual:
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, orgID); err != nil {
			return nil, err
		}
		assignee.EmployeeID = req.EmployeeID
	case roster.AssigneeTeam:
		members, err := s.teamRepo.MemberIDs(ctx, req.TeamID, orgID)
		if err != nil {
			return nil, err
		}
		if len(members) == 0 {
			return nil, roster.ErrTeamEmpty
		}
		assignee.TeamID = req.TeamID
	default:
		return nil, roster.ErrUnknownAssigneeType
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate := startDate
	if req.EndDate != nil {
		endDate, _ = validator.IsValidDate(*req.EndDate)
	}
	if endDate.Before(startDate) {
		return nil, roster.ErrAssignmentDateOrder
	}

	assignment := roster.Assignment{
		ProjectID:        req.ProjectID,
		PatternID:        req.PatternID,
		Assignee:         assignee,
		StartDate:        startDate,
		EndDate:          endDate,
		FatigueOverrides: overridesFromRequest(req.Fatigue),
	}
	if req.CustomStartTime != nil && req.CustomEndTime != nil {
		start, _ := clock.Parse(*req.CustomStartTime)
		end, _ := clock.Parse(*req.CustomEndTime)
		assignment.CustomStartTime = &start
		assignment.CustomEndTime = &end
	}

	created, err := s.assignmentRepo.Create(ctx, assignment, orgID)
	if err != nil {
		return nil, err
	}
	return []roster.AssignmentResponse{toAssignmentResponse(created)}, nil
}

// GetAssignment implements roster.RosterService.
func (s *service) GetAssignment(ctx context.Context, id string) (roster.AssignmentResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return roster.AssignmentResponse{}, err
	}

	a, err := s.assignmentRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return roster.AssignmentResponse{}, err
	}
	return toAssignmentResponse(a), nil
}

// ListAssignmentsByProject implements roster.RosterService.
func (s *service) ListAssignmentsByProject(ctx context.Context, projectID string) ([]roster.AssignmentResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetByProjectID(ctx, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return toAssignmentResponses(assignments), nil
}

// ListAssignmentsByEmployee implements roster.RosterService.
func (s *service) ListAssignmentsByEmployee(ctx context.Context, employeeID string) ([]roster.AssignmentResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetByEmployeeID(ctx, employeeID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return toAssignmentResponses(assignments), nil
}

// DeleteAssignment implements roster.RosterService.
func (s *service) DeleteAssignment(ctx context.Context, id string) error {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, id, orgID)
}

// CreateTeam implements roster.RosterService.
func (s *service) CreateTeam(ctx context.Context, req roster.CreateTeamRequest) (roster.TeamResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.TeamResponse{}, err
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return roster.TeamResponse{}, err
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID, orgID); err != nil {
		return roster.TeamResponse{}, err
	}
	for _, employeeID := range req.MemberIDs {
		if _, err := s.employeeRepo.GetByID(ctx, employeeID, orgID); err != nil {
			return roster.TeamResponse{}, err
		}
	}

	created, err := s.teamRepo.Create(ctx, roster.Team{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		MemberIDs: req.MemberIDs,
	}, orgID)
	if err != nil {
		return roster.TeamResponse{}, err
	}
	return toTeamResponse(created), nil
}

// GetTeam implements roster.RosterService.
func (s *service) GetTeam(ctx context.Context, id string) (roster.TeamResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return roster.TeamResponse{}, err
	}

	team, err := s.teamRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return roster.TeamResponse{}, err
	}
	return toTeamResponse(team), nil
}

// ListTeamsByProject implements roster.RosterService.
func (s *service) ListTeamsByProject(ctx context.Context, projectID string) ([]roster.TeamResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.GetByProjectID(ctx, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	responses := make([]roster.TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, toTeamResponse(t))
	}
	return responses, nil
}

// DeleteTeam implements roster.RosterService.
func (s *service) DeleteTeam(ctx context.Context, id string) error {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, id, orgID)
}

func fatigueFromRequest(req roster.FatigueParamsRequest) roster.FatigueParams {
	// Zero-valued fields fall back to the configured defaults at
	// expansion time.
	return roster.FatigueOverrides{
		Workload:             req.Workload,
		Attention:            req.Attention,
		CommuteInMinutes:     req.CommuteInMinutes,
		CommuteOutMinutes:    req.CommuteOutMinutes,
		BreakFrequencyMins:   req.BreakFrequencyMins,
		BreakLengthMins:      req.BreakLengthMins,
		ContinuousWorkMins:   req.ContinuousWorkMins,
		BreakAfterContinuous: req.BreakAfterContinuous,
	}.Resolve(roster.FatigueParams{})
}

func overridesFromRequest(req roster.FatigueParamsRequest) roster.FatigueOverrides {
	return roster.FatigueOverrides{
		Workload:             req.Workload,
		Attention:            req.Attention,
		CommuteInMinutes:     req.CommuteInMinutes,
		CommuteOutMinutes:    req.CommuteOutMinutes,
		BreakFrequencyMins:   req.BreakFrequencyMins,
		BreakLengthMins:      req.BreakLengthMins,
		ContinuousWorkMins:   req.ContinuousWorkMins,
		BreakAfterContinuous: req.BreakAfterContinuous,
	}
}

func intPtr(v int) *int { return &v }

func toShiftPatternResponse(p roster.ShiftPattern) roster.ShiftPatternResponse {
	resp := roster.ShiftPatternResponse{
		ID:        p.ID,
		ProjectID: p.ProjectID,
		Name:      p.Name,
		StartTime: p.StartTime.String(),
		EndTime:   p.EndTime.String(),
		DutyType:  string(p.DutyType),
		IsNight:   p.IsNight,
		Fatigue: roster.FatigueParamsRequest{
			Workload:             intPtr(p.Fatigue.Workload),
			Attention:            intPtr(p.Fatigue.Attention),
			CommuteInMinutes:     intPtr(p.Fatigue.CommuteInMinutes),
			CommuteOutMinutes:    intPtr(p.Fatigue.CommuteOutMinutes),
			BreakFrequencyMins:   intPtr(p.Fatigue.BreakFrequencyMins),
			BreakLengthMins:      intPtr(p.Fatigue.BreakLengthMins),
			ContinuousWorkMins:   intPtr(p.Fatigue.ContinuousWorkMins),
			BreakAfterContinuous: intPtr(p.Fatigue.BreakAfterContinuous),
		},
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if len(p.WeekdayTimes) > 0 {
		resp.WeekdayTimes = make(map[string]roster.DayTimesRequest, len(p.WeekdayTimes))
		for weekday, dt := range p.WeekdayTimes {
			resp.WeekdayTimes[roster.WeekdayKey(weekday)] = roster.DayTimesRequest{
				StartTime: dt.StartTime.String(),
				EndTime:   dt.EndTime.String(),
			}
		}
	}
	return resp
}

func toAssignmentResponse(a roster.Assignment) roster.AssignmentResponse {
	resp := roster.AssignmentResponse{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		PatternID:    a.PatternID,
		AssigneeType: string(a.Assignee.Type),
		EmployeeID:   a.Assignee.EmployeeID,
		TeamID:       a.Assignee.TeamID,
		StartDate:    a.StartDate.Format("2006-01-02"),
		EndDate:      a.EndDate.Format("2006-01-02"),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
	if a.CustomStartTime != nil {
		start := a.CustomStartTime.String()
		resp.CustomStartTime = &start
	}
	if a.CustomEndTime != nil {
		end := a.CustomEndTime.String()
		resp.CustomEndTime = &end
	}
	return resp
}

func toAssignmentResponses(assignments []roster.Assignment) []roster.AssignmentResponse {
	responses := make([]roster.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, toAssignmentResponse(a))
	}
	return responses
}

func toTeamResponse(t roster.Team) roster.TeamResponse {
	return roster.TeamResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Name:      t.Name,
		MemberIDs: t.MemberIDs,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}
