package fatigue

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/fatigue"
)

// OccurrenceSource supplies materialized occurrences; the compliance
// service implements it.
type OccurrenceSource interface {
	PersonOccurrences(ctx context.Context, employeeID, orgID string) ([]compliance.Occurrence, error)
	ProjectOccurrences(ctx context.Context, projectID, orgID string) ([]compliance.Occurrence, error)
}

type FatigueService interface {
	EvaluateEmployee(ctx context.Context, employeeID string) (fatigue.EvaluationResponse, error)
	EvaluateProject(ctx context.Context, projectID string) (fatigue.EvaluationResponse, error)
}

type fatigueServiceImpl struct {
	source OccurrenceSource
	window time.Duration
}

func NewFatigueService(source OccurrenceSource, cfg config.ComplianceConfig) FatigueService {
	return &fatigueServiceImpl{
		source: source,
		// An N-day window ending at a shift's start reaches back N-1 days.
		window: time.Duration(cfg.RollingWindowDays-1) * 24 * time.Hour,
	}
}

// EvaluateEmployee implements FatigueService.
func (s *fatigueServiceImpl) EvaluateEmployee(ctx context.Context, employeeID string) (fatigue.EvaluationResponse, error) {
	if employeeID == "" {
		return fatigue.EvaluationResponse{}, compliance.ErrEmployeeIDRequired
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return fatigue.EvaluationResponse{}, err
	}

	occs, err := s.source.PersonOccurrences(ctx, employeeID, orgID)
	if err != nil {
		return fatigue.EvaluationResponse{}, err
	}
	results, summary := ComputeResults(occs, s.window)
	return toEvaluationResponse(results, summary), nil
}

// EvaluateProject implements FatigueService.
func (s *fatigueServiceImpl) EvaluateProject(ctx context.Context, projectID string) (fatigue.EvaluationResponse, error) {
	if projectID == "" {
		return fatigue.EvaluationResponse{}, compliance.ErrProjectIDRequired
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return fatigue.EvaluationResponse{}, err
	}

	occs, err := s.source.ProjectOccurrences(ctx, projectID, orgID)
	if err != nil {
		return fatigue.EvaluationResponse{}, err
	}

	// Cumulative pressure is per person; group before scoring.
	perEmployee := make(map[string][]compliance.Occurrence)
	for _, occ := range occs {
		perEmployee[occ.EmployeeID] = append(perEmployee[occ.EmployeeID], occ)
	}

	var all []fatigue.Result
	for _, timeline := range perEmployee {
		sortOccurrences(timeline)
		results, _ := ComputeResults(timeline, s.window)
		all = append(all, results...)
	}

	var sum, max float64
	for _, r := range all {
		sum += r.RiskIndex
		if r.RiskIndex > max {
			max = r.RiskIndex
		}
	}
	summary := fatigue.Summary{MaxFRI: max, OverallRisk: fatigue.BandFor(max)}
	if len(all) > 0 {
		summary.AvgFRI = sum / float64(len(all))
	}
	return toEvaluationResponse(all, summary), nil
}

func sortOccurrences(occs []compliance.Occurrence) {
	sort.Slice(occs, func(i, j int) bool {
		return occs[i].StartDateTime.Before(occs[j].StartDateTime)
	})
}

func toEvaluationResponse(results []fatigue.Result, summary fatigue.Summary) fatigue.EvaluationResponse {
	resp := fatigue.EvaluationResponse{
		Results: make([]fatigue.ResultResponse, 0, len(results)),
		Summary: fatigue.SummaryResponse{
			MaxFRI:      summary.MaxFRI,
			AvgFRI:      summary.AvgFRI,
			OverallRisk: string(summary.OverallRisk),
		},
	}
	for _, r := range results {
		resp.Results = append(resp.Results, fatigue.ToResultResponse(r))
	}
	return resp
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
