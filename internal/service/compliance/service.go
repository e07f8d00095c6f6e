package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/alert"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
)

type Service struct {
	patternRepo    roster.ShiftPatternRepository
	assignmentRepo roster.AssignmentRepository
	teamRepo       roster.TeamRepository
	alertService   alert.Service

	ruleCfg    config.ComplianceConfig
	fatigueCfg config.FatigueConfig
	evaluator  *Evaluator
	cache      *resultCache
}

func NewComplianceService(
	patternRepo roster.ShiftPatternRepository,
	assignmentRepo roster.AssignmentRepository,
	teamRepo roster.TeamRepository,
	alertService alert.Service,
	ruleCfg config.ComplianceConfig,
	fatigueCfg config.FatigueConfig,
) *Service {
	return &Service{
		patternRepo:    patternRepo,
		assignmentRepo: assignmentRepo,
		teamRepo:       teamRepo,
		alertService:   alertService,
		ruleCfg:        ruleCfg,
		fatigueCfg:     fatigueCfg,
		evaluator:      NewEvaluator(ruleCfg),
		cache:          newResultCache(),
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

// EvaluatePerson implements compliance.ComplianceService.
func (s *Service) EvaluatePerson(ctx context.Context, employeeID string) (compliance.PersonEvaluation, error) {
	if employeeID == "" {
		return compliance.PersonEvaluation{}, compliance.ErrEmployeeIDRequired
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return compliance.PersonEvaluation{}, err
	}

	occs, err := s.PersonOccurrences(ctx, employeeID, orgID)
	if err != nil {
		return compliance.PersonEvaluation{}, err
	}

	violations := s.evaluateTimeline(occs)
	eval := compliance.PersonEvaluation{
		EmployeeID: employeeID,
		Status:     StatusFor(violations),
		Violations: violations,
	}
	for _, occ := range occs {
		eval.TotalHours += occ.DurationHours
	}

	s.raiseAlerts(ctx, orgID, violations)
	return eval, nil
}

// EvaluateProject implements compliance.ComplianceService.
func (s *Service) EvaluateProject(ctx context.Context, projectID string) (compliance.ProjectEvaluation, error) {
	if projectID == "" {
		return compliance.ProjectEvaluation{}, compliance.ErrProjectIDRequired
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return compliance.ProjectEvaluation{}, err
	}
	return s.RecomputeProject(ctx, projectID, orgID)
}

// RecomputeProject is the tenant-explicit evaluation path. The nightly
// recompute job calls it directly; request handlers go through
// EvaluateProject, which resolves the tenant from the token.
func (s *Service) RecomputeProject(ctx context.Context, projectID, orgID string) (compliance.ProjectEvaluation, error) {
	occs, err := s.ProjectOccurrences(ctx, projectID, orgID)
	if err != nil {
		return compliance.ProjectEvaluation{}, err
	}

	perEmployee := make(map[string][]compliance.Occurrence)
	for _, occ := range occs {
		perEmployee[occ.EmployeeID] = append(perEmployee[occ.EmployeeID], occ)
	}

	perEmployeeViolations := make(map[string][]compliance.Violation, len(perEmployee))
	for employeeID, timeline := range perEmployee {
		SortOccurrences(timeline)
		violations := s.evaluateTimeline(timeline)
		perEmployeeViolations[employeeID] = violations
		s.raiseAlerts(ctx, orgID, violations)
	}

	return ReduceProject(projectID, perEmployeeViolations), nil
}

// ViolationsForCell implements compliance.ComplianceService.
func (s *Service) ViolationsForCell(ctx context.Context, employeeID string, day time.Time) (compliance.CellViolations, error) {
	if employeeID == "" {
		return compliance.CellViolations{}, compliance.ErrEmployeeIDRequired
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return compliance.CellViolations{}, err
	}

	occs, err := s.PersonOccurrences(ctx, employeeID, orgID)
	if err != nil {
		return compliance.CellViolations{}, err
	}
	return CellFor(s.evaluateTimeline(occs), day), nil
}

// evaluateTimeline runs the rule set over one sorted timeline, memoized by
// input content. A change to any early occurrence can alter every later
// window, so re-evaluation always covers the whole timeline rather than
// patching prior results.
func (s *Service) evaluateTimeline(occs []compliance.Occurrence) []compliance.Violation {
	key, ok := s.cache.keyFor(occs, s.ruleCfg)
	if !ok {
		return s.evaluator.Evaluate(occs)
	}
	if cached, hit := s.cache.get(key); hit {
		return cached
	}
	violations := s.evaluator.Evaluate(occs)
	s.cache.put(key, violations)
	return violations
}

// PersonOccurrences loads and expands everything that can put this person
// on shift: their individual assignments plus assignments of any team they
// belong to.
func (s *Service) PersonOccurrences(ctx context.Context, employeeID, orgID string) ([]compliance.Occurrence, error) {
	assignments, err := s.assignmentRepo.GetByEmployeeID(ctx, employeeID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}

	patterns := make(map[string]roster.ShiftPattern)
	members := make(map[string][]string)
	for _, a := range assignments {
		if _, ok := patterns[a.PatternID]; !ok {
			p, err := s.patternRepo.GetByID(ctx, a.PatternID, orgID)
			if err != nil {
				// Dangling pattern references are skipped during expansion.
				slog.Warn("assignment references unknown pattern", "assignment_id", a.ID, "pattern_id", a.PatternID)
				continue
			}
			patterns[a.PatternID] = p
		}
		if a.Assignee.Type == roster.AssigneeTeam {
			if _, ok := members[a.Assignee.TeamID]; !ok {
				ids, err := s.teamRepo.MemberIDs(ctx, a.Assignee.TeamID, orgID)
				if err != nil {
					slog.Warn("assignment references unknown team", "assignment_id", a.ID, "team_id", a.Assignee.TeamID)
					continue
				}
				members[a.Assignee.TeamID] = ids
			}
		}
	}

	all := ExpandOccurrences(assignments, patterns, members, s.fatigueCfg)
	occs := all[:0:0]
	for _, occ := range all {
		if occ.EmployeeID == employeeID {
			occs = append(occs, occ)
		}
	}
	SortOccurrences(occs)
	return occs, nil
}

// ProjectOccurrences expands every assignment in a project into the flat
// per-person occurrence list.
func (s *Service) ProjectOccurrences(ctx context.Context, projectID, orgID string) ([]compliance.Occurrence, error) {
	assignments, err := s.assignmentRepo.GetByProjectID(ctx, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments: %w", err)
	}
	patterns, err := s.patternCatalog(ctx, projectID, orgID)
	if err != nil {
		return nil, err
	}
	members, err := s.teamRoster(ctx, projectID, orgID)
	if err != nil {
		return nil, err
	}
	return ExpandOccurrences(assignments, patterns, members, s.fatigueCfg), nil
}

func (s *Service) patternCatalog(ctx context.Context, projectID, orgID string) (map[string]roster.ShiftPattern, error) {
	list, err := s.patternRepo.GetByProjectID(ctx, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift patterns: %w", err)
	}
	patterns := make(map[string]roster.ShiftPattern, len(list))
	for _, p := range list {
		patterns[p.ID] = p
	}
	return patterns, nil
}

func (s *Service) teamRoster(ctx context.Context, projectID, orgID string) (map[string][]string, error) {
	teams, err := s.teamRepo.GetByProjectID(ctx, projectID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	members := make(map[string][]string, len(teams))
	for _, t := range teams {
		members[t.ID] = t.MemberIDs
	}
	return members, nil
}

// raiseAlerts forwards breach-tier violations to the alert service. Alert
// delivery must not slow evaluation down, so it runs detached.
func (s *Service) raiseAlerts(ctx context.Context, orgID string, violations []compliance.Violation) {
	if s.alertService == nil {
		return
	}
	for _, v := range violations {
		if v.Severity != compliance.SeverityBreach {
			continue
		}
		go s.alertService.NotifyBreach(context.WithoutCancel(ctx), orgID, v)
	}
}
