package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/alert"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/dashboard"
	"github.com/railsafe/roster-backend-go/internal/domain/employee"
	"github.com/railsafe/roster-backend-go/internal/domain/project"
	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	compliance   *compliancesvc.Service
	projectRepo  project.ProjectRepository
	employeeRepo employee.EmployeeRepository
	alertRepo    alert.AlertRepository
}

func NewDashboardService(
	complianceService *compliancesvc.Service,
	projectRepo project.ProjectRepository,
	employeeRepo employee.EmployeeRepository,
	alertRepo alert.AlertRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		compliance:   complianceService,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
		alertRepo:    alertRepo,
	}
}

func (s *DashboardServiceImpl) orgIDFromContext(ctx context.Context) (string, error) {
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

// GetDashboard returns combined dashboard data using parallel goroutines:
// project evaluations, the active head count, and alert counts each run
// as their own unit of work.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	orgID, err := s.orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var (
		projectSummary dashboard.ProjectSummaryResponse
		personStatuses map[string]compliance.Status
		totalActive    int64
		alertSummary   dashboard.AlertSummaryResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Project summary + per-person statuses from the same evaluations
	g.Go(func() error {
		projects, err := s.projectRepo.GetByOrgID(gCtx, orgID)
		if err != nil {
			return err
		}

		// The worst status across projects wins for each person.
		personStatuses = make(map[string]compliance.Status)
		projectSummary.TotalProjects = int64(len(projects))
		for _, p := range projects {
			eval, err := s.compliance.RecomputeProject(gCtx, p.ID, orgID)
			if err != nil {
				return err
			}
			switch {
			case eval.ErrorCount > 0:
				projectSummary.WithBreaches++
			case eval.WarningCount > 0:
				projectSummary.WithWarnings++
			default:
				projectSummary.CompliantProjects++
			}
			for employeeID, status := range eval.PerEmployee {
				if statusRank(status) > statusRank(personStatuses[employeeID]) {
					personStatuses[employeeID] = status
				}
			}
		}
		projectSummary.UpdatedAt = time.Now().Format(time.RFC3339)
		return nil
	})

	// 2. Active head count
	g.Go(func() error {
		employees, err := s.employeeRepo.GetActiveByOrgID(gCtx, orgID)
		if err != nil {
			return err
		}
		totalActive = int64(len(employees))
		return nil
	})

	// 3. Open alert counts by kind
	g.Go(func() error {
		byKind, err := s.alertRepo.CountUnreadByKind(gCtx, orgID)
		if err != nil {
			return err
		}
		alertSummary.ByKind = byKind
		for _, count := range byKind {
			alertSummary.TotalUnread += count
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	workforce := dashboard.WorkforceStatusResponse{TotalActive: totalActive}
	for _, status := range personStatuses {
		switch status {
		case compliance.StatusRed:
			workforce.Red++
		case compliance.StatusAmber:
			workforce.Amber++
		}
	}
	// People with no evaluated occurrences count as green.
	workforce.Green = workforce.TotalActive - workforce.Amber - workforce.Red
	if workforce.Green < 0 {
		workforce.Green = 0
	}

	return &dashboard.DashboardResponse{
		ProjectSummary:  projectSummary,
		WorkforceStatus: workforce,
		AlertSummary:    alertSummary,
	}, nil
}

func statusRank(s compliance.Status) int {
	switch s {
	case compliance.StatusRed:
		return 2
	case compliance.StatusAmber:
		return 1
	default:
		return 0
	}
}
