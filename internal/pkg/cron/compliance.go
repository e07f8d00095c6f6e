package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/project"
	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
)

type ComplianceJobs struct {
	projectRepo   project.ProjectRepository
	complianceSvc *compliancesvc.Service
	now           func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewComplianceJobs(projectRepo project.ProjectRepository, complianceSvc *compliancesvc.Service) *ComplianceJobs {
	return &ComplianceJobs{
		projectRepo:   projectRepo,
		complianceSvc: complianceSvc,
		now:           time.Now,
	}
}

func (j *ComplianceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_project_compliance", 1*time.Hour, j.RecomputeAllProjects)
}

// RecomputeAllProjects re-evaluates every active project so alerts fire
// for violations that arise purely from the passage of time, with no
// roster edit to trigger them. The job ticks hourly but recomputes at
// most once per UTC calendar day, keyed on the date of the last
// completed run. A tick can land in any hour, so gating on the clock
// instead would let a whole day go by without a recompute.
func (j *ComplianceJobs) RecomputeAllProjects(ctx context.Context) error {
	today := j.now().UTC().Truncate(24 * time.Hour)

	j.mu.Lock()
	if !j.lastRun.Before(today) {
		j.mu.Unlock()
		return nil
	}
	j.mu.Unlock()

	slog.Info("cron: starting daily compliance recompute")

	projects, err := j.projectRepo.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active projects: %w", err)
	}

	evaluated := 0
	breached := 0
	for _, p := range projects {
		eval, err := j.complianceSvc.RecomputeProject(ctx, p.ID, p.OrgID)
		if err != nil {
			slog.Error("cron: project recompute failed", "project_id", p.ID, "error", err)
			continue
		}
		evaluated++
		if eval.ErrorCount > 0 {
			breached++
		}
	}

	j.mu.Lock()
	j.lastRun = today
	j.mu.Unlock()

	slog.Info("cron: daily compliance recompute finished",
		"projects", len(projects), "evaluated", evaluated, "with_breaches", breached)
	return nil
}
