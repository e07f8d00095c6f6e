package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railsafe/roster-backend-go/internal/domain/project"
)

type stubProjectRepo struct {
	getAllActiveCalls int
	getAllActiveErr   error
}

func (s *stubProjectRepo) GetByID(ctx context.Context, id, orgID string) (project.Project, error) {
	return project.Project{}, nil
}

func (s *stubProjectRepo) GetByOrgID(ctx context.Context, orgID string) ([]project.Project, error) {
	return nil, nil
}

func (s *stubProjectRepo) GetAllActive(ctx context.Context) ([]project.Project, error) {
	s.getAllActiveCalls++
	return nil, s.getAllActiveErr
}

func (s *stubProjectRepo) Create(ctx context.Context, newProject project.Project) (project.Project, error) {
	return project.Project{}, nil
}

func (s *stubProjectRepo) ExistsByCode(ctx context.Context, code, orgID string) (bool, error) {
	return false, nil
}

func (s *stubProjectRepo) Update(ctx context.Context, id, orgID string, req project.UpdateProjectRequest) error {
	return nil
}

func (s *stubProjectRepo) Delete(ctx context.Context, id, orgID string) error {
	return nil
}

func TestRecomputeAllProjects_OncePerDay(t *testing.T) {
	repo := &stubProjectRepo{}
	jobs := NewComplianceJobs(repo, nil)

	clock := time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC)
	jobs.now = func() time.Time { return clock }

	// The first tick of the day recomputes no matter which hour it
	// lands in.
	require.NoError(t, jobs.RecomputeAllProjects(context.Background()))
	assert.Equal(t, 1, repo.getAllActiveCalls)

	// Later ticks on the same day are no-ops.
	clock = clock.Add(1 * time.Hour)
	require.NoError(t, jobs.RecomputeAllProjects(context.Background()))
	clock = clock.Add(6 * time.Hour)
	require.NoError(t, jobs.RecomputeAllProjects(context.Background()))
	assert.Equal(t, 1, repo.getAllActiveCalls)

	// The first tick after midnight recomputes again, even when it
	// arrives well past the top of the day.
	clock = time.Date(2025, 3, 11, 3, 40, 0, 0, time.UTC)
	require.NoError(t, jobs.RecomputeAllProjects(context.Background()))
	assert.Equal(t, 2, repo.getAllActiveCalls)
}

func TestRecomputeAllProjects_FailedListDoesNotMarkDayDone(t *testing.T) {
	repo := &stubProjectRepo{getAllActiveErr: errors.New("db down")}
	jobs := NewComplianceJobs(repo, nil)

	clock := time.Date(2025, 3, 10, 0, 15, 0, 0, time.UTC)
	jobs.now = func() time.Time { return clock }

	require.Error(t, jobs.RecomputeAllProjects(context.Background()))
	require.Equal(t, 1, repo.getAllActiveCalls)

	// Only a completed run marks the day done, so the next tick
	// retries instead of waiting for tomorrow.
	repo.getAllActiveErr = nil
	clock = clock.Add(1 * time.Hour)
	require.NoError(t, jobs.RecomputeAllProjects(context.Background()))
	assert.Equal(t, 2, repo.getAllActiveCalls)
}
