package project

import "context"

type ProjectRepository interface {
	GetByID(ctx context.Context, id, orgID string) (Project, error)
	GetByOrgID(ctx context.Context, orgID string) ([]Project, error)
	// GetAllActive spans every tenant; only the nightly recompute uses it.
	GetAllActive(ctx context.Context) ([]Project, error)
	Create(ctx context.Context, newProject Project) (Project, error)
	ExistsByCode(ctx context.Context, code, orgID string) (bool, error)
	Update(ctx context.Context, id, orgID string, req UpdateProjectRequest) error
	Delete(ctx context.Context, id, orgID string) error
}
