package project

import "context"

type ProjectService interface {
	List(ctx context.Context) ([]ProjectResponse, error)
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) error
	Delete(ctx context.Context, id string) error
}
