package project

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/project"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/validator"
)

type service struct {
	projectRepo    project.ProjectRepository
	assignmentRepo roster.AssignmentRepository
}

func NewProjectService(
	projectRepo project.ProjectRepository,
	assignmentRepo roster.AssignmentRepository,
) project.ProjectService {
	return &service{
		projectRepo:    projectRepo,
		assignmentRepo: assignmentRepo,
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

// List implements project.ProjectService.
func (s *service) List(ctx context.Context) ([]project.ProjectResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.GetByOrgID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, project.ToProjectResponse(p))
	}
	return responses, nil
}

// Create implements project.ProjectService.
func (s *service) Create(ctx context.Context, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	exists, err := s.projectRepo.ExistsByCode(ctx, req.Code, orgID)
	if err != nil {
		return project.ProjectResponse{}, fmt.Errorf("failed to check project code: %w", err)
	}
	if exists {
		return project.ProjectResponse{}, project.ErrProjectCodeExists
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	newProject := project.Project{
		OrgID:     orgID,
		Name:      req.Name,
		Code:      req.Code,
		LineRef:   req.LineRef,
		Status:    project.StatusActive,
		StartDate: startDate,
	}
	if req.EndDate != nil {
		endDate, _ := validator.IsValidDate(*req.EndDate)
		newProject.EndDate = &endDate
	}

	created, err := s.projectRepo.Create(ctx, newProject)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.ToProjectResponse(created), nil
}

// GetByID implements project.ProjectService.
func (s *service) GetByID(ctx context.Context, id string) (project.ProjectResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return project.ProjectResponse{}, err
	}

	p, err := s.projectRepo.GetByID(ctx, id, orgID)
	if err != nil {
		return project.ProjectResponse{}, err
	}
	return project.ToProjectResponse(p), nil
}

// Update implements project.ProjectService.
func (s *service) Update(ctx context.Context, id string, req project.UpdateProjectRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.projectRepo.Update(ctx, id, orgID, req)
}

// Delete implements project.ProjectService. A project holding assignments
// cannot be removed; archive it instead.
func (s *service) Delete(ctx context.Context, id string) error {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}

	assignments, err := s.assignmentRepo.GetByProjectID(ctx, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to check project assignments: %w", err)
	}
	if len(assignments) > 0 {
		return project.ErrProjectHasRoster
	}

	return s.projectRepo.Delete(ctx, id, orgID)
}
