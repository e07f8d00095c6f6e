package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/alert"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/employee"
	"github.com/railsafe/roster-backend-go/internal/pkg/sse"
)

type service struct {
	alertRepo    alert.AlertRepository
	employeeRepo employee.EmployeeRepository
	hub          *sse.Hub
}

func NewAlertService(
	alertRepo alert.AlertRepository,
	employeeRepo employee.EmployeeRepository,
	hub *sse.Hub,
) alert.Service {
	return &service{
		alertRepo:    alertRepo,
		employeeRepo: employeeRepo,
		hub:          hub,
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

// NotifyBreach implements alert.Service. Duplicate breaches for the same
// (employee, kind, date) are dropped so re-evaluation never re-alerts.
func (s *service) NotifyBreach(ctx context.Context, orgID string, v compliance.Violation) {
	day := v.Date.Format("2006-01-02")

	exists, err := s.alertRepo.Exists(ctx, orgID, v.EmployeeID, string(v.Kind), day)
	if err != nil {
		slog.Error("failed to check alert existence", "employee_id", v.EmployeeID, "kind", v.Kind, "error", err)
		return
	}
	if exists {
		return
	}

	created, err := s.alertRepo.Create(ctx, alert.Alert{
		OrgID:      orgID,
		EmployeeID: v.EmployeeID,
		ProjectID:  v.ProjectID,
		Kind:       string(v.Kind),
		Severity:   v.Severity.String(),
		Date:       v.Date,
		Message:    v.Message,
	})
	if err != nil {
		slog.Error("failed to persist breach alert", "employee_id", v.EmployeeID, "kind", v.Kind, "error", err)
		return
	}

	s.publish(ctx, created)
}

// publish pushes the alert to the affected worker's open connections. The
// worker may have no linked user account; persistence alone is enough then.
func (s *service) publish(ctx context.Context, a alert.Alert) {
	emp, err := s.employeeRepo.GetByID(ctx, a.EmployeeID, a.OrgID)
	if err != nil {
		slog.Warn("alert raised for unknown employee", "employee_id", a.EmployeeID, "error", err)
		return
	}
	if emp.UserID == nil {
		return
	}
	s.hub.Publish(*emp.UserID, sse.Event{
		UserID: *emp.UserID,
		Event:  sse.EventComplianceAlert,
		Data:   alert.ToAlertResponse(a),
	})
}

// ListForEmployee implements alert.Service.
func (s *service) ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool) ([]alert.AlertResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.GetByEmployeeID(ctx, employeeID, orgID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return toResponses(alerts), nil
}

// ListForProject implements alert.Service.
func (s *service) ListForProject(ctx context.Context, projectID string, unreadOnly bool) ([]alert.AlertResponse, error) {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alertRepo.GetByProjectID(ctx, projectID, orgID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return toResponses(alerts), nil
}

// MarkRead implements alert.Service.
func (s *service) MarkRead(ctx context.Context, id string) error {
	orgID, err := orgIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.alertRepo.MarkRead(ctx, id, orgID)
}

func toResponses(alerts []alert.Alert) []alert.AlertResponse {
	responses := make([]alert.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, alert.ToAlertResponse(a))
	}
	return responses
}
