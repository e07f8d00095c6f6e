package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/handler/http/response"
)

type ComplianceHandler interface {
	EvaluatePerson(w http.ResponseWriter, r *http.Request)
	EvaluateProject(w http.ResponseWriter, r *http.Request)
	ViolationsForCell(w http.ResponseWriter, r *http.Request)
}

type complianceHandlerImpl struct {
	complianceService compliance.ComplianceService
}

func NewComplianceHandler(complianceService compliance.ComplianceService) ComplianceHandler {
	return &complianceHandlerImpl{
		complianceService: complianceService,
	}
}

// EvaluatePerson implements ComplianceHandler
func (h *complianceHandlerImpl) EvaluatePerson(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	eval, err := h.complianceService.EvaluatePerson(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, compliance.PersonEvaluationResponse{
		EmployeeID: eval.EmployeeID,
		Status:     string(eval.Status),
		TotalHours: eval.TotalHours,
		Violations: compliance.ToViolationResponses(eval.Violations),
	})
}

// EvaluateProject implements ComplianceHandler
func (h *complianceHandlerImpl) EvaluateProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if projectID == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	eval, err := h.complianceService.EvaluateProject(r.Context(), projectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	perEmployee := make(map[string]string, len(eval.PerEmployee))
	for employeeID, status := range eval.PerEmployee {
		perEmployee[employeeID] = string(status)
	}
	response.Success(w, compliance.ProjectEvaluationResponse{
		ProjectID:    eval.ProjectID,
		ErrorCount:   eval.ErrorCount,
		WarningCount: eval.WarningCount,
		IsCompliant:  eval.IsCompliant,
		PerEmployee:  perEmployee,
		Violations:   compliance.ToViolationResponses(eval.Violations),
	})
}

// ViolationsForCell implements ComplianceHandler
func (h *complianceHandlerImpl) ViolationsForCell(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	day, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	cell, err := h.complianceService.ViolationsForCell(r.Context(), employeeID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, compliance.CellViolationsResponse{
		Today: compliance.ToViolationResponses(cell.Today),
		Later: compliance.ToViolationResponses(cell.Later),
	})
}
