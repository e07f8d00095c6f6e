package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/railsafe/roster-backend-go/internal/handler/http/response"
	"github.com/railsafe/roster-backend-go/internal/service/fatigue"
)

type FatigueHandler interface {
	EvaluateEmployee(w http.ResponseWriter, r *http.Request)
	EvaluateProject(w http.ResponseWriter, r *http.Request)
}

type fatigueHandlerImpl struct {
	fatigueService fatigue.FatigueService
}

func NewFatigueHandler(fatigueService fatigue.FatigueService) FatigueHandler {
	return &fatigueHandlerImpl{
		fatigueService: fatigueService,
	}
}

// EvaluateEmployee implements FatigueHandler
func (h *fatigueHandlerImpl) EvaluateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.fatigueService.EvaluateEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EvaluateProject implements FatigueHandler
func (h *fatigueHandlerImpl) EvaluateProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if projectID == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	result, err := h.fatigueService.EvaluateProject(r.Context(), projectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
