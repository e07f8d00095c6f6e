package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/alert"
	"github.com/railsafe/roster-backend-go/internal/handler/http/response"
)

type AlertHandler interface {
	ListForEmployee(w http.ResponseWriter, r *http.Request)
	ListForProject(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) AlertHandler {
	return &alertHandlerImpl{
		alertService: alertService,
	}
}

// ListForEmployee implements AlertHandler
func (h *alertHandlerImpl) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"

	results, err := h.alertService.ListForEmployee(r.Context(), employeeID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListForProject implements AlertHandler
func (h *alertHandlerImpl) ListForProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if projectID == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"

	results, err := h.alertService.ListForProject(r.Context(), projectID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// MarkRead implements AlertHandler
func (h *alertHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Alert ID is required", nil)
		return
	}

	if err := h.alertService.MarkRead(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Alert marked as read", nil)
}
