package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/handler/http/response"
)

type RosterHandler interface {
	// Shift patterns
	CreateShiftPattern(w http.ResponseWriter, r *http.Request)
	GetShiftPattern(w http.ResponseWriter, r *http.Request)
	ListShiftPatterns(w http.ResponseWriter, r *http.Request)
	UpdateShiftPattern(w http.ResponseWriter, r *http.Request)
	DeleteShiftPattern(w http.ResponseWriter, r *http.Request)

	// Assignments
	CreateAssignment(w http.ResponseWriter, r *http.Request)
	GetAssignment(w http.ResponseWriter, r *http.Request)
	ListAssignmentsByProject(w http.ResponseWriter, r *http.Request)
	ListAssignmentsByEmployee(w http.ResponseWriter, r *http.Request)
	DeleteAssignment(w http.ResponseWriter, r *http.Request)

	// Teams
	CreateTeam(w http.ResponseWriter, r *http.Request)
	GetTeam(w http.ResponseWriter, r *http.Request)
	ListTeamsByProject(w http.ResponseWriter, r *http.Request)
	DeleteTeam(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	rosterService roster.RosterService
}

func NewRosterHandler(rosterService roster.RosterService) RosterHandler {
	return &rosterHandlerImpl{
		rosterService: rosterService,
	}
}

// CreateShiftPattern implements RosterHandler
func (h *rosterHandlerImpl) CreateShiftPattern(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateShiftPatternRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateShiftPattern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.CreateShiftPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Shift pattern created", "name", result.Name)
	response.Created(w, "Shift pattern created successfully", result)
}

// GetShiftPattern implements RosterHandler
func (h *rosterHandlerImpl) GetShiftPattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift pattern ID is required", nil)
		return
	}

	result, err := h.rosterService.GetShiftPattern(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListShiftPatterns implements RosterHandler
func (h *rosterHandlerImpl) ListShiftPatterns(w http.ResponseWriter, r *http.Request) {
	filter := roster.ShiftPatternFilter{
		Page:      intQueryParam(r, "page", 1),
		Limit:     intQueryParam(r, "limit", 20),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}
	if name := r.URL.Query().Get("name"); name != "" {
		filter.Name = &name
	}
	if dutyType := r.URL.Query().Get("duty_type"); dutyType != "" {
		filter.DutyType = &dutyType
	}
	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		filter.ProjectID = &projectID
	}

	result, err := h.rosterService.ListShiftPatterns(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}
	response.SuccessWithMeta(w, result.ShiftPatterns, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

// UpdateShiftPattern implements RosterHandler
func (h *rosterHandlerImpl) UpdateShiftPattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift pattern ID is required", nil)
		return
	}

	var req roster.UpdateShiftPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateShiftPattern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.UpdateShiftPattern(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift pattern updated successfully", result)
}

// DeleteShiftPattern implements RosterHandler
func (h *rosterHandlerImpl) DeleteShiftPattern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Shift pattern ID is required", nil)
		return
	}

	if err := h.rosterService.DeleteShiftPattern(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift pattern deleted successfully", nil)
}

// CreateAssignment implements RosterHandler
func (h *rosterHandlerImpl) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateAssignmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAssignment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.rosterService.CreateAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assignment created successfully", results)
}

// GetAssignment implements RosterHandler
func (h *rosterHandlerImpl) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	result, err := h.rosterService.GetAssignment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAssignmentsByProject implements RosterHandler
func (h *rosterHandlerImpl) ListAssignmentsByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if projectID == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	results, err := h.rosterService.ListAssignmentsByProject(r.Context(), projectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListAssignmentsByEmployee implements RosterHandler
func (h *rosterHandlerImpl) ListAssignmentsByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	results, err := h.rosterService.ListAssignmentsByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// DeleteAssignment implements RosterHandler
func (h *rosterHandlerImpl) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.rosterService.DeleteAssignment(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment deleted successfully", nil)
}

// CreateTeam implements RosterHandler
func (h *rosterHandlerImpl) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTeam decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.CreateTeam(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Team created", "name", result.Name)
	response.Created(w, "Team created successfully", result)
}

// GetTeam implements RosterHandler
func (h *rosterHandlerImpl) GetTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Team ID is required", nil)
		return
	}

	result, err := h.rosterService.GetTeam(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTeamsByProject implements RosterHandler
func (h *rosterHandlerImpl) ListTeamsByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if projectID == "" {
		response.BadRequest(w, "Project ID is required", nil)
		return
	}

	results, err := h.rosterService.ListTeamsByProject(r.Context(), projectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// DeleteTeam implements RosterHandler
func (h *rosterHandlerImpl) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Team ID is required", nil)
		return
	}

	if err := h.rosterService.DeleteTeam(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Team deleted successfully", nil)
}

func intQueryParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return defaultVal
	}
	return parsed
}
