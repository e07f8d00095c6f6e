package response

import (
	"errors"
	"net/http"

	"github.com/railsafe/roster-backend-go/internal/domain/alert"
	"github.com/railsafe/roster-backend-go/internal/domain/auth"
	"github.com/railsafe/roster-backend-go/internal/domain/employee"
	"github.com/railsafe/roster-backend-go/internal/domain/org"
	"github.com/railsafe/roster-backend-go/internal/domain/project"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/domain/user"
	"github.com/railsafe/roster-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token cookie missing")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrOrgNotFound), errors.Is(err, org.ErrOrgNotFound):
		NotFound(w, "Organisation not found")
	case errors.Is(err, org.ErrOrgSlugExists):
		Conflict(w, "Organisation slug already taken")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrPlannerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		Forbidden(w, err.Error())

	// Project domain errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrProjectCodeExists):
		Conflict(w, "Project code already exists")
	case errors.Is(err, project.ErrProjectHasRoster):
		Conflict(w, err.Error())

	// Roster domain errors
	case errors.Is(err, roster.ErrShiftPatternNotFound):
		NotFound(w, "Shift pattern not found")
	case errors.Is(err, roster.ErrShiftPatternInUse):
		Conflict(w, err.Error())
	case errors.Is(err, roster.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, roster.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, roster.ErrAssignmentDateOrder),
		errors.Is(err, roster.ErrUnknownAssigneeType),
		errors.Is(err, roster.ErrTeamEmpty),
		errors.Is(err, roster.ErrInvalidDateFormat),
		errors.Is(err, roster.ErrInvalidTimeFormat),
		errors.Is(err, roster.ErrInvalidRequestData):
		BadRequest(w, err.Error(), nil)

	// Alert domain errors
	case errors.Is(err, alert.ErrAlertNotFound):
		NotFound(w, "Alert not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
