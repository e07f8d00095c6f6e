package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidPasswordLength   = errors.New("password must be at least 8 characters")
	ErrInvalidOAuthProvider    = errors.New("invalid oauth provider")
	ErrOAuthProviderIDExists   = errors.New("oauth provider id already registered")
	ErrEmailNotVerified        = errors.New("email not verified")
	ErrPendingRoleRequired     = errors.New("pending role required")
	ErrOwnerAccessRequired     = errors.New("owner access required")
	ErrPlannerAccessRequired   = errors.New("planner access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrOrgIDRequired           = errors.New("organisation ID is required")
)
