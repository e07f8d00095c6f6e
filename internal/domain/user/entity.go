package user

import "time"

type Role string

const (
	RoleOwner   Role = "owner"   // Organisation owner - full access
	RolePlanner Role = "planner" // Builds rosters, manages compliance
	RoleWorker  Role = "worker"  // Views own roster and fatigue data
	RolePending Role = "pending" // Still in onboarding
)

type User struct {
	ID              string
	OrgID           *string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	EmailVerified   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeID *string
}

// IsOwner checks if user is the organisation owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsPlanner checks if user is planner or owner
func (u *User) IsPlanner() bool {
	return u.Role == RolePlanner || u.Role == RoleOwner
}

// IsPending checks if user is still in onboarding
func (u *User) IsPending() bool {
	return u.Role == RolePending
}

// CanEditRoster checks if user can create and change assignments
func (u *User) CanEditRoster() bool {
	return u.IsPlanner()
}

// CanManageOrg checks if user can manage organisation settings
func (u *User) CanManageOrg() bool {
	return u.IsOwner()
}
