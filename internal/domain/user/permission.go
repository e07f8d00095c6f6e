package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Roster Management
	PermissionRosterViewOwn Permission = "roster.view_own"
	PermissionRosterViewAll Permission = "roster.view_all"
	PermissionRosterEdit    Permission = "roster.edit"
	PermissionPatternManage Permission = "pattern.manage"
	PermissionTeamManage    Permission = "team.manage"

	// Compliance and Fatigue
	PermissionComplianceViewOwn Permission = "compliance.view_own"
	PermissionComplianceViewAll Permission = "compliance.view_all"
	PermissionAlertsView        Permission = "alerts.view"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Project Management
	PermissionProjectView   Permission = "project.view"
	PermissionProjectManage Permission = "project.manage"

	// Reports
	PermissionReportsExport Permission = "reports.export"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionRosterViewOwn,
		PermissionRosterViewAll,
		PermissionRosterEdit,
		PermissionPatternManage,
		PermissionTeamManage,
		PermissionComplianceViewOwn,
		PermissionComplianceViewAll,
		PermissionAlertsView,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionProjectView,
		PermissionProjectManage,
		PermissionReportsExport,
		PermissionUserManage,
	},
	RolePlanner: {
		// Planner builds rosters and works the compliance queue
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionRosterViewOwn,
		PermissionRosterViewAll,
		PermissionRosterEdit,
		PermissionPatternManage,
		PermissionTeamManage,
		PermissionComplianceViewOwn,
		PermissionComplianceViewAll,
		PermissionAlertsView,
		PermissionEmployeeViewAll,
		PermissionProjectView,
		PermissionReportsExport,
	},
	RoleWorker: {
		// Worker sees their own shifts and fatigue picture
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionRosterViewOwn,
		PermissionComplianceViewOwn,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
