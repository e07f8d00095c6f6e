package dashboard

// DashboardResponse is the combined response for the main dashboard
// endpoint: the organisation-wide compliance picture.
type DashboardResponse struct {
	ProjectSummary  ProjectSummaryResponse  `json:"project_summary"`
	WorkforceStatus WorkforceStatusResponse `json:"workforce_status"`
	AlertSummary    AlertSummaryResponse    `json:"alert_summary"`
}

// ProjectSummaryResponse counts projects by compliance state.
type ProjectSummaryResponse struct {
	TotalProjects     int64  `json:"total_projects"`
	CompliantProjects int64  `json:"compliant_projects"`
	WithWarnings      int64  `json:"with_warnings"`
	WithBreaches      int64  `json:"with_breaches"`
	UpdatedAt         string `json:"updated_at"`
}

// WorkforceStatusResponse buckets active employees by traffic-light status.
type WorkforceStatusResponse struct {
	TotalActive int64 `json:"total_active"`
	Green       int64 `json:"green"`
	Amber       int64 `json:"amber"`
	Red         int64 `json:"red"`
}

// AlertSummaryResponse counts open alerts by violation kind.
type AlertSummaryResponse struct {
	TotalUnread int64            `json:"total_unread"`
	ByKind      map[string]int64 `json:"by_kind"`
}
