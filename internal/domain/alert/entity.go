package alert

import "time"

// Alert is a persisted record of a breach surfaced to dashboards and the
// live event stream.
type Alert struct {
	ID         string
	OrgID      string
	EmployeeID string
	ProjectID  string
	Kind       string
	Severity   string
	Date       time.Time
	Message    string
	CreatedAt  time.Time
	ReadAt     *time.Time
}
