package report

import (
	"strconv"
	"time"

	"github.com/railsafe/roster-backend-go/internal/pkg/validator"
)

// ComplianceReportRequest scopes the CSV export to one project and an
// inclusive date window.
type ComplianceReportRequest struct {
	ProjectID string `json:"project_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

func (r *ComplianceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	from, fromValid := validator.IsValidDate(r.From)
	if validator.IsEmpty(r.From) || !fromValid {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	}
	to, toValid := validator.IsValidDate(r.To)
	if validator.IsEmpty(r.To) || !toValid {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	}
	if fromValid && toValid && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to cannot be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DateRange returns the parsed window. Validate must have passed.
func (r *ComplianceReportRequest) DateRange() (time.Time, time.Time) {
	from, _ := validator.IsValidDate(r.From)
	to, _ := validator.IsValidDate(r.To)
	return from, to
}

// ComplianceRow is one CSV line: an occurrence with its windowed context
// and any violations that attach to its date.
type ComplianceRow struct {
	EmployeeID   string
	EmployeeName string
	Date         string
	StartTime    string
	EndTime      string
	Hours        float64
	IsNight      bool
	RollingHours float64
	RiskIndex    float64
	RiskBand     string
	Violations   string // semicolon-joined kind/severity pairs
}

// Header returns the CSV header row; field order matches Record.
func Header() []string {
	return []string{
		"employee_id", "employee_name", "date", "start_time", "end_time",
		"hours", "night", "rolling_7d_hours", "fri", "fri_band", "violations",
	}
}

// Record renders the row for encoding/csv.
func (r ComplianceRow) Record() []string {
	return []string{
		r.EmployeeID,
		r.EmployeeName,
		r.Date,
		r.StartTime,
		r.EndTime,
		strconv.FormatFloat(r.Hours, 'f', 2, 64),
		strconv.FormatBool(r.IsNight),
		strconv.FormatFloat(r.RollingHours, 'f', 2, 64),
		strconv.FormatFloat(r.RiskIndex, 'f', 3, 64),
		r.RiskBand,
		r.Violations,
	}
}
