package compliance

// ViolationResponse is the wire form of a Violation.
type ViolationResponse struct {
	Kind       string  `json:"kind"`
	Severity   string  `json:"severity"`
	EmployeeID string  `json:"employee_id"`
	ProjectID  string  `json:"project_id"`
	Date       string  `json:"date"`
	DateFrom   *string `json:"date_from,omitempty"`
	DateTo     *string `json:"date_to,omitempty"`
	Magnitude  float64 `json:"magnitude"`
	Message    string  `json:"message"`
}

// PersonEvaluation is the result of evaluating one person's full timeline.
type PersonEvaluation struct {
	EmployeeID string
	Status     Status
	TotalHours float64
	Violations []Violation
}

type PersonEvaluationResponse struct {
	EmployeeID string              `json:"employee_id"`
	Status     string              `json:"status"`
	TotalHours float64             `json:"total_hours"`
	Violations []ViolationResponse `json:"violations"`
}

// ProjectEvaluation reduces every assigned employee's violations to the
// counts backing project-card badges.
type ProjectEvaluation struct {
	ProjectID    string
	Violations   []Violation
	ErrorCount   int
	WarningCount int
	IsCompliant  bool
	PerEmployee  map[string]Status
}

type ProjectEvaluationResponse struct {
	ProjectID    string              `json:"project_id"`
	ErrorCount   int                 `json:"error_count"`
	WarningCount int                 `json:"warning_count"`
	IsCompliant  bool                `json:"is_compliant"`
	PerEmployee  map[string]string   `json:"per_employee"`
	Violations   []ViolationResponse `json:"violations"`
}

// CellViolations backs one planner grid cell: violations on the day itself
// drive the cell fill, violations later in the person's timeline drive the
// forward-looking border.
type CellViolations struct {
	Today []Violation
	Later []Violation
}

type CellViolationsResponse struct {
	Today []ViolationResponse `json:"today"`
	Later []ViolationResponse `json:"later"`
}

const dateLayout = "2006-01-02"

func ToViolationResponse(v Violation) ViolationResponse {
	resp := ViolationResponse{
		Kind:       string(v.Kind),
		Severity:   v.Severity.String(),
		EmployeeID: v.EmployeeID,
		ProjectID:  v.ProjectID,
		Date:       v.Date.Format(dateLayout),
		Magnitude:  v.Magnitude,
		Message:    v.Message,
	}
	if v.DateRange != nil {
		from := v.DateRange.From.Format(dateLayout)
		to := v.DateRange.To.Format(dateLayout)
		resp.DateFrom = &from
		resp.DateTo = &to
	}
	return resp
}

func ToViolationResponses(violations []Violation) []ViolationResponse {
	out := make([]ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, ToViolationResponse(v))
	}
	return out
}
