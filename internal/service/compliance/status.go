package compliance

import (
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
)

// StatusFor reduces a violation list to the person's traffic-light status:
// red on any breach, amber on anything else, green when clean.
func StatusFor(violations []compliance.Violation) compliance.Status {
	if len(violations) == 0 {
		return compliance.StatusGreen
	}
	for _, v := range violations {
		if v.Severity == compliance.SeverityBreach {
			return compliance.StatusRed
		}
	}
	return compliance.StatusAmber
}

// ReduceProject folds per-employee violation sets into the project-card
// counts. Breaches count as errors, every lower tier as a warning; the
// project is compliant only when no employee has any violation.
func ReduceProject(projectID string, perEmployee map[string][]compliance.Violation) compliance.ProjectEvaluation {
	eval := compliance.ProjectEvaluation{
		ProjectID:   projectID,
		IsCompliant: true,
		PerEmployee: make(map[string]compliance.Status, len(perEmployee)),
	}
	for employeeID, violations := range perEmployee {
		eval.PerEmployee[employeeID] = StatusFor(violations)
		for _, v := range violations {
			eval.Violations = append(eval.Violations, v)
			if v.Severity.IsError() {
				eval.ErrorCount++
			} else {
				eval.WarningCount++
			}
		}
		if len(violations) > 0 {
			eval.IsCompliant = false
		}
	}
	return eval
}

// CellFor filters a person's full violation list down to one planner grid
// cell. Violations whose date (or date range) includes the day land in
// Today and drive the cell fill; violations strictly later in the person's
// timeline land in Later and drive the forward-looking border.
func CellFor(violations []compliance.Violation, day time.Time) compliance.CellViolations {
	var cell compliance.CellViolations
	d := compliance.DateOnly(day)
	for _, v := range violations {
		switch {
		case coversDay(v, d):
			cell.Today = append(cell.Today, v)
		case compliance.DateOnly(v.Date).After(d):
			cell.Later = append(cell.Later, v)
		}
	}
	return cell
}

func coversDay(v compliance.Violation, day time.Time) bool {
	if v.DateRange != nil {
		return v.DateRange.Contains(day)
	}
	return compliance.DateOnly(v.Date).Equal(day)
}
