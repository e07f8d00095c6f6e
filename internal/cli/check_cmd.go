package cli

import (
	"fmt"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var patternsPath, assignmentsPath, employeeID string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a roster against the working-hours rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			occs, err := loadOccurrences(patternsPath, assignmentsPath, employeeID, app.Fatigue)
			if err != nil {
				return err
			}

			evaluator := compliancesvc.NewEvaluator(app.Compliance)
			ids, perEmployee := groupByEmployee(occs)

			out := cmd.OutOrStdout()
			var breaches, total int
			for _, id := range ids {
				violations := evaluator.Evaluate(perEmployee[id])
				if len(violations) == 0 {
					continue
				}
				total += len(violations)

				fmt.Fprintf(out, "%s (%s)\n", id, compliancesvc.StatusFor(violations))
				for _, v := range violations {
					if v.Severity == compliance.SeverityBreach {
						breaches++
					}
					fmt.Fprintf(out, "  %s  %-18s %-8s %s\n",
						violationDate(v), v.Kind, v.Severity, v.Message)
				}
			}

			if total == 0 {
				fmt.Fprintf(out, "OK: %d occurrences, no violations\n", len(occs))
				return nil
			}

			fmt.Fprintf(out, "\n%d violation(s), %d breach(es)\n", total, breaches)
			if breaches > 0 {
				return fmt.Errorf("%d breach(es) found", breaches)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&patternsPath, "patterns", "", "Shift pattern CSV file (required)")
	cmd.Flags().StringVar(&assignmentsPath, "assignments", "", "Assignment CSV file (required)")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Restrict the check to one employee ID")
	_ = cmd.MarkFlagRequired("patterns")
	_ = cmd.MarkFlagRequired("assignments")

	return cmd
}

// violationDate renders the day a violation attaches to, or the full range
// for run-shaped violations.
func violationDate(v compliance.Violation) string {
	if v.DateRange != nil {
		return v.DateRange.From.Format("2006-01-02") + ".." + v.DateRange.To.Format("2006-01-02")
	}
	return v.Date.Format("2006-01-02")
}
