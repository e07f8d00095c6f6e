package cli

import (
	"fmt"

	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
	fatiguesvc "github.com/railsafe/roster-backend-go/internal/service/fatigue"
	"github.com/spf13/cobra"
)

func newFRICmd(app *App) *cobra.Command {
	var patternsPath, assignmentsPath, employeeID string

	cmd := &cobra.Command{
		Use:   "fri",
		Short: "Print the fatigue risk index per shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			occs, err := loadOccurrences(patternsPath, assignmentsPath, employeeID, app.Fatigue)
			if err != nil {
				return err
			}

			window := compliancesvc.TrailingWindow(app.Compliance.RollingWindowDays)
			ids, perEmployee := groupByEmployee(occs)

			out := cmd.OutOrStdout()
			var overThreshold int
			for _, id := range ids {
				results, summary := fatiguesvc.ComputeResults(perEmployee[id], window)

				fmt.Fprintf(out, "%s (max %.3f, avg %.3f, %s)\n",
					id, summary.MaxFRI, summary.AvgFRI, summary.OverallRisk)
				for _, r := range results {
					night := "day"
					if r.Occurrence.IsNight {
						night = "night"
					}
					fmt.Fprintf(out, "  %s  %5.1fh %-5s fri=%.3f %s\n",
						r.Occurrence.Date.Format("2006-01-02"),
						r.Occurrence.DurationHours, night, r.RiskIndex, r.Band)
					if r.RiskIndex > app.Compliance.FRIBreachThreshold {
						overThreshold++
					}
				}
			}

			if overThreshold > 0 {
				return fmt.Errorf("%d shift(s) over the fatigue index threshold %.2f",
					overThreshold, app.Compliance.FRIBreachThreshold)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&patternsPath, "patterns", "", "Shift pattern CSV file (required)")
	cmd.Flags().StringVar(&assignmentsPath, "assignments", "", "Assignment CSV file (required)")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Restrict the report to one employee ID")
	_ = cmd.MarkFlagRequired("patterns")
	_ = cmd.MarkFlagRequired("assignments")

	return cmd
}
