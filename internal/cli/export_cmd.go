package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/report"
	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
	reportsvc "github.com/railsafe/roster-backend-go/internal/service/report"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var patternsPath, assignmentsPath, employeeID string
	var fromStr, toStr, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the occurrence-level compliance report as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			occs, err := loadOccurrences(patternsPath, assignmentsPath, employeeID, app.Fatigue)
			if err != nil {
				return err
			}
			if len(occs) == 0 {
				return fmt.Errorf("no occurrences to export")
			}

			from, to, err := exportWindow(fromStr, toStr, occs)
			if err != nil {
				return err
			}

			evaluator := compliancesvc.NewEvaluator(app.Compliance)
			window := compliancesvc.TrailingWindow(app.Compliance.RollingWindowDays)
			// Offline inputs carry no employee names; the name column is
			// left empty rather than faked from the id.
			rows := reportsvc.BuildRows(occs, nil, evaluator, window, from, to)

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			w := csv.NewWriter(out)
			if err := w.Write(report.Header()); err != nil {
				return err
			}
			for _, row := range rows {
				if err := w.Write(row.Record()); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}

	cmd.Flags().StringVar(&patternsPath, "patterns", "", "Shift pattern CSV file (required)")
	cmd.Flags().StringVar(&assignmentsPath, "assignments", "", "Assignment CSV file (required)")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Restrict the export to one employee ID")
	cmd.Flags().StringVar(&fromStr, "from", "", "Window start YYYY-MM-DD (default: first occurrence)")
	cmd.Flags().StringVar(&toStr, "to", "", "Window end YYYY-MM-DD (default: last occurrence)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("patterns")
	_ = cmd.MarkFlagRequired("assignments")

	return cmd
}

// exportWindow resolves the report window, defaulting each missing bound to
// the span of the expanded occurrences.
func exportWindow(fromStr, toStr string, occs []compliance.Occurrence) (time.Time, time.Time, error) {
	from, to := occs[0].Date, occs[0].Date
	for _, occ := range occs[1:] {
		if occ.Date.Before(from) {
			from = occ.Date
		}
		if occ.Date.After(to) {
			to = occ.Date
		}
	}

	var err error
	if fromStr != "" {
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if toStr != "" {
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to: %w", err)
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to is before --from")
	}
	return from, to, nil
}
