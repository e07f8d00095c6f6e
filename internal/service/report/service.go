package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/employee"
	"github.com/railsafe/roster-backend-go/internal/domain/fatigue"
	"github.com/railsafe/roster-backend-go/internal/domain/project"
	"github.com/railsafe/roster-backend-go/internal/domain/report"
	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
	fatiguesvc "github.com/railsafe/roster-backend-go/internal/service/fatigue"
)

type ReportServiceImpl struct {
	compliance   *compliancesvc.Service
	projectRepo  project.ProjectRepository
	employeeRepo employee.EmployeeRepository
	evaluator    *compliancesvc.Evaluator
	window       time.Duration
}

func NewReportService(
	complianceService *compliancesvc.Service,
	projectRepo project.ProjectRepository,
	employeeRepo employee.EmployeeRepository,
	cfg config.ComplianceConfig,
) report.ReportService {
	return &ReportServiceImpl{
		compliance:   complianceService,
		projectRepo:  projectRepo,
		employeeRepo: employeeRepo,
		evaluator:    compliancesvc.NewEvaluator(cfg),
		window:       compliancesvc.TrailingWindow(cfg.RollingWindowDays),
	}
}

func (s *ReportServiceImpl) orgIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return "", fmt.Errorf("org_id claim is missing or invalid")
	}
	return orgID, nil
}

// WriteComplianceCSV implements report.ReportService.
func (s *ReportServiceImpl) WriteComplianceCSV(ctx context.Context, w io.Writer, req report.ComplianceReportRequest) error {
	rows, err := s.ComplianceRows(ctx, req)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(report.Header()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ComplianceRows implements report.ReportService.
func (s *ReportServiceImpl) ComplianceRows(ctx context.Context, req report.ComplianceReportRequest) ([]report.ComplianceRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	orgID, err := s.orgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID, orgID); err != nil {
		return nil, err
	}

	occs, err := s.compliance.ProjectOccurrences(ctx, req.ProjectID, orgID)
	if err != nil {
		return nil, err
	}

	names, err := s.employeeNames(ctx, orgID)
	if err != nil {
		return nil, err
	}

	from, to := req.DateRange()
	return BuildRows(occs, names, s.evaluator, s.window, from, to), nil
}

// BuildRows renders occurrences into report rows, one per occurrence inside
// the [from, to] window. Rolling hours and risk are computed over each
// employee's full timeline; the window only filters which rows are emitted.
// Also used by the offline checker, which builds occurrences from files
// instead of the database.
func BuildRows(
	occs []compliance.Occurrence,
	names map[string]string,
	evaluator *compliancesvc.Evaluator,
	window time.Duration,
	from, to time.Time,
) []report.ComplianceRow {
	perEmployee := make(map[string][]compliance.Occurrence)
	for _, occ := range occs {
		perEmployee[occ.EmployeeID] = append(perEmployee[occ.EmployeeID], occ)
	}

	employeeIDs := make([]string, 0, len(perEmployee))
	for id := range perEmployee {
		employeeIDs = append(employeeIDs, id)
	}
	sort.Strings(employeeIDs)

	var rows []report.ComplianceRow
	for _, employeeID := range employeeIDs {
		timeline := perEmployee[employeeID]
		compliancesvc.SortOccurrences(timeline)

		violations := evaluator.Evaluate(timeline)
		byDay := violationsByDay(violations)

		for i, occ := range timeline {
			if occ.Date.Before(from) || occ.Date.After(to) {
				continue
			}
			riskIndex := fatiguesvc.RiskIndex(timeline, i, window)
			rows = append(rows, report.ComplianceRow{
				EmployeeID:   employeeID,
				EmployeeName: names[employeeID],
				Date:         occ.Date.Format("2006-01-02"),
				StartTime:    occ.StartDateTime.Format("15:04"),
				EndTime:      occ.EndDateTime.Format("15:04"),
				Hours:        occ.DurationHours,
				IsNight:      occ.IsNight,
				RollingHours: compliancesvc.RollingHours(timeline, i, window),
				RiskIndex:    riskIndex,
				RiskBand:     string(fatigue.BandFor(riskIndex)),
				Violations:   byDay[occ.Date.Format("2006-01-02")],
			})
		}
	}
	return rows
}

func (s *ReportServiceImpl) employeeNames(ctx context.Context, orgID string) (map[string]string, error) {
	employees, err := s.employeeRepo.GetActiveByOrgID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	names := make(map[string]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.FullName
	}
	return names, nil
}

// violationsByDay renders each day's violations as "kind:severity" pairs
// joined with semicolons. Run-shaped violations attach to every day of
// their range.
func violationsByDay(violations []compliance.Violation) map[string]string {
	parts := make(map[string][]string)
	for _, v := range violations {
		rendered := fmt.Sprintf("%s:%s", v.Kind, v.Severity)
		if v.DateRange != nil {
			for d := v.DateRange.From; !d.After(v.DateRange.To); d = d.AddDate(0, 0, 1) {
				key := d.Format("2006-01-02")
				parts[key] = append(parts[key], rendered)
			}
			continue
		}
		key := v.Date.Format("2006-01-02")
		parts[key] = append(parts[key], rendered)
	}

	out := make(map[string]string, len(parts))
	for day, list := range parts {
		out[day] = strings.Join(list, ";")
	}
	return out
}
