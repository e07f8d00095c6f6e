package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/railsafe/roster-backend-go/internal/domain/compliance"
	"github.com/railsafe/roster-backend-go/internal/domain/roster"
	"github.com/railsafe/roster-backend-go/internal/pkg/clock"
	compliancesvc "github.com/railsafe/roster-backend-go/internal/service/compliance"
)

// Pattern CSV columns. Required: id, name, start, end. The weekdays column
// restricts the pattern to the listed days ("mon|wed|fri"); fatigue columns
// left empty fall back to the configured system defaults.
//
// Assignment CSV columns. Required: employee_id, pattern_id, start_date.
// An empty end_date means a single day; custom_start/custom_end override
// the pattern's times for every day of the assignment.

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// csvTable is one parsed CSV file with header-based field access.
type csvTable struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readCSVTable(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file, expected a header row", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return &csvTable{path: path, columns: columns, rows: records[1:]}, nil
}

func (t *csvTable) field(row []string, name string) string {
	idx, ok := t.columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (t *csvTable) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return fmt.Errorf("%s: missing required column %q", t.path, name)
		}
	}
	return nil
}

// rowErr wraps a parse failure with the file and 1-based data row number.
func (t *csvTable) rowErr(i int, format string, args ...any) error {
	return fmt.Errorf("%s row %d: %s", t.path, i+1, fmt.Sprintf(format, args...))
}

func loadPatterns(path string) (map[string]roster.ShiftPattern, error) {
	table, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	if err := table.require("id", "name", "start", "end"); err != nil {
		return nil, err
	}

	patterns := make(map[string]roster.ShiftPattern, len(table.rows))
	for i, row := range table.rows {
		if len(row) == 0 {
			continue
		}
		id := table.field(row, "id")
		if id == "" {
			return nil, table.rowErr(i, "id is required")
		}
		if _, dup := patterns[id]; dup {
			return nil, table.rowErr(i, "duplicate pattern id %q", id)
		}

		start, err := clock.Parse(table.field(row, "start"))
		if err != nil {
			return nil, table.rowErr(i, "invalid start: %v", err)
		}
		end, err := clock.Parse(table.field(row, "end"))
		if err != nil {
			return nil, table.rowErr(i, "invalid end: %v", err)
		}

		p := roster.ShiftPattern{
			ID:        id,
			Name:      table.field(row, "name"),
			StartTime: start,
			EndTime:   end,
			DutyType:  roster.DutyType(table.field(row, "duty_type")),
			IsNight:   clock.IsNightClock(start, end),
		}

		if days := table.field(row, "weekdays"); days != "" {
			p.WeekdayTimes = make(map[time.Weekday]roster.DayTimes)
			for _, name := range strings.Split(days, "|") {
				wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
				if !ok {
					return nil, table.rowErr(i, "unknown weekday %q", name)
				}
				p.WeekdayTimes[wd] = roster.DayTimes{StartTime: start, EndTime: end}
			}
		}

		fatigueInts := []struct {
			column string
			dst    *int
		}{
			{"workload", &p.Fatigue.Workload},
			{"attention", &p.Fatigue.Attention},
			{"commute_in_mins", &p.Fatigue.CommuteInMinutes},
			{"commute_out_mins", &p.Fatigue.CommuteOutMinutes},
			{"break_frequency_mins", &p.Fatigue.BreakFrequencyMins},
			{"break_length_mins", &p.Fatigue.BreakLengthMins},
			{"continuous_work_mins", &p.Fatigue.ContinuousWorkMins},
			{"break_after_continuous", &p.Fatigue.BreakAfterContinuous},
		}
		for _, fi := range fatigueInts {
			raw := table.field(row, fi.column)
			if raw == "" {
				continue
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, table.rowErr(i, "invalid %s: %v", fi.column, err)
			}
			*fi.dst = v
		}

		patterns[id] = p
	}

	if len(patterns) == 0 {
		return nil, fmt.Errorf("%s: no patterns", path)
	}
	return patterns, nil
}

func loadAssignments(path string) ([]roster.Assignment, error) {
	table, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}
	if err := table.require("employee_id", "pattern_id", "start_date"); err != nil {
		return nil, err
	}

	assignments := make([]roster.Assignment, 0, len(table.rows))
	for i, row := range table.rows {
		if len(row) == 0 {
			continue
		}
		employeeID := table.field(row, "employee_id")
		patternID := table.field(row, "pattern_id")
		if employeeID == "" || patternID == "" {
			return nil, table.rowErr(i, "employee_id and pattern_id are required")
		}

		startDate, err := time.Parse("2006-01-02", table.field(row, "start_date"))
		if err != nil {
			return nil, table.rowErr(i, "invalid start_date: %v", err)
		}
		endDate := startDate
		if raw := table.field(row, "end_date"); raw != "" {
			endDate, err = time.Parse("2006-01-02", raw)
			if err != nil {
				return nil, table.rowErr(i, "invalid end_date: %v", err)
			}
		}
		if endDate.Before(startDate) {
			return nil, table.rowErr(i, "end_date before start_date")
		}

		a := roster.Assignment{
			ID:        table.field(row, "id"),
			PatternID: patternID,
			Assignee: roster.Assignee{
				Type:       roster.AssigneeIndividual,
				EmployeeID: employeeID,
			},
			StartDate: startDate,
			EndDate:   endDate,
		}
		if a.ID == "" {
			a.ID = fmt.Sprintf("row-%d", i+1)
		}

		customStart := table.field(row, "custom_start")
		customEnd := table.field(row, "custom_end")
		if (customStart == "") != (customEnd == "") {
			return nil, table.rowErr(i, "custom_start and custom_end must be set together")
		}
		if customStart != "" {
			start, err := clock.Parse(customStart)
			if err != nil {
				return nil, table.rowErr(i, "invalid custom_start: %v", err)
			}
			end, err := clock.Parse(customEnd)
			if err != nil {
				return nil, table.rowErr(i, "invalid custom_end: %v", err)
			}
			a.CustomStartTime = &start
			a.CustomEndTime = &end
		}

		assignments = append(assignments, a)
	}
	return assignments, nil
}

// loadOccurrences reads both input files and expands them into dated
// occurrences. Unlike the server path, a reference to an unknown pattern id
// is a hard error here: a typo in a hand-edited file must not silently
// shrink the roster being checked.
func loadOccurrences(patternsPath, assignmentsPath, employeeID string, defaults config.FatigueConfig) ([]compliance.Occurrence, error) {
	patterns, err := loadPatterns(patternsPath)
	if err != nil {
		return nil, err
	}
	assignments, err := loadAssignments(assignmentsPath)
	if err != nil {
		return nil, err
	}

	for _, a := range assignments {
		if _, ok := patterns[a.PatternID]; !ok {
			return nil, fmt.Errorf("%s: assignment %s references unknown pattern %q", assignmentsPath, a.ID, a.PatternID)
		}
	}

	occs := compliancesvc.ExpandOccurrences(assignments, patterns, nil, defaults)
	if employeeID != "" {
		filtered := occs[:0]
		for _, occ := range occs {
			if occ.EmployeeID == employeeID {
				filtered = append(filtered, occ)
			}
		}
		occs = filtered
	}
	return occs, nil
}

// groupByEmployee splits occurrences into per-person timelines, each sorted
// by start time, with employee ids returned in stable order.
func groupByEmployee(occs []compliance.Occurrence) ([]string, map[string][]compliance.Occurrence) {
	perEmployee := make(map[string][]compliance.Occurrence)
	for _, occ := range occs {
		perEmployee[occ.EmployeeID] = append(perEmployee[occ.EmployeeID], occ)
	}

	ids := make([]string, 0, len(perEmployee))
	for id := range perEmployee {
		ids = append(ids, id)
		compliancesvc.SortOccurrences(perEmployee[id])
	}
	sort.Strings(ids)
	return ids, perEmployee
}
