package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/railsafe/roster-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *App {
	return &App{
		Compliance: config.DefaultComplianceConfig(),
		Fatigue:    config.DefaultFatigueConfig(),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeTestCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// seedRoster writes a pattern and assignment file. The "day" pattern is a
// compliant 8h shift; assignments can reference "long" for a 13h one that
// breaches the shift-length cap.
func seedRoster(t *testing.T, assignmentRows string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	patterns := writeTestCSV(t, dir, "patterns.csv",
		"id,name,start,end,duty_type\n"+
			"day,Day Shift,08:00,16:00,track_work\n"+
			"long,Long Shift,06:00,19:00,track_work\n")
	assignments := writeTestCSV(t, dir, "assignments.csv",
		"id,employee_id,pattern_id,start_date,end_date\n"+assignmentRows)
	return patterns, assignments
}

func TestCheckCmd_CompliantRoster(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,day,2025-03-03,2025-03-07\n")

	out, err := executeCmd(t, testApp(), "check",
		"--patterns", patterns, "--assignments", assignments)

	require.NoError(t, err)
	assert.Contains(t, out, "no violations")
}

func TestCheckCmd_ShiftLengthBreach(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,long,2025-03-03,2025-03-03\n")

	out, err := executeCmd(t, testApp(), "check",
		"--patterns", patterns, "--assignments", assignments)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "breach")
	assert.Contains(t, out, "shift-length")
	assert.Contains(t, out, "emp-1")
}

func TestCheckCmd_EmployeeFilter(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,long,2025-03-03,2025-03-03\n"+
			"a2,emp-2,day,2025-03-03,2025-03-03\n")

	// emp-2 is compliant, so filtering to them hides emp-1's breach.
	out, err := executeCmd(t, testApp(), "check",
		"--patterns", patterns, "--assignments", assignments,
		"--employee", "emp-2")

	require.NoError(t, err)
	assert.Contains(t, out, "no violations")
}

func TestCheckCmd_UnknownPattern(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,missing,2025-03-03,2025-03-03\n")

	_, err := executeCmd(t, testApp(), "check",
		"--patterns", patterns, "--assignments", assignments)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pattern")
}

func TestCheckCmd_MissingFlags(t *testing.T) {
	_, err := executeCmd(t, testApp(), "check")
	require.Error(t, err)
}

func TestFRICmd_PrintsBands(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,day,2025-03-03,2025-03-05\n")

	out, err := executeCmd(t, testApp(), "fri",
		"--patterns", patterns, "--assignments", assignments)

	require.NoError(t, err)
	assert.Contains(t, out, "emp-1")
	assert.Contains(t, out, "fri=")
	// Three rows, one per day of the assignment.
	assert.Equal(t, 3, strings.Count(out, "fri="))
}

func TestExportCmd_WritesCSV(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,day,2025-03-03,2025-03-04\n")

	out, err := executeCmd(t, testApp(), "export",
		"--patterns", patterns, "--assignments", assignments)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3) // header + two occurrence rows
	assert.Contains(t, lines[0], "employee_id")
	assert.Contains(t, lines[1], "emp-1")
	assert.Contains(t, lines[1], "2025-03-03")
}

func TestExportCmd_WindowFilter(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,day,2025-03-03,2025-03-07\n")

	out, err := executeCmd(t, testApp(), "export",
		"--patterns", patterns, "--assignments", assignments,
		"--from", "2025-03-05", "--to", "2025-03-05")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2025-03-05")
}

func TestExportCmd_OutFile(t *testing.T) {
	patterns, assignments := seedRoster(t,
		"a1,emp-1,day,2025-03-03,2025-03-03\n")
	outPath := filepath.Join(t.TempDir(), "report.csv")

	_, err := executeCmd(t, testApp(), "export",
		"--patterns", patterns, "--assignments", assignments,
		"--out", outPath)

	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "emp-1")
}

func TestLoadPatterns_WeekdayRestriction(t *testing.T) {
	dir := t.TempDir()
	patterns := writeTestCSV(t, dir, "patterns.csv",
		"id,name,start,end,weekdays\n"+
			"wk,Weekday Shift,08:00,16:00,mon|tue|wed|thu|fri\n")
	assignments := writeTestCSV(t, dir, "assignments.csv",
		"id,employee_id,pattern_id,start_date,end_date\n"+
			// 2025-03-03 is a Monday; the range covers a full week.
			"a1,emp-1,wk,2025-03-03,2025-03-09\n")

	out, err := executeCmd(t, testApp(), "export",
		"--patterns", patterns, "--assignments", assignments)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Weekend days produce no occurrences.
	require.Len(t, lines, 6)
	assert.NotContains(t, out, "2025-03-08")
	assert.NotContains(t, out, "2025-03-09")
}

func TestLoadAssignments_BadDate(t *testing.T) {
	dir := t.TempDir()
	patterns := writeTestCSV(t, dir, "patterns.csv",
		"id,name,start,end\nday,Day,08:00,16:00\n")
	assignments := writeTestCSV(t, dir, "assignments.csv",
		"id,employee_id,pattern_id,start_date\n"+
			"a1,emp-1,day,03/03/2025\n")

	_, err := executeCmd(t, testApp(), "check",
		"--patterns", patterns, "--assignments", assignments)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start_date")
}
