package report

import (
	"context"
	"io"
)

// ReportService generates compliance exports.
type ReportService interface {
	// WriteComplianceCSV streams the project's occurrence-level compliance
	// report for the window as CSV. Rows are generated on the fly and
	// never stored.
	WriteComplianceCSV(ctx context.Context, w io.Writer, req ComplianceReportRequest) error

	// ComplianceRows returns the same data unrendered, for callers that
	// want to post-process instead of stream.
	ComplianceRows(ctx context.Context, req ComplianceReportRequest) ([]ComplianceRow, error)
}
