package http

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/railsafe/roster-backend-go/internal/domain/report"
	"github.com/railsafe/roster-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportComplianceCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportComplianceCSV implements ReportHandler. Rows are materialised
// before any byte is written so failures still produce a JSON error
// instead of a truncated download.
func (h *reportHandlerImpl) ExportComplianceCSV(w http.ResponseWriter, r *http.Request) {
	req := report.ComplianceReportRequest{
		ProjectID: r.URL.Query().Get("project_id"),
		From:      r.URL.Query().Get("from"),
		To:        r.URL.Query().Get("to"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.reportService.ComplianceRows(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("compliance-%s-%s.csv", req.From, time.Now().Format("20060102150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	cw := csv.NewWriter(w)
	if err := cw.Write(report.Header()); err != nil {
		slog.Error("Compliance CSV export failed", "project_id", req.ProjectID, "error", err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			slog.Error("Compliance CSV export failed", "project_id", req.ProjectID, "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("Compliance CSV export failed", "project_id", req.ProjectID, "error", err)
	}
}
