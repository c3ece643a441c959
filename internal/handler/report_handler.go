package handler

import (
	"net/http"

	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves the admin dashboard and reports rollups.
type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Stats returns the dashboard counters.
// GET /api/dashboard/stats
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.reportService.Stats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Report returns the full aggregate report.
// GET /api/reports
func (h *ReportHandler) Report(c *gin.Context) {
	report, err := h.reportService.BuildReport()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
