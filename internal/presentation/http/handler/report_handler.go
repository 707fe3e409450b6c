package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/recon-api/internal/application/service"
	"github.com/sellerdesk/recon-api/internal/presentation/http/dto/response"
)

// ReportHandler handles reconciliation report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Get returns the reconciliation report. ?format=text renders the
// classic plain-text form instead of JSON.
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reportService.Build(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, report.Text())
		return
	}
	response.OK(c, "Report generated", gin.H{
		"report": report,
		"text":   report.Text(),
	})
}
