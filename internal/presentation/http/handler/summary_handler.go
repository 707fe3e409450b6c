package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/recon-api/internal/application/service"
	"github.com/sellerdesk/recon-api/internal/presentation/http/dto/response"
)

// SummaryHandler handles monthly summary HTTP requests
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// List returns monthly summaries within an optional MM-YYYY range
func (h *SummaryHandler) List(c *gin.Context) {
	summaries, err := h.summaryService.List(c.Request.Context(), c.Query("month_from"), c.Query("month_to"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Monthly summaries retrieved", summaries)
}

// Get returns one month's summary
func (h *SummaryHandler) Get(c *gin.Context) {
	summary, err := h.summaryService.GetByMonth(c.Request.Context(), c.Param("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Monthly summary retrieved", summary)
}
