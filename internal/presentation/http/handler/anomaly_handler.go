package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/recon-api/internal/application/service"
	"github.com/sellerdesk/recon-api/internal/presentation/http/dto/response"
	"github.com/sellerdesk/recon-api/pkg/pagination"
)

// AnomalyHandler serves the latest run's anomaly and rejection lists
type AnomalyHandler struct {
	reconService *service.ReconciliationService
}

// NewAnomalyHandler creates a new anomaly handler
func NewAnomalyHandler(reconService *service.ReconciliationService) *AnomalyHandler {
	return &AnomalyHandler{reconService: reconService}
}

// ListAnomalies returns the latest run's anomalies in detection order
func (h *AnomalyHandler) ListAnomalies(c *gin.Context) {
	params := GetPaginationParams(c)

	flags, total, err := h.reconService.ListAnomalies(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	result := pagination.NewPaginatedResult(flags, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Anomalies retrieved", result)
}

// ListRejections returns the latest run's rejection entries
func (h *AnomalyHandler) ListRejections(c *gin.Context) {
	params := GetPaginationParams(c)

	rejections, total, err := h.reconService.ListRejections(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	result := pagination.NewPaginatedResult(rejections, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Rejections retrieved", result)
}
