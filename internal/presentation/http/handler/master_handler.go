package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/recon-api/internal/application/service"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/sellerdesk/recon-api/internal/presentation/http/dto/response"
	"github.com/sellerdesk/recon-api/pkg/pagination"
)

// MasterHandler handles master record HTTP requests
type MasterHandler struct {
	masterService *service.MasterService
}

// NewMasterHandler creates a new master record handler
func NewMasterHandler(masterService *service.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// List handles listing master records with filters
func (h *MasterHandler) List(c *gin.Context) {
	params := &repository.MasterFilterParams{
		Pagination: GetPaginationParams(c),
		Search:     c.Query("order_release_id"),
		MonthFrom:  c.Query("month_from"),
		MonthTo:    c.Query("month_to"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.ParseLifecycleStatus(statusStr)
		if status == enum.LifecycleUnclassified {
			response.BadRequest(c, "Unknown status "+statusStr)
			return
		}
		params.Status = &status
	}
	if paymentStr := c.Query("payment_type"); paymentStr != "" {
		paymentType := enum.PaymentType(paymentStr)
		if !paymentType.Valid() {
			response.BadRequest(c, "payment_type must be prepaid or postpaid")
			return
		}
		params.PaymentType = &paymentType
	}
	if returnedStr := c.Query("has_return"); returnedStr != "" {
		hasReturn := returnedStr == "true"
		params.HasReturn = &hasReturn
	}

	records, total, err := h.masterService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	result := pagination.NewPaginatedResult(records,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Master records retrieved", result)
}

// Get returns one master record by composite key
func (h *MasterHandler) Get(c *gin.Context) {
	record, err := h.masterService.GetByKey(c.Request.Context(), c.Param("release"), c.Param("line"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Master record retrieved", record)
}
