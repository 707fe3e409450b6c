package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellerdesk/recon-api/internal/application/service"
	"github.com/sellerdesk/recon-api/internal/presentation/http/dto/request"
	"github.com/sellerdesk/recon-api/internal/presentation/http/dto/response"
	"github.com/sellerdesk/recon-api/pkg/pagination"
)

// RunHandler handles reconciliation run HTTP requests
type RunHandler struct {
	reconService *service.ReconciliationService
}

// NewRunHandler creates a new run handler
func NewRunHandler(reconService *service.ReconciliationService) *RunHandler {
	return &RunHandler{reconService: reconService}
}

// Create triggers a reconciliation run over the posted batches
func (h *RunHandler) Create(c *gin.Context) {
	var req request.RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid run payload: "+err.Error())
		return
	}

	run, err := h.reconService.Run(c.Request.Context(), req.Batches)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Reconciliation run completed", run)
}

// List handles listing past runs
func (h *RunHandler) List(c *gin.Context) {
	params := GetPaginationParams(c)

	runs, total, err := h.reconService.ListRuns(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	result := pagination.NewPaginatedResult(runs, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Runs retrieved", result)
}

// Latest returns the most recent run
func (h *RunHandler) Latest(c *gin.Context) {
	run, err := h.reconService.LatestRun(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Latest run retrieved", run)
}

// Get returns one run with its rejections and anomalies
func (h *RunHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid run ID")
		return
	}

	run, err := h.reconService.GetRun(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Run retrieved", run)
}
