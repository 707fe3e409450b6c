package request

import "github.com/sellerdesk/recon-api/internal/domain/entity"

// RunRequest is the POST /reconciliation/runs payload: the ordered set of
// ingestion batches to fold into the master dataset. Record fields bind
// straight onto the engine's input entities.
type RunRequest struct {
	Batches []entity.Batch `json:"batches" binding:"required,min=1,dive"`
}
