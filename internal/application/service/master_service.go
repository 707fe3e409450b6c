package service

import (
	"context"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/sellerdesk/recon-api/pkg/apperror"
)

// MasterService exposes read access to the reconciled master dataset.
type MasterService struct {
	masterRepo repository.MasterRepository
}

// NewMasterService creates a new master record service
func NewMasterService(masterRepo repository.MasterRepository) *MasterService {
	return &MasterService{masterRepo: masterRepo}
}

// GetByKey returns one master record by its composite key.
func (s *MasterService) GetByKey(ctx context.Context, releaseID, lineItemID string) (*entity.MasterRecord, error) {
	if releaseID == "" || lineItemID == "" {
		return nil, apperror.NewBadRequestError("order_release_id and line_item_id are required")
	}
	record, err := s.masterRepo.GetByKey(ctx, entity.RecordKey{
		OrderReleaseID: releaseID,
		LineItemID:     lineItemID,
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Master record")
	}
	return record, nil
}

// List returns master records matching the filter, with the total count.
func (s *MasterService) List(ctx context.Context, params *repository.MasterFilterParams) ([]entity.MasterRecord, int64, error) {
	if params.Pagination != nil {
		params.Pagination.Validate()
	}
	return s.masterRepo.List(ctx, params)
}
