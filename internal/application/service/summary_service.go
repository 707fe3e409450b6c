package service

import (
	"context"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/sellerdesk/recon-api/pkg/apperror"
)

// SummaryService exposes read access to monthly summaries.
type SummaryService struct {
	summaryRepo repository.SummaryRepository
}

// NewSummaryService creates a new summary service
func NewSummaryService(summaryRepo repository.SummaryRepository) *SummaryService {
	return &SummaryService{summaryRepo: summaryRepo}
}

// List returns summaries within the inclusive MM-YYYY month range. Empty
// bounds are open bounds.
func (s *SummaryService) List(ctx context.Context, monthFrom, monthTo string) ([]entity.MonthlySummary, error) {
	return s.summaryRepo.List(ctx, monthFrom, monthTo)
}

// GetByMonth returns one month's summary.
func (s *SummaryService) GetByMonth(ctx context.Context, monthKey string) (*entity.MonthlySummary, error) {
	if monthKey == "" {
		return nil, apperror.NewBadRequestError("month key is required")
	}
	summary, err := s.summaryRepo.GetByMonth(ctx, monthKey)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperror.NewNotFoundError("Monthly summary")
	}
	return summary, nil
}
