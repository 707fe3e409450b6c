package repository

import (
	"context"
	"errors"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	domainRepo "github.com/sellerdesk/recon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new monthly summary repository
func NewSummaryRepository(db *gorm.DB) domainRepo.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) List(ctx context.Context, monthFrom, monthTo string) ([]entity.MonthlySummary, error) {
	var summaries []entity.MonthlySummary
	query := r.db.WithContext(ctx).Model(&entity.MonthlySummary{})

	if monthFrom != "" {
		query = query.Where(monthOrdinalExpr+" >= ?", sortableMonth(monthFrom))
	}
	if monthTo != "" {
		query = query.Where(monthOrdinalExpr+" <= ?", sortableMonth(monthTo))
	}

	err := query.Order(monthOrdinalExpr).Find(&summaries).Error
	return summaries, err
}

func (r *summaryRepository) GetByMonth(ctx context.Context, monthKey string) (*entity.MonthlySummary, error) {
	var summary entity.MonthlySummary
	err := r.db.WithContext(ctx).First(&summary, "month_key = ?", monthKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &summary, err
}
