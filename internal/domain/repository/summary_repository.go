package repository

import (
	"context"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
)

// SummaryRepository defines the interface for monthly summary queries.
// Summaries are derived data, replaced wholesale on each run commit.
type SummaryRepository interface {
	List(ctx context.Context, monthFrom, monthTo string) ([]entity.MonthlySummary, error)
	GetByMonth(ctx context.Context, monthKey string) (*entity.MonthlySummary, error)
}
