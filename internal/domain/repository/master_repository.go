package repository

import (
	"context"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/sellerdesk/recon-api/pkg/pagination"
)

// MasterRepository defines the interface for master record data operations
type MasterRepository interface {
	// LoadAll returns the full master dataset in key order. The merge
	// engine needs the whole set; query-shaped access goes through List.
	LoadAll(ctx context.Context) ([]entity.MasterRecord, error)
	GetByKey(ctx context.Context, key entity.RecordKey) (*entity.MasterRecord, error)
	List(ctx context.Context, params *MasterFilterParams) ([]entity.MasterRecord, int64, error)
}

// MasterFilterParams contains filtering parameters for master record queries
type MasterFilterParams struct {
	Pagination  *pagination.PaginationParams
	Search      string // matches order_release_id prefix
	MonthFrom   string // MM-YYYY, inclusive
	MonthTo     string // MM-YYYY, inclusive
	Status      *enum.LifecycleStatus
	PaymentType *enum.PaymentType
	HasReturn   *bool
	SortBy      string
	SortOrder   string
}
