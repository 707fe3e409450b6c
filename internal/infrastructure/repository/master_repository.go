package repository

import (
	"context"
	"errors"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	domainRepo "github.com/sellerdesk/recon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type masterRepository struct {
	db *gorm.DB
}

// NewMasterRepository creates a new master record repository
func NewMasterRepository(db *gorm.DB) domainRepo.MasterRepository {
	return &masterRepository{db: db}
}

func (r *masterRepository) LoadAll(ctx context.Context) ([]entity.MasterRecord, error) {
	var records []entity.MasterRecord
	err := r.db.WithContext(ctx).
		Order("order_release_id, line_item_id").
		Find(&records).Error
	return records, err
}

func (r *masterRepository) GetByKey(ctx context.Context, key entity.RecordKey) (*entity.MasterRecord, error) {
	var record entity.MasterRecord
	err := r.db.WithContext(ctx).
		First(&record, "order_release_id = ? AND line_item_id = ?", key.OrderReleaseID, key.LineItemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

// monthOrdinalExpr rewrites the MM-YYYY month key into sortable YYYYMM
// form so month ranges work in SQL.
const monthOrdinalExpr = "(substr(month_key, 4, 4) || substr(month_key, 1, 2))"

// sortableMonth converts an MM-YYYY bound to YYYYMM. Malformed bounds
// are passed through; they simply will not match.
func sortableMonth(key string) string {
	if len(key) != 7 {
		return key
	}
	return key[3:] + key[:2]
}

func (r *masterRepository) List(ctx context.Context, params *domainRepo.MasterFilterParams) ([]entity.MasterRecord, int64, error) {
	var records []entity.MasterRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.MasterRecord{})

	if params.Search != "" {
		query = query.Where("order_release_id ILIKE ?", params.Search+"%")
	}
	if params.MonthFrom != "" {
		query = query.Where(monthOrdinalExpr+" >= ?", sortableMonth(params.MonthFrom))
	}
	if params.MonthTo != "" {
		query = query.Where(monthOrdinalExpr+" <= ?", sortableMonth(params.MonthTo))
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentType != nil {
		query = query.Where("payment_type = ?", *params.PaymentType)
	}
	if params.HasReturn != nil {
		query = query.Where("has_return = ?", *params.HasReturn)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "order_release_id"
	switch params.SortBy {
	case "created_on", "final_amount", "month_key", "status":
		sortBy = params.SortBy
	}
	sortOrder := "asc"
	if params.SortOrder == "desc" {
		sortOrder = "desc"
	}
	query = query.Order(sortBy + " " + sortOrder).Order("line_item_id")

	if params.Pagination != nil {
		query = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage)
	}

	err := query.Find(&records).Error
	return records, total, err
}
