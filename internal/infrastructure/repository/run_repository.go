package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellerdesk/recon-api/internal/domain/entity"
	domainRepo "github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/sellerdesk/recon-api/pkg/pagination"
	"gorm.io/gorm"
)

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new reconciliation run repository
func NewRunRepository(db *gorm.DB) domainRepo.RunRepository {
	return &runRepository{db: db}
}

// insertBatchSize keeps bulk inserts below the postgres parameter limit.
const insertBatchSize = 500

func (r *runRepository) CommitRun(ctx context.Context, state *domainRepo.RunState) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The master set, summaries and snapshot are replaced wholesale;
		// derived state never accumulates stale rows.
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&entity.MasterRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&entity.MonthlySummary{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&entity.SnapshotEntry{}).Error; err != nil {
			return err
		}

		if len(state.Records) > 0 {
			if err := tx.CreateInBatches(state.Records, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(state.Summaries) > 0 {
			if err := tx.CreateInBatches(state.Summaries, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(state.Snapshot) > 0 {
			if err := tx.CreateInBatches(state.Snapshot, insertBatchSize).Error; err != nil {
				return err
			}
		}

		// The run row carries its rejections and anomalies via
		// associations.
		return tx.Create(state.Run).Error
	})
}

func (r *runRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RunResult, error) {
	var run entity.RunResult
	err := r.db.WithContext(ctx).
		Preload("Rejections").
		Preload("Flags").
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &run, err
}

func (r *runRepository) Latest(ctx context.Context) (*entity.RunResult, error) {
	var run entity.RunResult
	err := r.db.WithContext(ctx).
		Order("finished_at DESC").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &run, err
}

func (r *runRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.RunResult, int64, error) {
	var runs []entity.RunResult
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.RunResult{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("finished_at DESC").
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&runs).Error
	return runs, total, err
}

func (r *runRepository) ListAnomalies(ctx context.Context, runID uuid.UUID, params *pagination.PaginationParams) ([]entity.Anomaly, int64, error) {
	var flags []entity.Anomaly
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Anomaly{}).Where("run_id = ?", runID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("seq").
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&flags).Error
	return flags, total, err
}

func (r *runRepository) ListRejections(ctx context.Context, runID uuid.UUID, params *pagination.PaginationParams) ([]entity.Rejection, int64, error) {
	var rejections []entity.Rejection
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Rejection{}).Where("run_id = ?", runID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("order_release_id, line_item_id").
		Offset(params.Offset()).Limit(params.PerPage).
		Find(&rejections).Error
	return rejections, total, err
}
