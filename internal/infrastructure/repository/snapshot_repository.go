package repository

import (
	"context"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	domainRepo "github.com/sellerdesk/recon-api/internal/domain/repository"
	"gorm.io/gorm"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new run snapshot repository
func NewSnapshotRepository(db *gorm.DB) domainRepo.SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Load(ctx context.Context) (entity.RunSnapshot, error) {
	var entries []entity.SnapshotEntry
	if err := r.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return nil, err
	}
	snapshot := make(entity.RunSnapshot, len(entries))
	for i := range entries {
		snapshot[entries[i].Key()] = entries[i]
	}
	return snapshot, nil
}
