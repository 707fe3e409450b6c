package repository

import (
	"context"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
)

// SnapshotRepository defines the interface for run snapshot data operations.
// The snapshot is only ever written as part of a run commit; see
// RunRepository.CommitRun.
type SnapshotRepository interface {
	Load(ctx context.Context) (entity.RunSnapshot, error)
}
