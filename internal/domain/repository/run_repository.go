package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/pkg/pagination"
)

// RunState is everything one reconciliation run commits: the new master
// dataset, the recomputed summaries, the fresh snapshot and the run
// result itself (with its rejections and anomalies attached).
type RunState struct {
	Run       *entity.RunResult
	Records   []entity.MasterRecord
	Summaries []entity.MonthlySummary
	Snapshot  []entity.SnapshotEntry
}

// RunRepository defines the interface for reconciliation run persistence
type RunRepository interface {
	// CommitRun atomically replaces the master dataset, summaries and
	// snapshot and records the run. Either everything lands or nothing
	// does; on failure the previous state remains authoritative.
	CommitRun(ctx context.Context, state *RunState) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RunResult, error)
	Latest(ctx context.Context) (*entity.RunResult, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.RunResult, int64, error)
	ListAnomalies(ctx context.Context, runID uuid.UUID, params *pagination.PaginationParams) ([]entity.Anomaly, int64, error)
	ListRejections(ctx context.Context, runID uuid.UUID, params *pagination.PaginationParams) ([]entity.Rejection, int64, error)
}
