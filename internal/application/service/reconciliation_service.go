package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/reconcile"
	"github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/sellerdesk/recon-api/pkg/apperror"
	"github.com/sellerdesk/recon-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReconciliationService orchestrates one reconciliation run end to end:
// load the master dataset and the previous snapshot, fold in the new
// batches, classify, calculate, diff, aggregate, detect anomalies, and
// commit everything in one transaction. Runs are mutually exclusive at
// the service level.
type ReconciliationService struct {
	masterRepo   repository.MasterRepository
	snapshotRepo repository.SnapshotRepository
	runRepo      repository.RunRepository
	detector     *reconcile.Detector
	log          *logrus.Logger

	runMu sync.Mutex
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	masterRepo repository.MasterRepository,
	snapshotRepo repository.SnapshotRepository,
	runRepo repository.RunRepository,
	tolerance decimal.Decimal,
	log *logrus.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		masterRepo:   masterRepo,
		snapshotRepo: snapshotRepo,
		runRepo:      runRepo,
		detector:     reconcile.NewDetector(tolerance),
		log:          log,
	}
}

// Run executes one reconciliation run over the given batches. A second
// concurrent call fails fast with ErrRunInProgress; nothing is partially
// applied. On commit failure the previous master state and snapshot
// remain authoritative.
func (s *ReconciliationService) Run(ctx context.Context, batches []entity.Batch) (*entity.RunResult, error) {
	if !s.runMu.TryLock() {
		return nil, apperror.ErrRunInProgress
	}
	defer s.runMu.Unlock()

	if len(batches) == 0 {
		return nil, apperror.NewBadRequestError("At least one batch is required")
	}
	startedAt := time.Now().UTC()

	existing, err := s.masterRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	prev, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Batches merge in ingestion order; merge rules are order-sensitive.
	ordered := make([]entity.Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	engine := reconcile.NewMergeEngine(existing)
	for i := range ordered {
		engine.ApplyBatch(&ordered[i])
	}
	records, rejections, orphans, accepted := engine.Finalize()

	reconcile.ClassifyAll(records)
	reconcile.CalculateAll(records)

	diff := reconcile.Diff(records, prev)
	summaries, totals := reconcile.Aggregate(records)
	flags := s.detector.Detect(records, orphans)

	run := &entity.RunResult{
		ID:            uuid.New(),
		StartedAt:     startedAt,
		FinishedAt:    time.Now().UTC(),
		Accepted:      accepted,
		Rejected:      len(rejections),
		Anomalies:     len(flags),
		StatusChanges: diff.StatusChanges,
		NewlySettled:  diff.NewlySettled,
		NewlyPending:  diff.NewlyPending,
		FirstSeen:     diff.FirstSeen,
		TotalOrders:   totals.TotalOrders,
		TotalProfit:   totals.TotalProfit,
		TotalLoss:     totals.TotalLoss,
		NetProfitLoss: totals.NetProfitLoss,
		PendingValue:  totals.PendingValue,
		Rejections:    rejections,
		Flags:         flags,
	}
	for i := range run.Rejections {
		run.Rejections[i].RunID = run.ID
	}
	for i := range run.Flags {
		run.Flags[i].RunID = run.ID
	}

	state := &repository.RunState{
		Run:       run,
		Records:   records,
		Summaries: summaries,
		Snapshot:  entity.SnapshotOf(records).Entries(),
	}
	if err := s.runRepo.CommitRun(ctx, state); err != nil {
		s.log.WithError(err).Error("run commit failed, previous state kept")
		return nil, &reconcile.SnapshotCommitError{Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"run_id":         run.ID,
		"batches":        len(ordered),
		"accepted":       run.Accepted,
		"rejected":       run.Rejected,
		"anomalies":      run.Anomalies,
		"status_changes": run.StatusChanges,
		"newly_settled":  run.NewlySettled,
		"newly_pending":  run.NewlyPending,
		"first_seen":     run.FirstSeen,
	}).Info("reconciliation run committed")

	return run, nil
}

// GetRun returns one past run with its rejections and anomalies.
func (s *ReconciliationService) GetRun(ctx context.Context, id uuid.UUID) (*entity.RunResult, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperror.NewNotFoundError("Run")
	}
	return run, nil
}

// LatestRun returns the most recent committed run.
func (s *ReconciliationService) LatestRun(ctx context.Context) (*entity.RunResult, error) {
	run, err := s.runRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperror.NewNotFoundError("Run")
	}
	return run, nil
}

// ListRuns returns past runs, newest first.
func (s *ReconciliationService) ListRuns(ctx context.Context, params *pagination.PaginationParams) ([]entity.RunResult, int64, error) {
	params.Validate()
	return s.runRepo.List(ctx, params)
}

// ListAnomalies returns the latest run's anomaly list.
func (s *ReconciliationService) ListAnomalies(ctx context.Context, params *pagination.PaginationParams) ([]entity.Anomaly, int64, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, 0, err
	}
	params.Validate()
	return s.runRepo.ListAnomalies(ctx, run.ID, params)
}

// ListRejections returns the latest run's rejection list.
func (s *ReconciliationService) ListRejections(ctx context.Context, params *pagination.PaginationParams) ([]entity.Rejection, int64, error) {
	run, err := s.LatestRun(ctx)
	if err != nil {
		return nil, 0, err
	}
	params.Validate()
	return s.runRepo.ListRejections(ctx, run.ID, params)
}
