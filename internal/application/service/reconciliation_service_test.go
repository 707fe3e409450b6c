package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/sellerdesk/recon-api/internal/domain/reconcile"
	"github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/sellerdesk/recon-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// memStore is a shared in-memory backend for the repository fakes.
type memStore struct {
	records    []entity.MasterRecord
	snapshot   entity.RunSnapshot
	summaries  []entity.MonthlySummary
	runs       []entity.RunResult
	failCommit bool
}

type memMasterRepo struct{ store *memStore }

func (r *memMasterRepo) LoadAll(ctx context.Context) ([]entity.MasterRecord, error) {
	out := make([]entity.MasterRecord, len(r.store.records))
	copy(out, r.store.records)
	return out, nil
}

func (r *memMasterRepo) GetByKey(ctx context.Context, key entity.RecordKey) (*entity.MasterRecord, error) {
	for i := range r.store.records {
		if r.store.records[i].Key() == key {
			rec := r.store.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *memMasterRepo) List(ctx context.Context, params *repository.MasterFilterParams) ([]entity.MasterRecord, int64, error) {
	out := make([]entity.MasterRecord, len(r.store.records))
	copy(out, r.store.records)
	return out, int64(len(out)), nil
}

type memSnapshotRepo struct{ store *memStore }

func (r *memSnapshotRepo) Load(ctx context.Context) (entity.RunSnapshot, error) {
	snap := make(entity.RunSnapshot, len(r.store.snapshot))
	for k, v := range r.store.snapshot {
		snap[k] = v
	}
	return snap, nil
}

type memRunRepo struct{ store *memStore }

func (r *memRunRepo) CommitRun(ctx context.Context, state *repository.RunState) error {
	if r.store.failCommit {
		return errors.New("simulated storage failure")
	}
	r.store.records = append([]entity.MasterRecord(nil), state.Records...)
	r.store.summaries = append([]entity.MonthlySummary(nil), state.Summaries...)
	snap := make(entity.RunSnapshot, len(state.Snapshot))
	for _, e := range state.Snapshot {
		snap[e.Key()] = e
	}
	r.store.snapshot = snap
	r.store.runs = append(r.store.runs, *state.Run)
	return nil
}

func (r *memRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.RunResult, error) {
	for i := range r.store.runs {
		if r.store.runs[i].ID == id {
			run := r.store.runs[i]
			return &run, nil
		}
	}
	return nil, nil
}

func (r *memRunRepo) Latest(ctx context.Context) (*entity.RunResult, error) {
	if len(r.store.runs) == 0 {
		return nil, nil
	}
	run := r.store.runs[len(r.store.runs)-1]
	return &run, nil
}

func (r *memRunRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.RunResult, int64, error) {
	out := make([]entity.RunResult, len(r.store.runs))
	copy(out, r.store.runs)
	return out, int64(len(out)), nil
}

func (r *memRunRepo) ListAnomalies(ctx context.Context, runID uuid.UUID, params *pagination.PaginationParams) ([]entity.Anomaly, int64, error) {
	run, _ := r.GetByID(ctx, runID)
	if run == nil {
		return nil, 0, nil
	}
	return run.Flags, int64(len(run.Flags)), nil
}

func (r *memRunRepo) ListRejections(ctx context.Context, runID uuid.UUID, params *pagination.PaginationParams) ([]entity.Rejection, int64, error) {
	run, _ := r.GetByID(ctx, runID)
	if run == nil {
		return nil, 0, nil
	}
	return run.Rejections, int64(len(run.Rejections)), nil
}

func newTestService(store *memStore) *ReconciliationService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewReconciliationService(
		&memMasterRepo{store: store},
		&memSnapshotRepo{store: store},
		&memRunRepo{store: store},
		decimal.RequireFromString("0.01"),
		log,
	)
}

func fixtureBatches() []entity.Batch {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	returned := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)
	settled := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

	return []entity.Batch{{
		MonthKey: "06-2024",
		Sequence: 1,
		Orders: []entity.OrderLine{
			{OrderReleaseID: "R1", LineItemID: "L1", OrderStatus: "DELIVERED", CreatedOn: created, FinalAmount: decimal.RequireFromString("500")},
			{OrderReleaseID: "R2", LineItemID: "L1", OrderStatus: "DELIVERED", CreatedOn: created, FinalAmount: decimal.RequireFromString("750")},
			{OrderReleaseID: "R3", LineItemID: "L1", OrderStatus: entity.OrderStatusCancelled, CreatedOn: created, FinalAmount: decimal.RequireFromString("100")},
			{OrderReleaseID: "R4", LineItemID: "L1", OrderStatus: "DELIVERED", CreatedOn: created, FinalAmount: decimal.RequireFromString("900")},
		},
		Returns: []entity.ReturnRecord{
			{OrderReleaseID: "R2", ReturnDate: returned, CustomerPaidAmount: decimal.RequireFromString("750"), SettlementAmount: decimal.RequireFromString("700")},
		},
		Settlements: []entity.SettlementRecord{
			{OrderReleaseID: "R1", ExpectedAmount: decimal.RequireFromString("450"), ActualAmount: decimal.RequireFromString("450"), CommissionDeduction: decimal.RequireFromString("30"), LogisticsDeduction: decimal.RequireFromString("20"), Status: enum.SettlementCompleted, SettlementDate: &settled},
		},
	}}
}

func TestRun_EndToEnd(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	run, err := svc.Run(context.Background(), fixtureBatches())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if run.TotalOrders != 4 {
		t.Fatalf("expected 4 total orders, got %d", run.TotalOrders)
	}
	if run.Rejected != 0 {
		t.Fatalf("expected no rejections, got %d", run.Rejected)
	}
	if run.FirstSeen != 4 {
		t.Fatalf("every record is a first observation, got first_seen=%d", run.FirstSeen)
	}
	if run.StatusChanges != 0 || run.NewlySettled != 0 || run.NewlyPending != 0 {
		t.Fatalf("first observations must not count as changes: %+v", run)
	}

	// R1 settled: 500 - (30 + 20). R2 returned: 750 - 700.
	if !run.TotalProfit.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("expected profit 450, got %s", run.TotalProfit)
	}
	if !run.TotalLoss.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("expected loss 50, got %s", run.TotalLoss)
	}
	if !run.NetProfitLoss.Equal(decimal.RequireFromString("400")) {
		t.Fatalf("expected net 400, got %s", run.NetProfitLoss)
	}
	// R4 pending with no settlement: potential = final amount.
	if !run.PendingValue.Equal(decimal.RequireFromString("900")) {
		t.Fatalf("expected pending value 900, got %s", run.PendingValue)
	}

	if len(store.records) != 4 || len(store.summaries) != 1 {
		t.Fatalf("commit did not land: %d records, %d summaries", len(store.records), len(store.summaries))
	}
}

func TestRun_SecondIdenticalRunReportsZeroChanges(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	if _, err := svc.Run(context.Background(), fixtureBatches()); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := svc.Run(context.Background(), fixtureBatches())
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}

	if second.StatusChanges != 0 || second.NewlySettled != 0 || second.NewlyPending != 0 || second.FirstSeen != 0 {
		t.Fatalf("replaying identical inputs must report zero changes, got %+v", second)
	}
	if second.TotalOrders != 4 {
		t.Fatalf("master set must be unchanged, got %d orders", second.TotalOrders)
	}
}

func TestRun_NewSettlementCountsAsNewlySettled(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	if _, err := svc.Run(context.Background(), fixtureBatches()); err != nil {
		t.Fatalf("first run error: %v", err)
	}

	settled := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	followUp := []entity.Batch{{
		MonthKey: "07-2024",
		Sequence: 2,
		Settlements: []entity.SettlementRecord{
			{OrderReleaseID: "R4", ExpectedAmount: decimal.RequireFromString("850"), ActualAmount: decimal.RequireFromString("850"), Status: enum.SettlementCompleted, SettlementDate: &settled},
		},
	}}
	run, err := svc.Run(context.Background(), followUp)
	if err != nil {
		t.Fatalf("follow-up run error: %v", err)
	}

	if run.NewlySettled != 1 {
		t.Fatalf("expected 1 newly settled, got %d", run.NewlySettled)
	}
	if run.StatusChanges != 1 {
		t.Fatalf("expected 1 status change, got %d", run.StatusChanges)
	}
}

func TestRun_CommitFailureLeavesPriorState(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	if _, err := svc.Run(context.Background(), fixtureBatches()); err != nil {
		t.Fatalf("seed run error: %v", err)
	}
	priorRecords := len(store.records)
	priorRuns := len(store.runs)

	store.failCommit = true
	_, err := svc.Run(context.Background(), fixtureBatches())
	if err == nil {
		t.Fatal("expected a commit error")
	}
	var commitErr *reconcile.SnapshotCommitError
	if !errors.As(err, &commitErr) {
		t.Fatalf("expected SnapshotCommitError, got %T: %v", err, err)
	}
	if len(store.records) != priorRecords || len(store.runs) != priorRuns {
		t.Fatal("failed commit must not touch prior state")
	}
}

func TestRun_RejectionsAndAnomaliesAreRecorded(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store)

	batches := fixtureBatches()
	// A return that matches nothing and a settlement that matches nothing.
	batches[0].Returns = append(batches[0].Returns, entity.ReturnRecord{
		OrderReleaseID: "R999",
		ReturnDate:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	batches[0].Settlements = append(batches[0].Settlements, entity.SettlementRecord{
		OrderReleaseID: "R998",
		ExpectedAmount: decimal.RequireFromString("10"),
	})

	run, err := svc.Run(context.Background(), batches)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if run.Rejected != 1 {
		t.Fatalf("expected 1 rejection for the orphan return, got %d", run.Rejected)
	}
	orphanFlagged := false
	for _, f := range run.Flags {
		if f.Reason == enum.AnomalyOrphanSettlement && f.OrderReleaseID == "R998" {
			orphanFlagged = true
		}
	}
	if !orphanFlagged {
		t.Fatalf("expected an orphan settlement anomaly, got %+v", run.Flags)
	}
}

func TestRun_EmptyBatchesRejected(t *testing.T) {
	svc := newTestService(&memStore{})
	if _, err := svc.Run(context.Background(), nil); err == nil {
		t.Fatal("expected an error for an empty batch list")
	}
}
