package reconcile

import (
	"reflect"
	"testing"
	"time"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func testOrder(release, line string, created time.Time, amount string) entity.OrderLine {
	return entity.OrderLine{
		OrderReleaseID: release,
		LineItemID:     line,
		OrderStatus:    "DELIVERED",
		CreatedOn:      created,
		FinalAmount:    decimal.RequireFromString(amount),
	}
}

func mergeBatches(existing []entity.MasterRecord, batches ...*entity.Batch) ([]entity.MasterRecord, []entity.Rejection, []entity.SettlementRecord, int) {
	e := NewMergeEngine(existing)
	for _, b := range batches {
		e.ApplyBatch(b)
	}
	return e.Finalize()
}

func TestMerge_SameBatchTwiceIsIdempotent(t *testing.T) {
	batch := &entity.Batch{
		MonthKey: "06-2024",
		Orders: []entity.OrderLine{
			testOrder("R1", "L1", day(2024, 6, 1), "500"),
			testOrder("R2", "L1", day(2024, 6, 2), "750"),
		},
		Returns: []entity.ReturnRecord{
			{
				OrderReleaseID:     "R2",
				ReturnDate:         day(2024, 6, 10),
				CustomerPaidAmount: decimal.RequireFromString("750"),
				SettlementAmount:   decimal.RequireFromString("700"),
			},
		},
		Settlements: []entity.SettlementRecord{
			{
				OrderReleaseID: "R1",
				ExpectedAmount: decimal.RequireFromString("450"),
				ActualAmount:   decimal.RequireFromString("450"),
				Status:         enum.SettlementCompleted,
				SettlementDate: dayPtr(2024, 6, 20),
			},
		},
	}

	first, rej1, _, _ := mergeBatches(nil, batch)
	if len(rej1) != 0 {
		t.Fatalf("unexpected rejections on first pass: %+v", rej1)
	}

	second, rej2, _, _ := mergeBatches(first, batch)
	if len(rej2) != 0 {
		t.Fatalf("unexpected rejections on replay: %+v", rej2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("replaying the same batch changed the master set:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestMerge_LastWriteWinsByTimestamp(t *testing.T) {
	newer := testOrder("R1", "L1", day(2024, 6, 5), "600")
	older := testOrder("R1", "L1", day(2024, 6, 1), "500")

	// Newer record arrives first; the older duplicate must not win even
	// though it lands in a later batch.
	records, rejections, _, accepted := mergeBatches(nil,
		&entity.Batch{MonthKey: "06-2024", Sequence: 1, Orders: []entity.OrderLine{newer}},
		&entity.Batch{MonthKey: "06-2024", Sequence: 2, Orders: []entity.OrderLine{older}},
	)
	if len(rejections) != 0 {
		t.Fatalf("superseded duplicates must not be rejected: %+v", rejections)
	}
	if accepted != 2 {
		t.Fatalf("expected 2 accepted, got %d", accepted)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 master record, got %d", len(records))
	}
	if !records[0].FinalAmount.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("expected the newer amount 600 to win, got %s", records[0].FinalAmount)
	}
}

func TestMerge_EqualTimestampFallsBackToBatchOrder(t *testing.T) {
	a := testOrder("R1", "L1", day(2024, 6, 1), "100")
	b := testOrder("R1", "L1", day(2024, 6, 1), "200")

	records, _, _, _ := mergeBatches(nil,
		&entity.Batch{Sequence: 1, Orders: []entity.OrderLine{a}},
		&entity.Batch{Sequence: 2, Orders: []entity.OrderLine{b}},
	)
	if !records[0].FinalAmount.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("expected the later batch to win the tie, got %s", records[0].FinalAmount)
	}
}

func TestMerge_ReturnDoesNotClearSettlementFields(t *testing.T) {
	records, rejections, _, _ := mergeBatches(nil,
		&entity.Batch{Sequence: 1,
			Orders: []entity.OrderLine{testOrder("R1", "L1", day(2024, 6, 1), "500")},
			Settlements: []entity.SettlementRecord{{
				OrderReleaseID: "R1",
				ExpectedAmount: decimal.RequireFromString("450"),
				ActualAmount:   decimal.RequireFromString("450"),
				Status:         enum.SettlementCompleted,
				SettlementDate: dayPtr(2024, 6, 15),
			}},
		},
		&entity.Batch{Sequence: 2,
			Returns: []entity.ReturnRecord{{
				OrderReleaseID:     "R1",
				ReturnDate:         day(2024, 7, 1),
				CustomerPaidAmount: decimal.RequireFromString("500"),
			}},
		},
	)
	if len(rejections) != 0 {
		t.Fatalf("unexpected rejections: %+v", rejections)
	}
	m := records[0]
	if !m.HasReturn {
		t.Fatal("expected the return to attach")
	}
	if !m.HasSettlement || !m.SettlementActual.Equal(decimal.RequireFromString("450")) {
		t.Fatal("return must not erase previously merged settlement fields")
	}
}

func TestMerge_SettlementDowngradeRejectedWithoutLaterDate(t *testing.T) {
	completed := entity.SettlementRecord{
		OrderReleaseID: "R1",
		ActualAmount:   decimal.RequireFromString("450"),
		ExpectedAmount: decimal.RequireFromString("450"),
		Status:         enum.SettlementCompleted,
		SettlementDate: dayPtr(2024, 6, 20),
	}
	replayedPending := entity.SettlementRecord{
		OrderReleaseID: "R1",
		ExpectedAmount: decimal.RequireFromString("450"),
		PendingAmount:  decimal.RequireFromString("450"),
		Status:         enum.SettlementPending,
		SettlementDate: dayPtr(2024, 6, 10),
	}

	records, rejections, _, _ := mergeBatches(nil,
		&entity.Batch{Sequence: 1,
			Orders:      []entity.OrderLine{testOrder("R1", "L1", day(2024, 6, 1), "500")},
			Settlements: []entity.SettlementRecord{completed},
		},
		&entity.Batch{Sequence: 2, Settlements: []entity.SettlementRecord{replayedPending}},
	)
	if len(rejections) != 1 {
		t.Fatalf("expected 1 rejection, got %+v", rejections)
	}
	if rejections[0].Reason != string(CodeOutOfOrderReplay) {
		t.Fatalf("expected %s, got %s", CodeOutOfOrderReplay, rejections[0].Reason)
	}
	if records[0].SettlementStatus != enum.SettlementCompleted {
		t.Fatalf("stored status must survive the replay, got %s", records[0].SettlementStatus)
	}
}

func TestMerge_SettlementDowngradeAllowedWithStrictlyLaterDate(t *testing.T) {
	records, rejections, _, _ := mergeBatches(nil,
		&entity.Batch{Sequence: 1,
			Orders: []entity.OrderLine{testOrder("R1", "L1", day(2024, 6, 1), "500")},
			Settlements: []entity.SettlementRecord{{
				OrderReleaseID: "R1",
				ActualAmount:   decimal.RequireFromString("450"),
				ExpectedAmount: decimal.RequireFromString("450"),
				Status:         enum.SettlementCompleted,
				SettlementDate: dayPtr(2024, 6, 20),
			}},
		},
		&entity.Batch{Sequence: 2, Settlements: []entity.SettlementRecord{{
			OrderReleaseID: "R1",
			ExpectedAmount: decimal.RequireFromString("450"),
			PendingAmount:  decimal.RequireFromString("450"),
			Status:         enum.SettlementPartial,
			SettlementDate: dayPtr(2024, 7, 5),
		}}},
	)
	if len(rejections) != 0 {
		t.Fatalf("a dated correction must merge, got rejections %+v", rejections)
	}
	if records[0].SettlementStatus != enum.SettlementPartial {
		t.Fatalf("expected the later-dated partial status to win, got %s", records[0].SettlementStatus)
	}
}

func TestMerge_ReturnWithoutOrderIsRejected(t *testing.T) {
	_, rejections, _, _ := mergeBatches(nil,
		&entity.Batch{Returns: []entity.ReturnRecord{{
			OrderReleaseID: "R9",
			ReturnDate:     day(2024, 6, 1),
		}}},
	)
	if len(rejections) != 1 || rejections[0].Reason != string(CodeAmbiguousJoin) {
		t.Fatalf("expected an %s rejection, got %+v", CodeAmbiguousJoin, rejections)
	}
}

func TestMerge_OrphanSettlementIsReportedNotRejected(t *testing.T) {
	records, rejections, orphans, _ := mergeBatches(nil,
		&entity.Batch{Settlements: []entity.SettlementRecord{{
			OrderReleaseID: "R9",
			ExpectedAmount: decimal.RequireFromString("100"),
		}}},
	)
	if len(rejections) != 0 {
		t.Fatalf("orphans must not be rejected: %+v", rejections)
	}
	if len(records) != 0 {
		t.Fatalf("orphans must not materialize master records: %+v", records)
	}
	if len(orphans) != 1 || orphans[0].OrderReleaseID != "R9" {
		t.Fatalf("expected 1 orphan for R9, got %+v", orphans)
	}
}

func TestMerge_SettlementBeforeItsOrderJoinsOnFinalize(t *testing.T) {
	records, rejections, orphans, _ := mergeBatches(nil,
		&entity.Batch{Sequence: 1, Settlements: []entity.SettlementRecord{{
			OrderReleaseID: "R1",
			ExpectedAmount: decimal.RequireFromString("450"),
			ActualAmount:   decimal.RequireFromString("450"),
			Status:         enum.SettlementCompleted,
			SettlementDate: dayPtr(2024, 6, 20),
		}}},
		&entity.Batch{Sequence: 2,
			Orders: []entity.OrderLine{testOrder("R1", "L1", day(2024, 6, 1), "500")},
		},
	)
	if len(rejections) != 0 {
		t.Fatalf("unexpected rejections: %+v", rejections)
	}
	if len(orphans) != 0 {
		t.Fatalf("a settlement whose order arrives later in the run must join, got orphans %+v", orphans)
	}
	m := records[0]
	if !m.HasSettlement || m.SettlementStatus != enum.SettlementCompleted {
		t.Fatalf("expected the held-aside settlement to attach, got %+v", m)
	}
	if !m.SettlementActual.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("expected actual 450, got %s", m.SettlementActual)
	}
}

func TestMerge_MalformedOrdersAreRejected(t *testing.T) {
	noKey := entity.OrderLine{OrderReleaseID: "R1", CreatedOn: day(2024, 6, 1)}
	noDate := entity.OrderLine{OrderReleaseID: "R2", LineItemID: "L1"}
	negative := testOrder("R3", "L1", day(2024, 6, 1), "-5")

	records, rejections, _, accepted := mergeBatches(nil,
		&entity.Batch{Orders: []entity.OrderLine{noKey, noDate, negative}},
	)
	if accepted != 0 || len(records) != 0 {
		t.Fatalf("malformed orders must not merge: accepted=%d records=%d", accepted, len(records))
	}
	if len(rejections) != 3 {
		t.Fatalf("expected 3 rejections, got %+v", rejections)
	}
	for _, r := range rejections {
		if r.Reason != string(CodeMalformedRecord) {
			t.Fatalf("expected %s, got %s", CodeMalformedRecord, r.Reason)
		}
	}
}

func TestMerge_LaterReturnSupersedesEarlier(t *testing.T) {
	records, _, _, _ := mergeBatches(nil,
		&entity.Batch{Sequence: 1,
			Orders: []entity.OrderLine{testOrder("R1", "L1", day(2024, 6, 1), "500")},
			Returns: []entity.ReturnRecord{{
				OrderReleaseID: "R1",
				ReturnDate:     day(2024, 6, 10),
				ReturnType:     enum.ReturnTypeExchange,
			}},
		},
		&entity.Batch{Sequence: 2, Returns: []entity.ReturnRecord{{
			OrderReleaseID: "R1",
			ReturnDate:     day(2024, 6, 20),
			ReturnType:     enum.ReturnTypeRefund,
		}}},
	)
	m := records[0]
	if m.ReturnType != enum.ReturnTypeRefund {
		t.Fatalf("expected the later return to supersede, got %s", m.ReturnType)
	}
	if !m.ReturnDate.Equal(day(2024, 6, 20)) {
		t.Fatalf("expected return date 2024-06-20, got %s", m.ReturnDate)
	}
}
