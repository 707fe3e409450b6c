package reconcile

import (
	"fmt"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Detector scans the finalized master set for inconsistent states. It is
// read-only: findings are data for human review, never errors, and never
// mutate the record they point at.
type Detector struct {
	// Tolerance below which actual+pending may drift from the expected
	// settlement amount without being flagged.
	Tolerance decimal.Decimal
}

// NewDetector builds a detector with the given rounding tolerance.
func NewDetector(tolerance decimal.Decimal) *Detector {
	return &Detector{Tolerance: tolerance}
}

// Detect returns the anomalies of the master set plus any orphaned
// settlements, in deterministic order: record anomalies in master key
// order, orphans appended in arrival order. The caller is expected to
// pass records already sorted by key.
func (d *Detector) Detect(records []entity.MasterRecord, orphans []entity.SettlementRecord) []entity.Anomaly {
	var flags []entity.Anomaly
	add := func(key entity.RecordKey, reason enum.AnomalyReason, details string) {
		flags = append(flags, entity.Anomaly{
			Seq:            len(flags),
			OrderReleaseID: key.OrderReleaseID,
			LineItemID:     key.LineItemID,
			Reason:         reason,
			Details:        details,
		})
	}

	for i := range records {
		m := &records[i]
		key := m.Key()

		if m.Profit.IsNegative() {
			add(key, enum.AnomalyNegativeProfit, "profit "+m.Profit.StringFixed(2))
		}
		if m.Loss.IsNegative() {
			add(key, enum.AnomalyNegativeLoss, "loss "+m.Loss.StringFixed(2))
		}
		if m.Status == enum.LifecycleSettled && !m.HasSettlement {
			add(key, enum.AnomalyMissingSettlement, "settled without settlement fields")
		}
		if m.Status == enum.LifecycleReturned && m.ReturnSettlement.GreaterThan(m.CustomerPaidAmount) {
			add(key, enum.AnomalySettlementExceedsPaid, fmt.Sprintf(
				"return settlement %s exceeds customer paid %s",
				m.ReturnSettlement.StringFixed(2), m.CustomerPaidAmount.StringFixed(2)))
		}
		// Only a reported MRP can violate the pricing invariant; orders
		// ingested without one are not flagged.
		if m.TotalMRP.IsPositive() && m.FinalAmount.Sub(m.Discount).Sub(m.TotalMRP).GreaterThan(d.Tolerance) {
			add(key, enum.AnomalyMRPBelowNetAmount, fmt.Sprintf(
				"mrp %s below final %s minus discount %s",
				m.TotalMRP.StringFixed(2), m.FinalAmount.StringFixed(2), m.Discount.StringFixed(2)))
		}
		if m.HasSettlement {
			drift := m.SettlementActual.Add(m.SettlementPending).Sub(m.SettlementExpected).Abs()
			if drift.GreaterThan(d.Tolerance) {
				add(key, enum.AnomalySettlementAmountMismatch, fmt.Sprintf(
					"actual %s + pending %s differs from expected %s",
					m.SettlementActual.StringFixed(2), m.SettlementPending.StringFixed(2),
					m.SettlementExpected.StringFixed(2)))
			}
		}
		if m.HasReturn && m.HasSettlement && m.SettlementStatus == enum.SettlementCompleted {
			add(key, enum.AnomalyReturnSettlementConflict, "completed settlement on a returned order line")
		}
	}

	for i := range orphans {
		o := &orphans[i]
		key := entity.RecordKey{OrderReleaseID: o.OrderReleaseID, LineItemID: o.LineItemID}
		add(key, enum.AnomalyOrphanSettlement, "settlement without a matching order line")
	}
	return flags
}
