package reconcile

import (
	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
)

// Classify maps a merged master record to its lifecycle status. The
// precedence is fixed: cancellation beats everything, a return beats a
// settlement (a returned order is never counted as settled even when a
// settlement row exists for it), and only a completed settlement with a
// positive payout counts as settled.
func Classify(m *entity.MasterRecord) enum.LifecycleStatus {
	switch {
	case m.OrderStatus == entity.OrderStatusCancelled:
		return enum.LifecycleCancelled
	case m.HasReturn:
		return enum.LifecycleReturned
	case m.HasSettlement && m.SettlementStatus == enum.SettlementCompleted && m.SettlementActual.IsPositive():
		return enum.LifecycleSettled
	default:
		return enum.LifecyclePending
	}
}

// ClassifyAll stamps Status and IsSettled on every record in place.
func ClassifyAll(records []entity.MasterRecord) {
	for i := range records {
		m := &records[i]
		m.Status = Classify(m)
		m.IsSettled = m.Status == enum.LifecycleSettled
	}
}
