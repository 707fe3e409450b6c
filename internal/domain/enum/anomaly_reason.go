package enum

// AnomalyReason is the machine-readable code attached to a flagged
// master record. Anomalies are data, not errors: they never block a run.
type AnomalyReason string

const (
	AnomalyNegativeProfit           AnomalyReason = "NEGATIVE_PROFIT"
	AnomalyNegativeLoss             AnomalyReason = "NEGATIVE_LOSS"
	AnomalyMissingSettlement        AnomalyReason = "MISSING_SETTLEMENT"
	AnomalySettlementExceedsPaid    AnomalyReason = "SETTLEMENT_EXCEEDS_PAID"
	AnomalyOrphanSettlement         AnomalyReason = "ORPHAN_SETTLEMENT"
	AnomalySettlementAmountMismatch AnomalyReason = "SETTLEMENT_AMOUNT_MISMATCH"
	AnomalyMRPBelowNetAmount        AnomalyReason = "MRP_BELOW_NET_AMOUNT"
	AnomalyReturnSettlementConflict AnomalyReason = "RETURN_SETTLEMENT_CONFLICT"
)
