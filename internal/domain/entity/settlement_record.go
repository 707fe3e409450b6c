package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
)

// SettlementRecord is a marketplace payout statement line against an
// order line (or against its return, when the order was returned).
// Invariant on the wire: ActualAmount + PendingAmount == ExpectedAmount
// within tolerance; a violation is flagged as an anomaly, never rejected.
type SettlementRecord struct {
	OrderReleaseID      string                `json:"order_release_id"`
	LineItemID          string                `json:"line_item_id,omitempty"`
	ExpectedAmount      decimal.Decimal       `json:"expected_amount"`
	ActualAmount        decimal.Decimal       `json:"actual_amount"`
	PendingAmount       decimal.Decimal       `json:"pending_amount"`
	CommissionDeduction decimal.Decimal       `json:"commission_deduction"`
	LogisticsDeduction  decimal.Decimal       `json:"logistics_deduction"`
	PrepaidPayment      decimal.Decimal       `json:"prepaid_payment"`
	PostpaidPayment     decimal.Decimal       `json:"postpaid_payment"`
	Status              enum.SettlementStatus `json:"status"`
	SettlementDate      *time.Time            `json:"settlement_date,omitempty"`
}
