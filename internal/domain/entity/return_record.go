package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
)

// ReturnRecord is a return or exchange filed against an order line.
// LineItemID may be empty on the wire; the identity resolver then joins
// on OrderReleaseID alone, which must match exactly one known line item.
type ReturnRecord struct {
	OrderReleaseID     string          `json:"order_release_id"`
	LineItemID         string          `json:"line_item_id,omitempty"`
	ReturnType         enum.ReturnType `json:"return_type"`
	ReturnDate         time.Time       `json:"return_date"`
	PackingDate        *time.Time      `json:"packing_date,omitempty"`
	DeliveryDate       *time.Time      `json:"delivery_date,omitempty"`
	CustomerPaidAmount decimal.Decimal `json:"customer_paid_amount"`
	SettlementAmount   decimal.Decimal `json:"settlement_amount"`
	PrepaidPortion     decimal.Decimal `json:"prepaid_portion"`
	PostpaidPortion    decimal.Decimal `json:"postpaid_portion"`
}
