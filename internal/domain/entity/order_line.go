package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
)

// RecordKey is the canonical identity of one order line item across all
// input kinds. Every master record, snapshot entry, rejection and anomaly
// is keyed by it.
type RecordKey struct {
	OrderReleaseID string `json:"order_release_id"`
	LineItemID     string `json:"line_item_id"`
}

func (k RecordKey) String() string {
	return k.OrderReleaseID + "/" + k.LineItemID
}

// OrderLine is one sellable unit of a placed order as delivered by the
// ingestion collaborator. It is an engine input, not a persisted row;
// the merged view lives in MasterRecord.
type OrderLine struct {
	OrderReleaseID string           `json:"order_release_id"`
	LineItemID     string           `json:"line_item_id"`
	OrderStatus    string           `json:"order_status"`
	CreatedOn      time.Time        `json:"created_on"`
	DeliveredOn    *time.Time       `json:"delivered_on,omitempty"`
	FinalAmount    decimal.Decimal  `json:"final_amount"`
	TotalMRP       decimal.Decimal  `json:"total_mrp"`
	Discount       decimal.Decimal  `json:"discount"`
	ShippingAmount decimal.Decimal  `json:"shipping_amount"`
	PaymentType    enum.PaymentType `json:"payment_type"`
	City           string           `json:"city,omitempty"`
	State          string           `json:"state,omitempty"`
	Zipcode        string           `json:"zipcode,omitempty"`
}

// Key returns the composite identity of the order line.
func (o *OrderLine) Key() RecordKey {
	return RecordKey{OrderReleaseID: o.OrderReleaseID, LineItemID: o.LineItemID}
}

// OrderStatusCancelled is the raw marketplace status that marks a
// cancelled order line.
const OrderStatusCancelled = "CANCELLED"
