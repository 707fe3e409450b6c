package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
)

// MasterRecord is the reconciled, merged view of one order line plus its
// latest return and settlement. The master merge engine is the only
// writer; every other component reads it.
//
// The *BatchSeq fields remember which ingestion ordinal last wrote each
// section so that last-write-wins stays deterministic when a record
// carries no usable timestamp of its own.
type MasterRecord struct {
	OrderReleaseID string `gorm:"primaryKey;size:64" json:"order_release_id"`
	LineItemID     string `gorm:"primaryKey;size:64" json:"line_item_id"`
	MonthKey       string `gorm:"size:7;index" json:"month_key"`

	// Order section.
	OrderStatus    string           `gorm:"size:32" json:"order_status"`
	CreatedOn      time.Time        `json:"created_on"`
	DeliveredOn    *time.Time       `json:"delivered_on,omitempty"`
	FinalAmount    decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"final_amount"`
	TotalMRP       decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"total_mrp"`
	Discount       decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"discount"`
	ShippingAmount decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"shipping_amount"`
	PaymentType    enum.PaymentType `gorm:"size:16" json:"payment_type"`
	City           string           `gorm:"size:64" json:"city,omitempty"`
	State          string           `gorm:"size:64" json:"state,omitempty"`
	Zipcode        string           `gorm:"size:16" json:"zipcode,omitempty"`
	OrderBatchSeq  int              `json:"-"`

	// Return section. At most one active return; later returns supersede.
	HasReturn            bool            `gorm:"index" json:"has_return"`
	ReturnType           enum.ReturnType `json:"return_type,omitempty"`
	ReturnDate           *time.Time      `json:"return_date,omitempty"`
	ReturnPackingDate    *time.Time      `json:"return_packing_date,omitempty"`
	ReturnDeliveryDate   *time.Time      `json:"return_delivery_date,omitempty"`
	CustomerPaidAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"customer_paid_amount"`
	ReturnSettlement     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"return_settlement"`
	ReturnPrepaidPortion decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"return_prepaid_portion"`
	ReturnPostpaidSplit  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"return_postpaid_portion"`
	ReturnBatchSeq       int             `json:"-"`

	// Settlement section.
	HasSettlement       bool                  `gorm:"index" json:"has_settlement"`
	SettlementExpected  decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"settlement_expected"`
	SettlementActual    decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"settlement_actual"`
	SettlementPending   decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"settlement_pending"`
	CommissionDeduction decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"commission_deduction"`
	LogisticsDeduction  decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"logistics_deduction"`
	SettlementPrepaid   decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"settlement_prepaid"`
	SettlementPostpaid  decimal.Decimal       `gorm:"type:decimal(20,4);default:0" json:"settlement_postpaid"`
	SettlementStatus    enum.SettlementStatus `gorm:"default:0" json:"settlement_status"`
	SettlementDate      *time.Time            `json:"settlement_date,omitempty"`
	SettlementBatchSeq  int                   `json:"-"`

	// Derived by the classifier and financial calculator.
	Status              enum.LifecycleStatus `gorm:"default:0;index" json:"status"`
	IsSettled           bool                 `gorm:"index" json:"is_settled"`
	Profit              decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"profit"`
	Loss                decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"loss"`
	PotentialSettlement decimal.Decimal      `gorm:"type:decimal(20,4);default:0" json:"potential_settlement"`
}

// TableName returns the table name for the MasterRecord model.
func (MasterRecord) TableName() string {
	return "master_records"
}

// Key returns the composite identity of the record.
func (m *MasterRecord) Key() RecordKey {
	return RecordKey{OrderReleaseID: m.OrderReleaseID, LineItemID: m.LineItemID}
}

// MonthKeyOf derives the MM-YYYY aggregation key from a date.
func MonthKeyOf(t time.Time) string {
	return t.Format("01-2006")
}
