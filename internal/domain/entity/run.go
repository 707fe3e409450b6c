package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// RunResult is the durable record of one reconciliation run: what was
// accepted, what was rejected, what changed against the previous
// snapshot, and the headline financials.
type RunResult struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Accepted  int `gorm:"default:0" json:"accepted"`
	Rejected  int `gorm:"default:0" json:"rejected"`
	Anomalies int `gorm:"default:0" json:"anomalies"`

	StatusChanges int `gorm:"default:0" json:"status_changes"`
	NewlySettled  int `gorm:"default:0" json:"newly_settled"`
	NewlyPending  int `gorm:"default:0" json:"newly_pending"`
	FirstSeen     int `gorm:"default:0" json:"first_seen"`

	TotalOrders   int             `gorm:"default:0" json:"total_orders"`
	TotalProfit   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_profit"`
	TotalLoss     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_loss"`
	NetProfitLoss decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"net_profit_loss"`
	PendingValue  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"pending_settlement_value"`

	Rejections []Rejection `gorm:"foreignKey:RunID" json:"rejections,omitempty"`
	Flags      []Anomaly   `gorm:"foreignKey:RunID" json:"flags,omitempty"`
}

// TableName returns the table name for the RunResult model.
func (RunResult) TableName() string {
	return "reconciliation_runs"
}

// BeforeCreate generates a UUID before persisting a new run.
func (r *RunResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Rejection records one skipped input record. A run never drops data
// without a corresponding rejection entry.
type Rejection struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RunID          uuid.UUID `gorm:"type:uuid;index" json:"run_id"`
	OrderReleaseID string    `gorm:"size:64" json:"order_release_id"`
	LineItemID     string    `gorm:"size:64" json:"line_item_id,omitempty"`
	RecordKind     string    `gorm:"size:16" json:"record_kind"`
	Reason         string    `gorm:"size:64" json:"reason"`
	Detail         string    `gorm:"size:255" json:"detail,omitempty"`
}

// TableName returns the table name for the Rejection model.
func (Rejection) TableName() string {
	return "run_rejections"
}

// BeforeCreate generates a UUID before persisting a new rejection.
func (r *Rejection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Anomaly is a data inconsistency flagged for human review. It never
// blocks a run and never mutates the master record it points at.
type Anomaly struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	RunID          uuid.UUID          `gorm:"type:uuid;index" json:"run_id"`
	Seq            int                `gorm:"default:0" json:"seq"`
	OrderReleaseID string             `gorm:"size:64" json:"order_release_id"`
	LineItemID     string             `gorm:"size:64" json:"line_item_id,omitempty"`
	Reason         enum.AnomalyReason `gorm:"size:64" json:"reason"`
	Details        string             `gorm:"size:255" json:"details,omitempty"`
}

// TableName returns the table name for the Anomaly model.
func (Anomaly) TableName() string {
	return "run_anomalies"
}

// BeforeCreate generates a UUID before persisting a new anomaly.
func (a *Anomaly) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
