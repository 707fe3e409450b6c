package entity

import "github.com/shopspring/decimal"

// MonthlySummary is the aggregate view of one month's master records.
// It is derived, never mutated by ingestion: the aggregator recomputes
// every summary from scratch on each run.
type MonthlySummary struct {
	MonthKey         string          `gorm:"primaryKey;size:7" json:"month_key"`
	TotalOrders      int             `gorm:"default:0" json:"total_orders"`
	Cancelled        int             `gorm:"default:0" json:"cancelled"`
	Returned         int             `gorm:"default:0" json:"returned"`
	CompletedSettled int             `gorm:"default:0" json:"completed_settled"`
	CompletedPending int             `gorm:"default:0" json:"completed_pending"`
	TotalProfit      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_profit"`
	TotalLoss        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_loss"`
	NetProfitLoss    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"net_profit_loss"`
	PendingValue     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"pending_settlement_value"`
	SettlementRate   float64         `gorm:"default:0" json:"settlement_rate"`
	ReturnRate       float64         `gorm:"default:0" json:"return_rate"`
}

// TableName returns the table name for the MonthlySummary model.
func (MonthlySummary) TableName() string {
	return "monthly_summaries"
}
