package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/sellerdesk/recon-api/internal/domain/reconcile"
	"github.com/sellerdesk/recon-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportThresholds drive the report's recommendation rules.
type ReportThresholds struct {
	// Recommend monitoring pending settlements when the settlement rate
	// falls below this percentage.
	MinSettlementRate float64
	// Recommend investigating returns when the return rate exceeds this
	// percentage.
	MaxReturnRate float64
	// A delivered, still-unsettled order older than this many days counts
	// as a delayed settlement.
	SettlementDelayDays int
}

// DefaultReportThresholds returns the stock recommendation thresholds.
func DefaultReportThresholds() ReportThresholds {
	return ReportThresholds{
		MinSettlementRate:   80,
		MaxReturnRate:       5,
		SettlementDelayDays: 30,
	}
}

// StatusCount is one status row of the report's order section.
type StatusCount struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Report is the structured reconciliation report plus its text rendering.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalOrders  int           `json:"total_orders"`
	StatusCounts []StatusCount `json:"status_counts"`

	TotalProfit         decimal.Decimal `json:"total_profit"`
	TotalLoss           decimal.Decimal `json:"total_loss"`
	NetProfitLoss       decimal.Decimal `json:"net_profit_loss"`
	GrossMovement       decimal.Decimal `json:"gross_movement"`
	PendingValue        decimal.Decimal `json:"pending_settlement_value"`
	AvgProfitPerSettled decimal.Decimal `json:"avg_profit_per_settled"`
	AvgLossPerReturned  decimal.Decimal `json:"avg_loss_per_returned"`
	SettlementRate      float64         `json:"settlement_rate"`
	ReturnRate          float64         `json:"return_rate"`

	StatusChanges int `json:"status_changes"`
	NewlySettled  int `json:"newly_settled"`
	NewlyPending  int `json:"newly_pending"`
	FirstSeen     int `json:"first_seen"`

	DelayedSettlements int `json:"delayed_settlements"`
	AnomalyCount       int `json:"anomaly_count"`

	Months          []entity.MonthlySummary `json:"months"`
	Recommendations []string                `json:"recommendations"`
}

// ReportService assembles the reconciliation report from the master
// dataset and the latest run. Aggregation is recomputed from scratch on
// every call, so the report never drifts from the master records.
type ReportService struct {
	masterRepo  repository.MasterRepository
	summaryRepo repository.SummaryRepository
	runRepo     repository.RunRepository
	thresholds  ReportThresholds
}

// NewReportService creates a new report service
func NewReportService(
	masterRepo repository.MasterRepository,
	summaryRepo repository.SummaryRepository,
	runRepo repository.RunRepository,
	thresholds ReportThresholds,
) *ReportService {
	return &ReportService{
		masterRepo:  masterRepo,
		summaryRepo: summaryRepo,
		runRepo:     runRepo,
		thresholds:  thresholds,
	}
}

// Build assembles the report for the current master state.
func (s *ReportService) Build(ctx context.Context) (*Report, error) {
	records, err := s.masterRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	months, totals := reconcile.Aggregate(records)

	r := &Report{
		GeneratedAt:         time.Now().UTC(),
		TotalOrders:         totals.TotalOrders,
		TotalProfit:         totals.TotalProfit,
		TotalLoss:           totals.TotalLoss,
		NetProfitLoss:       totals.NetProfitLoss,
		GrossMovement:       totals.TotalProfit.Add(totals.TotalLoss),
		PendingValue:        totals.PendingValue,
		AvgProfitPerSettled: totals.AvgProfitPerSettled,
		AvgLossPerReturned:  totals.AvgLossPerReturned,
		SettlementRate:      totals.SettlementRate,
		ReturnRate:          totals.ReturnRate,
		Months:              months,
		StatusCounts: []StatusCount{
			{Status: enum.LifecycleCancelled.String(), Count: totals.Cancelled, Percentage: percentage(totals.Cancelled, totals.TotalOrders)},
			{Status: enum.LifecycleReturned.String(), Count: totals.Returned, Percentage: percentage(totals.Returned, totals.TotalOrders)},
			{Status: enum.LifecycleSettled.String(), Count: totals.CompletedSettled, Percentage: percentage(totals.CompletedSettled, totals.TotalOrders)},
			{Status: enum.LifecyclePending.String(), Count: totals.CompletedPending, Percentage: percentage(totals.CompletedPending, totals.TotalOrders)},
		},
	}
	r.DelayedSettlements = countDelayed(records, s.thresholds.SettlementDelayDays)

	run, err := s.runRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	negativeSettlements := 0
	if run != nil {
		r.StatusChanges = run.StatusChanges
		r.NewlySettled = run.NewlySettled
		r.NewlyPending = run.NewlyPending
		r.FirstSeen = run.FirstSeen
		r.AnomalyCount = run.Anomalies
		for i := range run.Flags {
			switch run.Flags[i].Reason {
			case enum.AnomalyNegativeProfit, enum.AnomalyNegativeLoss:
				negativeSettlements++
			}
		}
	}

	r.Recommendations = s.recommendations(r, negativeSettlements)
	return r, nil
}

func (s *ReportService) recommendations(r *Report, negativeSettlements int) []string {
	var recs []string
	if r.TotalOrders > 0 && r.SettlementRate < s.thresholds.MinSettlementRate {
		recs = append(recs, "Monitor orders with status 'Completed - Pending Settlement' to ensure they get settled.")
	}
	if r.ReturnRate > s.thresholds.MaxReturnRate {
		recs = append(recs, "Investigate return patterns to reduce return rates.")
	}
	if negativeSettlements > 0 {
		recs = append(recs, "Review orders with negative settlement amounts.")
	}
	if r.DelayedSettlements > 0 {
		recs = append(recs, fmt.Sprintf("Follow up on settlements that are delayed by more than %d days.", s.thresholds.SettlementDelayDays))
	}
	return recs
}

// countDelayed counts delivered, still-pending orders older than the
// delay threshold.
func countDelayed(records []entity.MasterRecord, delayDays int) int {
	cutoff := time.Now().UTC().AddDate(0, 0, -delayDays)
	delayed := 0
	for i := range records {
		m := &records[i]
		if m.Status != enum.LifecyclePending || m.DeliveredOn == nil {
			continue
		}
		if m.DeliveredOn.Before(cutoff) {
			delayed++
		}
	}
	return delayed
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// Text renders the report in its classic plain-text form.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("=== Order Reconciliation Report ===\n\n")

	b.WriteString("=== Order Counts ===\n")
	fmt.Fprintf(&b, "Total Orders: %d\n", r.TotalOrders)
	for _, sc := range r.StatusCounts {
		fmt.Fprintf(&b, "%s Orders: %d (%.2f%%)\n", sc.Status, sc.Count, sc.Percentage)
	}
	b.WriteString("\n")

	b.WriteString("=== Financial Analysis ===\n")
	fmt.Fprintf(&b, "Total Profit from Settled Orders: %s\n", r.TotalProfit.StringFixed(2))
	fmt.Fprintf(&b, "Total Loss from Returns: %s\n", r.TotalLoss.StringFixed(2))
	fmt.Fprintf(&b, "Net Profit/Loss: %s\n", r.NetProfitLoss.StringFixed(2))
	fmt.Fprintf(&b, "Average Profit per Settled Order: %s\n", r.AvgProfitPerSettled.StringFixed(2))
	fmt.Fprintf(&b, "Average Loss per Return: %s\n", r.AvgLossPerReturned.StringFixed(2))
	b.WriteString("\n")

	b.WriteString("=== Settlement Information ===\n")
	fmt.Fprintf(&b, "Settlement Rate: %.2f%%\n", r.SettlementRate)
	fmt.Fprintf(&b, "Potential Settlement Value: %s\n", r.PendingValue.StringFixed(2))
	fmt.Fprintf(&b, "Delayed Settlements: %d\n", r.DelayedSettlements)
	b.WriteString("\n")

	b.WriteString("=== Return Analysis ===\n")
	fmt.Fprintf(&b, "Return Rate: %.2f%%\n", r.ReturnRate)
	b.WriteString("\n")

	b.WriteString("=== Changes in This Run ===\n")
	fmt.Fprintf(&b, "Status Changes in This Run: %d\n", r.StatusChanges)
	fmt.Fprintf(&b, "Newly Settled: %d\n", r.NewlySettled)
	fmt.Fprintf(&b, "Newly Pending: %d\n", r.NewlyPending)
	fmt.Fprintf(&b, "First Seen: %d\n", r.FirstSeen)
	b.WriteString("\n")

	b.WriteString("=== Recommendations ===\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	return b.String()
}
