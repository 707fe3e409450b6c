package reconcile

import (
	"sort"
	"time"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Totals is the dataset-wide rollup of one run, the numbers at the head
// of the reconciliation report.
type Totals struct {
	TotalOrders      int
	Cancelled        int
	Returned         int
	CompletedSettled int
	CompletedPending int

	TotalProfit   decimal.Decimal
	TotalLoss     decimal.Decimal
	NetProfitLoss decimal.Decimal
	PendingValue  decimal.Decimal

	SettlementRate      float64
	ReturnRate          float64
	AvgProfitPerSettled decimal.Decimal
	AvgLossPerReturned  decimal.Decimal
}

// Aggregate reduces the classified master set into per-month summaries
// and the global totals. It carries no incremental state: every summary
// is recomputed from scratch, so re-running over an unchanged master set
// yields identical output.
func Aggregate(records []entity.MasterRecord) ([]entity.MonthlySummary, Totals) {
	byMonth := make(map[string]*entity.MonthlySummary)
	var totals Totals
	totals.TotalProfit = decimal.Zero
	totals.TotalLoss = decimal.Zero
	totals.PendingValue = decimal.Zero

	for i := range records {
		m := &records[i]
		s := byMonth[m.MonthKey]
		if s == nil {
			s = &entity.MonthlySummary{MonthKey: m.MonthKey}
			byMonth[m.MonthKey] = s
		}
		s.TotalOrders++
		totals.TotalOrders++

		switch m.Status {
		case enum.LifecycleCancelled:
			s.Cancelled++
			totals.Cancelled++
		case enum.LifecycleReturned:
			s.Returned++
			totals.Returned++
			s.TotalLoss = s.TotalLoss.Add(m.Loss)
			totals.TotalLoss = totals.TotalLoss.Add(m.Loss)
		case enum.LifecycleSettled:
			s.CompletedSettled++
			totals.CompletedSettled++
			s.TotalProfit = s.TotalProfit.Add(m.Profit)
			totals.TotalProfit = totals.TotalProfit.Add(m.Profit)
		case enum.LifecyclePending:
			s.CompletedPending++
			totals.CompletedPending++
			s.PendingValue = s.PendingValue.Add(m.PotentialSettlement)
			totals.PendingValue = totals.PendingValue.Add(m.PotentialSettlement)
		}
	}

	totals.NetProfitLoss = totals.TotalProfit.Sub(totals.TotalLoss)
	totals.SettlementRate = rate(totals.CompletedSettled, totals.TotalOrders)
	totals.ReturnRate = rate(totals.Returned, totals.TotalOrders)
	totals.AvgProfitPerSettled = average(totals.TotalProfit, totals.CompletedSettled)
	totals.AvgLossPerReturned = average(totals.TotalLoss, totals.Returned)

	summaries := make([]entity.MonthlySummary, 0, len(byMonth))
	for _, s := range byMonth {
		s.NetProfitLoss = s.TotalProfit.Sub(s.TotalLoss)
		s.SettlementRate = rate(s.CompletedSettled, s.TotalOrders)
		s.ReturnRate = rate(s.Returned, s.TotalOrders)
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return monthOrdinal(summaries[i].MonthKey) < monthOrdinal(summaries[j].MonthKey)
	})
	return summaries, totals
}

// rate returns the fraction as a percentage. Division by zero yields 0.
func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// average returns sum/count, or zero when the count is zero.
func average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// monthOrdinal orders MM-YYYY keys chronologically. Unparseable keys
// sort first.
func monthOrdinal(key string) int64 {
	t, err := time.Parse("01-2006", key)
	if err != nil {
		return 0
	}
	return t.Unix()
}
