package reconcile

import (
	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Calculate derives the financial figures of one classified record. The
// three accumulators are mutually exclusive: a record contributes to
// profit, loss or potential settlement value, never more than one, and a
// cancelled record contributes to none.
//
// Loss is stored as an unsigned magnitude (customer paid minus return
// settlement); net figures subtract it from profit.
func Calculate(m *entity.MasterRecord) {
	m.Profit = decimal.Zero
	m.Loss = decimal.Zero
	m.PotentialSettlement = decimal.Zero

	switch m.Status {
	case enum.LifecycleSettled:
		m.Profit = m.FinalAmount.Sub(m.CommissionDeduction.Add(m.LogisticsDeduction))
	case enum.LifecycleReturned:
		m.Loss = m.CustomerPaidAmount.Sub(m.ReturnSettlement)
	case enum.LifecyclePending:
		if m.HasSettlement {
			m.PotentialSettlement = m.SettlementExpected
		} else {
			m.PotentialSettlement = m.FinalAmount
		}
	}
}

// CalculateAll derives financials for every record in place. Records
// must already be classified.
func CalculateAll(records []entity.MasterRecord) {
	for i := range records {
		Calculate(&records[i])
	}
}
