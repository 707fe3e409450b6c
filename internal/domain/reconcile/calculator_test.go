package reconcile

import (
	"testing"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_SettledProfit(t *testing.T) {
	m := entity.MasterRecord{
		Status:              enum.LifecycleSettled,
		FinalAmount:         dec("500"),
		CommissionDeduction: dec("50"),
		LogisticsDeduction:  dec("30"),
	}
	Calculate(&m)
	if !m.Profit.Equal(dec("420")) {
		t.Fatalf("expected profit 420, got %s", m.Profit)
	}
	if !m.Loss.IsZero() || !m.PotentialSettlement.IsZero() {
		t.Fatalf("loss and potential must stay zero, got %s / %s", m.Loss, m.PotentialSettlement)
	}
}

func TestCalculate_ReturnedLoss(t *testing.T) {
	m := entity.MasterRecord{
		Status:             enum.LifecycleReturned,
		CustomerPaidAmount: dec("750"),
		ReturnSettlement:   dec("700"),
	}
	Calculate(&m)
	if !m.Loss.Equal(dec("50")) {
		t.Fatalf("expected loss 50, got %s", m.Loss)
	}
	if !m.Profit.IsZero() || !m.PotentialSettlement.IsZero() {
		t.Fatalf("profit and potential must stay zero, got %s / %s", m.Profit, m.PotentialSettlement)
	}
}

func TestCalculate_PendingUsesExpectedThenFinal(t *testing.T) {
	withSettlement := entity.MasterRecord{
		Status:             enum.LifecyclePending,
		FinalAmount:        dec("500"),
		HasSettlement:      true,
		SettlementExpected: dec("450"),
	}
	Calculate(&withSettlement)
	if !withSettlement.PotentialSettlement.Equal(dec("450")) {
		t.Fatalf("expected potential 450 from the settlement, got %s", withSettlement.PotentialSettlement)
	}

	withoutSettlement := entity.MasterRecord{
		Status:      enum.LifecyclePending,
		FinalAmount: dec("500"),
	}
	Calculate(&withoutSettlement)
	if !withoutSettlement.PotentialSettlement.Equal(dec("500")) {
		t.Fatalf("expected potential 500 from the order amount, got %s", withoutSettlement.PotentialSettlement)
	}
}

func TestCalculate_CancelledContributesNothing(t *testing.T) {
	m := entity.MasterRecord{
		Status:              enum.LifecycleCancelled,
		FinalAmount:         dec("500"),
		CustomerPaidAmount:  dec("500"),
		CommissionDeduction: dec("50"),
	}
	Calculate(&m)
	if !m.Profit.IsZero() || !m.Loss.IsZero() || !m.PotentialSettlement.IsZero() {
		t.Fatalf("cancelled record must contribute nothing, got %s / %s / %s",
			m.Profit, m.Loss, m.PotentialSettlement)
	}
}

func TestCalculate_ResetsStaleFigures(t *testing.T) {
	// A record that flips from settled to returned must not keep its old
	// profit figure.
	m := entity.MasterRecord{
		Status:             enum.LifecycleReturned,
		Profit:             dec("420"),
		CustomerPaidAmount: dec("500"),
		ReturnSettlement:   dec("480"),
	}
	Calculate(&m)
	if !m.Profit.IsZero() {
		t.Fatalf("stale profit must be reset, got %s", m.Profit)
	}
	if !m.Loss.Equal(dec("20")) {
		t.Fatalf("expected loss 20, got %s", m.Loss)
	}
}

func TestCalculate_MutualExclusivity(t *testing.T) {
	records := []entity.MasterRecord{
		{Status: enum.LifecycleCancelled, FinalAmount: dec("100")},
		{Status: enum.LifecycleReturned, CustomerPaidAmount: dec("200"), ReturnSettlement: dec("150")},
		{Status: enum.LifecycleSettled, FinalAmount: dec("300"), CommissionDeduction: dec("10")},
		{Status: enum.LifecyclePending, FinalAmount: dec("400")},
	}
	CalculateAll(records)

	for i := range records {
		m := &records[i]
		nonZero := 0
		if m.Profit.IsPositive() {
			nonZero++
		}
		if m.Loss.IsPositive() {
			nonZero++
		}
		if m.PotentialSettlement.IsPositive() {
			nonZero++
		}
		if nonZero > 1 {
			t.Fatalf("record %d contributes to more than one accumulator: %s / %s / %s",
				i, m.Profit, m.Loss, m.PotentialSettlement)
		}
	}
}
