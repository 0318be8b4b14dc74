package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var statsNow = time.Date(2026, time.February, 10, 9, 30, 0, 0, time.UTC)

func creditTx(id int64, amount int64, date time.Time, installments int) *Transaction {
	return &Transaction{
		ID:            id,
		UserID:        1,
		Type:          TypeExpense,
		TotalAmount:   decimal.NewFromInt(amount),
		Merchant:      "Tienda",
		PaymentMethod: MethodCredit,
		Installments:  Installments{Current: 1, Total: installments},
		Date:          date,
	}
}

func TestComposeStatsWithDirectAndAmortized(t *testing.T) {
	// income 1000, direct expense 200, one credit purchase amortized to
	// 100/month active this month -> free money 700
	income := decimal.NewFromInt(1000)
	direct := decimal.NewFromInt(200)
	credit := []*Transaction{
		creditTx(9, 300, statsNow.AddDate(0, -1, 0), 3), // started last month: installment 2 of 3
	}

	stats := composeStats(income, direct, credit, statsNow)

	if !stats.Income.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Income = %v, want 1000", stats.Income)
	}
	if !stats.Expenses.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expenses = %v, want 300", stats.Expenses)
	}
	if !stats.FreeMoney.Equal(decimal.NewFromInt(700)) {
		t.Errorf("FreeMoney = %v, want 700", stats.FreeMoney)
	}
	if len(stats.ActiveInstallments) != 1 {
		t.Fatalf("expected 1 active installment, got %d", len(stats.ActiveInstallments))
	}
	line := stats.ActiveInstallments[0]
	if line.Current != 2 || line.Total != 3 {
		t.Errorf("installment = %d/%d, want 2/3", line.Current, line.Total)
	}
	if !line.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("installment amount = %v, want 100", line.Amount)
	}
	if !stats.SavingsTarget.IsZero() {
		t.Errorf("SavingsTarget = %v, want 0", stats.SavingsTarget)
	}
}

func TestComposeStatsSinglePaymentCreditReintroduced(t *testing.T) {
	// A 1/1 credit purchase is kept out of the direct sum and comes back
	// through the installment path for its purchase month.
	income := decimal.NewFromInt(500)
	direct := decimal.Zero
	credit := []*Transaction{creditTx(2, 80, statsNow, 1)}

	stats := composeStats(income, direct, credit, statsNow)

	if len(stats.ActiveInstallments) != 1 {
		t.Fatalf("expected the 1/1 charge as an active installment")
	}
	if stats.ActiveInstallments[0].Current != 1 || stats.ActiveInstallments[0].Total != 1 {
		t.Errorf("installment = %d/%d, want 1/1",
			stats.ActiveInstallments[0].Current, stats.ActiveInstallments[0].Total)
	}
	if !stats.Expenses.Equal(decimal.NewFromInt(80)) {
		t.Errorf("Expenses = %v, want 80", stats.Expenses)
	}
}

func TestComposeStatsZeroRecords(t *testing.T) {
	stats := composeStats(decimal.Zero, decimal.Zero, nil, statsNow)

	if !stats.Income.IsZero() || !stats.Expenses.IsZero() || !stats.FreeMoney.IsZero() {
		t.Errorf("expected all-zero stats, got %+v", stats)
	}
	if stats.ActiveInstallments == nil || len(stats.ActiveInstallments) != 0 {
		t.Errorf("expected empty (non-nil) installment list, got %v", stats.ActiveInstallments)
	}
}

func TestComposeStatsIsIdempotent(t *testing.T) {
	income := decimal.NewFromInt(1234)
	direct := decimal.NewFromInt(56)
	credit := []*Transaction{
		creditTx(1, 120000, statsNow, 3),
		creditTx(2, 999, statsNow.AddDate(0, -2, 0), 12),
	}

	first := composeStats(income, direct, credit, statsNow)
	second := composeStats(income, direct, credit, statsNow)

	if !first.FreeMoney.Equal(second.FreeMoney) || !first.Expenses.Equal(second.Expenses) {
		t.Errorf("stats differ across identical calls: %+v vs %+v", first, second)
	}
	if len(first.ActiveInstallments) != len(second.ActiveInstallments) {
		t.Errorf("installment lines differ across identical calls")
	}
}

func TestComposeProjectionsOmitsEmptyMonths(t *testing.T) {
	// One plan ends after two more months; months 3..6 of the horizon carry
	// nothing and must be absent, not zero-filled.
	credit := []*Transaction{creditTx(5, 600, statsNow, 3)} // active this month and the next two

	entries := composeProjections(credit, statsNow, 6)

	if len(entries) != 2 {
		t.Fatalf("expected 2 projection entries, got %d: %+v", len(entries), entries)
	}
	for _, e := range entries {
		if !e.Amount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("entry %q amount = %v, want 200", e.Month, e.Amount)
		}
		if e.CommitmentsCount != 1 {
			t.Errorf("entry %q commitments = %d, want 1", e.Month, e.CommitmentsCount)
		}
	}
	if entries[0].Month != "marzo de 2026" {
		t.Errorf("first projected month = %q, want %q", entries[0].Month, "marzo de 2026")
	}
}

func TestComposeProjectionsNoCommitments(t *testing.T) {
	entries := composeProjections(nil, statsNow, 6)
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %+v", entries)
	}
	if entries == nil {
		t.Error("expected empty (non-nil) slice for JSON encoding")
	}
}
