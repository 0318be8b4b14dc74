package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/transaction"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func expense(id int64, amount float64, category, merchant string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          id,
		UserID:      1,
		Type:        transaction.TypeExpense,
		TotalAmount: d(amount),
		Category:    category,
		Merchant:    merchant,
		Date:        date,
	}
}

func TestComposeCategoryAnalysis(t *testing.T) {
	day := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	txs := []*transaction.Transaction{
		expense(1, 30, "Comida", "La Parolaccia", day),
		expense(2, 10, "Comida", "", day.AddDate(0, 0, 1)),
		expense(3, 60, "Transporte", "Shell", day),
	}
	period := Period{Start: day.AddDate(0, 0, -10), End: day.AddDate(0, 0, 5)}

	analysis := composeCategoryAnalysis(txs, period)

	if !analysis.Total.Equal(d(100)) {
		t.Errorf("total = %v, want 100", analysis.Total)
	}
	if len(analysis.Categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(analysis.Categories))
	}

	// Largest total first
	top := analysis.Categories[0]
	if top.Category != "Transporte" || !top.Total.Equal(d(60)) || top.Count != 1 {
		t.Errorf("top category = %+v", top)
	}
	if !top.Percentage.Equal(d(60)) {
		t.Errorf("top percentage = %v, want 60", top.Percentage)
	}

	comida := analysis.Categories[1]
	if comida.Count != 2 || !comida.Average.Equal(d(20)) {
		t.Errorf("comida = %+v, want count 2 average 20", comida)
	}
	if len(comida.Transactions) != 2 || comida.Transactions[0].ID != 1 {
		t.Errorf("comida transactions = %+v", comida.Transactions)
	}
	if comida.Transactions[0].Merchant != "La Parolaccia" {
		t.Errorf("merchant = %q", comida.Transactions[0].Merchant)
	}
}

func TestComposeCategoryAnalysisPercentageRounding(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	txs := []*transaction.Transaction{
		expense(1, 1, "A", "", day),
		expense(2, 2, "B", "", day),
	}

	analysis := composeCategoryAnalysis(txs, Period{})

	// 2/3 and 1/3 shares, one decimal place
	if !analysis.Categories[0].Percentage.Equal(d(66.7)) {
		t.Errorf("B percentage = %v, want 66.7", analysis.Categories[0].Percentage)
	}
	if !analysis.Categories[1].Percentage.Equal(d(33.3)) {
		t.Errorf("A percentage = %v, want 33.3", analysis.Categories[1].Percentage)
	}
}

func TestComposeCategoryAnalysisEmpty(t *testing.T) {
	analysis := composeCategoryAnalysis(nil, Period{})
	if len(analysis.Categories) != 0 {
		t.Errorf("categories = %+v, want none", analysis.Categories)
	}
	if !analysis.Total.IsZero() {
		t.Errorf("total = %v, want 0", analysis.Total)
	}
}

func TestComposeTrends(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	txs := []*transaction.Transaction{
		expense(1, 100, "Comida", "", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
		expense(2, 50, "Comida", "", time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)),
		expense(3, 300, "Viajes", "", time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)),
		expense(4, 150, "Comida", "", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)),
	}

	entries := composeTrends(txs, now, 3)

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Oldest first, Spanish month labels
	if entries[0].Month != "enero de 2026" || entries[2].Month != "marzo de 2026" {
		t.Errorf("labels = %q .. %q", entries[0].Month, entries[2].Month)
	}

	if !entries[0].Total.Equal(d(150)) || entries[0].Count != 2 || !entries[0].Average.Equal(d(75)) {
		t.Errorf("january = %+v", entries[0])
	}
	if entries[0].Change != nil {
		t.Errorf("first entry change = %v, want none", entries[0].Change)
	}

	// 150 -> 300 is +100%, 300 -> 150 is -50%
	if entries[1].Change == nil || !entries[1].Change.Equal(d(100)) {
		t.Errorf("february change = %v, want 100", entries[1].Change)
	}
	if entries[2].Change == nil || !entries[2].Change.Equal(d(-50)) {
		t.Errorf("march change = %v, want -50", entries[2].Change)
	}
}

func TestComposeTrendsEmptyMonths(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	txs := []*transaction.Transaction{
		expense(1, 80, "Comida", "", time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)),
	}

	entries := composeTrends(txs, now, 3)

	for i := 0; i < 2; i++ {
		if !entries[i].Total.IsZero() || entries[i].Count != 0 {
			t.Errorf("entry %d = %+v, want empty month", i, entries[i])
		}
	}
	// No change against a zero month
	if entries[2].Change != nil {
		t.Errorf("march change = %v, want none after an empty month", entries[2].Change)
	}
	if !entries[2].Total.Equal(d(80)) {
		t.Errorf("march total = %v, want 80", entries[2].Total)
	}
}
