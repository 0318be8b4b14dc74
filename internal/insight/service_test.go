package insight

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/config"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testConfig() config.InsightConfig {
	return config.InsightConfig{
		CurrencyMultipliers: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"ARS": decimal.NewFromInt(350),
		},
		ReferenceItems: []config.ReferenceItem{
			{Name: "un mes de Netflix", Cost: decimal.NewFromInt(10), Icon: "📺"},
			{Name: "una entrada al cine", Cost: decimal.NewFromInt(8), Icon: "🎬"},
			{Name: "zapatos deportivos", Cost: decimal.NewFromInt(80), Icon: "👟"},
			{Name: "una cena romántica", Cost: decimal.NewFromInt(60), Icon: "🌹"},
		},
	}
}

func TestGenerateWholeUnitCounts(t *testing.T) {
	totals := map[string]decimal.Decimal{"Delivery": d(45)}

	report := Generate(totals, "USD", testConfig())

	if len(report.Categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(report.Categories))
	}
	insight := report.Categories[0]
	if !insight.Total.Equal(d(45)) {
		t.Errorf("total = %v, want 45", insight.Total)
	}

	// 45 buys 4 Netflix months and 5 cinema tickets; shoes and dinner
	// cost more than the total, so they never appear
	wantCounts := map[string]int64{
		"un mes de Netflix":   4,
		"una entrada al cine": 5,
	}
	if len(insight.Equivalences) != len(wantCounts) {
		t.Fatalf("equivalences = %+v", insight.Equivalences)
	}
	for _, eq := range insight.Equivalences {
		if eq.Count != wantCounts[eq.Item] {
			t.Errorf("%s count = %d, want %d", eq.Item, eq.Count, wantCounts[eq.Item])
		}
	}
	if insight.Equivalences[0].Item != "una entrada al cine" {
		t.Errorf("first equivalence = %s, want the largest count first", insight.Equivalences[0].Item)
	}
}

func TestGenerateScalesByCurrency(t *testing.T) {
	// 3500 ARS is one Netflix month at the 350 multiplier
	totals := map[string]decimal.Decimal{"Streaming": d(3500)}

	report := Generate(totals, "ARS", testConfig())

	if len(report.Categories) != 1 || len(report.Categories[0].Equivalences) == 0 {
		t.Fatalf("report = %+v", report)
	}
	eq := report.Categories[0].Equivalences[0]
	if eq.Count != 1 || !eq.UnitCost.Equal(d(3500)) {
		t.Errorf("equivalence = %+v, want 1 unit at 3500", eq)
	}
}

func TestGenerateUnknownCurrencyFallsBackToUSD(t *testing.T) {
	report := Generate(map[string]decimal.Decimal{"Ropa": d(20)}, "XYZ", testConfig())
	if report.Currency != "USD" {
		t.Errorf("currency = %s, want USD", report.Currency)
	}
}

func TestGenerateCapsEquivalences(t *testing.T) {
	// A big total fits every reference item; the list is capped
	report := Generate(map[string]decimal.Decimal{"Viajes": d(1000)}, "USD", testConfig())
	if got := len(report.Categories[0].Equivalences); got > maxEquivalencesPerCategory {
		t.Errorf("got %d equivalences, want at most %d", got, maxEquivalencesPerCategory)
	}
}

func TestGenerateEmptySpending(t *testing.T) {
	report := Generate(nil, "USD", testConfig())
	if report.Categories == nil || len(report.Categories) != 0 {
		t.Errorf("categories = %+v, want empty list", report.Categories)
	}
	if !report.TotalSpent.IsZero() {
		t.Errorf("totalSpent = %v, want 0", report.TotalSpent)
	}
}
