package survival

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/config"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testConfig() config.SurvivalConfig {
	return config.SurvivalConfig{
		ViceTaxRate:           0.10,
		MinThreshold:          decimal.NewFromInt(50),
		WarningIncomeFraction: 0.10,
		CautionPercentage:     20,
		BlockedCategories:     []string{"Entretenimiento", "Delivery"},
		EssentialCategories:   []string{"Supermercado", "Salud"},
	}
}

var evalNow = time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

func TestEvaluateLevels(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name         string
		income       float64
		expenses     float64
		wantLevel    string
		wantActivate bool
	}{
		{"plenty left", 1000, 200, LevelSafe, false},
		{"under a fifth remaining", 1000, 850, LevelCaution, false},
		{"below warning threshold", 1000, 920, LevelWarning, true},
		{"overspent", 1000, 1100, LevelCritical, true},
		{"exactly spent", 1000, 1000, LevelCritical, true},
		{"no income recorded", 0, 300, LevelSafe, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Evaluate(d(tt.income), d(tt.expenses), evalNow, cfg)
			if status.Level != tt.wantLevel {
				t.Errorf("level = %s, want %s", status.Level, tt.wantLevel)
			}
			if status.ShouldActivate != tt.wantActivate {
				t.Errorf("shouldActivate = %v, want %v", status.ShouldActivate, tt.wantActivate)
			}
		})
	}
}

func TestEvaluateThresholdFloor(t *testing.T) {
	cfg := testConfig()

	// 10% of a small income falls below the floor; the floor wins
	status := Evaluate(d(300), d(100), evalNow, cfg)
	if !status.Threshold.Equal(d(50)) {
		t.Errorf("threshold = %v, want 50", status.Threshold)
	}

	status = Evaluate(d(2000), d(100), evalNow, cfg)
	if !status.Threshold.Equal(d(200)) {
		t.Errorf("threshold = %v, want 200", status.Threshold)
	}
}

func TestEvaluateDailyBudget(t *testing.T) {
	cfg := testConfig()

	status := Evaluate(d(1000), d(240), evalNow, cfg)
	if status.DaysRemaining < 1 {
		t.Fatalf("daysRemaining = %d", status.DaysRemaining)
	}
	want := d(760).Div(decimal.NewFromInt(int64(status.DaysRemaining))).Round(2)
	if !status.DailyBudget.Equal(want) {
		t.Errorf("dailyBudget = %v, want %v", status.DailyBudget, want)
	}

	// Never negative
	status = Evaluate(d(100), d(500), evalNow, cfg)
	if !status.DailyBudget.IsZero() {
		t.Errorf("dailyBudget = %v, want 0", status.DailyBudget)
	}
}

func TestCheckInactiveModeAllowsEverything(t *testing.T) {
	cfg := testConfig()
	status := Evaluate(d(1000), d(200), evalNow, cfg)

	verdict := Check("Entretenimiento", d(50), &status, cfg)
	if !verdict.Allowed || verdict.Blocked {
		t.Errorf("verdict = %+v, want allowed", verdict)
	}
}

func TestCheckActiveMode(t *testing.T) {
	cfg := testConfig()
	status := Evaluate(d(1000), d(1100), evalNow, cfg)
	if !status.ShouldActivate {
		t.Fatal("expected survival mode active")
	}

	t.Run("essential passes", func(t *testing.T) {
		verdict := Check("Supermercado", d(80), &status, cfg)
		if !verdict.Allowed || !verdict.Essential {
			t.Errorf("verdict = %+v, want essential allowed", verdict)
		}
	})

	t.Run("blocked category refused", func(t *testing.T) {
		verdict := Check("Delivery", d(30), &status, cfg)
		if !verdict.Blocked || verdict.Allowed {
			t.Errorf("verdict = %+v, want blocked", verdict)
		}
	})

	t.Run("case-insensitive category match", func(t *testing.T) {
		verdict := Check("delivery", d(30), &status, cfg)
		if !verdict.Blocked {
			t.Errorf("verdict = %+v, want blocked", verdict)
		}
	})

	t.Run("non-essential gets vice tax", func(t *testing.T) {
		verdict := Check("Hobbies", d(100), &status, cfg)
		if !verdict.Allowed {
			t.Fatalf("verdict = %+v, want allowed", verdict)
		}
		if verdict.ViceTax == nil || !verdict.ViceTax.Equal(d(10)) {
			t.Errorf("viceTax = %v, want 10", verdict.ViceTax)
		}
		if verdict.TotalWithTax == nil || !verdict.TotalWithTax.Equal(d(110)) {
			t.Errorf("totalWithTax = %v, want 110", verdict.TotalWithTax)
		}
	})
}
