package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Survival.ViceTaxRate != 0.10 {
		t.Errorf("ViceTaxRate = %v, want 0.10", cfg.Survival.ViceTaxRate)
	}
	if !cfg.Survival.MinThreshold.Equal(decimal.NewFromInt(50)) {
		t.Errorf("MinThreshold = %v, want 50", cfg.Survival.MinThreshold)
	}
	if len(cfg.Survival.BlockedCategories) == 0 || len(cfg.Survival.EssentialCategories) == 0 {
		t.Error("expected default category lists to be populated")
	}
	if len(cfg.Insights.ReferenceItems) == 0 {
		t.Error("expected default reference items")
	}
	if _, ok := cfg.Insights.CurrencyMultipliers["USD"]; !ok {
		t.Error("expected USD multiplier")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "sekret")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.JWTSecret != "sekret" {
		t.Errorf("JWTSecret = %q, want sekret", cfg.JWTSecret)
	}
}
