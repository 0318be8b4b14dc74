// Package survival implements survival mode: a spending clamp that kicks in
// when the month's free money runs low. It classifies the situation into
// levels, blocks discretionary categories and suggests a surcharge on
// non-essential purchases.
package survival

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/config"
)

// Severity levels, mildest first
const (
	LevelSafe     = "safe"
	LevelCaution  = "caution"
	LevelWarning  = "warning"
	LevelCritical = "critical"
)

// Status is the evaluated state of the current month
type Status struct {
	ShouldActivate      bool            `json:"shouldActivate"`
	Level               string          `json:"level"`
	FreeMoney           decimal.Decimal `json:"freeMoney"`
	TotalIncome         decimal.Decimal `json:"totalIncome"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
	RemainingPercentage decimal.Decimal `json:"remainingPercentage"`
	Threshold           decimal.Decimal `json:"threshold"`
	DaysRemaining       int             `json:"daysRemaining"`
	DailyBudget         decimal.Decimal `json:"dailyBudget"`
}

// PurchaseVerdict is the outcome of checking one intended purchase
type PurchaseVerdict struct {
	Allowed      bool             `json:"allowed"`
	Blocked      bool             `json:"blocked"`
	Essential    bool             `json:"essential"`
	Message      string           `json:"message"`
	ViceTax      *decimal.Decimal `json:"viceTax,omitempty"`
	TotalWithTax *decimal.Decimal `json:"totalWithTax,omitempty"`
}

// SpendingSource supplies the month's income and expense totals
type SpendingSource interface {
	MonthlyTotals(ctx context.Context, userID int64, from, to time.Time) (income, expenses decimal.Decimal, err error)
}

// Service evaluates survival mode against recorded spending
type Service struct {
	source SpendingSource
	cfg    config.SurvivalConfig
}

// NewService creates a new survival service
func NewService(source SpendingSource, cfg config.SurvivalConfig) *Service {
	return &Service{source: source, cfg: cfg}
}

// Status evaluates the current month for the user
func (s *Service) Status(ctx context.Context, userID int64, now time.Time) (*Status, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	income, expenses, err := s.source.MonthlyTotals(ctx, userID, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	status := Evaluate(income, expenses, now, s.cfg)
	return &status, nil
}

// CheckPurchase classifies an intended purchase under the current status
func (s *Service) CheckPurchase(ctx context.Context, userID int64, category string, amount decimal.Decimal, now time.Time) (*PurchaseVerdict, error) {
	status, err := s.Status(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	verdict := Check(category, amount, status, s.cfg)
	return &verdict, nil
}

// Categories returns the blocked and essential category lists
func (s *Service) Categories() (blocked, essential []string) {
	return s.cfg.BlockedCategories, s.cfg.EssentialCategories
}

// Evaluate derives the survival status from the month's totals. Without any
// income the month is considered safe: there is nothing to protect yet.
func Evaluate(income, expenses decimal.Decimal, now time.Time, cfg config.SurvivalConfig) Status {
	freeMoney := income.Sub(expenses)

	threshold := income.Mul(decimal.NewFromFloat(cfg.WarningIncomeFraction))
	if threshold.LessThan(cfg.MinThreshold) {
		threshold = cfg.MinThreshold
	}

	remaining := decimal.NewFromInt(100)
	if income.IsPositive() {
		remaining = freeMoney.Div(income).Mul(decimal.NewFromInt(100))
	}

	level := LevelSafe
	shouldActivate := false
	switch {
	case income.IsPositive() && !freeMoney.IsPositive():
		level = LevelCritical
		shouldActivate = true
	case income.IsPositive() && freeMoney.LessThan(threshold):
		level = LevelWarning
		shouldActivate = true
	case income.IsPositive() && remaining.LessThan(decimal.NewFromFloat(cfg.CautionPercentage)):
		level = LevelCaution
	}

	daysRemaining := daysLeftInMonth(now)
	dailyBudget := decimal.Zero
	if freeMoney.IsPositive() {
		dailyBudget = freeMoney.Div(decimal.NewFromInt(int64(daysRemaining)))
	}

	return Status{
		ShouldActivate:      shouldActivate,
		Level:               level,
		FreeMoney:           freeMoney.Round(2),
		TotalIncome:         income.Round(2),
		TotalExpenses:       expenses.Round(2),
		RemainingPercentage: remaining.Round(2),
		Threshold:           threshold.Round(2),
		DaysRemaining:       daysRemaining,
		DailyBudget:         dailyBudget.Round(2),
	}
}

// Check classifies a purchase. Blocked categories are refused while survival
// mode is active; anything non-essential gets a vice-tax suggestion.
func Check(category string, amount decimal.Decimal, status *Status, cfg config.SurvivalConfig) PurchaseVerdict {
	if !status.ShouldActivate {
		return PurchaseVerdict{Allowed: true, Message: "Modo supervivencia inactivo, compra permitida"}
	}

	if containsFold(cfg.EssentialCategories, category) {
		return PurchaseVerdict{
			Allowed:   true,
			Essential: true,
			Message:   "Gasto esencial, permitido en modo supervivencia",
		}
	}

	if containsFold(cfg.BlockedCategories, category) {
		return PurchaseVerdict{
			Blocked: true,
			Message: "Categoría bloqueada en modo supervivencia",
		}
	}

	tax := amount.Mul(decimal.NewFromFloat(cfg.ViceTaxRate)).Round(2)
	total := amount.Add(tax).Round(2)
	return PurchaseVerdict{
		Allowed:      true,
		Message:      "Compra no esencial: considera el impuesto al vicio",
		ViceTax:      &tax,
		TotalWithTax: &total,
	}
}

func daysLeftInMonth(now time.Time) int {
	nextMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	days := int(nextMonth.Sub(now).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
