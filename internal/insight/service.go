// Package insight turns raw spending totals into opportunity-cost
// equivalences: what the money spent on a category could have bought
// instead, in everyday terms.
package insight

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/config"
)

// Equivalence is one reference-item reading of an amount
type Equivalence struct {
	Item     string          `json:"item"`
	Icon     string          `json:"icon"`
	Count    int64           `json:"count"`
	UnitCost decimal.Decimal `json:"unitCost"`
}

// CategoryInsight is the opportunity-cost view of one spending category
type CategoryInsight struct {
	Category     string          `json:"category"`
	Total        decimal.Decimal `json:"total"`
	Equivalences []Equivalence   `json:"equivalences"`
}

// Report is the full opportunity-cost response for a month
type Report struct {
	Currency   string            `json:"currency"`
	TotalSpent decimal.Decimal   `json:"totalSpent"`
	Categories []CategoryInsight `json:"categories"`
}

// maxEquivalencesPerCategory keeps the report readable
const maxEquivalencesPerCategory = 3

// SpendingByCategory supplies per-category expense totals
type SpendingByCategory interface {
	SumExpensesByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error)
}

// Service produces opportunity-cost reports
type Service struct {
	source SpendingByCategory
	cfg    config.InsightConfig
}

// NewService creates a new insight service
func NewService(source SpendingByCategory, cfg config.InsightConfig) *Service {
	return &Service{source: source, cfg: cfg}
}

// OpportunityCost builds the report for the user's current month
func (s *Service) OpportunityCost(ctx context.Context, userID int64, currency string, now time.Time) (*Report, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	totals, err := s.source.SumExpensesByCategory(ctx, userID, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	report := Generate(totals, currency, s.cfg)
	return &report, nil
}

// Generate builds the report from per-category totals. Reference-item costs
// are kept in USD and scaled by the currency multiplier; an equivalence only
// appears when at least one whole unit fits.
func Generate(totals map[string]decimal.Decimal, currency string, cfg config.InsightConfig) Report {
	multiplier, ok := cfg.CurrencyMultipliers[currency]
	if !ok {
		currency = "USD"
		multiplier = decimal.NewFromInt(1)
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	report := Report{Currency: currency, TotalSpent: decimal.Zero}
	for _, category := range categories {
		total := totals[category]
		if !total.IsPositive() {
			continue
		}
		report.TotalSpent = report.TotalSpent.Add(total)

		insight := CategoryInsight{Category: category, Total: total.Round(2)}
		for _, item := range cfg.ReferenceItems {
			unitCost := item.Cost.Mul(multiplier)
			count := total.Div(unitCost).IntPart()
			if count < 1 {
				continue
			}
			insight.Equivalences = append(insight.Equivalences, Equivalence{
				Item:     item.Name,
				Icon:     item.Icon,
				Count:    count,
				UnitCost: unitCost.Round(2),
			})
		}
		// Largest counts make the most striking comparisons
		sort.Slice(insight.Equivalences, func(i, j int) bool {
			if insight.Equivalences[i].Count != insight.Equivalences[j].Count {
				return insight.Equivalences[i].Count > insight.Equivalences[j].Count
			}
			return insight.Equivalences[i].Item < insight.Equivalences[j].Item
		})
		if len(insight.Equivalences) > maxEquivalencesPerCategory {
			insight.Equivalences = insight.Equivalences[:maxEquivalencesPerCategory]
		}
		report.Categories = append(report.Categories, insight)
	}

	report.TotalSpent = report.TotalSpent.Round(2)
	if report.Categories == nil {
		report.Categories = []CategoryInsight{}
	}
	return report
}
