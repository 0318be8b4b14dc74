// Package analytics derives spending views from the transaction history:
// a per-category breakdown over an arbitrary period and a month-by-month
// trend series.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/transaction"
	"github.com/nmoreno/billetera/internal/transaction/amortize"
)

// defaultTrendMonths is how far back the trend series reaches when the
// caller does not say
const defaultTrendMonths = 6

// TransactionRef is the slim transaction view embedded in a category
// breakdown
type TransactionRef struct {
	ID       int64           `json:"_id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Merchant string          `json:"merchant,omitempty"`
}

// CategoryBreakdown aggregates one category's expenses over the period
type CategoryBreakdown struct {
	Category     string           `json:"category"`
	Total        decimal.Decimal  `json:"total"`
	Count        int              `json:"count"`
	Transactions []TransactionRef `json:"transactions"`
	Average      decimal.Decimal  `json:"average"`
	Percentage   decimal.Decimal  `json:"percentage"`
}

// Period is the date range a breakdown covers
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CategoryAnalysis is the full per-category expense report
type CategoryAnalysis struct {
	Categories []CategoryBreakdown `json:"categories"`
	Total      decimal.Decimal     `json:"total"`
	Period     Period              `json:"period"`
}

// TrendEntry is one month of the spending trend series
type TrendEntry struct {
	Month   string           `json:"month"`
	Total   decimal.Decimal  `json:"total"`
	Count   int              `json:"count"`
	Average decimal.Decimal  `json:"average"`
	Change  *decimal.Decimal `json:"change,omitempty"`
}

// TransactionSource lists a user's transactions for aggregation
type TransactionSource interface {
	ListByUser(ctx context.Context, userID int64, filters transaction.ListFilters) ([]*transaction.Transaction, error)
}

// Service computes spending analytics
type Service struct {
	source TransactionSource
}

// NewService creates a new analytics service
func NewService(source TransactionSource) *Service {
	return &Service{source: source}
}

// CategoryAnalysis breaks the user's expenses down by category. A zero start
// defaults to the first of the current month and a zero end to now.
func (s *Service) CategoryAnalysis(ctx context.Context, userID int64, start, end, now time.Time) (*CategoryAnalysis, error) {
	if start.IsZero() {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if end.IsZero() {
		end = now
	}

	expenseType := string(transaction.TypeExpense)
	txs, err := s.source.ListByUser(ctx, userID, transaction.ListFilters{
		Type: expenseType,
		From: &start,
		To:   &end,
	})
	if err != nil {
		return nil, err
	}

	analysis := composeCategoryAnalysis(txs, Period{Start: start, End: end})
	return &analysis, nil
}

// SpendingTrends builds the month-by-month expense series ending in the
// current month, oldest first
func (s *Service) SpendingTrends(ctx context.Context, userID int64, months int, now time.Time) ([]TrendEntry, error) {
	if months < 1 {
		months = defaultTrendMonths
	}

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(months - 1), 0)
	to := now
	expenseType := string(transaction.TypeExpense)
	txs, err := s.source.ListByUser(ctx, userID, transaction.ListFilters{
		Type: expenseType,
		From: &from,
		To:   &to,
	})
	if err != nil {
		return nil, err
	}

	return composeTrends(txs, now, months), nil
}

// composeCategoryAnalysis groups expenses by category. Categories come out
// sorted by total descending; percentages are shares of the grand total,
// one decimal place.
func composeCategoryAnalysis(txs []*transaction.Transaction, period Period) CategoryAnalysis {
	byCategory := make(map[string]*CategoryBreakdown)
	grandTotal := decimal.Zero

	for _, tx := range txs {
		b, ok := byCategory[tx.Category]
		if !ok {
			b = &CategoryBreakdown{Category: tx.Category, Total: decimal.Zero}
			byCategory[tx.Category] = b
		}
		b.Total = b.Total.Add(tx.TotalAmount)
		b.Count++
		b.Transactions = append(b.Transactions, TransactionRef{
			ID:       tx.ID,
			Amount:   tx.TotalAmount,
			Date:     tx.Date,
			Merchant: tx.Merchant,
		})
		grandTotal = grandTotal.Add(tx.TotalAmount)
	}

	categories := make([]CategoryBreakdown, 0, len(byCategory))
	for _, b := range byCategory {
		b.Average = b.Total.Div(decimal.NewFromInt(int64(b.Count))).Round(2)
		if grandTotal.IsPositive() {
			b.Percentage = b.Total.Div(grandTotal).Mul(decimal.NewFromInt(100)).Round(1)
		}
		b.Total = b.Total.Round(2)
		categories = append(categories, *b)
	}

	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Total.Equal(categories[j].Total) {
			return categories[i].Total.GreaterThan(categories[j].Total)
		}
		return categories[i].Category < categories[j].Category
	})

	return CategoryAnalysis{
		Categories: categories,
		Total:      grandTotal.Round(2),
		Period:     period,
	}
}

// composeTrends buckets expenses into calendar months and labels each with
// the Spanish month name. Change is the percentage difference against the
// previous month, present from the second entry onward.
func composeTrends(txs []*transaction.Transaction, now time.Time, months int) []TrendEntry {
	currentMonth := amortize.MonthIndex(now)
	firstMonth := currentMonth - (months - 1)

	totals := make([]decimal.Decimal, months)
	counts := make([]int, months)
	for i := range totals {
		totals[i] = decimal.Zero
	}

	for _, tx := range txs {
		offset := amortize.MonthIndex(tx.Date) - firstMonth
		if offset < 0 || offset >= months {
			continue
		}
		totals[offset] = totals[offset].Add(tx.TotalAmount)
		counts[offset]++
	}

	entries := make([]TrendEntry, months)
	hundred := decimal.NewFromInt(100)
	for i := range entries {
		entry := TrendEntry{
			Month:   amortize.MonthLabel(firstMonth + i),
			Total:   totals[i].Round(2),
			Count:   counts[i],
			Average: decimal.Zero,
		}
		if counts[i] > 0 {
			entry.Average = totals[i].Div(decimal.NewFromInt(int64(counts[i]))).Round(2)
		}
		if i > 0 && totals[i-1].IsPositive() {
			change := totals[i].Sub(totals[i-1]).Div(totals[i-1]).Mul(hundred).Round(1)
			entry.Change = &change
		}
		entries[i] = entry
	}

	return entries
}
