package transaction

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/transaction/amortize"
)

// Common errors
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrNotOwner             = errors.New("transaction does not belong to user")
	ErrInvalidType          = errors.New("type must be income or expense")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidInstallments  = errors.New("installments must be at least 1")
)

const (
	// projectionHorizon is how many future months the commitments
	// projection covers
	projectionHorizon = 6
	// lookbackYears bounds the credit-purchase scan; older plans are
	// assumed fully amortized
	lookbackYears = 4
)

// Service handles transaction business logic
type Service struct {
	repo *Repository
}

// NewService creates a new transaction service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create records a new transaction. Installment plans are only opened for
// credit purchases with more than one charge; everything else lands as a
// single 1/1 charge.
func (s *Service) Create(ctx context.Context, userID int64, req *CreateTransactionRequest) (*Transaction, error) {
	txType := Type(req.Type)
	if txType != TypeIncome && txType != TypeExpense {
		return nil, ErrInvalidType
	}

	method := PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = MethodCash
	}
	switch method {
	case MethodCash, MethodDebit, MethodCredit, MethodTransfer:
	default:
		return nil, ErrInvalidPaymentMethod
	}

	if !req.TotalAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.Installments < 0 {
		return nil, ErrInvalidInstallments
	}

	installments := Installments{Current: 1, Total: 1}
	if method == MethodCredit && req.Installments > 1 {
		installments.Total = req.Installments
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	tx := &Transaction{
		UserID:        userID,
		Type:          txType,
		TotalAmount:   req.TotalAmount,
		Category:      req.Category,
		Merchant:      req.Merchant,
		PaymentMethod: method,
		Installments:  installments,
		Date:          date,
	}

	return s.repo.Create(ctx, tx)
}

// GetByID retrieves a transaction, enforcing ownership
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	if tx.UserID != userID {
		return nil, ErrNotOwner
	}
	return tx, nil
}

// List retrieves a user's transactions with optional filters
func (s *Service) List(ctx context.Context, userID int64, filters ListFilters) ([]*Transaction, error) {
	return s.repo.ListByUser(ctx, userID, filters)
}

// Update edits a transaction's mutable fields
func (s *Service) Update(ctx context.Context, id, userID int64, req *UpdateTransactionRequest) (*Transaction, error) {
	tx, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.TotalAmount != nil {
		if !req.TotalAmount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		tx.TotalAmount = *req.TotalAmount
	}
	if req.Category != nil {
		tx.Category = *req.Category
	}
	if req.Merchant != nil {
		tx.Merchant = *req.Merchant
	}
	if req.Date != nil {
		tx.Date = *req.Date
	}

	return s.repo.Update(ctx, tx)
}

// Delete removes a transaction
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// MonthlyStats computes the current month's free money:
// income minus direct expenses minus active credit installment shares.
func (s *Service) MonthlyStats(ctx context.Context, userID int64, now time.Time) (*MonthlyStatsResponse, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	income, directExpenses, err := s.repo.MonthlySums(ctx, userID, monthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}

	credit, err := s.repo.ListCreditSince(ctx, userID, creditLookbackStart(now))
	if err != nil {
		return nil, err
	}

	return composeStats(income, directExpenses, credit, now), nil
}

// Projections lists upcoming months that still carry credit commitments.
// Months without active installments are omitted entirely.
func (s *Service) Projections(ctx context.Context, userID int64, now time.Time) ([]ProjectionEntry, error) {
	credit, err := s.repo.ListCreditSince(ctx, userID, creditLookbackStart(now))
	if err != nil {
		return nil, err
	}

	return composeProjections(credit, now, projectionHorizon), nil
}

// creditLookbackStart is the first day of the same month, lookbackYears back
func creditLookbackStart(now time.Time) time.Time {
	return time.Date(now.Year()-lookbackYears, now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// composeStats is the pure part of MonthlyStats: it folds the amortization
// engine's output into the month's totals. Note that single-installment
// credit purchases are deliberately excluded from the direct-expense sum and
// reintroduced here as 1/1 installment lines; downstream consumers depend on
// that partition.
func composeStats(income, directExpenses decimal.Decimal, credit []*Transaction, now time.Time) *MonthlyStatsResponse {
	records := make([]amortize.Record, len(credit))
	for i, tx := range credit {
		records[i] = tx.AmortizeRecord()
	}

	active := amortize.ActiveShare(records, amortize.MonthIndex(now))

	lines := make([]InstallmentLine, len(active.Lines))
	for i, line := range active.Lines {
		lines[i] = InstallmentLine{
			ID:          line.Record.ID,
			Description: line.Record.Description,
			Current:     line.Number,
			Total:       line.Record.Installments,
			Amount:      line.Share.Round(2),
		}
	}

	totalExpenses := directExpenses.Add(active.TotalShare)
	freeMoney := income.Sub(totalExpenses)

	return &MonthlyStatsResponse{
		FreeMoney:          freeMoney.Round(2),
		Income:             income.Round(2),
		Expenses:           totalExpenses.Round(2),
		ActiveInstallments: lines,
		SavingsTarget:      decimal.Zero,
	}
}

// composeProjections runs the amortization engine against each future month
func composeProjections(credit []*Transaction, now time.Time, horizon int) []ProjectionEntry {
	records := make([]amortize.Record, len(credit))
	for i, tx := range credit {
		records[i] = tx.AmortizeRecord()
	}

	currentIndex := amortize.MonthIndex(now)
	entries := []ProjectionEntry{}

	for i := 1; i <= horizon; i++ {
		target := currentIndex + i
		active := amortize.ActiveShare(records, target)
		if !active.TotalShare.IsPositive() {
			continue
		}

		entries = append(entries, ProjectionEntry{
			Month:            amortize.MonthLabel(target),
			Amount:           active.TotalShare.Round(2),
			CommitmentsCount: len(active.Lines),
		})
	}

	return entries
}
