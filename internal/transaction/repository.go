package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Repository handles transaction data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListFilters narrows a transaction listing
type ListFilters struct {
	Type     string
	Category string
	From     *time.Time
	To       *time.Time
}

// Create inserts a new transaction into the database
func (r *Repository) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, total_amount, category, merchant, payment_method, installments_current, installments_total, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Type,
		tx.TotalAmount,
		tx.Category,
		tx.Merchant,
		tx.PaymentMethod,
		tx.Installments.Current,
		tx.Installments.Total,
		tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// GetByID retrieves a transaction by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Transaction, error) {
	query := `
		SELECT id, user_id, type, total_amount, category, merchant, payment_method, installments_current, installments_total, date, created_at
		FROM transactions
		WHERE id = $1
	`

	tx := &Transaction{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Type,
		&tx.TotalAmount,
		&tx.Category,
		&tx.Merchant,
		&tx.PaymentMethod,
		&tx.Installments.Current,
		&tx.Installments.Total,
		&tx.Date,
		&tx.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// ListByUser retrieves a user's transactions, newest first
func (r *Repository) ListByUser(ctx context.Context, userID int64, filters ListFilters) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, type, total_amount, category, merchant, payment_method, installments_current, installments_total, date, created_at
		FROM transactions
		WHERE user_id = $1
		  AND ($2 = '' OR type = $2)
		  AND ($3 = '' OR category = $3)
		  AND ($4::timestamptz IS NULL OR date >= $4)
		  AND ($5::timestamptz IS NULL OR date < $5)
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, filters.Type, filters.Category, filters.From, filters.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Type,
			&tx.TotalAmount,
			&tx.Category,
			&tx.Merchant,
			&tx.PaymentMethod,
			&tx.Installments.Current,
			&tx.Installments.Total,
			&tx.Date,
			&tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// MonthlySums returns the income total and the direct (non-credit) expense
// total for the given date range. Credit expenses are accounted separately
// through their installment shares.
func (r *Repository) MonthlySums(ctx context.Context, userID int64, from, to time.Time) (income, directExpenses decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN total_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' AND payment_method <> 'credit' THEN total_amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
	`

	err = r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&income, &directExpenses)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum month: %w", err)
	}

	return income, directExpenses, nil
}

// MonthlyTotals returns the income total and the full expense total for the
// given date range, credit purchases counted at face value
func (r *Repository) MonthlyTotals(ctx context.Context, userID int64, from, to time.Time) (income, expenses decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN total_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN total_amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
	`

	err = r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&income, &expenses)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to total month: %w", err)
	}

	return income, expenses, nil
}

// ListCreditSince retrieves credit expense purchases dated on or after since.
// Callers bound the lookback so fully amortized plans stay out of the scan.
func (r *Repository) ListCreditSince(ctx context.Context, userID int64, since time.Time) ([]*Transaction, error) {
	query := `
		SELECT id, user_id, type, total_amount, category, merchant, payment_method, installments_current, installments_total, date, created_at
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND payment_method = 'credit' AND date >= $2
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit purchases: %w", err)
	}
	defer rows.Close()

	var txs []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Type,
			&tx.TotalAmount,
			&tx.Category,
			&tx.Merchant,
			&tx.PaymentMethod,
			&tx.Installments.Current,
			&tx.Installments.Total,
			&tx.Date,
			&tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

// SumExpensesByCategory totals expenses per category for the given range
func (r *Repository) SumExpensesByCategory(ctx context.Context, userID int64, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT category, COALESCE(SUM(total_amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'expense' AND date >= $2 AND date < $3
		GROUP BY category
	`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("failed to scan category sum: %w", err)
		}
		totals[category] = total
	}

	return totals, rows.Err()
}

// Update edits a transaction's mutable fields
func (r *Repository) Update(ctx context.Context, tx *Transaction) (*Transaction, error) {
	query := `
		UPDATE transactions
		SET total_amount = $2, category = $3, merchant = $4, date = $5
		WHERE id = $1
		RETURNING id, user_id, type, total_amount, category, merchant, payment_method, installments_current, installments_total, date, created_at
	`

	updated := &Transaction{}
	err := r.db.QueryRowContext(ctx, query, tx.ID, tx.TotalAmount, tx.Category, tx.Merchant, tx.Date).Scan(
		&updated.ID,
		&updated.UserID,
		&updated.Type,
		&updated.TotalAmount,
		&updated.Category,
		&updated.Merchant,
		&updated.PaymentMethod,
		&updated.Installments.Current,
		&updated.Installments.Total,
		&updated.Date,
		&updated.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return updated, nil
}

// Delete removes a transaction
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
