package subscription

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles subscription data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new subscription repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a subscription and its members
func (r *Repository) Create(ctx context.Context, sub *Subscription) (*Subscription, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO subscriptions (owner_id, name, amount, currency, billing_day, category, shared, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err = dbTx.QueryRowContext(ctx, query,
		sub.OwnerID,
		sub.Name,
		sub.Amount,
		sub.Currency,
		sub.BillingDay,
		sub.Category,
		sub.Shared,
		sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	for _, m := range sub.Members {
		m.SubscriptionID = sub.ID
		err = dbTx.QueryRowContext(ctx,
			`INSERT INTO subscription_members (subscription_id, name, share_amount) VALUES ($1, $2, $3) RETURNING id`,
			sub.ID, m.Name, m.ShareAmount,
		).Scan(&m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit subscription: %w", err)
	}

	return sub, nil
}

// GetByID retrieves a subscription owned by the given user, members loaded
func (r *Repository) GetByID(ctx context.Context, subID, userID int64) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, amount, currency, billing_day, category, shared, status, created_at
		FROM subscriptions
		WHERE id = $1 AND owner_id = $2
	`, subID, userID).Scan(
		&sub.ID,
		&sub.OwnerID,
		&sub.Name,
		&sub.Amount,
		&sub.Currency,
		&sub.BillingDay,
		&sub.Category,
		&sub.Shared,
		&sub.Status,
		&sub.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, subscription_id, name, share_amount FROM subscription_members WHERE subscription_id = $1 ORDER BY id`,
		subID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ID, &m.SubscriptionID, &m.Name, &m.ShareAmount); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		sub.Members = append(sub.Members, m)
	}

	return sub, rows.Err()
}

// ListByUser retrieves all subscriptions owned by the user
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, amount, currency, billing_day, category, shared, status, created_at
		FROM subscriptions
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*Subscription
	for rows.Next() {
		sub := &Subscription{}
		if err := rows.Scan(
			&sub.ID,
			&sub.OwnerID,
			&sub.Name,
			&sub.Amount,
			&sub.Currency,
			&sub.BillingDay,
			&sub.Category,
			&sub.Shared,
			&sub.Status,
			&sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// Update edits a subscription
func (r *Repository) Update(ctx context.Context, sub *Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET name = $2, amount = $3, currency = $4, billing_day = $5, category = $6, status = $7
		WHERE id = $1
	`, sub.ID, sub.Name, sub.Amount, sub.Currency, sub.BillingDay, sub.Category, sub.Status)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

// Delete removes a subscription with its members and payment history
func (r *Repository) Delete(ctx context.Context, subID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, subID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// UpsertPayment records one month's billing as paid. A month can be
// confirmed at most once; re-confirming just refreshes the paid date.
func (r *Repository) UpsertPayment(ctx context.Context, p *PaymentRecord) (*PaymentRecord, error) {
	query := `
		INSERT INTO subscription_payments (subscription_id, month, year, due_date, amount, is_paid, paid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subscription_id, month, year)
		DO UPDATE SET is_paid = EXCLUDED.is_paid, paid_date = EXCLUDED.paid_date
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		p.SubscriptionID,
		p.Month,
		p.Year,
		p.DueDate,
		p.Amount,
		p.IsPaid,
		p.PaidDate,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return p, nil
}

// ListPayments retrieves the billing history for a subscription, newest
// month first
func (r *Repository) ListPayments(ctx context.Context, subID int64) ([]*PaymentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, subscription_id, month, year, due_date, amount, is_paid, paid_date
		FROM subscription_payments
		WHERE subscription_id = $1
		ORDER BY year DESC, month DESC
	`, subID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*PaymentRecord
	for rows.Next() {
		p := &PaymentRecord{}
		if err := rows.Scan(&p.ID, &p.SubscriptionID, &p.Month, &p.Year, &p.DueDate, &p.Amount, &p.IsPaid, &p.PaidDate); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
