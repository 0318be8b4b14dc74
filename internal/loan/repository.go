package loan

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles loan data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new loan repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a loan
func (r *Repository) Create(ctx context.Context, loan *Loan) (*Loan, error) {
	query := `
		INSERT INTO loans (created_by, lender_id, borrower_id, counterparty_name, amount, description, status, paid_amount, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		loan.CreatedBy,
		loan.LenderID,
		loan.BorrowerID,
		loan.CounterpartyName,
		loan.Amount,
		loan.Description,
		loan.Status,
		loan.PaidAmount,
		loan.DueDate,
	).Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}
	return loan, nil
}

// GetByID retrieves a loan visible to the given user: one they created or
// one they are a party to
func (r *Repository) GetByID(ctx context.Context, loanID, userID int64) (*Loan, error) {
	loan := &Loan{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, created_by, lender_id, borrower_id, counterparty_name, amount, description, status, paid_amount, due_date, paid_at, created_at
		FROM loans
		WHERE id = $1 AND (created_by = $2 OR lender_id = $2 OR borrower_id = $2)
	`, loanID, userID).Scan(
		&loan.ID,
		&loan.CreatedBy,
		&loan.LenderID,
		&loan.BorrowerID,
		&loan.CounterpartyName,
		&loan.Amount,
		&loan.Description,
		&loan.Status,
		&loan.PaidAmount,
		&loan.DueDate,
		&loan.PaidAt,
		&loan.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	if loan.Payments, err = r.listPayments(ctx, loanID); err != nil {
		return nil, err
	}
	return loan, nil
}

// ListByUser retrieves all loans the user is a party to, newest first
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Loan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_by, lender_id, borrower_id, counterparty_name, amount, description, status, paid_amount, due_date, paid_at, created_at
		FROM loans
		WHERE created_by = $1 OR lender_id = $1 OR borrower_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []*Loan
	for rows.Next() {
		loan := &Loan{}
		if err := rows.Scan(
			&loan.ID,
			&loan.CreatedBy,
			&loan.LenderID,
			&loan.BorrowerID,
			&loan.CounterpartyName,
			&loan.Amount,
			&loan.Description,
			&loan.Status,
			&loan.PaidAmount,
			&loan.DueDate,
			&loan.PaidAt,
			&loan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}

	return loans, rows.Err()
}

func (r *Repository) listPayments(ctx context.Context, loanID int64) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, loan_id, amount, method, status, date
		FROM loan_payments
		WHERE loan_id = $1
		ORDER BY date, id
	`, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
		if err := rows.Scan(&p.ID, &p.LoanID, &p.Amount, &p.Method, &p.Status, &p.Date); err != nil {
			return nil, fmt.Errorf("failed to scan loan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// Update edits a loan's editable fields
func (r *Repository) Update(ctx context.Context, loan *Loan) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE loans
		SET amount = $2, description = $3, due_date = $4
		WHERE id = $1
	`, loan.ID, loan.Amount, loan.Description, loan.DueDate)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	return nil
}

// MarkPaid flips the loan to marked_paid and records the repayment in one
// transaction
func (r *Repository) MarkPaid(ctx context.Context, loan *Loan, payment *Payment) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.ExecContext(ctx,
		`UPDATE loans SET status = $2, paid_amount = $3 WHERE id = $1`,
		loan.ID, loan.Status, loan.PaidAmount)
	if err != nil {
		return fmt.Errorf("failed to mark loan paid: %w", err)
	}

	err = dbTx.QueryRowContext(ctx,
		`INSERT INTO loan_payments (loan_id, amount, method, status, date) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		loan.ID, payment.Amount, payment.Method, payment.Status, payment.Date,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("failed to record loan payment: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit loan payment: %w", err)
	}
	return nil
}

// ConfirmPaid finalizes the loan as paid
func (r *Repository) ConfirmPaid(ctx context.Context, loan *Loan) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE loans SET status = $2, paid_amount = $3, paid_at = $4 WHERE id = $1`,
		loan.ID, loan.Status, loan.PaidAmount, loan.PaidAt)
	if err != nil {
		return fmt.Errorf("failed to confirm loan paid: %w", err)
	}
	return nil
}

// Delete removes a loan and its payment history
func (r *Repository) Delete(ctx context.Context, loanID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
