package splitbill

import (
	"context"
	"database/sql"
	"fmt"
)

// listLimit caps how many bills a listing returns
const listLimit = 20

// Repository handles split-bill data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new split-bill repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a bill with its items and participants in one transaction
func (r *Repository) Create(ctx context.Context, bill *Bill) (*Bill, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO split_bills (transaction_id, creator_id, split_type, tip_amount, tip_distribution, total_amount, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`,
		bill.TransactionID,
		bill.CreatorID,
		bill.SplitType,
		bill.TipAmount,
		bill.TipDistribution,
		bill.TotalAmount,
		bill.Status,
		bill.Notes,
	).Scan(&bill.ID, &bill.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create split bill: %w", err)
	}

	for _, item := range bill.Items {
		item.BillID = bill.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO split_bill_items (bill_id, name, price, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, bill.ID, item.Name, item.Price, item.Quantity).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create bill item: %w", err)
		}
	}

	for _, p := range bill.Participants {
		p.BillID = bill.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO split_bill_participants (bill_id, user_id, name, subtotal, tip_amount, total, paid)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, bill.ID, p.UserID, p.Name, p.Subtotal, p.TipAmount, p.Total, p.Paid).Scan(&p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create bill participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit split bill: %w", err)
	}
	return bill, nil
}

// GetByID retrieves one of the creator's bills with items, participants
// and item assignments; nil when absent
func (r *Repository) GetByID(ctx context.Context, id, creatorID int64) (*Bill, error) {
	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, transaction_id, creator_id, split_type, tip_amount, tip_distribution, total_amount, status, notes, created_at
		FROM split_bills
		WHERE id = $1 AND creator_id = $2
	`, id, creatorID).Scan(
		&bill.ID,
		&bill.TransactionID,
		&bill.CreatorID,
		&bill.SplitType,
		&bill.TipAmount,
		&bill.TipDistribution,
		&bill.TotalAmount,
		&bill.Status,
		&bill.Notes,
		&bill.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get split bill: %w", err)
	}

	if err := r.loadChildren(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListByCreator retrieves the user's bills, newest first
func (r *Repository) ListByCreator(ctx context.Context, creatorID int64) ([]*Bill, error) {
	query := `
		SELECT id, transaction_id, creator_id, split_type, tip_amount, tip_distribution, total_amount, status, notes, created_at
		FROM split_bills
		WHERE creator_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.listBills(ctx, query, creatorID, listLimit)
}

// ListByTransaction retrieves the splits the user created over one
// transaction
func (r *Repository) ListByTransaction(ctx context.Context, transactionID, creatorID int64) ([]*Bill, error) {
	query := `
		SELECT id, transaction_id, creator_id, split_type, tip_amount, tip_distribution, total_amount, status, notes, created_at
		FROM split_bills
		WHERE transaction_id = $1 AND creator_id = $2
		ORDER BY created_at DESC
	`
	return r.listBills(ctx, query, transactionID, creatorID)
}

func (r *Repository) listBills(ctx context.Context, query string, args ...any) ([]*Bill, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list split bills: %w", err)
	}
	defer rows.Close()

	var bills []*Bill
	for rows.Next() {
		bill := &Bill{}
		if err := rows.Scan(
			&bill.ID,
			&bill.TransactionID,
			&bill.CreatorID,
			&bill.SplitType,
			&bill.TipAmount,
			&bill.TipDistribution,
			&bill.TotalAmount,
			&bill.Status,
			&bill.Notes,
			&bill.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, bill := range bills {
		if err := r.loadChildren(ctx, bill); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

func (r *Repository) loadChildren(ctx context.Context, bill *Bill) error {
	itemRows, err := r.db.QueryContext(ctx, `
		SELECT id, bill_id, name, price, quantity
		FROM split_bill_items
		WHERE bill_id = $1
		ORDER BY id
	`, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to list bill items: %w", err)
	}
	defer itemRows.Close()

	bill.Items = []*Item{}
	for itemRows.Next() {
		item := &Item{}
		if err := itemRows.Scan(&item.ID, &item.BillID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan bill item: %w", err)
		}
		bill.Items = append(bill.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	participantRows, err := r.db.QueryContext(ctx, `
		SELECT id, bill_id, user_id, name, subtotal, tip_amount, total, paid
		FROM split_bill_participants
		WHERE bill_id = $1
		ORDER BY id
	`, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to list bill participants: %w", err)
	}
	defer participantRows.Close()

	byID := make(map[int64]*Participant)
	bill.Participants = []*Participant{}
	for participantRows.Next() {
		p := &Participant{AssignedItems: []int64{}}
		if err := participantRows.Scan(&p.ID, &p.BillID, &p.UserID, &p.Name, &p.Subtotal, &p.TipAmount, &p.Total, &p.Paid); err != nil {
			return fmt.Errorf("failed to scan bill participant: %w", err)
		}
		bill.Participants = append(bill.Participants, p)
		byID[p.ID] = p
	}
	if err := participantRows.Err(); err != nil {
		return err
	}

	assignmentRows, err := r.db.QueryContext(ctx, `
		SELECT item_id, participant_id
		FROM split_bill_item_assignments
		WHERE bill_id = $1
		ORDER BY item_id
	`, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to list item assignments: %w", err)
	}
	defer assignmentRows.Close()

	for assignmentRows.Next() {
		var itemID, participantID int64
		if err := assignmentRows.Scan(&itemID, &participantID); err != nil {
			return fmt.Errorf("failed to scan item assignment: %w", err)
		}
		if p, ok := byID[participantID]; ok {
			p.AssignedItems = append(p.AssignedItems, itemID)
		}
	}
	return assignmentRows.Err()
}

// SaveDistribution persists the recomputed shares, payment flags, tip
// fields, status and item assignments
func (r *Repository) SaveDistribution(ctx context.Context, bill *Bill) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE split_bills
		SET tip_amount = $2, tip_distribution = $3, status = $4
		WHERE id = $1
	`, bill.ID, bill.TipAmount, bill.TipDistribution, bill.Status)
	if err != nil {
		return fmt.Errorf("failed to update split bill: %w", err)
	}

	for _, p := range bill.Participants {
		_, err = tx.ExecContext(ctx, `
			UPDATE split_bill_participants
			SET subtotal = $2, tip_amount = $3, total = $4, paid = $5
			WHERE id = $1
		`, p.ID, p.Subtotal, p.TipAmount, p.Total, p.Paid)
		if err != nil {
			return fmt.Errorf("failed to update bill participant: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM split_bill_item_assignments WHERE bill_id = $1`, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to clear item assignments: %w", err)
	}
	for _, p := range bill.Participants {
		for _, itemID := range p.AssignedItems {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO split_bill_item_assignments (bill_id, item_id, participant_id)
				VALUES ($1, $2, $3)
			`, bill.ID, itemID, p.ID)
			if err != nil {
				return fmt.Errorf("failed to save item assignment: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit distribution: %w", err)
	}
	return nil
}

// UpdateStatus changes a bill's lifecycle state
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE split_bills SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
