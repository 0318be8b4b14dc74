package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles pantry data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new inventory repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const itemColumns = `id, user_id, name, quantity, unit, category, expiry_date,
	estimated_life_days, purchase_date, status, price, source_transaction,
	created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.Category,
		&item.ExpiryDate,
		&item.EstimatedLifeDays,
		&item.PurchaseDate,
		&item.Status,
		&item.Price,
		&item.SourceTransaction,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create inserts a pantry item
func (r *Repository) Create(ctx context.Context, item *Item) (*Item, error) {
	query := `
		INSERT INTO inventory_items (user_id, name, quantity, unit, category, expiry_date, estimated_life_days, purchase_date, status, price, source_transaction)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.UserID,
		item.Name,
		item.Quantity,
		item.Unit,
		item.Category,
		item.ExpiryDate,
		item.EstimatedLifeDays,
		item.PurchaseDate,
		item.Status,
		item.Price,
		item.SourceTransaction,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

// GetByID retrieves one of the user's items; nil when absent
func (r *Repository) GetByID(ctx context.Context, id, userID int64) (*Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE id = $1 AND user_id = $2`, itemColumns)

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

// ListByUser retrieves the user's pantry, soonest to expire first
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inventory_items
		WHERE user_id = $1
		ORDER BY expiry_date ASC NULLS LAST, purchase_date ASC
	`, itemColumns)

	return r.list(ctx, query, userID)
}

// ListActive retrieves items still in the pantry, excluding consumed and
// discarded ones
func (r *Repository) ListActive(ctx context.Context, userID int64) ([]*Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inventory_items
		WHERE user_id = $1 AND status = 'fresh'
		ORDER BY expiry_date ASC NULLS LAST, purchase_date ASC
	`, itemColumns)

	return r.list(ctx, query, userID)
}

// ListConsumedSince retrieves items consumed on or after the cutoff
func (r *Repository) ListConsumedSince(ctx context.Context, userID int64, since time.Time) ([]*Item, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inventory_items
		WHERE user_id = $1 AND status = 'consumed' AND updated_at >= $2
		ORDER BY updated_at DESC
	`, itemColumns)

	return r.list(ctx, query, userID, since)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Update persists an item's mutable fields
func (r *Repository) Update(ctx context.Context, item *Item) error {
	query := `
		UPDATE inventory_items
		SET name = $2, quantity = $3, unit = $4, expiry_date = $5,
		    estimated_life_days = $6, status = $7, price = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID,
		item.Name,
		item.Quantity,
		item.Unit,
		item.ExpiryDate,
		item.EstimatedLifeDays,
		item.Status,
		item.Price,
	).Scan(&item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	return nil
}

// Delete removes an item from the pantry
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
