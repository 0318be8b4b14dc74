package trip

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles trip data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a trip and its initial participants
func (r *Repository) Create(ctx context.Context, trip *Trip) (*Trip, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO trips (user_id, name, description, destination, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err = dbTx.QueryRowContext(ctx, query,
		trip.UserID,
		trip.Name,
		trip.Description,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.Status,
	).Scan(&trip.ID, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	for _, p := range trip.Participants {
		p.TripID = trip.ID
		err = dbTx.QueryRowContext(ctx,
			`INSERT INTO trip_participants (trip_id, user_id, name, email) VALUES ($1, $2, $3, $4) RETURNING id`,
			trip.ID, p.UserID, p.Name, p.Email,
		).Scan(&p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to add participant: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trip: %w", err)
	}

	return trip, nil
}

// GetByID retrieves a trip owned by the given user, with participants,
// expenses and splits loaded
func (r *Repository) GetByID(ctx context.Context, tripID, userID int64) (*Trip, error) {
	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, destination, start_date, end_date, status, created_at, updated_at
		FROM trips
		WHERE id = $1 AND user_id = $2
	`, tripID, userID).Scan(
		&trip.ID,
		&trip.UserID,
		&trip.Name,
		&trip.Description,
		&trip.Destination,
		&trip.StartDate,
		&trip.EndDate,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if trip.Participants, err = r.listParticipants(ctx, tripID); err != nil {
		return nil, err
	}
	if trip.Expenses, err = r.listExpenses(ctx, tripID); err != nil {
		return nil, err
	}

	return trip, nil
}

// ListByUser retrieves all trips owned by the user, newest first, without
// expense details
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*Trip, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, destination, start_date, end_date, status, created_at, updated_at
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip := &Trip{}
		if err := rows.Scan(
			&trip.ID,
			&trip.UserID,
			&trip.Name,
			&trip.Description,
			&trip.Destination,
			&trip.StartDate,
			&trip.EndDate,
			&trip.Status,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

func (r *Repository) listParticipants(ctx context.Context, tripID int64) ([]*Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, trip_id, user_id, name, email
		FROM trip_participants
		WHERE trip_id = $1
		ORDER BY id
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		p := &Participant{}
		if err := rows.Scan(&p.ID, &p.TripID, &p.UserID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (r *Repository) listExpenses(ctx context.Context, tripID int64) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, trip_id, description, amount, currency, category, paid_by, date
		FROM trip_expenses
		WHERE trip_id = $1
		ORDER BY date, id
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	byID := make(map[int64]*Expense)
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(&e.ID, &e.TripID, &e.Description, &e.Amount, &e.Currency, &e.Category, &e.PaidByID, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	splitRows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.expense_id, s.participant_id, s.amount
		FROM trip_expense_splits s
		JOIN trip_expenses e ON s.expense_id = e.id
		WHERE e.trip_id = $1
		ORDER BY s.id
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		s := &Split{}
		if err := splitRows.Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if e, ok := byID[s.ExpenseID]; ok {
			e.Splits = append(e.Splits, s)
		}
	}

	return expenses, splitRows.Err()
}

// Update edits a trip's descriptive fields
func (r *Repository) Update(ctx context.Context, trip *Trip) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE trips
		SET name = $2, description = $3, destination = $4, start_date = $5, end_date = $6, updated_at = NOW()
		WHERE id = $1
	`, trip.ID, trip.Name, trip.Description, trip.Destination, trip.StartDate, trip.EndDate)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

// UpdateStatus changes the trip lifecycle state
func (r *Repository) UpdateStatus(ctx context.Context, tripID int64, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE trips SET status = $2, updated_at = NOW() WHERE id = $1`, tripID, status)
	if err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}
	return nil
}

// Delete removes a trip and, via cascade, its participants and expenses
func (r *Repository) Delete(ctx context.Context, tripID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// AddParticipant inserts one participant
func (r *Repository) AddParticipant(ctx context.Context, p *Participant) (*Participant, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO trip_participants (trip_id, user_id, name, email) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.TripID, p.UserID, p.Name, p.Email,
	).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}
	return p, nil
}

// ParticipantHasExpenses reports whether the participant paid or shares any
// expense on the trip
func (r *Repository) ParticipantHasExpenses(ctx context.Context, participantID int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM trip_expenses e
		LEFT JOIN trip_expense_splits s ON s.expense_id = e.id
		WHERE e.paid_by = $1 OR s.participant_id = $1
	`, participantID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check participant expenses: %w", err)
	}
	return count > 0, nil
}

// RemoveParticipant deletes one participant
func (r *Repository) RemoveParticipant(ctx context.Context, participantID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip_participants WHERE id = $1`, participantID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// AddExpense inserts an expense and its splits atomically
func (r *Repository) AddExpense(ctx context.Context, e *Expense) (*Expense, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer dbTx.Rollback()

	err = dbTx.QueryRowContext(ctx, `
		INSERT INTO trip_expenses (trip_id, description, amount, currency, category, paid_by, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, e.TripID, e.Description, e.Amount, e.Currency, e.Category, e.PaidByID, e.Date).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	for _, s := range e.Splits {
		s.ExpenseID = e.ID
		err = dbTx.QueryRowContext(ctx,
			`INSERT INTO trip_expense_splits (expense_id, participant_id, amount) VALUES ($1, $2, $3) RETURNING id`,
			e.ID, s.ParticipantID, s.Amount,
		).Scan(&s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to add split: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return e, nil
}

// RemoveExpense deletes an expense and, via cascade, its splits
func (r *Repository) RemoveExpense(ctx context.Context, tripID, expenseID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trip_expenses WHERE id = $1 AND trip_id = $2`, expenseID, tripID)
	if err != nil {
		return fmt.Errorf("failed to remove expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
