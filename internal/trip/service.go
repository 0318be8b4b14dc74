package trip

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/trip/settle"
)

// Common errors
var (
	ErrTripNotFound           = errors.New("trip not found")
	ErrNameRequired           = errors.New("trip name is required")
	ErrInvalidStatus          = errors.New("invalid trip status")
	ErrInvalidAmount          = errors.New("amount cannot be negative")
	ErrPayerNotParticipant    = errors.New("payer is not a trip participant")
	ErrUnknownSplitMember     = errors.New("some split participants are not on the trip")
	ErrSplitMismatch          = errors.New("split amounts do not add up to the expense amount")
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrParticipantHasExpenses = errors.New("participant has expenses on the trip")
	ErrExpenseNotFound        = errors.New("expense not found")
)

// splitTolerance is how far the split sum may drift from the expense amount
// before the write is rejected
var splitTolerance = decimal.NewFromFloat(0.01)

// Service handles trip business logic
type Service struct {
	repo *Repository
}

// NewService creates a new trip service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a trip with its initial participants
func (s *Service) Create(ctx context.Context, userID int64, req *CreateTripRequest) (*Trip, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	trip := &Trip{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      StatusActive,
	}
	if trip.StartDate.IsZero() {
		trip.StartDate = time.Now()
	}

	for _, in := range req.Participants {
		trip.Participants = append(trip.Participants, &Participant{
			UserID: in.UserID,
			Name:   in.Name,
			Email:  in.Email,
		})
	}

	return s.repo.Create(ctx, trip)
}

// GetByID retrieves a trip with full details, enforcing ownership
func (s *Service) GetByID(ctx context.Context, tripID, userID int64) (*Trip, error) {
	trip, err := s.repo.GetByID(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// List retrieves all trips owned by the user
func (s *Service) List(ctx context.Context, userID int64) ([]*Trip, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update edits a trip's descriptive fields
func (s *Service) Update(ctx context.Context, tripID, userID int64, req *UpdateTripRequest) (*Trip, error) {
	trip, err := s.GetByID(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		trip.Name = *req.Name
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = req.EndDate
	}

	if err := s.repo.Update(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// UpdateStatus changes the trip lifecycle state
func (s *Service) UpdateStatus(ctx context.Context, tripID, userID int64, status string) (*Trip, error) {
	st := Status(status)
	if st != StatusActive && st != StatusCompleted && st != StatusCancelled {
		return nil, ErrInvalidStatus
	}

	trip, err := s.GetByID(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, tripID, st); err != nil {
		return nil, err
	}
	trip.Status = st
	return trip, nil
}

// Delete removes a trip with everything on it
func (s *Service) Delete(ctx context.Context, tripID, userID int64) error {
	if _, err := s.GetByID(ctx, tripID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tripID)
}

// AddParticipant adds one participant to a trip
func (s *Service) AddParticipant(ctx context.Context, tripID, userID int64, req *ParticipantInput) (*Trip, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	trip, err := s.GetByID(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	p := &Participant{TripID: trip.ID, UserID: req.UserID, Name: req.Name, Email: req.Email}
	if _, err := s.repo.AddParticipant(ctx, p); err != nil {
		return nil, err
	}
	trip.Participants = append(trip.Participants, p)
	return trip, nil
}

// RemoveParticipant removes a participant, refusing while they still appear
// on any expense
func (s *Service) RemoveParticipant(ctx context.Context, tripID, userID, participantID int64) (*Trip, error) {
	trip, err := s.GetByID(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, p := range trip.Participants {
		if p.ID == participantID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrParticipantNotFound
	}

	hasExpenses, err := s.repo.ParticipantHasExpenses(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if hasExpenses {
		return nil, ErrParticipantHasExpenses
	}

	if err := s.repo.RemoveParticipant(ctx, participantID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tripID, userID)
}

// AddExpense validates and records a shared expense on the trip
func (s *Service) AddExpense(ctx context.Context, tripID, userID int64, req *AddExpenseRequest) (*Trip, error) {
	trip, err := s.GetByID(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	expense, err := buildExpense(trip, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.AddExpense(ctx, expense); err != nil {
		return nil, err
	}
	trip.Expenses = append(trip.Expenses, expense)
	return trip, nil
}

// RemoveExpense deletes one expense from the trip
func (s *Service) RemoveExpense(ctx context.Context, tripID, userID, expenseID int64) (*Trip, error) {
	if _, err := s.GetByID(ctx, tripID, userID); err != nil {
		return nil, err
	}

	if err := s.repo.RemoveExpense(ctx, tripID, expenseID); err != nil {
		return nil, removeExpenseError(err)
	}
	return s.GetByID(ctx, tripID, userID)
}

// removeExpenseError keeps ErrExpenseNotFound for the zero-rows case and
// passes repository failures through unchanged
func removeExpenseError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrExpenseNotFound
	}
	return err
}

// Settlement computes per-participant balances and the transfer plan that
// zeroes them out. Nothing is persisted; the plan is recomputed per request
// from the trip's expenses.
func (s *Service) Settlement(ctx context.Context, tripID, userID int64) (*SettlementEnvelope, error) {
	trip, err := s.GetByID(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	balances, transfers := settleTrip(trip)
	return newSettlementEnvelope(trip, balances, transfers), nil
}

// settleTrip maps the trip onto the settlement engine's inputs
func settleTrip(trip *Trip) (map[string]decimal.Decimal, []settle.Transfer) {
	keyByID := make(map[int64]string, len(trip.Participants))
	keys := make([]string, len(trip.Participants))
	for i, p := range trip.Participants {
		keyByID[p.ID] = p.Key()
		keys[i] = p.Key()
	}

	expenses := make([]settle.Expense, len(trip.Expenses))
	for i, e := range trip.Expenses {
		splits := make([]settle.Split, len(e.Splits))
		for j, sp := range e.Splits {
			splits[j] = settle.Split{Participant: keyByID[sp.ParticipantID], Amount: sp.Amount}
		}
		expenses[i] = settle.Expense{PaidBy: keyByID[e.PaidByID], Amount: e.Amount, Splits: splits}
	}

	balances := settle.Balances(keys, expenses)
	return balances, settle.Plan(balances)
}

// buildExpense resolves participant references and enforces that the split
// amounts add up to the expense amount
func buildExpense(trip *Trip, req *AddExpenseRequest) (*Expense, error) {
	if req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	payer := findParticipant(trip, req.PaidBy.UserID, req.PaidBy.Name)
	if payer == nil {
		return nil, ErrPayerNotParticipant
	}

	splitSum := decimal.Zero
	splits := make([]*Split, len(req.SplitBetween))
	for i, in := range req.SplitBetween {
		member := findParticipant(trip, in.UserID, in.Name)
		if member == nil {
			return nil, ErrUnknownSplitMember
		}
		splits[i] = &Split{ParticipantID: member.ID, Amount: in.Amount}
		splitSum = splitSum.Add(in.Amount)
	}

	if splitSum.Sub(req.Amount).Abs().GreaterThan(splitTolerance) {
		return nil, ErrSplitMismatch
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	category := req.Category
	if category == "" {
		category = CategoryOther
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	return &Expense{
		TripID:      trip.ID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		Category:    category,
		PaidByID:    payer.ID,
		Date:        date,
		Splits:      splits,
	}, nil
}

// findParticipant matches a reference against the trip roster by user ID
// first, then by name
func findParticipant(trip *Trip, userID *int64, name string) *Participant {
	for _, p := range trip.Participants {
		if userID != nil && p.UserID != nil && *p.UserID == *userID {
			return p
		}
		if name != "" && p.Name == name {
			return p
		}
	}
	return nil
}
