package subscription

import (
	"context"
	"errors"
	"time"
)

// Common errors
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrNameRequired         = errors.New("subscription name is required")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidBillingDay    = errors.New("billing day must be between 1 and 28")
	ErrInvalidStatus        = errors.New("invalid subscription status")
	ErrInvalidPeriod        = errors.New("month must be 1-12 and year must be set")
)

// Service handles subscription business logic
type Service struct {
	repo *Repository
}

// NewService creates a new subscription service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a subscription
func (s *Service) Create(ctx context.Context, userID int64, req *CreateSubscriptionRequest) (*Subscription, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.BillingDay < 1 || req.BillingDay > 28 {
		return nil, ErrInvalidBillingDay
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	sub := &Subscription{
		OwnerID:    userID,
		Name:       req.Name,
		Amount:     req.Amount,
		Currency:   currency,
		BillingDay: req.BillingDay,
		Category:   req.Category,
		Shared:     len(req.Members) > 0,
		Status:     StatusActive,
	}
	for _, in := range req.Members {
		sub.Members = append(sub.Members, &Member{Name: in.Name, ShareAmount: in.ShareAmount})
	}

	return s.repo.Create(ctx, sub)
}

// GetByID retrieves a subscription, enforcing ownership
func (s *Service) GetByID(ctx context.Context, subID, userID int64) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, subID, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}
	return sub, nil
}

// List retrieves all subscriptions owned by the user
func (s *Service) List(ctx context.Context, userID int64) ([]*Subscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update edits a subscription
func (s *Service) Update(ctx context.Context, subID, userID int64, req *UpdateSubscriptionRequest) (*Subscription, error) {
	sub, err := s.GetByID(ctx, subID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		sub.Name = *req.Name
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		sub.Amount = *req.Amount
	}
	if req.Currency != nil {
		sub.Currency = *req.Currency
	}
	if req.BillingDay != nil {
		if *req.BillingDay < 1 || *req.BillingDay > 28 {
			return nil, ErrInvalidBillingDay
		}
		sub.BillingDay = *req.BillingDay
	}
	if req.Category != nil {
		sub.Category = *req.Category
	}
	if req.Status != nil {
		st := Status(*req.Status)
		if st != StatusActive && st != StatusPaused && st != StatusCancelled {
			return nil, ErrInvalidStatus
		}
		sub.Status = st
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete removes a subscription
func (s *Service) Delete(ctx context.Context, subID, userID int64) error {
	if _, err := s.GetByID(ctx, subID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, subID)
}

// ConfirmPayment marks one month's charge as paid. The due date follows
// from the subscription's billing day.
func (s *Service) ConfirmPayment(ctx context.Context, subID, userID int64, req *ConfirmPaymentRequest) (*PaymentRecord, error) {
	if req.Month < 1 || req.Month > 12 || req.Year == 0 {
		return nil, ErrInvalidPeriod
	}

	sub, err := s.GetByID(ctx, subID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &PaymentRecord{
		SubscriptionID: sub.ID,
		Month:          req.Month,
		Year:           req.Year,
		DueDate:        sub.DueDate(time.Month(req.Month), req.Year),
		Amount:         sub.Amount,
		IsPaid:         true,
		PaidDate:       &now,
	}

	return s.repo.UpsertPayment(ctx, record)
}

// Payments retrieves the billing history for a subscription
func (s *Service) Payments(ctx context.Context, subID, userID int64) ([]*PaymentRecord, error) {
	if _, err := s.GetByID(ctx, subID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListPayments(ctx, subID)
}
