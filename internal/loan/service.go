package loan

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrInvalidDirection    = errors.New("direction must be lent or borrowed")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrCounterpartyMissing = errors.New("a counterparty ID or name is required")
	ErrInvalidAction       = errors.New("action must be mark_paid or confirm_paid")
	ErrNotBorrower         = errors.New("only the borrower can mark a loan as paid")
	ErrNotLender           = errors.New("only the lender can confirm the repayment")
	ErrNotCreator          = errors.New("only the loan's creator can modify it")
	ErrAlreadyPaid         = errors.New("loan is already settled")
	ErrNotPending          = errors.New("loan is not pending")
)

const (
	DirectionLent     = "lent"
	DirectionBorrowed = "borrowed"

	ActionMarkPaid    = "mark_paid"
	ActionConfirmPaid = "confirm_paid"
)

// Service handles loan business logic
type Service struct {
	repo *Repository
}

// NewService creates a new loan service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a loan with the authenticated user on one side
func (s *Service) Create(ctx context.Context, userID int64, req *CreateLoanRequest) (*Loan, error) {
	loan, err := newLoan(userID, req)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, loan)
}

// newLoan validates the request and places the user on the side the
// direction names
func newLoan(userID int64, req *CreateLoanRequest) (*Loan, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.CounterpartyID == nil && req.CounterpartyName == "" {
		return nil, ErrCounterpartyMissing
	}

	loan := &Loan{
		CreatedBy:        userID,
		CounterpartyName: req.CounterpartyName,
		Amount:           req.Amount,
		Description:      req.Description,
		Status:           StatusPending,
		PaidAmount:       decimal.Zero,
		DueDate:          req.DueDate,
	}

	switch req.Direction {
	case DirectionLent:
		uid := userID
		loan.LenderID = &uid
		loan.BorrowerID = req.CounterpartyID
	case DirectionBorrowed:
		uid := userID
		loan.BorrowerID = &uid
		loan.LenderID = req.CounterpartyID
	default:
		return nil, ErrInvalidDirection
	}

	return loan, nil
}

// GetByID retrieves a loan the user is a party to
func (s *Service) GetByID(ctx context.Context, loanID, userID int64) (*Loan, error) {
	loan, err := s.repo.GetByID(ctx, loanID, userID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

// List retrieves all loans the user is a party to
func (s *Service) List(ctx context.Context, userID int64) ([]*Loan, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update edits a pending loan; only its creator may do so
func (s *Service) Update(ctx context.Context, loanID, userID int64, req *UpdateLoanRequest) (*Loan, error) {
	loan, err := s.GetByID(ctx, loanID, userID)
	if err != nil {
		return nil, err
	}
	if loan.CreatedBy != userID {
		return nil, ErrNotCreator
	}
	if loan.Status != StatusPending {
		return nil, ErrNotPending
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		loan.Amount = *req.Amount
	}
	if req.Description != nil {
		loan.Description = *req.Description
	}
	if req.DueDate != nil {
		loan.DueDate = req.DueDate
	}

	if err := s.repo.Update(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Paid advances the repayment handshake. The borrower marks the loan paid;
// the lender then confirms, which finalizes it.
func (s *Service) Paid(ctx context.Context, loanID, userID int64, req *PaidRequest) (*Loan, error) {
	loan, err := s.GetByID(ctx, loanID, userID)
	if err != nil {
		return nil, err
	}

	switch req.Action {
	case ActionMarkPaid:
		return s.markPaid(ctx, loan, userID, req.Method)
	case ActionConfirmPaid:
		return s.confirmPaid(ctx, loan, userID)
	default:
		return nil, ErrInvalidAction
	}
}

func (s *Service) markPaid(ctx context.Context, loan *Loan, userID int64, method string) (*Loan, error) {
	if loan.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}
	if !loan.IsBorrower(userID) {
		return nil, ErrNotBorrower
	}

	loan.Status = StatusMarkedPaid
	loan.PaidAmount = loan.Amount

	payment := &Payment{
		LoanID: loan.ID,
		Amount: loan.Amount,
		Method: method,
		Status: "completed",
		Date:   time.Now(),
	}
	if err := s.repo.MarkPaid(ctx, loan, payment); err != nil {
		return nil, err
	}
	loan.Payments = append(loan.Payments, payment)
	return loan, nil
}

func (s *Service) confirmPaid(ctx context.Context, loan *Loan, userID int64) (*Loan, error) {
	if loan.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}
	if !loan.IsLender(userID) {
		return nil, ErrNotLender
	}

	now := time.Now()
	loan.Status = StatusPaid
	loan.PaidAmount = loan.Amount
	loan.PaidAt = &now

	if err := s.repo.ConfirmPaid(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Delete removes a loan; only its creator may do so
func (s *Service) Delete(ctx context.Context, loanID, userID int64) error {
	loan, err := s.GetByID(ctx, loanID, userID)
	if err != nil {
		return err
	}
	if loan.CreatedBy != userID {
		return ErrNotCreator
	}
	return s.repo.Delete(ctx, loanID)
}
