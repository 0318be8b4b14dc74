// Package splitbill divides a single transaction among named contacts,
// equally or by consumed item, with the tip shared equally or in
// proportion to consumption. Trips cover multi-expense settlements; this
// is the one-receipt case.
package splitbill

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/transaction"
)

// Common errors
var (
	ErrBillNotFound           = errors.New("split bill not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrNotTransactionOwner    = errors.New("only the transaction's owner can split it")
	ErrTooFewParticipants     = errors.New("a split needs at least 2 participants")
	ErrInvalidSplitType       = errors.New("split type must be equal or by_item")
	ErrInvalidTipDistribution = errors.New("tip distribution must be equal or proportional")
	ErrInvalidTip             = errors.New("tip cannot be negative")
	ErrItemsRequired          = errors.New("a by-item split needs the bill's items")
	ErrNotByItem              = errors.New("bill is not split by item")
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrBillNotActive          = errors.New("bill is not active")
)

// TransactionSource looks up the transaction being split
type TransactionSource interface {
	GetByID(ctx context.Context, id int64) (*transaction.Transaction, error)
}

// Service handles split-bill business logic
type Service struct {
	repo         *Repository
	transactions TransactionSource
}

// NewService creates a new split-bill service
func NewService(repo *Repository, transactions TransactionSource) *Service {
	return &Service{repo: repo, transactions: transactions}
}

// Create starts a split over one of the user's transactions. Equal splits
// are distributed immediately; by-item splits wait for assignments.
func (s *Service) Create(ctx context.Context, userID int64, req *CreateBillRequest) (*Bill, error) {
	bill, err := buildBill(userID, req)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactions.GetByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, ErrTransactionNotFound
	}
	if tx.UserID != userID {
		return nil, ErrNotTransactionOwner
	}
	bill.TotalAmount = tx.TotalAmount

	if bill.SplitType == SplitEqual {
		bill.SplitEqually()
	}

	return s.repo.Create(ctx, bill)
}

// buildBill validates the request into an unpersisted bill
func buildBill(userID int64, req *CreateBillRequest) (*Bill, error) {
	splitType := SplitType(req.SplitType)
	if splitType != SplitEqual && splitType != SplitByItem {
		return nil, ErrInvalidSplitType
	}
	if len(req.Participants) < 2 {
		return nil, ErrTooFewParticipants
	}
	if req.TipAmount.IsNegative() {
		return nil, ErrInvalidTip
	}

	tipDistribution := TipProportional
	if req.TipDistribution != "" {
		tipDistribution = TipDistribution(req.TipDistribution)
		if tipDistribution != TipEqual && tipDistribution != TipProportional {
			return nil, ErrInvalidTipDistribution
		}
	}
	if splitType == SplitByItem && len(req.Items) == 0 {
		return nil, ErrItemsRequired
	}

	bill := &Bill{
		TransactionID:   req.TransactionID,
		CreatorID:       userID,
		SplitType:       splitType,
		TipAmount:       req.TipAmount,
		TipDistribution: tipDistribution,
		Status:          StatusActive,
		Notes:           req.Notes,
	}

	for _, in := range req.Participants {
		bill.Participants = append(bill.Participants, &Participant{
			UserID:        in.UserID,
			Name:          in.Name,
			AssignedItems: []int64{},
			Subtotal:      decimal.Zero,
			TipAmount:     decimal.Zero,
			Total:         decimal.Zero,
		})
	}
	for _, in := range req.Items {
		quantity := in.Quantity
		if quantity < 1 {
			quantity = 1
		}
		bill.Items = append(bill.Items, &Item{
			Name:     in.Name,
			Price:    in.Price,
			Quantity: quantity,
		})
	}

	return bill, nil
}

// GetByID retrieves a bill created by the user
func (s *Service) GetByID(ctx context.Context, billID, userID int64) (*Bill, error) {
	bill, err := s.repo.GetByID(ctx, billID, userID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

// List retrieves the user's bills, newest first
func (s *Service) List(ctx context.Context, userID int64) ([]*Bill, error) {
	return s.repo.ListByCreator(ctx, userID)
}

// ListByTransaction retrieves the splits created over one transaction
func (s *Service) ListByTransaction(ctx context.Context, transactionID, userID int64) ([]*Bill, error) {
	return s.repo.ListByTransaction(ctx, transactionID, userID)
}

// AssignItems distributes the bill's items among participants and
// recomputes everyone's share
func (s *Service) AssignItems(ctx context.Context, billID, userID int64, req *AssignItemsRequest) (*Bill, error) {
	bill, err := s.GetByID(ctx, billID, userID)
	if err != nil {
		return nil, err
	}
	if bill.SplitType != SplitByItem {
		return nil, ErrNotByItem
	}
	if bill.Status != StatusActive {
		return nil, ErrBillNotActive
	}

	known := make(map[int64]bool, len(bill.Participants))
	for _, p := range bill.Participants {
		known[p.ID] = true
	}

	assignments := make(map[int64][]int64, len(req.Assignments))
	for _, a := range req.Assignments {
		if !known[a.ParticipantID] {
			return nil, ErrParticipantNotFound
		}
		assignments[a.ParticipantID] = a.ItemIDs
	}

	bill.ApplyAssignments(assignments)

	if err := s.repo.SaveDistribution(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// UpdateTip changes the tip and redistributes it
func (s *Service) UpdateTip(ctx context.Context, billID, userID int64, req *UpdateTipRequest) (*Bill, error) {
	bill, err := s.GetByID(ctx, billID, userID)
	if err != nil {
		return nil, err
	}
	if bill.Status != StatusActive {
		return nil, ErrBillNotActive
	}
	if req.TipAmount.IsNegative() {
		return nil, ErrInvalidTip
	}

	bill.TipAmount = req.TipAmount
	if req.TipDistribution != "" {
		distribution := TipDistribution(req.TipDistribution)
		if distribution != TipEqual && distribution != TipProportional {
			return nil, ErrInvalidTipDistribution
		}
		bill.TipDistribution = distribution
	}

	bill.DistributeTip()

	if err := s.repo.SaveDistribution(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// MarkPaid records one participant's payment. When the last one pays, the
// bill completes.
func (s *Service) MarkPaid(ctx context.Context, billID, userID, participantID int64) (*Bill, error) {
	bill, err := s.GetByID(ctx, billID, userID)
	if err != nil {
		return nil, err
	}

	var participant *Participant
	for _, p := range bill.Participants {
		if p.ID == participantID {
			participant = p
			break
		}
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}

	participant.Paid = true
	if bill.AllPaid() {
		bill.Status = StatusCompleted
	}

	if err := s.repo.SaveDistribution(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// Cancel abandons an active bill
func (s *Service) Cancel(ctx context.Context, billID, userID int64) (*Bill, error) {
	bill, err := s.GetByID(ctx, billID, userID)
	if err != nil {
		return nil, err
	}

	bill.Status = StatusCancelled
	if err := s.repo.UpdateStatus(ctx, billID, StatusCancelled); err != nil {
		return nil, err
	}
	return bill, nil
}
