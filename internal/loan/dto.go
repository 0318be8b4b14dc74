package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoanRequest represents the request to register a loan. Direction
// picks which side of the loan the authenticated user takes.
type CreateLoanRequest struct {
	Direction        string          `json:"direction"` // "lent" or "borrowed"
	CounterpartyID   *int64          `json:"counterpartyId,omitempty"`
	CounterpartyName string          `json:"counterpartyName,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description,omitempty"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
}

// UpdateLoanRequest represents the request to edit a pending loan
type UpdateLoanRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
}

// PaidRequest drives the two-step repayment handshake
type PaidRequest struct {
	Action string `json:"action"` // "mark_paid" or "confirm_paid"
	Method string `json:"method,omitempty"`
}

// LoanResponse represents the response for a loan
type LoanResponse struct {
	ID               int64              `json:"id"`
	LenderID         *int64             `json:"lenderId,omitempty"`
	BorrowerID       *int64             `json:"borrowerId,omitempty"`
	CounterpartyName string             `json:"counterpartyName,omitempty"`
	Amount           decimal.Decimal    `json:"amount"`
	Description      string             `json:"description,omitempty"`
	Status           Status             `json:"status"`
	PaidAmount       decimal.Decimal    `json:"paidAmount"`
	DueDate          *string            `json:"dueDate,omitempty"`
	PaidAt           *string            `json:"paidAt,omitempty"`
	Payments         []*PaymentResponse `json:"payments,omitempty"`
	CreatedAt        string             `json:"createdAt"`
}

// PaymentResponse represents one recorded repayment
type PaymentResponse struct {
	ID     int64           `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
	Status string          `json:"status"`
	Date   string          `json:"date"`
}

// ToResponse converts a Loan model to a LoanResponse
func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:               l.ID,
		LenderID:         l.LenderID,
		BorrowerID:       l.BorrowerID,
		CounterpartyName: l.CounterpartyName,
		Amount:           l.Amount.Round(2),
		Description:      l.Description,
		Status:           l.Status,
		PaidAmount:       l.PaidAmount.Round(2),
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
	}
	if l.DueDate != nil {
		due := l.DueDate.Format(time.RFC3339)
		resp.DueDate = &due
	}
	if l.PaidAt != nil {
		paid := l.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paid
	}
	for _, p := range l.Payments {
		resp.Payments = append(resp.Payments, &PaymentResponse{
			ID:     p.ID,
			Amount: p.Amount.Round(2),
			Method: p.Method,
			Status: p.Status,
			Date:   p.Date.Format(time.RFC3339),
		})
	}
	return resp
}
