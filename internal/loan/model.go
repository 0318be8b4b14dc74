package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the repayment state of a loan
type Status string

const (
	// StatusPending means the loan is outstanding
	StatusPending Status = "pending"
	// StatusMarkedPaid means the borrower claims to have paid and the
	// lender has not confirmed yet
	StatusMarkedPaid Status = "marked_paid"
	// StatusPaid means the lender confirmed the repayment
	StatusPaid Status = "paid"
)

// Loan is money lent between the user and a counterparty. The counterparty
// is a registered user when lender_id/borrower_id is set, otherwise the
// free-text name stands in.
type Loan struct {
	ID               int64           `json:"id"`
	CreatedBy        int64           `json:"createdBy"`
	LenderID         *int64          `json:"lenderId,omitempty"`
	BorrowerID       *int64          `json:"borrowerId,omitempty"`
	CounterpartyName string          `json:"counterpartyName,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description,omitempty"`
	Status           Status          `json:"status"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`

	Payments []*Payment `json:"payments,omitempty"`
}

// IsLender reports whether the user is on the lending side of the loan
func (l *Loan) IsLender(userID int64) bool {
	return l.LenderID != nil && *l.LenderID == userID
}

// IsBorrower reports whether the user is on the borrowing side of the loan
func (l *Loan) IsBorrower(userID int64) bool {
	return l.BorrowerID != nil && *l.BorrowerID == userID
}

// Payment is one repayment recorded against a loan
type Payment struct {
	ID     int64           `json:"id"`
	LoanID int64           `json:"loanId"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
	Status string          `json:"status"`
	Date   time.Time       `json:"date"`
}
