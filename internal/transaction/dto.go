package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest represents the request to record a transaction
type CreateTransactionRequest struct {
	Type          string          `json:"type"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Category      string          `json:"category,omitempty"`
	Merchant      string          `json:"merchant,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	// Installments is the number of monthly charges; only honored for
	// credit purchases with more than one charge
	Installments int        `json:"installments,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
}

// UpdateTransactionRequest represents the request to edit a transaction
type UpdateTransactionRequest struct {
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Merchant    *string          `json:"merchant,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

// TransactionResponse represents the response for a transaction
type TransactionResponse struct {
	ID            int64           `json:"_id"`
	Type          Type            `json:"type"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Category      string          `json:"category,omitempty"`
	Merchant      string          `json:"merchant,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Installments  Installments    `json:"installments"`
	Date          string          `json:"date"`
	CreatedAt     string          `json:"createdAt"`
}

// InstallmentLine is one active credit commitment in the monthly stats
type InstallmentLine struct {
	ID          int64           `json:"_id"`
	Description string          `json:"description"`
	Current     int             `json:"current"`
	Total       int             `json:"total"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthlyStatsResponse is the "free money" summary for the current month
type MonthlyStatsResponse struct {
	FreeMoney          decimal.Decimal   `json:"freeMoney"`
	Income             decimal.Decimal   `json:"income"`
	Expenses           decimal.Decimal   `json:"expenses"`
	ActiveInstallments []InstallmentLine `json:"activeInstallments"`
	// SavingsTarget is a placeholder until savings goals ship
	SavingsTarget decimal.Decimal `json:"savingsTarget"`
}

// ProjectionEntry is one upcoming month with active credit commitments.
// Months without commitments are omitted from the projection, not zero-filled.
type ProjectionEntry struct {
	Month            string          `json:"month"`
	Amount           decimal.Decimal `json:"amount"`
	CommitmentsCount int             `json:"commitmentsCount"`
}

// ToResponse converts a Transaction model to a TransactionResponse DTO
func (t *Transaction) ToResponse() *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		TotalAmount:   t.TotalAmount,
		Category:      t.Category,
		Merchant:      t.Merchant,
		PaymentMethod: t.PaymentMethod,
		Installments:  t.Installments,
		Date:          t.Date.Format(time.RFC3339),
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}
