package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/transaction/amortize"
)

// Type distinguishes money coming in from money going out
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// PaymentMethod is how a transaction was paid
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodDebit    PaymentMethod = "debit"
	MethodCredit   PaymentMethod = "credit"
	MethodTransfer PaymentMethod = "transfer"
)

// Installments tracks a credit purchase paid in equal monthly charges.
// Total is always >= 1; {1,1} means a single, non-amortized charge.
type Installments struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Transaction represents a single income or expense record
type Transaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Type          Type            `json:"type"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Category      string          `json:"category,omitempty"`
	Merchant      string          `json:"merchant,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Installments  Installments    `json:"installments"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreditAmortized reports whether the charge is spread over multiple months
func (t *Transaction) CreditAmortized() bool {
	return t.PaymentMethod == MethodCredit && t.Installments.Total > 1
}

// Description is what the UI shows for an installment line: the merchant,
// falling back to the category
func (t *Transaction) Description() string {
	if t.Merchant != "" {
		return t.Merchant
	}
	return t.Category
}

// AmortizeRecord converts the transaction into the amortization engine's input
func (t *Transaction) AmortizeRecord() amortize.Record {
	total := t.Installments.Total
	if total < 1 {
		total = 1
	}
	return amortize.Record{
		ID:           t.ID,
		Description:  t.Description(),
		TotalAmount:  t.TotalAmount,
		Date:         t.Date,
		Installments: total,
	}
}
