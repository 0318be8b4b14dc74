package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a subscription
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

// Subscription is a recurring charge billed on a fixed day of the month,
// optionally shared among members
type Subscription struct {
	ID         int64           `json:"id"`
	OwnerID    int64           `json:"ownerId"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	BillingDay int             `json:"billingDay"`
	Category   string          `json:"category,omitempty"`
	Shared     bool            `json:"shared"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`

	Members []*Member `json:"members,omitempty"`
}

// DueDate is when the subscription bills in the given month
func (s *Subscription) DueDate(month time.Month, year int) time.Time {
	return time.Date(year, month, s.BillingDay, 0, 0, 0, 0, time.UTC)
}

// Member is someone sharing the subscription's cost
type Member struct {
	ID             int64           `json:"id"`
	SubscriptionID int64           `json:"subscriptionId"`
	Name           string          `json:"name"`
	ShareAmount    decimal.Decimal `json:"shareAmount"`
}

// PaymentRecord is one month's billing record for a subscription
type PaymentRecord struct {
	ID             int64           `json:"id"`
	SubscriptionID int64           `json:"subscriptionId"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	DueDate        time.Time       `json:"dueDate"`
	Amount         decimal.Decimal `json:"amount"`
	IsPaid         bool            `json:"isPaid"`
	PaidDate       *time.Time      `json:"paidDate,omitempty"`
}
