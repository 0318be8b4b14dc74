package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberInput is one cost-sharing member when creating a subscription
type MemberInput struct {
	Name        string          `json:"name"`
	ShareAmount decimal.Decimal `json:"shareAmount"`
}

// CreateSubscriptionRequest represents the request to register a subscription
type CreateSubscriptionRequest struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency,omitempty"`
	BillingDay int             `json:"billingDay"`
	Category   string          `json:"category,omitempty"`
	Members    []MemberInput   `json:"members,omitempty"`
}

// UpdateSubscriptionRequest represents the request to edit a subscription
type UpdateSubscriptionRequest struct {
	Name       *string          `json:"name,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Currency   *string          `json:"currency,omitempty"`
	BillingDay *int             `json:"billingDay,omitempty"`
	Category   *string          `json:"category,omitempty"`
	Status     *string          `json:"status,omitempty"`
}

// ConfirmPaymentRequest marks one month of the subscription as paid
type ConfirmPaymentRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// SubscriptionResponse represents the response for a subscription
type SubscriptionResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Amount     decimal.Decimal   `json:"amount"`
	Currency   string            `json:"currency"`
	BillingDay int               `json:"billingDay"`
	Category   string            `json:"category,omitempty"`
	Shared     bool              `json:"shared"`
	Status     Status            `json:"status"`
	Members    []*MemberResponse `json:"members,omitempty"`
	CreatedAt  string            `json:"createdAt"`
}

// MemberResponse represents one cost-sharing member
type MemberResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	ShareAmount decimal.Decimal `json:"shareAmount"`
}

// PaymentResponse represents one month's billing record
type PaymentResponse struct {
	ID       int64           `json:"id"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	DueDate  string          `json:"dueDate"`
	Amount   decimal.Decimal `json:"amount"`
	IsPaid   bool            `json:"isPaid"`
	PaidDate *string         `json:"paidDate,omitempty"`
}

// ToResponse converts a Subscription model to a SubscriptionResponse
func (s *Subscription) ToResponse() *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:         s.ID,
		Name:       s.Name,
		Amount:     s.Amount.Round(2),
		Currency:   s.Currency,
		BillingDay: s.BillingDay,
		Category:   s.Category,
		Shared:     s.Shared,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
	for _, m := range s.Members {
		resp.Members = append(resp.Members, &MemberResponse{
			ID:          m.ID,
			Name:        m.Name,
			ShareAmount: m.ShareAmount.Round(2),
		})
	}
	return resp
}

// ToResponse converts a PaymentRecord to a PaymentResponse
func (p *PaymentRecord) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:      p.ID,
		Month:   p.Month,
		Year:    p.Year,
		DueDate: p.DueDate.Format(time.RFC3339),
		Amount:  p.Amount.Round(2),
		IsPaid:  p.IsPaid,
	}
	if p.PaidDate != nil {
		paid := p.PaidDate.Format(time.RFC3339)
		resp.PaidDate = &paid
	}
	return resp
}
