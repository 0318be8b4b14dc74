package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest adds a product to the pantry
type CreateItemRequest struct {
	Name              string           `json:"name"`
	Quantity          *decimal.Decimal `json:"quantity,omitempty"`
	Unit              string           `json:"unit,omitempty"`
	Category          string           `json:"category,omitempty"`
	ExpiryDate        *time.Time       `json:"expiryDate,omitempty"`
	EstimatedLifeDays int              `json:"estimatedLifeDays,omitempty"`
	PurchaseDate      *time.Time       `json:"purchaseDate,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	TransactionID     *int64           `json:"transactionId,omitempty"`
}

// UpdateItemRequest edits a pantry item; nil fields are left alone
type UpdateItemRequest struct {
	Name              *string          `json:"name,omitempty"`
	Quantity          *decimal.Decimal `json:"quantity,omitempty"`
	Unit              *string          `json:"unit,omitempty"`
	ExpiryDate        *time.Time       `json:"expiryDate,omitempty"`
	EstimatedLifeDays *int             `json:"estimatedLifeDays,omitempty"`
	Status            *string          `json:"status,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
}

// AdjustDaysRequest changes a perishable's estimated shelf life
type AdjustDaysRequest struct {
	EstimatedLifeDays int `json:"estimatedLifeDays"`
}

// ItemResponse is an item with its derived freshness state
type ItemResponse struct {
	*Item
	Freshness     string `json:"freshness"`
	DaysRemaining *int   `json:"daysRemaining"`
}

// NewItemResponse derives the freshness fields for one item
func NewItemResponse(item *Item, today time.Time) *ItemResponse {
	resp := &ItemResponse{Item: item, Freshness: item.Freshness(today)}
	if days, ok := item.DaysRemaining(today); ok {
		resp.DaysRemaining = &days
	}
	return resp
}

// Alert flags one item that needs attention
type Alert struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	DaysLeft int    `json:"daysLeft"`
	Message  string `json:"message"`
}

// Suggestion is a derived hint, like batch cooking when too much is about
// to expire
type Suggestion struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AlertSummary counts items per alert class
type AlertSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Expired  int `json:"expired"`
}

// AlertReport groups the pantry's expiry alerts
type AlertReport struct {
	Summary     AlertSummary `json:"summary"`
	Critical    []Alert      `json:"critical"`
	Warning     []Alert      `json:"warning"`
	Expired     []Alert      `json:"expired"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Recommendation is one product suggested for the next shopping run
type Recommendation struct {
	Name          string    `json:"name"`
	Frequency     int       `json:"frequency"`
	LastPurchased time.Time `json:"lastPurchased"`
	Category      Category  `json:"category"`
	Suggestion    string    `json:"suggestion"`
}
