package splitbill

import "github.com/shopspring/decimal"

// ParticipantInput names someone on the bill
type ParticipantInput struct {
	UserID *int64 `json:"userId,omitempty"`
	Name   string `json:"name"`
}

// ItemInput is one bill line for a by-item split
type ItemInput struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity,omitempty"`
}

// CreateBillRequest starts a split over an existing transaction
type CreateBillRequest struct {
	TransactionID   int64              `json:"transactionId"`
	SplitType       string             `json:"splitType"`
	Participants    []ParticipantInput `json:"participants"`
	TipAmount       decimal.Decimal    `json:"tipAmount"`
	TipDistribution string             `json:"tipDistribution,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	Items           []ItemInput        `json:"items,omitempty"`
}

// Assignment maps one participant to the items they consumed
type Assignment struct {
	ParticipantID int64   `json:"participantId"`
	ItemIDs       []int64 `json:"itemIds"`
}

// AssignItemsRequest distributes the bill's items for a by-item split
type AssignItemsRequest struct {
	Assignments []Assignment `json:"assignments"`
}

// UpdateTipRequest changes the tip and how it is shared
type UpdateTipRequest struct {
	TipAmount       decimal.Decimal `json:"tipAmount"`
	TipDistribution string          `json:"tipDistribution,omitempty"`
}

// BillResponse is a bill with its derived grand total
type BillResponse struct {
	*Bill
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// NewBillResponse wraps a bill for the wire
func NewBillResponse(bill *Bill) *BillResponse {
	return &BillResponse{Bill: bill, GrandTotal: bill.GrandTotal()}
}
