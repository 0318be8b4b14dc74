package trip

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nmoreno/billetera/internal/trip/settle"
)

// ParticipantInput identifies or introduces a trip participant
type ParticipantInput struct {
	UserID *int64 `json:"userId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// CreateTripRequest represents the request to create a trip
type CreateTripRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Destination  string             `json:"destination,omitempty"`
	StartDate    time.Time          `json:"startDate"`
	EndDate      *time.Time         `json:"endDate,omitempty"`
	Participants []ParticipantInput `json:"participants,omitempty"`
}

// UpdateTripRequest represents the request to edit a trip
type UpdateTripRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
}

// UpdateStatusRequest changes a trip's lifecycle state
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ParticipantRef points at an existing participant by user ID or name
type ParticipantRef struct {
	UserID *int64 `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
}

// SplitInput is one participant's share when adding an expense
type SplitInput struct {
	UserID *int64          `json:"userId,omitempty"`
	Name   string          `json:"name,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// AddExpenseRequest represents the request to record a shared expense.
// The split amounts must add up to the expense amount.
type AddExpenseRequest struct {
	Description  string          `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency,omitempty"`
	Category     string          `json:"category,omitempty"`
	PaidBy       ParticipantRef  `json:"paidBy"`
	SplitBetween []SplitInput    `json:"splitBetween"`
	Date         *time.Time      `json:"date,omitempty"`
}

// TripResponse represents the response for a trip
type TripResponse struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description,omitempty"`
	Destination  string                 `json:"destination,omitempty"`
	StartDate    string                 `json:"startDate"`
	EndDate      *string                `json:"endDate,omitempty"`
	Status       Status                 `json:"status"`
	TotalAmount  decimal.Decimal        `json:"totalAmount"`
	Participants []*ParticipantResponse `json:"participants"`
	Expenses     []*ExpenseResponse     `json:"expenses"`
	CreatedAt    string                 `json:"createdAt"`
}

// ParticipantResponse represents the response for a participant
type ParticipantResponse struct {
	ID     int64  `json:"id"`
	UserID *int64 `json:"userId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// ExpenseResponse represents the response for a trip expense
type ExpenseResponse struct {
	ID           int64            `json:"id"`
	Description  string           `json:"description,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	Category     string           `json:"category"`
	PaidBy       string           `json:"paidBy"`
	SplitBetween []*SplitResponse `json:"splitBetween"`
	Date         string           `json:"date"`
}

// SplitResponse represents one share of an expense
type SplitResponse struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// TransferResponse is one payment in a settlement plan
type TransferResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// SettlementEnvelope is the settlement endpoint's wire format. The trip,
// balances and settlements sit at the top level next to the success flag.
type SettlementEnvelope struct {
	Success     bool                       `json:"success"`
	Trip        *TripResponse              `json:"trip"`
	Balances    map[string]decimal.Decimal `json:"balances"`
	Settlements []TransferResponse         `json:"settlements"`
}

// ToResponse converts a Trip model (with details loaded) to a TripResponse
func (t *Trip) ToResponse() *TripResponse {
	keys := make(map[int64]string, len(t.Participants))
	participants := make([]*ParticipantResponse, len(t.Participants))
	for i, p := range t.Participants {
		keys[p.ID] = p.Key()
		participants[i] = &ParticipantResponse{
			ID:     p.ID,
			UserID: p.UserID,
			Name:   p.Name,
			Email:  p.Email,
		}
	}

	expenses := make([]*ExpenseResponse, len(t.Expenses))
	for i, e := range t.Expenses {
		splits := make([]*SplitResponse, len(e.Splits))
		for j, s := range e.Splits {
			splits[j] = &SplitResponse{Participant: keys[s.ParticipantID], Amount: s.Amount}
		}
		expenses[i] = &ExpenseResponse{
			ID:           e.ID,
			Description:  e.Description,
			Amount:       e.Amount,
			Currency:     e.Currency,
			Category:     e.Category,
			PaidBy:       keys[e.PaidByID],
			SplitBetween: splits,
			Date:         e.Date.Format(time.RFC3339),
		}
	}

	resp := &TripResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Destination:  t.Destination,
		StartDate:    t.StartDate.Format(time.RFC3339),
		Status:       t.Status,
		TotalAmount:  t.TotalAmount().Round(2),
		Participants: participants,
		Expenses:     expenses,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
	if t.EndDate != nil {
		end := t.EndDate.Format(time.RFC3339)
		resp.EndDate = &end
	}
	return resp
}

// newSettlementEnvelope rounds balances for display and wraps the plan
func newSettlementEnvelope(t *Trip, balances map[string]decimal.Decimal, transfers []settle.Transfer) *SettlementEnvelope {
	rounded := make(map[string]decimal.Decimal, len(balances))
	for key, b := range balances {
		rounded[key] = b.Round(2)
	}

	settlements := make([]TransferResponse, len(transfers))
	for i, tr := range transfers {
		settlements[i] = TransferResponse{From: tr.From, To: tr.To, Amount: tr.Amount}
	}

	return &SettlementEnvelope{
		Success:     true,
		Trip:        t.ToResponse(),
		Balances:    rounded,
		Settlements: settlements,
	}
}
