package trip

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a trip
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Expense categories recognized for trip spending
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryAccommodation = "accommodation"
	CategoryActivities    = "activities"
	CategoryOther         = "other"
)

// Trip is a shared-expense group: a set of participants and the expenses
// they split among themselves
type Trip struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Destination string     `json:"destination,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Participants []*Participant `json:"participants,omitempty"`
	Expenses     []*Expense     `json:"expenses,omitempty"`
}

// TotalAmount is the sum of all expenses recorded on the trip
func (t *Trip) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Participant is someone sharing the trip's expenses: either a registered
// user or a free-text name
type Participant struct {
	ID     int64  `json:"id"`
	TripID int64  `json:"trip_id"`
	UserID *int64 `json:"userId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// Key identifies the participant in balance maps: the user ID when
// registered, otherwise the name. Two refs are the same participant iff
// their keys are equal.
func (p *Participant) Key() string {
	if p.UserID != nil {
		return strconv.FormatInt(*p.UserID, 10)
	}
	return p.Name
}

// Expense is a purchase one participant fronted for the group
type Expense struct {
	ID          int64           `json:"id"`
	TripID      int64           `json:"trip_id"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	PaidByID    int64           `json:"paidById"`
	Date        time.Time       `json:"date"`

	Splits []*Split `json:"splitBetween,omitempty"`
}

// Split is one participant's share of an expense
type Split struct {
	ID            int64           `json:"id"`
	ExpenseID     int64           `json:"expense_id"`
	ParticipantID int64           `json:"participantId"`
	Amount        decimal.Decimal `json:"amount"`
}
