package splitbill

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType is how the bill is divided among participants
type SplitType string

const (
	SplitEqual  SplitType = "equal"
	SplitByItem SplitType = "by_item"
)

// TipDistribution is how the tip is shared
type TipDistribution string

const (
	TipEqual        TipDistribution = "equal"
	TipProportional TipDistribution = "proportional"
)

// Status tracks the bill's lifecycle
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Item is one line of the bill, assignable to a participant
type Item struct {
	ID       int64           `json:"_id"`
	BillID   int64           `json:"-"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Cost is the item's price times its quantity
func (i *Item) Cost() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Participant is one person on the bill. UserID is set when they are a
// registered user; contacts outside the app ride on the name alone.
type Participant struct {
	ID            int64           `json:"_id"`
	BillID        int64           `json:"-"`
	UserID        *int64          `json:"userId,omitempty"`
	Name          string          `json:"name"`
	AssignedItems []int64         `json:"assignedItems"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TipAmount     decimal.Decimal `json:"tipAmount"`
	Total         decimal.Decimal `json:"total"`
	Paid          bool            `json:"paid"`
}

// Bill is a shared expense divided among participants
type Bill struct {
	ID              int64           `json:"_id"`
	TransactionID   int64           `json:"transactionId"`
	CreatorID       int64           `json:"creatorId"`
	SplitType       SplitType       `json:"splitType"`
	TipAmount       decimal.Decimal `json:"tipAmount"`
	TipDistribution TipDistribution `json:"tipDistribution"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          Status          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	Items           []*Item         `json:"items"`
	Participants    []*Participant  `json:"participants"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// GrandTotal is the bill plus the tip
func (b *Bill) GrandTotal() decimal.Decimal {
	return b.TotalAmount.Add(b.TipAmount)
}

// AllPaid reports whether every participant has settled their share
func (b *Bill) AllPaid() bool {
	for _, p := range b.Participants {
		if !p.Paid {
			return false
		}
	}
	return len(b.Participants) > 0
}

// SplitEqually gives each participant an equal share of the bill. The
// division is floored to cents and the leftover cents land on the first
// participant, so the shares always sum back to the total.
func (b *Bill) SplitEqually() {
	n := len(b.Participants)
	if n == 0 {
		return
	}

	share := b.TotalAmount.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	rest := b.TotalAmount.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))

	for i, p := range b.Participants {
		if i == 0 {
			p.Subtotal = rest
		} else {
			p.Subtotal = share
		}
	}

	b.DistributeTip()
}

// DistributeTip spreads the tip over the participants, either equally or
// proportionally to what each consumed, and recomputes per-person totals.
// Rounding drift is absorbed by the first participant so the totals sum to
// the grand total exactly.
func (b *Bill) DistributeTip() {
	n := len(b.Participants)
	if n == 0 {
		return
	}

	if b.TipDistribution == TipEqual {
		perPerson := b.TipAmount.Div(decimal.NewFromInt(int64(n))).Round(2)
		for _, p := range b.Participants {
			p.TipAmount = perPerson
		}
	} else {
		consumed := decimal.Zero
		for _, p := range b.Participants {
			consumed = consumed.Add(p.Subtotal)
		}
		if consumed.IsPositive() {
			for _, p := range b.Participants {
				p.TipAmount = b.TipAmount.Mul(p.Subtotal).Div(consumed).Round(2)
			}
		} else {
			for _, p := range b.Participants {
				p.TipAmount = decimal.Zero
			}
		}
	}

	sum := decimal.Zero
	for _, p := range b.Participants {
		p.Total = p.Subtotal.Add(p.TipAmount)
		sum = sum.Add(p.Total)
	}

	subtotals := decimal.Zero
	for _, p := range b.Participants {
		subtotals = subtotals.Add(p.Subtotal)
	}
	drift := subtotals.Add(b.TipAmount).Sub(sum)
	if !drift.IsZero() {
		first := b.Participants[0]
		first.Total = first.Total.Add(drift)
		first.TipAmount = first.TipAmount.Add(drift)
	}
}

// ApplyAssignments sets each participant's item list and recomputes their
// subtotal from the items' costs, then redistributes the tip
func (b *Bill) ApplyAssignments(assignments map[int64][]int64) {
	costByItem := make(map[int64]decimal.Decimal, len(b.Items))
	for _, item := range b.Items {
		costByItem[item.ID] = item.Cost()
	}

	for _, p := range b.Participants {
		itemIDs, ok := assignments[p.ID]
		if !ok {
			continue
		}
		p.AssignedItems = itemIDs
		p.Subtotal = decimal.Zero
		for _, id := range itemIDs {
			p.Subtotal = p.Subtotal.Add(costByItem[id])
		}
	}

	b.DistributeTip()
}
