package inventory

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Category splits the pantry into perishables and everything else
type Category string

const (
	CategoryPerishable    Category = "perishable"
	CategoryNonPerishable Category = "non-perishable"
)

// Status is an item's lifecycle state. Freshness classes are derived per
// request from the dates, not stored.
type Status string

const (
	StatusFresh     Status = "fresh"
	StatusConsumed  Status = "consumed"
	StatusDiscarded Status = "discarded"
)

// Freshness classes derived from the days an item has left
const (
	FreshnessFresh    = "fresh"
	FreshnessWarning  = "warning"
	FreshnessCritical = "critical"
	FreshnessExpired  = "expired"
)

// Expiry thresholds in days
const (
	criticalDays = 2
	warningDays  = 5
)

// defaultLifeDays is assumed for perishables with no expiry date
const defaultLifeDays = 7

// Item is one pantry product
type Item struct {
	ID                int64            `json:"_id"`
	UserID            int64            `json:"user_id"`
	Name              string           `json:"name"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Unit              string           `json:"unit"`
	Category          Category         `json:"category"`
	ExpiryDate        *time.Time       `json:"expiryDate,omitempty"`
	EstimatedLifeDays int              `json:"estimatedLifeDays"`
	PurchaseDate      time.Time        `json:"purchaseDate"`
	Status            Status           `json:"status"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	SourceTransaction *int64           `json:"sourceTransaction,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// DaysRemaining counts the days until the item expires, negative once it is
// past. The explicit expiry date wins; otherwise the purchase date plus the
// estimated life is used. Returns false when neither is known.
func (i *Item) DaysRemaining(today time.Time) (int, bool) {
	var expiry time.Time
	switch {
	case i.ExpiryDate != nil:
		expiry = *i.ExpiryDate
	case !i.PurchaseDate.IsZero() && i.EstimatedLifeDays > 0:
		expiry = i.PurchaseDate.AddDate(0, 0, i.EstimatedLifeDays)
	default:
		return 0, false
	}

	days := math.Ceil(expiry.Sub(today).Hours() / 24)
	return int(days), true
}

// Freshness classifies the item by how many days it has left
func (i *Item) Freshness(today time.Time) string {
	days, ok := i.DaysRemaining(today)
	if !ok {
		return FreshnessFresh
	}
	switch {
	case days < 0:
		return FreshnessExpired
	case days <= criticalDays:
		return FreshnessCritical
	case days <= warningDays:
		return FreshnessWarning
	default:
		return FreshnessFresh
	}
}
