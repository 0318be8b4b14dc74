// Package inventory manages the perishable-goods pantry: what was bought,
// when it expires, and what should be eaten or repurchased next.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrItemNotFound  = errors.New("inventory item not found")
	ErrNameRequired  = errors.New("item name is required")
	ErrInvalidStatus = errors.New("invalid item status")
	ErrInvalidDays   = errors.New("estimated life days must be at least 1")
	ErrNotPerishable = errors.New("shelf life can only be adjusted on perishables")
)

// Shopping recommendation thresholds
const (
	recommendationLookbackDays = 30
	recommendationMinCount     = 2
	recommendationLimit        = 10
)

// batchCookingThreshold is how many critical items it takes before
// suggesting a big cook-up
const batchCookingThreshold = 2

// perishableCategories maps readable product categories onto the
// perishable class
var perishableCategories = []string{
	"lácteos", "carnes", "carne", "frutas", "verduras",
	"panadería", "pescado", "hortalizas",
}

// Service handles pantry business logic
type Service struct {
	repo *Repository
}

// NewService creates a new inventory service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an item to the user's pantry
func (s *Service) Create(ctx context.Context, userID int64, req *CreateItemRequest) (*Item, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}

	item := &Item{
		UserID:            userID,
		Name:              req.Name,
		Quantity:          decimal.NewFromInt(1),
		Unit:              "unid",
		Category:          classifyCategory(req.Category),
		ExpiryDate:        req.ExpiryDate,
		EstimatedLifeDays: defaultLifeDays,
		PurchaseDate:      time.Now(),
		Status:            StatusFresh,
		Price:             req.Price,
		SourceTransaction: req.TransactionID,
	}
	if req.Quantity != nil && req.Quantity.IsPositive() {
		item.Quantity = *req.Quantity
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.EstimatedLifeDays > 0 {
		item.EstimatedLifeDays = req.EstimatedLifeDays
	}
	if req.PurchaseDate != nil {
		item.PurchaseDate = *req.PurchaseDate
	}

	return s.repo.Create(ctx, item)
}

// classifyCategory decides perishable vs non-perishable from a free-form
// category name. Explicit class names pass through; produce, meat, dairy
// and bakery names count as perishable.
func classifyCategory(raw string) Category {
	switch Category(raw) {
	case CategoryPerishable, CategoryNonPerishable:
		return Category(raw)
	}

	lowered := strings.ToLower(raw)
	for _, p := range perishableCategories {
		if strings.Contains(lowered, p) {
			return CategoryPerishable
		}
	}
	return CategoryNonPerishable
}

// GetByID retrieves one of the user's pantry items
func (s *Service) GetByID(ctx context.Context, itemID, userID int64) (*Item, error) {
	item, err := s.repo.GetByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// List returns the pantry with derived freshness, soonest to expire first
func (s *Service) List(ctx context.Context, userID int64, now time.Time) ([]*ItemResponse, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, len(items))
	for i, item := range items {
		responses[i] = NewItemResponse(item, now)
	}
	return responses, nil
}

// Update edits a pantry item
func (s *Service) Update(ctx context.Context, itemID, userID int64, req *UpdateItemRequest) (*Item, error) {
	item, err := s.GetByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrNameRequired
		}
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}
	if req.EstimatedLifeDays != nil {
		if *req.EstimatedLifeDays < 1 {
			return nil, ErrInvalidDays
		}
		item.EstimatedLifeDays = *req.EstimatedLifeDays
	}
	if req.Status != nil {
		switch Status(*req.Status) {
		case StatusFresh, StatusConsumed, StatusDiscarded:
			item.Status = Status(*req.Status)
		default:
			return nil, ErrInvalidStatus
		}
	}
	if req.Price != nil {
		item.Price = req.Price
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustDays changes a perishable's estimated shelf life
func (s *Service) AdjustDays(ctx context.Context, itemID, userID int64, days int) (*Item, error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}

	item, err := s.GetByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if item.Category != CategoryPerishable {
		return nil, ErrNotPerishable
	}

	item.EstimatedLifeDays = days
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item from the pantry
func (s *Service) Delete(ctx context.Context, itemID, userID int64) error {
	if _, err := s.GetByID(ctx, itemID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, itemID)
}

// Alerts reports which pantry items are expired or about to expire
func (s *Service) Alerts(ctx context.Context, userID int64, now time.Time) (*AlertReport, error) {
	items, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := BuildAlerts(items, now)
	return &report, nil
}

// BuildAlerts classifies items by days remaining and derives suggestions.
// Items with no known expiry are counted but never alerted on.
func BuildAlerts(items []*Item, today time.Time) AlertReport {
	report := AlertReport{
		Critical:    []Alert{},
		Warning:     []Alert{},
		Expired:     []Alert{},
		Suggestions: []Suggestion{},
	}
	report.Summary.Total = len(items)

	for _, item := range items {
		days, ok := item.DaysRemaining(today)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			report.Expired = append(report.Expired, Alert{
				ID:       item.ID,
				Name:     item.Name,
				DaysLeft: days,
				Message:  fmt.Sprintf("%s venció hace %d día(s)", item.Name, -days),
			})
		case days <= criticalDays:
			report.Critical = append(report.Critical, Alert{
				ID:       item.ID,
				Name:     item.Name,
				DaysLeft: days,
				Message:  fmt.Sprintf("¡%s vence en %d día(s)! Consúmelo pronto.", item.Name, days),
			})
		case days <= warningDays:
			report.Warning = append(report.Warning, Alert{
				ID:       item.ID,
				Name:     item.Name,
				DaysLeft: days,
				Message:  fmt.Sprintf("%s vence en %d días", item.Name, days),
			})
		}
	}

	report.Summary.Critical = len(report.Critical)
	report.Summary.Warning = len(report.Warning)
	report.Summary.Expired = len(report.Expired)

	if len(report.Critical) > batchCookingThreshold {
		report.Suggestions = append(report.Suggestions, Suggestion{
			Type:    "batch-cooking",
			Message: fmt.Sprintf("Tienes %d productos críticos. ¿Preparar una comida grande?", len(report.Critical)),
		})
	}
	if len(report.Expired) > 0 {
		report.Suggestions = append(report.Suggestions, Suggestion{
			Type:    "waste-alert",
			Message: fmt.Sprintf("%d producto(s) vencido(s). Revisa tu despensa.", len(report.Expired)),
		})
	}

	return report
}

// ShoppingRecommendations suggests products to rebuy based on what was
// consumed over the last month
func (s *Service) ShoppingRecommendations(ctx context.Context, userID int64, now time.Time) ([]Recommendation, error) {
	since := now.AddDate(0, 0, -recommendationLookbackDays)
	consumed, err := s.repo.ListConsumedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	return BuildRecommendations(consumed), nil
}

// BuildRecommendations groups consumed items by name and keeps the ones
// bought repeatedly, most frequent first
func BuildRecommendations(consumed []*Item) []Recommendation {
	type bucket struct {
		rec Recommendation
	}
	byName := make(map[string]*bucket)

	for _, item := range consumed {
		key := strings.ToLower(item.Name)
		b, ok := byName[key]
		if !ok {
			b = &bucket{rec: Recommendation{
				Name:          item.Name,
				LastPurchased: item.PurchaseDate,
				Category:      item.Category,
			}}
			byName[key] = b
		}
		b.rec.Frequency++
		if item.PurchaseDate.After(b.rec.LastPurchased) {
			b.rec.LastPurchased = item.PurchaseDate
		}
	}

	recommendations := []Recommendation{}
	for _, b := range byName {
		if b.rec.Frequency < recommendationMinCount {
			continue
		}
		b.rec.Suggestion = fmt.Sprintf("Compras %s frecuentemente (%dx últimos %d días)",
			b.rec.Name, b.rec.Frequency, recommendationLookbackDays)
		recommendations = append(recommendations, b.rec)
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Frequency != recommendations[j].Frequency {
			return recommendations[i].Frequency > recommendations[j].Frequency
		}
		return recommendations[i].Name < recommendations[j].Name
	})

	if len(recommendations) > recommendationLimit {
		recommendations = recommendations[:recommendationLimit]
	}
	return recommendations
}
