package inventory

import (
	"strings"
	"testing"
	"time"
)

var today = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func perishable(id int64, name string, daysFromNow int) *Item {
	return &Item{
		ID:         id,
		Name:       name,
		Category:   CategoryPerishable,
		Status:     StatusFresh,
		ExpiryDate: datePtr(today.AddDate(0, 0, daysFromNow)),
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name string
		item *Item
		want int
		ok   bool
	}{
		{
			name: "explicit expiry date",
			item: &Item{ExpiryDate: datePtr(today.AddDate(0, 0, 4))},
			want: 4,
			ok:   true,
		},
		{
			name: "estimated from purchase date",
			item: &Item{PurchaseDate: today.AddDate(0, 0, -5), EstimatedLifeDays: 7},
			want: 2,
			ok:   true,
		},
		{
			name: "expiry date wins over estimate",
			item: &Item{
				ExpiryDate:        datePtr(today.AddDate(0, 0, 1)),
				PurchaseDate:      today,
				EstimatedLifeDays: 30,
			},
			want: 1,
			ok:   true,
		},
		{
			name: "already expired",
			item: &Item{ExpiryDate: datePtr(today.AddDate(0, 0, -3))},
			want: -3,
			ok:   true,
		},
		{
			name: "nothing to go on",
			item: &Item{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.item.DaysRemaining(today)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("days = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFreshness(t *testing.T) {
	tests := []struct {
		daysFromNow int
		want        string
	}{
		{-1, FreshnessExpired},
		{0, FreshnessCritical},
		{2, FreshnessCritical},
		{3, FreshnessWarning},
		{5, FreshnessWarning},
		{6, FreshnessFresh},
	}

	for _, tt := range tests {
		item := perishable(1, "Leche", tt.daysFromNow)
		if got := item.Freshness(today); got != tt.want {
			t.Errorf("Freshness at %+d days = %s, want %s", tt.daysFromNow, got, tt.want)
		}
	}

	// No expiry information never alerts
	unknown := &Item{Name: "Arroz", Category: CategoryNonPerishable}
	if got := unknown.Freshness(today); got != FreshnessFresh {
		t.Errorf("unknown expiry = %s, want fresh", got)
	}
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want Category
	}{
		{"perishable", CategoryPerishable},
		{"non-perishable", CategoryNonPerishable},
		{"Frutas", CategoryPerishable},
		{"Lácteos", CategoryPerishable},
		{"frutas y verduras", CategoryPerishable},
		{"Limpieza", CategoryNonPerishable},
		{"", CategoryNonPerishable},
	}

	for _, tt := range tests {
		if got := classifyCategory(tt.raw); got != tt.want {
			t.Errorf("classifyCategory(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestBuildAlerts(t *testing.T) {
	items := []*Item{
		perishable(1, "Pollo", -2),
		perishable(2, "Leche", 1),
		perishable(3, "Yogur", 2),
		perishable(4, "Queso", 4),
		perishable(5, "Arroz", 30),
		{ID: 6, Name: "Sal", Category: CategoryNonPerishable, Status: StatusFresh},
	}

	report := BuildAlerts(items, today)

	if report.Summary.Total != 6 {
		t.Errorf("total = %d, want 6", report.Summary.Total)
	}
	if report.Summary.Expired != 1 || len(report.Expired) != 1 {
		t.Errorf("expired = %+v", report.Expired)
	}
	if report.Summary.Critical != 2 || len(report.Critical) != 2 {
		t.Errorf("critical = %+v", report.Critical)
	}
	if report.Summary.Warning != 1 || len(report.Warning) != 1 {
		t.Errorf("warning = %+v", report.Warning)
	}

	if !strings.Contains(report.Expired[0].Message, "venció hace 2") {
		t.Errorf("expired message = %q", report.Expired[0].Message)
	}

	// Two critical items stay under the batch-cooking threshold; one expired
	// item still raises the waste alert
	if len(report.Suggestions) != 1 || report.Suggestions[0].Type != "waste-alert" {
		t.Errorf("suggestions = %+v", report.Suggestions)
	}
}

func TestBuildAlertsBatchCookingSuggestion(t *testing.T) {
	items := []*Item{
		perishable(1, "Leche", 0),
		perishable(2, "Yogur", 1),
		perishable(3, "Pollo", 2),
	}

	report := BuildAlerts(items, today)

	if len(report.Suggestions) != 1 || report.Suggestions[0].Type != "batch-cooking" {
		t.Fatalf("suggestions = %+v", report.Suggestions)
	}
}

func TestBuildAlertsEmptyPantry(t *testing.T) {
	report := BuildAlerts(nil, today)

	if report.Summary.Total != 0 {
		t.Errorf("total = %d, want 0", report.Summary.Total)
	}
	if report.Critical == nil || report.Warning == nil || report.Expired == nil || report.Suggestions == nil {
		t.Error("alert lists must be empty, not null")
	}
}

func TestBuildRecommendations(t *testing.T) {
	consumed := []*Item{
		{Name: "Leche", Category: CategoryPerishable, PurchaseDate: today.AddDate(0, 0, -20)},
		{Name: "leche", Category: CategoryPerishable, PurchaseDate: today.AddDate(0, 0, -10)},
		{Name: "Leche", Category: CategoryPerishable, PurchaseDate: today.AddDate(0, 0, -3)},
		{Name: "Pan", Category: CategoryPerishable, PurchaseDate: today.AddDate(0, 0, -8)},
		{Name: "Pan", Category: CategoryPerishable, PurchaseDate: today.AddDate(0, 0, -2)},
		{Name: "Atún", Category: CategoryNonPerishable, PurchaseDate: today.AddDate(0, 0, -15)},
	}

	recs := BuildRecommendations(consumed)

	// One-off purchases are dropped; names group case-insensitively
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2: %+v", len(recs), recs)
	}
	if recs[0].Name != "Leche" || recs[0].Frequency != 3 {
		t.Errorf("top recommendation = %+v", recs[0])
	}
	if !recs[0].LastPurchased.Equal(today.AddDate(0, 0, -3)) {
		t.Errorf("last purchased = %v", recs[0].LastPurchased)
	}
	if recs[1].Name != "Pan" || recs[1].Frequency != 2 {
		t.Errorf("second recommendation = %+v", recs[1])
	}
}

func TestBuildRecommendationsLimit(t *testing.T) {
	var consumed []*Item
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for _, name := range names {
		for i := 0; i < 2; i++ {
			consumed = append(consumed, &Item{Name: name, PurchaseDate: today})
		}
	}

	recs := BuildRecommendations(consumed)
	if len(recs) != recommendationLimit {
		t.Errorf("got %d recommendations, want %d", len(recs), recommendationLimit)
	}
}
