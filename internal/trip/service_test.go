package trip

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func i64(v int64) *int64 { return &v }

func testTrip() *Trip {
	return &Trip{
		ID:     1,
		UserID: 7,
		Name:   "Mendoza",
		Participants: []*Participant{
			{ID: 10, TripID: 1, UserID: i64(7), Name: "Nico"},
			{ID: 11, TripID: 1, Name: "Flor"},
			{ID: 12, TripID: 1, Name: "Santi"},
		},
	}
}

func TestBuildExpenseValidation(t *testing.T) {
	trip := testTrip()

	tests := []struct {
		name    string
		req     AddExpenseRequest
		wantErr error
	}{
		{
			name: "valid equal split",
			req: AddExpenseRequest{
				Amount: d(90),
				PaidBy: ParticipantRef{UserID: i64(7)},
				SplitBetween: []SplitInput{
					{Name: "Nico", Amount: d(30)},
					{Name: "Flor", Amount: d(30)},
					{Name: "Santi", Amount: d(30)},
				},
			},
		},
		{
			name: "split sum within tolerance",
			req: AddExpenseRequest{
				Amount: d(100),
				PaidBy: ParticipantRef{Name: "Flor"},
				SplitBetween: []SplitInput{
					{Name: "Nico", Amount: d(33.33)},
					{Name: "Flor", Amount: d(33.33)},
					{Name: "Santi", Amount: d(33.33)},
				},
			},
		},
		{
			name: "split sum off by more than a cent",
			req: AddExpenseRequest{
				Amount: d(100),
				PaidBy: ParticipantRef{Name: "Flor"},
				SplitBetween: []SplitInput{
					{Name: "Nico", Amount: d(50)},
					{Name: "Flor", Amount: d(40)},
				},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name: "payer not on the trip",
			req: AddExpenseRequest{
				Amount:       d(50),
				PaidBy:       ParticipantRef{Name: "Rama"},
				SplitBetween: []SplitInput{{Name: "Nico", Amount: d(50)}},
			},
			wantErr: ErrPayerNotParticipant,
		},
		{
			name: "split member not on the trip",
			req: AddExpenseRequest{
				Amount:       d(50),
				PaidBy:       ParticipantRef{Name: "Nico"},
				SplitBetween: []SplitInput{{Name: "Rama", Amount: d(50)}},
			},
			wantErr: ErrUnknownSplitMember,
		},
		{
			name: "negative amount",
			req: AddExpenseRequest{
				Amount: d(-10),
				PaidBy: ParticipantRef{Name: "Nico"},
			},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense, err := buildExpense(trip, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(expense.Splits) != len(tt.req.SplitBetween) {
				t.Errorf("got %d splits, want %d", len(expense.Splits), len(tt.req.SplitBetween))
			}
		})
	}
}

func TestBuildExpenseDefaults(t *testing.T) {
	trip := testTrip()

	expense, err := buildExpense(trip, &AddExpenseRequest{
		Amount:       d(60),
		PaidBy:       ParticipantRef{Name: "Santi"},
		SplitBetween: []SplitInput{{Name: "Santi", Amount: d(60)}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if expense.Currency != "USD" {
		t.Errorf("currency = %q, want USD", expense.Currency)
	}
	if expense.Category != CategoryOther {
		t.Errorf("category = %q, want %q", expense.Category, CategoryOther)
	}
	if expense.Date.IsZero() {
		t.Error("expected date to default to now")
	}
}

func TestFindParticipantPrefersUserID(t *testing.T) {
	trip := testTrip()

	// A ref carrying a registered user ID matches that participant even if
	// the name differs
	p := findParticipant(trip, i64(7), "Flor")
	if p == nil || p.ID != 10 {
		t.Fatalf("got %+v, want participant 10", p)
	}

	if p := findParticipant(trip, nil, "Flor"); p == nil || p.ID != 11 {
		t.Fatalf("got %+v, want participant 11", p)
	}

	if p := findParticipant(trip, nil, "Rama"); p != nil {
		t.Fatalf("expected no match, got %+v", p)
	}
}

func TestSettleTripKeysByUserIDOrName(t *testing.T) {
	trip := testTrip()
	trip.Expenses = []*Expense{{
		ID:       100,
		PaidByID: 10,
		Amount:   d(90),
		Splits: []*Split{
			{ParticipantID: 10, Amount: d(30)},
			{ParticipantID: 11, Amount: d(30)},
			{ParticipantID: 12, Amount: d(30)},
		},
	}}

	balances, transfers := settleTrip(trip)

	// Registered participant is keyed by user ID, the rest by name
	if !balances["7"].Equal(d(60)) {
		t.Errorf(`balances["7"] = %v, want 60`, balances["7"])
	}
	if !balances["Flor"].Equal(d(-30)) || !balances["Santi"].Equal(d(-30)) {
		t.Errorf("Flor = %v, Santi = %v, want -30 each", balances["Flor"], balances["Santi"])
	}

	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %+v", transfers)
	}
	for _, tr := range transfers {
		if tr.To != "7" || !tr.Amount.Equal(d(30)) {
			t.Errorf("unexpected transfer %+v", tr)
		}
	}
}

func TestSettleTripNoExpenses(t *testing.T) {
	balances, transfers := settleTrip(testTrip())

	if len(balances) != 3 {
		t.Fatalf("expected a balance per participant, got %v", balances)
	}
	for key, b := range balances {
		if !b.IsZero() {
			t.Errorf("%s = %v, want 0", key, b)
		}
	}
	if len(transfers) != 0 {
		t.Errorf("expected no transfers, got %+v", transfers)
	}
}

func TestNewSettlementEnvelopeRoundsBalances(t *testing.T) {
	trip := testTrip()
	balances := map[string]decimal.Decimal{
		"7":    decimal.NewFromFloat(33.333333),
		"Flor": decimal.NewFromFloat(-33.333333),
	}

	env := newSettlementEnvelope(trip, balances, nil)

	if !env.Success {
		t.Error("expected success flag")
	}
	if !env.Balances["7"].Equal(d(33.33)) {
		t.Errorf(`balances["7"] = %v, want 33.33`, env.Balances["7"])
	}
	if env.Settlements == nil {
		t.Error("settlements must be an empty list, not null")
	}
	if env.Trip == nil || env.Trip.ID != trip.ID {
		t.Errorf("envelope trip = %+v", env.Trip)
	}
}

func TestRemoveExpenseErrorMapping(t *testing.T) {
	if got := removeExpenseError(sql.ErrNoRows); !errors.Is(got, ErrExpenseNotFound) {
		t.Errorf("zero rows mapped to %v, want ErrExpenseNotFound", got)
	}

	wrapped := fmt.Errorf("failed to remove expense: %w", sql.ErrNoRows)
	if got := removeExpenseError(wrapped); !errors.Is(got, ErrExpenseNotFound) {
		t.Errorf("wrapped zero rows mapped to %v, want ErrExpenseNotFound", got)
	}

	// A store failure must surface as itself, not as a missing expense
	dbErr := errors.New("connection refused")
	got := removeExpenseError(dbErr)
	if errors.Is(got, ErrExpenseNotFound) {
		t.Fatal("store failure mapped to ErrExpenseNotFound")
	}
	if !errors.Is(got, dbErr) {
		t.Errorf("store failure mapped to %v, want the original error", got)
	}
}
