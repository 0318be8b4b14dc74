package splitbill

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testBill(total float64, names ...string) *Bill {
	bill := &Bill{
		ID:              1,
		TransactionID:   10,
		CreatorID:       7,
		SplitType:       SplitEqual,
		TipDistribution: TipProportional,
		TotalAmount:     d(total),
		Status:          StatusActive,
	}
	for i, name := range names {
		bill.Participants = append(bill.Participants, &Participant{
			ID:   int64(100 + i),
			Name: name,
		})
	}
	return bill
}

func TestSplitEqually(t *testing.T) {
	bill := testBill(90, "Nico", "Flor", "Santi")
	bill.SplitEqually()

	for _, p := range bill.Participants {
		if !p.Subtotal.Equal(d(30)) || !p.Total.Equal(d(30)) {
			t.Errorf("%s = %+v, want 30", p.Name, p)
		}
	}
}

func TestSplitEquallyRemainderToFirst(t *testing.T) {
	bill := testBill(100, "Nico", "Flor", "Santi")
	bill.SplitEqually()

	// 100/3 floors to 33.33; the first participant absorbs the leftover
	if !bill.Participants[0].Subtotal.Equal(d(33.34)) {
		t.Errorf("first subtotal = %v, want 33.34", bill.Participants[0].Subtotal)
	}
	for _, p := range bill.Participants[1:] {
		if !p.Subtotal.Equal(d(33.33)) {
			t.Errorf("%s subtotal = %v, want 33.33", p.Name, p.Subtotal)
		}
	}

	sum := decimal.Zero
	for _, p := range bill.Participants {
		sum = sum.Add(p.Subtotal)
	}
	if !sum.Equal(bill.TotalAmount) {
		t.Errorf("subtotals sum to %v, want %v", sum, bill.TotalAmount)
	}
}

func TestDistributeTipProportional(t *testing.T) {
	bill := testBill(100, "Nico", "Flor")
	bill.TipAmount = d(10)
	bill.Participants[0].Subtotal = d(75)
	bill.Participants[1].Subtotal = d(25)

	bill.DistributeTip()

	if !bill.Participants[0].TipAmount.Equal(d(7.5)) || !bill.Participants[1].TipAmount.Equal(d(2.5)) {
		t.Errorf("tips = %v / %v, want 7.5 / 2.5",
			bill.Participants[0].TipAmount, bill.Participants[1].TipAmount)
	}
	if !bill.Participants[0].Total.Equal(d(82.5)) {
		t.Errorf("total = %v, want 82.5", bill.Participants[0].Total)
	}
}

func TestDistributeTipEqual(t *testing.T) {
	bill := testBill(100, "Nico", "Flor")
	bill.TipAmount = d(10)
	bill.TipDistribution = TipEqual
	bill.Participants[0].Subtotal = d(90)
	bill.Participants[1].Subtotal = d(10)

	bill.DistributeTip()

	for _, p := range bill.Participants {
		if !p.TipAmount.Equal(d(5)) {
			t.Errorf("%s tip = %v, want 5", p.Name, p.TipAmount)
		}
	}
}

func TestDistributeTipAbsorbsRoundingDrift(t *testing.T) {
	bill := testBill(100, "Nico", "Flor", "Santi")
	bill.TipAmount = d(10)
	bill.SplitEqually()

	// Per-person totals must add back to bill plus tip exactly
	sum := decimal.Zero
	for _, p := range bill.Participants {
		sum = sum.Add(p.Total)
	}
	if !sum.Equal(d(110)) {
		t.Errorf("totals sum to %v, want 110", sum)
	}
}

func TestApplyAssignments(t *testing.T) {
	bill := testBill(100, "Nico", "Flor")
	bill.SplitType = SplitByItem
	bill.TipAmount = d(10)
	bill.Items = []*Item{
		{ID: 1, Name: "Pizza", Price: d(30), Quantity: 2},
		{ID: 2, Name: "Cerveza", Price: d(10), Quantity: 4},
	}

	bill.ApplyAssignments(map[int64][]int64{
		100: {1},
		101: {2},
	})

	if !bill.Participants[0].Subtotal.Equal(d(60)) {
		t.Errorf("Nico subtotal = %v, want 60", bill.Participants[0].Subtotal)
	}
	if !bill.Participants[1].Subtotal.Equal(d(40)) {
		t.Errorf("Flor subtotal = %v, want 40", bill.Participants[1].Subtotal)
	}

	// Tip follows consumption
	if !bill.Participants[0].TipAmount.Equal(d(6)) || !bill.Participants[1].TipAmount.Equal(d(4)) {
		t.Errorf("tips = %v / %v, want 6 / 4",
			bill.Participants[0].TipAmount, bill.Participants[1].TipAmount)
	}
}

func TestBuildBillValidation(t *testing.T) {
	two := []ParticipantInput{{Name: "Nico"}, {Name: "Flor"}}

	tests := []struct {
		name    string
		req     CreateBillRequest
		wantErr error
	}{
		{
			name:    "bad split type",
			req:     CreateBillRequest{SplitType: "weird", Participants: two},
			wantErr: ErrInvalidSplitType,
		},
		{
			name:    "one participant",
			req:     CreateBillRequest{SplitType: "equal", Participants: two[:1]},
			wantErr: ErrTooFewParticipants,
		},
		{
			name:    "negative tip",
			req:     CreateBillRequest{SplitType: "equal", Participants: two, TipAmount: d(-1)},
			wantErr: ErrInvalidTip,
		},
		{
			name:    "bad tip distribution",
			req:     CreateBillRequest{SplitType: "equal", Participants: two, TipDistribution: "random"},
			wantErr: ErrInvalidTipDistribution,
		},
		{
			name:    "by-item without items",
			req:     CreateBillRequest{SplitType: "by_item", Participants: two},
			wantErr: ErrItemsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildBill(7, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildBillDefaults(t *testing.T) {
	req := CreateBillRequest{
		TransactionID: 10,
		SplitType:     "by_item",
		Participants:  []ParticipantInput{{Name: "Nico"}, {Name: "Flor"}},
		Items:         []ItemInput{{Name: "Pizza", Price: d(30)}},
	}

	bill, err := buildBill(7, &req)
	if err != nil {
		t.Fatalf("buildBill: %v", err)
	}

	if bill.TipDistribution != TipProportional {
		t.Errorf("tip distribution = %s, want proportional", bill.TipDistribution)
	}
	if bill.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", bill.Items[0].Quantity)
	}
	if bill.Status != StatusActive {
		t.Errorf("status = %s, want active", bill.Status)
	}
}

func TestAllPaid(t *testing.T) {
	bill := testBill(100, "Nico", "Flor")
	if bill.AllPaid() {
		t.Error("nobody paid yet")
	}

	bill.Participants[0].Paid = true
	if bill.AllPaid() {
		t.Error("one participant still owes")
	}

	bill.Participants[1].Paid = true
	if !bill.AllPaid() {
		t.Error("everyone paid")
	}

	empty := testBill(100)
	if empty.AllPaid() {
		t.Error("a bill with no participants is never settled")
	}
}
