package amortize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 12, 0, 0, 0, time.UTC)
}

func TestMonthIndex(t *testing.T) {
	cases := []struct {
		in   time.Time
		want int
	}{
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 2025 * 12},
		{time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC), 2025*12 + 11},
		{time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), 2026 * 12},
	}
	for _, tc := range cases {
		if got := MonthIndex(tc.in); got != tc.want {
			t.Errorf("MonthIndex(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestActiveShareThreeInstallments(t *testing.T) {
	purchase := date(2025, time.March)
	records := []Record{{
		ID:           1,
		Description:  "TV",
		TotalAmount:  decimal.NewFromInt(120000),
		Date:         purchase,
		Installments: 3,
	}}
	start := MonthIndex(purchase)

	tests := []struct {
		name       string
		target     int
		wantShare  string
		wantNumber int
		wantActive bool
	}{
		{"purchase month", start, "40000", 1, true},
		{"second month", start + 1, "40000", 2, true},
		{"third month", start + 2, "40000", 3, true},
		{"after plan ends", start + 3, "0", 0, false},
		{"before purchase", start - 1, "0", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveShare(records, tt.target)
			want, _ := decimal.NewFromString(tt.wantShare)
			if !got.TotalShare.Equal(want) {
				t.Errorf("TotalShare = %v, want %v", got.TotalShare, want)
			}
			if !tt.wantActive {
				if len(got.Lines) != 0 {
					t.Errorf("expected no lines, got %d", len(got.Lines))
				}
				return
			}
			if len(got.Lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(got.Lines))
			}
			if got.Lines[0].Number != tt.wantNumber {
				t.Errorf("installment number = %d, want %d", got.Lines[0].Number, tt.wantNumber)
			}
		})
	}
}

func TestActiveShareSinglePaymentCredit(t *testing.T) {
	// A credit purchase without a plan lands once, as installment 1/1,
	// in its purchase month only.
	purchase := date(2025, time.June)
	records := []Record{{
		ID:           7,
		TotalAmount:  decimal.NewFromInt(500),
		Date:         purchase,
		Installments: 1,
	}}
	start := MonthIndex(purchase)

	got := ActiveShare(records, start)
	if len(got.Lines) != 1 || got.Lines[0].Number != 1 {
		t.Fatalf("expected a single 1/1 line, got %+v", got.Lines)
	}
	if !got.TotalShare.Equal(decimal.NewFromInt(500)) {
		t.Errorf("TotalShare = %v, want 500", got.TotalShare)
	}

	if next := ActiveShare(records, start+1); len(next.Lines) != 0 {
		t.Errorf("expected no activity the month after, got %+v", next.Lines)
	}
}

func TestActiveShareTilingIsCompleteAndNonOverlapping(t *testing.T) {
	// Summing the share over every month of the plan's range recovers the
	// original amount (within division precision), and months outside the
	// range contribute nothing.
	rec := Record{
		ID:           3,
		TotalAmount:  decimal.NewFromInt(1000),
		Date:         date(2024, time.November),
		Installments: 7,
	}
	start := MonthIndex(rec.Date)

	sum := decimal.Zero
	for m := start - 2; m < start+rec.Installments+2; m++ {
		sum = sum.Add(ActiveShare([]Record{rec}, m).TotalShare)
	}

	diff := sum.Sub(rec.TotalAmount).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.000001)) {
		t.Errorf("tiled sum = %v, want %v (diff %v)", sum, rec.TotalAmount, diff)
	}
}

func TestActiveShareInstallmentNumbersAreMonotonic(t *testing.T) {
	rec := Record{
		ID:           4,
		TotalAmount:  decimal.NewFromInt(900),
		Date:         date(2025, time.January),
		Installments: 6,
	}
	start := MonthIndex(rec.Date)

	for i := 0; i < rec.Installments; i++ {
		got := ActiveShare([]Record{rec}, start+i)
		if len(got.Lines) != 1 {
			t.Fatalf("month %d: expected 1 line", i)
		}
		if got.Lines[0].Number != i+1 {
			t.Errorf("month %d: number = %d, want %d", i, got.Lines[0].Number, i+1)
		}
	}
}

func TestActiveShareMultipleRecords(t *testing.T) {
	target := MonthIndex(date(2025, time.August))
	records := []Record{
		{ID: 1, TotalAmount: decimal.NewFromInt(300), Date: date(2025, time.July), Installments: 3},  // 100/mo
		{ID: 2, TotalAmount: decimal.NewFromInt(50), Date: date(2025, time.August), Installments: 1}, // lands now
		{ID: 3, TotalAmount: decimal.NewFromInt(600), Date: date(2024, time.September), Installments: 12}, // 50/mo, last month

		{ID: 4, TotalAmount: decimal.NewFromInt(200), Date: date(2024, time.January), Installments: 2}, // long done
	}

	got := ActiveShare(records, target)
	if len(got.Lines) != 3 {
		t.Fatalf("expected 3 active lines, got %d", len(got.Lines))
	}
	want := decimal.NewFromInt(200) // 100 + 50 + 50
	if !got.TotalShare.Equal(want) {
		t.Errorf("TotalShare = %v, want %v", got.TotalShare, want)
	}
}

func TestActiveShareEmptyInput(t *testing.T) {
	got := ActiveShare(nil, MonthIndex(time.Now()))
	if !got.TotalShare.IsZero() || len(got.Lines) != 0 {
		t.Errorf("expected zero result for empty input, got %+v", got)
	}
}

func TestMonthLabel(t *testing.T) {
	jan2026 := 2026 * 12
	if got := MonthLabel(jan2026); got != "enero de 2026" {
		t.Errorf("MonthLabel = %q, want %q", got, "enero de 2026")
	}
	if got := MonthLabel(jan2026 + 11); got != "diciembre de 2026" {
		t.Errorf("MonthLabel = %q, want %q", got, "diciembre de 2026")
	}
}
