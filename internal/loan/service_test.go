package loan

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func i64(v int64) *int64 { return &v }

func TestNewLoanDirections(t *testing.T) {
	tests := []struct {
		name         string
		req          CreateLoanRequest
		wantLender   *int64
		wantBorrower *int64
		wantErr      error
	}{
		{
			name: "lent to a registered user",
			req: CreateLoanRequest{
				Direction:      DirectionLent,
				CounterpartyID: i64(9),
				Amount:         d(500),
			},
			wantLender:   i64(7),
			wantBorrower: i64(9),
		},
		{
			name: "borrowed from a free-text counterparty",
			req: CreateLoanRequest{
				Direction:        DirectionBorrowed,
				CounterpartyName: "Tia Marta",
				Amount:           d(200),
			},
			wantBorrower: i64(7),
		},
		{
			name: "unknown direction",
			req: CreateLoanRequest{
				Direction:      "gifted",
				CounterpartyID: i64(9),
				Amount:         d(100),
			},
			wantErr: ErrInvalidDirection,
		},
		{
			name: "zero amount",
			req: CreateLoanRequest{
				Direction:      DirectionLent,
				CounterpartyID: i64(9),
				Amount:         decimal.Zero,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "no counterparty at all",
			req: CreateLoanRequest{
				Direction: DirectionLent,
				Amount:    d(100),
			},
			wantErr: ErrCounterpartyMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan, err := newLoan(7, &tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if loan.Status != StatusPending {
				t.Errorf("status = %s, want pending", loan.Status)
			}
			if !equalID(loan.LenderID, tt.wantLender) {
				t.Errorf("lender = %v, want %v", loan.LenderID, tt.wantLender)
			}
			if !equalID(loan.BorrowerID, tt.wantBorrower) {
				t.Errorf("borrower = %v, want %v", loan.BorrowerID, tt.wantBorrower)
			}
		})
	}
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func TestLoanSides(t *testing.T) {
	loan := &Loan{LenderID: i64(7), BorrowerID: i64(9)}

	if !loan.IsLender(7) || loan.IsLender(9) {
		t.Error("lender side misidentified")
	}
	if !loan.IsBorrower(9) || loan.IsBorrower(7) {
		t.Error("borrower side misidentified")
	}

	// Free-text counterparty: nobody is on that side
	open := &Loan{LenderID: i64(7), CounterpartyName: "Tia Marta"}
	if open.IsBorrower(7) || open.IsBorrower(0) {
		t.Error("free-text counterparty must not match any user")
	}
}
