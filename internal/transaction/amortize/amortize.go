package amortize

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a credit purchase whose cost is charged in equal monthly shares
// starting the purchase month. Installments is the number of shares; 1 means
// the whole amount lands on the purchase month.
type Record struct {
	ID           int64
	Description  string
	TotalAmount  decimal.Decimal
	Date         time.Time
	Installments int
}

// Line is one record's contribution to a given month
type Line struct {
	Record Record
	// Number is the 1-based installment number for the evaluated month
	Number int
	// Share is the per-month charge at full precision; rounding happens at
	// the response boundary
	Share decimal.Decimal
}

// Result aggregates every installment active in the evaluated month
type Result struct {
	TotalShare decimal.Decimal
	Lines      []Line
}

// MonthIndex converts a point in time to an absolute month index
// (year*12 + zero-based month), so calendar months compare without
// day-of-month arithmetic.
func MonthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// ActiveShare computes which records still have an installment falling on
// targetMonth and the per-month share of each. A record occupies the
// half-open month range [start, start+Installments); one with a single
// installment is active exactly in its purchase month. Empty input yields a
// zero result, never an error.
func ActiveShare(records []Record, targetMonth int) Result {
	result := Result{TotalShare: decimal.Zero}

	for _, rec := range records {
		total := rec.Installments
		if total < 1 {
			total = 1
		}

		start := MonthIndex(rec.Date)
		end := start + total

		if targetMonth < start || targetMonth >= end {
			continue
		}

		share := rec.TotalAmount.Div(decimal.NewFromInt(int64(total)))
		result.TotalShare = result.TotalShare.Add(share)
		result.Lines = append(result.Lines, Line{
			Record: rec,
			Number: targetMonth - start + 1,
			Share:  share,
		})
	}

	return result
}

// Spanish month names, january first
var monthNames = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthLabel renders an absolute month index the way the UI displays it,
// e.g. "marzo de 2026".
func MonthLabel(monthIndex int) string {
	return fmt.Sprintf("%s de %d", monthNames[monthIndex%12], monthIndex/12)
}
