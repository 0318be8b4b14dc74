// Package settle computes who owes whom in a shared-expense group.
package settle

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Epsilon absorbs floating-point and rounding noise: balances within a cent
// of zero count as settled.
var Epsilon = decimal.NewFromFloat(0.01)

// Expense is one shared purchase: the payer fronted Amount and each split
// line says how much of it a participant consumed.
type Expense struct {
	PaidBy string
	Amount decimal.Decimal
	Splits []Split
}

// Split is one participant's share of an expense
type Split struct {
	Participant string
	Amount      decimal.Decimal
}

// Transfer is a single point-to-point payment in a settlement plan
type Transfer struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// Balances accumulates each participant's net position: positive means they
// are owed money, negative means they owe. Every known participant gets an
// entry, even at zero. Payers are credited the full amount; split members are
// debited their share, so the map sums to zero whenever every expense's
// splits add up to its amount.
func Balances(participants []string, expenses []Expense) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		balances[p] = decimal.Zero
	}

	for _, e := range expenses {
		balances[e.PaidBy] = balances[e.PaidBy].Add(e.Amount)
		for _, s := range e.Splits {
			balances[s.Participant] = balances[s.Participant].Sub(s.Amount)
		}
	}

	return balances
}

type party struct {
	key       string
	remaining decimal.Decimal
}

// Plan reduces a balance map to a minimal set of transfers that zeroes every
// position. Debtors and creditors are matched greedily, largest remaining
// amount first, which keeps the plan at no more than n-1 transfers for n
// unsettled participants. If the balances do not sum to zero the loop simply
// runs out of one side and leaves the excess unmatched.
func Plan(balances map[string]decimal.Decimal) []Transfer {
	var debtors, creditors []party
	for key, balance := range balances {
		switch {
		case balance.LessThan(Epsilon.Neg()):
			debtors = append(debtors, party{key: key, remaining: balance.Abs()})
		case balance.GreaterThan(Epsilon):
			creditors = append(creditors, party{key: key, remaining: balance})
		}
	}

	// Largest first; key order breaks ties so output is deterministic
	byRemainingDesc := func(parties []party) {
		sort.Slice(parties, func(i, j int) bool {
			if !parties[i].remaining.Equal(parties[j].remaining) {
				return parties[i].remaining.GreaterThan(parties[j].remaining)
			}
			return parties[i].key < parties[j].key
		})
	}
	byRemainingDesc(debtors)
	byRemainingDesc(creditors)

	transfers := []Transfer{}
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor := &debtors[0]
		creditor := &creditors[0]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, Transfer{
			From:   debtor.key,
			To:     creditor.key,
			Amount: amount.Round(2),
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThan(Epsilon) {
			debtors = debtors[1:]
		}
		if creditor.remaining.LessThan(Epsilon) {
			creditors = creditors[1:]
		}
	}

	return transfers
}
