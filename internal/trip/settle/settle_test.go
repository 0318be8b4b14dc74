package settle

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestBalancesEqualThreeWaySplit(t *testing.T) {
	// A pays 300 split 100 each among A, B, C
	participants := []string{"A", "B", "C"}
	expenses := []Expense{{
		PaidBy: "A",
		Amount: d(300),
		Splits: []Split{
			{Participant: "A", Amount: d(100)},
			{Participant: "B", Amount: d(100)},
			{Participant: "C", Amount: d(100)},
		},
	}}

	balances := Balances(participants, expenses)

	if !balances["A"].Equal(d(200)) {
		t.Errorf("A = %v, want 200", balances["A"])
	}
	if !balances["B"].Equal(d(-100)) || !balances["C"].Equal(d(-100)) {
		t.Errorf("B = %v, C = %v, want -100 each", balances["B"], balances["C"])
	}
}

func TestBalancesSumToZero(t *testing.T) {
	participants := []string{"ana", "beto", "carla", "diego"}
	expenses := []Expense{
		{PaidBy: "ana", Amount: d(120), Splits: []Split{
			{Participant: "ana", Amount: d(30)}, {Participant: "beto", Amount: d(30)},
			{Participant: "carla", Amount: d(30)}, {Participant: "diego", Amount: d(30)},
		}},
		{PaidBy: "beto", Amount: d(75.50), Splits: []Split{
			{Participant: "beto", Amount: d(25.50)}, {Participant: "carla", Amount: d(50)},
		}},
	}

	balances := Balances(participants, expenses)

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
	}
	if !sum.IsZero() {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

func TestBalancesNoExpenses(t *testing.T) {
	balances := Balances([]string{"A", "B"}, nil)
	if len(balances) != 2 {
		t.Fatalf("expected entries for every participant")
	}
	for key, b := range balances {
		if !b.IsZero() {
			t.Errorf("%s = %v, want 0", key, b)
		}
	}
}

func TestPlanTwoDebtorsOneCreditor(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"A": d(200),
		"B": d(-100),
		"C": d(-100),
	}

	transfers := Plan(balances)

	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
	}
	// Both debtors pay A 100; set equality regardless of order
	seen := map[string]bool{}
	for _, tr := range transfers {
		if tr.To != "A" || !tr.Amount.Equal(d(100)) {
			t.Errorf("unexpected transfer %+v", tr)
		}
		seen[tr.From] = true
	}
	if !seen["B"] || !seen["C"] {
		t.Errorf("expected transfers from B and C, got %+v", transfers)
	}
}

func TestPlanConservesBalances(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"A": d(173.25),
		"B": d(-80.10),
		"C": d(26.75),
		"D": d(-119.90),
	}

	transfers := Plan(balances)

	// Net movement per participant must mirror their balance
	net := map[string]decimal.Decimal{}
	for key := range balances {
		net[key] = decimal.Zero
	}
	for _, tr := range transfers {
		net[tr.From] = net[tr.From].Sub(tr.Amount)
		net[tr.To] = net[tr.To].Add(tr.Amount)
	}
	for key, balance := range balances {
		diff := net[key].Add(balance).Abs()
		if diff.GreaterThan(Epsilon) {
			t.Errorf("%s: net %v does not offset balance %v", key, net[key], balance)
		}
	}
}

func TestPlanEmitsAtMostNMinusOneTransfers(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"A": d(50), "B": d(30), "C": d(20),
		"D": d(-40), "E": d(-35), "F": d(-25),
	}

	transfers := Plan(balances)

	if len(transfers) > len(balances)-1 {
		t.Errorf("emitted %d transfers for %d participants, want <= %d",
			len(transfers), len(balances), len(balances)-1)
	}
}

func TestPlanLargestMatchedFirst(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"big-creditor":   d(90),
		"small-creditor": d(10),
		"big-debtor":     d(-70),
		"small-debtor":   d(-30),
	}

	transfers := Plan(balances)

	if len(transfers) == 0 {
		t.Fatal("expected transfers")
	}
	first := transfers[0]
	if first.From != "big-debtor" || first.To != "big-creditor" || !first.Amount.Equal(d(70)) {
		t.Errorf("first transfer = %+v, want big-debtor -> big-creditor 70", first)
	}
}

func TestPlanSettledGroupProducesNothing(t *testing.T) {
	balances := map[string]decimal.Decimal{"A": decimal.Zero, "B": d(0.005), "C": d(-0.005)}
	if transfers := Plan(balances); len(transfers) != 0 {
		t.Errorf("expected no transfers, got %+v", transfers)
	}
}

func TestPlanUnbalancedInputDegradesSilently(t *testing.T) {
	// Upstream invariant broken: a debtor with no matching creditor.
	// The plan settles what it can and leaves the rest, without erroring.
	balances := map[string]decimal.Decimal{
		"A": d(100),
		"B": d(-150),
	}

	transfers := Plan(balances)

	if len(transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %+v", transfers)
	}
	if !transfers[0].Amount.Equal(d(100)) {
		t.Errorf("transfer amount = %v, want 100", transfers[0].Amount)
	}
}

func TestPlanSingleParticipant(t *testing.T) {
	if transfers := Plan(map[string]decimal.Decimal{"solo": decimal.Zero}); len(transfers) != 0 {
		t.Errorf("expected no transfers for a lone participant, got %+v", transfers)
	}
}
