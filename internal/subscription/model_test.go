package subscription

import (
	"testing"
	"time"
)

func TestDueDateFollowsBillingDay(t *testing.T) {
	sub := &Subscription{BillingDay: 15}

	due := sub.DueDate(time.March, 2026)
	want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !due.Equal(want) {
		t.Errorf("due = %v, want %v", due, want)
	}
}

func TestDueDateCappedDayFitsEveryMonth(t *testing.T) {
	// Billing days stop at 28, so February never rolls over
	sub := &Subscription{BillingDay: 28}

	due := sub.DueDate(time.February, 2026)
	if due.Month() != time.February || due.Day() != 28 {
		t.Errorf("due = %v, want Feb 28", due)
	}
}
