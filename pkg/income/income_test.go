package income

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func testLedgers() Ledgers {
	return Ledgers{
		{Platform: "GitHub", Transactions: []Transaction{
			{Date: date(2021, 1, 15), Amount: 10},
			{Date: date(2021, 3, 1), Amount: 5.5},
		}},
		{Platform: "Ko-fi", Transactions: []Transaction{
			{Date: date(2021, 2, 2), Amount: 3},
			{Date: date(2021, 3, 20), Amount: 4.75},
		}},
		{Platform: "PayPal"},
	}
}

func TestLedgerAmountSince(t *testing.T) {
	l := Ledger{Transactions: []Transaction{
		{Date: date(2021, 1, 1), Amount: 1},
		{Date: date(2021, 1, 2), Amount: 2},
		{Date: time.Date(2021, 1, 3, 0, 30, 0, 0, time.FixedZone("CET", 3600)), Amount: 4}, // 2021-01-02 23:30 UTC
	}}

	tests := []struct {
		name  string
		since time.Time
		want  float64
	}{
		{"before all", date(2020, 12, 31), 7},
		{"same day excluded", date(2021, 1, 1), 6},
		{"late on the day is still the same day", time.Date(2021, 1, 1, 23, 59, 0, 0, time.UTC), 6},
		{"compares in UTC", date(2021, 1, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.AmountSince(tt.since); got != tt.want {
				t.Errorf("AmountSince() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLedgersAmountSinceFloors(t *testing.T) {
	ls := testLedgers()
	// 10 + 5.5 + 3 + 4.75 = 23.25
	if got := ls.AmountSince(date(2000, 1, 1)); got != 23 {
		t.Errorf("AmountSince() = %d, want 23", got)
	}
	if got := (Ledgers{}).AmountSince(date(2000, 1, 1)); got != 0 {
		t.Errorf("empty AmountSince() = %d, want 0", got)
	}
}

func TestMonthly(t *testing.T) {
	ls := testLedgers()
	epoch := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	now := date(2021, 4, 10)

	months := ls.Monthly(epoch, now)
	if len(months) != 4 {
		t.Fatalf("got %d months, want 4", len(months))
	}

	// The donation dated 2021-03-01 is already included in the total at that month start.
	wantTotals := []int64{0, 10, 19, 23}
	wantAmounts := []int64{0, 10, 9, 4}
	for i, m := range months {
		if m.Date.Day() != 1 || m.Date.Month() != time.Month(i+1) {
			t.Errorf("month %d date = %v", i, m.Date)
		}
		if m.TotalAmount != wantTotals[i] {
			t.Errorf("month %d TotalAmount = %d, want %d", i, m.TotalAmount, wantTotals[i])
		}
		if m.Amount != wantAmounts[i] {
			t.Errorf("month %d Amount = %d, want %d", i, m.Amount, wantAmounts[i])
		}
	}
}

func TestMonthlyInvariants(t *testing.T) {
	months := testLedgers().Monthly(DefaultSeriesStart, date(2022, 6, 1))
	if len(months) == 0 {
		t.Fatal("no months")
	}
	if months[0].Amount != 0 {
		t.Errorf("first Amount = %d, want 0", months[0].Amount)
	}
	for i := 1; i < len(months); i++ {
		if months[i].TotalAmount < months[i-1].TotalAmount {
			t.Errorf("TotalAmount decreases at %v", months[i].Date)
		}
	}
}

func TestMonthStarts(t *testing.T) {
	starts := MonthStarts(date(2021, 11, 15), date(2022, 2, 1))
	want := []time.Time{
		time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	if len(starts) != len(want) {
		t.Fatalf("got %v, want %v", starts, want)
	}
	for i := range want {
		if !starts[i].Equal(want[i]) {
			t.Errorf("starts[%d] = %v, want %v", i, starts[i], want[i])
		}
	}
}

func TestWeeklyAverage(t *testing.T) {
	now := date(2022, 1, 1)
	ls := Ledgers{{Transactions: []Transaction{
		{Date: now.AddDate(0, 0, -7), Amount: 100},
		{Date: now.AddDate(0, 0, -300), Amount: 6},
		{Date: now.AddDate(-2, 0, 0), Amount: 1000},
	}}}

	// floor(106 / 53) = 2
	if got := ls.WeeklyAverage(now, DefaultWeeks); got != 2 {
		t.Errorf("WeeklyAverage() = %d, want 2", got)
	}
	if got := ls.WeeklyAverage(now, 0); got != 0 {
		t.Errorf("WeeklyAverage(0 weeks) = %d, want 0", got)
	}
}

func TestAllTime(t *testing.T) {
	if got := testLedgers().AllTime(DefaultAllTimeStart); got != 23 {
		t.Errorf("AllTime() = %d, want 23", got)
	}
}
