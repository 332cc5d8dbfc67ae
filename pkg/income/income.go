// Package income computes donation totals over time.
//
// Each platform contributes a [Ledger] of dated transactions. All queries
// are built on a single primitive, the cumulative amount since a date:
// the sum of transactions whose UTC calendar date lies strictly after the
// calendar date of the cut-off. Dates are compared at day granularity, so a
// donation made on the cut-off day itself is not counted.
//
//	ledgers := income.Ledgers{github, kofi, paypal}
//	total := ledgers.AllTime(income.DefaultAllTimeStart)
//	weekly := ledgers.WeeklyAverage(time.Now(), income.DefaultWeeks)
//	months := ledgers.Monthly(income.DefaultSeriesStart, time.Now())
package income

import (
	"math"
	"time"
)

// Defaults matching the published income graph.
var (
	// DefaultSeriesStart is the first month of the monthly series.
	DefaultSeriesStart = time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

	// DefaultAllTimeStart predates every transaction.
	DefaultAllTimeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// DefaultWeeks is the window of the weekly average.
const DefaultWeeks = 53

// Transaction is a single donation.
type Transaction struct {
	Date   time.Time
	Amount float64
}

// Ledger holds the transactions of one platform.
type Ledger struct {
	Platform     string
	Transactions []Transaction
}

// AmountSince sums the transactions dated strictly after since, comparing
// UTC calendar dates.
func (l Ledger) AmountSince(since time.Time) float64 {
	cutoff := day(since)
	var sum float64
	for _, tx := range l.Transactions {
		if day(tx.Date).After(cutoff) {
			sum += tx.Amount
		}
	}
	return sum
}

// Ledgers combines the ledgers of all platforms.
type Ledgers []Ledger

// AmountSince returns the floored sum of all platform amounts since the date.
func (ls Ledgers) AmountSince(since time.Time) int64 {
	var sum float64
	for _, l := range ls {
		sum += l.AmountSince(since)
	}
	return int64(math.Floor(sum))
}

// AllTime returns everything raised after epoch.
func (ls Ledgers) AllTime(epoch time.Time) int64 {
	return ls.AmountSince(epoch)
}

// WeeklyAverage returns the floored average per week over the last weeks.
func (ls Ledgers) WeeklyAverage(now time.Time, weeks int) int64 {
	if weeks <= 0 {
		return 0
	}
	since := now.Add(-time.Duration(weeks) * 7 * 24 * time.Hour)
	return int64(math.Floor(float64(ls.AmountSince(since)) / float64(weeks)))
}

// Month is one row of the monthly series.
type Month struct {
	// Date is the first day of the month.
	Date time.Time
	// TotalAmount is the amount raised between the series start and Date.
	TotalAmount int64
	// Amount is the difference to the previous month (0 for the first).
	Amount int64
}

// Monthly returns one entry per calendar month start from epoch up to now.
func (ls Ledgers) Monthly(epoch, now time.Time) []Month {
	total := ls.AmountSince(epoch)

	var months []Month
	for _, start := range MonthStarts(epoch, now) {
		m := Month{Date: start, TotalAmount: total - ls.AmountSince(start)}
		if n := len(months); n > 0 {
			m.Amount = m.TotalAmount - months[n-1].TotalAmount
		}
		months = append(months, m)
	}
	return months
}

// MonthStarts lists the first day of every month in [from, to]. If from is
// not itself a month start, the series begins with the following month.
func MonthStarts(from, to time.Time) []time.Time {
	from, to = from.UTC(), to.UTC()
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start.Before(from) {
		start = start.AddDate(0, 1, 0)
	}

	var starts []time.Time
	for d := start; !d.After(to); d = d.AddDate(0, 1, 0) {
		starts = append(starts, d)
	}
	return starts
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
