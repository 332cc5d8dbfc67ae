// Package report writes the machine-readable summaries printed by the CLI.
//
// All reports are CSV with a header row:
//
//	Date,TotalAmount,Amount   monthly income series
//	Name,Total                merged donors, highest total first
//	Platform,Total            per-platform totals, truncated to whole units
//
// The weekly average and the all-time total are single integers.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/source"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// DateLayout formats the month column.
const DateLayout = "2006-01-02"

// WriteMonthly writes the monthly income series.
func WriteMonthly(w io.Writer, months []income.Month) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Date", "TotalAmount", "Amount"})
	for _, m := range months {
		_ = cw.Write([]string{
			m.Date.Format(DateLayout),
			strconv.FormatInt(m.TotalAmount, 10),
			strconv.FormatInt(m.Amount, 10),
		})
	}
	cw.Flush()
	return cw.Error()
}

// WriteDonors writes the merged donor list in the given order.
func WriteDonors(w io.Writer, donors sponsor.Records) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Name", "Total"})
	for _, d := range donors {
		_ = cw.Write([]string{d.Name, FormatAmount(d.Total)})
	}
	cw.Flush()
	return cw.Error()
}

// WritePlatforms writes one row per platform with its sponsor total
// truncated towards zero.
func WritePlatforms(w io.Writer, platforms []source.Platform) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Platform", "Total"})
	for _, p := range platforms {
		_ = cw.Write([]string{p.Name, strconv.FormatInt(int64(p.Total()), 10)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteInt writes a single integer followed by a newline.
func WriteInt(w io.Writer, v int64) error {
	_, err := fmt.Fprintln(w, v)
	return err
}

// FormatAmount formats a total with as few digits as needed.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
