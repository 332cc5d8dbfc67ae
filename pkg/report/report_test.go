package report

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/source"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

func TestWriteMonthly(t *testing.T) {
	months := []income.Month{
		{Date: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: 0, Amount: 0},
		{Date: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC), TotalAmount: 10, Amount: 10},
		{Date: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), TotalAmount: 19, Amount: 9},
	}

	var buf bytes.Buffer
	if err := WriteMonthly(&buf, months); err != nil {
		t.Fatal(err)
	}
	want := "Date,TotalAmount,Amount\n2021-01-01,0,0\n2021-02-01,10,10\n2021-03-01,19,9\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteDonors(t *testing.T) {
	donors := sponsor.Records{
		{Name: "Alice", Total: 1005.5},
		{Name: "Smith, Bob", Total: 3},
	}

	var buf bytes.Buffer
	if err := WriteDonors(&buf, donors); err != nil {
		t.Fatal(err)
	}
	want := "Name,Total\nAlice,1005.5\n\"Smith, Bob\",3\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWritePlatforms(t *testing.T) {
	platforms := []source.Platform{
		{Name: source.PlatformGitHub, Sponsors: sponsor.Records{{Total: 10.9}, {Total: 0.5}}},
		{Name: source.PlatformKofi},
		{Name: source.PlatformPayPal, Sponsors: sponsor.Records{{Total: 25}}},
	}

	var buf bytes.Buffer
	if err := WritePlatforms(&buf, platforms); err != nil {
		t.Fatal(err)
	}
	want := "Platform,Total\nGitHub,11\nKo-fi,0\nPayPal,25\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[float64]string{
		3:      "3",
		5.5:    "5.5",
		1000.1: "1000.1",
		0:      "0",
	}
	for in, want := range tests {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func ExampleWriteInt() {
	_ = WriteInt(os.Stdout, 1234)
	// Output: 1234
}
