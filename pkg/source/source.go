// Package source normalizes the sponsor exports of GitHub Sponsors, Ko-fi
// and PayPal into [sponsor.Record] values and [income.Ledger] transactions.
//
// # Files
//
// All exports live in one data directory and every one of them is optional:
//
//   - github.csv: GitHub Sponsors transaction export
//   - ko-fi.csv: Ko-fi transaction export
//   - ko-fi-meta.csv: Name, Link, Avatar for Ko-fi supporters
//   - paypal.csv: hand-maintained PayPal list (Name, Link, Avatar, Total, Public, Date)
//
// A missing file contributes nothing. A present file that lacks a required
// column, or contains a value that cannot be parsed, aborts loading with an
// error naming the file and the column.
//
// # Usage
//
//	ds, err := source.Load(ctx, "data", source.Options{Operator: "Jane Doe"})
//	merged := sponsor.Merge(ds.Sponsors(), aliases)
//	total := ds.Ledgers().AllTime(income.DefaultAllTimeStart)
package source

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/observability"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// Platform names in merge precedence order.
const (
	PlatformGitHub = "GitHub"
	PlatformKofi   = "Ko-fi"
	PlatformPayPal = "PayPal"
)

// Export file names inside the data directory.
const (
	FileGitHub   = "github.csv"
	FileKofi     = "ko-fi.csv"
	FileKofiMeta = "ko-fi-meta.csv"
	FilePayPal   = "paypal.csv"
)

// DefaultAnonymousName is the payer name Ko-fi uses for hidden supporters.
const DefaultAnonymousName = "Ko-fi Supporter"

// Options controls how exports are filtered.
type Options struct {
	// Operator is the wall owner's own name; their Ko-fi payments are
	// test or self donations and are excluded.
	Operator string

	// AnonymousName is the Ko-fi placeholder for private supporters.
	// Defaults to DefaultAnonymousName.
	AnonymousName string

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.AnonymousName == "" {
		o.AnonymousName = DefaultAnonymousName
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Platform holds the normalized data of one export.
type Platform struct {
	Name     string
	Found    bool // false if the export file does not exist
	Sponsors sponsor.Records
	Ledger   income.Ledger
}

// Total returns the platform's summed sponsor totals.
func (p Platform) Total() float64 { return p.Sponsors.Total() }

// Dataset holds all platforms in merge precedence order.
type Dataset struct {
	Platforms []Platform
}

// Sponsors concatenates the sponsors of all platforms, GitHub first, then
// Ko-fi, then PayPal.
func (d Dataset) Sponsors() []sponsor.Record {
	var all []sponsor.Record
	for _, p := range d.Platforms {
		all = append(all, p.Sponsors...)
	}
	return all
}

// Ledgers returns the transaction ledgers of all platforms.
func (d Dataset) Ledgers() income.Ledgers {
	ls := make(income.Ledgers, 0, len(d.Platforms))
	for _, p := range d.Platforms {
		ls = append(ls, p.Ledger)
	}
	return ls
}

type loader func(dir string, opts Options) (Platform, error)

// Load reads every export in dir.
func Load(ctx context.Context, dir string, opts Options) (*Dataset, error) {
	opts.setDefaults()

	loaders := []loader{LoadGitHub, LoadKofi, LoadPayPal}
	ds := &Dataset{Platforms: make([]Platform, 0, len(loaders))}

	for _, load := range loaders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := load(dir, opts)
		observability.Pipeline().OnSourceLoaded(ctx, p.Name, len(p.Sponsors), len(p.Ledger.Transactions), err)
		if err != nil {
			return nil, err
		}
		if !p.Found {
			opts.Logger.Debug("export not found, skipping", "platform", p.Name, "dir", dir)
		} else {
			opts.Logger.Debug("loaded export",
				"platform", p.Name,
				"sponsors", len(p.Sponsors),
				"transactions", len(p.Ledger.Transactions))
		}
		ds.Platforms = append(ds.Platforms, p)
	}
	return ds, nil
}

func emptyPlatform(name string) Platform {
	return Platform{Name: name, Ledger: income.Ledger{Platform: name}}
}

func join(dir, file string) string { return filepath.Join(dir, file) }
