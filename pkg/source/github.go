package source

import (
	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// GitHub Sponsors export columns.
const (
	colGitHubHandle  = "Sponsor Handle"
	colGitHubProfile = "Sponsor Profile Name"
	colGitHubAmount  = "Processed Amount"
	colGitHubPublic  = "Is Public?"
	colGitHubDate    = "Transaction Date"
)

const githubBaseURL = "https://github.com/"

// LoadGitHub reads github.csv from dir.
//
// Only public sponsorships become sponsor records; private ones still count
// towards the income ledger. The display name is the profile name, falling
// back to the handle, and link and avatar are derived from the handle.
// Rows are grouped by (name, link, avatar) in first-seen order.
func LoadGitHub(dir string, opts Options) (Platform, error) {
	opts.setDefaults()
	p := emptyPlatform(PlatformGitHub)

	t, found, err := readTable(join(dir, FileGitHub))
	if err != nil || !found {
		return p, err
	}
	p.Found = true

	if err := t.require(colGitHubHandle, colGitHubProfile, colGitHubAmount, colGitHubPublic, colGitHubDate); err != nil {
		return p, err
	}

	type key struct{ name, link, avatar string }
	index := map[key]int{}

	err = t.each(func(r row) error {
		amount, err := parseAmount(r.get(colGitHubAmount))
		if err != nil {
			return r.invalid(colGitHubAmount, err)
		}
		date, err := parseDate(r.get(colGitHubDate))
		if err != nil {
			return r.invalid(colGitHubDate, err)
		}
		p.Ledger.Transactions = append(p.Ledger.Transactions, income.Transaction{Date: date, Amount: amount})

		public, err := parseBool(r.get(colGitHubPublic))
		if err != nil {
			return r.invalid(colGitHubPublic, err)
		}
		if !public {
			return nil
		}

		handle := r.get(colGitHubHandle)
		if handle == "" {
			return r.invalid(colGitHubHandle, errEmpty)
		}
		name := r.get(colGitHubProfile)
		if name == "" {
			name = handle
		}
		link := githubBaseURL + handle
		k := key{name: name, link: link, avatar: link + ".png?size=64"}

		if i, ok := index[k]; ok {
			p.Sponsors[i].Total += amount
			return nil
		}
		index[k] = len(p.Sponsors)
		p.Sponsors = append(p.Sponsors, sponsor.Record{Name: k.name, Total: amount, Link: k.link, Avatar: k.avatar})
		return nil
	})
	return p, err
}
