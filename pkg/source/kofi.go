package source

import (
	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// Ko-fi export columns.
const (
	colKofiFrom     = "From"
	colKofiReceived = "Received"
	colKofiDate     = "DateTime (UTC)"
)

// Ko-fi metadata columns.
const (
	colMetaName   = "Name"
	colMetaLink   = "Link"
	colMetaAvatar = "Avatar"
)

type profile struct{ link, avatar string }

// LoadKofi reads ko-fi.csv and ko-fi-meta.csv from dir.
//
// Payments by the anonymous placeholder and by the operator are dropped from
// the sponsor list; the remaining ones are summed per name and joined with
// the metadata table for link and avatar. The ledger excludes only the
// operator's own payments.
func LoadKofi(dir string, opts Options) (Platform, error) {
	opts.setDefaults()
	p := emptyPlatform(PlatformKofi)

	t, found, err := readTable(join(dir, FileKofi))
	if err != nil || !found {
		return p, err
	}
	p.Found = true

	if err := t.require(colKofiFrom, colKofiReceived, colKofiDate); err != nil {
		return p, err
	}

	meta, err := loadKofiMeta(dir)
	if err != nil {
		return p, err
	}

	index := map[string]int{}
	err = t.each(func(r row) error {
		from := r.get(colKofiFrom)
		if from == opts.Operator && from != "" {
			return nil
		}

		amount, err := parseAmount(r.get(colKofiReceived))
		if err != nil {
			return r.invalid(colKofiReceived, err)
		}
		date, err := parseDate(r.get(colKofiDate))
		if err != nil {
			return r.invalid(colKofiDate, err)
		}
		p.Ledger.Transactions = append(p.Ledger.Transactions, income.Transaction{Date: date, Amount: amount})

		if from == opts.AnonymousName || from == "" {
			return nil
		}
		if i, ok := index[from]; ok {
			p.Sponsors[i].Total += amount
			return nil
		}
		index[from] = len(p.Sponsors)
		m := meta[from]
		p.Sponsors = append(p.Sponsors, sponsor.Record{Name: from, Total: amount, Link: m.link, Avatar: m.avatar})
		return nil
	})
	return p, err
}

// loadKofiMeta reads the supporter metadata table. A missing file yields an
// empty table.
func loadKofiMeta(dir string) (map[string]profile, error) {
	meta := map[string]profile{}

	t, found, err := readTable(join(dir, FileKofiMeta))
	if err != nil || !found {
		return meta, err
	}
	if err := t.require(colMetaName, colMetaLink, colMetaAvatar); err != nil {
		return nil, err
	}

	err = t.each(func(r row) error {
		name := r.get(colMetaName)
		if name == "" {
			return nil
		}
		link := r.get(colMetaLink)
		if err := errors.ValidateLink(link); err != nil {
			return r.invalid(colMetaLink, err)
		}
		avatar := r.get(colMetaAvatar)
		if err := validateAvatar(avatar); err != nil {
			return r.invalid(colMetaAvatar, err)
		}
		if _, dup := meta[name]; !dup {
			meta[name] = profile{link: link, avatar: avatar}
		}
		return nil
	})
	return meta, err
}
