package source

import (
	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// PayPal list columns.
const (
	colPayPalName   = "Name"
	colPayPalLink   = "Link"
	colPayPalAvatar = "Avatar"
	colPayPalTotal  = "Total"
	colPayPalPublic = "Public"
	colPayPalDate   = "Date"
)

// LoadPayPal reads paypal.csv from dir. The list is maintained by hand and
// already has the sponsor shape, so public rows pass through unchanged.
func LoadPayPal(dir string, opts Options) (Platform, error) {
	opts.setDefaults()
	p := emptyPlatform(PlatformPayPal)

	t, found, err := readTable(join(dir, FilePayPal))
	if err != nil || !found {
		return p, err
	}
	p.Found = true

	if err := t.require(colPayPalName, colPayPalLink, colPayPalAvatar, colPayPalTotal, colPayPalPublic, colPayPalDate); err != nil {
		return p, err
	}

	err = t.each(func(r row) error {
		total, err := parseAmount(r.get(colPayPalTotal))
		if err != nil {
			return r.invalid(colPayPalTotal, err)
		}
		date, err := parseDate(r.get(colPayPalDate))
		if err != nil {
			return r.invalid(colPayPalDate, err)
		}
		p.Ledger.Transactions = append(p.Ledger.Transactions, income.Transaction{Date: date, Amount: total})

		public, err := parseBool(r.get(colPayPalPublic))
		if err != nil {
			return r.invalid(colPayPalPublic, err)
		}
		if !public {
			return nil
		}

		name := r.get(colPayPalName)
		if err := errors.ValidateName(name); err != nil {
			return r.invalid(colPayPalName, err)
		}
		link := r.get(colPayPalLink)
		if err := errors.ValidateLink(link); err != nil {
			return r.invalid(colPayPalLink, err)
		}
		avatar := r.get(colPayPalAvatar)
		if err := validateAvatar(avatar); err != nil {
			return r.invalid(colPayPalAvatar, err)
		}
		p.Sponsors = append(p.Sponsors, sponsor.Record{
			Name:   name,
			Total:  total,
			Link:   link,
			Avatar: avatar,
		})
		return nil
	})
	return p, err
}
