// Package tier maps donation amounts to sponsor tiers.
//
// A [Table] is an ordered list of tiers, each with a minimum amount. The
// first tier starts at zero and the last one is unbounded above, so every
// non-negative amount belongs to exactly one tier:
//
//	t, _ := tier.Default.Lookup(4) // tier1 ($2+)
//
// Each tier id doubles as the file name of its badge image (tier3.png) and
// as the key of its visual parameters in the render package.
package tier

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// Tier is a donation bracket starting at Min.
type Tier struct {
	ID  string
	Min float64
}

// Table is an ascending list of tiers. Use [NewTable] to build a validated one.
type Table []Tier

// Default is the tier table used by the sponsor wall.
var Default = Table{
	{ID: "tier0", Min: 0},
	{ID: "tier1", Min: 2},
	{ID: "tier2", Min: 5},
	{ID: "tier3", Min: 10},
	{ID: "tier4", Min: 20},
	{ID: "tier5", Min: 50},
	{ID: "tier6", Min: 100},
	{ID: "tier7", Min: 200},
	{ID: "tier8", Min: 500},
	{ID: "tier9", Min: 1000},
	{ID: "tier10", Min: 2000},
	{ID: "tier11", Min: 5000},
}

// NewTable sorts tiers by minimum and checks that they cover [0, ∞)
// without duplicate ids or minimums.
func NewTable(tiers ...Tier) (Table, error) {
	t := slices.Clone(Table(tiers))
	slices.SortStableFunc(t, func(a, b Tier) int { return cmp.Compare(a.Min, b.Min) })
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate reports whether the table is usable for lookups.
func (t Table) Validate() error {
	if len(t) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tier table is empty")
	}
	if t[0].Min != 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "lowest tier %q must start at 0, got %v", t[0].ID, t[0].Min)
	}
	seen := make(map[string]bool, len(t))
	for i, tr := range t {
		if tr.ID == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "tier %d has no id", i)
		}
		if seen[tr.ID] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate tier id %q", tr.ID)
		}
		seen[tr.ID] = true
		if i > 0 && tr.Min <= t[i-1].Min {
			return errors.New(errors.ErrCodeInvalidConfig, "tier %q minimum %v must exceed %v", tr.ID, tr.Min, t[i-1].Min)
		}
	}
	return nil
}

// Lookup returns the tier with the greatest minimum not above amount.
// Negative amounts have no tier.
func (t Table) Lookup(amount float64) (Tier, bool) {
	i := t.index(amount)
	if i < 0 {
		return Tier{}, false
	}
	return t[i], true
}

// MustLookup is like Lookup but returns an error for amounts without a tier.
func (t Table) MustLookup(amount float64) (Tier, error) {
	tr, ok := t.Lookup(amount)
	if !ok {
		return Tier{}, errors.New(errors.ErrCodeMissingTier, "no tier for amount %v", amount)
	}
	return tr, nil
}

func (t Table) index(amount float64) int {
	idx := -1
	for i, tr := range t {
		if tr.Min <= amount {
			idx = i
		}
	}
	return idx
}

// Group is a tier together with its sponsors in input order.
type Group struct {
	Tier     Tier
	Sponsors sponsor.Records
}

// Partition buckets sponsors into the half-open intervals [min_k, min_k+1),
// the top tier being unbounded. Empty buckets are omitted and groups are
// returned from the highest tier to the lowest. Sponsor order inside a group
// follows the input order.
func (t Table) Partition(sponsors sponsor.Records) ([]Group, error) {
	buckets := make([]sponsor.Records, len(t))
	for _, s := range sponsors {
		i := t.index(s.Total)
		if i < 0 {
			return nil, errors.New(errors.ErrCodeMissingTier, "sponsor %q has no tier for amount %v", s.Name, s.Total)
		}
		buckets[i] = append(buckets[i], s)
	}

	var groups []Group
	for i := len(t) - 1; i >= 0; i-- {
		if len(buckets[i]) == 0 {
			continue
		}
		groups = append(groups, Group{Tier: t[i], Sponsors: buckets[i]})
	}
	return groups, nil
}

// String formats the tier for logs.
func (tr Tier) String() string {
	return fmt.Sprintf("%s ($%v+)", tr.ID, tr.Min)
}
