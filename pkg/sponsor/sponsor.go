// Package sponsor defines the uniform sponsor record shared by all platform
// loaders and the merge step that folds duplicates into one record per
// canonical name.
//
// # Merging
//
// Records from GitHub, Ko-fi and PayPal are concatenated in that order and
// passed to [Merge] together with an [AliasTable]. Aliases are applied first,
// then records with the same name are combined: totals are summed and the
// first non-empty link and avatar win. The result is sorted by total,
// largest first:
//
//	merged := sponsor.Merge(records, sponsor.AliasTable{"DonHopkins": "Don Hopkins"})
//
// Merge is idempotent, so merging an already merged set is a no-op.
package sponsor

import (
	"cmp"
	"slices"

	"github.com/schneegans/sponsorwall/pkg/errors"
)

// Record is a sponsor as shown on the wall. Empty Link or Avatar means the
// value is unknown.
type Record struct {
	Name   string  `json:"name"`
	Total  float64 `json:"total"`
	Link   string  `json:"link,omitempty"`
	Avatar string  `json:"avatar,omitempty"`
}

// Records is an ordered list of sponsors.
type Records []Record

// Total returns the sum of all sponsor totals.
func (rs Records) Total() float64 {
	var sum float64
	for _, r := range rs {
		sum += r.Total
	}
	return sum
}

// Validate checks the rendering contract: every sponsor with a positive
// total must have an avatar reference.
func (rs Records) Validate() error {
	for _, r := range rs {
		if r.Total > 0 && r.Avatar == "" {
			return errors.New(errors.ErrCodeMissingAvatar, "sponsor %q (total %v) has no avatar", r.Name, r.Total)
		}
	}
	return nil
}

// AliasTable maps raw display names to canonical names.
type AliasTable map[string]string

// Resolve returns the canonical name for name.
func (a AliasTable) Resolve(name string) string {
	if canonical, ok := a[name]; ok {
		return canonical
	}
	return name
}

// Validate rejects empty names, self mappings and chains (an alias whose
// target is itself an alias), since resolution is applied exactly once.
func (a AliasTable) Validate() error {
	for from, to := range a {
		if err := errors.ValidateName(from); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "alias %q", from)
		}
		if err := errors.ValidateName(to); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "alias target for %q", from)
		}
		if from == to {
			return errors.New(errors.ErrCodeInvalidConfig, "alias %q maps to itself", from)
		}
		if _, chained := a[to]; chained {
			return errors.New(errors.ErrCodeInvalidConfig, "alias %q maps to %q which is an alias too", from, to)
		}
	}
	return nil
}

// Merge resolves aliases and folds records with the same name into one.
// Totals are summed; Link and Avatar take the first non-empty value in
// input order. The result is sorted by descending total, ties keeping the
// order in which names were first seen.
func Merge(records []Record, aliases AliasTable) Records {
	index := make(map[string]int, len(records))
	merged := make(Records, 0, len(records))

	for _, r := range records {
		name := aliases.Resolve(r.Name)
		i, ok := index[name]
		if !ok {
			index[name] = len(merged)
			merged = append(merged, Record{Name: name, Total: r.Total, Link: r.Link, Avatar: r.Avatar})
			continue
		}
		m := &merged[i]
		m.Total += r.Total
		if m.Link == "" {
			m.Link = r.Link
		}
		if m.Avatar == "" {
			m.Avatar = r.Avatar
		}
	}

	SortByTotal(merged)
	return merged
}

// SortByTotal sorts records by descending total. The sort is stable.
func SortByTotal(rs Records) {
	slices.SortStableFunc(rs, func(a, b Record) int {
		return cmp.Compare(b.Total, a.Total)
	})
}
