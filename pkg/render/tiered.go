package render

import (
	"bytes"
	"fmt"

	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
	"github.com/schneegans/sponsorwall/pkg/tier"
)

// TierStyle is the presentation of one tier section.
type TierStyle struct {
	Title         string
	AvatarSize    int
	Columns       int
	MaxNameLength int
}

// TierStyles maps tier ids to their presentation.
type TierStyles map[string]TierStyle

// DefaultTierStyles matches [tier.Default]. Higher tiers get bigger avatars
// and fewer columns.
var DefaultTierStyles = TierStyles{
	"tier0":  {Title: "👍 Entry Level", AvatarSize: 130, Columns: 6, MaxNameLength: 14},
	"tier1":  {Title: "Coffee Level ☕", AvatarSize: 130, Columns: 6, MaxNameLength: 14},
	"tier2":  {Title: "🍕 Pizza Level", AvatarSize: 130, Columns: 6, MaxNameLength: 14},
	"tier3":  {Title: "🥉 Bronze Level 🥉", AvatarSize: 160, Columns: 5, MaxNameLength: 16},
	"tier4":  {Title: "🥈 Silver Level 🥈", AvatarSize: 160, Columns: 5, MaxNameLength: 16},
	"tier5":  {Title: "🥇 Gold Level 🥇", AvatarSize: 160, Columns: 5, MaxNameLength: 16},
	"tier6":  {Title: "❤️ Awesome Supporters ❤️", AvatarSize: 190, Columns: 4, MaxNameLength: 18},
	"tier7":  {Title: "💖 Very Awesome Supporters 💖", AvatarSize: 190, Columns: 4, MaxNameLength: 18},
	"tier8":  {Title: "❤️‍🔥 Fiercely Awesome Supporters ❤️‍🔥", AvatarSize: 190, Columns: 4, MaxNameLength: 18},
	"tier9":  {Title: "✨ Unbelievably Awesome Supporters ✨", AvatarSize: 210, Columns: 3, MaxNameLength: 20},
	"tier10": {Title: "🌟 Truly Unbelievably Awesome Supporters 🌟", AvatarSize: 210, Columns: 3, MaxNameLength: 20},
	"tier11": {Title: "🚀 The Best 🚀", AvatarSize: 210, Columns: 3, MaxNameLength: 20},
}

// Validate reports tiers of table without a style.
func (s TierStyles) Validate(table tier.Table) error {
	for _, t := range table {
		if _, ok := s[t.ID]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "no style for tier %s", t.ID)
		}
	}
	return nil
}

// TierLayout holds the spacing shared by all tier sections.
type TierLayout struct {
	Width      float64
	GapX, GapY float64
	TierGap    float64 // space above each section heading
}

// DefaultTierLayout is the layout of the large documents.
var DefaultTierLayout = TierLayout{Width: DefaultWidth, GapX: 4, GapY: 10, TierGap: 120}

// WriteTiers appends one section per non-empty tier to buf, highest tier
// first, and returns the total height used.
func WriteTiers(buf *bytes.Buffer, sponsors sponsor.Records, table tier.Table, styles TierStyles, l TierLayout, avatar AvatarFunc) (float64, error) {
	groups, err := table.Partition(sponsors)
	if err != nil {
		return 0, err
	}

	var height float64
	for _, g := range groups {
		style, ok := styles[g.Tier.ID]
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidConfig, "no style for tier %s", g.Tier.ID)
		}

		height += l.TierGap
		fmt.Fprintf(buf, "<text class=\"heading\" x=\"%spx\" y=\"%spx\" text-anchor=\"middle\">%s</text>\n",
			num(l.Width/2), num(height-20), EscapeXML(style.Title))
		if g.Tier.Min > 0 {
			fmt.Fprintf(buf, "<text class=\"subheading\" x=\"%spx\" y=\"%spx\" text-anchor=\"middle\">$%s+</text>\n",
				num(l.Width/2), num(height), num(g.Tier.Min))
		}

		grid := Grid{
			Top:           height,
			Width:         l.Width,
			Columns:       style.Columns,
			AvatarSize:    style.AvatarSize,
			GapX:          l.GapX,
			GapY:          l.GapY,
			MaxNameLength: style.MaxNameLength,
		}
		if err := WriteGrid(buf, g.Sponsors, grid, avatar); err != nil {
			return 0, err
		}
		height += grid.Height(len(g.Sponsors))
	}
	return height + l.TierGap/2, nil
}
