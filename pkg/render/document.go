package render

import (
	"bytes"
	"fmt"

	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
	"github.com/schneegans/sponsorwall/pkg/tier"
)

// DefaultWidth is the width of every document.
const DefaultWidth = 830

// Theme selects the label color.
type Theme int

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

func (t Theme) fill() string {
	if t == Dark {
		return "white"
	}
	return "black"
}

// Kind is the document layout.
type Kind int

const (
	Large Kind = iota // tiered sections with headings
	Small             // one uniform grid with names
	Tiny              // one dense grid, avatars only
)

func (k Kind) String() string {
	switch k {
	case Large:
		return "big"
	case Small:
		return "small"
	default:
		return "tiny"
	}
}

// Grids of the non-tiered documents. Top is always 0.
var (
	SmallGrid = Grid{Width: DefaultWidth, Columns: 7, AvatarSize: 115, GapX: 4, GapY: 10, MaxNameLength: 16}
	TinyGrid  = Grid{Width: DefaultWidth, Columns: 16, AvatarSize: 48, GapX: 4, GapY: 0}
)

const largeCSS = `<style>
text {
  font-family: sans-serif;
  font-weight: bold;
  font-size: 11pt;
  fill: %s
}
text.heading {
  font-weight: 300;
  font-size: 20pt;
}
text.subheading {
  font-weight: normal;
  font-size: 11pt;
  fill: gray;
}
a:hover text {
  text-decoration: underline;
}
</style>
`

const smallCSS = `<style>
text {
  font-family: sans-serif;
  font-weight: bold;
  font-size: 9pt;
  fill: %s
}
a:hover text {
  text-decoration: underline;
}
</style>
`

// Variant is one output file.
type Variant struct {
	File  string
	Kind  Kind
	Theme Theme
}

// Variants lists the documents written on every run.
var Variants = []Variant{
	{File: "sponsors_light_big.svg", Kind: Large, Theme: Light},
	{File: "sponsors_dark_big.svg", Kind: Large, Theme: Dark},
	{File: "sponsors_light_small.svg", Kind: Small, Theme: Light},
	{File: "sponsors_dark_small.svg", Kind: Small, Theme: Dark},
	{File: "sponsors_tiny.svg", Kind: Tiny, Theme: Light},
}

// DocOption configures document rendering.
type DocOption func(*docConfig)

type docConfig struct {
	table  tier.Table
	styles TierStyles
	layout TierLayout
}

// WithTiers replaces the tier table and styles of large documents.
func WithTiers(table tier.Table, styles TierStyles) DocOption {
	return func(c *docConfig) { c.table, c.styles = table, styles }
}

func newDocConfig(opts ...DocOption) docConfig {
	c := docConfig{table: tier.Default, styles: DefaultTierStyles, layout: DefaultTierLayout}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Render produces the SVG document of v.
func (v Variant) Render(sponsors sponsor.Records, avatar AvatarFunc, opts ...DocOption) ([]byte, error) {
	switch v.Kind {
	case Large:
		return RenderLarge(sponsors, v.Theme, avatar, opts...)
	case Small:
		return RenderSmall(sponsors, v.Theme, avatar)
	case Tiny:
		return RenderTiny(sponsors, avatar)
	}
	return nil, errors.New(errors.ErrCodeInternal, "unknown document kind %d", v.Kind)
}

// RenderLarge renders the tiered document.
func RenderLarge(sponsors sponsor.Records, theme Theme, avatar AvatarFunc, opts ...DocOption) ([]byte, error) {
	c := newDocConfig(opts...)

	var body bytes.Buffer
	height, err := WriteTiers(&body, sponsors, c.table, c.styles, c.layout, avatar)
	if err != nil {
		return nil, err
	}
	return document(c.layout.Width, height, fmt.Sprintf(largeCSS, theme.fill()), body.Bytes()), nil
}

// RenderSmall renders all sponsors in one grid with 115px avatars and names.
func RenderSmall(sponsors sponsor.Records, theme Theme, avatar AvatarFunc) ([]byte, error) {
	return renderGrid(sponsors, SmallGrid, fmt.Sprintf(smallCSS, theme.fill()), avatar)
}

// RenderTiny renders all sponsors as 48px avatars without names or style.
func RenderTiny(sponsors sponsor.Records, avatar AvatarFunc) ([]byte, error) {
	return renderGrid(sponsors, TinyGrid, "", avatar)
}

func renderGrid(sponsors sponsor.Records, g Grid, style string, avatar AvatarFunc) ([]byte, error) {
	var body bytes.Buffer
	if err := WriteGrid(&body, sponsors, g, avatar); err != nil {
		return nil, err
	}
	return document(g.Width, g.Height(len(sponsors)), style, body.Bytes()), nil
}

func document(width, height float64, style string, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%spx\" height=\"%spx\">\n", num(width), num(height))
	buf.WriteString(style)
	buf.Write(body)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
