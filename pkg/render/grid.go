package render

import (
	"bytes"
	"fmt"

	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// AvatarFunc returns the base64 PNG payload for rec at size×size pixels.
type AvatarFunc func(rec sponsor.Record, size int) (string, error)

// Grid places square avatars in rows of Columns, centering every row
// (including a short last row) horizontally within Width.
type Grid struct {
	Top           float64 // y of the first row
	Width         float64
	Columns       int
	AvatarSize    int
	GapX, GapY    float64
	MaxNameLength int // 0 disables name labels
}

// Cell is the position of one avatar.
type Cell struct {
	X, Y, Width, Height float64
}

// Validate checks that the grid can place at least one avatar.
func (g Grid) Validate() error {
	if g.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "grid needs at least one column, got %d", g.Columns)
	}
	if g.AvatarSize < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "avatar size must be positive, got %d", g.AvatarSize)
	}
	return nil
}

// Rows returns the number of rows n avatars occupy.
func (g Grid) Rows(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + g.Columns - 1) / g.Columns
}

// Height returns the vertical space taken by n avatars, including one GapY
// per row.
func (g Grid) Height(n int) float64 {
	return float64(g.Rows(n)) * (float64(g.AvatarSize) + g.GapY)
}

// Cells computes the positions of n avatars.
func (g Grid) Cells(n int) []Cell {
	size := float64(g.AvatarSize)
	cells := make([]Cell, n)
	for i := range cells {
		row := i / g.Columns
		inRow := float64(min(n-row*g.Columns, g.Columns))
		pad := (g.Width - (inRow*size + (inRow-1)*g.GapX)) / 2
		cells[i] = Cell{
			X:      float64(i%g.Columns)*(size+g.GapX) + pad,
			Y:      float64(row)*(size+g.GapY) + g.Top,
			Width:  size,
			Height: size,
		}
	}
	return cells
}

// WriteGrid appends the SVG elements of all sponsors to buf. It does not
// write the surrounding <svg> element.
func WriteGrid(buf *bytes.Buffer, sponsors sponsor.Records, g Grid, avatar AvatarFunc) error {
	if err := g.Validate(); err != nil {
		return err
	}
	for i, c := range g.Cells(len(sponsors)) {
		s := sponsors[i]
		err := wrapLink(buf, s.Link, func() error {
			data, err := avatar(s, g.AvatarSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(buf, "<image x=\"%spx\" y=\"%spx\" width=\"%dpx\" height=\"%dpx\" href=\"data:image/png;base64,%s\" />\n",
				num(c.X), num(c.Y), g.AvatarSize, g.AvatarSize, data)

			if g.MaxNameLength > 0 {
				fmt.Fprintf(buf, "<text x=\"%spx\" y=\"%spx\" text-anchor=\"middle\">%s</text>\n",
					num(c.X+c.Width/2), num(c.Y+c.Height+5), EscapeXML(Ellipsize(s.Name, g.MaxNameLength)))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
