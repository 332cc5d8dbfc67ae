// Package render lays out sponsor avatars and writes the SVG documents.
//
// # Grid
//
// [Grid] places avatars row by row. Every row, the last one included, is
// centered horizontally, so a short last row gets a wider margin:
//
//	g := render.Grid{Width: 830, Columns: 4, AvatarSize: 115, GapX: 4, GapY: 10}
//	cells := g.Cells(10) // cells[8].X == 298: the two-avatar last row is centered
//
// Each avatar becomes an <image> element with an inline base64 PNG, followed
// by a centered <text> label when names are enabled and wrapped in an <a>
// element when the sponsor has a link.
//
// # Tiers
//
// [WriteTiers] renders one section per non-empty tier, highest first, each
// with a heading, a "$MIN+" subheading and a grid sized by the tier's
// [TierStyle].
//
// # Documents
//
// Five [Variants] are produced: large (tiered) and small documents in light
// and dark themes, plus a tiny avatar-only strip.
//
//	svg, err := render.RenderLarge(sponsors, render.Dark, avatarFunc)
package render
