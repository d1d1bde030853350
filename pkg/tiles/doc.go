// Package tiles computes the decorative tile field drawn behind the landing
// page.
//
// The field is a grid of rounded squares. Each cell is either dropped or
// gets a color, an opacity, a scale, an animation delay and optionally an
// icon. Everything is derived from a [Config] and five independent seeds, so
// the same configuration always yields the same field.
//
// # Pipeline
//
// [Layout] walks the grid row by row, left to right:
//
//  1. The missing stream drops roughly 30% of cells.
//  2. The opacity stream sets the base alpha, shaped by OpacityMult and
//     OpacityPower and mapped into [MinOpacity, MaxOpacity].
//  3. The color stream picks an entry of the weighted palette.
//  4. Distance from the center cell drives scale and animation delay; the
//     horizontal distance fades the rendered opacity out toward the sides.
//  5. Sufficiently opaque cells take an icon, from a center or a side
//     [random.Cycler] depending on their column.
//
// Cells inside any exclusion [Rect] are then removed by [Exclude]. The
// resulting [Field] is turned into markup by package sink.
//
// # Configuration
//
// Start from [DefaultConfig] or use [Builder] to override individual fields:
//
//	cfg, err := tiles.NewBuilder().
//	    Grid(31, 10).
//	    Seeds(tiles.Seeds{Missing: 3, Opacity: 5, Color: 7, CenterIcons: 11, SideIcons: 13}).
//	    Exclude(tiles.Rect{X: -4, Y: 2, X2: 4, Y2: 5}).
//	    Build()
//
// A malformed exclusion rectangle is a configuration error with code
// INVALID_RECT; nothing is generated.
package tiles
