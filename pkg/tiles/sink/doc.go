// Package sink serializes a [tiles.Field] into output formats.
//
// # SVG
//
// [RenderSVG] produces the composite background document: one <svg> sized
// CountX*(TileSize+TileGap) by CountY*(TileSize+TileGap), with one group per
// surviving cell in row-major order. Per-cell delay, scale and opacity are
// exposed as CSS custom properties so external styling can drive the
// grow-then-shrink animation. [WithAnimation] embeds a default stylesheet
// that does exactly that.
//
// Icon fragments are inserted verbatim; they are trusted build inputs.
//
// # JSON
//
// [RenderJSON] dumps every cell with its computed attributes. It is meant for
// debugging and for visual-regression diffs.
//
// # HTML
//
// [RenderHTML] wraps an SVG document in an embed snippet whose container is
// sized to the field, ready for the page's visibility observer.
//
// # Usage
//
//	svg, err := sink.Generate(cfg, sink.WithAnimation())
package sink
