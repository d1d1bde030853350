// Package pkg provides the core libraries for Tilefield background generation.
//
// # Overview
//
// Tilefield lays out a grid of rounded tiles, some of them carrying icons,
// and emits the result as a static SVG. Every random decision comes from a
// seeded stream, so a configuration always produces the same bytes.
//
// The typical data flow:
//
//	Site file (TOML/YAML/JSON) + icon directory
//	         ↓
//	    [config] package (variants → tiles.Config)
//	         ↓
//	    [tiles] package (layout + exclusion)
//	         ↓
//	    [tiles/sink] package (SVG, JSON, HTML)
//
// # Quick Start
//
//	cfg, err := tiles.NewBuilder().
//	    Grid(41, 14).
//	    Icons(`<path d="M0 0h24v24H0z"/>`).
//	    Exclude(tiles.Rect{X: -6, Y: 4, X2: 6, Y2: 9}).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	svg, err := sink.Generate(cfg)
//
// # Main Packages
//
// [random] - Lehmer generator, non-mutating Fisher–Yates shuffle and the
// reshuffling cycler that hands out icons.
//
// [tiles] - Configuration, builder, layout engine and exclusion filter.
//
// [tiles/sink] - Output formats. SVG is the primary artifact; JSON exposes the
// computed cells and HTML wraps the SVG for embedding.
//
// [icons] - Loads and normalizes SVG icon files from a directory.
//
// [config] - Site files with named variants.
//
// [pipeline] - Resolves variants into jobs and runs them concurrently with
// caching. Used by the CLI and the HTTP server.
//
// [cache] - Artifact cache with file, Redis and null backends.
//
// [observability] - Hooks for layout, render, cache and HTTP events, with a
// Prometheus implementation.
//
// [errors] - Coded errors shared by all packages.
//
// [random]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/random
// [tiles]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/tiles
// [tiles/sink]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/tiles/sink
// [icons]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/icons
// [config]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/cache
// [observability]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/observability
// [errors]: https://pkg.go.dev/github.com/tilefield/tilefield/pkg/errors
package pkg
