package tiles

import (
	"slices"

	"github.com/tilefield/tilefield/pkg/errors"
)

// Seeds holds one seed per randomness stream. Every stream gets its own
// random.Source so the streams never influence each other.
type Seeds struct {
	Missing     int32 `json:"missing" toml:"missing" yaml:"missing"`
	Opacity     int32 `json:"opacity" toml:"opacity" yaml:"opacity"`
	Color       int32 `json:"color" toml:"color" yaml:"color"`
	CenterIcons int32 `json:"center_icons" toml:"center_icons" yaml:"center_icons"`
	SideIcons   int32 `json:"side_icons" toml:"side_icons" yaml:"side_icons"`
}

// PaletteEntry is a color and how many times it is repeated in the drawing
// pool. A weight of 3 makes the color three times as likely as a weight of 1.
type PaletteEntry struct {
	Color  string `json:"color" toml:"color" yaml:"color"`
	Weight int    `json:"weight" toml:"weight" yaml:"weight"`
}

// Rect is an inclusive exclusion region in cell coordinates. X and X2 are
// relative to the center column, Y and Y2 are row indices.
type Rect struct {
	X  int `json:"x" toml:"x" yaml:"x"`
	Y  int `json:"y" toml:"y" yaml:"y"`
	X2 int `json:"x2" toml:"x2" yaml:"x2"`
	Y2 int `json:"y2" toml:"y2" yaml:"y2"`
}

// Contains reports whether the cell at (locX, row) lies inside r.
func (r Rect) Contains(locX, row int) bool {
	return locX >= r.X && locX <= r.X2 && row >= r.Y && row <= r.Y2
}

// Validate returns an INVALID_RECT error if r is inverted on either axis.
func (r Rect) Validate() error {
	if r.X > r.X2 {
		return errors.New(errors.ErrCodeInvalidRect, "x %d > x2 %d", r.X, r.X2)
	}
	if r.Y > r.Y2 {
		return errors.New(errors.ErrCodeInvalidRect, "y %d > y2 %d", r.Y, r.Y2)
	}
	return nil
}

// Config describes one background variant.
type Config struct {
	CountX int // columns
	CountY int // rows

	TileSize   float64 // side of a tile in px
	TileGap    float64 // spacing between tiles in px
	TileRadius float64 // corner radius in px
	IconSize   float64 // icon box size in px

	MinOpacity   float64
	MaxOpacity   float64
	OpacityMult  float64 // scales the raw opacity draw before shaping
	OpacityPower float64 // exponent applied after scaling

	MinTileScale float64
	MaxTileScale float64

	// CenterX and CenterY select the center cell. Nil means the grid midpoint.
	CenterX *int
	CenterY *int

	Seeds      Seeds
	Palette    []PaletteEntry
	Icons      []string // opaque SVG fragments
	Exclusions []Rect
}

// DefaultConfig returns the documented defaults. Icons and exclusions are
// empty.
func DefaultConfig() Config {
	return Config{
		CountX:       41,
		CountY:       14,
		TileSize:     56,
		TileGap:      8,
		TileRadius:   14,
		IconSize:     28,
		MinOpacity:   0.1,
		MaxOpacity:   1,
		OpacityMult:  1,
		OpacityPower: 1.5,
		MinTileScale: 0.4,
		MaxTileScale: 1,
		Seeds: Seeds{
			Missing:     1,
			Opacity:     2,
			Color:       3,
			CenterIcons: 4,
			SideIcons:   5,
		},
		Palette: []PaletteEntry{
			{Color: "#f1f3f9", Weight: 3},
			{Color: "#e6eaf4", Weight: 2},
			{Color: "#dbe2f2", Weight: 1},
		},
	}
}

// Center returns the center cell, defaulting to the grid midpoint.
func (c Config) Center() (x, y int) {
	x, y = c.CountX/2, c.CountY/2
	if c.CenterX != nil {
		x = *c.CenterX
	}
	if c.CenterY != nil {
		y = *c.CenterY
	}
	return x, y
}

// Step is the distance between the origins of two neighboring tiles.
func (c Config) Step() float64 { return c.TileSize + c.TileGap }

// Width is the pixel width of the whole field.
func (c Config) Width() float64 { return float64(c.CountX) * c.Step() }

// Height is the pixel height of the whole field.
func (c Config) Height() float64 { return float64(c.CountY) * c.Step() }

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Palette = slices.Clone(c.Palette)
	out.Icons = slices.Clone(c.Icons)
	out.Exclusions = slices.Clone(c.Exclusions)
	if c.CenterX != nil {
		x := *c.CenterX
		out.CenterX = &x
	}
	if c.CenterY != nil {
		y := *c.CenterY
		out.CenterY = &y
	}
	return out
}

// Validate rejects only values the layout math cannot work with. Malformed
// exclusion rectangles yield INVALID_RECT, every other problem INVALID_CONFIG.
// Oversized radii, icons and opacities are accepted.
func (c Config) Validate() error {
	for i, r := range c.Exclusions {
		if err := r.Validate(); err != nil {
			return errors.New(errors.ErrCodeInvalidRect, "exclusion %d: %s", i, errors.UserMessage(err))
		}
	}

	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	switch {
	case c.CountX <= 0 || c.CountY <= 0:
		return invalid("grid must be at least 1x1, got %dx%d", c.CountX, c.CountY)
	case c.TileSize <= 0:
		return invalid("tile size must be positive, got %g", c.TileSize)
	case c.TileGap < 0:
		return invalid("tile gap cannot be negative, got %g", c.TileGap)
	case c.TileRadius < 0:
		return invalid("tile radius cannot be negative, got %g", c.TileRadius)
	case c.IconSize < 0:
		return invalid("icon size cannot be negative, got %g", c.IconSize)
	case c.MinOpacity < 0 || c.MinOpacity > c.MaxOpacity:
		return invalid("opacity range must satisfy 0 <= min <= max, got [%g, %g]", c.MinOpacity, c.MaxOpacity)
	case c.OpacityMult <= 0:
		return invalid("opacity multiplier must be positive, got %g", c.OpacityMult)
	case c.OpacityPower <= 0:
		return invalid("opacity power must be positive, got %g", c.OpacityPower)
	case c.MinTileScale <= 0 || c.MinTileScale > c.MaxTileScale:
		return invalid("tile scale range must satisfy 0 < min <= max, got [%g, %g]", c.MinTileScale, c.MaxTileScale)
	case len(c.Palette) == 0:
		return invalid("palette cannot be empty")
	}

	cx, cy := c.Center()
	if cx < 0 || cx >= c.CountX || cy < 0 || cy >= c.CountY {
		return invalid("center (%d, %d) outside %dx%d grid", cx, cy, c.CountX, c.CountY)
	}

	for i, p := range c.Palette {
		if p.Color == "" {
			return invalid("palette entry %d has no color", i)
		}
		if p.Weight < 1 {
			return invalid("palette entry %d (%s) has weight %d, want >= 1", i, p.Color, p.Weight)
		}
	}
	return nil
}

// flatPalette expands the weighted palette into its drawing pool.
func (c Config) flatPalette() []string {
	var pool []string
	for _, p := range c.Palette {
		for range p.Weight {
			pool = append(pool, p.Color)
		}
	}
	return pool
}
