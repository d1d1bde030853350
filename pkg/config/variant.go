package config

import (
	"github.com/tilefield/tilefield/pkg/tiles"
)

// Variant is one named background. Nil fields keep the base configuration's
// value.
type Variant struct {
	Name    string   `json:"name" toml:"name" yaml:"name"`
	Formats []string `json:"formats,omitempty" toml:"formats,omitempty" yaml:"formats,omitempty"`

	// Icons overrides the file-level icon directory. An empty string disables
	// icons for this variant.
	Icons *string `json:"icons,omitempty" toml:"icons,omitempty" yaml:"icons,omitempty"`

	CountX *int `json:"count_x,omitempty" toml:"count_x,omitempty" yaml:"count_x,omitempty"`
	CountY *int `json:"count_y,omitempty" toml:"count_y,omitempty" yaml:"count_y,omitempty"`

	TileSize   *float64 `json:"tile_size,omitempty" toml:"tile_size,omitempty" yaml:"tile_size,omitempty"`
	TileGap    *float64 `json:"tile_gap,omitempty" toml:"tile_gap,omitempty" yaml:"tile_gap,omitempty"`
	TileRadius *float64 `json:"tile_radius,omitempty" toml:"tile_radius,omitempty" yaml:"tile_radius,omitempty"`
	IconSize   *float64 `json:"icon_size,omitempty" toml:"icon_size,omitempty" yaml:"icon_size,omitempty"`

	MinOpacity   *float64 `json:"min_opacity,omitempty" toml:"min_opacity,omitempty" yaml:"min_opacity,omitempty"`
	MaxOpacity   *float64 `json:"max_opacity,omitempty" toml:"max_opacity,omitempty" yaml:"max_opacity,omitempty"`
	OpacityMult  *float64 `json:"opacity_mult,omitempty" toml:"opacity_mult,omitempty" yaml:"opacity_mult,omitempty"`
	OpacityPower *float64 `json:"opacity_power,omitempty" toml:"opacity_power,omitempty" yaml:"opacity_power,omitempty"`

	MinTileScale *float64 `json:"min_tile_scale,omitempty" toml:"min_tile_scale,omitempty" yaml:"min_tile_scale,omitempty"`
	MaxTileScale *float64 `json:"max_tile_scale,omitempty" toml:"max_tile_scale,omitempty" yaml:"max_tile_scale,omitempty"`

	CenterX *int `json:"center_x,omitempty" toml:"center_x,omitempty" yaml:"center_x,omitempty"`
	CenterY *int `json:"center_y,omitempty" toml:"center_y,omitempty" yaml:"center_y,omitempty"`

	Palette    []tiles.PaletteEntry `json:"palette,omitempty" toml:"palette,omitempty" yaml:"palette,omitempty"`
	Exclusions []tiles.Rect         `json:"exclusions,omitempty" toml:"exclusions,omitempty" yaml:"exclusions,omitempty"`
	Seeds      *SeedOverrides       `json:"seeds,omitempty" toml:"seeds,omitempty" yaml:"seeds,omitempty"`
}

// SeedOverrides replaces individual stream seeds.
type SeedOverrides struct {
	Missing     *int32 `json:"missing,omitempty" toml:"missing,omitempty" yaml:"missing,omitempty"`
	Opacity     *int32 `json:"opacity,omitempty" toml:"opacity,omitempty" yaml:"opacity,omitempty"`
	Color       *int32 `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	CenterIcons *int32 `json:"center_icons,omitempty" toml:"center_icons,omitempty" yaml:"center_icons,omitempty"`
	SideIcons   *int32 `json:"side_icons,omitempty" toml:"side_icons,omitempty" yaml:"side_icons,omitempty"`
}

// Config resolves v on top of base with the given icon pool and validates the
// result.
func (v Variant) Config(base tiles.Config, icons []string) (tiles.Config, error) {
	b := tiles.From(base).Apply(v.apply).Icons(icons...).Exclude(v.Exclusions...)
	if len(v.Palette) > 0 {
		b.Palette(v.Palette...)
	}
	return b.Build()
}

func (v Variant) apply(c *tiles.Config) {
	set(&c.CountX, v.CountX)
	set(&c.CountY, v.CountY)
	set(&c.TileSize, v.TileSize)
	set(&c.TileGap, v.TileGap)
	set(&c.TileRadius, v.TileRadius)
	set(&c.IconSize, v.IconSize)
	set(&c.MinOpacity, v.MinOpacity)
	set(&c.MaxOpacity, v.MaxOpacity)
	set(&c.OpacityMult, v.OpacityMult)
	set(&c.OpacityPower, v.OpacityPower)
	set(&c.MinTileScale, v.MinTileScale)
	set(&c.MaxTileScale, v.MaxTileScale)
	if v.CenterX != nil {
		c.CenterX = ptr(*v.CenterX)
	}
	if v.CenterY != nil {
		c.CenterY = ptr(*v.CenterY)
	}
	if s := v.Seeds; s != nil {
		set(&c.Seeds.Missing, s.Missing)
		set(&c.Seeds.Opacity, s.Opacity)
		set(&c.Seeds.Color, s.Color)
		set(&c.Seeds.CenterIcons, s.CenterIcons)
		set(&c.Seeds.SideIcons, s.SideIcons)
	}
}

// FromConfig returns a variant that sets every tile parameter of cfg
// explicitly. Icons are not carried over.
func FromConfig(name string, cfg tiles.Config) Variant {
	cx, cy := cfg.Center()
	return Variant{
		Name:         name,
		CountX:       ptr(cfg.CountX),
		CountY:       ptr(cfg.CountY),
		TileSize:     ptr(cfg.TileSize),
		TileGap:      ptr(cfg.TileGap),
		TileRadius:   ptr(cfg.TileRadius),
		IconSize:     ptr(cfg.IconSize),
		MinOpacity:   ptr(cfg.MinOpacity),
		MaxOpacity:   ptr(cfg.MaxOpacity),
		OpacityMult:  ptr(cfg.OpacityMult),
		OpacityPower: ptr(cfg.OpacityPower),
		MinTileScale: ptr(cfg.MinTileScale),
		MaxTileScale: ptr(cfg.MaxTileScale),
		CenterX:      ptr(cx),
		CenterY:      ptr(cy),
		Palette:      cfg.Palette,
		Exclusions:   cfg.Exclusions,
		Seeds: &SeedOverrides{
			Missing:     ptr(cfg.Seeds.Missing),
			Opacity:     ptr(cfg.Seeds.Opacity),
			Color:       ptr(cfg.Seeds.Color),
			CenterIcons: ptr(cfg.Seeds.CenterIcons),
			SideIcons:   ptr(cfg.Seeds.SideIcons),
		},
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func ptr[T any](v T) *T { return &v }
