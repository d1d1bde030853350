package tiles

import "slices"

// Builder assembles a Config from [DefaultConfig] plus explicit overrides.
// Only the setters that are called change anything; Build validates once and
// returns an independent copy.
type Builder struct {
	cfg Config
}

// NewBuilder starts from DefaultConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// From starts from an existing configuration instead of the defaults.
func From(cfg Config) *Builder {
	return &Builder{cfg: cfg.Clone()}
}

func (b *Builder) Grid(countX, countY int) *Builder {
	b.cfg.CountX, b.cfg.CountY = countX, countY
	return b
}

func (b *Builder) Tile(size, gap, radius float64) *Builder {
	b.cfg.TileSize, b.cfg.TileGap, b.cfg.TileRadius = size, gap, radius
	return b
}

func (b *Builder) IconSize(size float64) *Builder {
	b.cfg.IconSize = size
	return b
}

func (b *Builder) Opacity(minOpacity, maxOpacity float64) *Builder {
	b.cfg.MinOpacity, b.cfg.MaxOpacity = minOpacity, maxOpacity
	return b
}

// OpacityShape sets the multiplier and exponent applied to the raw opacity draw.
func (b *Builder) OpacityShape(mult, power float64) *Builder {
	b.cfg.OpacityMult, b.cfg.OpacityPower = mult, power
	return b
}

func (b *Builder) Scale(minScale, maxScale float64) *Builder {
	b.cfg.MinTileScale, b.cfg.MaxTileScale = minScale, maxScale
	return b
}

// Center pins the center cell instead of using the grid midpoint.
func (b *Builder) Center(x, y int) *Builder {
	b.cfg.CenterX, b.cfg.CenterY = &x, &y
	return b
}

func (b *Builder) Seeds(s Seeds) *Builder {
	b.cfg.Seeds = s
	return b
}

// Palette replaces the palette.
func (b *Builder) Palette(entries ...PaletteEntry) *Builder {
	b.cfg.Palette = slices.Clone(entries)
	return b
}

// Icons replaces the icon pool.
func (b *Builder) Icons(fragments ...string) *Builder {
	b.cfg.Icons = slices.Clone(fragments)
	return b
}

// Exclude appends exclusion rectangles.
func (b *Builder) Exclude(rects ...Rect) *Builder {
	b.cfg.Exclusions = append(b.cfg.Exclusions, rects...)
	return b
}

// Apply runs fn against the configuration being built, for overrides that
// have no dedicated setter.
func (b *Builder) Apply(fn func(*Config)) *Builder {
	fn(&b.cfg)
	return b
}

// Build validates and returns the configuration.
func (b *Builder) Build() (Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return Config{}, err
	}
	return b.cfg.Clone(), nil
}
