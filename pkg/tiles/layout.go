package tiles

import (
	"math"

	"github.com/tilefield/tilefield/pkg/random"
)

// Layout constants.
const (
	// MissingThreshold drops a cell when the missing draw is at or below it.
	MissingThreshold = 0.3
	// IconAlphaThreshold is the minimum base opacity for a cell to take an icon.
	IconAlphaThreshold = 0.3
	// CenterColumns is the horizontal reach of the center icon cycler.
	CenterColumns = 7
	// FadeColumns is the horizontal distance at which rendered opacity hits 0.
	FadeColumns = 14.0
	// ScaleFalloff is the distance at which the unclamped scale reaches 0.
	ScaleFalloff = 16.0
	// OverScaleFactor is the peak scale of the grow phase relative to Scale.
	OverScaleFactor = 1.2
)

// Layout computes the tile field for cfg.
//
// cfg is validated first; on error nothing is computed. The returned Field
// owns a copy of cfg.
func Layout(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	var (
		missing = random.New(cfg.Seeds.Missing)
		opacity = random.New(cfg.Seeds.Opacity)
		colors  = random.New(cfg.Seeds.Color)
		palette = cfg.flatPalette()
		pool    = iconIndexes(len(cfg.Icons))
		center  = random.NewCycler(pool, random.New(cfg.Seeds.CenterIcons))
		side    = random.NewCycler(pool, random.New(cfg.Seeds.SideIcons))
	)

	cx, cy := cfg.Center()
	step := cfg.Step()

	f := &Field{
		Config: cfg,
		Cells:  make(map[Coord]Cell, cfg.CountX*cfg.CountY),
		Width:  cfg.Width(),
		Height: cfg.Height(),
	}

	for row := 0; row < cfg.CountY; row++ {
		for col := 0; col < cfg.CountX; col++ {
			locX := col - cx
			if missing.Float64() <= MissingThreshold {
				f.Dropped++
				continue
			}

			a := baseAlpha(opacity.Float64(), cfg)
			color := palette[int(colors.Float64()*float64(len(palette)))]

			distX := abs(locX)
			dist := math.Hypot(float64(distX), float64(abs(row-cy)))
			scale := clamp((ScaleFalloff-dist)/ScaleFalloff, cfg.MinTileScale, cfg.MaxTileScale)
			overScale := scale * OverScaleFactor

			cell := Cell{
				Coord:       Coord{Col: col, Row: row},
				LocX:        locX,
				PX:          float64(col)*step + cfg.TileGap/2,
				PY:          float64(row)*step + cfg.TileGap/2,
				Dist:        dist,
				Scale:       scale,
				OverScale:   overScale,
				ContraScale: scale / overScale,
				Alpha:       a,
				Opacity:     a * max(0, 1-float64(distX)/FadeColumns),
				Delay:       3*math.Pow(dist/3, 1.5)/10 + (1-a)*(1-a)*1.5,
				Color:       color,
				Icon:        -1,
			}

			if a >= IconAlphaThreshold && len(pool) > 0 {
				cyc, group := center, IconCenter
				if distX > CenterColumns {
					cyc, group = side, IconSide
				}
				cell.Icon, _ = cyc.Next()
				cell.Group = group
			}

			f.Cells[cell.Coord] = cell
		}
	}

	n, err := Exclude(f.Cells, cfg.Exclusions)
	if err != nil {
		return nil, err
	}
	f.Excluded = n
	return f, nil
}

// baseAlpha shapes a raw draw into the cell's base opacity: scaled, raised to
// OpacityPower, clamped to [0, 1], mapped into the opacity range and rounded
// to one decimal. The rounded value is clamped back into the range.
func baseAlpha(r float64, cfg Config) float64 {
	shaped := clamp(math.Pow(r*cfg.OpacityMult, cfg.OpacityPower), 0, 1)
	a := cfg.MinOpacity + shaped*(cfg.MaxOpacity-cfg.MinOpacity)
	return clamp(math.Round(a*10)/10, cfg.MinOpacity, cfg.MaxOpacity)
}

func iconIndexes(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
