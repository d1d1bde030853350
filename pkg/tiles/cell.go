package tiles

import (
	"cmp"
	"maps"
	"slices"
)

// Coord identifies a cell by column and row.
type Coord struct {
	Col, Row int
}

// compareCoords orders coordinates row-major, ascending.
func compareCoords(a, b Coord) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// IconGroup says which cycler, if any, supplied a cell's icon.
type IconGroup uint8

const (
	IconNone IconGroup = iota
	IconCenter
	IconSide
)

func (g IconGroup) String() string {
	switch g {
	case IconCenter:
		return "center"
	case IconSide:
		return "side"
	default:
		return "none"
	}
}

// Cell holds the computed attributes of one surviving grid cell.
type Cell struct {
	Coord
	LocX int // column relative to the center column

	PX, PY float64 // top-left corner of the tile in px

	Dist        float64 // euclidean distance to the center cell, in cells
	Scale       float64 // resting scale
	OverScale   float64 // peak scale of the grow phase
	ContraScale float64 // shrink-back ratio, Scale / OverScale
	Alpha       float64 // base opacity
	Opacity     float64 // rendered opacity after horizontal fade
	Delay       float64 // animation delay in seconds

	Color string
	Icon  int // index into Config.Icons, -1 when the cell has none
	Group IconGroup
}

// HasIcon reports whether the cell carries an icon.
func (c Cell) HasIcon() bool { return c.Icon >= 0 }

// Field is the result of a layout run.
type Field struct {
	Config Config
	Cells  map[Coord]Cell

	Width, Height float64

	Dropped  int // cells removed by the missing roll
	Excluded int // cells removed by exclusion rectangles
}

// Ordered returns the surviving cells in emission order (row-major, ascending).
func (f *Field) Ordered() []Cell {
	keys := slices.SortedFunc(maps.Keys(f.Cells), compareCoords)
	out := make([]Cell, len(keys))
	for i, k := range keys {
		out[i] = f.Cells[k]
	}
	return out
}

// IconMarkup returns the icon fragment of c, or "" when it has none.
func (f *Field) IconMarkup(c Cell) string {
	if !c.HasIcon() || c.Icon >= len(f.Config.Icons) {
		return ""
	}
	return f.Config.Icons[c.Icon]
}

// IconCount returns how many surviving cells carry an icon.
func (f *Field) IconCount() int {
	n := 0
	for _, c := range f.Cells {
		if c.HasIcon() {
			n++
		}
	}
	return n
}
