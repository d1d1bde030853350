package sink

import (
	"encoding/json"

	"github.com/tilefield/tilefield/pkg/tiles"
)

type jsonOutput struct {
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	CountX   int         `json:"count_x"`
	CountY   int         `json:"count_y"`
	CenterX  int         `json:"center_x"`
	CenterY  int         `json:"center_y"`
	Seeds    tiles.Seeds `json:"seeds"`
	Icons    int         `json:"icons"`
	Dropped  int         `json:"dropped"`
	Excluded int         `json:"excluded"`
	Cells    []jsonCell  `json:"cells"`
}

type jsonCell struct {
	Col         int     `json:"col"`
	Row         int     `json:"row"`
	LocX        int     `json:"loc_x"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Dist        float64 `json:"dist"`
	Scale       float64 `json:"scale"`
	OverScale   float64 `json:"over_scale"`
	ContraScale float64 `json:"contra_scale"`
	Alpha       float64 `json:"alpha"`
	Opacity     float64 `json:"opacity"`
	Delay       float64 `json:"delay"`
	Color       string  `json:"color"`
	Icon        *int    `json:"icon,omitempty"`
	Group       string  `json:"group,omitempty"`
}

// RenderJSON dumps f as indented JSON, cells in emission order.
func RenderJSON(f *tiles.Field) ([]byte, error) {
	cx, cy := f.Config.Center()
	out := jsonOutput{
		Width:    f.Width,
		Height:   f.Height,
		CountX:   f.Config.CountX,
		CountY:   f.Config.CountY,
		CenterX:  cx,
		CenterY:  cy,
		Seeds:    f.Config.Seeds,
		Icons:    len(f.Config.Icons),
		Dropped:  f.Dropped,
		Excluded: f.Excluded,
		Cells:    make([]jsonCell, 0, len(f.Cells)),
	}

	for _, c := range f.Ordered() {
		jc := jsonCell{
			Col:         c.Col,
			Row:         c.Row,
			LocX:        c.LocX,
			X:           c.PX,
			Y:           c.PY,
			Dist:        c.Dist,
			Scale:       c.Scale,
			OverScale:   c.OverScale,
			ContraScale: c.ContraScale,
			Alpha:       c.Alpha,
			Opacity:     c.Opacity,
			Delay:       c.Delay,
			Color:       c.Color,
		}
		if c.HasIcon() {
			icon := c.Icon
			jc.Icon = &icon
			jc.Group = c.Group.String()
		}
		out.Cells = append(out.Cells, jc)
	}

	return json.MarshalIndent(out, "", "  ")
}
