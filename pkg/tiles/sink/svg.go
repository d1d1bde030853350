package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/tilefield/tilefield/pkg/tiles"
)

// Timing of the default animation, in seconds.
const (
	growDuration   = 0.5
	shrinkDuration = 0.35
)

const animationCSS = `
    .%[1]s-body, .%[1]s-inner { transform-box: fill-box; transform-origin: center; }
    .%[1]s-body { transform: scale(0); animation: %[1]s-grow %[2]ss ease-out var(--%[1]s-delay) forwards; }
    .%[1]s-inner { animation: %[1]s-shrink %[3]ss ease-in-out calc(var(--%[1]s-delay) + %[2]ss) both; }
    .%[1]s-paused .%[1]s-body, .%[1]s-paused .%[1]s-inner { animation-play-state: paused; }
    @keyframes %[1]s-grow { from { transform: scale(0); } to { transform: scale(var(--%[1]s-over-scale)); } }
    @keyframes %[1]s-shrink { from { transform: scale(1); } to { transform: scale(var(--%[1]s-contra-scale)); } }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	prefix    string
	id        string
	animation bool
}

// WithClassPrefix changes the class and custom-property prefix (default "tile").
func WithClassPrefix(p string) SVGOption { return func(r *svgRenderer) { r.prefix = p } }

// WithID sets the id attribute of the root element.
func WithID(id string) SVGOption { return func(r *svgRenderer) { r.id = id } }

// WithAnimation embeds the default grow-then-shrink stylesheet.
func WithAnimation() SVGOption { return func(r *svgRenderer) { r.animation = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{prefix: "tile"}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG serializes f into a single SVG document.
func RenderSVG(f *tiles.Field, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" class="%s-field"`,
		num(f.Width), num(f.Height), num(f.Width), num(f.Height), r.prefix)
	if r.id != "" {
		fmt.Fprintf(&buf, ` id="%s"`, html.EscapeString(r.id))
	}
	buf.WriteString(">\n")

	if r.animation {
		fmt.Fprintf(&buf, "  <style>"+animationCSS+"\n  </style>\n", r.prefix, num(growDuration), num(shrinkDuration))
	}

	for _, c := range f.Ordered() {
		r.renderCell(&buf, f, c)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCell(buf *bytes.Buffer, f *tiles.Field, c tiles.Cell) {
	cfg := f.Config
	p := r.prefix

	fmt.Fprintf(buf, `  <g class="%s" data-col="%d" data-row="%d" transform="translate(%s %s)" opacity="%s"`,
		p, c.Col, c.Row, num(c.PX), num(c.PY), num(c.Opacity))
	fmt.Fprintf(buf, ` style="--%[1]s-delay:%[2]ss;--%[1]s-scale:%[3]s;--%[1]s-over-scale:%[4]s;--%[1]s-contra-scale:%[5]s">`,
		p, num(c.Delay), num(c.Scale), num(c.OverScale), num(c.ContraScale))

	fmt.Fprintf(buf, `<g class="%[1]s-body"><g class="%[1]s-inner">`, p)
	fmt.Fprintf(buf, `<rect class="%s-bg" width="%s" height="%s" rx="%s" fill="%s"/>`,
		p, num(cfg.TileSize), num(cfg.TileSize), num(cfg.TileRadius), html.EscapeString(c.Color))

	if icon := f.IconMarkup(c); icon != "" {
		off := (cfg.TileSize - cfg.IconSize) / 2
		fmt.Fprintf(buf, `<g class="%s-icon" transform="translate(%s %s)">%s</g>`, p, num(off), num(off), icon)
	}
	buf.WriteString("</g></g></g>\n")
}

// num formats v with at most three decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
