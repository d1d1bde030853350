package sink

import "github.com/tilefield/tilefield/pkg/tiles"

// Generate lays out cfg and renders it as SVG in one step.
func Generate(cfg tiles.Config, opts ...SVGOption) (string, error) {
	f, err := tiles.Layout(cfg)
	if err != nil {
		return "", err
	}
	return string(RenderSVG(f, opts...)), nil
}
