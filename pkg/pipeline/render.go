package pipeline

import (
	"fmt"

	"github.com/tilefield/tilefield/pkg/tiles"
	"github.com/tilefield/tilefield/pkg/tiles/sink"
)

// renderer produces the artifacts of one field. HTML embeds the SVG, which is
// rendered at most once.
type renderer struct {
	field   *tiles.Field
	variant string
	opts    Options
	svg     []byte
}

func (r *renderer) render(format string) ([]byte, error) {
	switch format {
	case sink.FormatSVG:
		return r.svgData(), nil
	case sink.FormatJSON:
		data, err := sink.RenderJSON(r.field)
		if err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		return data, nil
	case sink.FormatHTML:
		data, err := sink.RenderHTML(r.field, r.svgData(), r.htmlOptions()...)
		if err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func (r *renderer) svgData() []byte {
	if r.svg == nil {
		r.svg = sink.RenderSVG(r.field, r.svgOptions()...)
	}
	return r.svg
}

func (r *renderer) svgOptions() []sink.SVGOption {
	var opts []sink.SVGOption
	if r.opts.ClassPrefix != "" {
		opts = append(opts, sink.WithClassPrefix(r.opts.ClassPrefix))
	}
	if r.opts.Animation {
		opts = append(opts, sink.WithAnimation())
	}
	return opts
}

func (r *renderer) htmlOptions() []sink.HTMLOption {
	opts := []sink.HTMLOption{sink.WithContainerID("tilefield-" + r.variant)}
	if r.opts.HTMLTemplate != "" {
		opts = append(opts, sink.WithTemplate(r.opts.HTMLTemplate))
	}
	return opts
}
