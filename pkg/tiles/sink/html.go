package sink

import (
	"github.com/valyala/fasttemplate"

	"github.com/tilefield/tilefield/pkg/errors"
	"github.com/tilefield/tilefield/pkg/tiles"
)

// DefaultHTMLTemplate wraps the SVG in a container sized to the field. The
// data-visible attribute is the hook flipped by the page's intersection
// observer.
const DefaultHTMLTemplate = `<div class="{{class}}" id="{{id}}" data-visible="false" aria-hidden="true" style="position:relative;width:{{width}}px;height:{{height}}px;max-width:100%;overflow:hidden">
{{svg}}</div>
`

// HTMLOption configures [RenderHTML].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	template string
	class    string
	id       string
}

// WithTemplate replaces the snippet template. Available tags: {{svg}},
// {{width}}, {{height}}, {{class}}, {{id}}, {{cells}}.
func WithTemplate(t string) HTMLOption { return func(r *htmlRenderer) { r.template = t } }

// WithContainerClass sets the container class (default "tilefield").
func WithContainerClass(c string) HTMLOption { return func(r *htmlRenderer) { r.class = c } }

// WithContainerID sets the container id.
func WithContainerID(id string) HTMLOption { return func(r *htmlRenderer) { r.id = id } }

// RenderHTML embeds svg, which must have been rendered from f, into an HTML
// snippet.
func RenderHTML(f *tiles.Field, svg []byte, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{template: DefaultHTMLTemplate, class: "tilefield"}
	for _, opt := range opts {
		opt(&r)
	}

	t, err := fasttemplate.NewTemplate(r.template, "{{", "}}")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse html template")
	}

	out := t.ExecuteString(map[string]any{
		"svg":    string(svg),
		"width":  num(f.Width),
		"height": num(f.Height),
		"class":  r.class,
		"id":     r.id,
		"cells":  num(float64(len(f.Cells))),
	})
	return []byte(out), nil
}
