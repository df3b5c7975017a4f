package pipeline

import (
	"fmt"

	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/fonts"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/sink"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
func Render(l wio.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	palette, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}

	r := renderer{layout: l, opts: opts, palette: palette}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			var svgOpts []sink.SVGOption
			if svgOpts, err = r.svgOptions(); err == nil {
				data = sink.RenderSVG(l, svgOpts...)
			}
		case FormatPDF:
			var svgOpts []sink.SVGOption
			if svgOpts, err = r.svgOptions(); err == nil {
				data, err = sink.RenderPDF(l, svgOpts...)
			}
		case FormatPNG:
			var f *fonts.Font
			if f, err = r.font(); err == nil {
				data, err = sink.RenderPNG(l,
					sink.WithPNGStyle(palette),
					sink.WithPNGFont(f),
					sink.WithScale(opts.Scale))
			}
		case FormatHTML:
			data = sink.RenderHTML(l, r.htmlOptions()...)
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderer holds per-call state so the font is loaded at most once.
type renderer struct {
	layout  wio.Layout
	opts    Options
	palette styles.Palette
	loaded  *fonts.Font
}

// font returns the font the layout was measured with. Approximate layouts
// are drawn with the embedded font.
func (r *renderer) font() (*fonts.Font, error) {
	if r.loaded != nil {
		return r.loaded, nil
	}
	if r.opts.ApproxMetrics {
		r.loaded = fonts.Default()
		return r.loaded, nil
	}
	f, err := LoadFont(r.opts)
	if err != nil {
		return nil, err
	}
	r.loaded = f
	return f, nil
}

// family prefers the family recorded in the layout, so re-rendered JSON
// layouts keep their face.
func (r *renderer) family() string {
	if r.layout.Font != "" {
		return r.layout.Font
	}
	return fonts.DefaultFamily
}

func (r *renderer) svgOptions() ([]sink.SVGOption, error) {
	svgOpts := []sink.SVGOption{sink.WithStyle(r.palette)}
	if r.opts.EmbedFont {
		f, err := r.font()
		if err != nil {
			return nil, err
		}
		svgOpts = append(svgOpts, sink.WithEmbeddedFont(f))
	} else {
		svgOpts = append(svgOpts, sink.WithFontFamily(r.family()))
	}
	if r.opts.Boxes {
		svgOpts = append(svgOpts, sink.WithBoxes())
	}
	return svgOpts, nil
}

func (r *renderer) htmlOptions() []sink.HTMLOption {
	htmlOpts := []sink.HTMLOption{
		sink.WithHTMLStyle(r.palette),
		sink.WithHTMLFontFamily(r.family()),
	}
	if r.opts.Title != "" {
		htmlOpts = append(htmlOpts, sink.WithTitle(r.opts.Title))
	}
	if r.opts.Flow {
		htmlOpts = append(htmlOpts, sink.WithFlow(r.opts.Seed))
	}
	return htmlOpts
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := wio.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(l, opts)
}
