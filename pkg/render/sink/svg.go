package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/wordgraph/pkg/fonts"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette styles.Palette
	family  string
	font    *fonts.Font
	boxes   bool
}

// WithStyle sets the color palette.
func WithStyle(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithFontFamily sets the CSS font family without embedding font data.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.family = family } }

// WithEmbeddedFont embeds f as an @font-face rule so the SVG renders with
// the same metrics the layout was measured with.
func WithEmbeddedFont(f *fonts.Font) SVGOption {
	return func(r *svgRenderer) {
		r.font = f
		r.family = f.Family()
	}
}

// WithBoxes outlines every word's bounding box. Useful for debugging layouts.
func WithBoxes() SVGOption { return func(r *svgRenderer) { r.boxes = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	p, _ := styles.Lookup(styles.Default)
	r := svgRenderer{palette: p, family: fonts.DefaultFamily}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders the layout as an SVG document. Words are centered on
// their boxes; the layout's y-up coordinates are flipped into SVG space.
func RenderSVG(l wio.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	maxBucket := l.MaxBucket()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.palette.Background.Hex())

	for _, w := range l.Words {
		if r.boxes {
			fmt.Fprintf(&buf, `  <rect class="box" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
				w.X, l.Height-(w.Y+w.Height), w.Width, w.Height)
		}
		fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-size="%d" fill="%s"><title>%s</title>%s</text>`+"\n",
			w.CenterX(), l.Height-w.CenterY(), w.FontSize,
			r.palette.Hex(w.Bucket, maxBucket),
			styles.Occurrences(w.Count), styles.EscapeXML(w.Text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	if r.font != nil {
		if uri := r.font.DataURI(); uri != "" {
			fmt.Fprintf(buf, "    @font-face { font-family: '%s'; src: url(%s) format('truetype'); }\n",
				styles.EscapeXML(r.family), uri)
		}
	}
	fmt.Fprintf(buf, "    text { font-family: %s; text-anchor: middle; dominant-baseline: central; }\n",
		styles.EscapeXML(styles.FontStack(r.family)))
	if r.boxes {
		buf.WriteString("    .box { fill: none; stroke: #ef4444; stroke-width: 0.5; }\n")
	}
	buf.WriteString("  </style>\n")
}
