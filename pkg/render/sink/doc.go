// Package sink provides output format renderers for tag cloud layouts.
//
// # Overview
//
// A "sink" transforms a computed [io.Layout] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics, one <text> per word
//   - HTML: A standalone page with positioned or flowing words
//   - JSON: Layout data export for external tools
//   - PNG: Raster image drawn directly from the font
//   - PDF: Print-ready output (requires rsvg-convert)
//
// Layout coordinates grow upward from the bottom-left corner. Every sink
// flips them into top-down screen space, so a word drawn by any sink sits
// exactly in the box the layout reserved for it.
//
// # SVG Output
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithStyle(palette),
//	    sink.WithEmbeddedFont(fonts.Default()),
//	)
//
// Each word carries a <title> with its occurrence count, shown on hover.
//
// # HTML Output
//
// [RenderHTML] positions spans absolutely. [WithFlow] instead shuffles the
// words with a seeded generator and lets the browser wrap them, which is
// the classic "inline tag cloud" look.
//
// # PNG Output
//
// [RenderPNG] draws glyphs with golang.org/x/image/font onto an imaging
// canvas. Pass the measuring font with [WithPNGFont] so glyph extents match
// the layout boxes.
//
// [io.Layout]: github.com/matzehuels/wordgraph/pkg/io.Layout
package sink
