// Package render provides format conversion shared by the tag cloud sinks.
//
// Renderers for individual formats live in [sink]; color palettes live in
// [styles].
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg). Use [Available] to check for it before offering PDF.
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/wordgraph/pkg/render/sink
// [styles]: github.com/matzehuels/wordgraph/pkg/render/styles
package render
