package config

import "github.com/matzehuels/wordgraph/pkg/pipeline"

// Apply copies every key set in the file onto opts. Keys absent from the
// file leave opts untouched.
func (f *File) Apply(opts *pipeline.Options) {
	l, r := f.Layout, f.Render

	setInt := func(dst *int, key string, v int) {
		if f.Has("layout", key) {
			*dst = v
		}
	}
	setFloat := func(dst *float64, key string, v float64) {
		if f.Has("layout", key) {
			*dst = v
		}
	}

	setInt(&opts.MaxBucket, "max_bucket", l.MaxBucket)
	setInt(&opts.MinFontSize, "min_font_size", l.MinFontSize)
	setInt(&opts.MaxFontSize, "max_font_size", l.MaxFontSize)
	setInt(&opts.NLargest, "n_largest", l.NLargest)
	setFloat(&opts.AspectWidth, "aspect_width", l.AspectWidth)
	setFloat(&opts.AspectHeight, "aspect_height", l.AspectHeight)
	setFloat(&opts.Padding, "padding", l.Padding)
	setFloat(&opts.CanvasWidth, "canvas_width", l.CanvasWidth)
	setFloat(&opts.CanvasHeight, "canvas_height", l.CanvasHeight)
	setInt(&opts.MaxCandidates, "max_candidates", l.MaxCandidates)
	setInt(&opts.FontIndex, "font_index", l.FontIndex)
	setInt(&opts.Workers, "workers", l.Workers)
	if f.Has("layout", "font") {
		opts.FontPath = l.Font
	}
	if f.Has("layout", "approx_metrics") {
		opts.ApproxMetrics = l.ApproxMetrics
	}

	if f.Has("render", "formats") {
		opts.Formats = append([]string(nil), r.Formats...)
	}
	if f.Has("render", "style") {
		opts.Style = r.Style
	}
	if f.Has("render", "scale") {
		opts.Scale = r.Scale
	}
	if f.Has("render", "flow") {
		opts.Flow = r.Flow
	}
	if f.Has("render", "seed") {
		opts.Seed = r.Seed
	}
	if f.Has("render", "embed_font") {
		opts.EmbedFont = r.EmbedFont
	}
	if f.Has("render", "boxes") {
		opts.Boxes = r.Boxes
	}
	if f.Has("render", "title") {
		opts.Title = r.Title
	}
}
