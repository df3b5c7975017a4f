package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/wordgraph/pkg/pipeline"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

// binder registers a group of flags bound to the fields of opts.
type binder func(fs *pflag.FlagSet, opts *pipeline.Options)

func bindLayoutFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.IntVar(&o.MaxBucket, "max-bucket", o.MaxBucket, "number of size classes")
	fs.IntVar(&o.MinFontSize, "min-font", o.MinFontSize, "font size of the least frequent words")
	fs.IntVar(&o.MaxFontSize, "max-font", o.MaxFontSize, "font size of the most frequent words")
	fs.IntVarP(&o.NLargest, "top", "n", o.NLargest, "keep only the N most frequent words (0 keeps all)")
	fs.Float64Var(&o.AspectWidth, "aspect-width", o.AspectWidth, "canvas aspect ratio width")
	fs.Float64Var(&o.AspectHeight, "aspect-height", o.AspectHeight, "canvas aspect ratio height")
	fs.Float64Var(&o.Padding, "padding", o.Padding, "slack added to the estimated canvas")
	fs.Float64Var(&o.CanvasWidth, "width", o.CanvasWidth, "fixed canvas width (with --height)")
	fs.Float64Var(&o.CanvasHeight, "height", o.CanvasHeight, "fixed canvas height (with --width)")
	fs.IntVar(&o.MaxCandidates, "max-candidates", o.MaxCandidates, "lower the spiral positions tried per word")
	fs.StringVar(&o.FontPath, "font", o.FontPath, "TrueType/OpenType font to measure with (default: embedded Go)")
	fs.IntVar(&o.FontIndex, "font-index", o.FontIndex, "face index within a .ttc collection")
	fs.BoolVar(&o.ApproxMetrics, "approx", o.ApproxMetrics, "measure with approximate metrics instead of a font")
	fs.IntVar(&o.Workers, "workers", o.Workers, "parallel measurement workers (0 uses all CPUs)")
}

func bindRenderFlags(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.StringSliceVarP(&o.Formats, "format", "f", o.Formats, "output format(s): svg, png, pdf, html, json")
	fs.StringVar(&o.Style, "style", o.Style, "color palette: "+strings.Join(styles.Names(), ", "))
	fs.Float64Var(&o.Scale, "scale", o.Scale, "PNG pixel scale")
	fs.BoolVar(&o.Flow, "flow", o.Flow, "HTML: shuffled inline flow instead of absolute positions")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "HTML flow shuffle seed")
	fs.BoolVar(&o.EmbedFont, "embed-font", o.EmbedFont, "SVG/PDF: embed the font as a data URI")
	fs.BoolVar(&o.Boxes, "boxes", o.Boxes, "SVG/PDF: outline word boxes")
	fs.StringVar(&o.Title, "title", o.Title, "HTML page title")
}

func bindRefreshFlag(fs *pflag.FlagSet, o *pipeline.Options) {
	fs.BoolVar(&o.Refresh, "refresh", o.Refresh, "recompute instead of reading the cache")
}

// bindFlags registers the binders' flags on cmd. The bound values only serve
// as help defaults and change markers; resolveOptions reads them back.
func bindFlags(cmd *cobra.Command, binders ...binder) {
	var scratch pipeline.Options
	setCLIDefaults(&scratch)
	for _, bind := range binders {
		bind(cmd.Flags(), &scratch)
	}
}

// resolveOptions layers the pipeline defaults, the settings file and the
// flags set on the command line, in that order.
func (c *CLI) resolveOptions(cmd *cobra.Command, binders ...binder) (pipeline.Options, error) {
	var opts pipeline.Options
	settings, err := c.loadSettings()
	if err != nil {
		return opts, err
	}
	setCLIDefaults(&opts)
	settings.Apply(&opts)

	fs := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
	for _, bind := range binders {
		bind(fs, &opts)
	}
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		dst := fs.Lookup(fl.Name)
		if dst == nil || err != nil {
			return
		}
		if src, ok := fl.Value.(pflag.SliceValue); ok {
			err = dst.Value.(pflag.SliceValue).Replace(src.GetSlice())
			return
		}
		err = dst.Value.Set(fl.Value.String())
	})
	if err != nil {
		return opts, err
	}

	for i, f := range opts.Formats {
		opts.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	opts.Logger = c.Logger
	return opts, nil
}
