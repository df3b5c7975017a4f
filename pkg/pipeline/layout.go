package pipeline

import (
	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/fonts"
	wio "github.com/matzehuels/wordgraph/pkg/io"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout lays out counts and converts the result to its serialized
// form. Tokens that found no free position end up in Layout.Unplaced.
func ComputeLayout(counts cloud.Counts, opts Options) (wio.Layout, error) {
	opts.setLogger()
	m, family, err := NewMeasurer(opts)
	if err != nil {
		return wio.Layout{}, err
	}

	res, err := cloud.Layout(counts, m, opts.Config,
		cloud.WithLogger(opts.Logger),
		cloud.WithWorkers(opts.Workers))
	if err != nil {
		return wio.Layout{}, err
	}
	return wio.Export(res, family), nil
}

// NewMeasurer returns the measurer selected by opts and the font family the
// layout records.
func NewMeasurer(opts Options) (cloud.Measurer, string, error) {
	if opts.ApproxMetrics {
		return fonts.DefaultApprox, fonts.DefaultFamily, nil
	}
	f, err := LoadFont(opts)
	if err != nil {
		return nil, "", err
	}
	return f, f.Family(), nil
}

// LoadFont loads opts.FontPath, or the embedded font when it is empty.
// Runes without a glyph are reported on the debug log.
func LoadFont(opts Options) (*fonts.Font, error) {
	opts.setLogger()
	logger := opts.Logger
	return fonts.LoadOrDefault(opts.FontPath, opts.FontIndex,
		fonts.WithMissingGlyph(func(err error) {
			logger.Debug("measurement unavailable", "err", err)
		}))
}
