package cloud

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wordgraph/pkg/cloud/placement"
)

// Measurer reports the pixel size of a token drawn at a font size.
//
// Implementations must be deterministic for a fixed token, size and font, and
// safe for concurrent use: [Layout] measures tokens in parallel. Characters
// that cannot be measured contribute zero width instead of failing.
type Measurer interface {
	Measure(token string, fontSize float64) (width, height float64)
}

// MeasureFunc adapts a function to the [Measurer] interface.
type MeasureFunc func(token string, fontSize float64) (width, height float64)

// Measure calls f.
func (f MeasureFunc) Measure(token string, fontSize float64) (float64, float64) {
	return f(token, fontSize)
}

// Option configures a [Layout] run.
type Option func(*engine)

// WithLogger sets the logger used for debug output. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers bounds the number of concurrent measurements. n <= 0 uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

type engine struct {
	logger  *log.Logger
	workers int
}

// Layout computes a tag cloud layout for counts.
//
// The pipeline is: validate → [Normalize] → measure every surviving token at
// its font size → estimate the canvas ([EstimateCanvas]) → place tokens one
// by one in descending count order.
//
// EMPTY_INPUT, INVALID_INPUT and INVALID_CONFIGURATION errors abort the run
// before any placement. A token that finds no free position is appended to
// Result.Unplaced and the run continues.
func Layout(counts Counts, m Measurer, cfg Config, opts ...Option) (*Result, error) {
	e := engine{
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&e)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := counts.Validate(); err != nil {
		return nil, err
	}

	tokens, err := Normalize(counts, cfg)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("normalized tokens", "input", len(counts), "selected", len(tokens))

	e.measure(tokens, m)

	canvas := canvasFor(tokens, cfg)
	e.logger.Debug("canvas", "width", canvas.Width, "height", canvas.Height, "fixed", cfg.FixedCanvas())

	return e.place(tokens, canvas, cfg), nil
}

// measure fills in token dimensions. Measurements are independent, so they
// run concurrently; each goroutine writes only its own slot.
func (e *engine) measure(tokens []SizedToken, m Measurer) {
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := range tokens {
		g.Go(func() error {
			w, h := m.Measure(tokens[i].Text, float64(tokens[i].FontSize))
			tokens[i].Width = max(w, 0)
			tokens[i].Height = max(h, 0)
			return nil
		})
	}
	_ = g.Wait()
}

// place runs the sequential placement pass. The placer and its collision
// index live only for the duration of this call.
func (e *engine) place(tokens []SizedToken, canvas Canvas, cfg Config) *Result {
	p := placement.New(canvas.Width, canvas.Height, len(tokens),
		placement.WithMaxCandidates(cfg.MaxCandidates))

	res := &Result{
		Canvas:     canvas,
		Placements: make([]Placement, 0, len(tokens)),
	}
	for _, t := range tokens {
		r, err := p.Place(t.Rect())
		if err != nil {
			e.logger.Debug("token unplaced", "token", t.Text, "count", t.Count, "reason", err)
			res.Unplaced = append(res.Unplaced, t)
			continue
		}
		res.Placements = append(res.Placements, Placement{Token: t, Rect: r})
	}

	res.Stats = Stats{
		Tokens:     len(tokens),
		Candidates: p.Candidates(),
		Checks:     p.Index().Checks(),
	}
	e.logger.Debug("placed tokens",
		"placed", len(res.Placements),
		"unplaced", len(res.Unplaced),
		"candidates", res.Stats.Candidates,
		"checks", res.Stats.Checks)
	return res
}
