package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordgraph/pkg/cache"
	"github.com/matzehuels/wordgraph/pkg/cloud"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete count → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Count
	start := time.Now()
	counts, countHit, err := r.CountWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	result.Counts = counts
	result.CountsHash, _ = cache.HashJSON(counts)
	result.Stats.CountTime = time.Since(start)
	result.Stats.Tokens = len(counts)
	result.CacheInfo.CountHit = countHit

	r.Logger.Info("counted tokens",
		"tokens", len(counts),
		"duration", result.Stats.CountTime)

	// Stage 2: Layout
	start = time.Now()
	layout, layoutHit, err := r.LayoutWithCacheInfo(ctx, counts, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.Placed = len(layout.Words)
	result.Stats.Unplaced = len(layout.Unplaced)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", len(layout.Words),
		"unplaced", len(layout.Unplaced),
		"canvas", fmt.Sprintf("%.0fx%.0f", layout.Width, layout.Height),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// CountWithCacheInfo tokenizes the sources of opts with caching and returns
// cache hit info.
func (r *Runner) CountWithCacheInfo(ctx context.Context, opts Options) (counts cloud.Counts, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForCount(); err != nil {
		return nil, false, err
	}

	source := sourceName(opts)
	start := time.Now()
	observability.Pipeline().OnCountStart(ctx, source)
	defer func() {
		observability.Pipeline().OnCountComplete(ctx, source, len(counts), time.Since(start), err)
	}()

	sources, err := ReadSources(opts)
	if err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.CountsKey(SourceHash(sources))
	if data, ok := r.lookup(ctx, cacheKey, "counts", opts.Refresh); ok {
		if cached, err := wio.UnmarshalCounts(data); err == nil {
			return cached, true, nil
		}
		// If deserialization fails, fall through to recount
	}

	counts, err = CountSources(sources, opts.Logger)
	if err != nil {
		return nil, false, err
	}

	if data, err := wio.MarshalCounts(counts); err == nil {
		r.store(ctx, cacheKey, "counts", data, cache.CountsTTL)
	}
	return counts, false, nil
}

// Count is a convenience wrapper that calls CountWithCacheInfo and discards the cache hit info.
func (r *Runner) Count(ctx context.Context, opts Options) (cloud.Counts, error) {
	counts, _, err := r.CountWithCacheInfo(ctx, opts)
	return counts, err
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, counts cloud.Counts, opts Options) (layout wio.Layout, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return wio.Layout{}, false, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(counts))
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, len(layout.Words), len(layout.Unplaced), time.Since(start), err)
	}()

	countsHash, err := cache.HashJSON(counts)
	if err != nil {
		return wio.Layout{}, false, fmt.Errorf("hash counts: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(countsHash, opts.LayoutKeyOpts())

	if data, ok := r.lookup(ctx, cacheKey, "layout", opts.Refresh); ok {
		if cached, err := wio.UnmarshalLayout(data); err == nil {
			return cached, true, nil
		}
	}

	layout, err = ComputeLayout(counts, opts)
	if err != nil {
		return wio.Layout{}, false, err
	}

	if data, err := wio.MarshalLayout(layout); err == nil {
		r.store(ctx, cacheKey, "layout", data, cache.LayoutTTL)
	}
	return layout, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, counts cloud.Counts, opts Options) (wio.Layout, error) {
	layout, _, err := r.LayoutWithCacheInfo(ctx, counts, opts)
	return layout, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout wio.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	layoutData, err := wio.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Only a full set of cached formats counts as a hit.
	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, ok := r.lookup(ctx, cacheKey, "artifact", opts.Refresh)
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(layout, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, cacheKey, "artifact", data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout wio.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads a cache entry unless refresh is set. Backend errors are
// logged and treated as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
