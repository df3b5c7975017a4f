// Package pipeline provides the count → layout → render pipeline behind the
// wordgraph CLI and HTTP API.
//
// By centralizing this logic, both entry points apply the same defaults,
// cache keys and validation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Count: Tokenize text files, stdin or request bodies into ordered counts
//  2. Layout: Size, measure and place the tokens on a canvas ([cloud.Layout])
//  3. Render: Generate output in various formats (SVG, PNG, PDF, HTML, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Paths:   []string{"speech.txt"},
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	counts, err := runner.Count(ctx, opts)
//	layout, err := runner.Layout(ctx, counts, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordgraph/pkg/cache"
	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/fonts"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 16.0

	// DefaultSeed seeds the shuffle of flow-mode HTML.
	DefaultSeed = uint64(42)

	// DefaultStyle is the default color palette.
	DefaultStyle = styles.Default
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatHTML: true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Count options
	Paths  []string  `json:"paths,omitempty"`
	Text   string    `json:"text,omitempty"`
	Reader io.Reader `json:"-"` // e.g. stdin

	// Layout options. Zero-valued sizes and aspect fall back to
	// cloud.DefaultConfig; a fully zero Config is replaced by it.
	cloud.Config
	FontPath      string `json:"font_path,omitempty"`
	FontIndex     int    `json:"font_index,omitempty"`
	ApproxMetrics bool   `json:"approx_metrics,omitempty"` // measure without font metrics
	Workers       int    `json:"workers,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Flow      bool     `json:"flow,omitempty"`
	Seed      uint64   `json:"seed,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Boxes     bool     `json:"boxes,omitempty"`
	Title     string   `json:"title,omitempty"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Counts are the token counts in first-appearance order.
	Counts cloud.Counts

	// CountsHash is the content hash of Counts.
	CountsHash string

	// Layout is the serializable layout.
	Layout wio.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Tokens     int
	Placed     int
	Unplaced   int
	CountTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CountHit  bool
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, html, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !styles.Valid(style) {
		return errors.New(errors.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForCount checks that exactly one kind of source is present.
func (o *Options) ValidateForCount() error {
	sources := 0
	if o.Text != "" {
		sources++
	}
	if len(o.Paths) > 0 {
		sources++
	}
	if o.Reader != nil {
		sources++
	}
	if sources == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no text, paths or reader to count")
	}
	if sources > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "text, paths and reader are mutually exclusive")
	}
	for _, p := range o.Paths {
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	def := cloud.DefaultConfig()
	if o.Config == (cloud.Config{}) {
		o.Config = def
	}
	if o.MaxBucket == 0 {
		o.MaxBucket = def.MaxBucket
	}
	if o.MinFontSize == 0 {
		o.MinFontSize = def.MinFontSize
	}
	if o.MaxFontSize == 0 {
		o.MaxFontSize = def.MaxFontSize
	}
	if o.AspectWidth == 0 || o.AspectHeight == 0 {
		o.AspectWidth, o.AspectHeight = def.AspectWidth, def.AspectHeight
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.FontIndex < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "font index must not be negative, got %d", o.FontIndex)
	}
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !(o.Scale > 0 && o.Scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "scale must be within (0, %v], got %v", MaxScale, o.Scale)
	}
	return ValidateStyle(o.Style)
}

// ValidateAndSetDefaults checks every stage and applies defaults for the
// full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForCount(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// FontKey identifies the measurer for cache keys. A font file is keyed by
// its content as well as its path, so replacing the file invalidates the
// layouts measured with it. An unreadable file keys by path alone; loading
// it fails later anyway.
func (o *Options) FontKey() string {
	switch {
	case o.ApproxMetrics:
		return "approx"
	case o.FontPath == "":
		return "embedded:" + fonts.DefaultFamily
	}
	key := fmt.Sprintf("%s#%d", o.FontPath, o.FontIndex)
	if data, err := os.ReadFile(o.FontPath); err == nil {
		key += "@" + cache.Hash(data)[:16]
	}
	return key
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Font:   o.FontKey(),
		Config: o.Config,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Options
// that do not affect format are left out so they share a key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Style: o.Style}
	switch format {
	case FormatJSON:
		k.Style = ""
	case FormatPNG:
		k.Font = o.FontKey()
		k.Scale = o.Scale
	case FormatHTML:
		k.Flow = o.Flow
		k.Title = o.Title
		if o.Flow {
			k.Seed = o.Seed
		}
	case FormatSVG, FormatPDF:
		k.EmbedFont = o.EmbedFont
		k.Boxes = o.Boxes
		if o.EmbedFont {
			k.Font = o.FontKey()
		}
	}
	return k
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
