package cloud

import (
	"math"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

// Default layout settings.
const (
	DefaultMaxBucket     = 20
	DefaultMinFontSize   = 18
	DefaultMaxFontSize   = 72
	DefaultAspectWidth   = 16.0
	DefaultAspectHeight  = 9.0
	DefaultCanvasPadding = 30.0

	// MaxCanvasSide bounds a fixed canvas dimension.
	MaxCanvasSide = 1 << 20
)

// Config controls size normalization, canvas estimation and placement.
type Config struct {
	// MaxBucket is the number of size classes; counts map to 1..MaxBucket.
	MaxBucket int `json:"max_bucket" toml:"max_bucket"`

	// MinFontSize and MaxFontSize bound the pixel font size of bucket 1 and
	// bucket MaxBucket.
	MinFontSize int `json:"min_font_size" toml:"min_font_size"`
	MaxFontSize int `json:"max_font_size" toml:"max_font_size"`

	// NLargest keeps only the N most frequent tokens. 0 keeps all of them.
	NLargest int `json:"n_largest,omitempty" toml:"n_largest"`

	// AspectWidth:AspectHeight is the target canvas aspect ratio.
	AspectWidth  float64 `json:"aspect_width" toml:"aspect_width"`
	AspectHeight float64 `json:"aspect_height" toml:"aspect_height"`

	// Padding is the slack ("ease") added to the estimated canvas.
	Padding float64 `json:"padding" toml:"padding"`

	// CanvasWidth and CanvasHeight, when both set, replace the estimate with
	// a fixed canvas.
	CanvasWidth  float64 `json:"canvas_width,omitempty" toml:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height,omitempty" toml:"canvas_height"`

	// MaxCandidates lowers the per-token spiral cap. 0 uses the full cap.
	MaxCandidates int `json:"max_candidates,omitempty" toml:"max_candidates"`
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		MaxBucket:    DefaultMaxBucket,
		MinFontSize:  DefaultMinFontSize,
		MaxFontSize:  DefaultMaxFontSize,
		AspectWidth:  DefaultAspectWidth,
		AspectHeight: DefaultAspectHeight,
		Padding:      DefaultCanvasPadding,
	}
}

// AspectRatio returns AspectWidth / AspectHeight.
func (c Config) AspectRatio() float64 {
	return c.AspectWidth / c.AspectHeight
}

// FixedCanvas reports whether the canvas size is given rather than estimated.
func (c Config) FixedCanvas() bool {
	return c.CanvasWidth > 0 && c.CanvasHeight > 0
}

// Validate returns an INVALID_CONFIGURATION error describing the first
// unusable setting, or nil.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfiguration, format, args...)
	}

	switch {
	case c.MaxBucket <= 0:
		return invalid("max bucket must be positive, got %d", c.MaxBucket)
	case c.MinFontSize > c.MaxFontSize:
		return invalid("min font size %d exceeds max font size %d", c.MinFontSize, c.MaxFontSize)
	case c.MinFontSize < 1:
		return invalid("min font size must be at least 1px, got %d", c.MinFontSize)
	case c.NLargest < 0:
		return invalid("n largest must not be negative, got %d", c.NLargest)
	case !positive(c.AspectWidth) || !positive(c.AspectHeight):
		return invalid("aspect ratio must be positive, got %v:%v", c.AspectWidth, c.AspectHeight)
	case c.Padding < 0 || math.IsNaN(c.Padding) || math.IsInf(c.Padding, 0):
		return invalid("canvas padding must be a non-negative number, got %v", c.Padding)
	case !canvasSide(c.CanvasWidth) || !canvasSide(c.CanvasHeight):
		return invalid("canvas size must be finite and within 0..%d, got %vx%v", MaxCanvasSide, c.CanvasWidth, c.CanvasHeight)
	case c.MaxCandidates < 0:
		return invalid("max candidates must not be negative, got %d", c.MaxCandidates)
	}
	return nil
}

func canvasSide(f float64) bool {
	return f >= 0 && f <= MaxCanvasSide
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
