// Package styles defines the color palettes used by the tag cloud renderers.
//
// A palette maps a word's size bucket to a text color. Colors are blended in
// the HCL color space, which keeps perceived lightness even across the range
// so that no bucket visually outweighs a larger one.
package styles

import (
	"image/color"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

// Palette names.
const (
	Mono     = "mono"
	Spectrum = "spectrum"
	Paper    = "paper"
)

// Default is the palette used when none is requested.
const Default = Mono

// Palette colors words by bucket over a solid background.
type Palette struct {
	Name       string
	Background colorful.Color
	From, To   colorful.Color // text color of bucket 1 and of the largest bucket
}

var palettes = map[string]Palette{
	Mono: {
		Name:       Mono,
		Background: colorful.Color{R: 0, G: 0, B: 0},
		From:       colorful.Color{R: 1, G: 1, B: 1},
		To:         colorful.Color{R: 1, G: 1, B: 1},
	},
	Spectrum: {
		Name:       Spectrum,
		Background: mustHex("#111827"),
		From:       mustHex("#3b82f6"),
		To:         mustHex("#f59e0b"),
	},
	Paper: {
		Name:       Paper,
		Background: mustHex("#fdfcf7"),
		From:       mustHex("#9ca3af"),
		To:         mustHex("#111827"),
	},
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the palette called name. An empty name selects [Default].
func Lookup(name string) (Palette, error) {
	if name == "" {
		name = Default
	}
	p, ok := palettes[name]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidStyle,
			"unknown style %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names returns the available palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Valid reports whether name is a known palette.
func Valid(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Color returns the text color for bucket out of maxBucket.
func (p Palette) Color(bucket, maxBucket int) colorful.Color {
	if maxBucket <= 1 {
		return p.To
	}
	t := float64(bucket-1) / float64(maxBucket-1)
	switch {
	case t <= 0 || p.From == p.To:
		return p.From
	case t >= 1:
		return p.To
	}
	return p.From.BlendHcl(p.To, t).Clamped()
}

// Hex returns the CSS color of bucket.
func (p Palette) Hex(bucket, maxBucket int) string {
	return p.Color(bucket, maxBucket).Hex()
}

// RGBA returns the color of bucket for raster drawing.
func (p Palette) RGBA(bucket, maxBucket int) color.RGBA {
	r, g, b := p.Color(bucket, maxBucket).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// BackgroundRGBA returns the background for raster drawing.
func (p Palette) BackgroundRGBA() color.RGBA {
	r, g, b := p.Background.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
