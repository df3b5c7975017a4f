package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

// LineHeight is the height of a measured token relative to its font size.
const LineHeight = 1.2

// Measure returns the advance width of token at size pixels per em and a
// height of size*LineHeight. Runes without a glyph contribute zero width.
func (f *Font) Measure(token string, size float64) (width, height float64) {
	scale := size / f.upem

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range token {
		width += f.advance(r, size, scale)
	}
	return width, size * LineHeight
}

// advance returns the scaled advance of r. Callers hold f.mu.
func (f *Font) advance(r rune, size, scale float64) float64 {
	gi, err := f.sfnt.GlyphIndex(&f.buf, r)
	if err != nil || gi == 0 {
		f.missing(r, err)
		return 0
	}

	key := advanceKey{size: size, glyph: gi}
	if adv, ok := f.advances[key]; ok {
		return adv
	}

	// A ppem equal to the em size yields advances in font units.
	units, err := f.sfnt.GlyphAdvance(&f.buf, gi, fixed.I(int(f.upem)), font.HintingNone)
	if err != nil {
		f.missing(r, err)
		return 0
	}
	adv := fixedToFloat64(units) * scale
	f.advances[key] = adv
	return adv
}

func (f *Font) missing(r rune, cause error) {
	if f.onMissing == nil {
		return
	}
	if cause == nil {
		cause = sfnt.ErrNotFound
	}
	f.onMissing(errors.Wrap(errors.ErrCodeMeasurementUnavailable, cause,
		"no glyph for %q in %s", r, f.name))
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// Approx measures text without font metrics: every rune is CharWidth em wide
// and lines are LineHeight em tall. It is useful for servers that have no
// font loaded and for tests.
type Approx struct {
	CharWidth  float64
	LineHeight float64
}

// DefaultApprox approximates a proportional sans-serif face.
var DefaultApprox = Approx{CharWidth: 0.6, LineHeight: LineHeight}

// Measure implements cloud.Measurer.
func (a Approx) Measure(token string, size float64) (float64, float64) {
	n := 0
	for range token {
		n++
	}
	return float64(n) * size * a.CharWidth, size * a.LineHeight
}
