package sink

import (
	"bytes"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/fonts"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

// MaxPNGPixels bounds the size of a rasterized canvas.
const MaxPNGPixels = 50_000_000

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette styles.Palette
	font    *fonts.Font
	scale   float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGStyle sets the color palette.
func WithPNGStyle(p styles.Palette) PNGOption { return func(r *pngRenderer) { r.palette = p } }

// WithPNGFont draws words with f. It should be the font the layout was
// measured with. The default is the embedded font.
func WithPNGFont(f *fonts.Font) PNGOption { return func(r *pngRenderer) { r.font = f } }

// RenderPNG rasterizes the layout. Unlike PDF output this needs no external
// tools: glyphs are drawn directly from the font.
func RenderPNG(l wio.Layout, opts ...PNGOption) ([]byte, error) {
	p, _ := styles.Lookup(styles.Default)
	r := pngRenderer{palette: p, font: fonts.Default(), scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	w := math.Ceil(l.Width * r.scale)
	h := math.Ceil(l.Height * r.scale)
	if !(w > 0 && h > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot rasterize %gx%g canvas", l.Width, l.Height)
	}
	if !(w*h <= MaxPNGPixels) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"%gx%g canvas at scale %g exceeds %d pixels", l.Width, l.Height, r.scale, MaxPNGPixels)
	}
	img := imaging.New(int(w), int(h), r.palette.BackgroundRGBA())

	if err := r.drawWords(img, l); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawWords(img *image.NRGBA, l wio.Layout) error {
	maxBucket := l.MaxBucket()
	faces := make(map[int]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, w := range l.Words {
		face, ok := faces[w.FontSize]
		if !ok {
			var err error
			face, err = r.font.Face(float64(w.FontSize) * r.scale)
			if err != nil {
				return err
			}
			faces[w.FontSize] = face
		}

		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(r.palette.RGBA(w.Bucket, maxBucket)),
			Face: face,
		}
		m := face.Metrics()
		advance := d.MeasureString(w.Text)
		cx := w.CenterX() * r.scale
		cy := (l.Height - w.CenterY()) * r.scale
		// Center the ink box: baseline sits half the glyph height below cy.
		baseline := cy + float64(m.Ascent-m.Descent)/128
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(cx*64) - advance/2,
			Y: fixed.Int26_6(baseline * 64),
		}
		d.DrawString(w.Text)
	}
	return nil
}
