// Package fonts loads TrueType and OpenType fonts and measures words with
// their horizontal metrics.
//
// The Go Regular font is embedded in the binary (see [Default]), so layouts
// and raster output work without any font files installed. Other fonts are
// loaded from disk with [Load]; TrueType collections (.ttc) select a face by
// index and can be listed with [Collection].
package fonts

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

// DefaultFamily is the CSS font-family used with the embedded font.
const DefaultFamily = "Go"

// FallbackFamily lists fallbacks for viewers without the requested font.
const FallbackFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// Font is a parsed font face with a glyph advance cache.
//
// A Font is safe for concurrent use.
type Font struct {
	sfnt   *opentype.Font
	data   []byte
	name   string
	family string
	upem   float64
	isTTC  bool

	onMissing func(error)

	mu       sync.Mutex
	buf      sfnt.Buffer
	advances map[advanceKey]float64

	b64Once sync.Once
	b64     string
}

type advanceKey struct {
	size  float64
	glyph sfnt.GlyphIndex
}

// Option configures a [Font].
type Option func(*Font)

// WithMissingGlyph registers fn to be called with a MEASUREMENT_UNAVAILABLE
// error whenever a rune has no glyph. The rune still measures as zero width.
func WithMissingGlyph(fn func(error)) Option {
	return func(f *Font) { f.onMissing = fn }
}

var (
	defaultFont     *Font
	defaultFontOnce sync.Once
)

// Default returns the embedded Go Regular font.
func Default() *Font {
	defaultFontOnce.Do(func() {
		f, err := Parse(goregular.TTF)
		if err != nil {
			panic("fonts: embedded font: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Load reads a font file. index selects the face in a .ttc collection and is
// ignored for single-face files.
func Load(path string, index int, opts ...Option) (*Font, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read font %s", path)
	}

	if !isCollection(path) {
		return Parse(data, opts...)
	}

	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font collection %s", path)
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"font index %d out of range: %s has %d fonts", index, path, c.NumFonts())
	}
	face, err := c.Font(index)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "load face %d of %s", index, path)
	}
	f := newFont(face, data, opts)
	f.isTTC = true
	return f, nil
}

// LoadOrDefault loads path like [Load], or parses the embedded font when
// path is empty. Unlike [Default] the returned font is not shared, so opts
// apply to it.
func LoadOrDefault(path string, index int, opts ...Option) (*Font, error) {
	if path == "" {
		return Parse(goregular.TTF, opts...)
	}
	return Load(path, index, opts...)
}

// Parse parses a single-face TrueType or OpenType font.
func Parse(data []byte, opts ...Option) (*Font, error) {
	face, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font")
	}
	return newFont(face, data, opts), nil
}

func newFont(face *opentype.Font, data []byte, opts []Option) *Font {
	f := &Font{
		sfnt:     face,
		data:     data,
		upem:     float64(face.UnitsPerEm()),
		advances: make(map[advanceKey]float64),
	}
	f.name, f.family = faceNames(face)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func faceNames(face *opentype.Font) (name, family string) {
	var buf sfnt.Buffer
	name, _ = face.Name(&buf, sfnt.NameIDFull)
	family, _ = face.Name(&buf, sfnt.NameIDFamily)
	return name, family
}

// Name returns the full font name, e.g. "Go Regular".
func (f *Font) Name() string { return f.name }

// Family returns the font family name, e.g. "Go".
func (f *Font) Family() string { return f.family }

// UnitsPerEm returns the design grid size.
func (f *Font) UnitsPerEm() int { return int(f.upem) }

// Face returns a drawing face at size pixels per em (72 DPI).
func (f *Font) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create face at %.1fpx", size)
	}
	return face, nil
}

// DataURI returns the font as a base64 data URI for CSS @font-face rules.
// Collections are not embeddable and return "".
func (f *Font) DataURI() string {
	if f.isTTC {
		return ""
	}
	f.b64Once.Do(func() {
		f.b64 = "data:font/ttf;base64," + base64.StdEncoding.EncodeToString(f.data)
	})
	return f.b64
}

func isCollection(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ttc")
}
