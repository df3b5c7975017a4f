package sink

import (
	"bytes"
	"fmt"
	"math/rand/v2"

	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	palette styles.Palette
	family  string
	title   string
	flow    bool
	seed    uint64
}

// WithHTMLStyle sets the color palette.
func WithHTMLStyle(p styles.Palette) HTMLOption { return func(r *htmlRenderer) { r.palette = p } }

// WithHTMLFontFamily sets the CSS font family.
func WithHTMLFontFamily(family string) HTMLOption {
	return func(r *htmlRenderer) { r.family = family }
}

// WithTitle sets the document title.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

// WithFlow drops computed positions and lets the browser flow the words as
// centered inline blocks, shuffled deterministically by seed.
func WithFlow(seed uint64) HTMLOption {
	return func(r *htmlRenderer) { r.flow = true; r.seed = seed }
}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { background-color: %s; margin: 0; font-family: %s; }
%s  </style>
</head>
<body>
`

const absoluteCSS = `    .cloud { position: relative; margin: 0 auto; }
    .cloud span { position: absolute; white-space: nowrap; text-align: center; }
`

const flowCSS = `    .cloud { text-align: center; line-height: 2; }
    .cloud span { margin: 4px; padding: 4px 8px; display: inline-block; }
`

// RenderHTML renders the layout as a standalone HTML page. By default every
// word is absolutely positioned at its computed box.
func RenderHTML(l wio.Layout, opts ...HTMLOption) []byte {
	p, _ := styles.Lookup(styles.Default)
	r := htmlRenderer{palette: p, title: "wordgraph"}
	for _, opt := range opts {
		opt(&r)
	}

	css := absoluteCSS
	if r.flow {
		css = flowCSS
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, htmlHead, styles.EscapeXML(r.title), r.palette.Background.Hex(),
		styles.EscapeXML(styles.FontStack(r.family)), css)

	if r.flow {
		r.renderFlow(&buf, l)
	} else {
		r.renderAbsolute(&buf, l)
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

func (r *htmlRenderer) renderAbsolute(buf *bytes.Buffer, l wio.Layout) {
	maxBucket := l.MaxBucket()
	fmt.Fprintf(buf, `  <div class="cloud" style="width: %.0fpx; height: %.0fpx;">`+"\n", l.Width, l.Height)
	for _, w := range l.Words {
		fmt.Fprintf(buf,
			`    <span title="%s" style="left: %.2fpx; top: %.2fpx; width: %.2fpx; line-height: %.2fpx; font-size: %dpx; color: %s;">%s</span>`+"\n",
			styles.Occurrences(w.Count), w.X, l.Height-(w.Y+w.Height), w.Width, w.Height,
			w.FontSize, r.palette.Hex(w.Bucket, maxBucket), styles.EscapeXML(w.Text))
	}
	buf.WriteString("  </div>\n")
}

func (r *htmlRenderer) renderFlow(buf *bytes.Buffer, l wio.Layout) {
	maxBucket := l.MaxBucket()
	words := make([]wio.Word, len(l.Words))
	copy(words, l.Words)
	rng := rand.New(rand.NewPCG(r.seed, r.seed))
	rng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })

	buf.WriteString(`  <div class="cloud">` + "\n")
	for _, w := range words {
		fmt.Fprintf(buf, `    <span title="%s" style="font-size: %dpx; color: %s;">%s</span>`+"\n",
			styles.Occurrences(w.Count), w.FontSize, r.palette.Hex(w.Bucket, maxBucket), styles.EscapeXML(w.Text))
	}
	buf.WriteString("  </div>\n")
}
