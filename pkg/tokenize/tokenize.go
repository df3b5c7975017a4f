// Package tokenize turns plain text into ordered word counts for layout.
//
// Words are split on Unicode whitespace, lower-cased, and stripped of
// punctuation runs at either end. Punctuation inside a word is kept, so
// "a,b" and "example.com" survive as single tokens. Counts are returned in
// order of first appearance, which makes downstream layouts reproducible.
package tokenize

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
)

const (
	leadingPunct  = ".,;:!?'\"`([{<"
	trailingPunct = ".,;:!?'\"`)]}>"

	maxWordBytes = 1 << 20
)

// Normalize lower-cases word and trims leading and trailing punctuation.
// The result may be empty.
func Normalize(word string) string {
	return normalize(cases.Lower(language.Und), word)
}

func normalize(c cases.Caser, word string) string {
	word = c.String(word)
	word = strings.TrimLeft(word, leadingPunct)
	return strings.TrimRight(word, trailingPunct)
}

// Counter accumulates word counts in first-appearance order.
//
// A Counter is not safe for concurrent use.
type Counter struct {
	caser   cases.Caser
	index   map[string]int
	counts  cloud.Counts
	skipped int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{
		caser: cases.Lower(language.Und),
		index: make(map[string]int),
	}
}

// Add normalizes word and counts it. Words that normalize to nothing, or that
// are not valid tokens, are skipped.
func (c *Counter) Add(word string) {
	tok := normalize(c.caser, word)
	if tok == "" || errors.ValidateToken(tok) != nil {
		c.skipped++
		return
	}
	c.add(tok, 1)
}

func (c *Counter) add(tok string, n int) {
	if i, ok := c.index[tok]; ok {
		c.counts[i].Count += n
		return
	}
	c.index[tok] = len(c.counts)
	c.counts = append(c.counts, cloud.WeightedToken{Text: tok, Count: n})
}

// AddReader counts every whitespace-separated word in r.
func (c *Counter) AddReader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxWordBytes)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		c.Add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read text")
	}
	return nil
}

// Counts returns a copy of the accumulated counts.
func (c *Counter) Counts() cloud.Counts {
	out := make(cloud.Counts, len(c.counts))
	copy(out, c.counts)
	return out
}

// Len returns the number of distinct tokens.
func (c *Counter) Len() int { return len(c.counts) }

// Skipped returns how many words were dropped by normalization.
func (c *Counter) Skipped() int { return c.skipped }

// Count counts the words of r.
func Count(r io.Reader) (cloud.Counts, error) {
	c := NewCounter()
	if err := c.AddReader(r); err != nil {
		return nil, err
	}
	return c.Counts(), nil
}

// Merge sums several count lists. Tokens keep the position of their first
// appearance across the inputs.
func Merge(sets ...cloud.Counts) cloud.Counts {
	c := NewCounter()
	for _, set := range sets {
		for _, t := range set {
			c.add(t.Text, t.Count)
		}
	}
	return c.Counts()
}
