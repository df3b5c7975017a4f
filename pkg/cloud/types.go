package cloud

import (
	"cmp"
	"slices"

	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/geom"
)

// WeightedToken is a normalized word and the number of times it occurred.
type WeightedToken struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Counts is an ordered list of weighted tokens. The order is the input order
// used to break ties between equal counts.
type Counts []WeightedToken

// Total returns the sum of all counts.
func (c Counts) Total() int {
	n := 0
	for _, t := range c {
		n += t.Count
	}
	return n
}

// Ranked returns a copy of c sorted by descending count. Equal counts keep
// their order in c.
func (c Counts) Ranked() Counts {
	ranked := slices.Clone(c)
	slices.SortStableFunc(ranked, func(a, b WeightedToken) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return ranked
}

// Validate checks that c is non-empty, that every token is well formed with a
// positive count, and that no token appears twice.
func (c Counts) Validate() error {
	if len(c) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no tokens to lay out")
	}
	seen := make(map[string]struct{}, len(c))
	for _, t := range c {
		if err := errors.ValidateToken(t.Text); err != nil {
			return err
		}
		if err := errors.ValidateCount(t.Text, t.Count); err != nil {
			return err
		}
		if _, dup := seen[t.Text]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate token %q", t.Text)
		}
		seen[t.Text] = struct{}{}
	}
	return nil
}

// SizedToken is a weighted token with its size class, font size and the
// pixel dimensions of its rendered text.
type SizedToken struct {
	WeightedToken
	Bucket   int     `json:"bucket"`
	FontSize int     `json:"font_size"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Rect returns an unplaced rectangle with the token's dimensions.
func (t SizedToken) Rect() geom.Rect { return geom.NewRect(t.Width, t.Height) }

// Placement is a token committed to a position on the canvas.
type Placement struct {
	Token SizedToken
	Rect  geom.Rect
}

// Anchor returns the bottom-left corner of the placed rectangle.
func (p Placement) Anchor() geom.Vector2 { return p.Rect.Min }

// Canvas is the bounded area every placement lies within.
type Canvas struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Area returns Width × Height.
func (c Canvas) Area() float64 { return c.Width * c.Height }

// Result is the outcome of a layout run.
type Result struct {
	Canvas Canvas

	// Placements holds the placed tokens in descending count order.
	Placements []Placement

	// Unplaced holds tokens for which no free position existed, in the order
	// they were attempted.
	Unplaced []SizedToken

	Stats Stats
}

// Stats reports the work done by a layout run.
type Stats struct {
	Tokens     int // tokens after selection
	Candidates int // spiral points covered, skipped ones included
	Checks     int // rectangle intersection tests
}
