package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
)

// Layout is the serialized form of a computed tag cloud.
type Layout struct {
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	AspectRatio float64    `json:"aspect_ratio"`
	Font        string     `json:"font,omitempty"`
	Words       []Word     `json:"words"`
	Unplaced    []Unplaced `json:"unplaced,omitempty"`
	Stats       Stats      `json:"stats"`
}

// Word is a placed token. X and Y are the bottom-left corner.
type Word struct {
	Text     string  `json:"text"`
	Count    int     `json:"count"`
	Bucket   int     `json:"bucket"`
	FontSize int     `json:"font_size"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// CenterX returns the horizontal center of the word box.
func (w Word) CenterX() float64 { return w.X + w.Width/2 }

// CenterY returns the vertical center of the word box.
func (w Word) CenterY() float64 { return w.Y + w.Height/2 }

// Unplaced is a token that did not fit on the canvas.
type Unplaced struct {
	Text     string `json:"text"`
	Count    int    `json:"count"`
	FontSize int    `json:"font_size"`
}

// Stats mirrors cloud.Stats.
type Stats struct {
	Tokens     int `json:"tokens"`
	Candidates int `json:"candidates"`
	Checks     int `json:"checks"`
}

// MaxBucket returns the largest bucket among the placed words.
func (l Layout) MaxBucket() int {
	b := 0
	for _, w := range l.Words {
		b = max(b, w.Bucket)
	}
	return b
}

// Export converts a layout result into its serialized form. font names the
// face used for measurement and may be empty.
func Export(res *cloud.Result, font string) Layout {
	l := Layout{
		Width:       res.Canvas.Width,
		Height:      res.Canvas.Height,
		AspectRatio: res.Canvas.AspectRatio,
		Font:        font,
		Words:       make([]Word, len(res.Placements)),
		Stats: Stats{
			Tokens:     res.Stats.Tokens,
			Candidates: res.Stats.Candidates,
			Checks:     res.Stats.Checks,
		},
	}
	for i, p := range res.Placements {
		anchor := p.Anchor()
		l.Words[i] = Word{
			Text:     p.Token.Text,
			Count:    p.Token.Count,
			Bucket:   p.Token.Bucket,
			FontSize: p.Token.FontSize,
			X:        anchor.X,
			Y:        anchor.Y,
			Width:    p.Rect.Width(),
			Height:   p.Rect.Height(),
		}
	}
	for _, t := range res.Unplaced {
		l.Unplaced = append(l.Unplaced, Unplaced{Text: t.Text, Count: t.Count, FontSize: t.FontSize})
	}
	return l
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}

// WriteLayout writes a Layout as JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// MarshalCounts serializes counts to an ordered JSON array. Nil counts
// encode as [].
func MarshalCounts(counts cloud.Counts) ([]byte, error) {
	if counts == nil {
		counts = cloud.Counts{}
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal counts")
	}
	return data, nil
}

// WriteCounts writes counts as an ordered JSON array to w.
func WriteCounts(counts cloud.Counts, w io.Writer) error {
	if counts == nil {
		counts = cloud.Counts{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(counts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode counts")
	}
	return nil
}

// WriteCountsFile writes counts to a JSON file.
func WriteCountsFile(counts cloud.Counts, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteCounts(counts, f)
}
