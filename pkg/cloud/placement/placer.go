package placement

import (
	"math"

	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/geom"
)

// Option configures a [Placer].
type Option func(*Placer)

// WithMaxCandidates lowers the per-rectangle candidate cap. Values <= 0 and
// values above [CandidateCap] for the canvas are ignored.
func WithMaxCandidates(n int) Option {
	return func(p *Placer) {
		if n > 0 && n < p.maxCandidates {
			p.maxCandidates = n
		}
	}
}

// WithoutHint disables the index's last-collision shortcut.
func WithoutHint() Option {
	return func(p *Placer) { p.index.SetHint(false) }
}

// WithoutShortcuts makes every search test each spiral point in turn, with
// no run skipping and no resumption. Placements are the same either way;
// only the amount of work differs.
func WithoutShortcuts() Option {
	return func(p *Placer) { p.shortcuts = false }
}

// Placer assigns positions to rectangles on a width × height canvas, one at a
// time, around the canvas center. Each accepted rectangle is committed to the
// placer's [Index] and constrains every later one.
//
// Placer is strictly sequential and not safe for concurrent use.
type Placer struct {
	width, height float64
	center        geom.Vector2
	index         *Index
	maxCandidates int
	candidates    int
	shortcuts     bool

	// resume holds, per rectangle size, the spiral state just before the
	// last accepted point (or the exhausted state). Every earlier point was
	// rejected for that size and stays rejected for any size that covers it.
	resume map[geom.Vector2]Spiral
}

// New returns a placer for a width × height canvas. capacity sizes the
// collision index.
func New(width, height float64, capacity int, opts ...Option) *Placer {
	p := &Placer{
		width:         width,
		height:        height,
		center:        geom.Vec(width/2, height/2),
		index:         NewIndex(capacity),
		maxCandidates: CandidateCap(width, height),
		shortcuts:     true,
		resume:        make(map[geom.Vector2]Spiral),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CandidateCap returns the number of spiral points needed to visit every
// lattice point of a width × height canvas from its center: (2R+1)² with
// R = ceil(max(width, height)/2) + 1. Any candidate beyond that lies outside
// the canvas, so a rectangle that has not found room by then never will.
func CandidateCap(width, height float64) int {
	r := math.Ceil(max(width, height, 0)/2) + 1
	side := 2*r + 1
	if !(side*side < math.MaxInt) {
		return math.MaxInt
	}
	return int(side * side)
}

// Place searches the spiral for the first in-bounds, non-colliding center for
// r, commits r there and returns the placed rectangle.
//
// It returns a PLACEMENT_EXHAUSTED error when the candidate cap is reached
// without success. The index is left untouched in that case.
func (p *Placer) Place(r geom.Rect) (geom.Rect, error) {
	if r.Width() > p.width || r.Height() > p.height {
		return geom.Rect{}, errors.New(errors.ErrCodePlacementExhausted,
			"%.1fx%.1f does not fit a %.1fx%.1f canvas", r.Width(), r.Height(), p.width, p.height)
	}

	size := geom.Vec(r.Width(), r.Height())
	s := p.start(size)
	from := s.Emitted()
	defer func() { p.candidates += s.Emitted() - from }()

	for s.Emitted() < p.maxCandidates {
		before := *s
		candidate := r.Place(s.Next())
		if !candidate.Within(p.width, p.height) {
			p.skip(s, p.outsideRun(s, candidate))
			continue
		}
		if hit, ok := p.index.Hit(candidate); ok {
			p.skip(s, collidingRun(s, candidate, p.index.At(hit)))
			continue
		}
		p.index.Add(candidate)
		p.remember(size, before)
		return candidate, nil
	}

	p.remember(size, *s)
	return geom.Rect{}, errors.New(errors.ErrCodePlacementExhausted,
		"no free position after %d candidates", s.Emitted())
}

// start returns the spiral to search from: the furthest recorded state of
// any size no larger than size on either axis, or a fresh spiral.
func (p *Placer) start(size geom.Vector2) *Spiral {
	s := NewSpiral(p.center)
	if !p.shortcuts {
		return s
	}
	for dims, snap := range p.resume {
		if dims.X <= size.X && dims.Y <= size.Y && snap.Emitted() > s.Emitted() {
			*s = snap
		}
	}
	return s
}

func (p *Placer) remember(size geom.Vector2, s Spiral) {
	if !p.shortcuts {
		return
	}
	if old, ok := p.resume[size]; !ok || s.Emitted() > old.Emitted() {
		p.resume[size] = s
	}
}

// skip drops the next n points of the current run, staying within the cap.
func (p *Placer) skip(s *Spiral, n int) {
	if !p.shortcuts {
		return
	}
	s.Skip(min(n, p.maxCandidates-s.Emitted()))
}

// outsideRun returns how many of the following points on the current run
// are certainly out of bounds as well. r is the out-of-bounds candidate.
func (p *Placer) outsideRun(s *Spiral, r geom.Rect) int {
	d := s.Direction()
	okX := r.Min.X >= 0 && r.Max.X <= p.width
	okY := r.Min.Y >= 0 && r.Max.Y <= p.height

	switch {
	case d.X != 0 && !okY, d.Y != 0 && !okX:
		// The fixed coordinate is out of range for the whole run.
		return s.Remaining()
	case d.X > 0 && r.Min.X < 0:
		return gap(-r.Min.X)
	case d.X < 0 && r.Max.X > p.width:
		return gap(r.Max.X - p.width)
	case d.Y > 0 && r.Min.Y < 0:
		return gap(-r.Min.Y)
	case d.Y < 0 && r.Max.Y > p.height:
		return gap(r.Max.Y - p.height)
	default:
		// Moving away from the canvas.
		return s.Remaining()
	}
}

// collidingRun returns how many of the following points on the current run
// still overlap o. r is the candidate that hit o; the run keeps r's extent
// on the other axis, so only the axis of travel can separate them.
func collidingRun(s *Spiral, r, o geom.Rect) int {
	var overlap float64
	switch d := s.Direction(); {
	case d.X > 0:
		overlap = o.Max.X - r.Min.X
	case d.X < 0:
		overlap = r.Max.X - o.Min.X
	case d.Y > 0:
		overlap = o.Max.Y - r.Min.Y
	default:
		overlap = r.Max.Y - o.Min.Y
	}
	return max(int(math.Floor(overlap))-1, 0)
}

// gap returns how many unit steps certainly stay short of a boundary dist
// away. It keeps a one-step margin for rounding.
func gap(dist float64) int {
	return max(int(math.Ceil(dist))-2, 0)
}

// Index returns the collision index holding every committed rectangle.
func (p *Placer) Index() *Index { return p.index }

// Candidates returns the total number of spiral points covered so far,
// skipped ones included.
func (p *Placer) Candidates() int { return p.candidates }

// MaxCandidates returns the per-rectangle candidate cap in effect.
func (p *Placer) MaxCandidates() int { return p.maxCandidates }
