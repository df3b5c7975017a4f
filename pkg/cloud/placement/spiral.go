package placement

import (
	"math"

	"github.com/matzehuels/wordgraph/pkg/geom"
)

// step is the lattice spacing between consecutive spiral points.
const step = 1.0

// directions cycles East, South, West, North. y grows upward, so South is -y.
var directions = [4]geom.Vector2{
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
}

// Spiral enumerates integer-lattice points on an outward square spiral.
//
// The first point is the center itself. After that the spiral walks `steps`
// points in the current direction, turns clockwise, and grows `steps` by one
// after every second turn (E1 S1 W2 N2 E3 S3 ...). Each ring is visited once
// and the Chebyshev distance from the center never decreases.
//
// The sequence is infinite; callers bound it. A Spiral is not safe for
// concurrent use and is meant to be created fresh for every rectangle.
type Spiral struct {
	center  geom.Vector2
	point   geom.Vector2
	dir     int
	steps   int
	run     int // points emitted in the current direction
	turns   int // turns since steps last grew
	started bool
	emitted int
}

// NewSpiral returns a spiral centered on the lattice point nearest below c.
func NewSpiral(c geom.Vector2) *Spiral {
	c = geom.Vec(math.Floor(c.X), math.Floor(c.Y))
	return &Spiral{center: c, point: c, steps: 1}
}

// Next returns the next candidate point.
func (s *Spiral) Next() geom.Vector2 {
	s.emitted++
	if !s.started {
		s.started = true
		return s.point
	}
	if s.run == s.steps {
		s.run = 0
		s.dir = (s.dir + 1) % len(directions)
		s.turns++
		if s.turns == 2 {
			s.turns = 0
			s.steps++
		}
	}
	s.point = s.point.Add(directions[s.dir].Scale(step))
	s.run++
	return s.point
}

// Remaining returns how many points the spiral will still emit in its
// current direction before turning.
func (s *Spiral) Remaining() int {
	if !s.started {
		return 0
	}
	return s.steps - s.run
}

// Direction returns the unit step of the current run.
func (s *Spiral) Direction() geom.Vector2 { return directions[s.dir] }

// Skip advances past the next n points of the current run without returning
// them. n is clamped to [0, Remaining()].
func (s *Spiral) Skip(n int) {
	n = min(max(n, 0), s.Remaining())
	if n == 0 {
		return
	}
	s.point = s.point.Add(directions[s.dir].Scale(float64(n) * step))
	s.run += n
	s.emitted += n
}

// Center returns the lattice point the spiral started from.
func (s *Spiral) Center() geom.Vector2 { return s.center }

// Emitted returns how many points Next has produced.
func (s *Spiral) Emitted() int { return s.emitted }

// Ring returns the Chebyshev distance of the last emitted point from the
// center, in lattice steps.
func (s *Spiral) Ring() int {
	d := s.point.Sub(s.center)
	return int(max(math.Abs(d.X), math.Abs(d.Y)) / step)
}
