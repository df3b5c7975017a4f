// Package geom provides the value types used by the tag cloud layout:
// a 2D vector and an axis-aligned rectangle with inclusive collision tests.
//
// All coordinates are in pixels with the origin at the bottom-left corner of
// the canvas and y growing upward. Renderers that draw in a y-down space
// (SVG, HTML, raster images) flip y when they emit output.
package geom

import "math"

// Vector2 is a 2D point or displacement.
type Vector2 struct {
	X, Y float64
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vector2) Scale(s float64) Vector2 { return Vector2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vector2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector2) Normalize() Vector2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vector2{v.X / l, v.Y / l}
}
