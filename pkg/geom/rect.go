package geom

// Rect is an axis-aligned rectangle with fixed half-extents.
//
// The size is fixed at construction; Place moves the rectangle by recomputing
// its corners around a new center. A zero Rect sits at the origin.
type Rect struct {
	half   Vector2
	Center Vector2
	Min    Vector2 // bottom-left corner
	Max    Vector2 // top-right corner
}

// NewRect returns a width x height rectangle centered at the origin.
// Negative dimensions are clamped to zero.
func NewRect(width, height float64) Rect {
	r := Rect{half: Vector2{max(width, 0) / 2, max(height, 0) / 2}}
	return r.Place(Vector2{})
}

// Place returns a copy of r centered at c, with Min and Max recomputed from
// c ± the half-extents.
func (r Rect) Place(c Vector2) Rect {
	r.Center = c
	r.Min = c.Sub(r.half)
	r.Max = c.Add(r.half)
	return r
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return 2 * r.half.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return 2 * r.half.Y }

// HalfExtents returns half the width and half the height.
func (r Rect) HalfExtents() Vector2 { return r.half }

// Area returns width × height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Corners returns bottom-left, bottom-right, top-right and top-left, in that
// order.
func (r Rect) Corners() [4]Vector2 {
	return [4]Vector2{
		r.Min,
		{r.Max.X, r.Min.Y},
		r.Max,
		{r.Min.X, r.Max.Y},
	}
}

// Intersects reports whether r and o overlap. Bounds are inclusive: two
// rectangles that only share an edge or a corner intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Max.X >= o.Min.X && r.Min.X <= o.Max.X &&
		r.Max.Y >= o.Min.Y && r.Min.Y <= o.Max.Y
}

// Within reports whether r lies entirely inside [0, width] × [0, height].
func (r Rect) Within(width, height float64) bool {
	return r.Min.X >= 0 && r.Min.Y >= 0 && r.Max.X <= width && r.Max.Y <= height
}

// FitsAt reports whether r centered at c would lie inside
// [0, width] × [0, height], without moving r.
func (r Rect) FitsAt(c Vector2, width, height float64) bool {
	return c.X-r.half.X >= 0 && c.Y-r.half.Y >= 0 &&
		c.X+r.half.X <= width && c.Y+r.half.Y <= height
}
