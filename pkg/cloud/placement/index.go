package placement

import (
	"math"

	"github.com/matzehuels/wordgraph/pkg/geom"
)

// cellSize is the edge length of the uniform grid buckets, in canvas units.
const cellSize = 32.0

type cell struct{ x, y int }

// Index holds the rectangles committed during one placement pass, in
// placement order. It has a single writer: the placer that owns it.
//
// Rectangles are bucketed in a uniform grid, so a query only tests the
// rectangles registered in the cells it covers. Two rectangles that
// intersect share at least one point and therefore at least one cell.
//
// Collides first re-tests the rectangle that rejected the previous query.
// Consecutive spiral candidates are one pixel apart, so the same neighbour
// usually rejects them again. The hint only changes how many rectangles are
// scanned, never the answer; it can be turned off with SetHint(false).
type Index struct {
	rects  []geom.Rect
	cells  map[cell][]int
	stamp  []int // query that last tested rect i
	query  int
	last   int
	hint   bool
	checks int
}

// NewIndex returns an empty index with room for capacity rectangles.
func NewIndex(capacity int) *Index {
	capacity = max(capacity, 0)
	return &Index{
		rects: make([]geom.Rect, 0, capacity),
		cells: make(map[cell][]int),
		stamp: make([]int, 0, capacity),
		last:  -1,
		hint:  true,
	}
}

// SetHint enables or disables the last-collision shortcut.
func (ix *Index) SetHint(enabled bool) {
	ix.hint = enabled
	ix.last = -1
}

// Add commits r and returns its placement index.
func (ix *Index) Add(r geom.Rect) int {
	i := len(ix.rects)
	ix.rects = append(ix.rects, r)
	ix.stamp = append(ix.stamp, 0)

	x0, y0, x1, y1 := cellRange(r)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			k := cell{cx, cy}
			ix.cells[k] = append(ix.cells[k], i)
		}
	}
	return i
}

// Collides reports whether r intersects any committed rectangle.
func (ix *Index) Collides(r geom.Rect) bool {
	_, ok := ix.Hit(r)
	return ok
}

// Hit returns the index of a committed rectangle that intersects r. Which
// one is reported when several do is unspecified.
func (ix *Index) Hit(r geom.Rect) (int, bool) {
	if ix.hint && ix.last >= 0 {
		ix.checks++
		if ix.rects[ix.last].Intersects(r) {
			return ix.last, true
		}
	}

	ix.query++
	x0, y0, x1, y1 := cellRange(r)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			for _, i := range ix.cells[cell{cx, cy}] {
				if ix.stamp[i] == ix.query || (ix.hint && i == ix.last) {
					continue
				}
				ix.stamp[i] = ix.query
				ix.checks++
				if ix.rects[i].Intersects(r) {
					if ix.hint {
						ix.last = i
					}
					return i, true
				}
			}
		}
	}
	return -1, false
}

// Len returns the number of committed rectangles.
func (ix *Index) Len() int { return len(ix.rects) }

// At returns the i-th committed rectangle.
func (ix *Index) At(i int) geom.Rect { return ix.rects[i] }

// Rects returns a copy of the committed rectangles in placement order.
func (ix *Index) Rects() []geom.Rect {
	out := make([]geom.Rect, len(ix.rects))
	copy(out, ix.rects)
	return out
}

// Checks returns the number of pairwise intersection tests performed so far.
func (ix *Index) Checks() int { return ix.checks }

func cellRange(r geom.Rect) (x0, y0, x1, y1 int) {
	return cellOf(r.Min.X), cellOf(r.Min.Y), cellOf(r.Max.X), cellOf(r.Max.Y)
}

func cellOf(v float64) int { return int(math.Floor(v / cellSize)) }
