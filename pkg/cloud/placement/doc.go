// Package placement resolves non-overlapping positions for tag cloud words.
//
// # Overview
//
// Rectangles are placed one at a time, in the order the caller supplies
// (largest first for a tag cloud). For each rectangle a fresh [Spiral] walks
// outward from the canvas center over integer lattice points. A candidate is
// rejected when the rectangle centered there would leave the canvas, or when
// it intersects a rectangle already committed to the [Index]. The first
// accepted candidate is committed and never moved again.
//
// # Termination
//
// The canvas size is usually an estimate, so a rectangle may find no room.
// Every search is capped by [CandidateCap]: once the spiral has covered the
// whole canvas the rectangle is reported as exhausted with a
// PLACEMENT_EXHAUSTED error and the caller moves on. [WithMaxCandidates]
// tightens the cap further.
//
// # Determinism and cost
//
// No randomness is involved: the same rectangles in the same order on the
// same canvas always land at the same coordinates.
//
// The search never tests a point whose rejection is already known. When a
// candidate leaves the canvas or hits a committed rectangle, the points of
// the current spiral run that would fail the same way are skipped. A search
// also resumes where the last search for a rectangle no larger on either
// axis stopped, because every point before that still rejects it. Collision
// queries only visit the rectangles bucketed in the grid cells they cover.
// None of this changes a placement (compare [WithoutShortcuts]). The cost of
// a search follows the number of rectangles it crosses, not the canvas area.
//
// # Usage
//
//	p := placement.New(canvasW, canvasH, len(rects))
//	for _, r := range rects {
//	    placed, err := p.Place(r)
//	    if err != nil {
//	        // r did not fit; record it and continue
//	        continue
//	    }
//	    use(placed)
//	}
package placement
