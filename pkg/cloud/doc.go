// Package cloud computes tag cloud layouts: every word is drawn at a size
// proportional to its frequency and placed on a bounded canvas without
// overlapping any other word.
//
// # Pipeline
//
// [Layout] runs four stages:
//
//  1. Normalize: counts are mapped linearly to size buckets 1..MaxBucket and
//     each bucket to a pixel font size between MinFontSize and MaxFontSize.
//     Tokens are sorted by descending count (ties keep input order) and
//     optionally truncated to the NLargest most frequent.
//  2. Measure: a [Measurer] reports each token's width and height at its font
//     size. Measurements are independent and run concurrently.
//  3. Canvas: the canvas is estimated from the total rectangle area and a
//     target aspect ratio, plus padding (see [EstimateCanvas]).
//  4. Place: tokens are placed in order along an outward square spiral from
//     the canvas center (package placement). Larger, more frequent words
//     therefore end up nearer the middle.
//
// # Guarantees
//
// For every [Result]:
//   - no two placed rectangles intersect, touching edges included
//   - every placed rectangle lies within [0, Width] × [0, Height]
//   - tokens were placed in strictly descending count order
//   - bucket and font size never decrease as count increases
//
// The same input and configuration always produce the same coordinates.
//
// # Failures
//
// Empty input, malformed counts and invalid configuration are fatal and
// return an error without a result. A token that finds no room is listed in
// Result.Unplaced; the rest of the layout still completes.
//
// # Usage
//
//	counts := cloud.Counts{{Text: "go", Count: 12}, {Text: "layout", Count: 4}}
//	res, err := cloud.Layout(counts, fonts.Default(), cloud.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for _, p := range res.Placements {
//	    fmt.Println(p.Token.Text, p.Rect.Center)
//	}
package cloud
