// Package io provides JSON import and export for word counts and computed
// tag cloud layouts.
//
// # Counts
//
// Word counts are stored as an ordered JSON array so that the input order,
// which breaks ties between equal counts, survives a round trip:
//
//	[
//	  {"text": "go", "count": 12},
//	  {"text": "layout", "count": 4}
//	]
//
// Use [ReadCounts] / [WriteCounts] for streams and [ReadCountsFile] /
// [WriteCountsFile] for files. Reading validates the counts (non-empty
// tokens, positive counts, no duplicates).
//
// # Layouts
//
// A [Layout] is the serialized form of a [cloud.Result]. Coordinates use the
// layout's own space: the origin is the bottom-left corner of the canvas
// and y grows upward. X and Y of a [Word] are its bottom-left corner.
//
//	{
//	  "width": 640.5,
//	  "height": 380.2,
//	  "aspect_ratio": 1.7778,
//	  "font": "Go Regular",
//	  "words": [
//	    {"text": "go", "count": 12, "bucket": 20, "font_size": 72,
//	     "x": 270.1, "y": 155.0, "width": 86.4, "height": 86.4}
//	  ]
//	}
//
// Build one with [Export], serialize with [MarshalLayout] or
// [WriteLayoutFile], and load with [UnmarshalLayout] or [ReadLayoutFile].
// Renderers in render/sink consume Layout values, so a layout computed once
// can be rendered many times.
//
// [cloud.Result]: github.com/matzehuels/wordgraph/pkg/cloud.Result
package io
