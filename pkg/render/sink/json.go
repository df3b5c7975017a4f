package sink

import (
	wio "github.com/matzehuels/wordgraph/pkg/io"
)

// RenderJSON serializes the layout as pretty-printed JSON. The output can be
// read back with io.UnmarshalLayout and rendered again in any format.
func RenderJSON(l wio.Layout) ([]byte, error) {
	return wio.MarshalLayout(l)
}
