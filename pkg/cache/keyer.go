package cache

import "github.com/matzehuels/wordgraph/pkg/cloud"

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// CountsKey keys the word counts of a source text by its content hash.
	CountsKey(sourceHash string) string
	// LayoutKey keys a layout by the hash of its counts and the options.
	LayoutKey(countsHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered output by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the counts that affects a layout.
type LayoutKeyOpts struct {
	Font   string       `json:"font"`
	Config cloud.Config `json:"config"`
}

// ArtifactKeyOpts holds everything besides the layout that affects an
// artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Style     string  `json:"style,omitempty"`
	Font      string  `json:"font,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Flow      bool    `json:"flow,omitempty"`
	Seed      uint64  `json:"seed,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Boxes     bool    `json:"boxes,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// DefaultKeyer produces keys of the form "stage:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CountsKey implements Keyer.
func (DefaultKeyer) CountsKey(sourceHash string) string {
	return hashKey("counts", sourceHash)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(countsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", countsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
