package cache

// ScopedKeyer wraps a Keyer with a prefix, separating cache namespaces that
// share one backend. `wordgraph serve` scopes keys by build version so that
// a rolling deploy never serves layouts from an older algorithm.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.4.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CountsKey generates a prefixed counts key.
func (k *ScopedKeyer) CountsKey(sourceHash string) string {
	return k.prefix + k.inner.CountsKey(sourceHash)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(countsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(countsHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

var _ Keyer = (*ScopedKeyer)(nil)
