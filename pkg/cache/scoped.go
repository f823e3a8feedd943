package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects or tool
// versions can share one backend (typically Redis) without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "testgraph:v1:")
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

// GraphKey generates a prefixed key for similarity graph outputs.
func (k *ScopedKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(inputHash, opts)
}

// TreeKey generates a prefixed key for journey tree outputs.
func (k *ScopedKeyer) TreeKey(inputHash string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(inputHash, opts)
}
