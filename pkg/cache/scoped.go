package cache

// ScopedKeyer wraps a Keyer with a prefix so several projects can share one
// backend, typically a Redis instance, without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:chr21:")
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

// AlignKey generates a prefixed alignment key.
func (k *ScopedKeyer) AlignKey(graphHash, queryHash string, opts AlignKeyOpts) string {
	return k.prefix + k.inner.AlignKey(graphHash, queryHash, opts)
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(inputHashes []string, opts AlignKeyOpts) string {
	return k.prefix + k.inner.GraphKey(inputHashes, opts)
}
