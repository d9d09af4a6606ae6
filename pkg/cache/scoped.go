package cache

// ScopedKeyer wraps a Keyer with a prefix so several benchmark setups can
// share one Redis instance without seeing each other's results.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "chromabench:")
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

// SearchKey generates a prefixed key for search result caching.
func (k *ScopedKeyer) SearchKey(graphHash string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(graphHash, opts)
}
