package cache

// Keyer builds cache keys.
type Keyer interface {
	// SearchKey identifies the search result of a graph.
	SearchKey(graphHash string, opts SearchKeyOpts) string
}

// SearchKeyOpts are the search inputs that change the result.
type SearchKeyOpts struct {
	Trials int
	Seed   uint64
}

// DefaultKeyer produces "search:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SearchKey hashes the graph hash together with opts.
func (DefaultKeyer) SearchKey(graphHash string, opts SearchKeyOpts) string {
	return hashKey("search", searchParts(graphHash, opts)...)
}
