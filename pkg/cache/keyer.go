package cache

import "strconv"

// Keyer builds cache keys. Implementations must return the same key for the
// same inputs across processes.
type Keyer interface {
	// AlignKey addresses the alignment of two inputs identified by content
	// hash under a scoring scheme.
	AlignKey(graphHash, queryHash string, opts AlignKeyOpts) string

	// GraphKey addresses a graph built from an ordered set of inputs.
	GraphKey(inputHashes []string, opts AlignKeyOpts) string
}

// AlignKeyOpts holds the scoring parameters that change an alignment result.
type AlignKeyOpts struct {
	Match     int    `json:"match"`
	Mismatch  int    `json:"mismatch"`
	GapOpen   int    `json:"gap_open"`
	GapExtend int    `json:"gap_extend"`
	Alphabet  string `json:"alphabet"`
}

// DefaultKeyer produces "align:<hash>" and "graph:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AlignKey implements [Keyer].
func (DefaultKeyer) AlignKey(graphHash, queryHash string, opts AlignKeyOpts) string {
	return hashKey("align", graphHash, queryHash, opts)
}

// GraphKey implements [Keyer].
func (DefaultKeyer) GraphKey(inputHashes []string, opts AlignKeyOpts) string {
	return hashKey("graph", strconv.Itoa(len(inputHashes)), inputHashes, opts)
}
