// Package minimize selects (w,k)-minimizers from symbol sequences.
//
// A window covers w consecutive symbols and therefore w-k+1 overlapping
// k-mers. Every k-mer whose hash equals the smallest hash in some window is
// a minimizer. Results are unique and sorted by hash, then position.
package minimize

import (
	"cmp"
	"slices"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// MaxPackedK is the longest k-mer [KmerHash] can pack without collisions.
const MaxPackedK = 32

// HashFunc maps a k-mer to its ordering key.
type HashFunc func(kmer seqgraph.Sequence) uint64

// Minimizer is a selected k-mer: its hash and its start position.
type Minimizer struct {
	Hash uint64
	Pos  int
}

// KmerHash packs each symbol into two bits, first symbol most significant.
// Symbols above 3 are folded into the low two bits.
func KmerHash(kmer seqgraph.Sequence) uint64 {
	var h uint64
	for _, s := range kmer {
		h = h<<2 | uint64(s&3)
	}
	return h
}

// Minimize returns a function extracting the minimizers of a sequence.
// A nil hash selects [KmerHash], which requires k <= [MaxPackedK].
//
// Sequences shorter than w form a single window; sequences shorter than k
// have no minimizers.
func Minimize(k, w int, hash HashFunc) (func(seqgraph.Sequence) []Minimizer, error) {
	if k < 1 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "k must be positive, got %d", k)
	}
	if w < k {
		return nil, errs.New(errs.ErrCodeInvalidInput, "window %d shorter than k-mer length %d", w, k)
	}
	if hash == nil {
		if k > MaxPackedK {
			return nil, errs.New(errs.ErrCodeInvalidInput, "k=%d exceeds packed hash limit %d", k, MaxPackedK)
		}
		hash = KmerHash
	}
	span := w - k + 1
	return func(seq seqgraph.Sequence) []Minimizer {
		return scan(seq, k, span, hash)
	}, nil
}

// scan slides a window of span k-mers along seq. The current minimum and the
// number of its occurrences inside the window are maintained incrementally;
// the window is rescanned only when the last occurrence slides out.
func scan(seq seqgraph.Sequence, k, span int, hash HashFunc) []Minimizer {
	n := len(seq) - k + 1
	if n <= 0 {
		return nil
	}
	hashes := make([]uint64, n)
	for i := range hashes {
		hashes[i] = hash(seq[i : i+k])
	}
	span = min(span, n)

	var out []Minimizer
	cur, count := rescan(hashes, 0, span, &out)
	for i := span; i < n; i++ {
		if hashes[i-span] == cur {
			count--
		}
		switch h := hashes[i]; {
		case h < cur:
			cur, count = h, 1
			out = append(out, Minimizer{Hash: h, Pos: i})
		case h == cur:
			count++
			out = append(out, Minimizer{Hash: h, Pos: i})
		case count == 0:
			cur, count = rescan(hashes, i-span+1, i+1, &out)
		}
	}

	slices.SortFunc(out, func(a, b Minimizer) int {
		if c := cmp.Compare(a.Hash, b.Hash); c != 0 {
			return c
		}
		return cmp.Compare(a.Pos, b.Pos)
	})
	return slices.Compact(out)
}

// rescan appends every minimum of hashes[lo:hi] and returns the minimum and
// its multiplicity.
func rescan(hashes []uint64, lo, hi int, out *[]Minimizer) (uint64, int) {
	m := slices.Min(hashes[lo:hi])
	count := 0
	for i := lo; i < hi; i++ {
		if hashes[i] == m {
			*out = append(*out, Minimizer{Hash: m, Pos: i})
			count++
		}
	}
	return m, count
}
