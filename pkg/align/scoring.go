package align

import (
	"errors"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

var (
	// ErrEmptyScoring is returned when a Scoring has no alphabet.
	ErrEmptyScoring = errors.New("scoring has no alphabet")
)

// Scoring holds the substitution and affine gap parameters.
//
// A gap of length k costs GapOpen + GapExtend*(k-1). Both gap values are
// expected to be non-positive.
type Scoring struct {
	Match     int
	Mismatch  int
	GapOpen   int
	GapExtend int
	Alphabet  *seqgraph.Alphabet
}

// DefaultScoring returns +1/-1 substitution scores with unit gap costs over
// the DNA alphabet.
func DefaultScoring() Scoring {
	return Scoring{
		Match:     1,
		Mismatch:  -1,
		GapOpen:   -1,
		GapExtend: -1,
		Alphabet:  seqgraph.DNA,
	}
}

// Validate checks that the parameters describe a usable scoring scheme.
func (s Scoring) Validate() error {
	if s.Alphabet == nil || s.Alphabet.Size() == 0 {
		return errs.Wrap(errs.ErrCodeInvalidConfig, ErrEmptyScoring, "invalid scoring")
	}
	if s.GapOpen > 0 || s.GapExtend > 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "gap penalties must not be positive (open=%d extend=%d)", s.GapOpen, s.GapExtend)
	}
	if s.Match < s.Mismatch {
		return errs.New(errs.ErrCodeInvalidConfig, "match score %d below mismatch score %d", s.Match, s.Mismatch)
	}
	return nil
}

// SubstitutionMatrix returns the symmetric score table indexed by symbol.
func (s Scoring) SubstitutionMatrix() [][]int {
	n := s.Alphabet.Size()
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			if i == j {
				m[i][j] = s.Match
			} else {
				m[i][j] = s.Mismatch
			}
		}
	}
	return m
}
