package seqgraph

import (
	errs "github.com/matzehuels/graphalign/pkg/errors"
)

// Alignment is a pair of equal-length gapped sequences. Column k pairs A[k]
// with B[k]; [Gap] marks the side that consumed nothing.
type Alignment struct {
	A Sequence
	B Sequence
}

// Len returns the number of columns.
func (a Alignment) Len() int { return len(a.A) }

// Validate rejects unequal row lengths and all-gap columns.
func (a Alignment) Validate() error {
	if len(a.A) != len(a.B) {
		return errs.New(errs.ErrCodeInvalidInput, "alignment rows differ in length: %d and %d", len(a.A), len(a.B))
	}
	for k := range a.A {
		if a.A[k] == Gap && a.B[k] == Gap {
			return errs.New(errs.ErrCodeInvalidInput, "alignment column %d is gap on both sides", k)
		}
	}
	return nil
}

// Ungapped returns the two input sequences with gaps removed.
func (a Alignment) Ungapped() (Sequence, Sequence) {
	return stripGaps(a.A), stripGaps(a.B)
}

// Render prints both rows with the given alphabet, one per line.
func (a Alignment) Render(alpha *Alphabet) string {
	return alpha.Decode(a.A) + "\n" + alpha.Decode(a.B)
}

// String renders the alignment with the [DNA] alphabet.
func (a Alignment) String() string { return a.Render(DNA) }

func stripGaps(seq Sequence) Sequence {
	out := make(Sequence, 0, len(seq))
	for _, s := range seq {
		if s != Gap {
			out = append(out, s)
		}
	}
	return out
}
