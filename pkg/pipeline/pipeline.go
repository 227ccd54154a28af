// Package pipeline grows a sequence graph by aligning sequences to it.
//
// Each round aligns one sequence to the current graph and then augments the
// graph so that it also spells the new sequence:
//
//  1. Align: global affine-gap alignment of the sequence against the graph.
//  2. Augment: the alignment's mismatch columns become SNP siblings, gap runs
//     on the sequence side become deletion skip edges, and gap runs on the
//     graph side become insertion branches.
//  3. Linearize: the edited builder is converted back to compact form.
//
// Alignments and finished graphs are cached by content hash. Identical
// alignments requested concurrently are computed once.
//
// # Usage
//
//	aligner, _ := align.New(align.DefaultScoring())
//	runner := pipeline.NewRunner(cache.NewNullCache(), aligner, logger)
//	g, err := runner.Build(ctx, []seqgraph.Sequence{ref, alt1, alt2})
//	if err != nil {
//	    return err
//	}
//
// The graph returned by Build contains every input as a source-to-sink path,
// so each input aligns to it with a perfect score.
package pipeline

import (
	"slices"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// ValidateSequences rejects an empty input list and empty sequences.
func ValidateSequences(seqs []seqgraph.Sequence) error {
	if len(seqs) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "no sequences")
	}
	if k := slices.IndexFunc(seqs, func(s seqgraph.Sequence) bool { return len(s) == 0 }); k >= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "sequence %d is empty", k)
	}
	return nil
}

// sequenceBytes returns the raw symbol codes of seq for hashing.
func sequenceBytes(seq seqgraph.Sequence) []byte {
	out := make([]byte, len(seq))
	for i, s := range seq {
		out[i] = byte(s)
	}
	return out
}
