// Package pkg provides the core libraries for graphalign.
//
// # Overview
//
// graphalign represents collections of related sequences as sequence graphs:
// directed acyclic graphs whose nodes hold runs of symbols, so that every
// source-to-sink path spells one sequence. The pkg directory is organized
// into these areas:
//
//  1. [seqgraph] - Compact graph model, alphabets, positions and alignments
//  2. [builder] - Mutable graph arena: edits, merges and linearization
//  3. [align] - Affine-gap global alignment between graphs
//  4. [pipeline] - Progressive graph construction with caching
//  5. [minimize], [io], [render] - Minimizers, interchange formats, drawing
//  6. [cache], [config], [observability], [errors] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through graphalign:
//
//	FASTA / literal sequences
//	         ↓
//	    [align] package (align each sequence to the current graph)
//	         ↓
//	    [builder] package (SNPs, insertions, deletions, merges)
//	         ↓
//	    [seqgraph] package (compact, topologically ordered graph)
//	         ↓
//	    JSON / DOT / SVG output
//
// # Quick Start
//
//	aligner, _ := align.New(align.DefaultScoring())
//	runner := pipeline.NewRunner(cache.NewNullCache(), aligner, nil)
//	g, err := runner.Build(ctx, []seqgraph.Sequence{
//	    seqgraph.MustEncode("ACGTACGT"),
//	    seqgraph.MustEncode("ACGAACGT"),
//	})
//	if err != nil {
//	    return err
//	}
//	svg, _ := render.RenderSVG(ctx, render.ToDOT(g, render.Options{}))
//
// [seqgraph]: github.com/matzehuels/graphalign/pkg/seqgraph
// [builder]: github.com/matzehuels/graphalign/pkg/builder
// [align]: github.com/matzehuels/graphalign/pkg/align
// [pipeline]: github.com/matzehuels/graphalign/pkg/pipeline
// [minimize]: github.com/matzehuels/graphalign/pkg/minimize
// [io]: github.com/matzehuels/graphalign/pkg/io
// [render]: github.com/matzehuels/graphalign/pkg/render
// [cache]: github.com/matzehuels/graphalign/pkg/cache
// [config]: github.com/matzehuels/graphalign/pkg/config
// [observability]: github.com/matzehuels/graphalign/pkg/observability
// [errors]: github.com/matzehuels/graphalign/pkg/errors
package pkg
