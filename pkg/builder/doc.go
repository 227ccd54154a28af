// Package builder edits sequence graphs at symbol granularity.
//
// # Overview
//
// A [Builder] owns a mutable graph whose nodes are addressed by integer
// [seqgraph.NodeID] values. Nodes live in an arena: ids are handed out from a
// monotonically increasing watermark and are never reused, even after
// [Builder.RemoveNode]. Every node keeps both its successor and predecessor
// lists, and both lists are only ever changed together, so the two views of
// the adjacency always agree.
//
// # Editing
//
// [Builder.SplitNode] is the universal positional primitive: the node keeps
// its id and its first symbols, a fresh node takes the remainder and inherits
// every outgoing edge. The composite edits are built on top of it:
//
//   - [Builder.AddSNP] adds a single-symbol sibling next to the original symbol
//   - [Builder.AddInsertion] adds an alternate branch carrying new symbols
//   - [Builder.AddDeletion] adds a skip edge around an interval
//
// None of the edits remove original symbols: variation is always expressed as
// an additional path.
//
//	b := builder.New()
//	ref := b.AddNode(seqgraph.MustEncode("ACGTTGCA"))
//	next, err := b.AddSNP(seqgraph.Position{Node: ref, Offset: 3}, 2)
//
// # Merging
//
// A [Merger] fuses two intervals known to represent the same region. Both
// intervals are split at the union of their boundaries, then node pairs are
// merged; differing symbols survive as substitution branches. [MergeGraphs]
// applies this to whole compact graphs.
//
// # Linearization
//
// [Builder.ToSequenceGraph] converts to the compact [seqgraph.Graph] consumed
// by the aligner. Nodes are ordered topologically, ties broken by ascending
// id. [AlignmentToSequenceGraph] goes the other way, turning a pairwise
// alignment into a small graph.
//
// # Failures
//
// Invalid arguments are returned as errors from pkg/errors. Broken internal
// invariants (a mirror mismatch, merging nodes of different lengths) panic;
// a builder that panicked must be discarded.
//
// # Concurrency
//
// A Builder is a single-writer structure and is not safe for concurrent use.
package builder
