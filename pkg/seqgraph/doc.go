// Package seqgraph defines the data model shared by the graph builder and the
// alignment engine: symbols, sequences, positions, intervals, alignments and
// the compact sequence graph.
//
// # Sequence Graphs
//
// A sequence graph is a directed acyclic graph whose nodes carry runs of
// symbols. Every path through the graph spells a valid sequence, so a single
// graph represents a reference plus its known variation: substitutions are
// parallel single-symbol branches, insertions are extra branches, deletions
// are skip edges.
//
// # Compact Form
//
// [Graph] is the immutable, aligner-facing representation. All node symbols
// are concatenated into one flat [Sequence]; Offsets[i] is the index of node
// i's first symbol. Nodes are numbered densely in topological order, so every
// edge satisfies from < to:
//
//	g, err := seqgraph.New(symbols, []int{0, 3, 4, 5}, [][]int{{1, 2}, {3}, {3}, nil})
//
// The mutable, id-addressed form lives in the builder package, which converts
// to [Graph] by linearization.
//
// # Predecessors
//
// The alignment engine walks flat symbol positions. [Predecessors] resolves
// the positions that may immediately precede a given one: the previous symbol
// inside a node, or the last symbol of every predecessor node at a node start.
// It is a pure function of the graph and the position.
//
// # Symbols
//
// Symbols are small integers indexing an [Alphabet]. [DNA] maps A, C, G and T
// to 0..3. [Gap] is reserved for alignments and never appears in a graph.
package seqgraph
