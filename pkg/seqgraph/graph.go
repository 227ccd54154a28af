package seqgraph

import (
	"slices"

	errs "github.com/matzehuels/graphalign/pkg/errors"
)

// Graph is the compact, immutable form of a sequence graph.
//
// Node i spells Symbols[Offsets[i]:Offsets[i+1]] (the last node runs to the
// end of Symbols). Adj[i] lists the successors of node i in ascending order
// and every successor is greater than i, so node order is topological.
//
// The zero value is the empty graph. Graphs built with [New] or [Naive] carry
// a reverse adjacency index; do not modify the exported fields afterwards.
type Graph struct {
	Symbols Sequence
	Offsets []int
	Adj     [][]int

	radj [][]int
}

// New validates the parts of a compact graph and builds its reverse index.
//
// Offsets must start at 0, increase strictly and stay below len(symbols), so
// every node is non-empty. Adj may be shorter than the node count; missing
// entries mean no successors. Every edge must satisfy from < to < nodes and
// appear once.
func New(symbols Sequence, offsets []int, adj [][]int) (*Graph, error) {
	n := len(offsets)
	if n == 0 {
		if len(symbols) != 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "%d symbols but no nodes", len(symbols))
		}
		if len(adj) != 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "adjacency for an empty graph")
		}
		return &Graph{}, nil
	}
	if offsets[0] != 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "first offset is %d, want 0", offsets[0])
	}
	for i := 1; i < n; i++ {
		if offsets[i] <= offsets[i-1] {
			return nil, errs.New(errs.ErrCodeInvalidInput, "offsets not strictly increasing at node %d", i)
		}
	}
	if offsets[n-1] >= len(symbols) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "last node starts at %d past %d symbols", offsets[n-1], len(symbols))
	}
	if len(adj) > n {
		return nil, errs.New(errs.ErrCodeInvalidInput, "adjacency for %d nodes, graph has %d", len(adj), n)
	}

	g := &Graph{
		Symbols: symbols,
		Offsets: offsets,
		Adj:     make([][]int, n),
		radj:    make([][]int, n),
	}
	for from, succs := range adj {
		if len(succs) == 0 {
			continue
		}
		sorted := slices.Clone(succs)
		slices.Sort(sorted)
		for k, to := range sorted {
			if to <= from || to >= n {
				return nil, errs.New(errs.ErrCodeInvalidInput, "edge %d->%d violates node order", from, to)
			}
			if k > 0 && sorted[k-1] == to {
				return nil, errs.New(errs.ErrCodeInvalidInput, "duplicate edge %d->%d", from, to)
			}
			g.radj[to] = append(g.radj[to], from)
		}
		g.Adj[from] = sorted
	}
	return g, nil
}

// Naive returns the trivial linear graph spelling seq: one node, or no node
// for an empty sequence.
func Naive(seq Sequence) *Graph {
	if len(seq) == 0 {
		return &Graph{}
	}
	return &Graph{
		Symbols: seq,
		Offsets: []int{0},
		Adj:     [][]int{nil},
		radj:    [][]int{nil},
	}
}

// Len returns the total number of symbols.
func (g *Graph) Len() int { return len(g.Symbols) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Offsets) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, succs := range g.Adj {
		count += len(succs)
	}
	return count
}

// NodeStart returns the flat index of node i's first symbol.
func (g *Graph) NodeStart(i int) int { return g.Offsets[i] }

// NodeEnd returns the flat index one past node i's last symbol.
func (g *Graph) NodeEnd(i int) int {
	if i+1 < len(g.Offsets) {
		return g.Offsets[i+1]
	}
	return len(g.Symbols)
}

// NodeLen returns the symbol count of node i.
func (g *Graph) NodeLen(i int) int { return g.NodeEnd(i) - g.NodeStart(i) }

// NodeSequence returns node i's symbols. The slice aliases the graph.
func (g *Graph) NodeSequence(i int) Sequence { return g.Symbols[g.NodeStart(i):g.NodeEnd(i)] }

// Successors returns the successors of node i in ascending order.
func (g *Graph) Successors(i int) []int { return g.Adj[i] }

// PredecessorNodes returns the predecessors of node i in ascending order.
func (g *Graph) PredecessorNodes(i int) []int { return g.radj[i] }

// NodeAt returns the node containing flat position pos.
func (g *Graph) NodeAt(pos int) int {
	i, found := slices.BinarySearch(g.Offsets, pos)
	if found {
		return i
	}
	return i - 1
}

// Sources returns the nodes without predecessors.
func (g *Graph) Sources() []int {
	var out []int
	for i := range g.Offsets {
		if len(g.radj[i]) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Sinks returns the nodes without successors.
func (g *Graph) Sinks() []int {
	var out []int
	for i := range g.Offsets {
		if len(g.Adj[i]) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// IsLinear reports whether the graph is a single chain 0 -> 1 -> ... -> n-1,
// i.e. it spells exactly one sequence.
func (g *Graph) IsLinear() bool {
	for i, succs := range g.Adj {
		if i == len(g.Adj)-1 {
			if len(succs) != 0 {
				return false
			}
			continue
		}
		if len(succs) != 1 || succs[0] != i+1 {
			return false
		}
	}
	return true
}

// Spell concatenates the symbols of the given node path. It does not check
// that consecutive nodes are connected; see [Graph.IsPath].
func (g *Graph) Spell(path []int) Sequence {
	var out Sequence
	for _, n := range path {
		out = append(out, g.NodeSequence(n)...)
	}
	return out
}

// IsPath reports whether consecutive nodes of path are joined by edges.
func (g *Graph) IsPath(path []int) bool {
	for k := 1; k < len(path); k++ {
		if _, ok := slices.BinarySearch(g.Adj[path[k-1]], path[k]); !ok {
			return false
		}
	}
	return true
}

// Equal reports whether both graphs have identical symbols, offsets and edges.
func (g *Graph) Equal(other *Graph) bool {
	if !g.Symbols.Equal(other.Symbols) || !slices.Equal(g.Offsets, other.Offsets) {
		return false
	}
	for i := range g.Offsets {
		if !slices.Equal(g.Adj[i], other.Adj[i]) {
			return false
		}
	}
	return true
}

// Predecessors returns the flat positions that may immediately precede pos.
// Inside a node the single predecessor is pos-1. At a node start it is the
// last position of every predecessor node, in ascending order. The result is
// nil at the start of a source node.
func Predecessors(g *Graph, pos int) []int {
	node := g.NodeAt(pos)
	if pos > g.Offsets[node] {
		return []int{pos - 1}
	}
	preds := g.radj[node]
	if len(preds) == 0 {
		return nil
	}
	out := make([]int, len(preds))
	for k, p := range preds {
		out[k] = g.NodeEnd(p) - 1
	}
	return out
}

// Linear is any aligner input: a plain [Sequence] or a [*Graph].
type Linear interface {
	AsGraph() *Graph
}

// AsGraph returns g itself.
func (g *Graph) AsGraph() *Graph { return g }

// AsGraph wraps the sequence in its trivial linear graph.
func (s Sequence) AsGraph() *Graph { return Naive(s) }
