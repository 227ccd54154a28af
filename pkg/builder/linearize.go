package builder

import (
	"slices"
	"time"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// ToSequenceGraph converts the builder into the compact form.
//
// Nodes are ordered with Kahn's algorithm; among nodes that are ready at the
// same time the smallest id goes first, so the result is deterministic.
// Sequences are concatenated in that order, offsets are their prefix sums,
// and edges are remapped onto the dense indices. Since every edge points
// forward in a topological order, the result satisfies from < to.
//
// A cycle returns an error wrapping [ErrGraphHasCycle].
func (b *Builder) ToSequenceGraph() (*seqgraph.Graph, error) {
	start := time.Now()
	g, err := b.linearize()
	if err != nil {
		b.hooks.OnLinearize(b.live, b.edges, time.Since(start), err)
		return nil, err
	}
	b.hooks.OnLinearize(g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	b.logger.Debug("linearized graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "symbols", g.Len())
	return g, nil
}

func (b *Builder) linearize() (*seqgraph.Graph, error) {
	order, err := b.topologicalOrder()
	if err != nil {
		return nil, err
	}

	index := make(map[seqgraph.NodeID]int, len(order))
	offsets := make([]int, len(order))
	var symbols seqgraph.Sequence
	for i, id := range order {
		index[id] = i
		offsets[i] = len(symbols)
		symbols = append(symbols, b.slots[id].seq...)
	}
	adj := make([][]int, len(order))
	for i, id := range order {
		for _, to := range b.slots[id].out {
			adj[i] = append(adj[i], index[to])
		}
	}
	g, err := seqgraph.New(symbols, offsets, adj)
	if err != nil {
		// Only reachable if the arena itself is corrupt.
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "linearized graph rejected")
	}
	return g, nil
}

func (b *Builder) topologicalOrder() ([]seqgraph.NodeID, error) {
	inDegree := make(map[seqgraph.NodeID]int, b.live)
	var ready []seqgraph.NodeID
	for _, id := range b.NodeIDs() {
		d := len(b.slots[id].in)
		inDegree[id] = d
		if d == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]seqgraph.NodeID, 0, b.live)
	for len(ready) > 0 {
		curr := ready[0]
		ready = ready[1:]
		order = append(order, curr)
		for _, child := range b.slots[curr].out {
			inDegree[child]--
			if inDegree[child] == 0 {
				i, _ := slices.BinarySearch(ready, child)
				ready = slices.Insert(ready, i, child)
			}
		}
	}
	if len(order) != b.live {
		return nil, errs.Wrap(errs.ErrCodeCycle, ErrGraphHasCycle, "%d of %d nodes ordered", len(order), b.live)
	}
	return order, nil
}

// AddSequenceGraph imports g as a fresh block of ids starting at
// MaxNodeID()+1: dense node i of g becomes id offset+i. The block offset is
// returned so callers can translate references into g.
func (b *Builder) AddSequenceGraph(g *seqgraph.Graph) seqgraph.NodeID {
	offset := b.maxID + 1
	for i := range g.NodeCount() {
		b.place(offset+seqgraph.NodeID(i), g.NodeSequence(i).Clone())
	}
	for i := range g.NodeCount() {
		for _, to := range g.Successors(i) {
			b.link(offset+seqgraph.NodeID(i), offset+seqgraph.NodeID(to))
		}
	}
	b.logger.Debug("imported graph", "offset", offset, "nodes", g.NodeCount())
	return offset
}

// Clone returns an independent copy sharing the logger and hooks.
func (b *Builder) Clone() *Builder {
	c := &Builder{
		slots:  make([]slot, len(b.slots)),
		maxID:  b.maxID,
		live:   b.live,
		edges:  b.edges,
		logger: b.logger,
		hooks:  b.hooks,
	}
	for i, s := range b.slots {
		c.slots[i] = slot{
			state: s.state,
			seq:   s.seq.Clone(),
			out:   slices.Clone(s.out),
			in:    slices.Clone(s.in),
		}
	}
	return c
}

// Concat returns a new builder holding the receiver's graph and a copy of
// other's. Other's ids are shifted by MaxNodeID()+1 of the receiver, so they
// cannot collide with any id the receiver has ever used. Neither input is
// modified.
func (b *Builder) Concat(other *Builder) *Builder {
	c := b.Clone()
	offset := b.maxID + 1
	for _, id := range other.NodeIDs() {
		c.place(offset+id, other.slots[id].seq.Clone())
	}
	for _, id := range other.NodeIDs() {
		for _, to := range other.slots[id].out {
			c.link(offset+id, offset+to)
		}
	}
	if other.maxID >= 0 {
		c.maxID = max(c.maxID, offset+other.maxID)
	}
	return c
}
