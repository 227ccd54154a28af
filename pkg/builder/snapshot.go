package builder

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// Struct is a comparable snapshot of a builder: node sequences by id and
// sorted successor lists. Nodes without successors are absent from Adj.
type Struct struct {
	Nodes map[seqgraph.NodeID]seqgraph.Sequence
	Adj   map[seqgraph.NodeID][]seqgraph.NodeID
}

// Struct captures the current graph. The snapshot owns its data.
func (b *Builder) Struct() Struct {
	s := Struct{
		Nodes: make(map[seqgraph.NodeID]seqgraph.Sequence, b.live),
		Adj:   make(map[seqgraph.NodeID][]seqgraph.NodeID),
	}
	for _, id := range b.NodeIDs() {
		s.Nodes[id] = b.slots[id].seq.Clone()
		if out := b.slots[id].out; len(out) > 0 {
			succs := slices.Clone(out)
			slices.Sort(succs)
			s.Adj[id] = succs
		}
	}
	return s
}

// Equal reports whether both snapshots hold the same nodes and edges.
func (s Struct) Equal(other Struct) bool {
	return maps.EqualFunc(s.Nodes, other.Nodes, seqgraph.Sequence.Equal) &&
		maps.EqualFunc(s.Adj, other.Adj, slices.Equal[[]seqgraph.NodeID])
}

func (s Struct) String() string {
	var sb strings.Builder
	for _, id := range slices.Sorted(maps.Keys(s.Nodes)) {
		fmt.Fprintf(&sb, "%d:%s", id, s.Nodes[id])
		if succs := s.Adj[id]; len(succs) > 0 {
			fmt.Fprintf(&sb, "->%v", succs)
		}
		sb.WriteByte(' ')
	}
	return strings.TrimSpace(sb.String())
}

// Topology is an id-free summary of a graph. Each key is a node sequence;
// its value lists, for every node with that sequence and at least one
// successor, the sorted sequences of its successors. Two graphs that differ
// only in node numbering have equal topologies.
//
// Keys and entries hold raw symbol bytes; use String for a readable form.
type Topology map[string][][]string

// Topology computes the canonical topology view.
func (b *Builder) Topology() Topology {
	t := make(Topology)
	for _, id := range b.NodeIDs() {
		out := b.slots[id].out
		if len(out) == 0 {
			continue
		}
		succs := make([]string, len(out))
		for k, to := range out {
			succs[k] = string(b.slots[to].seq)
		}
		slices.Sort(succs)
		key := string(b.slots[id].seq)
		t[key] = append(t[key], succs)
	}
	for _, entries := range t {
		slices.SortFunc(entries, slices.Compare[[]string])
	}
	return t
}

// Equal reports whether both topologies are identical.
func (t Topology) Equal(other Topology) bool {
	return maps.EqualFunc(t, other, func(a, b [][]string) bool {
		return slices.EqualFunc(a, b, slices.Equal[[]string])
	})
}

func (t Topology) String() string {
	render := func(raw string) string { return seqgraph.Sequence(raw).String() }
	var sb strings.Builder
	for _, key := range slices.Sorted(maps.Keys(t)) {
		fmt.Fprintf(&sb, "%s:", render(key))
		for _, succs := range t[key] {
			parts := make([]string, len(succs))
			for k, s := range succs {
				parts[k] = render(s)
			}
			fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ","))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
