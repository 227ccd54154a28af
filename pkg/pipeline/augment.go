package pipeline

import (
	"cmp"
	"slices"

	"github.com/matzehuels/graphalign/pkg/align"
	"github.com/matzehuels/graphalign/pkg/builder"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

type segmentKind uint8

const (
	segMatch segmentKind = iota
	segMismatch
	segInsertion
	segDeletion
)

// segment is a maximal run of alignment columns that maps to one edit.
type segment struct {
	kind  segmentKind
	nodes []seqgraph.NodeID // matched, substituted or skipped nodes
	syms  seqgraph.Sequence // substituted or inserted symbols
}

// Augment returns a graph containing every path of g plus a source-to-sink
// path spelling seq. res must be an alignment of g against seq.
//
// The graph is first split at every position where the alignment changes
// between matching, substituting and skipping, so that all later edits act on
// whole nodes and never move a node id. Edits are then applied from head to
// tail, and the new path is linked explicitly. Sources and sinks of g stay
// sources and sinks, so every path of g remains a source-to-sink path.
func Augment(g *seqgraph.Graph, seq seqgraph.Sequence, res *align.Result, opts ...builder.Option) (*seqgraph.Graph, error) {
	if len(seq) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty sequence")
	}
	if err := checkPath(g, seq, res.Path); err != nil {
		return nil, err
	}

	b := builder.New(opts...)
	b.AddSequenceGraph(g)

	idx, err := presplit(b, g, cutPoints(g, seq, res.Path))
	if err != nil {
		return nil, err
	}
	firstNew := b.MaxNodeID() + 1
	path, err := applySegments(b, segments(g, seq, res.Path, idx))
	if err != nil {
		return nil, err
	}
	path = detach(b, path, firstNew)
	for k := 1; k < len(path); k++ {
		if b.HasEdge(path[k-1], path[k]) {
			continue
		}
		if err := b.AddEdge(path[k-1], path[k]); err != nil {
			return nil, err
		}
	}
	return b.ToSequenceGraph()
}

// checkPath verifies that path aligns all of seq to a source-to-sink path
// of g.
func checkPath(g *seqgraph.Graph, seq seqgraph.Sequence, path []align.Step) error {
	nextB, prevA := 0, -1
	for k, st := range path {
		if st.A < -1 || st.A >= g.Len() || st.B < -1 || st.B >= len(seq) || (st.A < 0 && st.B < 0) {
			return errs.New(errs.ErrCodeInvalidInput, "alignment step %d out of range: %+v", k, st)
		}
		if st.B >= 0 {
			if st.B != nextB {
				return errs.New(errs.ErrCodeInvalidInput, "alignment step %d consumes sequence position %d, want %d", k, st.B, nextB)
			}
			nextB++
		}
		if st.A >= 0 {
			preds := seqgraph.Predecessors(g, st.A)
			if (prevA < 0 && preds != nil) || (prevA >= 0 && !slices.Contains(preds, prevA)) {
				return errs.New(errs.ErrCodeInvalidInput, "alignment step %d leaves the graph path at position %d", k, st.A)
			}
			prevA = st.A
		}
	}
	if nextB != len(seq) {
		return errs.New(errs.ErrCodeInvalidInput, "alignment covers %d of %d sequence symbols", nextB, len(seq))
	}
	if g.Len() > 0 {
		if prevA < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "alignment consumes no graph symbols")
		}
		node := g.NodeAt(prevA)
		if prevA != g.NodeEnd(node)-1 || len(g.Successors(node)) > 0 {
			return errs.New(errs.ErrCodeInvalidInput, "alignment ends inside the graph at position %d", prevA)
		}
	}
	return nil
}

// cutPoints lists the linear positions that must start a node before the
// edits are applied.
func cutPoints(g *seqgraph.Graph, seq seqgraph.Sequence, path []align.Step) []int {
	var cuts []int
	add := func(c int) {
		if c > 0 && c < g.Len() {
			cuts = append(cuts, c)
		}
	}
	prevA := -1
	for k, st := range path {
		switch {
		case st.A >= 0 && st.B >= 0:
			if g.Symbols[st.A] != seq[st.B] {
				add(st.A)
				add(st.A + 1)
			}
		case st.B < 0:
			if k == 0 || path[k-1].B >= 0 {
				add(st.A)
			}
			if k == len(path)-1 || path[k+1].B >= 0 {
				add(st.A + 1)
			}
		default:
			if prevA >= 0 {
				add(prevA + 1)
			}
		}
		if st.A >= 0 {
			prevA = st.A
		}
	}
	slices.Sort(cuts)
	return slices.Compact(cuts)
}

type nodeStart struct {
	pos int
	id  seqgraph.NodeID
}

// nodeIndex maps linear positions of the original graph to the builder
// nodes holding them after presplit.
type nodeIndex []nodeStart

func (idx nodeIndex) node(pos int) seqgraph.NodeID {
	k, found := slices.BinarySearchFunc(idx, pos, func(s nodeStart, p int) int { return cmp.Compare(s.pos, p) })
	if !found {
		k--
	}
	return idx[k].id
}

// presplit splits at every cut, last cut first, so that earlier cuts in the
// same node still address the node's original id.
func presplit(b *builder.Builder, g *seqgraph.Graph, cuts []int) (nodeIndex, error) {
	idx := make(nodeIndex, 0, g.NodeCount()+len(cuts))
	for i := 0; i < g.NodeCount(); i++ {
		idx = append(idx, nodeStart{pos: g.NodeStart(i), id: seqgraph.NodeID(i)})
	}
	for k := len(cuts) - 1; k >= 0; k-- {
		c := cuts[k]
		node := g.NodeAt(c)
		off := c - g.NodeStart(node)
		if off == 0 {
			continue
		}
		id, err := b.SplitNode(seqgraph.NodeID(node), off)
		if err != nil {
			return nil, err
		}
		idx = append(idx, nodeStart{pos: c, id: id})
	}
	slices.SortFunc(idx, func(x, y nodeStart) int { return cmp.Compare(x.pos, y.pos) })
	return idx, nil
}

// segments groups alignment columns into edits over presplit nodes.
func segments(g *seqgraph.Graph, seq seqgraph.Sequence, path []align.Step, idx nodeIndex) []segment {
	var segs []segment
	last := func(kind segmentKind) *segment {
		if len(segs) > 0 && segs[len(segs)-1].kind == kind {
			return &segs[len(segs)-1]
		}
		return nil
	}
	for _, st := range path {
		switch {
		case st.A >= 0 && st.B >= 0 && g.Symbols[st.A] == seq[st.B]:
			id := idx.node(st.A)
			if s := last(segMatch); s != nil && s.nodes[0] == id {
				continue
			}
			segs = append(segs, segment{kind: segMatch, nodes: []seqgraph.NodeID{id}})
		case st.A >= 0 && st.B >= 0:
			segs = append(segs, segment{
				kind:  segMismatch,
				nodes: []seqgraph.NodeID{idx.node(st.A)},
				syms:  seqgraph.Sequence{seq[st.B]},
			})
		case st.B < 0:
			id := idx.node(st.A)
			if s := last(segDeletion); s != nil {
				if s.nodes[len(s.nodes)-1] != id {
					s.nodes = append(s.nodes, id)
				}
				continue
			}
			segs = append(segs, segment{kind: segDeletion, nodes: []seqgraph.NodeID{id}})
		default:
			if s := last(segInsertion); s != nil {
				s.syms = append(s.syms, seq[st.B])
				continue
			}
			segs = append(segs, segment{kind: segInsertion, syms: seqgraph.Sequence{seq[st.B]}})
		}
	}
	return segs
}

// applySegments performs the edits and returns the nodes spelling the new
// sequence, in order.
func applySegments(b *builder.Builder, segs []segment) ([]seqgraph.NodeID, error) {
	var path []seqgraph.NodeID
	for k, s := range segs {
		switch s.kind {
		case segMatch:
			path = append(path, s.nodes[0])

		case segMismatch:
			if _, err := b.AddSNP(seqgraph.Position{Node: s.nodes[0]}, s.syms[0]); err != nil {
				return nil, err
			}
			// The sibling is the most recently allocated node.
			path = append(path, b.MaxNodeID())

		case segInsertion:
			// Joining the predecessors of a source would make it an inner node.
			if k+1 < len(segs) && segs[k+1].kind == segMatch && len(b.Predecessors(segs[k+1].nodes[0])) > 0 {
				id, err := b.AddInsertion(seqgraph.Position{Node: segs[k+1].nodes[0]}, s.syms)
				if err != nil {
					return nil, err
				}
				path = append(path, id)
			} else {
				path = append(path, b.AddNode(s.syms))
			}

		case segDeletion:
			first, last := s.nodes[0], s.nodes[len(s.nodes)-1]
			// Skipping a source or sink leaves nothing to join; detach
			// handles those.
			if len(b.Predecessors(first)) == 0 || len(b.Successors(last)) == 0 {
				continue
			}
			if err := b.AddDeletion(seqgraph.NewInterval(0, b.NodeSize(last), s.nodes...)); err != nil {
				return nil, err
			}
		}
	}
	return path, nil
}

// detach replaces path nodes by fresh copies wherever linking the path would
// break the source-to-sink property: the first node must be a source, the
// last a sink, and nodes older than firstNew must not gain an edge into a
// source or out of a sink.
func detach(b *builder.Builder, path []seqgraph.NodeID, firstNew seqgraph.NodeID) []seqgraph.NodeID {
	last := len(path) - 1
	for k, id := range path {
		preds, succs := len(b.Predecessors(id)), len(b.Successors(id))
		old := id < firstNew
		switch {
		case k == 0 && preds > 0,
			k == last && succs > 0,
			old && k > 0 && preds == 0,
			old && k < last && succs == 0:
			seq, _ := b.Node(id)
			path[k] = b.AddNode(seq)
		}
	}
	return path
}
