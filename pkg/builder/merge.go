package builder

import (
	"slices"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// Merger is a [Builder] that can fuse intervals representing the same region.
type Merger struct {
	*Builder
}

// NewMerger creates an empty merger.
func NewMerger(opts ...Option) *Merger {
	return &Merger{Builder: New(opts...)}
}

// MergerFromMaps is [FromMaps] for a Merger.
func MergerFromMaps(nodes map[seqgraph.NodeID]seqgraph.Sequence, adj map[seqgraph.NodeID][]seqgraph.NodeID, opts ...Option) (*Merger, error) {
	b, err := FromMaps(nodes, adj, opts...)
	if err != nil {
		return nil, err
	}
	return &Merger{Builder: b}, nil
}

// OffsetsFor returns the segment lengths of iv along its own node path: the
// remainder of the first node, every middle node in full, and the consumed
// part of the last node. A single-node interval has one segment.
func (m *Merger) OffsetsFor(iv seqgraph.Interval) ([]int, error) {
	if err := m.checkInterval(iv); err != nil {
		return nil, err
	}
	return m.offsetsFor(iv), nil
}

func (m *Merger) offsetsFor(iv seqgraph.Interval) []int {
	if len(iv.Nodes) == 1 {
		return []int{iv.End - iv.Start}
	}
	offsets := make([]int, 0, len(iv.Nodes))
	offsets = append(offsets, m.NodeSize(iv.First())-iv.Start)
	for _, n := range iv.Nodes[1 : len(iv.Nodes)-1] {
		offsets = append(offsets, m.NodeSize(n))
	}
	return append(offsets, iv.End)
}

// SplitInterval splits the nodes of iv so that a boundary falls after every
// prefix sum of offsets. The interval's own node boundaries are kept, so the
// returned path is the common refinement of both boundary sets. The offsets
// must be positive and add up to the interval's length.
func (m *Merger) SplitInterval(iv seqgraph.Interval, offsets []int) ([]seqgraph.NodeID, error) {
	if err := m.checkInterval(iv); err != nil {
		return nil, err
	}
	if err := checkOffsets(offsets, sum(m.offsetsFor(iv))); err != nil {
		return nil, err
	}
	return m.splitInterval(iv, offsets)
}

func (m *Merger) splitInterval(iv seqgraph.Interval, offsets []int) ([]seqgraph.NodeID, error) {
	m.logger.Debug("split interval", "interval", iv, "offsets", offsets)
	cur := iv.First()
	if iv.Start > 0 {
		cur = m.splitNode(cur, iv.Start)
	}
	path := []seqgraph.NodeID{cur}
	size := m.NodeSize(cur)
	next := 1
	acc := 0
	for k, off := range offsets {
		acc += off
		for acc > size {
			if next == len(iv.Nodes) {
				return nil, errs.New(errs.ErrCodeInvalidInterval, "offsets run past the end of %v", iv)
			}
			acc -= size
			cur = iv.Nodes[next]
			next++
			path = append(path, cur)
			size = m.NodeSize(cur)
		}
		if acc > 0 && acc < size {
			cur = m.splitNode(cur, acc)
			if k != len(offsets)-1 {
				path = append(path, cur)
			}
			acc = 0
			size = m.NodeSize(cur)
		}
	}
	return path, nil
}

// MergeNodes folds node b into node a. Every edge of b is moved to a and b is
// removed; where the two sequences differ, b's symbol is kept as a
// substitution branch on a. The nodes must be distinct and of equal length;
// unequal lengths panic.
func (m *Merger) MergeNodes(a, b seqgraph.NodeID) error {
	if err := m.checkNodes(a, b); err != nil {
		return err
	}
	if a == b {
		return errs.New(errs.ErrCodeInvalidInput, "cannot merge node %d with itself", a)
	}
	return m.mergeNodes(a, b)
}

func (m *Merger) mergeNodes(a, b seqgraph.NodeID) error {
	seqA, seqB := m.slots[a].seq, m.slots[b].seq
	if len(seqA) != len(seqB) {
		errs.Invariant("merging nodes %d and %d of lengths %d and %d", a, b, len(seqA), len(seqB))
	}
	m.logger.Debug("merge nodes", "a", a, "b", b)

	// An edge between a and b would become a self loop.
	succs := slices.DeleteFunc(slices.Clone(m.slots[b].out), func(n seqgraph.NodeID) bool { return n == a })
	preds := slices.DeleteFunc(slices.Clone(m.slots[b].in), func(n seqgraph.NodeID) bool { return n == a })
	m.addEdges([]seqgraph.NodeID{a}, succs)
	m.addEdges(preds, []seqgraph.NodeID{a})
	m.removeNode(b)

	var offsets []int
	var syms seqgraph.Sequence
	for i := range seqA {
		if seqA[i] != seqB[i] {
			offsets = append(offsets, i)
			syms = append(syms, seqB[i])
		}
	}
	m.hooks.OnEdit("merge", m.live)
	if len(offsets) == 0 {
		return nil
	}
	return m.AddSNPs(a, offsets, syms)
}

// MergePaths merges the nodes of two paths pairwise. The paths must have the
// same length; a length mismatch panics.
func (m *Merger) MergePaths(pathA, pathB []seqgraph.NodeID) error {
	if len(pathA) != len(pathB) {
		errs.Invariant("merging paths of %d and %d nodes", len(pathA), len(pathB))
	}
	if err := m.checkNodes(pathA...); err != nil {
		return err
	}
	if err := m.checkNodes(pathB...); err != nil {
		return err
	}
	m.logger.Debug("merge paths", "a", pathA, "b", pathB)
	for k := range pathA {
		if pathA[k] == pathB[k] {
			return errs.New(errs.ErrCodeInvalidInput, "paths share node %d", pathA[k])
		}
		if err := m.mergeNodes(pathA[k], pathB[k]); err != nil {
			return err
		}
	}
	return nil
}

// MergeIntervals fuses two intervals of equal length. Each interval is split
// at the other's boundaries, then the resulting paths are merged node by node.
func (m *Merger) MergeIntervals(ia, ib seqgraph.Interval) error {
	if err := m.checkInterval(ia); err != nil {
		return err
	}
	if err := m.checkInterval(ib); err != nil {
		return err
	}
	offsetsA := m.offsetsFor(ia)
	offsetsB := m.offsetsFor(ib)
	if sum(offsetsA) != sum(offsetsB) {
		return errs.New(errs.ErrCodeInvalidInterval, "intervals of length %d and %d", sum(offsetsA), sum(offsetsB))
	}
	for _, n := range ia.Nodes {
		if slices.Contains(ib.Nodes, n) {
			return errs.New(errs.ErrCodeInvalidInterval, "intervals share node %d", n)
		}
	}

	pathA, err := m.splitInterval(ia, offsetsB)
	if err != nil {
		return err
	}
	pathB, err := m.splitInterval(ib, offsetsA)
	if err != nil {
		return err
	}
	return m.MergePaths(pathA, pathB)
}

// MergeGraphs imports ga and gb as disjoint id blocks and merges every pair
// of intervals. Intervals refer to dense node indices of their own graph and
// must be listed in ascending position order (first node, then start). Pairs
// are applied from the last one backwards: splitting keeps the prefix's id,
// so earlier intervals stay valid while later ones are processed.
func MergeGraphs(ga, gb *seqgraph.Graph, ia, ib []seqgraph.Interval, opts ...Option) (*seqgraph.Graph, error) {
	if len(ia) != len(ib) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%d intervals for graph a, %d for graph b", len(ia), len(ib))
	}
	if err := checkSorted(ia); err != nil {
		return nil, err
	}
	if err := checkSorted(ib); err != nil {
		return nil, err
	}

	m := NewMerger(opts...)
	offA := m.AddSequenceGraph(ga)
	offB := m.AddSequenceGraph(gb)
	for k := len(ia) - 1; k >= 0; k-- {
		if err := m.MergeIntervals(ia[k].Shift(offA), ib[k].Shift(offB)); err != nil {
			return nil, err
		}
	}
	return m.ToSequenceGraph()
}

func checkSorted(ivs []seqgraph.Interval) error {
	for k, iv := range ivs {
		if err := iv.Validate(); err != nil {
			return err
		}
		if k == 0 {
			continue
		}
		prev := ivs[k-1]
		if iv.First() < prev.First() || (iv.First() == prev.First() && iv.Start <= prev.Start) {
			return errs.New(errs.ErrCodeInvalidInput, "interval %d (%v) not after interval %d (%v)", k, iv, k-1, prev)
		}
	}
	return nil
}

func checkOffsets(offsets []int, length int) error {
	for _, off := range offsets {
		if off <= 0 {
			return errs.New(errs.ErrCodeInvalidInput, "offsets must be positive: %v", offsets)
		}
	}
	if total := sum(offsets); total != length {
		return errs.New(errs.ErrCodeInvalidInput, "offsets cover %d symbols, interval has %d", total, length)
	}
	return nil
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
