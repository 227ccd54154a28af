package seqgraph

import (
	"fmt"

	errs "github.com/matzehuels/graphalign/pkg/errors"
)

// NodeID identifies a node inside a builder. Ids are never reused.
type NodeID int

// NoNode is returned where an operation has no resulting node.
const NoNode NodeID = -1

// Position addresses one symbol of a node: 0 <= Offset < len(node).
type Position struct {
	Node   NodeID
	Offset int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Node, p.Offset) }

// Interval is a contiguous sub-path through one or more nodes. Start is the
// offset of the first symbol inside Nodes[0]; End is the exclusive end offset
// inside the last node. Intervals are the unit of merge operations.
//
// Edge connectivity of Nodes is checked by the builder that owns the edges.
type Interval struct {
	Start int
	End   int
	Nodes []NodeID
}

// NewInterval is a convenience constructor.
func NewInterval(start, end int, nodes ...NodeID) Interval {
	return Interval{Start: start, End: end, Nodes: nodes}
}

// First returns the first node of the path.
func (iv Interval) First() NodeID { return iv.Nodes[0] }

// Last returns the last node of the path.
func (iv Interval) Last() NodeID { return iv.Nodes[len(iv.Nodes)-1] }

// Validate rejects an empty node list and negative offsets.
func (iv Interval) Validate() error {
	if len(iv.Nodes) == 0 {
		return errs.New(errs.ErrCodeInvalidInterval, "interval has no nodes")
	}
	if iv.Start < 0 || iv.End < 0 {
		return errs.New(errs.ErrCodeInvalidInterval, "interval offsets %d..%d must be non-negative", iv.Start, iv.End)
	}
	return nil
}

// Shift returns a copy with every node id increased by delta.
func (iv Interval) Shift(delta NodeID) Interval {
	nodes := make([]NodeID, len(iv.Nodes))
	for i, n := range iv.Nodes {
		nodes[i] = n + delta
	}
	return Interval{Start: iv.Start, End: iv.End, Nodes: nodes}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d..%d %v]", iv.Start, iv.End, iv.Nodes)
}
