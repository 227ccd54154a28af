package builder

import (
	"slices"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// AddSNP adds a substitution of the symbol at pos by sym.
//
// The node is split so that the target symbol sits alone in a node, then a
// sibling holding sym is wired to the same predecessors and successors. The
// original symbol stays in place. AddSNP returns the node that follows the
// edited symbol on the original path, or [seqgraph.NoNode] if the symbol was
// the last of its node.
func (b *Builder) AddSNP(pos seqgraph.Position, sym seqgraph.Symbol) (seqgraph.NodeID, error) {
	if err := b.checkPosition(pos); err != nil {
		return seqgraph.NoNode, err
	}
	if sym == seqgraph.Gap {
		return seqgraph.NoNode, errs.New(errs.ErrCodeInvalidInput, "substitution by a gap")
	}
	next := b.addSNP(pos, sym)
	b.hooks.OnEdit("snp", b.live)
	return next, nil
}

func (b *Builder) addSNP(pos seqgraph.Position, sym seqgraph.Symbol) seqgraph.NodeID {
	node := pos.Node
	if pos.Offset > 0 {
		node = b.splitNode(node, pos.Offset)
	}
	next := seqgraph.NoNode
	if b.NodeSize(node) > 1 {
		next = b.splitNode(node, 1)
	}
	sib := b.copyNode(node, seqgraph.Sequence{sym})
	b.logger.Debug("added snp", "at", pos, "node", node, "sibling", sib)
	return next
}

// AddSNPs applies substitutions at strictly increasing offsets counted from
// the start of node. The offsets may run past node into the nodes produced by
// the previous substitutions; running past the end of that chain returns an
// error wrapping [ErrPathEnded].
func (b *Builder) AddSNPs(node seqgraph.NodeID, offsets []int, syms seqgraph.Sequence) error {
	if len(offsets) != len(syms) {
		return errs.New(errs.ErrCodeInvalidInput, "%d offsets for %d symbols", len(offsets), len(syms))
	}
	for k, off := range offsets {
		if off < 0 || (k > 0 && off <= offsets[k-1]) {
			return errs.New(errs.ErrCodeInvalidInput, "offsets must be non-negative and strictly increasing: %v", offsets)
		}
	}
	consumed := 0
	for k, off := range offsets {
		if node == seqgraph.NoNode {
			return errs.Wrap(errs.ErrCodeInvalidPosition, ErrPathEnded, "substitution %d at offset %d", k, off)
		}
		next, err := b.AddSNP(seqgraph.Position{Node: node, Offset: off - consumed}, syms[k])
		if err != nil {
			return err
		}
		node = next
		consumed = off + 1
	}
	return nil
}

// AddInsertion adds seq as an alternate branch directly before pos. At offset
// 0 the branch joins the predecessors of pos.Node to pos.Node; otherwise the
// node is split at the offset and the branch joins the two halves. The
// original path is left intact. The new node's id is returned.
func (b *Builder) AddInsertion(pos seqgraph.Position, seq seqgraph.Sequence) (seqgraph.NodeID, error) {
	if err := b.checkPosition(pos); err != nil {
		return seqgraph.NoNode, err
	}
	if len(seq) == 0 {
		return seqgraph.NoNode, errs.New(errs.ErrCodeInvalidInput, "empty insertion")
	}
	ins := b.AddNode(seq)
	node := pos.Node
	if pos.Offset == 0 {
		b.addEdges(slices.Clone(b.slots[node].in), []seqgraph.NodeID{ins})
		b.link(ins, node)
	} else {
		after := b.splitNode(node, pos.Offset)
		b.link(node, ins)
		b.link(ins, after)
	}
	b.logger.Debug("added insertion", "at", pos, "node", ins, "length", len(seq))
	b.hooks.OnEdit("insertion", b.live)
	return ins, nil
}

// AddDeletion adds a skip edge around iv. The first and last nodes are split
// so that iv covers whole nodes, then every predecessor of the interval is
// joined to every successor. The interval's nodes stay in the graph.
//
// An interval touching a source or sink has no predecessor or successor to
// join; such deletions are rejected before the graph is changed.
func (b *Builder) AddDeletion(iv seqgraph.Interval) error {
	if err := b.checkInterval(iv); err != nil {
		return err
	}
	first, last := iv.First(), iv.Last()
	if iv.Start == 0 && len(b.slots[first].in) == 0 {
		return errs.New(errs.ErrCodeInvalidInterval, "deletion %v starts at a source", iv)
	}
	if iv.End == b.NodeSize(last) && len(b.slots[last].out) == 0 {
		return errs.New(errs.ErrCodeInvalidInterval, "deletion %v ends at a sink", iv)
	}

	start, end := first, last
	if iv.End < b.NodeSize(last) {
		b.splitNode(last, iv.End)
	}
	if iv.Start > 0 {
		start = b.splitNode(first, iv.Start)
	}
	if last == first {
		end = start
	}
	b.addEdges(slices.Clone(b.slots[start].in), slices.Clone(b.slots[end].out))
	b.logger.Debug("added deletion", "interval", iv)
	b.hooks.OnEdit("deletion", b.live)
	return nil
}

func (b *Builder) checkPosition(pos seqgraph.Position) error {
	if err := b.checkNodes(pos.Node); err != nil {
		return err
	}
	return errs.ValidateOffset(pos.Offset, b.NodeSize(pos.Node))
}

// checkInterval validates iv against the current graph: live nodes joined by
// edges, and offsets inside the first and last node.
func (b *Builder) checkInterval(iv seqgraph.Interval) error {
	if err := iv.Validate(); err != nil {
		return err
	}
	if err := b.checkNodes(iv.Nodes...); err != nil {
		return err
	}
	for k := 1; k < len(iv.Nodes); k++ {
		if !b.HasEdge(iv.Nodes[k-1], iv.Nodes[k]) {
			return errs.New(errs.ErrCodeInvalidInterval, "interval path breaks at %d->%d", iv.Nodes[k-1], iv.Nodes[k])
		}
	}
	if iv.Start >= b.NodeSize(iv.First()) {
		return errs.New(errs.ErrCodeInvalidInterval, "interval start %d outside node %d", iv.Start, iv.First())
	}
	if iv.End == 0 || iv.End > b.NodeSize(iv.Last()) {
		return errs.New(errs.ErrCodeInvalidInterval, "interval end %d outside node %d", iv.End, iv.Last())
	}
	if len(iv.Nodes) == 1 && iv.Start >= iv.End {
		return errs.New(errs.ErrCodeInvalidInterval, "empty interval %v", iv)
	}
	return nil
}
