package builder

import (
	"errors"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/observability"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

var (
	// ErrGraphHasCycle is returned by [Builder.ToSequenceGraph] when the graph
	// cannot be ordered topologically.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrPathEnded is returned by [Builder.AddSNPs] when the node path runs
	// out before every substitution was applied.
	ErrPathEnded = errors.New("node path ended")
)

type slotState uint8

const (
	slotEmpty slotState = iota
	slotLive
	slotRemoved
)

type slot struct {
	state slotState
	seq   seqgraph.Sequence
	out   []seqgraph.NodeID
	in    []seqgraph.NodeID
}

// Builder is a mutable sequence graph with id-addressed nodes.
//
// The zero value is not usable; create builders with [New] or [FromMaps].
type Builder struct {
	slots  []slot
	maxID  seqgraph.NodeID
	live   int
	edges  int
	logger *log.Logger
	hooks  observability.BuildHooks
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger receiving debug output for every edit.
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithHooks overrides the globally registered build hooks.
func WithHooks(h observability.BuildHooks) Option {
	return func(b *Builder) {
		if h != nil {
			b.hooks = h
		}
	}
}

// New creates an empty builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		maxID:  seqgraph.NoNode,
		logger: log.New(io.Discard),
		hooks:  observability.Build(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromMaps creates a builder holding the given nodes and successor lists.
// Every node must be non-empty, every edge must join two listed nodes, and no
// edge may repeat. The watermark starts at the largest node id.
func FromMaps(nodes map[seqgraph.NodeID]seqgraph.Sequence, adj map[seqgraph.NodeID][]seqgraph.NodeID, opts ...Option) (*Builder, error) {
	b := New(opts...)
	ids := make([]seqgraph.NodeID, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := b.AddNodeWithID(id, nodes[id]); err != nil {
			return nil, err
		}
	}
	froms := make([]seqgraph.NodeID, 0, len(adj))
	for id := range adj {
		froms = append(froms, id)
	}
	slices.Sort(froms)
	for _, from := range froms {
		for _, to := range adj[from] {
			if err := b.AddEdge(from, to); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// MaxNodeID returns the allocation watermark: the largest id ever used, or
// [seqgraph.NoNode] for a fresh builder.
func (b *Builder) MaxNodeID() seqgraph.NodeID { return b.maxID }

// NodeCount returns the number of live nodes.
func (b *Builder) NodeCount() int { return b.live }

// EdgeCount returns the number of edges.
func (b *Builder) EdgeCount() int { return b.edges }

// Has reports whether id is a live node.
func (b *Builder) Has(id seqgraph.NodeID) bool {
	return id >= 0 && int(id) < len(b.slots) && b.slots[id].state == slotLive
}

// Node returns the symbols of node id. The slice must not be modified.
func (b *Builder) Node(id seqgraph.NodeID) (seqgraph.Sequence, bool) {
	if !b.Has(id) {
		return nil, false
	}
	return b.slots[id].seq, true
}

// NodeSize returns the symbol count of node id, or 0 if it is not live.
func (b *Builder) NodeSize(id seqgraph.NodeID) int {
	if !b.Has(id) {
		return 0
	}
	return len(b.slots[id].seq)
}

// Successors returns the successors of id in insertion order.
// The returned slice is a read-only view.
func (b *Builder) Successors(id seqgraph.NodeID) []seqgraph.NodeID {
	if !b.Has(id) {
		return nil
	}
	return b.slots[id].out
}

// Predecessors returns the predecessors of id in insertion order.
// The returned slice is a read-only view.
func (b *Builder) Predecessors(id seqgraph.NodeID) []seqgraph.NodeID {
	if !b.Has(id) {
		return nil
	}
	return b.slots[id].in
}

// HasEdge reports whether the edge from -> to exists.
func (b *Builder) HasEdge(from, to seqgraph.NodeID) bool {
	return b.Has(from) && slices.Contains(b.slots[from].out, to)
}

// NodeIDs returns the live node ids in ascending order.
func (b *Builder) NodeIDs() []seqgraph.NodeID {
	ids := make([]seqgraph.NodeID, 0, b.live)
	for i := range b.slots {
		if b.slots[i].state == slotLive {
			ids = append(ids, seqgraph.NodeID(i))
		}
	}
	return ids
}

// AddNode stores seq under the next free id and returns that id.
// seq must be non-empty; the builder keeps its own copy.
func (b *Builder) AddNode(seq seqgraph.Sequence) seqgraph.NodeID {
	if len(seq) == 0 {
		errs.Invariant("empty node sequence")
	}
	id := b.maxID + 1
	b.place(id, seq.Clone())
	return id
}

// AddNodeWithID stores seq under a caller-chosen id. The id must never have
// been used by this builder.
func (b *Builder) AddNodeWithID(id seqgraph.NodeID, seq seqgraph.Sequence) error {
	if id < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "negative node id %d", id)
	}
	if len(seq) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "node %d has an empty sequence", id)
	}
	if int(id) < len(b.slots) && b.slots[id].state != slotEmpty {
		return errs.New(errs.ErrCodeInvalidInput, "node id %d already used", id)
	}
	b.place(id, seq.Clone())
	return nil
}

func (b *Builder) place(id seqgraph.NodeID, seq seqgraph.Sequence) {
	if int(id) >= len(b.slots) {
		b.slots = append(b.slots, make([]slot, int(id)+1-len(b.slots))...)
	}
	b.slots[id] = slot{state: slotLive, seq: seq}
	b.live++
	b.maxID = max(b.maxID, id)
}

// AddEdge adds the edge from -> to. Both nodes must be live, distinct, and
// not yet connected.
func (b *Builder) AddEdge(from, to seqgraph.NodeID) error {
	if err := b.checkNodes(from, to); err != nil {
		return err
	}
	if from == to {
		return errs.New(errs.ErrCodeInvalidInput, "self loop on node %d", from)
	}
	if b.HasEdge(from, to) {
		return errs.New(errs.ErrCodeInvalidInput, "edge %d->%d already exists", from, to)
	}
	b.link(from, to)
	return nil
}

// AddEdges adds an edge from every node in froms to every node in tos,
// skipping pairs that are already connected.
func (b *Builder) AddEdges(froms, tos []seqgraph.NodeID) error {
	if err := b.checkNodes(froms...); err != nil {
		return err
	}
	if err := b.checkNodes(tos...); err != nil {
		return err
	}
	for _, from := range froms {
		if slices.Contains(tos, from) {
			return errs.New(errs.ErrCodeInvalidInput, "self loop on node %d", from)
		}
	}
	b.addEdges(froms, tos)
	return nil
}

// SetEdge replaces every outgoing edge of from with the single edge to to.
func (b *Builder) SetEdge(from, to seqgraph.NodeID) error {
	if err := b.checkNodes(from, to); err != nil {
		return err
	}
	if from == to {
		return errs.New(errs.ErrCodeInvalidInput, "self loop on node %d", from)
	}
	b.setEdge(from, to)
	return nil
}

// RemoveNode unlinks id from every neighbor and retires it. The id is never
// handed out again.
func (b *Builder) RemoveNode(id seqgraph.NodeID) error {
	if err := b.checkNodes(id); err != nil {
		return err
	}
	b.removeNode(id)
	return nil
}

// SplitNode truncates node id to its first offset symbols and moves the rest
// into a new node, which inherits every outgoing edge of id. Node id then has
// the new node as its single successor. Requires 0 < offset < len(id).
func (b *Builder) SplitNode(id seqgraph.NodeID, offset int) (seqgraph.NodeID, error) {
	if err := b.checkNodes(id); err != nil {
		return seqgraph.NoNode, err
	}
	if err := errs.ValidateSplit(offset, b.NodeSize(id)); err != nil {
		return seqgraph.NoNode, err
	}
	return b.splitNode(id, offset), nil
}

// Check re-verifies that the forward and reverse adjacency agree and hold no
// duplicates. A violation panics with an invariant error.
func (b *Builder) Check() {
	edges := 0
	for i := range b.slots {
		s := &b.slots[i]
		id := seqgraph.NodeID(i)
		if s.state != slotLive {
			if len(s.out) != 0 || len(s.in) != 0 {
				errs.Invariant("retired node %d still has edges", id)
			}
			continue
		}
		for k, to := range s.out {
			if slices.Contains(s.out[:k], to) {
				errs.Invariant("duplicate edge %d->%d", id, to)
			}
			if !b.Has(to) || !slices.Contains(b.slots[to].in, id) {
				errs.Invariant("edge %d->%d missing from reverse adjacency", id, to)
			}
		}
		for k, from := range s.in {
			if slices.Contains(s.in[:k], from) {
				errs.Invariant("duplicate reverse entry %d<-%d", id, from)
			}
			if !b.Has(from) || !slices.Contains(b.slots[from].out, id) {
				errs.Invariant("reverse entry %d<-%d missing from forward adjacency", id, from)
			}
		}
		edges += len(s.out)
	}
	if edges != b.edges {
		errs.Invariant("edge count %d, counted %d", b.edges, edges)
	}
}

func (b *Builder) checkNodes(ids ...seqgraph.NodeID) error {
	for _, id := range ids {
		if !b.Has(id) {
			return errs.New(errs.ErrCodeUnknownNode, "unknown node %d", id)
		}
	}
	return nil
}

// link and unlink are the only places that touch adjacency lists.

func (b *Builder) link(from, to seqgraph.NodeID) {
	b.slots[from].out = append(b.slots[from].out, to)
	b.slots[to].in = append(b.slots[to].in, from)
	b.edges++
}

func (b *Builder) unlink(from, to seqgraph.NodeID) {
	out := b.slots[from].out
	in := b.slots[to].in
	i := slices.Index(out, to)
	j := slices.Index(in, from)
	if i < 0 || j < 0 {
		errs.Invariant("edge %d->%d not mirrored (forward %v, reverse %v)", from, to, i >= 0, j >= 0)
	}
	b.slots[from].out = slices.Delete(out, i, i+1)
	b.slots[to].in = slices.Delete(in, j, j+1)
	b.edges--
}

func (b *Builder) addEdges(froms, tos []seqgraph.NodeID) {
	for _, from := range froms {
		for _, to := range tos {
			if !slices.Contains(b.slots[from].out, to) {
				b.link(from, to)
			}
		}
	}
}

func (b *Builder) setEdge(from, to seqgraph.NodeID) {
	for _, old := range slices.Clone(b.slots[from].out) {
		b.unlink(from, old)
	}
	b.link(from, to)
}

func (b *Builder) removeNode(id seqgraph.NodeID) {
	for _, from := range slices.Clone(b.slots[id].in) {
		b.unlink(from, id)
	}
	for _, to := range slices.Clone(b.slots[id].out) {
		b.unlink(id, to)
	}
	b.slots[id] = slot{state: slotRemoved}
	b.live--
	b.logger.Debug("removed node", "node", id)
}

func (b *Builder) splitNode(id seqgraph.NodeID, offset int) seqgraph.NodeID {
	seq := b.slots[id].seq
	next := b.AddNode(seq[offset:])
	b.slots[id].seq = seq[:offset:offset]
	b.addEdges([]seqgraph.NodeID{next}, slices.Clone(b.slots[id].out))
	b.setEdge(id, next)
	b.logger.Debug("split node", "node", id, "offset", offset, "new", next)
	return next
}

// copyNode adds a sibling of id holding seq, wired to the same predecessors
// and successors.
func (b *Builder) copyNode(id seqgraph.NodeID, seq seqgraph.Sequence) seqgraph.NodeID {
	sib := b.AddNode(seq)
	b.addEdges(slices.Clone(b.slots[id].in), []seqgraph.NodeID{sib})
	b.addEdges([]seqgraph.NodeID{sib}, slices.Clone(b.slots[id].out))
	return sib
}
