package builder

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

func TestToSequenceGraphOrdersByKahn(t *testing.T) {
	// 5 -> 1 -> 3 and 2 -> 3: ties between ready nodes go to the smaller id.
	b, err := FromMaps(
		nodeMap{5: {0}, 1: {1}, 2: {2, 2}, 3: {3}},
		adjMap{5: {1}, 1: {3}, 2: {3}},
	)
	require.NoError(t, err)

	g, err := b.ToSequenceGraph()
	require.NoError(t, err)
	assert.Equal(t, seqgraph.Sequence{2, 2, 0, 1, 3}, g.Symbols)
	assert.Equal(t, []int{0, 2, 3, 4}, g.Offsets)
	assert.Equal(t, [][]int{{3}, {2}, {3}, nil}, g.Adj)
}

func TestToSequenceGraphEmpty(t *testing.T) {
	g, err := New().ToSequenceGraph()
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
}

func TestToSequenceGraphCycle(t *testing.T) {
	b, err := FromMaps(nodeMap{0: {0}, 1: {1}, 2: {2}}, adjMap{0: {1}, 1: {2}, 2: {1}})
	require.NoError(t, err)

	_, err = b.ToSequenceGraph()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGraphHasCycle))
	assert.True(t, errs.Is(err, errs.ErrCodeCycle))
	assert.False(t, errs.IsInvalidInput(err))
}

func TestAddSequenceGraph(t *testing.T) {
	bubble, err := seqgraph.New(seqgraph.MustEncode("ACGTACAT"), []int{0, 3, 4, 5}, [][]int{{1, 2}, {3}, {3}})
	require.NoError(t, err)

	b := New()
	b.AddNode(seqgraph.Sequence{1})
	offset := b.AddSequenceGraph(bubble)

	assert.Equal(t, seqgraph.NodeID(1), offset)
	assert.Equal(t, seqgraph.NodeID(4), b.MaxNodeID())
	assertStruct(t, b,
		nodeMap{0: {1}, 1: {0, 1, 2}, 2: {3}, 3: {0}, 4: {1, 0, 3}},
		adjMap{1: {2, 3}, 2: {4}, 3: {4}})

	// Importing again must not collide with the first block.
	assert.Equal(t, seqgraph.NodeID(5), b.AddSequenceGraph(bubble))
	assert.Equal(t, 9, b.NodeCount())
}

func TestConcat(t *testing.T) {
	left, err := FromMaps(nodeMap{0: {0, 1}, 1: {2}, 2: {3}}, adjMap{0: {1}})
	require.NoError(t, err)
	require.NoError(t, left.RemoveNode(2))
	right, err := FromMaps(nodeMap{0: {3}, 1: {3, 3}}, adjMap{0: {1}})
	require.NoError(t, err)

	joined := left.Concat(right)
	assertStruct(t, joined,
		nodeMap{0: {0, 1}, 1: {2}, 3: {3}, 4: {3, 3}},
		adjMap{0: {1}, 3: {4}})
	assert.Equal(t, seqgraph.NodeID(4), joined.MaxNodeID())

	// Inputs are untouched and the result is independent of them.
	assertStruct(t, left, nodeMap{0: {0, 1}, 1: {2}}, adjMap{0: {1}})
	assertStruct(t, right, nodeMap{0: {3}, 1: {3, 3}}, adjMap{0: {1}})
	_, err = joined.SplitNode(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, left.NodeSize(0))
}

func TestTopologyIgnoresIDs(t *testing.T) {
	a, err := FromMaps(nodeMap{0: {0}, 1: {1}, 2: {2}}, adjMap{0: {1, 2}})
	require.NoError(t, err)
	b, err := FromMaps(nodeMap{7: {2}, 8: {0}, 9: {1}}, adjMap{8: {9, 7}})
	require.NoError(t, err)
	c, err := FromMaps(nodeMap{0: {0}, 1: {1}, 2: {2}}, adjMap{0: {1}, 1: {2}})
	require.NoError(t, err)

	assert.True(t, a.Topology().Equal(b.Topology()))
	assert.False(t, a.Topology().Equal(c.Topology()))
	assert.Equal(t, "A: (C,G)\n", a.Topology().String())
}

// spells reports whether some source-to-sink path of g spells seq exactly.
func spells(g *seqgraph.Graph, seq seqgraph.Sequence) bool {
	var walk func(node, at int) bool
	walk = func(node, at int) bool {
		part := g.NodeSequence(node)
		if at+len(part) > len(seq) || !part.Equal(seq[at:at+len(part)]) {
			return false
		}
		at += len(part)
		if len(g.Successors(node)) == 0 {
			return at == len(seq)
		}
		for _, next := range g.Successors(node) {
			if walk(next, at) {
				return true
			}
		}
		return false
	}
	for _, s := range g.Sources() {
		if walk(s, 0) {
			return true
		}
	}
	return false
}

func TestRandomEditsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := range 50 {
		reference := make(seqgraph.Sequence, 12+rng.Intn(12))
		for i := range reference {
			reference[i] = seqgraph.Symbol(rng.Intn(4))
		}
		b := single(t, reference)

		for range 6 {
			ids := b.NodeIDs()
			node := ids[rng.Intn(len(ids))]
			size := b.NodeSize(node)
			off := rng.Intn(size)
			switch rng.Intn(3) {
			case 0:
				_, _ = b.AddSNP(seqgraph.Position{Node: node, Offset: off}, seqgraph.Symbol(rng.Intn(4)))
			case 1:
				if off == 0 && len(b.Predecessors(node)) == 0 {
					// Inserting before a source makes it an inner node.
					continue
				}
				_, _ = b.AddInsertion(seqgraph.Position{Node: node, Offset: off}, seqgraph.Sequence{seqgraph.Symbol(rng.Intn(4))})
			case 2:
				end := off + 1 + rng.Intn(size-off)
				_ = b.AddDeletion(seqgraph.NewInterval(off, end, node))
			}
			b.Check()
		}

		g, err := b.ToSequenceGraph()
		require.NoError(t, err, "trial %d", trial)
		for from, succs := range g.Adj {
			for _, to := range succs {
				assert.Less(t, from, to)
			}
		}
		assert.True(t, spells(g, reference), "trial %d lost the reference path", trial)
	}
}
