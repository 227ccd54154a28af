package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

func newMerger(t *testing.T, nodes nodeMap, adj adjMap) *Merger {
	t.Helper()
	m, err := MergerFromMaps(nodes, adj)
	require.NoError(t, err)
	return m
}

func dividedMerger(t *testing.T) *Merger {
	return newMerger(t,
		nodeMap{0: ref[:4], 1: ref[4:], 2: ref2[:3], 3: ref2[3:6], 4: ref2[6:]},
		adjMap{0: {1}, 2: {3}, 3: {4}})
}

func TestOffsetsFor(t *testing.T) {
	m := dividedMerger(t)
	tests := []struct {
		iv   seqgraph.Interval
		want []int
	}{
		{seqgraph.NewInterval(2, 2, 0, 1), []int{2, 2}},
		{seqgraph.NewInterval(2, 3, 2, 3), []int{1, 3}},
		{seqgraph.NewInterval(0, 2, 2, 3, 4), []int{3, 3, 2}},
		{seqgraph.NewInterval(1, 3, 0), []int{2}},
	}
	for _, tt := range tests {
		got, err := m.OffsetsFor(tt.iv)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "OffsetsFor(%v)", tt.iv)
	}

	_, err := m.OffsetsFor(seqgraph.NewInterval(0, 1, 0, 2))
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInterval))
}

func TestSplitIntervalCommonRefinement(t *testing.T) {
	m := newMerger(t, nodeMap{0: ref}, nil)

	path, err := m.SplitInterval(seqgraph.NewInterval(1, 7, 0), []int{2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []seqgraph.NodeID{1, 2, 3}, path)
	for _, id := range path {
		assert.Equal(t, 2, m.NodeSize(id))
	}
	assertStruct(t, m.Builder,
		nodeMap{0: {0}, 1: {1, 2}, 2: {3, 3}, 3: {2, 1}, 4: {0}},
		adjMap{0: {1}, 1: {2}, 2: {3}, 3: {4}})
}

func TestSplitIntervalKeepsOwnBoundaries(t *testing.T) {
	m := dividedMerger(t)

	// Interval a covers [2 3 | 3 2] and is cut at 1 and 4 by b's offsets.
	path, err := m.SplitInterval(seqgraph.NewInterval(2, 2, 0, 1), []int{1, 3})
	require.NoError(t, err)
	sizes := make([]int, len(path))
	for k, id := range path {
		sizes[k] = m.NodeSize(id)
	}
	assert.Equal(t, []int{1, 1, 2}, sizes)
}

func TestSplitIntervalRejectsBadOffsets(t *testing.T) {
	for _, offsets := range [][]int{{2, 2}, {0, 6}, {7, -1}} {
		m := newMerger(t, nodeMap{0: ref}, nil)
		_, err := m.SplitInterval(seqgraph.NewInterval(1, 7, 0), offsets)
		assert.True(t, errs.IsInvalidInput(err), "offsets %v", offsets)
		assertStruct(t, m.Builder, nodeMap{0: ref}, adjMap{})
	}
}

func TestMergeIntervalsSimple(t *testing.T) {
	m := newMerger(t, nodeMap{0: ref, 1: ref2}, nil)

	require.NoError(t, m.MergeIntervals(seqgraph.NewInterval(2, 6, 0), seqgraph.NewInterval(2, 6, 1)))
	assertStruct(t, m.Builder,
		nodeMap{0: {0, 1}, 1: {3, 3}, 2: {2, 3, 3, 2}, 3: {1, 0}, 5: {3, 3}},
		adjMap{0: {2}, 1: {2}, 2: {3, 5}})
}

func TestMergeIntervalsDivided(t *testing.T) {
	m := dividedMerger(t)

	require.NoError(t, m.MergeIntervals(seqgraph.NewInterval(2, 2, 0, 1), seqgraph.NewInterval(2, 3, 2, 3)))
	assertStruct(t, m.Builder,
		nodeMap{0: {0, 1}, 2: {3, 3}, 5: {2}, 6: {3}, 1: {3, 2}, 7: {1, 0}, 4: {3, 3}},
		adjMap{0: {5}, 2: {5}, 5: {6}, 6: {1}, 1: {4, 7}})
}

var (
	other = seqgraph.Sequence{3, 3, 0, 3, 1, 2, 3, 3}

	differingNodes = nodeMap{
		0: {0, 1}, 1: {3, 3}, 2: {2}, 3: {1, 0}, 5: {3, 3},
		6: {3}, 7: {0}, 8: {3}, 9: {2}, 10: {1},
	}
	differingAdj = adjMap{
		0: {2, 7}, 1: {2, 7}, 2: {6}, 6: {8, 10}, 7: {6}, 8: {9}, 9: {3, 5}, 10: {9},
	}
)

func TestMergeIntervalsDiffering(t *testing.T) {
	m := newMerger(t, nodeMap{0: ref, 1: other}, nil)

	require.NoError(t, m.MergeIntervals(seqgraph.NewInterval(2, 6, 0), seqgraph.NewInterval(2, 6, 1)))
	assertStruct(t, m.Builder, differingNodes, differingAdj)
}

func TestMergeIntervalsDifferingTopology(t *testing.T) {
	m := newMerger(t, nodeMap{0: ref, 1: other}, nil)
	require.NoError(t, m.MergeIntervals(seqgraph.NewInterval(2, 6, 0), seqgraph.NewInterval(2, 6, 1)))

	// The same structure built by hand under different ids.
	relabel := func(id seqgraph.NodeID) seqgraph.NodeID { return 100 - id }
	nodes := make(nodeMap)
	for id, seq := range differingNodes {
		nodes[relabel(id)] = seq
	}
	adj := make(adjMap)
	for id, succs := range differingAdj {
		for _, s := range succs {
			adj[relabel(id)] = append(adj[relabel(id)], relabel(s))
		}
	}
	byHand, err := FromMaps(nodes, adj)
	require.NoError(t, err)

	assert.True(t, m.Topology().Equal(byHand.Topology()), "merged:\n%s\nby hand:\n%s", m.Topology(), byHand.Topology())
	assert.False(t, m.Struct().Equal(byHand.Struct()))
}

func TestMergeIntervalsWithSNPs(t *testing.T) {
	m := newMerger(t, nodeMap{0: ref, 1: ref2}, nil)
	_, err := m.AddSNP(seqgraph.Position{Node: 0, Offset: 3}, 2)
	require.NoError(t, err)
	_, err = m.AddSNP(seqgraph.Position{Node: 1, Offset: 4}, 1)
	require.NoError(t, err)

	require.NoError(t, m.MergeIntervals(seqgraph.NewInterval(2, 2, 0, 2, 3), seqgraph.NewInterval(2, 1, 1, 5, 6)))
	assertStruct(t, m.Builder,
		nodeMap{
			0: {0, 1}, 1: {3, 3}, 2: {3}, 3: {3}, 4: {2},
			7: {1}, 8: {2}, 9: {2}, 10: {1, 0}, 13: {3, 3},
		},
		adjMap{0: {8}, 1: {8}, 2: {3, 7}, 3: {9}, 4: {3}, 7: {9}, 8: {2, 4}, 9: {10, 13}})
}

func TestMergeIntervalsRejectsUnequalLengths(t *testing.T) {
	m := newMerger(t, nodeMap{0: ref, 1: ref2}, nil)
	err := m.MergeIntervals(seqgraph.NewInterval(2, 6, 0), seqgraph.NewInterval(2, 5, 1))
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidInterval))
	assertStruct(t, m.Builder, nodeMap{0: ref, 1: ref2}, adjMap{})
}

func TestMergeNodesContracts(t *testing.T) {
	m := newMerger(t, nodeMap{0: {0, 1}, 1: {0}, 2: {1}}, nil)
	assert.Panics(t, func() { _ = m.MergeNodes(0, 1) })

	m = newMerger(t, nodeMap{0: {0}, 1: {1}}, nil)
	assert.Error(t, m.MergeNodes(0, 0))
	assert.True(t, errs.Is(m.MergeNodes(0, 5), errs.ErrCodeUnknownNode))

	assert.Panics(t, func() { _ = m.MergePaths([]seqgraph.NodeID{0}, []seqgraph.NodeID{0, 1}) })
}

func TestMergeNodesKeepsBothAlleles(t *testing.T) {
	m := newMerger(t,
		nodeMap{0: {0}, 1: {1, 2, 3}, 2: {1, 0, 3}, 3: {2}},
		adjMap{0: {1, 2}, 1: {3}, 2: {3}})

	require.NoError(t, m.MergeNodes(1, 2))
	assertStruct(t, m.Builder,
		nodeMap{0: {0}, 1: {1}, 3: {2}, 4: {2}, 5: {3}, 6: {0}},
		adjMap{0: {1}, 1: {4, 6}, 4: {5}, 5: {3}, 6: {5}})
}

func TestMergeGraphs(t *testing.T) {
	g, err := MergeGraphs(
		seqgraph.Naive(ref), seqgraph.Naive(ref2),
		[]seqgraph.Interval{seqgraph.NewInterval(2, 6, 0)},
		[]seqgraph.Interval{seqgraph.NewInterval(2, 6, 0)},
	)
	require.NoError(t, err)

	want, err := seqgraph.New(
		seqgraph.Sequence{0, 1, 3, 3, 2, 3, 3, 2, 1, 0, 3, 3},
		[]int{0, 2, 4, 8, 10},
		[][]int{{2}, {2}, {3, 4}},
	)
	require.NoError(t, err)
	assert.True(t, g.Equal(want))
	assert.Equal(t, ref, g.Spell([]int{0, 2, 3}))
	assert.Equal(t, ref2, g.Spell([]int{1, 2, 4}))
}

func TestMergeGraphsTailToHead(t *testing.T) {
	ivs := []seqgraph.Interval{seqgraph.NewInterval(1, 3, 0), seqgraph.NewInterval(5, 7, 0)}
	g, err := MergeGraphs(seqgraph.Naive(ref), seqgraph.Naive(ref), ivs, ivs)
	require.NoError(t, err)

	assert.Equal(t, 8, g.NodeCount())
	assert.Equal(t, 12, g.Len())
	paths := allPaths(g)
	assert.Len(t, paths, 8)
	for _, p := range paths {
		assert.Equal(t, ref, g.Spell(p))
	}
}

func TestMergeGraphsRejectsBadPairs(t *testing.T) {
	a, b := seqgraph.Naive(ref), seqgraph.Naive(ref2)
	early, late := seqgraph.NewInterval(1, 3, 0), seqgraph.NewInterval(5, 7, 0)

	_, err := MergeGraphs(a, b, []seqgraph.Interval{early}, nil)
	assert.True(t, errs.IsInvalidInput(err))

	_, err = MergeGraphs(a, b, []seqgraph.Interval{late, early}, []seqgraph.Interval{early, late})
	assert.True(t, errs.IsInvalidInput(err))
}

// allPaths enumerates every source-to-sink path of g.
func allPaths(g *seqgraph.Graph) [][]int {
	var out [][]int
	var walk func(path []int)
	walk = func(path []int) {
		last := path[len(path)-1]
		if len(g.Successors(last)) == 0 {
			out = append(out, append([]int(nil), path...))
			return
		}
		for _, next := range g.Successors(last) {
			walk(append(path, next))
		}
	}
	for _, s := range g.Sources() {
		walk([]int{s})
	}
	return out
}
