package builder_test

import (
	"fmt"

	"github.com/matzehuels/graphalign/pkg/builder"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

func ExampleBuilder_AddSNP() {
	b := builder.New()
	ref := b.AddNode(seqgraph.MustEncode("ACGTTGCA"))

	next, _ := b.AddSNP(seqgraph.Position{Node: ref, Offset: 3}, 2)
	fmt.Println(next)
	fmt.Println(b.Struct())
	// Output:
	// 2
	// 0:ACG->[1 3] 1:T->[2] 2:TGCA 3:G->[2]
}

func ExampleMerger_MergeIntervals() {
	m := builder.NewMerger()
	a := m.AddNode(seqgraph.MustEncode("ACGTTGCA"))
	b := m.AddNode(seqgraph.MustEncode("TTGTTGTT"))

	_ = m.MergeIntervals(seqgraph.NewInterval(2, 6, a), seqgraph.NewInterval(2, 6, b))
	g, _ := m.ToSequenceGraph()
	fmt.Println(g.Symbols)
	fmt.Println(g.Offsets)
	fmt.Println(g.Adj)
	// Output:
	// ACTTGTTGCATT
	// [0 2 4 8 10]
	// [[2] [2] [3 4] [] []]
}

func ExampleAlignmentToSequenceGraph() {
	a, _ := seqgraph.DNA.EncodeAligned("ACGTAC-T")
	b, _ := seqgraph.DNA.EncodeAligned("ACGAACGT")

	g, _ := builder.AlignmentToSequenceGraph(seqgraph.Alignment{A: a, B: b})
	for i := range g.NodeCount() {
		fmt.Println(i, g.NodeSequence(i), g.Successors(i))
	}
	// Output:
	// 0 ACG [1 2]
	// 1 T [3]
	// 2 A [3]
	// 3 AC [4 5]
	// 4 G [5]
	// 5 T []
}
