package render_test

import (
	"fmt"

	"github.com/matzehuels/graphalign/pkg/render"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

func ExampleToDOT() {
	g := seqgraph.Naive(seqgraph.MustEncode("ACGT"))
	fmt.Print(render.ToDOT(g, render.Options{}))
	// Output:
	// digraph G {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontname="monospace", fontsize=18, margin="0.2,0.1"];
	//   ranksep=0.4;
	//   nodesep=0.3;
	//
	//   n0 [label="ACGT"];
	//
	// }
}
