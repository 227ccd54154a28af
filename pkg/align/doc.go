// Package align computes global alignments between sequence graphs under an
// affine gap model.
//
// The dynamic program generalizes Gotoh's three-matrix Needleman-Wunsch to
// directed acyclic graphs: a cell (i, j) may be entered from every
// predecessor of flat position i in the first input and of j in the second.
// Positions inside a node have one predecessor; the first position of a node
// has one per incoming edge. Source nodes are entered from a virtual origin.
//
// Plain sequences are accepted anywhere a graph is, through
// [seqgraph.Linear]. For two sequences the result is identical to classical
// affine-gap global alignment.
//
// # Usage
//
//	a, err := align.New(align.DefaultScoring())
//	if err != nil {
//	    return err
//	}
//	res, err := a.Align(ctx, graph, seqgraph.MustEncode("ACGTTGCA"))
//	fmt.Println(res.Score)
//	fmt.Println(res.Alignment)
//
// An end cell is any pair of sink node ends; the best one wins, with ties
// resolved in favor of the last row and column.
package align
