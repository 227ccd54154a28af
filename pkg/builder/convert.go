package builder

import (
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// AlignmentToSequenceGraph turns a pairwise alignment into a small graph.
//
// Columns are grouped left to right. A run of identical symbols becomes one
// shared node. A run of columns where only one side has symbols becomes one
// node on that side's path. A column pairing two different symbols becomes a
// bubble of two single-symbol nodes. Edges follow each side's own path, so
// the graph spells exactly the two ungapped inputs.
func AlignmentToSequenceGraph(aln seqgraph.Alignment, opts ...Option) (*seqgraph.Graph, error) {
	if err := aln.Validate(); err != nil {
		return nil, err
	}
	b := New(opts...)
	lastA, lastB := seqgraph.NoNode, seqgraph.NoNode
	follow := func(last, node seqgraph.NodeID) {
		if last != seqgraph.NoNode && !b.HasEdge(last, node) {
			b.link(last, node)
		}
	}

	n := aln.Len()
	for k := 0; k < n; {
		a, c := aln.A[k], aln.B[k]
		switch {
		case a != seqgraph.Gap && c != seqgraph.Gap && a == c:
			end := k + 1
			for end < n && aln.A[end] == aln.B[end] {
				end++
			}
			node := b.AddNode(aln.A[k:end])
			follow(lastA, node)
			follow(lastB, node)
			lastA, lastB = node, node
			k = end

		case a != seqgraph.Gap && c != seqgraph.Gap:
			na := b.AddNode(seqgraph.Sequence{a})
			nb := b.AddNode(seqgraph.Sequence{c})
			follow(lastA, na)
			follow(lastB, nb)
			lastA, lastB = na, nb
			k++

		case c == seqgraph.Gap:
			end := k + 1
			for end < n && aln.B[end] == seqgraph.Gap {
				end++
			}
			node := b.AddNode(aln.A[k:end])
			follow(lastA, node)
			lastA = node
			k = end

		default:
			end := k + 1
			for end < n && aln.A[end] == seqgraph.Gap {
				end++
			}
			node := b.AddNode(aln.B[k:end])
			follow(lastB, node)
			lastB = node
			k = end
		}
	}
	return b.ToSequenceGraph()
}
