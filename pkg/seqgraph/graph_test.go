package seqgraph

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/graphalign/pkg/errors"
)

// bubble is A C G -> {T | A} -> C A T: nodes 0 (ACG), 1 (T), 2 (A), 3 (CAT).
func bubble(t *testing.T) *Graph {
	t.Helper()
	g, err := New(MustEncode("ACGTACAT"), []int{0, 3, 4, 5}, [][]int{{2, 1}, {3}, {3}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestNewValidation(t *testing.T) {
	seq := MustEncode("ACGT")
	tests := []struct {
		name    string
		symbols Sequence
		offsets []int
		adj     [][]int
		wantErr bool
	}{
		{"empty", nil, nil, nil, false},
		{"single node", seq, []int{0}, nil, false},
		{"chain", seq, []int{0, 2}, [][]int{{1}}, false},
		{"symbols without nodes", seq, nil, nil, true},
		{"first offset not zero", seq, []int{1}, nil, true},
		{"offsets not increasing", seq, []int{0, 2, 2}, nil, true},
		{"empty last node", seq, []int{0, 4}, nil, true},
		{"backward edge", seq, []int{0, 2}, [][]int{nil, {0}}, true},
		{"self loop", seq, []int{0, 2}, [][]int{{0}}, true},
		{"edge out of range", seq, []int{0, 2}, [][]int{{2}}, true},
		{"duplicate edge", seq, []int{0, 2}, [][]int{{1, 1}}, true},
		{"too many adjacency rows", seq, []int{0}, [][]int{nil, nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.symbols, tt.offsets, tt.adj)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errs.IsInvalidInput(err) {
				t.Errorf("New() error code = %v, want invalid input", errs.GetCode(err))
			}
		})
	}
}

func TestGraphQueries(t *testing.T) {
	g := bubble(t)

	if g.Len() != 8 {
		t.Errorf("Len() = %d, want 8", g.Len())
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}
	if got := g.Successors(0); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("Successors(0) = %v, want [1 2]", got)
	}
	if got := g.PredecessorNodes(3); !slices.Equal(got, []int{1, 2}) {
		t.Errorf("PredecessorNodes(3) = %v, want [1 2]", got)
	}
	if got := g.NodeSequence(3).String(); got != "CAT" {
		t.Errorf("NodeSequence(3) = %s, want CAT", got)
	}
	if g.NodeLen(0) != 3 || g.NodeLen(1) != 1 || g.NodeLen(3) != 3 {
		t.Errorf("NodeLen() = %d %d %d, want 3 1 3", g.NodeLen(0), g.NodeLen(1), g.NodeLen(3))
	}
	if got := g.Sources(); !slices.Equal(got, []int{0}) {
		t.Errorf("Sources() = %v, want [0]", got)
	}
	if got := g.Sinks(); !slices.Equal(got, []int{3}) {
		t.Errorf("Sinks() = %v, want [3]", got)
	}
	if g.IsLinear() {
		t.Error("IsLinear() = true for a bubble")
	}
	if got := g.Spell([]int{0, 2, 3}).String(); got != "ACGACAT" {
		t.Errorf("Spell() = %s, want ACGACAT", got)
	}
	if !g.IsPath([]int{0, 1, 3}) || g.IsPath([]int{0, 3}) {
		t.Error("IsPath() disagrees with adjacency")
	}
}

func TestNodeAt(t *testing.T) {
	g := bubble(t)
	want := []int{0, 0, 0, 1, 2, 3, 3, 3}
	for pos, node := range want {
		if got := g.NodeAt(pos); got != node {
			t.Errorf("NodeAt(%d) = %d, want %d", pos, got, node)
		}
	}
}

func TestPredecessors(t *testing.T) {
	g := bubble(t)
	tests := []struct {
		pos  int
		want []int
	}{
		{0, nil},
		{1, []int{0}},
		{2, []int{1}},
		{3, []int{2}},
		{4, []int{2}},
		{5, []int{3, 4}},
		{6, []int{5}},
		{7, []int{6}},
	}
	for _, tt := range tests {
		if got := Predecessors(g, tt.pos); !slices.Equal(got, tt.want) {
			t.Errorf("Predecessors(%d) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestNaive(t *testing.T) {
	g := Naive(MustEncode("ACGT"))
	if g.NodeCount() != 1 || !g.IsLinear() {
		t.Fatalf("Naive() nodes = %d linear = %v", g.NodeCount(), g.IsLinear())
	}
	if Predecessors(g, 0) != nil {
		t.Error("Predecessors(0) on a naive graph should be nil")
	}
	if got := Predecessors(g, 3); !slices.Equal(got, []int{2}) {
		t.Errorf("Predecessors(3) = %v, want [2]", got)
	}

	empty := Naive(nil)
	if empty.NodeCount() != 0 || empty.Len() != 0 {
		t.Errorf("Naive(nil) = %d nodes, %d symbols", empty.NodeCount(), empty.Len())
	}
}

func TestLinearAdapter(t *testing.T) {
	seq := MustEncode("GATTACA")
	var in Linear = seq
	if !in.AsGraph().Symbols.Equal(seq) {
		t.Error("Sequence.AsGraph() lost symbols")
	}
	g := bubble(t)
	in = g
	if in.AsGraph() != g {
		t.Error("Graph.AsGraph() should return the receiver")
	}
}

func TestGraphEqual(t *testing.T) {
	a, b := bubble(t), bubble(t)
	if !a.Equal(b) {
		t.Error("identical graphs not equal")
	}
	c, _ := New(MustEncode("ACGTACAT"), []int{0, 3, 4, 5}, [][]int{{1}, {3}, {3}})
	if a.Equal(c) {
		t.Error("graphs with different edges reported equal")
	}
}
