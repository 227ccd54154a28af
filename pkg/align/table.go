package align

import (
	"math"
	"slices"

	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// negInf is low enough that adding any realistic penalty cannot overflow.
const negInf = math.MinInt / 4

type matrix uint8

const (
	matM matrix = iota // best score ending at the cell
	matA               // gap consuming the first input
	matB               // gap consuming the second input
)

type pointer struct {
	cell int
	mat  matrix
}

// table holds the three score matrices over rows 0..|A| and columns 0..|B|.
// Row i > 0 corresponds to flat position i-1 of the first graph; row 0 is
// the virtual origin preceding every source node. Columns likewise.
type table struct {
	ga, gb       *seqgraph.Graph
	cols         int
	predA, predB [][]int
	m, a, b      []int
	ptr          [3][]pointer
	end          int
	score        int
}

func newTable(ga, gb *seqgraph.Graph, trace bool) *table {
	size := (ga.Len() + 1) * (gb.Len() + 1)
	t := &table{
		ga:    ga,
		gb:    gb,
		cols:  gb.Len() + 1,
		predA: predecessorRows(ga),
		predB: predecessorRows(gb),
		m:     make([]int, size),
		a:     make([]int, size),
		b:     make([]int, size),
	}
	if trace {
		for k := range t.ptr {
			t.ptr[k] = make([]pointer, size)
		}
	}
	return t
}

// predecessorRows maps every row to the rows it may be entered from.
func predecessorRows(g *seqgraph.Graph) [][]int {
	rows := make([][]int, g.Len()+1)
	for i := 1; i <= g.Len(); i++ {
		preds := seqgraph.Predecessors(g, i-1)
		if len(preds) == 0 {
			rows[i] = []int{0}
			continue
		}
		r := make([]int, len(preds))
		for k, p := range preds {
			r[k] = p + 1
		}
		rows[i] = r
	}
	return rows
}

// sinkRows returns the rows that end a sink node, or row 0 for an empty graph.
func sinkRows(g *seqgraph.Graph) []int {
	if g.Len() == 0 {
		return []int{0}
	}
	sinks := g.Sinks()
	rows := make([]int, len(sinks))
	for k, s := range sinks {
		rows[k] = g.NodeEnd(s)
	}
	return rows
}

func (t *table) idx(i, j int) int { return i*t.cols + j }

func (t *table) fill(sub [][]int, open, extend int) {
	tracing := t.ptr[matM] != nil
	n, m := t.ga.Len(), t.gb.Len()
	for i := 0; i <= n; i++ {
		for j := 0; j <= m; j++ {
			c := t.idx(i, j)
			if i == 0 && j == 0 {
				t.m[c], t.a[c], t.b[c] = 0, negInf, negInf
				continue
			}

			av, ap := negInf, pointer{}
			if i > 0 {
				for _, p := range t.predA[i] {
					pc := t.idx(p, j)
					if v := t.m[pc] + open; v > av {
						av, ap = v, pointer{pc, matM}
					}
					if v := t.a[pc] + extend; v > av {
						av, ap = v, pointer{pc, matA}
					}
				}
			}

			bv, bp := negInf, pointer{}
			if j > 0 {
				for _, q := range t.predB[j] {
					qc := t.idx(i, q)
					if v := t.m[qc] + open; v > bv {
						bv, bp = v, pointer{qc, matM}
					}
					if v := t.b[qc] + extend; v > bv {
						bv, bp = v, pointer{qc, matB}
					}
				}
			}

			mv, mp := negInf, pointer{}
			if i > 0 && j > 0 {
				s := sub[t.ga.Symbols[i-1]][t.gb.Symbols[j-1]]
				for _, p := range t.predA[i] {
					for _, q := range t.predB[j] {
						pc := t.idx(p, q)
						if v := t.m[pc] + s; v > mv {
							mv, mp = v, pointer{pc, matM}
						}
					}
				}
			}
			if av > mv {
				mv, mp = av, pointer{c, matA}
			}
			if bv > mv {
				mv, mp = bv, pointer{c, matB}
			}

			t.m[c], t.a[c], t.b[c] = mv, av, bv
			if tracing {
				t.ptr[matM][c], t.ptr[matA][c], t.ptr[matB][c] = mp, ap, bp
			}
		}
	}
}

// terminate picks the end cell: the best pair of sink ends, starting from
// the last row and column so that linear inputs end at (|A|, |B|).
func (t *table) terminate() {
	t.end = t.idx(t.ga.Len(), t.gb.Len())
	for _, i := range sinkRows(t.ga) {
		for _, j := range sinkRows(t.gb) {
			if c := t.idx(i, j); t.m[c] > t.m[t.end] {
				t.end = c
			}
		}
	}
	t.score = t.m[t.end]
}

func (t *table) traceback() []Step {
	var path []Step
	c, mat := t.end, matM
	for c != 0 || mat != matM {
		p := t.ptr[mat][c]
		if p.cell != c {
			i, j := c/t.cols, c%t.cols
			switch mat {
			case matM:
				path = append(path, Step{A: i - 1, B: j - 1})
			case matA:
				path = append(path, Step{A: i - 1, B: -1})
			case matB:
				path = append(path, Step{A: -1, B: j - 1})
			}
		}
		c, mat = p.cell, p.mat
	}
	slices.Reverse(path)
	return path
}

func (t *table) spell(path []Step) seqgraph.Alignment {
	aln := seqgraph.Alignment{
		A: make(seqgraph.Sequence, len(path)),
		B: make(seqgraph.Sequence, len(path)),
	}
	for k, st := range path {
		aln.A[k], aln.B[k] = seqgraph.Gap, seqgraph.Gap
		if st.A >= 0 {
			aln.A[k] = t.ga.Symbols[st.A]
		}
		if st.B >= 0 {
			aln.B[k] = t.gb.Symbols[st.B]
		}
	}
	return aln
}
