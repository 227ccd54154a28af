package io

import (
	"encoding/json"

	"github.com/matzehuels/graphalign/pkg/align"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// result stores alignment rows as raw symbol codes so that no alphabet is
// needed to read them back.
type result struct {
	Score int      `json:"score"`
	A     []int    `json:"a"`
	B     []int    `json:"b"`
	Path  [][2]int `json:"path"`
}

// MarshalResult encodes an alignment result as JSON.
func MarshalResult(res *align.Result) ([]byte, error) {
	out := result{
		Score: res.Score,
		A:     symbolsToInts(res.Alignment.A),
		B:     symbolsToInts(res.Alignment.B),
		Path:  make([][2]int, len(res.Path)),
	}
	for k, st := range res.Path {
		out.Path[k] = [2]int{st.A, st.B}
	}
	return json.Marshal(out)
}

// UnmarshalResult decodes a result written by [MarshalResult].
func UnmarshalResult(data []byte) (*align.Result, error) {
	var in result
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode result")
	}
	if len(in.A) != len(in.B) || len(in.A) != len(in.Path) {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "result rows of length %d and %d with %d steps", len(in.A), len(in.B), len(in.Path))
	}
	res := &align.Result{
		Score: in.Score,
		Alignment: seqgraph.Alignment{
			A: intsToSymbols(in.A),
			B: intsToSymbols(in.B),
		},
		Path: make([]align.Step, len(in.Path)),
	}
	for k, p := range in.Path {
		res.Path[k] = align.Step{A: p[0], B: p[1]}
	}
	return res, nil
}

func symbolsToInts(seq seqgraph.Sequence) []int {
	out := make([]int, len(seq))
	for i, s := range seq {
		out[i] = int(s)
	}
	return out
}

func intsToSymbols(xs []int) seqgraph.Sequence {
	out := make(seqgraph.Sequence, len(xs))
	for i, x := range xs {
		out[i] = seqgraph.Symbol(x)
	}
	return out
}
