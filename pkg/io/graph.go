package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

type graph struct {
	Alphabet string `json:"alphabet,omitempty"`
	Nodes    []node `json:"nodes"`
	Edges    []edge `json:"edges"`
}

type node struct {
	ID  int    `json:"id"`
	Seq string `json:"seq"`
}

type edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// WriteGraph encodes g as indented JSON, spelling sequences with alpha.
func WriteGraph(g *seqgraph.Graph, alpha *seqgraph.Alphabet, w io.Writer) error {
	if alpha == nil {
		alpha = seqgraph.DNA
	}
	out := graph{
		Alphabet: alpha.Letters(),
		Nodes:    make([]node, g.NodeCount()),
		Edges:    make([]edge, 0, g.EdgeCount()),
	}
	for i := range out.Nodes {
		out.Nodes[i] = node{ID: i, Seq: alpha.Decode(g.NodeSequence(i))}
		for _, j := range g.Successors(i) {
			out.Edges = append(out.Edges, edge{From: i, To: j})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph written by [WriteGraph].
//
// Nodes must be listed with ids 0..n-1 in order. Malformed JSON, unknown
// letters and structural violations are reported as INVALID_FORMAT errors.
// ReadGraph does not close r.
func ReadGraph(r io.Reader) (*seqgraph.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}

	alpha := seqgraph.DNA
	if data.Alphabet != "" {
		a, err := seqgraph.NewAlphabet(data.Alphabet)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "alphabet")
		}
		alpha = a
	}

	var symbols seqgraph.Sequence
	offsets := make([]int, len(data.Nodes))
	for i, n := range data.Nodes {
		if n.ID != i {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "node %d listed at index %d", n.ID, i)
		}
		seq, err := alpha.Encode(n.Seq)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "node %d", n.ID)
		}
		offsets[i] = len(symbols)
		symbols = append(symbols, seq...)
	}

	adj := make([][]int, len(data.Nodes))
	for _, e := range data.Edges {
		if e.From < 0 || e.From >= len(adj) {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %d->%d: unknown node %d", e.From, e.To, e.From)
		}
		adj[e.From] = append(adj[e.From], e.To)
	}

	g, err := seqgraph.New(symbols, offsets, adj)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "graph")
	}
	return g, nil
}

// MarshalGraph returns the JSON encoding of g with the DNA alphabet.
func MarshalGraph(g *seqgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, seqgraph.DNA, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph is the inverse of [MarshalGraph].
func UnmarshalGraph(data []byte) (*seqgraph.Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// ExportGraph writes g to a JSON file at path.
func ExportGraph(g *seqgraph.Graph, alpha *seqgraph.Alphabet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGraph(g, alpha, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportGraph reads a JSON graph file from path.
func ImportGraph(path string) (*seqgraph.Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
