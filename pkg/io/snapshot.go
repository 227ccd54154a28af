package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/graphalign/pkg/builder"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

type snapshot struct {
	Alphabet string                               `json:"alphabet,omitempty"`
	Nodes    map[seqgraph.NodeID]string           `json:"nodes"`
	Adj      map[seqgraph.NodeID][]seqgraph.NodeID `json:"adj"`
}

// WriteStruct encodes a builder snapshot, keeping the builder's own node ids.
func WriteStruct(s builder.Struct, alpha *seqgraph.Alphabet, w io.Writer) error {
	if alpha == nil {
		alpha = seqgraph.DNA
	}
	out := snapshot{
		Alphabet: alpha.Letters(),
		Nodes:    make(map[seqgraph.NodeID]string, len(s.Nodes)),
		Adj:      s.Adj,
	}
	for id, seq := range s.Nodes {
		out.Nodes[id] = alpha.Decode(seq)
	}
	if out.Adj == nil {
		out.Adj = map[seqgraph.NodeID][]seqgraph.NodeID{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadStruct decodes a snapshot written by [WriteStruct]. Pass the result to
// [builder.FromMaps] to resume editing.
func ReadStruct(r io.Reader) (builder.Struct, error) {
	var data snapshot
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return builder.Struct{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	alpha := seqgraph.DNA
	if data.Alphabet != "" {
		a, err := seqgraph.NewAlphabet(data.Alphabet)
		if err != nil {
			return builder.Struct{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "alphabet")
		}
		alpha = a
	}

	s := builder.Struct{
		Nodes: make(map[seqgraph.NodeID]seqgraph.Sequence, len(data.Nodes)),
		Adj:   data.Adj,
	}
	for id, text := range data.Nodes {
		seq, err := alpha.Encode(text)
		if err != nil {
			return builder.Struct{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "node %d", id)
		}
		s.Nodes[id] = seq
	}
	if s.Adj == nil {
		s.Adj = map[seqgraph.NodeID][]seqgraph.NodeID{}
	}
	return s, nil
}
