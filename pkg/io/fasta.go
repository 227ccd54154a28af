package io

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// Record is one FASTA entry encoded with an alphabet.
type Record struct {
	Name string
	Desc string
	Seq  seqgraph.Sequence
}

// ReadFASTA reads every record from r. A nil alpha selects DNA.
func ReadFASTA(r io.Reader, alpha *seqgraph.Alphabet) ([]Record, error) {
	if alpha == nil {
		alpha = seqgraph.DNA
	}
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))

	var records []Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, errs.New(errs.ErrCodeInternal, "unexpected sequence type %T", sc.Seq())
		}
		letters := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			letters[i] = byte(l)
		}
		seq, err := alpha.Encode(string(letters))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "record %q", s.ID)
		}
		records = append(records, Record{Name: s.ID, Desc: s.Desc, Seq: seq})
	}
	if err := sc.Error(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read fasta")
	}
	return records, nil
}

// ImportFASTA reads a FASTA file from path.
func ImportFASTA(path string, alpha *seqgraph.Alphabet) ([]Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "fasta file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFASTA(f, alpha)
}
