package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	graphio "github.com/matzehuels/graphalign/pkg/io"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// namedSequence is one input sequence with a display name.
type namedSequence struct {
	name string
	seq  seqgraph.Sequence
}

// readSequences resolves arguments to sequences. An argument naming an
// existing file is read as FASTA and contributes every record; anything else
// is encoded as a literal sequence.
func readSequences(args []string, alpha *seqgraph.Alphabet) ([]namedSequence, error) {
	var out []namedSequence
	for k, arg := range args {
		if isFile(arg) {
			records, err := graphio.ImportFASTA(arg, alpha)
			if err != nil {
				return nil, err
			}
			if len(records) == 0 {
				return nil, errs.New(errs.ErrCodeInvalidInput, "%s contains no sequences", arg)
			}
			for _, r := range records {
				out = append(out, namedSequence{name: r.Name, seq: r.Seq})
			}
			continue
		}
		seq, err := alpha.Encode(arg)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "argument %d is neither a file nor a sequence", k+1)
		}
		out = append(out, namedSequence{name: "seq" + strconv.Itoa(len(out)+1), seq: seq})
	}
	return out, nil
}

// readSequence is readSequences for an argument that must yield exactly one
// sequence.
func readSequence(arg string, alpha *seqgraph.Alphabet) (namedSequence, error) {
	seqs, err := readSequences([]string{arg}, alpha)
	if err != nil {
		return namedSequence{}, err
	}
	if len(seqs) != 1 {
		return namedSequence{}, errs.New(errs.ErrCodeInvalidInput, "%s holds %d sequences, want 1", arg, len(seqs))
	}
	return seqs[0], nil
}

// readTarget loads an alignment target: a JSON graph file, or a single
// sequence as for readSequence.
func readTarget(arg string, alpha *seqgraph.Alphabet) (string, *seqgraph.Graph, error) {
	if isFile(arg) && strings.EqualFold(filepath.Ext(arg), ".json") {
		g, err := graphio.ImportGraph(arg)
		if err != nil {
			return "", nil, err
		}
		return filepath.Base(arg), g, nil
	}
	s, err := readSequence(arg, alpha)
	if err != nil {
		return "", nil, err
	}
	return s.name, seqgraph.Naive(s.seq), nil
}

func sequencesOf(named []namedSequence) []seqgraph.Sequence {
	out := make([]seqgraph.Sequence, len(named))
	for i, n := range named {
		out[i] = n.seq
	}
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
