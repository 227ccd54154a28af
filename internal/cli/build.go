package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	graphio "github.com/matzehuels/graphalign/pkg/io"
	"github.com/matzehuels/graphalign/pkg/render"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output   string // graph JSON output path ("-" for stdout)
	dot      string // optional DOT output path
	pairwise bool   // convert a single pairwise alignment instead of iterating
}

// buildCommand creates the build command.
//
// Every input (FASTA files or literal sequences) is added in order, so the
// first sequence forms the backbone of the graph.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <input>...",
		Short: "Build a sequence graph that spells every input sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer errs.Recover(&err)
			return c.runBuild(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "graph JSON output file (default stdout)")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "also write a Graphviz DOT file")
	cmd.Flags().BoolVar(&opts.pairwise, "pairwise", false, "build from one pairwise alignment of exactly two sequences")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, args []string, opts buildOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	alpha := runner.Aligner().Scoring().Alphabet
	named, err := readSequences(args, alpha)
	if err != nil {
		return err
	}
	seqs := sequencesOf(named)
	if opts.pairwise && len(seqs) != 2 {
		return errs.New(errs.ErrCodeInvalidInput, "--pairwise needs exactly 2 sequences, got %d", len(seqs))
	}

	var sp *spinner
	if c.Logger.GetLevel() > log.DebugLevel {
		sp = newSpinner(ctx, os.Stderr, fmt.Sprintf("Aligning %d sequences", len(seqs)))
		sp.Start()
	}
	prog := newProgress(loggerFromContext(ctx))

	var g *seqgraph.Graph
	if opts.pairwise {
		g, err = runner.Pairwise(ctx, seqs[0], seqs[1])
	} else {
		g, err = runner.Build(ctx, seqs)
	}
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built graph from %d sequences", len(seqs)))

	var buf bytes.Buffer
	if err := graphio.WriteGraph(g, alpha, &buf); err != nil {
		return err
	}
	if err := writeOutput(opts.output, buf.Bytes()); err != nil {
		return err
	}
	if opts.dot != "" {
		dot := render.ToDOT(g, render.Options{Alphabet: alpha})
		if err := writeOutput(opts.dot, []byte(dot)); err != nil {
			return err
		}
	}

	if opts.output != "" && opts.output != "-" {
		printSuccess("Built graph from %d sequences", len(seqs))
		printStats(g, false)
		printFile(opts.output)
		if opts.dot != "" {
			printFile(opts.dot)
		}
	}
	return nil
}
