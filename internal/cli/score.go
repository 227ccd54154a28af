package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// scoreCommand creates the score command, which reports only alignment
// scores and runs the queries concurrently.
func (c *CLI) scoreCommand() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "score <target> <query>...",
		Short: "Score one or more sequences against a graph or sequence",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer errs.Recover(&err)
			return c.runScore(cmd.Context(), args[0], args[1:], workers, cmd.Flags().Changed("workers"))
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "maximum concurrent alignments (0 uses the config value)")

	return cmd
}

func (c *CLI) runScore(ctx context.Context, targetArg string, queryArgs []string, workers int, override bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if !override {
		workers = cfg.Pipeline.Workers
	}
	aligner, err := c.newAligner(cfg)
	if err != nil {
		return err
	}

	alpha := aligner.Scoring().Alphabet
	_, g, err := readTarget(targetArg, alpha)
	if err != nil {
		return err
	}
	queries, err := readSequences(queryArgs, alpha)
	if err != nil {
		return err
	}

	linear := make([]seqgraph.Linear, len(queries))
	for i, q := range queries {
		linear[i] = q.seq
	}
	prog := newProgress(loggerFromContext(ctx))
	scores, err := aligner.ScoreAll(ctx, g, linear, workers)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scored %d sequences", len(scores)))

	for i, q := range queries {
		fmt.Printf("%s\t%d\n", q.name, scores[i])
	}
	return nil
}
