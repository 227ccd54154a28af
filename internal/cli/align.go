package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	graphio "github.com/matzehuels/graphalign/pkg/io"
)

// alignOpts holds the command-line flags for the align command.
type alignOpts struct {
	output string // write the result as JSON to this path ("-" for stdout)
	width  int    // wrap alignment rows at this many columns
}

// alignCommand creates the align command.
//
// The target may be a JSON graph, a FASTA file or a literal sequence; the
// query is a FASTA file with one record or a literal sequence.
func (c *CLI) alignCommand() *cobra.Command {
	opts := alignOpts{width: 80}

	cmd := &cobra.Command{
		Use:   "align <target> <query>",
		Short: "Globally align a sequence to a graph or another sequence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer errs.Recover(&err)
			return c.runAlign(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result as JSON (\"-\" for stdout)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", opts.width, "wrap alignment rows at this many columns (0 disables)")

	return cmd
}

func (c *CLI) runAlign(ctx context.Context, targetArg, queryArg string, opts alignOpts) error {
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
	name, g, err := readTarget(targetArg, alpha)
	if err != nil {
		return err
	}
	query, err := readSequence(queryArg, alpha)
	if err != nil {
		return err
	}

	res, cached, err := runner.AlignWithCacheInfo(ctx, g, query.seq)
	if err != nil {
		return err
	}

	if opts.output != "" {
		data, err := graphio.MarshalResult(res)
		if err != nil {
			return err
		}
		return writeOutput(opts.output, append(data, '\n'))
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("%s vs %s", name, query.name)))
	printKeyValue("score", StyleNumber.Render(strconv.Itoa(res.Score)))
	printKeyValue("identity", fmt.Sprintf("%.1f%%", 100*res.Identity()))
	printKeyValue("columns", strconv.Itoa(res.Alignment.Len()))
	if cached {
		printKeyValue("source", styleCached.Render(iconCached))
	}
	fmt.Println()
	fmt.Print(renderAlignment(res.Alignment, alpha, opts.width))
	return nil
}
