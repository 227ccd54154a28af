package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/graphalign/pkg/errors"
	"github.com/matzehuels/graphalign/pkg/minimize"
)

// minimizeCommand creates the minimize command, which lists the
// (hash, position) minimizers of each input sequence.
func (c *CLI) minimizeCommand() *cobra.Command {
	var k, w int

	cmd := &cobra.Command{
		Use:   "minimize <input>...",
		Short: "List the k-mer minimizers of sequences",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer errs.Recover(&err)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("k") {
				k = cfg.Minimize.K
			}
			if !cmd.Flags().Changed("w") {
				w = cfg.Minimize.W
			}
			scoring, err := cfg.Scoring.Build()
			if err != nil {
				return err
			}

			fn, err := minimize.Minimize(k, w, nil)
			if err != nil {
				return err
			}
			seqs, err := readSequences(args, scoring.Alphabet)
			if err != nil {
				return err
			}
			for _, s := range seqs {
				mins := fn(s.seq)
				fmt.Printf(">%s\t%d minimizers\n", s.name, len(mins))
				for _, m := range mins {
					fmt.Printf("%d\t%d\n", m.Pos, m.Hash)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "k", "k", 0, "k-mer length (default from config)")
	cmd.Flags().IntVarP(&w, "w", "w", 0, "window length in symbols (default from config)")

	return cmd
}
