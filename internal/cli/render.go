package cli

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphalign/pkg/align"
	errs "github.com/matzehuels/graphalign/pkg/errors"
	graphio "github.com/matzehuels/graphalign/pkg/io"
	"github.com/matzehuels/graphalign/pkg/render"
	"github.com/matzehuels/graphalign/pkg/seqgraph"
)

// Output formats of the render command.
const (
	formatSVG = "svg"
	formatDOT = "dot"
	formatPDF = "pdf"
	formatPNG = "png"
)

var renderFormats = []string{formatSVG, formatDOT, formatPDF, formatPNG}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file; the format defaults to its extension
	format   string  // svg, dot, pdf or png
	detailed bool    // label nodes with index and range
	path     string  // sequence whose alignment path is highlighted
	maxLabel int     // abbreviate longer node labels
	scale    float64 // PNG scale factor
}

// renderCommand creates the render command for drawing a graph.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a sequence graph as SVG, DOT, PDF or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer errs.Recover(&err)
			format, err := resolveFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot, pdf, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with their index and position range")
	cmd.Flags().StringVar(&opts.path, "path", "", "highlight the alignment path of this sequence (literal or FASTA)")
	cmd.Flags().IntVar(&opts.maxLabel, "max-label", render.DefaultMaxLabel, "abbreviate node labels longer than this (-1 disables)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// resolveFormat picks the explicit format, else the output extension, else
// SVG.
func resolveFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if !slices.Contains(renderFormats, format) {
			format = formatSVG
		}
	}
	if !slices.Contains(renderFormats, format) {
		return "", errs.New(errs.ErrCodeInvalidInput, "unknown format %q (want one of %s)", format, strings.Join(renderFormats, ", "))
	}
	return format, nil
}

func (c *CLI) runRender(ctx context.Context, graphPath string, opts renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	g, err := graphio.ImportGraph(graphPath)
	if err != nil {
		return err
	}

	ropts := render.Options{Detailed: opts.detailed, MaxLabel: opts.maxLabel}
	if opts.path != "" {
		runner, err := c.newRunner(ctx, cfg)
		if err != nil {
			return err
		}
		defer runner.Close()

		ropts.Alphabet = runner.Aligner().Scoring().Alphabet
		seq, err := readSequence(opts.path, ropts.Alphabet)
		if err != nil {
			return err
		}
		res, err := runner.Align(ctx, g, seq.seq)
		if err != nil {
			return err
		}
		ropts.Path = nodePath(g, res.Path)
	} else {
		scoring, err := cfg.Scoring.Build()
		if err != nil {
			return err
		}
		ropts.Alphabet = scoring.Alphabet
	}

	dot := render.ToDOT(g, ropts)
	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	default:
		svg, err := render.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		switch opts.format {
		case formatPDF:
			data, err = render.ToPDF(svg)
		case formatPNG:
			data, err = render.ToPNG(svg, opts.scale)
		default:
			data = svg
		}
		if err != nil {
			return err
		}
	}

	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		printSuccess("Rendered %s", strings.ToUpper(opts.format))
		printFile(opts.output)
	}
	return nil
}

// nodePath lists the graph nodes an alignment path visits, in order.
func nodePath(g *seqgraph.Graph, path []align.Step) []int {
	var nodes []int
	for _, st := range path {
		if st.A < 0 {
			continue
		}
		n := g.NodeAt(st.A)
		if len(nodes) == 0 || nodes[len(nodes)-1] != n {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
